package main

import (
	"os"

	"github.com/yungbote/recipebook-backend/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
