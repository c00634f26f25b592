package cli

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("LOG_MODE", "test")
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		flagDBDriver, flagSQLitePath, flagSeedFile = "", "", ""
	}()
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestSubcommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["serve"])
	assert.True(t, names["migrate"])
	assert.True(t, names["seed"])
}

func TestMigrateSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cli.db")

	out, err := execute(t, "migrate", "--db-driver", "sqlite", "--sqlite-path", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Schema migrated (sqlite)")
}

func TestSeedIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cli.db")

	out, err := execute(t, "seed", "--db-driver", "sqlite", "--sqlite-path", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Recipes: 4 created, 0 skipped. Pantry: 10 created, 0 skipped.")

	out, err = execute(t, "seed", "--db-driver", "sqlite", "--sqlite-path", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Recipes: 0 created, 4 skipped. Pantry: 0 created, 10 skipped.")
}

func TestSeedRejectsMissingFile(t *testing.T) {
	_, err := execute(t, "seed", "--db-driver", "sqlite",
		"--sqlite-path", filepath.Join(t.TempDir(), "cli.db"),
		"--file", filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
