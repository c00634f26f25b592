// Package bus carries change events between service instances and their hubs.
package bus

import (
	"context"

	"github.com/yungbote/recipebook-backend/internal/realtime"
)

type Bus interface {
	Publish(ctx context.Context, msg realtime.Message) error
	StartForwarder(ctx context.Context, onMsg func(m realtime.Message)) error
	Close() error
}
