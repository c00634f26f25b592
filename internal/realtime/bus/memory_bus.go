package bus

import (
	"context"
	"errors"
	"sync"

	"github.com/yungbote/recipebook-backend/internal/platform/logger"
	"github.com/yungbote/recipebook-backend/internal/realtime"
)

// memoryBus delivers events inside one process. Used when no Redis is configured.
type memoryBus struct {
	log      *logger.Logger
	mu       sync.RWMutex
	handlers []func(realtime.Message)
	closed   bool
}

func NewMemoryBus(log *logger.Logger) Bus {
	return &memoryBus{log: log.With("service", "MemoryBus")}
}

func (b *memoryBus) Publish(ctx context.Context, msg realtime.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return errors.New("memory bus closed")
	}
	for _, h := range b.handlers {
		h(msg)
	}
	return nil
}

func (b *memoryBus) StartForwarder(ctx context.Context, onMsg func(m realtime.Message)) error {
	if onMsg == nil {
		return errors.New("onMsg callback required")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return errors.New("memory bus closed")
	}
	b.handlers = append(b.handlers, onMsg)
	return nil
}

func (b *memoryBus) Close() error {
	b.mu.Lock()
	b.closed = true
	b.handlers = nil
	b.mu.Unlock()
	return nil
}
