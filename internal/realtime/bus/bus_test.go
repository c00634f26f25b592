package bus

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/recipebook-backend/internal/platform/logger"
	"github.com/yungbote/recipebook-backend/internal/realtime"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("test")
	require.NoError(t, err)
	return log
}

func TestNewFallsBackToMemory(t *testing.T) {
	b, err := New(testLogger(t), RedisConfig{})
	require.NoError(t, err)
	_, ok := b.(*memoryBus)
	assert.True(t, ok)
}

func TestMemoryBusFanOut(t *testing.T) {
	b := NewMemoryBus(testLogger(t))
	ctx := context.Background()

	var got []realtime.Message
	require.NoError(t, b.StartForwarder(ctx, func(m realtime.Message) { got = append(got, m) }))
	require.Error(t, b.StartForwarder(ctx, nil))

	msg := realtime.Message{Channel: realtime.ChannelPantry, Event: realtime.EventPantryCreated}
	require.NoError(t, b.Publish(ctx, msg))
	assert.Equal(t, []realtime.Message{msg}, got)

	require.NoError(t, b.Close())
	assert.Error(t, b.Publish(ctx, msg))
}

func TestMemoryBusHonoursCancelledContext(t *testing.T) {
	b := NewMemoryBus(testLogger(t))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, b.Publish(ctx, realtime.Message{}), context.Canceled)
}

func TestDecodeMessage(t *testing.T) {
	msg, err := decodeMessage(`{"channel":"recipes","event":"recipe.deleted","data":{"id":4}}`)
	require.NoError(t, err)
	assert.Equal(t, realtime.ChannelRecipes, msg.Channel)
	assert.Equal(t, realtime.EventRecipeDeleted, msg.Event)

	_, err = decodeMessage(`{"channel":"recipes"}`)
	assert.Error(t, err)
	_, err = decodeMessage(`not json`)
	assert.Error(t, err)
}

func TestRedisBusRoundTrip(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("set TEST_REDIS_ADDR to run redis bus tests")
	}
	b, err := NewRedisBus(testLogger(t), RedisConfig{Addr: addr, Channel: "recipebook-test"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	received := make(chan realtime.Message, 1)
	require.NoError(t, b.StartForwarder(ctx, func(m realtime.Message) { received <- m }))

	require.NoError(t, b.Publish(ctx, realtime.Message{Channel: realtime.ChannelRecipes, Event: realtime.EventRecipeCreated}))
	select {
	case m := <-received:
		assert.Equal(t, realtime.EventRecipeCreated, m.Event)
	case <-time.After(2 * time.Second):
		t.Fatalf("no message forwarded")
	}
}
