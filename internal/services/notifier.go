package services

import (
	"context"

	types "github.com/yungbote/recipebook-backend/internal/domain/recipes"
	"github.com/yungbote/recipebook-backend/internal/observability"
	"github.com/yungbote/recipebook-backend/internal/platform/logger"
	"github.com/yungbote/recipebook-backend/internal/realtime"
	"github.com/yungbote/recipebook-backend/internal/realtime/bus"
)

type Emitter interface {
	Emit(ctx context.Context, msg realtime.Message)
}

type HubEmitter struct{ Hub *realtime.Hub }

func (e *HubEmitter) Emit(ctx context.Context, msg realtime.Message) {
	e.Hub.Broadcast(msg)
}

// BusEmitter publishes through the event bus so every instance's hub sees the event.
type BusEmitter struct {
	Bus bus.Bus
	Log *logger.Logger
}

func (e *BusEmitter) Emit(ctx context.Context, msg realtime.Message) {
	if err := e.Bus.Publish(ctx, msg); err != nil && e.Log != nil {
		e.Log.Warn("publish change event failed", "event", msg.Event, "error", err)
	}
}

// ChangeNotifier announces committed recipe and pantry mutations.
type ChangeNotifier interface {
	RecipeCreated(ctx context.Context, r *types.Recipe)
	RecipeUpdated(ctx context.Context, r *types.Recipe)
	RecipeDeleted(ctx context.Context, id uint)
	PantryCreated(ctx context.Context, item *types.PantryItem)
	PantryUpdated(ctx context.Context, item *types.PantryItem)
	PantryDeleted(ctx context.Context, id uint)
}

type changeNotifier struct {
	emit    Emitter
	metrics *observability.Metrics
}

func NewChangeNotifier(emit Emitter, metrics *observability.Metrics) ChangeNotifier {
	return &changeNotifier{emit: emit, metrics: metrics}
}

func (n *changeNotifier) send(ctx context.Context, channel string, event realtime.Event, data realtime.ChangeData) {
	if n == nil || n.emit == nil {
		return
	}
	n.emit.Emit(ctx, realtime.Message{Channel: channel, Event: event, Data: data})
	n.metrics.IncChangeEvent(channel, string(event))
}

func (n *changeNotifier) RecipeCreated(ctx context.Context, r *types.Recipe) {
	if r == nil {
		return
	}
	n.send(ctx, realtime.ChannelRecipes, realtime.EventRecipeCreated, realtime.ChangeData{ID: r.ID, Name: r.Name})
}

func (n *changeNotifier) RecipeUpdated(ctx context.Context, r *types.Recipe) {
	if r == nil {
		return
	}
	n.send(ctx, realtime.ChannelRecipes, realtime.EventRecipeUpdated, realtime.ChangeData{ID: r.ID, Name: r.Name})
}

func (n *changeNotifier) RecipeDeleted(ctx context.Context, id uint) {
	n.send(ctx, realtime.ChannelRecipes, realtime.EventRecipeDeleted, realtime.ChangeData{ID: id})
}

func (n *changeNotifier) PantryCreated(ctx context.Context, item *types.PantryItem) {
	if item == nil {
		return
	}
	n.send(ctx, realtime.ChannelPantry, realtime.EventPantryCreated, realtime.ChangeData{ID: item.ID, Name: item.Name})
}

func (n *changeNotifier) PantryUpdated(ctx context.Context, item *types.PantryItem) {
	if item == nil {
		return
	}
	n.send(ctx, realtime.ChannelPantry, realtime.EventPantryUpdated, realtime.ChangeData{ID: item.ID, Name: item.Name})
}

func (n *changeNotifier) PantryDeleted(ctx context.Context, id uint) {
	n.send(ctx, realtime.ChannelPantry, realtime.EventPantryDeleted, realtime.ChangeData{ID: id})
}
