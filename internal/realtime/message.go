package realtime

// Channels clients can subscribe to.
const (
	ChannelRecipes = "recipes"
	ChannelPantry  = "pantry"
)

type Event string

const (
	EventRecipeCreated Event = "recipe.created"
	EventRecipeUpdated Event = "recipe.updated"
	EventRecipeDeleted Event = "recipe.deleted"

	EventPantryCreated Event = "pantry.created"
	EventPantryUpdated Event = "pantry.updated"
	EventPantryDeleted Event = "pantry.deleted"
)

type Message struct {
	Channel string `json:"channel"`
	Event   Event  `json:"event"`
	Data    any    `json:"data,omitempty"`
}

// ChangeData is the payload of every change event. The client refetches by ID.
type ChangeData struct {
	ID   uint   `json:"id"`
	Name string `json:"name,omitempty"`
}

// DefaultChannels is the subscription set for a client that names none.
func DefaultChannels() []string {
	return []string{ChannelRecipes, ChannelPantry}
}
