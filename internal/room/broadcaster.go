package room

// Broadcaster fans an event out to every observer of a game's room. Delivery
// is best effort; the engine makes no assumption about it.
type Broadcaster interface {
	Broadcast(gameID string, event string, data any)
}

// NopBroadcaster is used where no push channel is attached (CLI, tests).
type NopBroadcaster struct{}

func (NopBroadcaster) Broadcast(string, string, any) {}
