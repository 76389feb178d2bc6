package websocket

// EventPublisher publishes change events to the clients of a workspace
type EventPublisher interface {
	// Publish delivers the event to the workspace's subscribed clients. It
	// never blocks on a client.
	Publish(workspaceID int32, event Event)
}

var _ EventPublisher = (*Hub)(nil)

// Publish broadcasts the event to the workspace
func (h *Hub) Publish(workspaceID int32, event Event) {
	h.Broadcast(workspaceID, event)
}

// NoOpPublisher drops every event. Services start with it until the hub is wired.
type NoOpPublisher struct{}

// Publish does nothing
func (n *NoOpPublisher) Publish(workspaceID int32, event Event) {}

// OrNoOp returns p, or a NoOpPublisher when p is nil
func OrNoOp(p EventPublisher) EventPublisher {
	if p == nil {
		return &NoOpPublisher{}
	}
	return p
}
