package services

// RealtimePublisher is the boundary to the external pub/sub transport. The
// core only needs to publish events on per-user private channels and to
// countersign channel subscription requests.
type RealtimePublisher interface {
	// Trigger publishes an event with a payload on a channel. Delivery is
	// best-effort; callers decide whether a failure is fatal.
	Trigger(channel string, event string, data any) error

	// AuthorizePrivateChannel signs a private-channel subscription request
	// (raw form-encoded body with channel_name and socket_id) and returns the
	// auth response to hand back to the client.
	AuthorizePrivateChannel(params []byte) ([]byte, error)
}

// UserChannel returns the private broadcast channel name for a user.
func UserChannel(userID string) string {
	return "private-user-" + userID
}
