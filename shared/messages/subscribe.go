package messages

// Subscribe is sent by a client after connecting. The feed keeps syncing
// every agent; the message registers the session and the agents it binds
// pedestrians to, so the feed can warn about ids it does not simulate.
type Subscribe struct {
	SessionID string
	Version   string
	Agents    []string
}

// Unsubscribe is sent by a client before it disconnects cleanly.
type Unsubscribe struct {
	SessionID string
}
