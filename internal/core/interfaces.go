package core

// Frame is a single encoded message bound for one client.
type Frame []byte

// ConnectionID identifies one live signaling channel. A reconnect after a
// drop is a wholly new ConnectionID; any continuity across channels is the
// client's responsibility (it resends join-room).
type ConnectionID string

// SignalConnection abstracts the messaging transport endpoint.
// Owned by the adapter; the adapter must Close() it.
type SignalConnection interface {
	TrySend(Frame) error
	Close()
}
