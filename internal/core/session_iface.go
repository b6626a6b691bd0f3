package core

// SessionID identifies one live client connection. A room created by a
// connection is keyed by that connection's SessionID.
type SessionID string

// Emitter delivers one event to one connection. Delivery is best effort:
// unknown or closed connections are skipped.
type Emitter interface {
	Emit(sid SessionID, event string, data any)
}
