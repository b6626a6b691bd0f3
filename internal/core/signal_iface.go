package core

import "errors"

var (
	ErrBackpressure = errors.New("backpressure")
	ErrConnClosed   = errors.New("connection closed")
)

// Frame is one encoded event ready for the wire.
type Frame []byte

// SignalConnection is the outbound half of a player's socket. The transport
// adapter creates it and is the only one that tears it down; the loop may
// Close it to kick a slow consumer.
type SignalConnection interface {
	// TrySend never blocks; a full buffer yields ErrBackpressure.
	TrySend(Frame) error
	Close()
}
