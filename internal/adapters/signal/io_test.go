package signal

import (
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/dkeye/Pool/internal/app/orch"
	"github.com/dkeye/Pool/internal/core"
	"github.com/dkeye/Pool/internal/domain"
)

func newTestController(t *testing.T) (*SignalWSController, *EventRateLimiter) {
	t.Helper()
	rl, _ := newTestLimiter()
	// The loop is never run; submitted tasks stay buffered.
	o := orch.New(orch.Options{LoopBuffer: 64, Log: zerolog.Nop()})
	return &SignalWSController{Orch: o, Limiter: rl}, rl
}

func TestHandleSignal_UnknownEventsSkipTheLimiter(t *testing.T) {
	t.Parallel()
	ctl, rl := newTestController(t)
	c := &WsSignalConn{send: make(chan core.Frame, 8)}

	for i := range 1000 {
		ctl.handleSignal("a", c, fmt.Appendf(nil, `{"event":"junk-%d","data":null}`, i))
	}
	ctl.handleSignal("a", c, []byte(`{"data":1}`))

	assert.Zero(t, rl.Len())
	assert.Empty(t, c.send, "unknown events get no reply")
}

func TestHandleSignal_KnownEventIsCounted(t *testing.T) {
	t.Parallel()
	ctl, rl := newTestController(t)
	c := &WsSignalConn{send: make(chan core.Frame, 8)}

	ctl.handleSignal("a", c, fmt.Appendf(nil, `{"event":%q}`, domain.EvtPing))

	assert.Equal(t, 1, rl.Len())
	assert.Empty(t, c.send)
}

func TestHandleSignal_RateLimitedReply(t *testing.T) {
	t.Parallel()
	ctl, _ := newTestController(t)
	c := &WsSignalConn{send: make(chan core.Frame, 8)}
	frame := fmt.Appendf(nil, `{"event":%q}`, domain.EvtGetAllRooms)

	for range 50 {
		ctl.handleSignal("a", c, frame)
	}
	assert.Empty(t, c.send)

	ctl.handleSignal("a", c, frame)
	if assert.Len(t, c.send, 1) {
		assert.Contains(t, string(<-c.send), "Too many requests")
	}
}
