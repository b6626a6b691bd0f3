package app_test

import (
	"sync"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"

	"github.com/dkeye/Pool/internal/core"
)

type sentEvent struct {
	sid   core.SessionID
	event string
	data  []byte
}

type emitterMock struct {
	mu   sync.Mutex
	sent []sentEvent
}

var _ core.Emitter = &emitterMock{}

func (e *emitterMock) Emit(sid core.SessionID, event string, data any) {
	b, err := json.Marshal(data)
	if err != nil {
		panic(err)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sent = append(e.sent, sentEvent{sid: sid, event: event, data: b})
}

// events lists the event names sid received, in order.
func (e *emitterMock) events(sid core.SessionID) []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	var out []string
	for _, s := range e.sent {
		if s.sid == sid {
			out = append(out, s.event)
		}
	}
	return out
}

func (e *emitterMock) count(sid core.SessionID, event string) int {
	n := 0
	for _, name := range e.events(sid) {
		if name == event {
			n++
		}
	}
	return n
}

// last decodes the latest event named event sent to sid into v.
func (e *emitterMock) last(t *testing.T, sid core.SessionID, event string, v any) {
	t.Helper()
	e.mu.Lock()
	defer e.mu.Unlock()
	for i := len(e.sent) - 1; i >= 0; i-- {
		if s := e.sent[i]; s.sid == sid && s.event == event {
			require.NoError(t, json.Unmarshal(s.data, v))
			return
		}
	}
	t.Fatalf("no %s sent to %s", event, sid)
}

func (e *emitterMock) reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sent = nil
}

func indexOf(events []string, name string) int {
	for i, e := range events {
		if e == name {
			return i
		}
	}
	return -1
}
