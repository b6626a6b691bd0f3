package sched

import (
	"time"

	"github.com/dkeye/Pool/internal/core"
)

// Manual is a scheduler driven by Advance. Callbacks run synchronously in
// due order on the caller's goroutine. Not safe for concurrent use.
type Manual struct {
	now    time.Duration
	seq    int
	timers []*manualTimer
}

func NewManual() *Manual { return &Manual{} }

type manualTimer struct {
	due     time.Duration
	period  time.Duration
	seq     int
	fn      func()
	stopped bool
}

func (t *manualTimer) Stop() bool {
	if t.stopped {
		return false
	}
	t.stopped = true
	return true
}

func (m *Manual) AfterFunc(d time.Duration, fn func()) core.Timer {
	return m.add(d, 0, fn)
}

func (m *Manual) Every(d time.Duration, fn func()) core.Timer {
	if d <= 0 {
		panic("sched: non-positive period")
	}
	return m.add(d, d, fn)
}

func (m *Manual) add(d, period time.Duration, fn func()) *manualTimer {
	if d < 0 {
		d = 0
	}
	m.seq++
	t := &manualTimer{due: m.now + d, period: period, seq: m.seq, fn: fn}
	m.timers = append(m.timers, t)
	return t
}

// Elapsed is the total time advanced so far.
func (m *Manual) Elapsed() time.Duration { return m.now }

// Pending counts timers that can still fire.
func (m *Manual) Pending() int {
	n := 0
	for _, t := range m.timers {
		if !t.stopped {
			n++
		}
	}
	return n
}

// Advance moves time forward by d and fires everything that falls due,
// including timers scheduled by the callbacks themselves.
func (m *Manual) Advance(d time.Duration) {
	target := m.now + d
	for {
		t := m.next(target)
		if t == nil {
			break
		}
		m.now = t.due
		if t.period > 0 {
			m.seq++
			t.due += t.period
			t.seq = m.seq
		} else {
			t.stopped = true
		}
		t.fn()
	}
	m.now = target
	m.compact()
}

// Flush fires timers that are already due.
func (m *Manual) Flush() { m.Advance(0) }

func (m *Manual) next(limit time.Duration) *manualTimer {
	var best *manualTimer
	for _, t := range m.timers {
		if t.stopped || t.due > limit {
			continue
		}
		if best == nil || t.due < best.due || (t.due == best.due && t.seq < best.seq) {
			best = t
		}
	}
	return best
}

func (m *Manual) compact() {
	live := m.timers[:0]
	for _, t := range m.timers {
		if !t.stopped {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(m.timers); i++ {
		m.timers[i] = nil
	}
	m.timers = live
}
