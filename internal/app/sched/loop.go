// Package sched provides the timers rooms and the matchmaking queue use.
// Callbacks always run on the event loop, never on a timer goroutine.
package sched

import (
	"sync/atomic"
	"time"

	"github.com/dkeye/Pool/internal/core"
)

// Loop schedules callbacks by handing them to submit when they are due.
type Loop struct {
	submit func(func())
}

func NewLoop(submit func(func())) *Loop {
	return &Loop{submit: submit}
}

type loopTimer struct {
	stopped atomic.Bool
	t       *time.Timer
	done    chan struct{}
	// exited is closed once an Every goroutine has returned.
	exited chan struct{}
}

func (lt *loopTimer) Stop() bool {
	if !lt.stopped.CompareAndSwap(false, true) {
		return false
	}
	if lt.t != nil {
		lt.t.Stop()
	}
	if lt.done != nil {
		close(lt.done)
	}
	return true
}

func (l *Loop) AfterFunc(d time.Duration, fn func()) core.Timer {
	lt := &loopTimer{}
	lt.t = time.AfterFunc(d, func() {
		l.submit(func() {
			// A Stop that raced with the submit wins.
			if lt.stopped.CompareAndSwap(false, true) {
				fn()
			}
		})
	})
	return lt
}

func (l *Loop) Every(d time.Duration, fn func()) core.Timer {
	lt := &loopTimer{done: make(chan struct{}), exited: make(chan struct{})}
	go func() {
		defer close(lt.exited)
		tk := time.NewTicker(d)
		defer tk.Stop()
		for {
			select {
			case <-lt.done:
				return
			case <-tk.C:
				if lt.stopped.Load() {
					return
				}
				l.submit(func() {
					if !lt.stopped.Load() {
						fn()
					}
				})
			}
		}
	}()
	return lt
}
