// Package orch runs the event loop every room, matchmaking and connection
// mutation goes through.
package orch

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc/panics"

	"github.com/dkeye/Pool/internal/app"
	"github.com/dkeye/Pool/internal/app/sched"
	"github.com/dkeye/Pool/internal/core"
	"github.com/dkeye/Pool/internal/domain"
)

var ErrStopped = errors.New("event loop stopped")

type Options struct {
	Timing       app.RoomTiming
	MatchTimeout time.Duration
	LoopBuffer   int
	Tables       core.TableFactory
	// Coin defaults to a fair random toss.
	Coin func() bool
	// Sched defaults to timers firing on this orchestrator's loop.
	Sched  core.Scheduler
	Policy app.Policy
	NewID  func() string
	Now    func() time.Time
	Log    zerolog.Logger
}

type Orchestrator struct {
	Registry *app.Registry
	Rooms    *app.RoomRegistry
	Queue    *app.MatchmakingQueue
	Policy   app.Policy

	newID func() string
	tasks chan func()
	done  chan struct{}
	once  sync.Once
	log   zerolog.Logger
}

func New(opts Options) *Orchestrator {
	if opts.Coin == nil {
		opts.Coin = func() bool { return rand.IntN(2) == 0 }
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	if opts.Policy == nil {
		opts.Policy = app.SimplePolicy{}
	}
	if opts.LoopBuffer <= 0 {
		opts.LoopBuffer = 1024
	}
	o := &Orchestrator{
		Policy: opts.Policy,
		newID:  opts.NewID,
		tasks:  make(chan func(), opts.LoopBuffer),
		done:   make(chan struct{}),
		log:    opts.Log.With().Str("module", "app.orch").Logger(),
	}
	if opts.Sched == nil {
		opts.Sched = sched.NewLoop(func(fn func()) { o.Submit(fn) })
	}

	o.Registry = app.NewRegistry(opts.Log)
	o.Rooms = app.NewRoomRegistry(app.RoomDeps{
		Sched:      opts.Sched,
		Emitter:    o,
		Tables:     opts.Tables,
		Coin:       opts.Coin,
		Timing:     opts.Timing,
		OnFinished: o.onMatchFinished,
		Log:        opts.Log,
	})
	o.Queue = app.NewMatchmakingQueue(app.MatchmakingDeps{
		Sched:   opts.Sched,
		Emitter: o,
		Timeout: opts.MatchTimeout,
		Coin:    opts.Coin,
		OnPair:  o.onPair,
		Now:     opts.Now,
		Log:     opts.Log,
	})
	return o
}

// Run executes submitted tasks one at a time until ctx is done, then tears
// down every room, queue entry and connection.
func (o *Orchestrator) Run(ctx context.Context) error {
	o.log.Info().Msg("event loop started")
	defer o.once.Do(func() { close(o.done) })
	for {
		select {
		case <-ctx.Done():
			o.shutdown()
			return nil
		case task := <-o.tasks:
			o.exec(task)
		}
	}
}

func (o *Orchestrator) exec(task func()) {
	var pc panics.Catcher
	pc.Try(task)
	if r := pc.Recovered(); r != nil {
		o.log.Error().Err(r.AsError()).Bytes("stack", r.Stack).Msg("handler panic recovered")
	}
}

func (o *Orchestrator) shutdown() {
	o.Queue.Close()
	o.Rooms.Close()
	o.Registry.CloseAll()
	o.log.Info().Msg("event loop stopped")
}

// Submit queues task for the loop. It reports false once the loop is gone.
func (o *Orchestrator) Submit(task func()) bool {
	select {
	case <-o.done:
		return false
	default:
	}
	select {
	case o.tasks <- task:
		return true
	case <-o.done:
		return false
	}
}

// Do runs task on the loop and waits for it.
func (o *Orchestrator) Do(ctx context.Context, task func()) error {
	finished := make(chan struct{})
	if !o.Submit(func() {
		defer close(finished)
		task()
	}) {
		return ErrStopped
	}
	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-o.done:
		return ErrStopped
	}
}

// PublicRooms reads the lobby from outside the loop.
func (o *Orchestrator) PublicRooms(ctx context.Context) ([]domain.RoomSummary, error) {
	var out []domain.RoomSummary
	if err := o.Do(ctx, func() { out = o.Rooms.ListPublicRooms() }); err != nil {
		return nil, err
	}
	return out, nil
}

// Emit implements core.Emitter.
func (o *Orchestrator) Emit(sid core.SessionID, event string, data any) {
	conn, ok := o.Registry.Conn(sid)
	if !ok {
		return
	}
	frame, err := core.EncodeEvent(event, data)
	if err != nil {
		o.log.Error().Err(err).Str("event", event).Msg("encode event")
		return
	}
	o.deliver(sid, conn, event, frame)
}

func (o *Orchestrator) emitError(sid core.SessionID, msg string) {
	o.Emit(sid, core.EvtError, core.ErrorPayload{Message: msg})
}

// broadcastAll sends one event to every connection.
func (o *Orchestrator) broadcastAll(event string, data any) {
	frame, err := core.EncodeEvent(event, data)
	if err != nil {
		o.log.Error().Err(err).Str("event", event).Msg("encode event")
		return
	}
	o.Registry.Each(func(sid core.SessionID, conn core.SignalConnection) {
		o.deliver(sid, conn, event, frame)
	})
}

func (o *Orchestrator) deliver(sid core.SessionID, conn core.SignalConnection, event string, frame core.Frame) {
	err := conn.TrySend(frame)
	if err == nil || !errors.Is(err, core.ErrBackpressure) {
		return
	}
	switch o.Policy.OnBackPressure(sid, event) {
	case app.KickMember:
		o.log.Warn().Str("sid", string(sid)).Str("event", event).Msg("slow consumer disconnected")
		conn.Close()
	case app.DropFrame:
		o.log.Debug().Str("sid", string(sid)).Str("event", event).Msg("frame dropped")
	case app.NoAction:
	}
}
