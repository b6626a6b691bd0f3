package signal

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/dkeye/Pool/internal/core"
	"github.com/dkeye/Pool/internal/domain"
)

type RateLimitConfig struct {
	CosmeticLimit  int
	CosmeticWindow time.Duration
	StrictLimit    int
	StrictWindow   time.Duration
	SweepInterval  time.Duration
}

// cosmeticEvents get the generous budget; they fire on every pointer move.
var cosmeticEvents = map[string]struct{}{
	domain.EvtPressHitArea:     {},
	domain.EvtPressMoveHitArea: {},
	domain.EvtReleaseHitArea:   {},
	domain.EvtUpdateStick:      {},
	domain.EvtPressDownCueBall: {},
	domain.EvtPressMoveCueBall: {},
	domain.EvtPressUpCueBall:   {},
	domain.EvtTimerUpdate:      {},
}

type limitKey struct {
	sid   core.SessionID
	event string
}

type limitCounter struct {
	count   int
	resetAt time.Time
}

// EventRateLimiter counts events per connection and event name in fixed
// windows. A counter starts over once its window has passed.
type EventRateLimiter struct {
	mu       sync.Mutex
	counters map[limitKey]*limitCounter
	cfg      RateLimitConfig
	now      func() time.Time
	log      zerolog.Logger
}

func NewEventRateLimiter(cfg RateLimitConfig, log zerolog.Logger) *EventRateLimiter {
	return &EventRateLimiter{
		counters: make(map[limitKey]*limitCounter),
		cfg:      cfg,
		now:      time.Now,
		log:      log.With().Str("module", "signal.ratelimit").Logger(),
	}
}

func (rl *EventRateLimiter) tier(event string) (int, time.Duration) {
	if _, ok := cosmeticEvents[event]; ok {
		return rl.cfg.CosmeticLimit, rl.cfg.CosmeticWindow
	}
	return rl.cfg.StrictLimit, rl.cfg.StrictWindow
}

// Allow counts one event and reports whether it is within budget. Unknown
// event names are refused without being counted.
func (rl *EventRateLimiter) Allow(sid core.SessionID, event string) bool {
	if !KnownEvent(event) {
		return false
	}
	limit, window := rl.tier(event)

	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	key := limitKey{sid: sid, event: event}
	c, ok := rl.counters[key]
	if !ok || now.After(c.resetAt) {
		c = &limitCounter{resetAt: now.Add(window)}
		rl.counters[key] = c
	}
	if c.count >= limit {
		return false
	}
	c.count++
	return true
}

// Sweep drops counters whose window has elapsed and returns how many.
func (rl *EventRateLimiter) Sweep() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	n := 0
	for k, c := range rl.counters {
		if now.After(c.resetAt) {
			delete(rl.counters, k)
			n++
		}
	}
	return n
}

func (rl *EventRateLimiter) Len() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.counters)
}

// Run sweeps periodically until ctx is done.
func (rl *EventRateLimiter) Run(ctx context.Context) error {
	ticker := time.NewTicker(rl.cfg.SweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := rl.Sweep(); n > 0 {
				rl.log.Debug().Int("evicted", n).Msg("rate limit sweep")
			}
		}
	}
}
