package app

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/dkeye/Pool/internal/core"
	"github.com/dkeye/Pool/internal/domain"
)

// PairFunc receives two paired connections, owner first, and the outcome of
// the match coin toss from the owner's point of view.
type PairFunc func(owner, peer core.SessionID, ownerWon bool)

type MatchmakingDeps struct {
	Sched   core.Scheduler
	Emitter core.Emitter
	Timeout time.Duration
	Coin    func() bool
	OnPair  PairFunc
	Now     func() time.Time
	Log     zerolog.Logger
}

type queueEntry struct {
	sid        core.SessionID
	params     domain.MatchParams
	enqueuedAt time.Time
	timeout    core.Timer
}

// MatchmakingQueue pairs searching connections first in, first out.
// Skill and region are recorded but do not influence pairing.
// Owned by the event loop.
type MatchmakingQueue struct {
	deps    MatchmakingDeps
	entries map[core.SessionID]*queueEntry
	order   []*queueEntry
	log     zerolog.Logger
}

func NewMatchmakingQueue(deps MatchmakingDeps) *MatchmakingQueue {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &MatchmakingQueue{
		deps:    deps,
		entries: make(map[core.SessionID]*queueEntry),
		log:     deps.Log.With().Str("module", "app.matchmaking").Logger(),
	}
}

func (q *MatchmakingQueue) Len() int { return len(q.order) }

func (q *MatchmakingQueue) Contains(sid core.SessionID) bool {
	_, ok := q.entries[sid]
	return ok
}

// Enqueue adds sid and tries to pair. A connection already queued is left
// untouched.
func (q *MatchmakingQueue) Enqueue(sid core.SessionID, params domain.MatchParams) bool {
	if q.Contains(sid) {
		return false
	}
	e := &queueEntry{sid: sid, params: params, enqueuedAt: q.deps.Now()}
	e.timeout = q.deps.Sched.AfterFunc(q.deps.Timeout, func() { q.expire(e) })
	q.entries[sid] = e
	q.order = append(q.order, e)
	q.log.Info().Str("sid", string(sid)).Int("skill", params.SkillLevel).Str("region", params.Region).Int("queue", len(q.order)).Msg("searching")

	q.broadcastStatus()
	q.TryPair()
	return true
}

// Dequeue removes sid and cancels its timeout.
func (q *MatchmakingQueue) Dequeue(sid core.SessionID) bool {
	e, ok := q.entries[sid]
	if !ok {
		return false
	}
	q.remove(e)
	q.log.Info().Str("sid", string(sid)).Msg("left matchmaking")
	q.broadcastStatus()
	return true
}

// TryPair forms as many pairs as possible from the longest waiting entries.
func (q *MatchmakingQueue) TryPair() int {
	pairs := 0
	for len(q.order) >= 2 {
		owner, peer := q.order[0], q.order[1]
		q.remove(owner)
		q.remove(peer)
		won := q.deps.Coin()
		q.log.Info().Str("owner", string(owner.sid)).Str("peer", string(peer.sid)).
			Dur("owner_waited", q.deps.Now().Sub(owner.enqueuedAt)).Msg("pair formed")
		q.deps.OnPair(owner.sid, peer.sid, won)
		pairs++
	}
	if pairs > 0 {
		q.broadcastStatus()
	}
	return pairs
}

// Close cancels every pending timeout.
func (q *MatchmakingQueue) Close() {
	for _, e := range q.order {
		e.timeout.Stop()
	}
	q.entries = make(map[core.SessionID]*queueEntry)
	q.order = nil
}

func (q *MatchmakingQueue) expire(e *queueEntry) {
	if q.entries[e.sid] != e {
		return
	}
	q.remove(e)
	q.log.Info().Str("sid", string(e.sid)).Msg("matchmaking timed out")
	q.deps.Emitter.Emit(e.sid, core.EvtMatchTimeout, nil)
	q.broadcastStatus()
}

func (q *MatchmakingQueue) remove(e *queueEntry) {
	e.timeout.Stop()
	delete(q.entries, e.sid)
	for i, o := range q.order {
		if o == e {
			q.order = append(q.order[:i], q.order[i+1:]...)
			break
		}
	}
}

type searchStatus struct {
	QueueSize int   `json:"queueSize"`
	Timestamp int64 `json:"timestamp"`
}

func (q *MatchmakingQueue) broadcastStatus() {
	st := searchStatus{QueueSize: len(q.order), Timestamp: q.deps.Now().UnixMilli()}
	for _, e := range q.order {
		q.deps.Emitter.Emit(e.sid, core.EvtSearchStatus, st)
	}
}
