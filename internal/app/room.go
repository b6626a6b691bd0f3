package app

import (
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc/panics"

	"github.com/dkeye/Pool/internal/core"
	"github.com/dkeye/Pool/internal/domain"
)

var (
	ErrRoomFull      = errors.New("room is full")
	ErrRoomClosed    = errors.New("room is closed")
	ErrAlreadySeated = errors.New("already seated")
	ErrNotSeated     = errors.New("not seated in room")
	ErrNotYourTurn   = errors.New("not your turn")
	ErrInvalidBall   = errors.New("invalid ball")
)

// RoomTiming holds the pacing of a match.
type RoomTiming struct {
	TickInterval    time.Duration
	TossRevealDelay time.Duration
	StartDelay      time.Duration
	// TurnTimer enables the server side shot clock when positive.
	TurnTimer  time.Duration
	ChatMaxLen int
}

// RoomDeps are shared by every room of a registry.
type RoomDeps struct {
	Sched   core.Scheduler
	Emitter core.Emitter
	Tables  core.TableFactory
	// Coin decides the opening seat: true means player1 breaks.
	Coin   func() bool
	Timing RoomTiming
	// OnFinished runs on the loop after a match result was declared.
	OnFinished func(*Room)
	Log        zerolog.Logger
}

type occupant struct {
	sid   core.SessionID
	score int
}

// Room is the authority of one match. All methods must be called from the
// event loop.
type Room struct {
	id   domain.RoomID
	cfg  domain.RoomConfig
	deps RoomDeps
	log  zerolog.Logger

	status  domain.RoomStatus
	toss    domain.TossPhase
	seats   [2]*occupant
	current domain.Seat

	suits         [2]domain.Suit
	suitsAssigned bool

	finished  bool
	destroyed bool

	table core.Table

	tick  core.Timer
	phase core.Timer

	turnLeft   int
	turnTick   core.Timer
	turnSwitch core.Timer
}

func newRoom(id domain.RoomID, cfg domain.RoomConfig, deps RoomDeps) *Room {
	r := &Room{
		id:   id,
		cfg:  cfg,
		deps: deps,
		log:  deps.Log.With().Str("module", "app.room").Str("room_id", string(id)).Logger(),
	}
	r.table = deps.Tables(r)
	if deps.Timing.TickInterval > 0 {
		r.tick = deps.Sched.Every(deps.Timing.TickInterval, r.update)
	}
	return r
}

func (r *Room) ID() domain.RoomID                { return r.id }
func (r *Room) Config() domain.RoomConfig        { return r.cfg }
func (r *Room) Status() domain.RoomStatus        { return r.status }
func (r *Room) TossPhase() domain.TossPhase      { return r.toss }
func (r *Room) CurrentSeat() domain.Seat         { return r.current }
func (r *Room) Finished() bool                   { return r.finished }
func (r *Room) Destroyed() bool                  { return r.destroyed }
func (r *Room) SuitsAssigned() bool              { return r.suitsAssigned }
func (r *Room) SuitOf(s domain.Seat) domain.Suit { return r.suits[s] }

func (r *Room) PlayerCount() int {
	n := 0
	for _, o := range r.seats {
		if o != nil {
			n++
		}
	}
	return n
}

// SeatOf returns the seat sid occupies.
func (r *Room) SeatOf(sid core.SessionID) (domain.Seat, bool) {
	for _, s := range domain.Seats {
		if o := r.seats[s]; o != nil && o.sid == sid {
			return s, true
		}
	}
	return 0, false
}

func (r *Room) Score(s domain.Seat) int {
	if o := r.seats[s]; o != nil {
		return o.score
	}
	return 0
}

// Members lists the connections currently seated, player1 first.
func (r *Room) Members() []core.SessionID {
	out := make([]core.SessionID, 0, 2)
	for _, o := range r.seats {
		if o != nil {
			out = append(out, o.sid)
		}
	}
	return out
}

func (r *Room) Summary() domain.RoomSummary {
	players := make([]domain.SeatInfo, 0, 2)
	for _, s := range domain.Seats {
		if o := r.seats[s]; o != nil {
			players = append(players, domain.SeatInfo{Key: s, PlayerID: string(o.sid)})
		}
	}
	return domain.RoomSummary{RoomID: r.id, Players: players, BetAmount: r.cfg.BetAmount}
}

// Join seats sid. The first free seat is taken; filling the second one
// starts the coin toss.
func (r *Room) Join(sid core.SessionID) (domain.Seat, error) {
	if r.destroyed || r.finished {
		return 0, ErrRoomClosed
	}
	if _, ok := r.SeatOf(sid); ok {
		return 0, ErrAlreadySeated
	}
	if r.status != domain.StatusIdle || r.PlayerCount() == len(r.seats) {
		return 0, ErrRoomFull
	}

	seat := domain.Player1
	if r.seats[domain.Player1] != nil {
		seat = domain.Player2
	}
	r.seats[seat] = &occupant{sid: sid}
	r.log.Info().Str("sid", string(sid)).Stringer("seat", seat).Msg("player joined")

	if r.seats[seat.Other()] != nil {
		r.ready()
	}
	return seat, nil
}

// Leave frees the seat of sid and reports whether it held one.
func (r *Room) Leave(sid core.SessionID) bool {
	seat, ok := r.SeatOf(sid)
	if !ok {
		return false
	}
	r.seats[seat] = nil
	r.log.Info().Str("sid", string(sid)).Stringer("seat", seat).Stringer("status", r.status).Msg("player left")

	switch r.status {
	case domain.StatusReady:
		// Back to waiting; the seat can be filled again.
		stopTimer(&r.phase)
		r.status = domain.StatusIdle
		r.toss = domain.TossNone
		r.current = domain.Player1
	case domain.StatusStarted:
		if r.seats[seat.Other()] != nil {
			r.MatchResult(seat.Other())
		}
	}
	return true
}

func (r *Room) ready() {
	r.status = domain.StatusReady
	r.toss = domain.TossPending
	r.current = domain.Player2
	if r.deps.Coin() {
		r.current = domain.Player1
	}
	r.phase = r.deps.Sched.AfterFunc(r.deps.Timing.TossRevealDelay, r.revealToss)
	r.log.Info().Stringer("first", r.current).Msg("room ready, coin tossed")
}

func (r *Room) revealToss() {
	if r.status != domain.StatusReady || r.toss != domain.TossPending {
		return
	}
	r.toss = domain.TossShown
	r.broadcast(core.EvtCoinToss, r.current)
	r.phase = r.deps.Sched.AfterFunc(r.deps.Timing.StartDelay, r.start)
}

func (r *Room) start() {
	r.phase = nil
	if r.status != domain.StatusReady || r.toss != domain.TossShown {
		return
	}
	r.status = domain.StatusStarted
	r.toss = domain.TossNone
	r.broadcast(core.EvtGameStart, turnPayload{CurrentPlayer: r.current})
	r.log.Info().Stringer("first", r.current).Msg("match started")
	r.startTurnTimer()
}

type turnPayload struct {
	CurrentPlayer domain.Seat `json:"currentPlayer"`
}

type changeTurnPayload struct {
	Fault         bool        `json:"fault"`
	CurrentPlayer domain.Seat `json:"currentPlayer"`
	NextTurn      int         `json:"nextTurn"`
}

// ChangeTurn hands the table to the other seat. Only the table calls it.
func (r *Room) ChangeTurn(fault bool) {
	if r.finished || r.status != domain.StatusStarted {
		r.log.Debug().Bool("fault", fault).Msg("changeTurn outside a running match ignored")
		return
	}
	r.current = r.current.Other()
	r.broadcast(core.EvtChangeTurn, changeTurnPayload{
		Fault:         fault,
		CurrentPlayer: r.current,
		NextTurn:      r.current.Turn(),
	})
	r.startTurnTimer()
}

// AssignSuits gives the shooter the group of the first potted object ball.
// Only the first call has an effect.
func (r *Room) AssignSuits(firstPotted int) error {
	if r.suitsAssigned {
		return nil
	}
	if firstPotted <= domain.CueBall || firstPotted == domain.EightBall || firstPotted > domain.MaxBall {
		return ErrInvalidBall
	}
	shooter := domain.SuitOf(firstPotted)
	r.suits[r.current] = shooter
	r.suits[r.current.Other()] = shooter.Complement()
	r.suitsAssigned = true
	// Clients expect player1's group.
	r.broadcast(core.EvtSetBallSuit, r.suits[domain.Player1])
	return nil
}

// IsLegalShot reports whether the current shooter may aim at target while
// remaining balls of their own group are still on the table.
func (r *Room) IsLegalShot(target, remaining int) bool {
	if !r.suitsAssigned {
		return target != domain.EightBall
	}
	suit := r.suits[r.current]
	switch {
	case suit == domain.SuitSolid && target < domain.EightBall:
		return true
	case suit == domain.SuitStripes && target > domain.EightBall:
		return true
	case target == domain.EightBall && remaining == 0:
		return true
	}
	return false
}

type nextBallPayload struct {
	Ball int `json:"ball"`
	Turn int `json:"turn"`
}

func (r *Room) SetNextBallToHit(ball int) {
	r.broadcast(core.EvtSetNextBall, nextBallPayload{Ball: ball, Turn: r.current.Turn()})
}

// MatchResult ends the match with winner and stops all updates. The room is
// torn down afterwards.
func (r *Room) MatchResult(winner domain.Seat) {
	if r.finished || r.destroyed {
		return
	}
	r.finished = true
	r.status = domain.StatusIdle
	r.toss = domain.TossNone
	stopTimer(&r.phase)
	r.stopTurnTimer(true)
	if o := r.seats[winner]; o != nil {
		o.score++
	}
	r.broadcast(core.EvtMatchResult, winner)
	r.log.Info().Stringer("winner", winner).Msg("match result")

	if r.deps.OnFinished != nil {
		r.deps.Sched.AfterFunc(0, func() { r.deps.OnFinished(r) })
	}
}

// Relay forwards a gameplay event to every member unless the room is IDLE.
func (r *Room) Relay(event string, data any) bool {
	if r.status == domain.StatusIdle {
		return false
	}
	r.broadcast(event, data)
	return true
}

// Handle applies a turn-bound command from sid.
func (r *Room) Handle(sid core.SessionID, cmd domain.TurnBound) error {
	seat, ok := r.SeatOf(sid)
	if !ok {
		return ErrNotSeated
	}
	if r.status == domain.StatusIdle || seat != r.current {
		return ErrNotYourTurn
	}

	switch c := cmd.(type) {
	case domain.PlayerShot:
		shot, err := c.Shot()
		if err != nil {
			return err
		}
		r.table.ShotBall(shot)
	case domain.MoveCueBall:
		p, err := c.Position()
		if err != nil {
			return err
		}
		r.table.MoveCueBall(p)
		r.Relay(c.Event(), p)
	case domain.PressDownCueBall:
		r.table.PressDownCueBall(c.Raw)
		r.Relay(c.Event(), c.Raw)
	case domain.PressUpCueBall:
		r.table.PressUpCueBall(c.Raw)
		r.Relay(c.Event(), c.Raw)
	case domain.TimerUpdate:
		r.Relay(core.EvtTimerSync, c.Raw)
	case domain.Cosmetic:
		r.Relay(c.Name, c.Raw)
	default:
		r.log.Warn().Str("event", cmd.Event()).Msg("unhandled turn-bound command")
	}
	return nil
}

type chatPayload struct {
	PID      domain.Seat `json:"pid"`
	Content  string      `json:"content"`
	Username string      `json:"username,omitempty"`
}

// Chat broadcasts a message from a seated player.
// Chat relays msg to both seats, signed with the sender's registered name
// when there is one.
func (r *Room) Chat(sid core.SessionID, msg domain.SendMessage, username string) error {
	seat, ok := r.SeatOf(sid)
	if !ok {
		return ErrNotSeated
	}
	content, err := msg.Content(r.deps.Timing.ChatMaxLen)
	if err != nil {
		return err
	}
	r.broadcast(core.EvtSendMessage, chatPayload{PID: seat, Content: content, Username: username})
	return nil
}

type statePayload struct {
	State         any         `json:"state"`
	CurrentPlayer domain.Seat `json:"currentPlayer"`
	PlayerID      domain.Seat `json:"playerId"`
}

// SendState sends the table snapshot to sid.
func (r *Room) SendState(sid core.SessionID) error {
	seat, ok := r.SeatOf(sid)
	if !ok {
		return ErrNotSeated
	}
	r.deps.Emitter.Emit(sid, core.EvtState, statePayload{
		State:         r.table.State(),
		CurrentPlayer: r.current,
		PlayerID:      seat,
	})
	return nil
}

func (r *Room) update() {
	if r.finished || r.destroyed || r.status != domain.StatusStarted {
		return
	}
	r.table.Update()
}

type turnTimerPayload struct {
	PlayerID domain.Seat `json:"playerId"`
	TimeLeft int         `json:"timeLeft,omitempty"`
}

func (r *Room) startTurnTimer() {
	if r.deps.Timing.TurnTimer <= 0 {
		return
	}
	r.stopTurnTimer(false)
	r.turnLeft = max(int(r.deps.Timing.TurnTimer/time.Second), 1)
	r.broadcast(core.EvtTimerStart, turnTimerPayload{PlayerID: r.current, TimeLeft: r.turnLeft})
	r.turnTick = r.deps.Sched.Every(time.Second, r.countdown)
}

func (r *Room) countdown() {
	r.turnLeft--
	r.broadcast(core.EvtTimerTick, turnTimerPayload{PlayerID: r.current, TimeLeft: r.turnLeft})
	if r.turnLeft > 0 {
		return
	}
	stopTimer(&r.turnTick)
	r.broadcast(core.EvtTimerTimeout, turnTimerPayload{PlayerID: r.current})
	r.turnSwitch = r.deps.Sched.AfterFunc(time.Second, func() {
		r.turnSwitch = nil
		r.ChangeTurn(false)
	})
}

func (r *Room) stopTurnTimer(notify bool) {
	running := r.turnTick != nil || r.turnSwitch != nil
	stopTimer(&r.turnTick)
	stopTimer(&r.turnSwitch)
	if notify && running {
		r.broadcast(core.EvtTimerStop, nil)
	}
}

// Destroy cancels every timer and unloads the table. A failing table never
// keeps the room alive.
func (r *Room) Destroy() {
	if r.destroyed {
		return
	}
	r.destroyed = true
	stopTimer(&r.tick)
	stopTimer(&r.phase)
	r.stopTurnTimer(false)

	var pc panics.Catcher
	pc.Try(r.table.Unload)
	if rec := pc.Recovered(); rec != nil {
		r.log.Error().Err(rec.AsError()).Msg("table unload failed")
	}
	r.seats = [2]*occupant{}
	r.log.Info().Msg("room destroyed")
}

func (r *Room) broadcast(event string, data any) {
	for _, o := range r.seats {
		if o != nil {
			r.deps.Emitter.Emit(o.sid, event, data)
		}
	}
}

func stopTimer(t *core.Timer) {
	if *t != nil {
		(*t).Stop()
		*t = nil
	}
}
