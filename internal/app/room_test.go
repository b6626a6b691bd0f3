package app_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/dkeye/Pool/internal/app"
	"github.com/dkeye/Pool/internal/app/sched"
	"github.com/dkeye/Pool/internal/core"
	"github.com/dkeye/Pool/internal/core/mocks"
	"github.com/dkeye/Pool/internal/domain"
)

const (
	sidA core.SessionID = "A"
	sidB core.SessionID = "B"
	sidC core.SessionID = "C"
)

type roomFixture struct {
	reg      *app.RoomRegistry
	room     *app.Room
	sched    *sched.Manual
	emit     *emitterMock
	table    *mocks.MockTable
	finished []*app.Room
}

func newRoomFixture(t *testing.T, tweak ...func(*app.RoomDeps)) *roomFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	tb := mocks.NewMockTable(ctrl)
	tb.EXPECT().Unload().AnyTimes()

	f := &roomFixture{sched: sched.NewManual(), emit: &emitterMock{}, table: tb}
	deps := app.RoomDeps{
		Sched:   f.sched,
		Emitter: f.emit,
		Tables:  func(core.TableController) core.Table { return tb },
		Coin:    func() bool { return true },
		Timing: app.RoomTiming{
			TossRevealDelay: 1500 * time.Millisecond,
			StartDelay:      time.Second,
			ChatMaxLen:      500,
		},
		OnFinished: func(r *app.Room) { f.finished = append(f.finished, r) },
		Log:        zerolog.Nop(),
	}
	for _, fn := range tweak {
		fn(&deps)
	}
	f.reg = app.NewRoomRegistry(deps)
	room, err := f.reg.CreateRoom("A", domain.RoomConfig{BetAmount: 100})
	require.NoError(t, err)
	f.room = room
	return f
}

// start seats A and B and runs the coin toss through to STARTED.
func (f *roomFixture) start(t *testing.T) {
	t.Helper()
	_, err := f.room.Join(sidA)
	require.NoError(t, err)
	_, err = f.room.Join(sidB)
	require.NoError(t, err)
	f.sched.Advance(2500 * time.Millisecond)
	require.Equal(t, domain.StatusStarted, f.room.Status())
}

func coords(x, y float64) domain.Coords {
	return domain.Coords{X: &x, Y: &y}
}

func TestRoom_JoinAndCoinToss(t *testing.T) {
	t.Parallel()
	f := newRoomFixture(t)

	seat, err := f.room.Join(sidA)
	require.NoError(t, err)
	assert.Equal(t, domain.Player1, seat)
	assert.Equal(t, domain.StatusIdle, f.room.Status())

	seat, err = f.room.Join(sidB)
	require.NoError(t, err)
	assert.Equal(t, domain.Player2, seat)
	assert.Equal(t, domain.StatusReady, f.room.Status())
	assert.Equal(t, domain.TossPending, f.room.TossPhase())

	f.sched.Advance(1499 * time.Millisecond)
	assert.Zero(t, f.emit.count(sidA, core.EvtCoinToss))

	f.sched.Advance(time.Millisecond)
	assert.Equal(t, domain.TossShown, f.room.TossPhase())
	for _, sid := range []core.SessionID{sidA, sidB} {
		var first string
		f.emit.last(t, sid, core.EvtCoinToss, &first)
		assert.Equal(t, "player1", first)
	}
	assert.Equal(t, domain.StatusReady, f.room.Status())

	f.sched.Advance(time.Second)
	assert.Equal(t, domain.StatusStarted, f.room.Status())
	assert.Equal(t, domain.Player1, f.room.CurrentSeat())

	events := f.emit.events(sidB)
	toss, start := indexOf(events, core.EvtCoinToss), indexOf(events, core.EvtGameStart)
	require.NotEqual(t, -1, start)
	assert.Less(t, toss, start)
}

func TestRoom_CoinTossPicksSecondSeat(t *testing.T) {
	t.Parallel()
	f := newRoomFixture(t, func(d *app.RoomDeps) { d.Coin = func() bool { return false } })
	f.start(t)
	assert.Equal(t, domain.Player2, f.room.CurrentSeat())
}

func TestRoom_NeverMoreThanTwoSeats(t *testing.T) {
	t.Parallel()
	f := newRoomFixture(t)

	_, err := f.room.Join(sidA)
	require.NoError(t, err)
	_, err = f.room.Join(sidA)
	assert.ErrorIs(t, err, app.ErrAlreadySeated)

	_, err = f.room.Join(sidB)
	require.NoError(t, err)
	_, err = f.room.Join(sidC)
	assert.ErrorIs(t, err, app.ErrRoomFull)
	assert.Equal(t, 2, f.room.PlayerCount())

	f.sched.Advance(5 * time.Second)
	_, err = f.room.Join(sidC)
	assert.ErrorIs(t, err, app.ErrRoomFull)
	assert.Equal(t, 2, f.room.PlayerCount())
}

func TestRoom_LeaveIsIdempotent(t *testing.T) {
	t.Parallel()
	f := newRoomFixture(t)

	assert.False(t, f.room.Leave(sidC))

	_, err := f.room.Join(sidA)
	require.NoError(t, err)
	assert.True(t, f.room.Leave(sidA))
	assert.False(t, f.room.Leave(sidA))
	assert.Zero(t, f.room.PlayerCount())
}

func TestRoom_LeaveDuringCoinTossReturnsToIdle(t *testing.T) {
	t.Parallel()
	f := newRoomFixture(t)

	_, _ = f.room.Join(sidA)
	_, _ = f.room.Join(sidB)
	f.sched.Advance(1500 * time.Millisecond)
	require.Equal(t, domain.TossShown, f.room.TossPhase())

	require.True(t, f.room.Leave(sidB))
	assert.Equal(t, domain.StatusIdle, f.room.Status())
	assert.Equal(t, domain.TossNone, f.room.TossPhase())

	f.sched.Advance(10 * time.Second)
	assert.Equal(t, domain.StatusIdle, f.room.Status())
	assert.Zero(t, f.emit.count(sidA, core.EvtGameStart))

	seat, err := f.room.Join(sidC)
	require.NoError(t, err)
	assert.Equal(t, domain.Player2, seat)
	assert.Equal(t, domain.StatusReady, f.room.Status())
}

func TestRoom_AbandonDeclaresWinner(t *testing.T) {
	t.Parallel()
	f := newRoomFixture(t)
	f.start(t)

	require.True(t, f.room.Leave(sidA))

	var winner string
	f.emit.last(t, sidB, core.EvtMatchResult, &winner)
	assert.Equal(t, "player2", winner)
	assert.Zero(t, f.emit.count(sidA, core.EvtMatchResult))
	assert.True(t, f.room.Finished())
	assert.Equal(t, domain.StatusIdle, f.room.Status())
	assert.Equal(t, 1, f.room.Score(domain.Player2))

	f.sched.Flush()
	require.Len(t, f.finished, 1)
	assert.Same(t, f.room, f.finished[0])
}

func TestRoom_ChangeTurnAlternates(t *testing.T) {
	t.Parallel()
	f := newRoomFixture(t)
	f.start(t)

	prev := f.room.CurrentSeat()
	for i := range 7 {
		f.room.ChangeTurn(i%2 == 0)
		cur := f.room.CurrentSeat()
		assert.Equal(t, prev.Other(), cur)
		prev = cur

		var p struct {
			Fault         bool   `json:"fault"`
			CurrentPlayer string `json:"currentPlayer"`
			NextTurn      int    `json:"nextTurn"`
		}
		f.emit.last(t, sidA, core.EvtChangeTurn, &p)
		assert.Equal(t, i%2 == 0, p.Fault)
		assert.Equal(t, cur.String(), p.CurrentPlayer)
		assert.Equal(t, cur.Turn(), p.NextTurn)
	}
	assert.Equal(t, 7, f.emit.count(sidB, core.EvtChangeTurn))
}

func TestRoom_ChangeTurnIgnoredBeforeStart(t *testing.T) {
	t.Parallel()
	f := newRoomFixture(t)
	_, _ = f.room.Join(sidA)

	f.room.ChangeTurn(false)
	assert.Equal(t, domain.Player1, f.room.CurrentSeat())
	assert.Zero(t, f.emit.count(sidA, core.EvtChangeTurn))
}

func TestRoom_AssignSuits(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name       string
		coin       bool
		ball       int
		wantP1     domain.Suit
		wantP2     domain.Suit
		wantBanner string
	}{
		{"player1 pots solid", true, 3, domain.SuitSolid, domain.SuitStripes, "solid"},
		{"player1 pots stripe", true, 12, domain.SuitStripes, domain.SuitSolid, "stripes"},
		{"player2 pots solid", false, 1, domain.SuitStripes, domain.SuitSolid, "stripes"},
		{"player2 pots stripe", false, 15, domain.SuitSolid, domain.SuitStripes, "solid"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			f := newRoomFixture(t, func(d *app.RoomDeps) { d.Coin = func() bool { return tt.coin } })
			f.start(t)

			require.NoError(t, f.room.AssignSuits(tt.ball))
			assert.True(t, f.room.SuitsAssigned())
			assert.Equal(t, tt.wantP1, f.room.SuitOf(domain.Player1))
			assert.Equal(t, tt.wantP2, f.room.SuitOf(domain.Player2))

			var banner string
			f.emit.last(t, sidB, core.EvtSetBallSuit, &banner)
			assert.Equal(t, tt.wantBanner, banner)
		})
	}
}

func TestRoom_AssignSuitsOnlyOnce(t *testing.T) {
	t.Parallel()
	f := newRoomFixture(t)
	f.start(t)

	require.NoError(t, f.room.AssignSuits(2))
	f.room.ChangeTurn(false)
	require.NoError(t, f.room.AssignSuits(10))
	require.NoError(t, f.room.AssignSuits(5))

	assert.Equal(t, domain.SuitSolid, f.room.SuitOf(domain.Player1))
	assert.Equal(t, domain.SuitStripes, f.room.SuitOf(domain.Player2))
	assert.Equal(t, 1, f.emit.count(sidA, core.EvtSetBallSuit))
}

func TestRoom_AssignSuitsRejectsCueAndEight(t *testing.T) {
	t.Parallel()
	f := newRoomFixture(t)
	f.start(t)

	for _, ball := range []int{0, 8, 16, -1} {
		assert.ErrorIs(t, f.room.AssignSuits(ball), app.ErrInvalidBall)
	}
	assert.False(t, f.room.SuitsAssigned())
}

func TestRoom_IsLegalShot(t *testing.T) {
	t.Parallel()
	f := newRoomFixture(t)
	f.start(t)
	require.Equal(t, domain.Player1, f.room.CurrentSeat())

	unassigned := []struct {
		target int
		want   bool
	}{
		{8, false},
		{3, true},
		{11, true},
	}
	for _, tt := range unassigned {
		assert.Equal(t, tt.want, f.room.IsLegalShot(tt.target, 7), "unassigned target %d", tt.target)
	}

	require.NoError(t, f.room.AssignSuits(4))
	require.Equal(t, domain.SuitSolid, f.room.SuitOf(domain.Player1))

	solid := []struct {
		target    int
		remaining int
		want      bool
	}{
		{3, 5, true},
		{11, 5, false},
		{8, 0, true},
		{8, 1, false},
	}
	for _, tt := range solid {
		assert.Equal(t, tt.want, f.room.IsLegalShot(tt.target, tt.remaining), "solid target %d remaining %d", tt.target, tt.remaining)
	}

	f.room.ChangeTurn(false)
	assert.True(t, f.room.IsLegalShot(11, 3))
	assert.False(t, f.room.IsLegalShot(3, 3))
}

func TestRoom_TurnAuthorization(t *testing.T) {
	t.Parallel()
	f := newRoomFixture(t)
	f.start(t)

	f.table.EXPECT().ShotBall(domain.Shot{X: 1, Y: 2}).Times(1)

	err := f.room.Handle(sidB, domain.PlayerShot{Coords: coords(1, 2)})
	assert.ErrorIs(t, err, app.ErrNotYourTurn)

	err = f.room.Handle(sidB, domain.PlayerShot{})
	assert.ErrorIs(t, err, app.ErrNotYourTurn, "turn check comes before validation")

	err = f.room.Handle(sidC, domain.PlayerShot{Coords: coords(1, 2)})
	assert.ErrorIs(t, err, app.ErrNotSeated)

	require.NoError(t, f.room.Handle(sidA, domain.PlayerShot{Coords: coords(1, 2)}))
}

func TestRoom_InvalidShotIsCritical(t *testing.T) {
	t.Parallel()
	f := newRoomFixture(t)
	f.start(t)

	inf := math.Inf(1)
	for _, c := range []domain.Coords{{}, {X: &inf, Y: &inf}} {
		err := f.room.Handle(sidA, domain.PlayerShot{Coords: c})
		var verr *domain.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.True(t, verr.Critical)
		assert.ErrorIs(t, err, domain.ErrInvalidPoint)
	}
}

func TestRoom_RelaysCueBallAndCosmetics(t *testing.T) {
	t.Parallel()
	f := newRoomFixture(t)
	f.start(t)

	f.table.EXPECT().MoveCueBall(domain.Point{X: 3, Y: 4}).Times(1)
	f.table.EXPECT().PressDownCueBall(gomock.Any()).Times(1)

	require.NoError(t, f.room.Handle(sidA, domain.MoveCueBall{Coords: coords(3, 4)}))
	require.NoError(t, f.room.Handle(sidA, domain.PressDownCueBall{Raw: []byte(`{"x":3}`)}))
	require.NoError(t, f.room.Handle(sidA, domain.Cosmetic{Name: domain.EvtUpdateStick, Raw: []byte(`{"angle":1.2}`)}))
	require.NoError(t, f.room.Handle(sidA, domain.TimerUpdate{Raw: []byte(`{"timeLeft":9}`)}))

	var p domain.Point
	f.emit.last(t, sidB, domain.EvtPressMoveCueBall, &p)
	assert.Equal(t, domain.Point{X: 3, Y: 4}, p)

	var stick map[string]float64
	f.emit.last(t, sidB, domain.EvtUpdateStick, &stick)
	assert.Equal(t, 1.2, stick["angle"])
	assert.Equal(t, 1, f.emit.count(sidB, core.EvtTimerSync))

	err := f.room.Handle(sidB, domain.Cosmetic{Name: domain.EvtUpdateStick, Raw: []byte(`{}`)})
	assert.ErrorIs(t, err, app.ErrNotYourTurn)
	assert.Equal(t, 1, f.emit.count(sidA, domain.EvtUpdateStick))
}

func TestRoom_RelaySuppressedWhileIdle(t *testing.T) {
	t.Parallel()
	f := newRoomFixture(t)
	_, _ = f.room.Join(sidA)

	assert.False(t, f.room.Relay(domain.EvtUpdateStick, nil))
	assert.Empty(t, f.emit.events(sidA))

	err := f.room.Handle(sidA, domain.Cosmetic{Name: domain.EvtUpdateStick})
	assert.ErrorIs(t, err, app.ErrNotYourTurn)
}

func TestRoom_TickDelegatesOnlyWhileStarted(t *testing.T) {
	t.Parallel()
	f := newRoomFixture(t, func(d *app.RoomDeps) {
		d.Timing.TickInterval = 100 * time.Millisecond
		d.Timing.StartDelay = 950 * time.Millisecond
	})

	_, _ = f.room.Join(sidA)
	_, _ = f.room.Join(sidB)
	f.sched.Advance(2450 * time.Millisecond)
	require.Equal(t, domain.StatusStarted, f.room.Status())

	f.table.EXPECT().Update().Times(10)
	f.sched.Advance(time.Second)

	f.room.MatchResult(domain.Player1)
	f.sched.Advance(time.Second)
}

func TestRoom_MatchResultOnce(t *testing.T) {
	t.Parallel()
	f := newRoomFixture(t)
	f.start(t)

	f.room.MatchResult(domain.Player1)
	f.room.MatchResult(domain.Player2)
	f.sched.Flush()

	assert.Equal(t, 1, f.emit.count(sidA, core.EvtMatchResult))
	assert.Equal(t, 1, f.room.Score(domain.Player1))
	assert.Zero(t, f.room.Score(domain.Player2))
	assert.Len(t, f.finished, 1)

	f.room.ChangeTurn(true)
	assert.Zero(t, f.emit.count(sidA, core.EvtChangeTurn))
}

func TestRoom_TurnTimer(t *testing.T) {
	t.Parallel()
	f := newRoomFixture(t, func(d *app.RoomDeps) { d.Timing.TurnTimer = 3 * time.Second })
	f.start(t)
	require.Equal(t, domain.Player1, f.room.CurrentSeat())
	assert.Equal(t, 1, f.emit.count(sidA, core.EvtTimerStart))

	f.sched.Advance(3 * time.Second)
	assert.Equal(t, 3, f.emit.count(sidA, core.EvtTimerTick))
	assert.Equal(t, 1, f.emit.count(sidA, core.EvtTimerTimeout))
	assert.Equal(t, domain.Player1, f.room.CurrentSeat())

	f.sched.Advance(time.Second)
	assert.Equal(t, domain.Player2, f.room.CurrentSeat())
	assert.Equal(t, 2, f.emit.count(sidA, core.EvtTimerStart))
}

func TestRoom_TurnTimerRestartsOnChangeTurn(t *testing.T) {
	t.Parallel()
	f := newRoomFixture(t, func(d *app.RoomDeps) { d.Timing.TurnTimer = 3 * time.Second })
	f.start(t)

	f.sched.Advance(2 * time.Second)
	f.room.ChangeTurn(false)
	f.sched.Advance(2 * time.Second)
	assert.Zero(t, f.emit.count(sidA, core.EvtTimerTimeout))
	assert.Equal(t, domain.Player2, f.room.CurrentSeat())
}

func TestRoom_Chat(t *testing.T) {
	t.Parallel()
	f := newRoomFixture(t)
	_, _ = f.room.Join(sidA)
	_, _ = f.room.Join(sidB)

	require.NoError(t, f.room.Chat(sidB, domain.SendMessage{Text: "good\x07 luck"}, "Shark"))
	var msg struct {
		PID      string `json:"pid"`
		Content  string `json:"content"`
		Username string `json:"username"`
	}
	f.emit.last(t, sidA, core.EvtSendMessage, &msg)
	assert.Equal(t, "player2", msg.PID)
	assert.Equal(t, "good luck", msg.Content)
	assert.Equal(t, "Shark", msg.Username)

	err := f.room.Chat(sidA, domain.SendMessage{}, "")
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.False(t, verr.Critical)

	assert.ErrorIs(t, f.room.Chat(sidC, domain.SendMessage{Text: "hi"}, ""), app.ErrNotSeated)
}

func TestRoom_SendState(t *testing.T) {
	t.Parallel()
	f := newRoomFixture(t)
	f.start(t)
	f.table.EXPECT().State().Return(map[string]int{"shots": 4})

	require.NoError(t, f.room.SendState(sidB))
	var st struct {
		State         map[string]int `json:"state"`
		CurrentPlayer string         `json:"currentPlayer"`
		PlayerID      string         `json:"playerId"`
	}
	f.emit.last(t, sidB, core.EvtState, &st)
	assert.Equal(t, 4, st.State["shots"])
	assert.Equal(t, "player1", st.CurrentPlayer)
	assert.Equal(t, "player2", st.PlayerID)
	assert.Zero(t, f.emit.count(sidA, core.EvtState))
}

func TestRoom_DestroySurvivesFailingTable(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	tb := mocks.NewMockTable(ctrl)
	tb.EXPECT().Unload().Do(func() { panic("boom") }).Times(1)

	f := newRoomFixture(t, func(d *app.RoomDeps) {
		d.Tables = func(core.TableController) core.Table { return tb }
		d.Timing.TickInterval = 16 * time.Millisecond
	})
	f.start(t)

	require.True(t, f.reg.DestroyRoom(f.room.ID()))
	assert.True(t, f.room.Destroyed())
	_, ok := f.reg.GetRoom(f.room.ID())
	assert.False(t, ok)
	assert.Zero(t, f.sched.Pending())

	f.room.Destroy()
	f.sched.Advance(time.Second)
}
