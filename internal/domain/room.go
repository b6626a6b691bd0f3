package domain

type RoomID string

type RoomStatus int

const (
	StatusIdle RoomStatus = iota
	StatusReady
	StatusStarted
)

func (s RoomStatus) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusReady:
		return "ready"
	case StatusStarted:
		return "started"
	}
	return "unknown"
}

// TossPhase tracks the coin toss while a room is READY.
type TossPhase int

const (
	TossNone TossPhase = iota
	TossPending
	TossShown
)

// RoomConfig is fixed at creation.
type RoomConfig struct {
	BetAmount float64
	IsPrivate bool
}

type Suit string

const (
	SuitSolid   Suit = "solid"
	SuitStripes Suit = "stripes"
)

func (s Suit) Complement() Suit {
	if s == SuitSolid {
		return SuitStripes
	}
	return SuitSolid
}

// Ball ranks of eight-ball pool.
const (
	CueBall   = 0
	EightBall = 8
	MaxBall   = 15
)

// SuitOf returns the group an object ball belongs to.
func SuitOf(rank int) Suit {
	if rank < EightBall {
		return SuitSolid
	}
	return SuitStripes
}

// SeatInfo is the public view of one occupied seat.
type SeatInfo struct {
	Key      Seat   `json:"key"`
	PlayerID string `json:"playerid"`
}

// RoomSummary is what the public lobby lists.
type RoomSummary struct {
	RoomID    RoomID     `json:"roomid"`
	Players   []SeatInfo `json:"players"`
	BetAmount float64    `json:"betamount"`
}
