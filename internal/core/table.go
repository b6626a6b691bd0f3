package core

import (
	"encoding/json"

	"github.com/dkeye/Pool/internal/domain"
)

//go:generate mockgen -source=table.go -destination=mocks/table_mock.go -package=mocks

// Table is the ball-state collaborator of a room. Physics live behind it.
type Table interface {
	Update()
	ShotBall(shot domain.Shot)
	PressDownCueBall(raw json.RawMessage)
	MoveCueBall(p domain.Point)
	PressUpCueBall(raw json.RawMessage)
	State() any
	Unload()
}

// TableController is the room surface a Table reports outcomes to.
type TableController interface {
	CurrentSeat() domain.Seat
	ChangeTurn(fault bool)
	AssignSuits(firstPotted int) error
	IsLegalShot(target, remaining int) bool
	SetNextBallToHit(ball int)
	MatchResult(winner domain.Seat)
}

// TableFactory builds the table of a new room.
type TableFactory func(ctl TableController) Table
