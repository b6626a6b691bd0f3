// Package table holds the ball-state collaborator the server ships with.
// It keeps what clients report about the cue ball and shots so late
// joiners and reconnecting clients can be given a snapshot; the physics
// simulation itself runs in the browser.
package table

import (
	"encoding/json"

	"github.com/dkeye/Pool/internal/core"
	"github.com/dkeye/Pool/internal/domain"
)

type Snapshot struct {
	ctl      core.TableController
	cueBall  *domain.Point
	lastShot *domain.Shot
	shots    int
	frames   uint64
	aiming   bool
	unloaded bool
}

// New is a core.TableFactory.
func New(ctl core.TableController) core.Table {
	return &Snapshot{ctl: ctl}
}

// State is what getStates reports.
type State struct {
	CueBall  *domain.Point `json:"cueBall,omitempty"`
	LastShot *domain.Shot  `json:"lastShot,omitempty"`
	Shots    int           `json:"shots"`
	Frames   uint64        `json:"frames"`
	Aiming   bool          `json:"aiming"`
	Turn     domain.Seat   `json:"turn"`
}

func (t *Snapshot) Update() {
	if t.unloaded {
		return
	}
	t.frames++
}

func (t *Snapshot) ShotBall(shot domain.Shot) {
	t.lastShot = &shot
	t.shots++
	t.aiming = false
}

func (t *Snapshot) PressDownCueBall(json.RawMessage) { t.aiming = true }

func (t *Snapshot) MoveCueBall(p domain.Point) { t.cueBall = &p }

func (t *Snapshot) PressUpCueBall(json.RawMessage) { t.aiming = false }

func (t *Snapshot) State() any {
	return State{
		CueBall:  t.cueBall,
		LastShot: t.lastShot,
		Shots:    t.shots,
		Frames:   t.frames,
		Aiming:   t.aiming,
		Turn:     t.ctl.CurrentSeat(),
	}
}

func (t *Snapshot) Unload() { t.unloaded = true }
