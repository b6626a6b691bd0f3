package app

import (
	"github.com/dkeye/Pool/internal/core"
	"github.com/dkeye/Pool/internal/domain"
)

type BackpressureAction int

const (
	NoAction BackpressureAction = iota
	KickMember
	DropFrame
)

// Policy decides what happens to a connection whose send buffer is full.
type Policy interface {
	OnBackPressure(sid core.SessionID, event string) BackpressureAction
}

// SimplePolicy disconnects slow consumers.
type SimplePolicy struct{}

func (SimplePolicy) OnBackPressure(core.SessionID, string) BackpressureAction {
	return KickMember
}

// droppable are outbound events a client recovers from on the next frame.
var droppable = map[string]struct{}{
	domain.EvtPressHitArea:     {},
	domain.EvtPressMoveHitArea: {},
	domain.EvtReleaseHitArea:   {},
	domain.EvtUpdateStick:      {},
	domain.EvtPressMoveCueBall: {},
	core.EvtTimerSync:          {},
	core.EvtTimerTick:          {},
	core.EvtSearchStatus:       {},
}

// RelayPolicy drops high-rate relay and status frames and disconnects the
// consumer on anything else: a lost turn or result event desyncs the match.
type RelayPolicy struct{}

func (RelayPolicy) OnBackPressure(_ core.SessionID, event string) BackpressureAction {
	if _, ok := droppable[event]; ok {
		return DropFrame
	}
	return KickMember
}
