package orch

import (
	"errors"
	"fmt"

	"github.com/dkeye/Pool/internal/app"
	"github.com/dkeye/Pool/internal/core"
	"github.com/dkeye/Pool/internal/domain"
)

// Dispatch routes one decoded command from sid. Must run on the loop.
func (o *Orchestrator) Dispatch(sid core.SessionID, cmd domain.Command) {
	switch c := cmd.(type) {
	case domain.CreateRoom:
		o.createRoom(sid, c)
	case domain.JoinRoom:
		o.joinRoom(sid, c)
	case domain.LeaveRoom:
		o.leaveRoom(sid, c)
	case domain.GetAllRooms:
		o.listRooms(sid)
	case domain.JoinMatchmaking:
		o.joinMatchmaking(sid, c)
	case domain.LeaveMatchmaking:
		o.leaveMatchmaking(sid)
	case domain.Register:
		o.register(sid, c)
	case domain.Ping:
		o.Emit(sid, core.EvtPong, nil)
	case domain.SendMessage:
		var name string
		if u, ok := o.Registry.User(sid); ok {
			name = u.Username
		}
		o.inRoom(sid, cmd, func(r *app.Room) error { return r.Chat(sid, c, name) })
	case domain.GetStates:
		o.inRoom(sid, cmd, func(r *app.Room) error { return r.SendState(sid) })
	case domain.TurnBound:
		o.inRoom(sid, cmd, func(r *app.Room) error { return r.Handle(sid, c) })
	default:
		o.log.Warn().Str("sid", string(sid)).Str("event", cmd.Event()).Msg("unknown command")
	}
}

func (o *Orchestrator) inRoom(sid core.SessionID, cmd domain.Command, fn func(*app.Room) error) {
	id, ok := o.Registry.RoomOf(sid)
	if !ok {
		o.log.Debug().Str("sid", string(sid)).Str("event", cmd.Event()).Msg("not in a room, dropped")
		return
	}
	room, ok := o.Rooms.GetRoom(id)
	if !ok {
		o.Registry.RemoveRoom(sid)
		o.handleGameErr(sid, cmd.Event(), fmt.Errorf("room %s: %w", id, app.ErrRoomNotFound))
		return
	}
	o.handleGameErr(sid, cmd.Event(), fn(room))
}

func (o *Orchestrator) handleGameErr(sid core.SessionID, event string, err error) {
	if err == nil {
		return
	}
	var verr *domain.ValidationError
	switch {
	case errors.Is(err, app.ErrNotYourTurn), errors.Is(err, app.ErrNotSeated):
		o.log.Debug().Str("sid", string(sid)).Str("event", event).Msg("unauthorized, dropped")
	case errors.As(err, &verr) && verr.Critical:
		o.log.Warn().Err(err).Str("sid", string(sid)).Str("event", event).Msg("invalid payload")
		o.emitError(sid, fmt.Sprintf("Invalid %s data", verr.Field))
	case errors.As(err, &verr):
		o.log.Debug().Err(err).Str("sid", string(sid)).Str("event", event).Msg("invalid payload dropped")
	default:
		o.log.Warn().Err(err).Str("sid", string(sid)).Str("event", event).Msg("command failed")
	}
}
