package orch

import (
	"errors"
	"math"

	"github.com/dkeye/Pool/internal/app"
	"github.com/dkeye/Pool/internal/core"
	"github.com/dkeye/Pool/internal/domain"
)

type roomAck struct {
	Msg     string        `json:"msg,omitempty"`
	Success bool          `json:"success"`
	RoomID  domain.RoomID `json:"roomid,omitempty"`
	PID     *domain.Seat  `json:"pid,omitempty"`
}

type roomRef struct {
	RoomID domain.RoomID `json:"roomid"`
}

type newJoin struct {
	RoomID domain.RoomID  `json:"roomid"`
	PosID  domain.Seat    `json:"posid"`
	PID    core.SessionID `json:"pid"`
}

// Connect binds a freshly upgraded connection.
func (o *Orchestrator) Connect(sid core.SessionID, conn core.SignalConnection, token string) {
	o.Registry.BindSignal(sid, conn, token)
}

// Disconnect releases everything sid held: its queue entry, its seat and
// its binding.
func (o *Orchestrator) Disconnect(sid core.SessionID) {
	o.Queue.Dequeue(sid)
	if id, ok := o.Registry.RoomOf(sid); ok {
		if room, ok := o.Rooms.GetRoom(id); ok && room.Leave(sid) {
			o.Registry.RemoveRoom(sid)
			o.afterSeatLoss(room)
		}
	}
	o.Registry.Unbind(sid)
}

func (o *Orchestrator) createRoom(sid core.SessionID, c domain.CreateRoom) {
	if _, ok := o.Registry.RoomOf(sid); ok {
		o.Emit(sid, core.EvtCreateRoomRes, roomAck{Msg: "already in room"})
		return
	}
	if c.Amount < 0 || math.IsNaN(c.Amount) || math.IsInf(c.Amount, 0) {
		o.Emit(sid, core.EvtCreateRoomRes, roomAck{Msg: "invalid amount"})
		return
	}

	cfg := domain.RoomConfig{BetAmount: c.Amount, IsPrivate: c.IsPrivate}
	room, err := o.Rooms.CreateRoom(domain.RoomID(sid), cfg)
	if err != nil {
		o.log.Info().Err(err).Str("sid", string(sid)).Msg("create room rejected")
		o.Emit(sid, core.EvtCreateRoomRes, roomAck{Msg: "already exists"})
		return
	}
	if _, err := room.Join(sid); err != nil {
		o.log.Error().Err(err).Str("sid", string(sid)).Msg("creator could not join own room")
		o.Rooms.DestroyRoom(room.ID())
		o.Emit(sid, core.EvtCreateRoomRes, roomAck{Msg: "failed"})
		return
	}
	o.Queue.Dequeue(sid)
	o.Registry.UpdateRoom(sid, room.ID())

	o.Emit(sid, core.EvtCreateRoomRes, roomAck{Success: true, RoomID: room.ID()})
	if !cfg.IsPrivate {
		o.broadcastAll(core.EvtAddRoom, room.Summary())
	}
}

func (o *Orchestrator) joinRoom(sid core.SessionID, c domain.JoinRoom) {
	if _, ok := o.Registry.RoomOf(sid); ok {
		o.Emit(sid, core.EvtJoinRoomRes, roomAck{Msg: "already in room"})
		return
	}

	var (
		room *app.Room
		ok   bool
	)
	if c.RoomID == "" {
		room, ok = o.Rooms.FindOpenRoom()
	} else {
		room, ok = o.Rooms.GetRoom(c.RoomID)
	}
	if !ok {
		o.Emit(sid, core.EvtJoinRoomRes, roomAck{Msg: "not exists"})
		return
	}

	seat, err := room.Join(sid)
	if err != nil {
		msg := "already full join"
		if errors.Is(err, app.ErrRoomClosed) {
			msg = "not exists"
		}
		o.log.Info().Err(err).Str("sid", string(sid)).Str("room_id", string(room.ID())).Msg("join rejected")
		o.Emit(sid, core.EvtJoinRoomRes, roomAck{Msg: msg})
		return
	}
	o.seated(sid, room, seat)

	if !room.Config().IsPrivate {
		if seat == domain.Player2 {
			o.broadcastAll(core.EvtNewJoin, newJoin{RoomID: room.ID(), PosID: seat, PID: sid})
		}
		o.broadcastAll(core.EvtAddRoom, room.Summary())
	}
}

func (o *Orchestrator) seated(sid core.SessionID, room *app.Room, seat domain.Seat) {
	o.Queue.Dequeue(sid)
	o.Registry.UpdateRoom(sid, room.ID())
	o.Emit(sid, core.EvtJoinRoomRes, roomAck{Msg: "joining success", Success: true, RoomID: room.ID(), PID: &seat})
}

func (o *Orchestrator) leaveRoom(sid core.SessionID, c domain.LeaveRoom) {
	id := c.RoomID
	if id == "" {
		id, _ = o.Registry.RoomOf(sid)
	}
	room, ok := o.Rooms.GetRoom(id)
	if !ok || !room.Leave(sid) {
		o.Emit(sid, core.EvtLeaveRoomRes, roomAck{Msg: "not existed"})
		return
	}
	if cur, _ := o.Registry.RoomOf(sid); cur == id {
		o.Registry.RemoveRoom(sid)
	}
	o.Emit(sid, core.EvtLeaveRoomRes, roomAck{Msg: "success", Success: true})
	o.afterSeatLoss(room)
}

func (o *Orchestrator) listRooms(sid core.SessionID) {
	o.Emit(sid, core.EvtSetAllRoom, o.Rooms.ListPublicRooms())
}

// afterSeatLoss tears the room down once it is empty or its match is over,
// otherwise refreshes its lobby entry.
func (o *Orchestrator) afterSeatLoss(room *app.Room) {
	if room.PlayerCount() == 0 || room.Finished() {
		o.teardown(room)
		return
	}
	if !room.Config().IsPrivate {
		o.broadcastAll(core.EvtAddRoom, room.Summary())
	}
}

func (o *Orchestrator) onMatchFinished(room *app.Room) {
	if cur, ok := o.Rooms.GetRoom(room.ID()); ok && cur == room {
		o.teardown(room)
	}
}

func (o *Orchestrator) teardown(room *app.Room) {
	id := room.ID()
	for _, sid := range room.Members() {
		if cur, _ := o.Registry.RoomOf(sid); cur == id {
			o.Registry.RemoveRoom(sid)
		}
	}
	o.Rooms.DestroyRoom(id)
	if !room.Config().IsPrivate {
		o.broadcastAll(core.EvtRemoveRoom, roomRef{RoomID: id})
	}
}
