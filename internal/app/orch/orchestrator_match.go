package orch

import (
	"github.com/dkeye/Pool/internal/core"
	"github.com/dkeye/Pool/internal/domain"
)

type coinToss struct {
	Won bool `json:"won"`
}

type matchFound struct {
	RoomID   domain.RoomID `json:"roomId"`
	CoinToss coinToss      `json:"coinToss"`
}

type leftMatchmaking struct {
	Success bool `json:"success"`
}

type registered struct {
	PlayerID core.SessionID `json:"playerId,omitempty"`
	Username string         `json:"username,omitempty"`
	Success  bool           `json:"success"`
	Msg      string         `json:"msg,omitempty"`
}

func (o *Orchestrator) joinMatchmaking(sid core.SessionID, c domain.JoinMatchmaking) {
	if _, ok := o.Registry.RoomOf(sid); ok {
		o.emitError(sid, "Already in a room")
		return
	}
	o.Queue.Enqueue(sid, c.Params)
}

func (o *Orchestrator) leaveMatchmaking(sid core.SessionID) {
	removed := o.Queue.Dequeue(sid)
	o.Emit(sid, core.EvtMatchmakingLeft, leftMatchmaking{Success: removed})
}

// onPair opens a private room owned by owner, seats the owner and tells
// both sides. The peer joins on its own with the room id it received.
func (o *Orchestrator) onPair(owner, peer core.SessionID, ownerWon bool) {
	id := domain.RoomID(owner)
	if _, exists := o.Rooms.GetRoom(id); exists {
		id = domain.RoomID(o.newID())
	}
	room, err := o.Rooms.CreateRoom(id, domain.RoomConfig{IsPrivate: true})
	if err != nil {
		o.log.Error().Err(err).Str("owner", string(owner)).Msg("matchmaking room")
		o.emitError(owner, "Match creation failed")
		o.emitError(peer, "Match creation failed")
		return
	}
	seat, err := room.Join(owner)
	if err != nil {
		o.log.Error().Err(err).Str("owner", string(owner)).Msg("owner could not join match room")
		o.Rooms.DestroyRoom(id)
		o.emitError(owner, "Match creation failed")
		o.emitError(peer, "Match creation failed")
		return
	}
	o.seated(owner, room, seat)

	o.Emit(owner, core.EvtMatchFound, matchFound{RoomID: id, CoinToss: coinToss{Won: ownerWon}})
	o.Emit(peer, core.EvtMatchFound, matchFound{RoomID: id, CoinToss: coinToss{Won: !ownerWon}})
	o.log.Info().Str("room_id", string(id)).Str("owner", string(owner)).Str("peer", string(peer)).Msg("match created")
}

func (o *Orchestrator) register(sid core.SessionID, c domain.Register) {
	name := c.Username
	if name == "" {
		seed := o.Registry.Token(sid)
		if seed == "" {
			seed = string(sid)
		}
		name = domain.DefaultUsername(seed)
	}
	user, err := domain.NewUser(domain.UserID(sid), name)
	if err != nil {
		o.Emit(sid, core.EvtRegistered, registered{Msg: err.Error()})
		return
	}
	o.Registry.SetUser(sid, user)
	o.Emit(sid, core.EvtRegistered, registered{PlayerID: sid, Username: user.Username, Success: true})
}
