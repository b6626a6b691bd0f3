package core

import "github.com/goccy/go-json"

// Outbound event names.
const (
	EvtCreateRoomRes   = "createroom-res"
	EvtJoinRoomRes     = "joinroom-res"
	EvtLeaveRoomRes    = "leaveroom-res"
	EvtAddRoom         = "add-room"
	EvtRemoveRoom      = "remove-room"
	EvtSetAllRoom      = "setall-room"
	EvtNewJoin         = "new-join"
	EvtChangeTurn      = "changeTurn"
	EvtCoinToss        = "_coinToss"
	EvtGameStart       = "game-start"
	EvtMatchResult     = "matchResult"
	EvtSetBallSuit     = "setBallInInterface"
	EvtSetNextBall     = "setNextBallToHit"
	EvtState           = "iState"
	EvtSendMessage     = "send-message"
	EvtTimerSync       = "timer-sync"
	EvtTimerStart      = "timer-start"
	EvtTimerTick       = "timer-update"
	EvtTimerTimeout    = "timer-timeout"
	EvtTimerStop       = "timer-stop"
	EvtMatchFound      = "match_found"
	EvtMatchTimeout    = "match_timeout"
	EvtSearchStatus    = "search_status"
	EvtMatchmakingLeft = "matchmaking_left"
	EvtRegistered      = "registered"
	EvtPong            = "pong"
	EvtError           = "error"
)

// Envelope is the frame layout in both directions.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

type outbound struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
}

func EncodeEvent(event string, data any) (Frame, error) {
	b, err := json.Marshal(outbound{Event: event, Data: data})
	if err != nil {
		return nil, err
	}
	return Frame(b), nil
}

// ErrorPayload is the body of an error event.
type ErrorPayload struct {
	Message string `json:"message"`
}
