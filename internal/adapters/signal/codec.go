package signal

import (
	"bytes"
	stdjson "encoding/json"
	"errors"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/dkeye/Pool/internal/domain"
)

var ErrUnknownEvent = errors.New("unknown event")

type decoder func(data []byte) (domain.Command, error)

var decoders = map[string]decoder{
	domain.EvtCreateRoom:       decodeCreateRoom,
	domain.EvtJoinRoom:         decodeJoinRoom,
	domain.EvtLeaveRoom:        decodeLeaveRoom,
	domain.EvtGetAllRooms:      func([]byte) (domain.Command, error) { return domain.GetAllRooms{}, nil },
	domain.EvtJoinMatchmaking:  decodeJoinMatchmaking,
	domain.EvtLeaveMatchmaking: decodeLeaveMatchmaking,
	domain.EvtRegister:         decodeRegister,
	domain.EvtPing:             func([]byte) (domain.Command, error) { return domain.Ping{}, nil },
	domain.EvtPlayerShot:       decodePlayerShot,
	domain.EvtPressMoveCueBall: decodeMoveCueBall,
	domain.EvtPressDownCueBall: func(b []byte) (domain.Command, error) { return domain.PressDownCueBall{Raw: raw(b)}, nil },
	domain.EvtPressUpCueBall:   func(b []byte) (domain.Command, error) { return domain.PressUpCueBall{Raw: raw(b)}, nil },
	domain.EvtTimerUpdate:      func(b []byte) (domain.Command, error) { return domain.TimerUpdate{Raw: raw(b)}, nil },
	domain.EvtPressHitArea:     cosmetic(domain.EvtPressHitArea),
	domain.EvtPressMoveHitArea: cosmetic(domain.EvtPressMoveHitArea),
	domain.EvtReleaseHitArea:   cosmetic(domain.EvtReleaseHitArea),
	domain.EvtUpdateStick:      cosmetic(domain.EvtUpdateStick),
	domain.EvtSendMessage:      decodeSendMessage,
	domain.EvtGetStates:        func([]byte) (domain.Command, error) { return domain.GetStates{}, nil },
}

// KnownEvent reports whether event names an inbound command.
func KnownEvent(event string) bool {
	_, ok := decoders[event]
	return ok
}

// DecodeCommand turns the data of one inbound event into a typed command.
func DecodeCommand(event string, data []byte) (domain.Command, error) {
	dec, ok := decoders[event]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEvent, event)
	}
	cmd, err := dec(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", event, err)
	}
	return cmd, nil
}

func cosmetic(name string) decoder {
	return func(b []byte) (domain.Command, error) {
		return domain.Cosmetic{Name: name, Raw: raw(b)}, nil
	}
}

func raw(b []byte) stdjson.RawMessage {
	if len(b) == 0 {
		return nil
	}
	return stdjson.RawMessage(bytes.Clone(b))
}

func isEmpty(b []byte) bool {
	b = bytes.TrimSpace(b)
	return len(b) == 0 || bytes.Equal(b, []byte("null"))
}

// Positional payloads never fail to decode: anything malformed comes out
// with missing coordinates and is rejected by the room after the turn check.
func decodeCoords(b []byte) domain.Coords {
	var c domain.Coords
	if isEmpty(b) {
		return c
	}
	if err := json.Unmarshal(b, &c); err != nil {
		return domain.Coords{}
	}
	return c
}

func decodePlayerShot(b []byte) (domain.Command, error) {
	return domain.PlayerShot{Coords: decodeCoords(b)}, nil
}

func decodeMoveCueBall(b []byte) (domain.Command, error) {
	return domain.MoveCueBall{Coords: decodeCoords(b)}, nil
}

func decodeSendMessage(b []byte) (domain.Command, error) {
	var text string
	if err := json.Unmarshal(b, &text); err != nil {
		return domain.SendMessage{}, nil
	}
	return domain.SendMessage{Text: text}, nil
}
