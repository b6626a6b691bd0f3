package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Inbound event names.
const (
	EvtCreateRoom       = "createroom-req"
	EvtJoinRoom         = "joinroom-req"
	EvtLeaveRoom        = "leaveroom-req"
	EvtGetAllRooms      = "getall-room"
	EvtJoinMatchmaking  = "join-matchmaking"
	EvtLeaveMatchmaking = "leave-matchmaking"
	EvtRegister         = "register"
	EvtPing             = "ping"
	EvtPlayerShot       = "player-shot"
	EvtPressDownCueBall = "_onPressDownCueBall"
	EvtPressMoveCueBall = "_onPressMoveCueBall"
	EvtPressUpCueBall   = "_onPressUpCueBall"
	EvtPressHitArea     = "_onPressHitArea"
	EvtPressMoveHitArea = "_onPressMoveHitArea"
	EvtReleaseHitArea   = "_onReleaseHitArea"
	EvtUpdateStick      = "updateStick"
	EvtSendMessage      = "send-message"
	EvtGetStates        = "getStates"
	EvtTimerUpdate      = "timer-update"
)

var (
	ErrInvalidPoint   = errors.New("coordinates must be two finite numbers")
	ErrInvalidMessage = errors.New("message must be non-empty text below the length limit")
)

// ValidationError reports a rejected payload. Critical ones are answered
// with an error event, the rest are only logged.
type ValidationError struct {
	Field    string
	Critical bool
	Err      error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Shot struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Coords is a positional payload as received; either field may be missing.
type Coords struct {
	X *float64 `json:"x"`
	Y *float64 `json:"y"`
}

func (c Coords) Point() (Point, error) {
	if c.X == nil || c.Y == nil || !finite(*c.X) || !finite(*c.Y) {
		return Point{}, ErrInvalidPoint
	}
	return Point{X: *c.X, Y: *c.Y}, nil
}

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }

// MatchParams are accepted on join-matchmaking. Pairing ignores them.
type MatchParams struct {
	PlayerID   string `json:"playerId"`
	GameMode   string `json:"gameMode"`
	SkillLevel int    `json:"skillLevel"`
	Region     string `json:"region"`
}

// Command is a decoded inbound event.
type Command interface {
	Event() string
}

// TurnBound commands are accepted only from the seat whose turn it is.
type TurnBound interface {
	Command
	turnBound()
}

type (
	CreateRoom struct {
		Amount    float64
		IsPrivate bool
	}
	JoinRoom struct {
		RoomID RoomID
	}
	LeaveRoom struct {
		RoomID RoomID
	}
	GetAllRooms      struct{}
	JoinMatchmaking  struct{ Params MatchParams }
	LeaveMatchmaking struct{ Params MatchParams }
	Register         struct{ Username string }
	Ping             struct{}

	PlayerShot       struct{ Coords Coords }
	MoveCueBall      struct{ Coords Coords }
	PressDownCueBall struct{ Raw json.RawMessage }
	PressUpCueBall   struct{ Raw json.RawMessage }
	TimerUpdate      struct{ Raw json.RawMessage }
	// Cosmetic covers hit-area and stick events relayed without validation.
	Cosmetic struct {
		Name string
		Raw  json.RawMessage
	}

	SendMessage struct{ Text string }
	GetStates   struct{}
)

func (CreateRoom) Event() string       { return EvtCreateRoom }
func (JoinRoom) Event() string         { return EvtJoinRoom }
func (LeaveRoom) Event() string        { return EvtLeaveRoom }
func (GetAllRooms) Event() string      { return EvtGetAllRooms }
func (JoinMatchmaking) Event() string  { return EvtJoinMatchmaking }
func (LeaveMatchmaking) Event() string { return EvtLeaveMatchmaking }
func (Register) Event() string         { return EvtRegister }
func (Ping) Event() string             { return EvtPing }
func (PlayerShot) Event() string       { return EvtPlayerShot }
func (MoveCueBall) Event() string      { return EvtPressMoveCueBall }
func (PressDownCueBall) Event() string { return EvtPressDownCueBall }
func (PressUpCueBall) Event() string   { return EvtPressUpCueBall }
func (TimerUpdate) Event() string      { return EvtTimerUpdate }
func (c Cosmetic) Event() string       { return c.Name }
func (SendMessage) Event() string      { return EvtSendMessage }
func (GetStates) Event() string        { return EvtGetStates }

func (PlayerShot) turnBound()       {}
func (MoveCueBall) turnBound()      {}
func (PressDownCueBall) turnBound() {}
func (PressUpCueBall) turnBound()   {}
func (TimerUpdate) turnBound()      {}
func (Cosmetic) turnBound()         {}

// Shot validates the shot payload.
func (c PlayerShot) Shot() (Shot, error) {
	p, err := c.Coords.Point()
	if err != nil {
		return Shot{}, &ValidationError{Field: "shot", Critical: true, Err: err}
	}
	return Shot(p), nil
}

// Position validates the dragged cue-ball position.
func (c MoveCueBall) Position() (Point, error) {
	p, err := c.Coords.Point()
	if err != nil {
		return Point{}, &ValidationError{Field: "cue ball position", Critical: true, Err: err}
	}
	return p, nil
}

// Content validates the chat text against maxLen and returns it sanitized.
func (c SendMessage) Content(maxLen int) (string, error) {
	n := utf8.RuneCountInString(c.Text)
	if n == 0 || n >= maxLen {
		return "", &ValidationError{Field: "message", Err: ErrInvalidMessage}
	}
	return SanitizeMessage(c.Text, maxLen), nil
}

// SanitizeMessage drops control characters and caps the text at maxLen runes.
func SanitizeMessage(text string, maxLen int) string {
	text = strings.ToValidUTF8(text, "")
	var b strings.Builder
	n := 0
	for _, r := range text {
		if n >= maxLen {
			break
		}
		if unicode.IsControl(r) {
			continue
		}
		b.WriteRune(r)
		n++
	}
	return b.String()
}
