package domain

import "fmt"

// Seat is one of the two fixed player slots of a room.
type Seat int

const (
	Player1 Seat = iota
	Player2
)

var Seats = [...]Seat{Player1, Player2}

func (s Seat) Other() Seat {
	if s == Player1 {
		return Player2
	}
	return Player1
}

// Turn is the 1-based turn number clients render.
func (s Seat) Turn() int { return int(s) + 1 }

func (s Seat) Valid() bool { return s == Player1 || s == Player2 }

func (s Seat) String() string {
	switch s {
	case Player1:
		return "player1"
	case Player2:
		return "player2"
	}
	return fmt.Sprintf("seat(%d)", int(s))
}

func (s Seat) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid seat %d", int(s))
	}
	return []byte(s.String()), nil
}

func (s *Seat) UnmarshalText(b []byte) error {
	seat, err := ParseSeat(string(b))
	if err != nil {
		return err
	}
	*s = seat
	return nil
}

func ParseSeat(label string) (Seat, error) {
	switch label {
	case "player1":
		return Player1, nil
	case "player2":
		return Player2, nil
	}
	return 0, fmt.Errorf("unknown seat %q", label)
}
