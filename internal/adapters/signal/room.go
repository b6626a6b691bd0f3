package signal

import (
	"bytes"

	"github.com/goccy/go-json"

	"github.com/dkeye/Pool/internal/domain"
)

func decodeCreateRoom(b []byte) (domain.Command, error) {
	var p struct {
		Amount    float64 `json:"amount"`
		IsPrivate bool    `json:"isPrivate"`
	}
	if !isEmpty(b) {
		if err := json.Unmarshal(b, &p); err != nil {
			return nil, err
		}
	}
	return domain.CreateRoom{Amount: p.Amount, IsPrivate: p.IsPrivate}, nil
}

func decodeJoinRoom(b []byte) (domain.Command, error) {
	id, err := decodeRoomID(b)
	if err != nil {
		return nil, err
	}
	return domain.JoinRoom{RoomID: id}, nil
}

func decodeLeaveRoom(b []byte) (domain.Command, error) {
	id, err := decodeRoomID(b)
	if err != nil {
		return nil, err
	}
	return domain.LeaveRoom{RoomID: id}, nil
}

// decodeRoomID accepts a bare string, an object carrying roomId or roomid,
// or nothing at all.
func decodeRoomID(b []byte) (domain.RoomID, error) {
	if isEmpty(b) {
		return "", nil
	}
	if bytes.HasPrefix(bytes.TrimSpace(b), []byte(`"`)) {
		var id string
		if err := json.Unmarshal(b, &id); err != nil {
			return "", err
		}
		return domain.RoomID(id), nil
	}
	var p struct {
		RoomID    string `json:"roomId"`
		RoomIDOld string `json:"roomid"`
	}
	if err := json.Unmarshal(b, &p); err != nil {
		return "", err
	}
	if p.RoomID != "" {
		return domain.RoomID(p.RoomID), nil
	}
	return domain.RoomID(p.RoomIDOld), nil
}
