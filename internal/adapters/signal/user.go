package signal

import (
	"github.com/goccy/go-json"

	"github.com/dkeye/Pool/internal/domain"
)

func decodeRegister(b []byte) (domain.Command, error) {
	var p struct {
		Username string `json:"username"`
	}
	if !isEmpty(b) {
		if err := json.Unmarshal(b, &p); err != nil {
			return nil, err
		}
	}
	return domain.Register{Username: p.Username}, nil
}

// Match parameters are advisory, so a malformed body still searches.
func decodeMatchParams(b []byte) domain.MatchParams {
	var p domain.MatchParams
	if isEmpty(b) {
		return p
	}
	if err := json.Unmarshal(b, &p); err != nil {
		return domain.MatchParams{}
	}
	return p
}

func decodeJoinMatchmaking(b []byte) (domain.Command, error) {
	return domain.JoinMatchmaking{Params: decodeMatchParams(b)}, nil
}

func decodeLeaveMatchmaking(b []byte) (domain.Command, error) {
	return domain.LeaveMatchmaking{Params: decodeMatchParams(b)}, nil
}
