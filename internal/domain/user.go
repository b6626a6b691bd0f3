// Package domain holds the pool entities and the typed inbound commands.
package domain

import (
	"errors"
	"fmt"
	"strings"
)

const MaxUsernameLen = 36

var (
	ErrUsernameTooLong = errors.New("username too long")
	ErrUsernameEmpty   = errors.New("username empty")
)

type UserID string

type User struct {
	ID       UserID `json:"playerId"`
	Username string `json:"username"`
}

// DefaultUsername builds the anonymous display name handed out on register
// from the first characters of seed.
func DefaultUsername(seed string) string {
	if len(seed) > 4 {
		seed = seed[:4]
	}
	return fmt.Sprintf("Player_%s", seed)
}

// NewUser is a tiny helper to avoid ad-hoc struct literals in adapters.
func NewUser(id UserID, username string) (*User, error) {
	u := &User{ID: id}
	if err := u.SetUsername(username); err != nil {
		return nil, err
	}
	return u, nil
}

func (u *User) SetUsername(username string) error {
	username = strings.TrimSpace(username)
	if len(username) == 0 {
		return ErrUsernameEmpty
	}
	if len(username) > MaxUsernameLen {
		return ErrUsernameTooLong
	}
	u.Username = username
	return nil
}
