package app

import (
	"github.com/rs/zerolog"

	"github.com/dkeye/Pool/internal/core"
	"github.com/dkeye/Pool/internal/domain"
)

type sessionEntry struct {
	Conn   core.SignalConnection
	Token  string
	User   *domain.User
	RoomID domain.RoomID
}

// Registry binds live connections to their transport, display identity and
// current room. Owned by the event loop.
type Registry struct {
	sessions map[core.SessionID]*sessionEntry
	log      zerolog.Logger
}

func NewRegistry(log zerolog.Logger) *Registry {
	return &Registry{
		sessions: make(map[core.SessionID]*sessionEntry),
		log:      log.With().Str("module", "app.registry").Logger(),
	}
}

// BindSignal registers a new connection. token is the browser's client
// token, possibly empty.
func (r *Registry) BindSignal(sid core.SessionID, conn core.SignalConnection, token string) {
	r.sessions[sid] = &sessionEntry{Conn: conn, Token: token}
	r.log.Info().Str("sid", string(sid)).Msg("bound signal")
}

func (r *Registry) Unbind(sid core.SessionID) {
	if _, ok := r.sessions[sid]; !ok {
		return
	}
	delete(r.sessions, sid)
	r.log.Info().Str("sid", string(sid)).Msg("unbind session")
}

func (r *Registry) Conn(sid core.SessionID) (core.SignalConnection, bool) {
	if e, ok := r.sessions[sid]; ok {
		return e.Conn, true
	}
	return nil, false
}

func (r *Registry) Token(sid core.SessionID) string {
	if e, ok := r.sessions[sid]; ok {
		return e.Token
	}
	return ""
}

func (r *Registry) User(sid core.SessionID) (*domain.User, bool) {
	e, ok := r.sessions[sid]
	if !ok || e.User == nil {
		return nil, false
	}
	return e.User, true
}

func (r *Registry) SetUser(sid core.SessionID, u *domain.User) bool {
	e, ok := r.sessions[sid]
	if !ok {
		return false
	}
	e.User = u
	r.log.Info().Str("sid", string(sid)).Str("username", u.Username).Msg("registered user")
	return true
}

func (r *Registry) RoomOf(sid core.SessionID) (domain.RoomID, bool) {
	e, ok := r.sessions[sid]
	if !ok || e.RoomID == "" {
		return "", false
	}
	return e.RoomID, true
}

func (r *Registry) UpdateRoom(sid core.SessionID, id domain.RoomID) bool {
	e, ok := r.sessions[sid]
	if !ok {
		return false
	}
	e.RoomID = id
	r.log.Info().Str("sid", string(sid)).Str("room_id", string(id)).Msg("updated room")
	return true
}

func (r *Registry) RemoveRoom(sid core.SessionID) {
	if e, ok := r.sessions[sid]; ok {
		e.RoomID = ""
	}
}

// Each visits every bound connection.
func (r *Registry) Each(fn func(sid core.SessionID, conn core.SignalConnection)) {
	for sid, e := range r.sessions {
		fn(sid, e.Conn)
	}
}

func (r *Registry) Len() int { return len(r.sessions) }

// CloseAll closes every connection and forgets it.
func (r *Registry) CloseAll() {
	for sid, e := range r.sessions {
		e.Conn.Close()
		delete(r.sessions, sid)
	}
}
