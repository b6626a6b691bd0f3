package app

import (
	"errors"
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/dkeye/Pool/internal/domain"
)

var (
	ErrRoomExists   = errors.New("room already exists")
	ErrRoomNotFound = errors.New("room not found")
)

type registeredRoom struct {
	room *Room
	seq  uint64
}

// RoomRegistry owns every live room. It is the only place a room is
// deleted, always after it was destroyed. Owned by the event loop.
type RoomRegistry struct {
	deps  RoomDeps
	rooms map[domain.RoomID]registeredRoom
	seq   uint64
	log   zerolog.Logger
}

func NewRoomRegistry(deps RoomDeps) *RoomRegistry {
	return &RoomRegistry{
		deps:  deps,
		rooms: make(map[domain.RoomID]registeredRoom),
		log:   deps.Log.With().Str("module", "app.rooms").Logger(),
	}
}

func (g *RoomRegistry) CreateRoom(id domain.RoomID, cfg domain.RoomConfig) (*Room, error) {
	if _, ok := g.rooms[id]; ok {
		return nil, fmt.Errorf("create room %s: %w", id, ErrRoomExists)
	}
	g.seq++
	room := newRoom(id, cfg, g.deps)
	g.rooms[id] = registeredRoom{room: room, seq: g.seq}
	g.log.Info().Str("room_id", string(id)).Bool("private", cfg.IsPrivate).Float64("bet", cfg.BetAmount).Msg("room created")
	return room, nil
}

// DestroyRoom releases the room's timers and table, then forgets it.
func (g *RoomRegistry) DestroyRoom(id domain.RoomID) bool {
	e, ok := g.rooms[id]
	if !ok {
		return false
	}
	e.room.Destroy()
	delete(g.rooms, id)
	return true
}

func (g *RoomRegistry) GetRoom(id domain.RoomID) (*Room, bool) {
	e, ok := g.rooms[id]
	if !ok {
		return nil, false
	}
	return e.room, true
}

// ListPublicRooms returns the lobby in creation order. Private rooms and
// rooms whose match already ended are left out.
func (g *RoomRegistry) ListPublicRooms() []domain.RoomSummary {
	out := make([]domain.RoomSummary, 0, len(g.rooms))
	for _, r := range g.ordered() {
		if r.cfg.IsPrivate || r.finished {
			continue
		}
		out = append(out, r.Summary())
	}
	return out
}

// FindOpenRoom picks the oldest public room still waiting for a player.
func (g *RoomRegistry) FindOpenRoom() (*Room, bool) {
	for _, r := range g.ordered() {
		if r.cfg.IsPrivate || r.finished || r.status != domain.StatusIdle {
			continue
		}
		if r.PlayerCount() < 2 {
			return r, true
		}
	}
	return nil, false
}

func (g *RoomRegistry) Len() int { return len(g.rooms) }

// Close destroys every room.
func (g *RoomRegistry) Close() {
	for id := range g.rooms {
		g.DestroyRoom(id)
	}
}

func (g *RoomRegistry) ordered() []*Room {
	entries := make([]registeredRoom, 0, len(g.rooms))
	for _, e := range g.rooms {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].seq < entries[j].seq })
	out := make([]*Room, len(entries))
	for i, e := range entries {
		out[i] = e.room
	}
	return out
}
