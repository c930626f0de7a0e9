package game

import (
	"sync"

	"github.com/rs/zerolog/log"
)

// RoomInfo is returned by the room listing endpoint.
type RoomInfo struct {
	RoomID  string `json:"roomId"`
	Players int    `json:"players"`
	Phase   Phase  `json:"phase"`
}

// Registry owns the live rooms. Rooms are created lazily on first join
// and remove themselves the instant they empty; a room with zero players
// never exists here.
type Registry struct {
	mu    sync.Mutex
	rooms map[string]*Room
	sched Scheduler
}

func NewRegistry(sched Scheduler) *Registry {
	return &Registry{
		rooms: make(map[string]*Room),
		sched: sched,
	}
}

// GetOrCreate returns the room for the normalized id, starting a fresh
// one in the waiting phase when none exists.
func (reg *Registry) GetOrCreate(rawID string) *Room {
	id := NormalizeRoomID(rawID)

	reg.mu.Lock()
	defer reg.mu.Unlock()
	if r, ok := reg.rooms[id]; ok {
		return r
	}

	r := NewRoom(id, reg.sched, reg.release)
	reg.rooms[id] = r
	go r.run()
	log.Info().Str("room", id).Msg("room created")
	return r
}

// release is the room's onEmpty callback. The room has already cancelled
// its timers; only forget it here. A later join to the same id gets a
// brand-new room.
func (reg *Registry) release(r *Room) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	if current, ok := reg.rooms[r.id]; ok && current == r {
		delete(reg.rooms, r.id)
		log.Info().Str("room", r.id).Msg("room released")
	}
}

// List reports the live rooms for discovery. Player counts are read from
// outside the room goroutines, so they are advisory only.
func (reg *Registry) List() []RoomInfo {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	infos := make([]RoomInfo, 0, len(reg.rooms))
	for id, r := range reg.rooms {
		infos = append(infos, RoomInfo{RoomID: id, Players: r.PlayerCount(), Phase: r.CurrentPhase()})
	}
	return infos
}
