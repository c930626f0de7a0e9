package game

import "sort"

// PlayerSnapshot is the wire view of one room occupant. X/Y are nil while
// the player has no cell (waiting, or spectating the round). Dead players
// keep their last cell so clients can render the wreck.
type PlayerSnapshot struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Username  string    `json:"username"`
	Color     string    `json:"color"`
	X         *int      `json:"x"`
	Y         *int      `json:"y"`
	Dir       Direction `json:"dir"`
	Alive     bool      `json:"alive"`
	Spectator bool      `json:"spectator"`
	Wins      int       `json:"wins"`
}

// Snapshot is the full room state pushed to every connection on each
// state-changing event. CountdownEndsAt is unix milliseconds, zero when
// no countdown is pending.
type Snapshot struct {
	RoomID          string           `json:"roomId"`
	GridSize        int              `json:"gridSize"`
	TickMs          int64            `json:"tickMs"`
	Phase           Phase            `json:"phase"`
	Round           int              `json:"round"`
	CountdownEndsAt int64            `json:"countdownEndsAt"`
	Winner          *PlayerSnapshot  `json:"winner"`
	Players         []PlayerSnapshot `json:"players"`
	Trails          []Cell           `json:"trails"`
}

func snapshotPlayer(p *player) PlayerSnapshot {
	ps := PlayerSnapshot{
		ID:        p.session.ID(),
		UserID:    p.userID,
		Username:  p.username,
		Color:     p.color,
		Dir:       p.dir,
		Alive:     p.alive,
		Spectator: p.spectator,
		Wins:      p.wins,
	}
	if p.pos != nil {
		x, y := p.pos.X, p.pos.Y
		ps.X, ps.Y = &x, &y
	}
	return ps
}

// buildSnapshot serializes the room. Players are ordered by join time so
// the listing (and spawn-slot assignment, which uses the same order) is
// stable across snapshots.
func (r *Room) buildSnapshot() *Snapshot {
	s := &Snapshot{
		RoomID:   r.id,
		GridSize: GridSize,
		TickMs:   TickInterval.Milliseconds(),
		Phase:    r.phase,
		Round:    r.round,
		Players:  make([]PlayerSnapshot, 0, len(r.players)),
		Trails:   make([]Cell, 0, len(r.trails)),
	}
	if !r.countdownEndsAt.IsZero() {
		s.CountdownEndsAt = r.countdownEndsAt.UnixMilli()
	}

	for _, p := range r.playersByJoinOrder() {
		ps := snapshotPlayer(p)
		if p.session.ID() == r.winnerID {
			winner := ps
			s.Winner = &winner
		}
		s.Players = append(s.Players, ps)
	}

	for cell := range r.trails {
		s.Trails = append(s.Trails, cell)
	}
	sort.Slice(s.Trails, func(i, j int) bool {
		if s.Trails[i].Y != s.Trails[j].Y {
			return s.Trails[i].Y < s.Trails[j].Y
		}
		return s.Trails[i].X < s.Trails[j].X
	})
	return s
}
