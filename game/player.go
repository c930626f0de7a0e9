package game

// player is a room occupant. All fields except session are owned by the
// room goroutine and must not be touched from outside it.
type player struct {
	session  Session
	userID   string
	username string
	color    string
	joinSeq  int64

	pos        *Cell
	dir        Direction
	pendingDir Direction // "" when no turn is buffered
	alive      bool
	inRound    bool
	spectator  bool
	wins       int
}

func newPlayer(session Session, userID, username string) *player {
	return &player{
		session:  session,
		userID:   userID,
		username: username,
		dir:      DirUp,
	}
}

// resetForRound wipes per-round state back to the not-in-round default.
func (p *player) resetForRound() {
	p.pos = nil
	p.pendingDir = ""
	p.alive = false
	p.inRound = false
	p.spectator = false
}
