package game

type plannedMove struct {
	player *player
	next   Cell
}

// handleTick advances the round by one simulation step. All elimination
// decisions read the pre-tick trail set and the full set of planned
// cells, never interim updates, so the outcome is independent of player
// iteration order.
func (r *Room) handleTick() {
	if r.phase != PhaseRunning {
		return
	}

	roundCount := len(r.roundPlayers())
	alive := r.alivePlayers()
	if r.roundOver(roundCount, len(alive)) {
		r.finishRound()
		return
	}

	moves := make([]plannedMove, 0, len(alive))
	for _, p := range alive {
		if p.pendingDir != "" {
			if _, valid := directionVectors[p.pendingDir]; valid && p.pendingDir != p.dir.Opposite() {
				p.dir = p.pendingDir
			}
			p.pendingDir = ""
		}
		moves = append(moves, plannedMove{player: p, next: p.pos.Add(p.dir.Vector())})
	}

	contested := make(map[Cell]int, len(moves))
	for _, m := range moves {
		contested[m.next]++
	}

	eliminated := make(map[*player]bool)
	for _, m := range moves {
		switch {
		case !inBounds(m.next):
			eliminated[m.player] = true
		case contested[m.next] > 1:
			eliminated[m.player] = true
		default:
			if _, hit := r.trails[m.next]; hit {
				eliminated[m.player] = true
			}
		}
	}

	for _, m := range moves {
		if eliminated[m.player] {
			m.player.alive = false
			continue
		}
		cell := m.next
		m.player.pos = &cell
		r.trails[cell] = struct{}{}
	}

	r.appendBroadcast()

	if r.roundOver(roundCount, len(r.alivePlayers())) {
		r.finishRound()
	}
}

// roundOver holds when a multi-player round is down to at most one
// survivor, or a solo round's only rider has died.
func (r *Room) roundOver(roundCount, aliveCount int) bool {
	if roundCount > 1 {
		return aliveCount <= 1
	}
	return aliveCount == 0
}
