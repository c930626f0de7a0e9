package game

import (
	"sort"
	"time"

	"github.com/rs/zerolog/log"
)

// run is the room actor: the only goroutine that mutates room state.
// Every handler below must be called from here (tests call them directly,
// which is fine because tests own the room outright).
func (r *Room) run() {
	for {
		select {
		case msg := <-r.inbox:
			switch m := msg.(type) {
			case roomJoinRequest:
				m.errChan <- r.handleJoinRequest(m)
			case turnCommand:
				r.handleTurn(m.sessionID, m.direction)
			case leaveCommand:
				r.handleRemovePlayer(m.sessionID)
			}
		case <-r.tickC:
			r.handleTick()
		case <-r.countdownC:
			r.handleCountdownExpired()
		case <-r.endDelayC:
			r.handleEndDelayExpired()
		}

		r.flushSendTasks()

		if r.closed {
			close(r.done)
			return
		}
	}
}

// flushSendTasks pushes accumulated frames to their sessions. A session
// that cannot keep up is dropped from the room; removals may queue more
// tasks, hence the outer loop.
func (r *Room) flushSendTasks() {
	for len(r.dataSendTasks) > 0 {
		tasks := r.dataSendTasks
		r.dataSendTasks = nil

		var dead []*player
		for _, task := range tasks {
			if !task.to.session.Send(task.data) {
				dead = append(dead, task.to)
			}
		}
		for _, p := range dead {
			log.Warn().Str("room", r.id).Str("player", p.username).Msg("dropping unresponsive connection")
			p.session.Close()
			r.handleRemovePlayer(p.session.ID())
		}
	}
}

func (r *Room) playersByJoinOrder() []*player {
	ordered := make([]*player, 0, len(r.players))
	for _, p := range r.players {
		ordered = append(ordered, p)
	}
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].joinSeq < ordered[j].joinSeq
	})
	return ordered
}

func (r *Room) roundPlayers() []*player {
	var in []*player
	for _, p := range r.players {
		if p.inRound {
			in = append(in, p)
		}
	}
	return in
}

func (r *Room) alivePlayers() []*player {
	var alive []*player
	for _, p := range r.players {
		if p.inRound && p.alive {
			alive = append(alive, p)
		}
	}
	return alive
}

// appendBroadcast queues the current snapshot for every occupant,
// including any player that just joined.
func (r *Room) appendBroadcast() {
	data := encodeState(r.buildSnapshot())
	for _, p := range r.playersByJoinOrder() {
		r.dataSendTasks = append(r.dataSendTasks, dataSendTask{to: p, data: data})
	}
}

func (r *Room) pickColor() string {
	used := make(map[string]bool, len(r.players))
	for _, p := range r.players {
		used[p.color] = true
	}
	for _, color := range colorPalette {
		if !used[color] {
			return color
		}
	}
	return colorPalette[len(r.players)%len(colorPalette)]
}

func (r *Room) handleJoinRequest(req roomJoinRequest) error {
	if len(r.players) >= MaxRoomPlayers {
		return ErrRoomFull
	}

	p := req.player
	p.color = r.pickColor()
	p.joinSeq = r.nextJoinSeq
	r.nextJoinSeq++
	r.players[p.session.ID()] = p
	r.occupants.Store(int32(len(r.players)))

	log.Info().Str("room", r.id).Str("player", p.username).Int("players", len(r.players)).Msg("player joined")

	r.appendBroadcast()
	r.maybeStartRound()
	return nil
}

func (r *Room) handleTurn(sessionID, direction string) {
	if r.phase != PhaseRunning {
		return
	}
	p, ok := r.players[sessionID]
	if !ok || !p.alive || !p.inRound {
		return
	}
	dir, ok := ParseDirection(direction)
	if !ok || dir == p.dir.Opposite() {
		return
	}
	p.pendingDir = dir
}

func (r *Room) handleRemovePlayer(sessionID string) {
	p, ok := r.players[sessionID]
	if !ok {
		return
	}
	removedWasAlive := p.alive && p.inRound
	delete(r.players, sessionID)
	r.occupants.Store(int32(len(r.players)))
	if r.winnerID == sessionID {
		r.winnerID = ""
	}

	log.Info().Str("room", r.id).Str("player", p.username).Int("players", len(r.players)).Msg("player left")

	if len(r.players) == 0 {
		r.cancelAllTimers()
		r.closed = true
		if r.onEmpty != nil {
			r.onEmpty(r)
		}
		return
	}

	if r.phase == PhaseRunning && removedWasAlive && len(r.alivePlayers()) <= 1 {
		r.finishRound()
		return
	}

	r.appendBroadcast()
	r.maybeStartRound()
}

func (r *Room) maybeStartRound() {
	if r.phase != PhaseWaiting || len(r.players) < 1 {
		return
	}
	r.startRoundCountdown()
}

func (r *Room) startRoundCountdown() {
	r.cancelAllTimers()
	r.setPhase(PhaseCountdown)
	r.round++
	r.winnerID = ""
	r.countdownEndsAt = r.now().Add(CountdownDuration)
	r.assignRoundSpawns()

	log.Info().Str("room", r.id).Int("round", r.round).Msg("round countdown started")

	r.appendBroadcast()
	r.countdownC, r.stopCountdown = r.sched.After(CountdownDuration)
}

// assignRoundSpawns seeds the round: oldest joiners take the spawn table
// slots, anyone past the in-round cap spectates this round.
func (r *Room) assignRoundSpawns() {
	spawns := spawnPoints()
	r.trails = make(map[Cell]struct{})

	for i, p := range r.playersByJoinOrder() {
		if i >= MaxRoundPlayers {
			p.resetForRound()
			p.spectator = true
			p.dir = DirUp
			continue
		}
		spawn := spawns[i%len(spawns)]
		cell := spawn.cell
		p.pos = &cell
		p.dir = spawn.dir
		p.pendingDir = ""
		p.alive = true
		p.inRound = true
		p.spectator = false
		r.trails[cell] = struct{}{}
	}
}

func (r *Room) handleCountdownExpired() {
	if r.phase != PhaseCountdown {
		return
	}
	r.stopCountdown()
	r.countdownC, r.stopCountdown = nil, nil
	if len(r.players) < 1 {
		r.beginWaitingPhase()
		return
	}
	r.startRunningRound()
}

func (r *Room) startRunningRound() {
	r.setPhase(PhaseRunning)
	r.countdownEndsAt = time.Time{}
	r.winnerID = ""
	// Players who joined while the countdown ran still get a slot.
	r.assignRoundSpawns()

	log.Info().Str("room", r.id).Int("round", r.round).Int("players", len(r.roundPlayers())).Msg("round running")

	r.appendBroadcast()
	r.tickC, r.stopTick = r.sched.Ticker(TickInterval)
}

// finishRound closes the running round, records the winner if a sole
// survivor exists, and schedules the next phase.
func (r *Room) finishRound() {
	if r.phase != PhaseRunning {
		return
	}
	r.cancelAllTimers()
	r.setPhase(PhaseFinished)

	survivors := r.alivePlayers()
	if len(survivors) == 1 {
		winner := survivors[0]
		winner.wins++
		r.winnerID = winner.session.ID()
		log.Info().Str("room", r.id).Int("round", r.round).Str("winner", winner.username).Msg("round won")
	} else {
		r.winnerID = ""
		log.Info().Str("room", r.id).Int("round", r.round).Msg("round over, no winner")
	}

	r.appendBroadcast()
	r.endDelayC, r.stopEndDelay = r.sched.After(RoundEndDelay)
}

func (r *Room) handleEndDelayExpired() {
	if r.phase != PhaseFinished {
		return
	}
	r.stopEndDelay()
	r.endDelayC, r.stopEndDelay = nil, nil
	if len(r.players) >= 1 {
		r.startRoundCountdown()
		return
	}
	r.beginWaitingPhase()
}

func (r *Room) beginWaitingPhase() {
	r.cancelAllTimers()
	r.setPhase(PhaseWaiting)
	r.countdownEndsAt = time.Time{}
	r.winnerID = ""
	r.trails = make(map[Cell]struct{})
	for _, p := range r.players {
		p.resetForRound()
	}
	r.appendBroadcast()
}

// cancelAllTimers stops every live timer role. Starting any timer goes
// through here first, so at most one handle per role ever exists.
func (r *Room) cancelAllTimers() {
	if r.stopTick != nil {
		r.stopTick()
		r.tickC, r.stopTick = nil, nil
	}
	if r.stopCountdown != nil {
		r.stopCountdown()
		r.countdownC, r.stopCountdown = nil, nil
	}
	if r.stopEndDelay != nil {
		r.stopEndDelay()
		r.endDelayC, r.stopEndDelay = nil, nil
	}
}
