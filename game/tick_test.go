package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRoom(t *testing.T) (*Room, *manualScheduler) {
	t.Helper()
	sched := &manualScheduler{}
	r := NewRoom("test", sched, nil)
	r.now = func() time.Time { return time.Unix(1700000000, 0) }
	return r, sched
}

func joinStub(t *testing.T, r *Room, id, name string) *player {
	t.Helper()
	p := newPlayer(&stubSession{id: id}, "guest:"+id, name)
	require.NoError(t, r.handleJoinRequest(roomJoinRequest{player: p, errChan: make(chan error, 1)}))
	return p
}

// startRunning drives the room from waiting into running through the
// regular phase machine.
func startRunning(t *testing.T, r *Room) {
	t.Helper()
	require.Equal(t, PhaseCountdown, r.phase)
	r.handleCountdownExpired()
	require.Equal(t, PhaseRunning, r.phase)
}

// place overrides a player's round state for crafted board positions.
func place(r *Room, p *player, c Cell, d Direction) {
	cell := c
	p.pos = &cell
	p.dir = d
	p.pendingDir = ""
	p.alive = true
	p.inRound = true
	r.trails[cell] = struct{}{}
}

func TestTickTrailGrowsBySurvivors(t *testing.T) {
	r, _ := newTestRoom(t)
	a := joinStub(t, r, "a", "anon")
	b := joinStub(t, r, "b", "bit")
	c := joinStub(t, r, "c", "clu")
	startRunning(t, r)

	r.trails = make(map[Cell]struct{})
	place(r, a, Cell{X: 10, Y: 10}, DirRight)
	place(r, b, Cell{X: 20, Y: 20}, DirDown)
	place(r, c, Cell{X: 30, Y: 30}, DirLeft)

	before := len(r.trails)
	r.handleTick()

	assert.Len(t, r.trails, before+3)
	assert.True(t, a.alive)
	assert.True(t, b.alive)
	assert.True(t, c.alive)
	assert.Equal(t, Cell{X: 11, Y: 10}, *a.pos)
	assert.Equal(t, Cell{X: 20, Y: 21}, *b.pos)
	assert.Equal(t, Cell{X: 29, Y: 30}, *c.pos)
}

func TestTickWallElimination(t *testing.T) {
	r, _ := newTestRoom(t)
	a := joinStub(t, r, "a", "anon")
	b := joinStub(t, r, "b", "bit")
	c := joinStub(t, r, "c", "clu")
	startRunning(t, r)

	r.trails = make(map[Cell]struct{})
	place(r, a, Cell{X: 0, Y: 10}, DirLeft)
	place(r, b, Cell{X: 20, Y: 20}, DirDown)
	place(r, c, Cell{X: 30, Y: 30}, DirUp)

	before := len(r.trails)
	r.handleTick()

	assert.False(t, a.alive)
	assert.True(t, b.alive)
	assert.True(t, c.alive)
	// The eliminated player contributes no new cell.
	assert.Len(t, r.trails, before+2)
	assert.Equal(t, PhaseRunning, r.phase)
}

func TestTickTrailEliminationDeclaresWinner(t *testing.T) {
	r, sched := newTestRoom(t)
	a := joinStub(t, r, "a", "anon")
	b := joinStub(t, r, "b", "bit")
	startRunning(t, r)

	r.trails = make(map[Cell]struct{})
	place(r, a, Cell{X: 10, Y: 10}, DirLeft)
	place(r, b, Cell{X: 11, Y: 11}, DirUp)
	r.trails[Cell{X: 11, Y: 10}] = struct{}{} // a's earlier path

	r.handleTick()

	assert.False(t, b.alive)
	assert.True(t, a.alive)
	assert.Equal(t, PhaseFinished, r.phase)
	assert.Equal(t, "a", r.winnerID)
	assert.Equal(t, 1, a.wins)
	assert.Equal(t, 0, b.wins)

	// Tick loop gone, end-of-round delay pending.
	assert.True(t, sched.lastTicker().cancelled)
	assert.Equal(t, RoundEndDelay, sched.lastAfter().d)
	assert.False(t, sched.lastAfter().cancelled)
}

func TestTickMutualEliminationNoWinner(t *testing.T) {
	r, _ := newTestRoom(t)
	a := joinStub(t, r, "a", "anon")
	b := joinStub(t, r, "b", "bit")
	startRunning(t, r)

	r.trails = make(map[Cell]struct{})
	place(r, a, Cell{X: 10, Y: 10}, DirRight)
	place(r, b, Cell{X: 12, Y: 10}, DirLeft)

	before := len(r.trails)
	r.handleTick()

	assert.False(t, a.alive)
	assert.False(t, b.alive)
	assert.Equal(t, PhaseFinished, r.phase)
	assert.Equal(t, "", r.winnerID)
	assert.Equal(t, 0, a.wins)
	assert.Equal(t, 0, b.wins)
	assert.Len(t, r.trails, before)
}

func TestTickHeadOnSwapEliminatesBoth(t *testing.T) {
	r, _ := newTestRoom(t)
	a := joinStub(t, r, "a", "anon")
	b := joinStub(t, r, "b", "bit")
	startRunning(t, r)

	r.trails = make(map[Cell]struct{})
	place(r, a, Cell{X: 10, Y: 10}, DirRight)
	place(r, b, Cell{X: 11, Y: 10}, DirLeft)

	r.handleTick()

	// Each plans the other's current cell, which is already trail.
	assert.False(t, a.alive)
	assert.False(t, b.alive)
	assert.Equal(t, "", r.winnerID)
}

func TestTickOppositePendingIgnored(t *testing.T) {
	r, _ := newTestRoom(t)
	a := joinStub(t, r, "a", "anon")
	b := joinStub(t, r, "b", "bit")
	startRunning(t, r)

	r.trails = make(map[Cell]struct{})
	place(r, a, Cell{X: 10, Y: 10}, DirRight)
	place(r, b, Cell{X: 20, Y: 20}, DirDown)
	a.pendingDir = DirLeft

	r.handleTick()

	assert.Equal(t, DirRight, a.dir)
	assert.Equal(t, Direction(""), a.pendingDir)
	assert.Equal(t, Cell{X: 11, Y: 10}, *a.pos)
}

func TestTickPendingHeadingApplied(t *testing.T) {
	r, _ := newTestRoom(t)
	a := joinStub(t, r, "a", "anon")
	b := joinStub(t, r, "b", "bit")
	startRunning(t, r)

	r.trails = make(map[Cell]struct{})
	place(r, a, Cell{X: 10, Y: 10}, DirRight)
	place(r, b, Cell{X: 20, Y: 20}, DirDown)
	a.pendingDir = DirUp

	r.handleTick()

	assert.Equal(t, DirUp, a.dir)
	assert.Equal(t, Direction(""), a.pendingDir)
	assert.Equal(t, Cell{X: 10, Y: 9}, *a.pos)
}

func TestSoloRoundEndsWithNoWinner(t *testing.T) {
	r, _ := newTestRoom(t)
	a := joinStub(t, r, "a", "anon")
	startRunning(t, r)

	// Alone on the grid the round keeps going.
	r.handleTick()
	require.Equal(t, PhaseRunning, r.phase)
	require.True(t, a.alive)

	r.trails = make(map[Cell]struct{})
	place(r, a, Cell{X: 0, Y: 10}, DirLeft)
	r.handleTick()

	assert.False(t, a.alive)
	assert.Equal(t, PhaseFinished, r.phase)
	assert.Equal(t, "", r.winnerID)
	assert.Equal(t, 0, a.wins)
}

func TestTickSkipsEliminatedPlayers(t *testing.T) {
	r, _ := newTestRoom(t)
	a := joinStub(t, r, "a", "anon")
	b := joinStub(t, r, "b", "bit")
	c := joinStub(t, r, "c", "clu")
	startRunning(t, r)

	r.trails = make(map[Cell]struct{})
	place(r, a, Cell{X: 10, Y: 10}, DirRight)
	place(r, b, Cell{X: 20, Y: 20}, DirDown)
	place(r, c, Cell{X: 30, Y: 30}, DirLeft)
	a.alive = false
	last := *a.pos

	r.handleTick()

	assert.Equal(t, last, *a.pos, "dead player must not move")
	assert.True(t, b.alive)
	assert.True(t, c.alive)
}
