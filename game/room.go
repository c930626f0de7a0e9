package game

import (
	"sync/atomic"
	"time"
)

// Phase is the room lifecycle stage.
type Phase string

const (
	PhaseWaiting   Phase = "waiting"
	PhaseCountdown Phase = "countdown"
	PhaseRunning   Phase = "running"
	PhaseFinished  Phase = "finished"
)

type roomJoinRequest struct {
	player  *player
	errChan chan error
}

type turnCommand struct {
	sessionID string
	direction string
}

type leaveCommand struct {
	sessionID string
}

type dataSendTask struct {
	to   *player
	data []byte
}

type Room struct {
	// Identity
	id string

	// Runtime state
	phase           Phase
	round           int
	winnerID        string // session id, "" when no winner
	countdownEndsAt time.Time
	players         map[string]*player // keyed by session id
	trails          map[Cell]struct{}
	nextJoinSeq     int64
	closed          bool

	// Timers, one live channel per role; nil when the role is idle
	tickC         <-chan time.Time
	stopTick      func()
	countdownC    <-chan time.Time
	stopCountdown func()
	endDelayC     <-chan time.Time
	stopEndDelay  func()

	// Seams
	sched   Scheduler
	now     func() time.Time
	onEmpty func(*Room)

	// Communication
	inbox chan any
	done  chan struct{}

	// Cross-goroutine read-only views for the registry listing
	occupants atomic.Int32
	phaseView atomic.Value // Phase

	// Side effects accumulated by handlers, flushed by the actor loop
	dataSendTasks []dataSendTask
}

func NewRoom(id string, sched Scheduler, onEmpty func(*Room)) *Room {
	r := &Room{
		id:      id,
		phase:   PhaseWaiting,
		players: make(map[string]*player),
		trails:  make(map[Cell]struct{}),
		sched:   sched,
		now:     time.Now,
		onEmpty: onEmpty,
		inbox:   make(chan any, 256),
		done:    make(chan struct{}),
	}
	r.phaseView.Store(PhaseWaiting)
	return r
}

func (r *Room) ID() string { return r.id }

// PlayerCount and CurrentPhase are safe to call from any goroutine; the
// registry uses them for the room listing.
func (r *Room) PlayerCount() int    { return int(r.occupants.Load()) }
func (r *Room) CurrentPhase() Phase { return r.phaseView.Load().(Phase) }

func (r *Room) setPhase(phase Phase) {
	r.phase = phase
	r.phaseView.Store(phase)
}

// Done is closed once the room has been released. Senders use it to avoid
// blocking on a dead inbox.
func (r *Room) Done() <-chan struct{} { return r.done }

// Join registers a session-bound player and waits for the room's verdict.
// Returns ErrRoomClosed when the join raced the room's release; callers
// fetch a fresh room from the registry and retry.
func (r *Room) Join(p *player) error {
	req := roomJoinRequest{player: p, errChan: make(chan error, 1)}
	select {
	case r.inbox <- req:
	case <-r.done:
		return ErrRoomClosed
	}
	select {
	case err := <-req.errChan:
		return err
	case <-r.done:
		// The room emptied while the request was queued; it was never
		// admitted.
		select {
		case err := <-req.errChan:
			return err
		default:
			return ErrRoomClosed
		}
	}
}

// Turn buffers a direction change for the next tick. Fire and forget.
func (r *Room) Turn(sessionID, direction string) {
	select {
	case r.inbox <- turnCommand{sessionID: sessionID, direction: direction}:
	case <-r.done:
	}
}

// Leave removes a player. Idempotent; leaving a room the session is not
// in, or a released room, is a no-op.
func (r *Room) Leave(sessionID string) {
	select {
	case r.inbox <- leaveCommand{sessionID: sessionID}:
	case <-r.done:
	}
}
