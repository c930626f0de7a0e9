package game

import (
	"time"

	"arenaserver/domain"
)

// Conn abstracts the websocket for the gateway read loop and the session
// write pump.
type Conn interface {
	Close(errCode string)
	Write(data []byte) error
	Read() ([]byte, error)
	Ping() error
}

// Session is the room-facing side of a connection. Send must never block;
// it reports false when the outbox is full, which rooms treat as a dead
// connection.
type Session interface {
	ID() string
	Send(data []byte) bool
	Close()
}

// TokenVerifier is the external auth collaborator. Verification failure
// degrades the connection to a guest, it never rejects it.
type TokenVerifier interface {
	Verify(token string) (domain.User, error)
}

// Scheduler hands out cancellable timer channels so room tests can drive
// time by hand.
type Scheduler interface {
	// After fires once on the returned channel. The cancel func stops a
	// pending fire.
	After(d time.Duration) (<-chan time.Time, func())
	// Ticker fires periodically until the stop func is called.
	Ticker(d time.Duration) (<-chan time.Time, func())
}
