package game

import (
	"sync"
	"time"
)

// client is the gateway-owned half of a connection: the write pump and
// outbox behind the Session interface. Rooms only ever see the Session.
type client struct {
	id      string
	conn    Conn
	outbox  chan []byte
	done    chan struct{}
	closeMu sync.Once
}

func newClient(id string, conn Conn) *client {
	return &client{
		id:     id,
		conn:   conn,
		outbox: make(chan []byte, outboxSize),
		done:   make(chan struct{}),
	}
}

func (c *client) ID() string { return c.id }

// Send queues a frame without blocking. A full outbox means the receiver
// stopped draining; the caller decides what to do with it.
func (c *client) Send(data []byte) bool {
	select {
	case c.outbox <- data:
		return true
	case <-c.done:
		return false
	default:
		return false
	}
}

func (c *client) Close() {
	c.closeMu.Do(func() {
		close(c.done)
	})
}

// writePump drains the outbox onto the socket and keeps the connection
// alive with periodic pings. Runs until Close or a write error.
func (c *client) writePump() {
	pings := time.NewTicker(pingPeriod)
	defer pings.Stop()
	defer c.conn.Close("")

	for {
		select {
		case data := <-c.outbox:
			if err := c.conn.Write(data); err != nil {
				return
			}
		case <-pings.C:
			if err := c.conn.Ping(); err != nil {
				return
			}
		case <-c.done:
			return
		}
	}
}
