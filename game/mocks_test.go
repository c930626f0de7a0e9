package game

import (
	"time"

	"github.com/stretchr/testify/mock"
)

// --- Session ---

type MockSession struct {
	mock.Mock
}

func (m *MockSession) ID() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockSession) Send(data []byte) bool {
	args := m.Called(data)
	return args.Bool(0)
}

func (m *MockSession) Close() {
	m.Called()
}

// stubSession is the lightweight variant for tests that only need an
// identity and never flush send tasks.
type stubSession struct {
	id   string
	sent [][]byte
}

func (s *stubSession) ID() string { return s.id }

func (s *stubSession) Send(data []byte) bool {
	s.sent = append(s.sent, data)
	return true
}

func (s *stubSession) Close() {}

// --- Conn ---

type MockConn struct {
	mock.Mock
}

func (m *MockConn) Close(errCode string) {
	m.Called(errCode)
}

func (m *MockConn) Write(data []byte) error {
	args := m.Called(data)
	return args.Error(0)
}

func (m *MockConn) Read() ([]byte, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockConn) Ping() error {
	args := m.Called()
	return args.Error(0)
}

// --- Scheduler ---

// manualTimer records one scheduled timer and whether it was cancelled.
// Tests fire timers by calling the room's handler directly instead of
// pushing on the channel.
type manualTimer struct {
	d         time.Duration
	c         chan time.Time
	cancelled bool
}

type manualScheduler struct {
	afters  []*manualTimer
	tickers []*manualTimer
}

func (s *manualScheduler) After(d time.Duration) (<-chan time.Time, func()) {
	t := &manualTimer{d: d, c: make(chan time.Time, 1)}
	s.afters = append(s.afters, t)
	return t.c, func() { t.cancelled = true }
}

func (s *manualScheduler) Ticker(d time.Duration) (<-chan time.Time, func()) {
	t := &manualTimer{d: d, c: make(chan time.Time, 1)}
	s.tickers = append(s.tickers, t)
	return t.c, func() { t.cancelled = true }
}

func (s *manualScheduler) lastAfter() *manualTimer {
	if len(s.afters) == 0 {
		return nil
	}
	return s.afters[len(s.afters)-1]
}

func (s *manualScheduler) lastTicker() *manualTimer {
	if len(s.tickers) == 0 {
		return nil
	}
	return s.tickers[len(s.tickers)-1]
}

func (s *manualScheduler) liveTimers() int {
	live := 0
	for _, t := range s.afters {
		if !t.cancelled {
			live++
		}
	}
	for _, t := range s.tickers {
		if !t.cancelled {
			live++
		}
	}
	return live
}
