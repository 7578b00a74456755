// Package conn maintains the realtime channels to the task backend. Each
// Manager owns one websocket's full lifecycle: dial, read, reconnect with
// exponential backoff, manual retry, and teardown. Transport failures are
// absorbed here and surfaced as events; nothing in this package panics or
// returns a fatal error for a flaky network.
package conn

import (
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"taskflow/log"
)

// State is the lifecycle state of a channel's connection.
type State int

const (
	StateIdle State = iota
	StateConnecting
	StateOpen
	StateReconnectScheduled
	StateClosedNormal
	StateClosedFinal
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateConnecting:
		return "connecting"
	case StateOpen:
		return "open"
	case StateReconnectScheduled:
		return "reconnect_scheduled"
	case StateClosedNormal:
		return "closed"
	case StateClosedFinal:
		return "failed"
	default:
		return "unknown"
	}
}

// retryGraceDelay is how long a manual retry waits after force-closing the
// old socket before dialing again, letting the close settle server-side.
const retryGraceDelay = 500 * time.Millisecond

// Options configures one channel's Manager.
type Options struct {
	// Channel names the channel in events and logs ("chat" or "task").
	Channel string

	// URL is the websocket endpoint.
	URL string

	// BackoffBase and BackoffCap bound the reconnect delay:
	// delay = min(base * 2^attempt, cap), attempt counted from 1.
	BackoffBase time.Duration
	BackoffCap  time.Duration

	// MaxAttempts is how many consecutive abnormal closures are retried
	// before the channel goes terminal.
	MaxAttempts int

	// TerminalError is the user-facing error once attempts are exhausted.
	TerminalError string

	// Dialer overrides the websocket dialer, for tests.
	Dialer *websocket.Dialer
}

// ChatOptions returns the chat channel's tuning. Chat tolerates longer gaps,
// so it backs off further and gives up sooner than the task channel.
func ChatOptions(url string) Options {
	return Options{
		Channel:       "chat",
		URL:           url,
		BackoffBase:   2 * time.Second,
		BackoffCap:    30 * time.Second,
		MaxAttempts:   3,
		TerminalError: "Connection failed. Using offline mode.",
	}
}

// TaskOptions returns the task channel's tuning.
func TaskOptions(url string) Options {
	return Options{
		Channel:       "task",
		URL:           url,
		BackoffBase:   1 * time.Second,
		BackoffCap:    10 * time.Second,
		MaxAttempts:   5,
		TerminalError: "Max reconnection attempts reached",
	}
}

// Event is a lifecycle or data event emitted by a Manager. Consumers receive
// these from Events() and feed them into the update loop.
type Event interface {
	Channel() string
}

// Opened is emitted when the socket reaches OPEN.
type Opened struct {
	channel string
}

func (e Opened) Channel() string { return e.channel }

// FrameReceived carries one parsed inbound frame. Keepalive probes are
// answered inside the read loop and never surface as FrameReceived.
type FrameReceived struct {
	channel string
	Frame   Frame
}

func (e FrameReceived) Channel() string { return e.channel }

// Reconnecting is emitted when an abnormal closure schedules a retry.
type Reconnecting struct {
	channel string
	Attempt int
	Max     int
	Delay   time.Duration
}

func (e Reconnecting) Channel() string { return e.channel }

// Terminal is emitted when reconnect attempts are exhausted. Only a manual
// retry leaves this state.
type Terminal struct {
	channel string
	Err     string
}

func (e Terminal) Channel() string { return e.channel }

// Closed is emitted after an intentional, normal closure.
type Closed struct {
	channel string
}

func (e Closed) Channel() string { return e.channel }

// Manager owns one channel's socket. All exported methods are safe to call
// from any goroutine; events are delivered on a single buffered channel.
type Manager struct {
	opts Options

	mu       sync.Mutex
	state    State
	attempts int
	conn     *websocket.Conn
	timer    *time.Timer
	alive    bool
	// gen invalidates stale read loops and timers. Every dial, retry, and
	// close bumps it; callbacks carrying an old gen are ignored.
	gen int

	writeMu sync.Mutex

	events chan Event
}

// NewManager creates a Manager. Call Connect to start dialing.
func NewManager(opts Options) *Manager {
	if opts.Dialer == nil {
		opts.Dialer = &websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	}
	return &Manager{
		opts:   opts,
		state:  StateIdle,
		alive:  true,
		events: make(chan Event, 64),
	}
}

// Events returns the channel lifecycle/data event stream. The channel is
// never closed; after Close no further events are sent.
func (m *Manager) Events() <-chan Event {
	return m.events
}

// State returns the current lifecycle state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Attempts returns the current reconnect attempt counter.
func (m *Manager) Attempts() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.attempts
}

// Connect begins dialing. It is a no-op while a connection is already
// CONNECTING or OPEN, and after teardown.
func (m *Manager) Connect() {
	m.mu.Lock()
	if !m.alive || m.state == StateConnecting || m.state == StateOpen {
		m.mu.Unlock()
		return
	}
	m.state = StateConnecting
	m.gen++
	gen := m.gen
	m.mu.Unlock()

	go m.dial(gen)
}

func (m *Manager) dial(gen int) {
	c, _, err := m.opts.Dialer.Dial(m.opts.URL, nil)

	m.mu.Lock()
	if !m.alive || gen != m.gen {
		m.mu.Unlock()
		if c != nil {
			c.Close()
		}
		return
	}

	if err != nil {
		log.WarningLog.Printf("%s channel: dial %s failed: %v", m.opts.Channel, m.opts.URL, err)
		m.scheduleReconnectLocked()
		m.mu.Unlock()
		return
	}

	m.conn = c
	m.state = StateOpen
	m.attempts = 0
	m.mu.Unlock()

	m.emit(Opened{channel: m.opts.Channel})
	go m.readLoop(c, gen)
}

func (m *Manager) readLoop(c *websocket.Conn, gen int) {
	for {
		_, raw, err := c.ReadMessage()
		if err != nil {
			m.handleClosed(gen, err)
			return
		}

		frame, perr := ParseFrame(raw)
		if perr != nil {
			log.WarningLog.Printf("%s channel: discarding malformed frame: %v", m.opts.Channel, perr)
			continue
		}

		// Answer keepalives here rather than in the consumer so a busy
		// UI can never starve the server's liveness check.
		if frame.Type == TypePing {
			if err := m.sendText(TypePong); err != nil {
				log.WarningLog.Printf("%s channel: pong reply failed: %v", m.opts.Channel, err)
			}
			continue
		}
		if frame.Type == TypePong {
			continue
		}

		m.emit(FrameReceived{channel: m.opts.Channel, Frame: frame})
	}
}

// handleClosed runs when the read loop exits. A normal closure stops the
// channel; anything else goes through the backoff schedule.
func (m *Manager) handleClosed(gen int, err error) {
	m.mu.Lock()
	if !m.alive || gen != m.gen {
		m.mu.Unlock()
		return
	}
	m.conn = nil

	if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		m.state = StateClosedNormal
		m.mu.Unlock()
		m.emit(Closed{channel: m.opts.Channel})
		return
	}

	log.WarningLog.Printf("%s channel: closed abnormally: %v", m.opts.Channel, err)
	m.scheduleReconnectLocked()
	m.mu.Unlock()
}

// scheduleReconnectLocked either arms the backoff timer or goes terminal.
// Caller holds mu.
func (m *Manager) scheduleReconnectLocked() {
	if m.attempts >= m.opts.MaxAttempts {
		m.state = StateClosedFinal
		log.ErrorLog.Printf("%s channel: giving up after %d attempts", m.opts.Channel, m.attempts)
		m.emit(Terminal{channel: m.opts.Channel, Err: m.opts.TerminalError})
		return
	}

	m.attempts++
	delay := m.backoffDelay(m.attempts)
	m.state = StateReconnectScheduled
	gen := m.gen

	m.emit(Reconnecting{
		channel: m.opts.Channel,
		Attempt: m.attempts,
		Max:     m.opts.MaxAttempts,
		Delay:   delay,
	})

	m.timer = time.AfterFunc(delay, func() {
		m.mu.Lock()
		if !m.alive || gen != m.gen || m.state != StateReconnectScheduled {
			m.mu.Unlock()
			return
		}
		m.state = StateIdle
		m.mu.Unlock()
		m.Connect()
	})
}

// backoffDelay computes min(base * 2^attempt, cap) for a 1-based attempt.
func (m *Manager) backoffDelay(attempt int) time.Duration {
	d := m.opts.BackoffBase << uint(attempt)
	if d > m.opts.BackoffCap || d <= 0 {
		d = m.opts.BackoffCap
	}
	return d
}

// Retry is the user-initiated recovery path. It resets the attempt counter,
// force-closes any live socket with a normal code, and dials fresh after a
// short grace delay.
func (m *Manager) Retry() {
	m.mu.Lock()
	if !m.alive {
		m.mu.Unlock()
		return
	}
	m.attempts = 0
	m.gen++
	m.stopTimerLocked()
	m.closeConnLocked()
	m.state = StateIdle
	gen := m.gen
	m.mu.Unlock()

	time.AfterFunc(retryGraceDelay, func() {
		m.mu.Lock()
		stale := !m.alive || gen != m.gen
		m.mu.Unlock()
		if stale {
			return
		}
		m.Connect()
	})
}

// Close tears the channel down. Pending reconnect timers are cancelled, the
// socket is closed with a normal code, and no further events are emitted even
// if a stale timer or read loop fires afterwards.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.alive {
		return
	}
	m.alive = false
	m.gen++
	m.stopTimerLocked()
	m.closeConnLocked()
	m.state = StateClosedNormal
}

// Send marshals v to JSON and writes it as one text frame.
func (m *Manager) Send(v any) error {
	m.mu.Lock()
	c := m.conn
	open := m.state == StateOpen
	m.mu.Unlock()
	if !open || c == nil {
		return fmt.Errorf("%s channel not connected", m.opts.Channel)
	}

	m.writeMu.Lock()
	defer m.writeMu.Unlock()
	return c.WriteJSON(v)
}

// IsOpen reports whether the socket is currently OPEN.
func (m *Manager) IsOpen() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state == StateOpen
}

func (m *Manager) sendText(s string) error {
	m.mu.Lock()
	c := m.conn
	m.mu.Unlock()
	if c == nil {
		return fmt.Errorf("%s channel not connected", m.opts.Channel)
	}

	m.writeMu.Lock()
	defer m.writeMu.Unlock()
	return c.WriteMessage(websocket.TextMessage, []byte(s))
}

// stopTimerLocked cancels a pending reconnect. Caller holds mu.
func (m *Manager) stopTimerLocked() {
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
}

// closeConnLocked sends a normal close frame and drops the socket.
// Caller holds mu.
func (m *Manager) closeConnLocked() {
	if m.conn == nil {
		return
	}
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	deadline := time.Now().Add(time.Second)
	_ = m.conn.WriteControl(websocket.CloseMessage, msg, deadline)
	_ = m.conn.Close()
	m.conn = nil
}

// emit delivers an event without blocking the socket goroutines forever: if
// the consumer has fallen 64 events behind, the oldest unread event is not
// worth preserving over channel liveness, so the new one is dropped with a
// log line.
func (m *Manager) emit(e Event) {
	select {
	case m.events <- e:
	default:
		log.WarningLog.Printf("%s channel: event buffer full, dropping %T", m.opts.Channel, e)
	}
}
