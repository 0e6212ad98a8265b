package stream

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/betbot/sportsbook/internal/metrics"
)

// State is the lifecycle state of the real-time channel.
type State int32

const (
	Disconnected State = iota
	Connecting
	Connected
	Reconnecting
)

func (s State) String() string {
	switch s {
	case Disconnected:
		return "disconnected"
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	case Reconnecting:
		return "reconnecting"
	default:
		return "unknown"
	}
}

// TokenSource supplies the bearer token read at connect time. The manager
// never stores credentials itself.
type TokenSource interface {
	Token() string
}

// Config holds the connection manager settings.
type Config struct {
	URL              string
	HandshakeTimeout time.Duration
	WriteTimeout     time.Duration

	// ReconnectBase is the delay before reconnect attempt 1; attempt n
	// waits base times 2^(n-1). MaxReconnects is the attempt ceiling;
	// once it is hit the channel stays dormant until a manual Connect.
	ReconnectBase time.Duration
	MaxReconnects int
}

func (c Config) withDefaults() Config {
	if c.HandshakeTimeout == 0 {
		c.HandshakeTimeout = 5 * time.Second
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = 10 * time.Second
	}
	if c.ReconnectBase == 0 {
		c.ReconnectBase = time.Second
	}
	if c.MaxReconnects == 0 {
		c.MaxReconnects = 5
	}
	return c
}

// Manager owns a single websocket channel: connect, authenticate, subscribe,
// detect failure, reconnect with backoff, disconnect. Construct one per
// process and pass it around; there is no package-level instance.
type Manager struct {
	cfg      Config
	tokens   TokenSource
	dispatch func(raw []byte)
	log      *logrus.Entry

	mu         sync.Mutex
	conn       *websocket.Conn
	state      State
	attempts   int
	dormant    bool
	retryTimer *time.Timer
	// gen increments on every dial and on Disconnect, so stale read loops
	// and late retry timers can tell they have been superseded.
	gen int

	// gorilla allows only one concurrent writer.
	writeMu sync.Mutex
}

// NewManager builds a manager. dispatch receives every inbound frame in
// delivery order; it must not block for long and must not panic.
func NewManager(cfg Config, tokens TokenSource, dispatch func(raw []byte)) *Manager {
	return &Manager{
		cfg:      cfg.withDefaults(),
		tokens:   tokens,
		dispatch: dispatch,
		log:      logrus.WithField("component", "stream"),
	}
}

// State returns the current channel state.
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

// Dormant reports whether the reconnect ceiling was hit and the channel is
// waiting for a manual Connect.
func (m *Manager) Dormant() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.dormant
}

// Connect dials the channel. A manual Connect always restarts the schedule:
// it cancels any pending retry and resets the attempt counter. Calling it
// while connecting or connected is a no-op.
func (m *Manager) Connect() error {
	m.mu.Lock()
	if m.state == Connected || m.state == Connecting {
		m.mu.Unlock()
		return nil
	}
	m.stopRetryLocked()
	m.attempts = 0
	m.dormant = false
	gen := m.nextGenLocked()
	m.setStateLocked(Connecting)
	m.mu.Unlock()
	return m.dial(gen)
}

// Disconnect forces the channel down from any state, canceling any pending
// reconnect. The attempt counter is reset; the connection state dies with
// the session.
func (m *Manager) Disconnect() {
	m.mu.Lock()
	m.stopRetryLocked()
	m.nextGenLocked()
	conn := m.conn
	m.conn = nil
	m.attempts = 0
	m.dormant = false
	m.setStateLocked(Disconnected)
	m.mu.Unlock()

	if conn != nil {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		_ = conn.Close()
		m.log.Info("channel disconnected")
	}
}

// SubscribeMatch asks the server for per-match updates.
func (m *Manager) SubscribeMatch(matchID int64) error {
	return m.emit(eventSubscribeMatch, matchID)
}

// UnsubscribeMatch cancels a per-match subscription.
func (m *Manager) UnsubscribeMatch(matchID int64) error {
	return m.emit(eventUnsubscribeMatch, matchID)
}

func (m *Manager) dial(gen int) error {
	// The token is read here and only here; a credential change while
	// connected requires a fresh Connect to take effect.
	token := ""
	if m.tokens != nil {
		token = m.tokens.Token()
	}

	dialer := websocket.Dialer{HandshakeTimeout: m.cfg.HandshakeTimeout}
	conn, _, err := dialer.Dial(m.cfg.URL, nil)
	if err != nil {
		m.log.WithError(err).Warn("channel dial failed")
		m.scheduleRetry(gen)
		return &ChannelError{Op: "dial", Err: err}
	}

	m.mu.Lock()
	if gen != m.gen || m.state != Connecting {
		// Disconnect won the race while we were dialing.
		m.mu.Unlock()
		_ = conn.Close()
		return ErrNotConnected
	}
	m.conn = conn
	m.attempts = 0
	m.setStateLocked(Connected)
	m.mu.Unlock()
	m.log.Info("channel connected")

	msgs := []clientMessage{{Event: eventAuth, Data: authPayload{Token: token}}}
	for _, ch := range defaultChannels {
		msgs = append(msgs, clientMessage{Event: eventSubscribe, Data: ch})
	}
	for _, msg := range msgs {
		if err := m.writeJSON(conn, msg); err != nil {
			m.log.WithError(err).Warn("channel handshake write failed")
			m.scheduleRetry(gen)
			return &ChannelError{Op: "handshake", Err: err}
		}
	}

	go m.readLoop(conn, gen)
	return nil
}

func (m *Manager) readLoop(conn *websocket.Conn, gen int) {
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			m.mu.Lock()
			current := gen == m.gen && m.state == Connected
			m.mu.Unlock()
			if !current {
				// Deliberate disconnect; nothing to recover.
				return
			}
			m.log.WithError(err).Warn("channel read failed")
			m.scheduleRetry(gen)
			return
		}
		if m.dispatch != nil {
			m.dispatch(raw)
		}
	}
}

// scheduleRetry moves the channel to Reconnecting and arms the backoff
// timer, unless the attempt ceiling was hit, in which case the channel goes
// dormant until a manual Connect.
func (m *Manager) scheduleRetry(gen int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if gen != m.gen || m.state == Disconnected {
		return
	}
	m.closeConnLocked()
	m.setStateLocked(Reconnecting)

	if m.attempts >= m.cfg.MaxReconnects {
		m.dormant = true
		m.log.WithField("max", m.cfg.MaxReconnects).
			Error("reconnect ceiling reached, channel dormant until manual connect")
		return
	}

	m.attempts++
	attempt := m.attempts
	delay := backoffDelay(m.cfg.ReconnectBase, attempt)
	metrics.ReconnectAttempts.Inc()
	m.log.WithFields(logrus.Fields{
		"attempt": attempt,
		"max":     m.cfg.MaxReconnects,
		"delay":   delay.String(),
	}).Warn("scheduling reconnect")

	m.retryTimer = time.AfterFunc(delay, func() {
		m.mu.Lock()
		if gen != m.gen || m.state != Reconnecting {
			m.mu.Unlock()
			return
		}
		dialGen := m.nextGenLocked()
		m.setStateLocked(Connecting)
		m.mu.Unlock()
		_ = m.dial(dialGen)
	})
}

func (m *Manager) emit(event string, data any) error {
	m.mu.Lock()
	conn := m.conn
	connected := m.state == Connected
	m.mu.Unlock()
	if !connected || conn == nil {
		return ErrNotConnected
	}
	if err := m.writeJSON(conn, clientMessage{Event: event, Data: data}); err != nil {
		return &ChannelError{Op: event, Err: err}
	}
	return nil
}

func (m *Manager) writeJSON(conn *websocket.Conn, msg any) error {
	m.writeMu.Lock()
	defer m.writeMu.Unlock()
	_ = conn.SetWriteDeadline(time.Now().Add(m.cfg.WriteTimeout))
	return conn.WriteJSON(msg)
}

func (m *Manager) setStateLocked(s State) {
	m.state = s
	metrics.ConnectionState.Set(float64(s))
}

func (m *Manager) nextGenLocked() int {
	m.gen++
	return m.gen
}

func (m *Manager) stopRetryLocked() {
	if m.retryTimer != nil {
		m.retryTimer.Stop()
		m.retryTimer = nil
	}
}

func (m *Manager) closeConnLocked() {
	if m.conn != nil {
		_ = m.conn.Close()
		m.conn = nil
	}
}

// backoffDelay is the wait before reconnect attempt n (1-based): base for
// the first attempt, doubling each time, uncapped, no jitter.
func backoffDelay(base time.Duration, attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	return base * time.Duration(1<<uint(attempt-1))
}
