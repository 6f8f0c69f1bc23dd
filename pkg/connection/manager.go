package connection

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Manager errors.
var (
	ErrManagerClosed    = errors.New("connection manager closed")
	ErrAlreadyConnected = errors.New("already connected")
)

// State is the link connection state.
type State uint8

const (
	// StateDisconnected - no active connection.
	StateDisconnected State = iota

	// StateConnecting - a connection attempt is in progress.
	StateConnecting

	// StateConnected - the link is up.
	StateConnected

	// StateReconnecting - automatic reconnection is in progress.
	StateReconnecting

	// StateClosed - the manager has been shut down.
	StateClosed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "DISCONNECTED"
	case StateConnecting:
		return "CONNECTING"
	case StateConnected:
		return "CONNECTED"
	case StateReconnecting:
		return "RECONNECTING"
	case StateClosed:
		return "CLOSED"
	default:
		return "UNKNOWN"
	}
}

// ConnectFunc establishes the underlying link. It returns nil on success.
type ConnectFunc func(ctx context.Context) error

// connectTimeout bounds a single reconnection attempt.
const connectTimeout = 15 * time.Second

// Manager supervises one link: it performs the initial connect, detects
// loss, and re-establishes the link with exponential backoff. The gateway
// runs one Manager per external link (fieldbus, broker when the client
// library does not reconnect on its own).
type Manager struct {
	mu sync.RWMutex

	state     State
	backoff   *Backoff
	connectFn ConnectFunc

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	reconnectCh chan struct{}
	loopStarted bool

	onConnected    func()
	onDisconnected func()
}

// NewManager creates a manager around connectFn. Callbacks must be set
// before Connect; the reconnect loop starts on the first Connect.
func NewManager(connectFn ConnectFunc) *Manager {
	ctx, cancel := context.WithCancel(context.Background())
	return &Manager{
		state:       StateDisconnected,
		backoff:     NewBackoff(),
		connectFn:   connectFn,
		ctx:         ctx,
		cancel:      cancel,
		reconnectCh: make(chan struct{}, 1),
	}
}

// OnConnected sets the callback fired after every successful connect,
// including reconnects.
func (m *Manager) OnConnected(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onConnected = fn
}

// OnDisconnected sets the callback fired on every detected loss.
func (m *Manager) OnDisconnected(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onDisconnected = fn
}

// State returns the current link state.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// IsConnected reports whether the link is currently up.
func (m *Manager) IsConnected() bool {
	return m.State() == StateConnected
}

// Connect performs the initial connection attempt and, on success, starts
// the background reconnect loop. The initial attempt is synchronous so that
// startup failures surface to the lifecycle sequence.
func (m *Manager) Connect(ctx context.Context) error {
	m.mu.Lock()
	switch m.state {
	case StateClosed:
		m.mu.Unlock()
		return ErrManagerClosed
	case StateConnected, StateConnecting, StateReconnecting:
		m.mu.Unlock()
		return ErrAlreadyConnected
	}
	m.state = StateConnecting
	m.mu.Unlock()

	if err := m.connectFn(ctx); err != nil {
		m.mu.Lock()
		m.state = StateDisconnected
		m.mu.Unlock()
		return err
	}

	m.mu.Lock()
	m.state = StateConnected
	m.backoff.Reset()
	onConnected := m.onConnected
	startLoop := !m.loopStarted
	m.loopStarted = true
	m.mu.Unlock()

	if startLoop {
		m.wg.Add(1)
		go m.reconnectLoop()
	}

	if onConnected != nil {
		onConnected()
	}
	return nil
}

// NotifyLost reports a detected connection loss and triggers reconnection.
func (m *Manager) NotifyLost() {
	m.mu.Lock()
	if m.state != StateConnected {
		m.mu.Unlock()
		return
	}
	m.state = StateReconnecting
	onDisconnected := m.onDisconnected
	m.mu.Unlock()

	if onDisconnected != nil {
		onDisconnected()
	}

	select {
	case m.reconnectCh <- struct{}{}:
	default:
		// already pending
	}
}

// Close shuts the manager down and stops reconnection.
func (m *Manager) Close() {
	m.mu.Lock()
	if m.state == StateClosed {
		m.mu.Unlock()
		return
	}
	m.state = StateClosed
	m.mu.Unlock()

	m.cancel()
	m.wg.Wait()
}

func (m *Manager) reconnectLoop() {
	defer m.wg.Done()

	for {
		select {
		case <-m.ctx.Done():
			return
		case <-m.reconnectCh:
			m.attemptReconnect()
		}
	}
}

func (m *Manager) attemptReconnect() {
	for {
		switch m.State() {
		case StateClosed, StateConnected:
			return
		}

		delay := m.backoff.Next()
		select {
		case <-m.ctx.Done():
			return
		case <-time.After(delay):
		}

		ctx, cancel := context.WithTimeout(m.ctx, connectTimeout)
		err := m.connectFn(ctx)
		cancel()
		if err != nil {
			continue
		}

		m.mu.Lock()
		if m.state == StateClosed {
			m.mu.Unlock()
			return
		}
		m.state = StateConnected
		m.backoff.Reset()
		onConnected := m.onConnected
		m.mu.Unlock()

		if onConnected != nil {
			onConnected()
		}
		return
	}
}
