package fieldbus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/fieldgate-project/fieldgate-go/pkg/connection"
	"github.com/fieldgate-project/fieldgate-go/pkg/model"
	"github.com/fieldgate-project/fieldgate-go/pkg/service"
)

// Link supervises one fieldbus transport: it performs the initial connect,
// reports state changes, and re-establishes the wire with backoff after a
// detected loss.
//
// Stop may run concurrently with in-flight Reads (queued poll ticks drain
// during shutdown), so the manager handle is mutex-guarded.
type Link struct {
	mu        sync.Mutex
	transport Transport
	manager   *connection.Manager
	logger    *slog.Logger
}

// NewLink creates a stopped link over transport. A nil logger disables
// logging.
func NewLink(transport Transport, logger *slog.Logger) *Link {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Link{transport: transport, logger: logger}
}

// Start connects to the slave and begins supervision. The initial connect is
// synchronous; losses detected later are reported via onDisconnect and
// repaired in the background, with onConnect fired on every re-establishment.
func (l *Link) Start(url string, slaveID int, onConnect, onDisconnect func()) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.manager != nil {
		return connection.ErrAlreadyConnected
	}

	manager := connection.NewManager(func(ctx context.Context) error {
		return l.transport.Connect(ctx, url, slaveID)
	})
	manager.OnConnected(onConnect)
	manager.OnDisconnected(onDisconnect)

	if err := manager.Connect(context.Background()); err != nil {
		return fmt.Errorf("connect fieldbus %s: %w", url, err)
	}
	l.manager = manager

	l.logger.Info("fieldbus link started", "url", url, "slave_id", slaveID)
	return nil
}

// Stop closes the wire and ends supervision. Safe to call on a stopped link.
func (l *Link) Stop() {
	l.mu.Lock()
	manager := l.manager
	l.manager = nil
	l.mu.Unlock()

	if manager == nil {
		return
	}
	manager.Close()

	if err := l.transport.Close(); err != nil {
		l.logger.Warn("fieldbus close failed", "error", err)
	}
	l.logger.Info("fieldbus link stopped")
}

// Read fetches one sensor value. A read that fails because the wire is down
// triggers reconnection; the caller sees the error either way and retries on
// its next poll tick.
func (l *Link) Read(source model.RegisterSource, valueType model.ValueType) (model.Value, error) {
	value, err := l.transport.ReadRegister(source, valueType)
	if err != nil {
		if errors.Is(err, ErrNotConnected) {
			l.mu.Lock()
			manager := l.manager
			l.mu.Unlock()
			if manager != nil {
				manager.NotifyLost()
			}
		}
		return model.Value{}, err
	}
	return value, nil
}

var _ service.FieldbusLink = (*Link)(nil)
