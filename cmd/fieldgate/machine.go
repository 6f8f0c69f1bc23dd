package main

import (
	"log/slog"
	"time"

	"github.com/fieldgate-project/fieldgate-go/pkg/event"
	"github.com/fieldgate-project/fieldgate-go/pkg/service"
)

// responseTimeout bounds each request/response exchange with the cloud.
const responseTimeout = 10 * time.Second

// machine is the onboarding and operation driver: it reacts to supervisor
// events by issuing register/auth/schema requests until the device is
// online, then serves publish requests. All handling runs on the
// supervisor's event loop.
type machine struct {
	sup    *service.Supervisor
	logger *slog.Logger

	online bool
}

func newMachine(logger *slog.Logger) *machine {
	return &machine{logger: logger}
}

// Bind attaches the supervisor. The supervisor and the machine reference
// each other, so binding happens after both are constructed.
func (m *machine) Bind(sup *service.Supervisor) {
	m.sup = sup
}

func (m *machine) Start() {
	m.online = false
}

func (m *machine) Input(ev event.Event) {
	m.logger.Debug("event", "type", ev.Type.String())

	switch ev.Type {
	case event.TypeReady:
		m.onReady()

	case event.TypeNotReady:
		m.online = false

	case event.TypeTimeout:
		// The pending exchange got no answer; start over from the
		// readiness baseline.
		m.onReady()

	case event.TypeRegisterOK:
		if err := m.sup.StoreCredentials(ev.Token); err != nil {
			m.logger.Error("failed to store credentials", "error", err)
			m.rearm()
			return
		}
		m.sendSchema()

	case event.TypeRegisterFailed:
		m.logger.Warn("registration rejected, retrying with a fresh id")
		m.sup.ClearID()
		m.rearm()

	case event.TypeAuthOK:
		m.sendSchema()

	case event.TypeAuthFailed:
		// The stored token is no longer valid; forget it and register
		// from scratch.
		m.logger.Warn("authentication rejected, re-registering")
		if err := m.sup.ClearStoredCredentials(); err != nil {
			m.logger.Error("failed to clear stored credentials", "error", err)
		}
		m.sup.ClearToken()
		m.sup.ClearID()
		m.rearm()

	case event.TypeSchemaOK:
		m.sup.MsgTimeoutRemove()
		if !m.online {
			if err := m.sup.StartPolicy(); err != nil {
				m.logger.Error("failed to start policy timers", "error", err)
			}
		}
		m.online = true
		m.logger.Info("device online", "id", m.sup.ID())

	case event.TypeSchemaFailed:
		m.sendSchema()

	case event.TypePublishRequest:
		if len(ev.SensorIDs) == 0 {
			m.sup.PublishDataAll()
			return
		}
		m.sup.PublishDataList(ev.SensorIDs)

	case event.TypeDataUpdate:
		// Sensors are read-only on this gateway.
		m.logger.Warn("ignoring data update for read-only sensors",
			"count", len(ev.Updates))

	case event.TypeUnregisterRequested:
		m.logger.Warn("cloud requested unregistration")
		m.sup.StopPolicy()
		if err := m.sup.ClearStoredCredentials(); err != nil {
			m.logger.Error("failed to clear stored credentials", "error", err)
		}
		m.sup.ClearToken()
		m.sup.ClearID()
		m.online = false
	}
}

func (m *machine) onReady() {
	if m.sup.ID() == "" {
		m.sup.GenerateID()
	}

	// Re-subscribe on every readiness: the broker session is clean, so a
	// reconnect drops the previous subscription.
	if err := m.sup.StartBrokerRead(); err != nil {
		m.logger.Error("failed to subscribe to broker", "error", err)
		return
	}

	if m.sup.HasToken() {
		if err := m.sup.SendAuthRequest(); err != nil {
			m.logger.Error("failed to send auth request", "error", err)
			return
		}
	} else {
		if err := m.sup.SendRegisterRequest(); err != nil {
			m.logger.Error("failed to send register request", "error", err)
			return
		}
	}
	m.rearm()
}

func (m *machine) sendSchema() {
	if err := m.sup.SendSchema(); err != nil {
		m.logger.Error("failed to send schema", "error", err)
	}
	m.rearm()
}

// rearm restarts the response timer for the exchange just issued.
func (m *machine) rearm() {
	m.sup.MsgTimeoutRemove()
	m.sup.MsgTimeoutCreate(responseTimeout)
}

var _ service.StateMachine = (*machine)(nil)
