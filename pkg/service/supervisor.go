package service

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/fieldgate-project/fieldgate-go/pkg/event"
	"github.com/fieldgate-project/fieldgate-go/pkg/model"
	"github.com/fieldgate-project/fieldgate-go/pkg/trace"
)

// Config carries the supervisor's collaborators. All collaborator fields are
// required; Logger, Tracer and PollInterval have working defaults.
type Config struct {
	StateMachine StateMachine
	Fieldbus     FieldbusLink
	Broker       BrokerLink
	Polls        PollScheduler
	Credentials  CredentialStore
	Properties   PropertiesLoader
	Policy       PolicySubsystem

	// Loop serializes all device state access. The poll scheduler must
	// dispatch through the same loop.
	Loop *Loop

	// PollInterval is the sensor read period. Zero means one second.
	PollInterval time.Duration

	Logger *slog.Logger
	Tracer trace.Logger
}

func (c *Config) validate() error {
	switch {
	case c.StateMachine == nil:
		return fmt.Errorf("%w: nil state machine", ErrInvalidConfig)
	case c.Fieldbus == nil:
		return fmt.Errorf("%w: nil fieldbus link", ErrInvalidConfig)
	case c.Broker == nil:
		return fmt.Errorf("%w: nil broker link", ErrInvalidConfig)
	case c.Polls == nil:
		return fmt.Errorf("%w: nil poll scheduler", ErrInvalidConfig)
	case c.Credentials == nil:
		return fmt.Errorf("%w: nil credential store", ErrInvalidConfig)
	case c.Properties == nil:
		return fmt.Errorf("%w: nil properties loader", ErrInvalidConfig)
	case c.Policy == nil:
		return fmt.Errorf("%w: nil policy subsystem", ErrInvalidConfig)
	case c.Loop == nil:
		return fmt.Errorf("%w: nil event loop", ErrInvalidConfig)
	}
	return nil
}

// Supervisor owns the device aggregate and drives its lifecycle: staged
// startup with rollback, link readiness tracking, poll-driven change
// detection, broker message translation and ordered teardown.
//
// Start and Shutdown are called from the owning goroutine; everything else
// runs on the supervisor's event loop.
type Supervisor struct {
	sm       StateMachine
	fieldbus FieldbusLink
	broker   BrokerLink
	polls    PollScheduler
	creds    CredentialStore
	props    PropertiesLoader
	policy   PolicySubsystem

	thing *model.Thing
	loop  *Loop
	conn  *connTracker
	timer msgTimer

	pollInterval time.Duration
	started      bool

	logger *slog.Logger
	tracer trace.Logger
}

// New creates a supervisor around an empty device aggregate.
func New(cfg Config) (*Supervisor, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	if cfg.Tracer == nil {
		cfg.Tracer = trace.NoopLogger{}
	}

	s := &Supervisor{
		sm:           cfg.StateMachine,
		fieldbus:     cfg.Fieldbus,
		broker:       cfg.Broker,
		polls:        cfg.Polls,
		creds:        cfg.Credentials,
		props:        cfg.Properties,
		policy:       cfg.Policy,
		thing:        model.NewThing(),
		loop:         cfg.Loop,
		pollInterval: cfg.PollInterval,
		logger:       cfg.Logger,
		tracer:       cfg.Tracer,
	}
	s.conn = newConnTracker(s.inputEvent)
	return s, nil
}

// Thing returns the device aggregate. Outside of tests, callers must only
// touch it from the event loop.
func (s *Supervisor) Thing() *model.Thing { return s.thing }

// Loop returns the serial event loop.
func (s *Supervisor) Loop() *Loop { return s.loop }

// Start brings the device up in stages: load properties into the aggregate,
// start the state machine, create the per-sensor polls, then start the
// fieldbus and broker links. A failure at any stage rolls back exactly the
// resources acquired by the completed stages, in reverse order, and returns
// the stage's sentinel error.
func (s *Supervisor) Start(source string) error {
	if s.started {
		return ErrAlreadyStarted
	}

	var undo rollback

	if err := s.props.Load(s.thing, source); err != nil {
		s.logger.Error("failed to load device properties",
			"source", source, "error", err)
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	undo.push(s.thing.Reset)

	s.sm.Start()

	if err := s.createPolls(); err != nil {
		s.logger.Error("failed to create sensor polls", "error", err)
		undo.run()
		return fmt.Errorf("%w: %w", ErrPollCreation, err)
	}
	undo.push(s.polls.Destroy)

	target := s.thing.Fieldbus()
	err := s.fieldbus.Start(target.URL, target.SlaveID,
		func() { s.loop.Dispatch(s.onFieldbusUp) },
		func() { s.loop.Dispatch(s.onFieldbusDown) })
	if err != nil {
		s.logger.Error("failed to start fieldbus link",
			"url", target.URL, "error", err)
		undo.run()
		return fmt.Errorf("%w: %w", ErrFieldbusLink, err)
	}
	undo.push(s.fieldbus.Stop)

	err = s.broker.Start(s.thing.BrokerURL(), s.thing.UserToken(),
		func() { s.loop.Dispatch(s.onBrokerUp) },
		func() { s.loop.Dispatch(s.onBrokerDown) })
	if err != nil {
		s.logger.Error("failed to start broker link",
			"url", s.thing.BrokerURL(), "error", err)
		undo.run()
		return fmt.Errorf("%w: %w", ErrBrokerLink, err)
	}

	s.started = true
	s.logger.Info("device started",
		"name", s.thing.Name(), "sensors", s.thing.Sensors().Len())
	return nil
}

// Shutdown tears the device down in order: policy subsystem, polls, broker
// link, fieldbus link, message timer, aggregate state, event loop.
func (s *Supervisor) Shutdown() {
	s.policy.Stop()
	s.polls.Destroy()
	s.broker.Stop()
	s.fieldbus.Stop()

	s.loop.Dispatch(func() {
		s.timer.remove()
		s.thing.Reset()
	})
	s.loop.Stop()

	s.started = false
	s.logger.Info("device stopped")
}

func (s *Supervisor) createPolls() error {
	var createErr error
	s.thing.Sensors().ForEach(func(item *model.DataItem) {
		if createErr != nil {
			return
		}
		if err := s.polls.Create(s.pollInterval, item.SensorID, s.checkSensor); err != nil {
			createErr = fmt.Errorf("sensor %d: %w", item.SensorID, err)
		}
	})
	if createErr != nil {
		s.polls.Destroy()
		return createErr
	}
	return nil
}

// StartPolicy begins timer supervision for every sensor with a time-based
// policy. Timeouts surface as publish-request events on the loop.
func (s *Supervisor) StartPolicy() error {
	err := s.policy.Start(func(sensorID int) {
		s.loop.Dispatch(func() {
			s.inputEvent(event.PublishRequest(sensorID))
		})
	})
	if err != nil {
		return err
	}
	s.thing.Sensors().ForEach(func(item *model.DataItem) {
		s.policy.RegisterItem(item.SensorID, item.Config)
	})
	return nil
}

// StopPolicy halts timer supervision.
func (s *Supervisor) StopPolicy() {
	s.policy.Stop()
}

// StartBrokerRead subscribes to inbound broker messages for the device.
// Messages are serialized onto the loop and translated before reaching the
// state machine.
func (s *Supervisor) StartBrokerRead() error {
	return s.broker.ReadStart(s.thing.ID(), func(msg event.Message) {
		s.loop.Dispatch(func() { s.handleBrokerMessage(msg) })
	})
}

func (s *Supervisor) handleBrokerMessage(msg event.Message) {
	ev, ok := translateMessage(msg)

	s.tracer.Log(trace.Event{
		Timestamp: time.Now(),
		DeviceID:  s.thing.ID(),
		Category:  trace.CategoryMessage,
		Message: &trace.MessageEvent{
			Kind:    msg.Kind.String(),
			Failed:  msg.Error,
			Ignored: !ok,
		},
	})

	if !ok {
		s.logger.Debug("ignoring broker message",
			"kind", msg.Kind, "error_flag", msg.Error)
		return
	}
	s.inputEvent(ev)
}

// inputEvent hands one abstract event to the state machine. Loop goroutine
// only.
func (s *Supervisor) inputEvent(ev event.Event) {
	s.tracer.Log(trace.Event{
		Timestamp: time.Now(),
		DeviceID:  s.thing.ID(),
		Category:  trace.CategoryEvent,
		Emitted: &trace.EmittedEvent{
			Type:      ev.Type.String(),
			SensorIDs: ev.SensorIDs,
		},
	})
	s.sm.Input(ev)
}

func (s *Supervisor) onFieldbusUp() {
	s.logger.Info("fieldbus link up")
	s.polls.Start()
	s.reportLink(LinkFieldbus, true)
}

func (s *Supervisor) onFieldbusDown() {
	s.logger.Warn("fieldbus link down")
	s.polls.Stop()
	s.reportLink(LinkFieldbus, false)
}

func (s *Supervisor) onBrokerUp() {
	s.logger.Info("broker link up")
	s.reportLink(LinkBroker, true)
}

func (s *Supervisor) onBrokerDown() {
	s.logger.Warn("broker link down")
	s.reportLink(LinkBroker, false)
}

func (s *Supervisor) reportLink(link Link, up bool) {
	s.conn.Report(link, up)

	s.tracer.Log(trace.Event{
		Timestamp: time.Now(),
		DeviceID:  s.thing.ID(),
		Category:  trace.CategoryLink,
		Link: &trace.LinkEvent{
			Link:  link.String(),
			Up:    up,
			Ready: s.conn.ready(),
		},
	})
}

func (s *Supervisor) traceError(context string, err error) {
	s.tracer.Log(trace.Event{
		Timestamp: time.Now(),
		DeviceID:  s.thing.ID(),
		Category:  trace.CategoryError,
		Error: &trace.ErrorEvent{
			Context: context,
			Message: err.Error(),
		},
	})
}
