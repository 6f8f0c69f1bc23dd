package service

import (
	"time"

	"github.com/fieldgate-project/fieldgate-go/pkg/config"
	"github.com/fieldgate-project/fieldgate-go/pkg/event"
	"github.com/fieldgate-project/fieldgate-go/pkg/model"
	"github.com/fieldgate-project/fieldgate-go/pkg/persistence"
	"github.com/fieldgate-project/fieldgate-go/pkg/policy"
	"github.com/fieldgate-project/fieldgate-go/pkg/poll"
)

// StateMachine drives the application-level onboarding and operation
// protocol. The supervisor feeds it abstract events; it calls back into the
// supervisor's operations (publish, schema, credentials) to make progress.
//
// Input is always invoked on the supervisor's event loop goroutine.
type StateMachine interface {
	// Start puts the state machine into its initial state.
	Start()

	// Input feeds one abstract event.
	Input(ev event.Event)
}

// FieldbusLink is the physical leg to the sensor hardware.
//
// onConnect and onDisconnect may be invoked from any goroutine; the
// supervisor serializes them onto its event loop.
type FieldbusLink interface {
	// Start opens the link and begins supervising it. The link retries
	// in the background after connection loss.
	Start(url string, slaveID int, onConnect, onDisconnect func()) error

	// Stop closes the link and stops supervision.
	Stop()

	// Read fetches the current value of one register-mapped sensor.
	Read(source model.RegisterSource, valueType model.ValueType) (model.Value, error)
}

// BrokerLink is the network leg to the cloud message broker.
//
// onConnect and onDisconnect may be invoked from any goroutine; the
// supervisor serializes them onto its event loop.
type BrokerLink interface {
	Start(url, userToken string, onConnect, onDisconnect func()) error
	Stop()

	// RegisterDevice asks the broker to register a new device id under
	// the given display name.
	RegisterDevice(id, name string) error

	// AuthDevice proves ownership of a previously issued token.
	AuthDevice(id, token string) error

	// UpdateSchema uploads the full sensor schema list.
	UpdateSchema(id string, items []model.SchemaItem) error

	// PublishData publishes one sensor reading.
	PublishData(id string, sensorID int, valueType model.ValueType, value model.Value) error

	// ReadStart subscribes to inbound messages for the device. onMessage
	// may be invoked from any goroutine.
	ReadStart(id string, onMessage func(msg event.Message)) error
}

// PollScheduler owns the periodic read timers, one per sensor.
type PollScheduler interface {
	// Create registers a poll without starting it.
	Create(interval time.Duration, sensorID int, callback func(sensorID int) error) error

	// Start activates all registered polls.
	Start()

	// Stop pauses all polls without discarding them.
	Stop()

	// Destroy stops and discards all polls.
	Destroy()
}

// CredentialStore persists device credentials across restarts.
type CredentialStore interface {
	Save(path, id, token string) error
	Clear(path string) error
}

// PropertiesLoader populates an empty device aggregate from a configuration
// source.
type PropertiesLoader interface {
	Load(thing *model.Thing, source string) error
}

// PolicySubsystem evaluates publish policies and fires time-based ones.
type PolicySubsystem interface {
	// Start begins timer supervision. onTimeout may be invoked from any
	// goroutine; the supervisor serializes it onto its event loop.
	Start(onTimeout func(sensorID int)) error

	// Stop halts timer supervision and discards registered items.
	Stop()

	// RegisterItem schedules the time-based policy of one sensor, if any.
	RegisterItem(sensorID int, cfg model.PolicyConfig)

	// Evaluate decides whether a fresh reading should be published.
	// It returns a positive value to publish, zero to hold, and a
	// negative value on a type mismatch.
	Evaluate(cfg model.PolicyConfig, current, lastSent model.Value, valueType model.ValueType) int
}

var (
	_ PollScheduler    = (*poll.Scheduler)(nil)
	_ PolicySubsystem  = (*policy.Engine)(nil)
	_ CredentialStore  = (*persistence.CredentialsStore)(nil)
	_ PropertiesLoader = (*config.Loader)(nil)
)
