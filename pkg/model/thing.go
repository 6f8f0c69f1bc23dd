package model

// Identity limits.
const (
	// IDLength is the exact length of an assigned device ID
	// (16 lowercase hexadecimal characters).
	IDLength = 16

	// MaxNameLength is the capacity of the human-readable device name.
	MaxNameLength = 63
)

// FieldbusTarget locates the fieldbus slave the gateway reads from.
type FieldbusTarget struct {
	SlaveID int
	URL     string
}

// Thing is the gateway device aggregate: identity and credentials, the
// connection locators for both links, and the sensor registry. It is
// constructed empty, populated once by configuration loading, mutated by
// supervisor callbacks for the process lifetime, and reset exactly once at
// teardown.
//
// Thing carries no locking: every access happens on the supervisor's serial
// event loop.
type Thing struct {
	id        string
	token     string
	name      string
	userToken string

	fieldbus        FieldbusTarget
	brokerURL       string
	credentialsPath string

	sensors *Registry
}

// NewThing creates an empty Thing with an allocated sensor registry.
func NewThing() *Thing {
	return &Thing{sensors: NewRegistry()}
}

// ID returns the device ID, or "" if none is assigned.
func (t *Thing) ID() string { return t.id }

// SetID assigns the device ID unconditionally.
func (t *Thing) SetID(id string) { t.id = id }

// ClearID resets the device ID to the unassigned sentinel.
func (t *Thing) ClearID() { t.id = "" }

// Token returns the device token, or "" if unauthenticated.
func (t *Thing) Token() string { return t.token }

// SetToken sets the in-memory device token.
func (t *Thing) SetToken(token string) { t.token = token }

// ClearToken resets the in-memory device token.
func (t *Thing) ClearToken() { t.token = "" }

// HasToken reports whether a device token is assigned.
func (t *Thing) HasToken() bool { return t.token != "" }

// Name returns the human-readable device name.
func (t *Thing) Name() string { return t.name }

// SetName sets the device name, truncated to MaxNameLength.
func (t *Thing) SetName(name string) {
	if len(name) > MaxNameLength {
		name = name[:MaxNameLength]
	}
	t.name = name
}

// UserToken returns the credential authenticating the broker link itself.
func (t *Thing) UserToken() string { return t.userToken }

// SetUserToken sets the broker link credential.
func (t *Thing) SetUserToken(token string) { t.userToken = token }

// Fieldbus returns the fieldbus slave target.
func (t *Thing) Fieldbus() FieldbusTarget { return t.fieldbus }

// SetFieldbus sets the fieldbus slave target.
func (t *Thing) SetFieldbus(target FieldbusTarget) { t.fieldbus = target }

// BrokerURL returns the broker connection locator.
func (t *Thing) BrokerURL() string { return t.brokerURL }

// SetBrokerURL sets the broker connection locator.
func (t *Thing) SetBrokerURL(url string) { t.brokerURL = url }

// CredentialsPath returns the durable-store locator.
func (t *Thing) CredentialsPath() string { return t.credentialsPath }

// SetCredentialsPath sets the durable-store locator.
func (t *Thing) SetCredentialsPath(path string) { t.credentialsPath = path }

// Sensors returns the sensor registry.
func (t *Thing) Sensors() *Registry { return t.sensors }

// Reset destroys the aggregate state: identity, credentials, locators and
// every registered data item. The Thing is back to its constructed-empty
// shape afterwards.
func (t *Thing) Reset() {
	t.id = ""
	t.token = ""
	t.name = ""
	t.userToken = ""
	t.fieldbus = FieldbusTarget{}
	t.brokerURL = ""
	t.credentialsPath = ""
	t.sensors = NewRegistry()
}
