package model

// Schema describes the published shape of one sensor: its wire value type
// plus the semantic classification used by the cloud side.
type Schema struct {
	// ValueType is the wire type of the sensor's values.
	ValueType ValueType

	// Unit is the measurement unit code (0 = unitless).
	Unit uint8

	// TypeID is the semantic sensor type (temperature, voltage, ...).
	TypeID uint16

	// Name is a human-readable sensor label.
	Name string
}

// PolicyFlag selects which change-detection rules apply to a sensor.
type PolicyFlag uint8

const (
	// PolicyChange publishes whenever the value differs from the last
	// published value.
	PolicyChange PolicyFlag = 1 << iota

	// PolicyTime publishes periodically, every PolicyConfig.TimeSec seconds,
	// regardless of value changes.
	PolicyTime

	// PolicyLowerThreshold publishes when the value drops below
	// PolicyConfig.LowerLimit.
	PolicyLowerThreshold

	// PolicyUpperThreshold publishes when the value rises above
	// PolicyConfig.UpperLimit.
	PolicyUpperThreshold
)

// Has reports whether flag is set.
func (f PolicyFlag) Has(flag PolicyFlag) bool {
	return f&flag != 0
}

// PolicyConfig holds the change-detection parameters for one sensor.
type PolicyConfig struct {
	// Flags selects the active rules.
	Flags PolicyFlag

	// TimeSec is the publication period for PolicyTime, in seconds.
	TimeSec int

	// LowerLimit is the threshold for PolicyLowerThreshold. Must match the
	// sensor's declared value type.
	LowerLimit Value

	// UpperLimit is the threshold for PolicyUpperThreshold. Must match the
	// sensor's declared value type.
	UpperLimit Value
}

// RegisterSource locates a sensor's value on the fieldbus: a register
// address plus a bit offset within that register.
type RegisterSource struct {
	RegAddr   int
	BitOffset int
}

// DataItem is one sensor owned by the registry. Schema, Config and Source
// are immutable after insertion; Current and LastSent are mutated by the
// poll-driven change detector only, and are always typed per Schema.
type DataItem struct {
	// SensorID is the unique sensor identifier.
	SensorID int

	// Schema is the wire value-type descriptor.
	Schema Schema

	// Config holds the change-detection policy parameters.
	Config PolicyConfig

	// Source is the fieldbus locator.
	Source RegisterSource

	// Current is the most recently read value.
	Current Value

	// LastSent is the value carried by the most recent publication. It
	// changes only on a positive change-detection decision.
	LastSent Value
}

// SchemaItem pairs a sensor identifier with its schema for the cloud-side
// schema exchange.
type SchemaItem struct {
	SensorID int
	Schema   Schema
}
