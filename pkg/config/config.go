package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/fieldgate-project/fieldgate-go/pkg/model"
)

// Configuration errors.
var (
	ErrNoSensors       = errors.New("no sensors configured")
	ErrMissingBroker   = errors.New("broker url not configured")
	ErrMissingFieldbus = errors.New("fieldbus url not configured")
)

// File is the on-disk gateway definition.
type File struct {
	// Name is the human-readable device name.
	Name string `yaml:"name"`

	// UserToken authenticates the broker link itself.
	UserToken string `yaml:"user_token"`

	// CredentialsPath locates the durable credentials file.
	CredentialsPath string `yaml:"credentials_path"`

	Broker   BrokerSection   `yaml:"broker"`
	Fieldbus FieldbusSection `yaml:"fieldbus"`

	Sensors []SensorSection `yaml:"sensors"`
}

// BrokerSection configures the cloud broker link.
type BrokerSection struct {
	URL string `yaml:"url"`
}

// FieldbusSection configures the fieldbus link.
type FieldbusSection struct {
	SlaveID int    `yaml:"slave_id"`
	URL     string `yaml:"url"`
}

// SensorSection configures one sensor.
type SensorSection struct {
	ID        int           `yaml:"id"`
	Name      string        `yaml:"name"`
	ValueType string        `yaml:"value_type"`
	Unit      uint8         `yaml:"unit"`
	TypeID    uint16        `yaml:"type_id"`
	Register  int           `yaml:"register"`
	BitOffset int           `yaml:"bit_offset"`
	Policy    PolicySection `yaml:"policy"`
}

// PolicySection configures one sensor's change-detection rules.
type PolicySection struct {
	Change     bool     `yaml:"change"`
	TimeSec    int      `yaml:"time_sec"`
	LowerLimit *float64 `yaml:"lower_limit"`
	UpperLimit *float64 `yaml:"upper_limit"`
}

// Parse reads and validates a gateway definition.
func Parse(data []byte) (*File, error) {
	f := &File{}
	if err := yaml.Unmarshal(data, f); err != nil {
		return nil, fmt.Errorf("invalid gateway definition: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// Load reads and validates the gateway definition at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Validate checks structural requirements: locators present, at least one
// sensor, unique sensor IDs, known value types, limits matching the type.
func (f *File) Validate() error {
	if f.Broker.URL == "" {
		return ErrMissingBroker
	}
	if f.Fieldbus.URL == "" {
		return ErrMissingFieldbus
	}
	if len(f.Sensors) == 0 {
		return ErrNoSensors
	}

	seen := make(map[int]bool, len(f.Sensors))
	for _, s := range f.Sensors {
		if seen[s.ID] {
			return fmt.Errorf("sensor %d: %w", s.ID, model.ErrDuplicateSensor)
		}
		seen[s.ID] = true

		if _, err := parseValueType(s.ValueType); err != nil {
			return fmt.Errorf("sensor %d: %w", s.ID, err)
		}
		if s.Register < 0 || s.BitOffset < 0 {
			return fmt.Errorf("sensor %d: negative register locator", s.ID)
		}
		if s.Policy.TimeSec < 0 {
			return fmt.Errorf("sensor %d: negative time_sec", s.ID)
		}
	}
	return nil
}

func parseValueType(name string) (model.ValueType, error) {
	switch name {
	case "bool":
		return model.ValueTypeBool, nil
	case "int":
		return model.ValueTypeInt, nil
	case "float":
		return model.ValueTypeFloat, nil
	case "raw":
		return model.ValueTypeRaw, nil
	default:
		return 0, fmt.Errorf("unknown value type %q", name)
	}
}

// policyConfig converts a sensor's policy section into model form. Limits
// are typed per the sensor's declared value type.
func (s *SensorSection) policyConfig(vt model.ValueType) model.PolicyConfig {
	cfg := model.PolicyConfig{TimeSec: s.Policy.TimeSec}

	if s.Policy.Change {
		cfg.Flags |= model.PolicyChange
	}
	if s.Policy.TimeSec > 0 {
		cfg.Flags |= model.PolicyTime
	}
	if s.Policy.LowerLimit != nil {
		cfg.Flags |= model.PolicyLowerThreshold
		cfg.LowerLimit = limitValue(vt, *s.Policy.LowerLimit)
	}
	if s.Policy.UpperLimit != nil {
		cfg.Flags |= model.PolicyUpperThreshold
		cfg.UpperLimit = limitValue(vt, *s.Policy.UpperLimit)
	}
	return cfg
}

func limitValue(vt model.ValueType, raw float64) model.Value {
	switch vt {
	case model.ValueTypeInt:
		return model.IntValue(int64(raw))
	case model.ValueTypeFloat:
		return model.FloatValue(raw)
	default:
		// Thresholds only apply to numeric sensors; validated upstream by
		// policy evaluation returning 0 for the rest.
		return model.Value{}
	}
}

// PollInterval returns the fixed default poll interval. Kept as a function
// so a per-sensor interval can surface in the file format later without
// touching callers.
func (f *File) PollInterval() time.Duration {
	return time.Second
}
