package config

import (
	"fmt"

	"github.com/fieldgate-project/fieldgate-go/pkg/model"
	"github.com/fieldgate-project/fieldgate-go/pkg/persistence"
)

// Loader populates a Thing aggregate from a gateway definition file, and
// restores previously stored credentials when present.
type Loader struct {
	creds *persistence.CredentialsStore
}

// NewLoader creates a loader restoring credentials through creds. A nil
// store skips credential restoration.
func NewLoader(creds *persistence.CredentialsStore) *Loader {
	return &Loader{creds: creds}
}

// Load parses the definition at source and populates thing: identity
// fields, link locators, and one data item per configured sensor.
func (l *Loader) Load(thing *model.Thing, source string) error {
	f, err := Load(source)
	if err != nil {
		return err
	}

	thing.SetName(f.Name)
	thing.SetUserToken(f.UserToken)
	thing.SetBrokerURL(f.Broker.URL)
	thing.SetCredentialsPath(f.CredentialsPath)
	thing.SetFieldbus(model.FieldbusTarget{
		SlaveID: f.Fieldbus.SlaveID,
		URL:     f.Fieldbus.URL,
	})

	for _, s := range f.Sensors {
		vt, err := parseValueType(s.ValueType)
		if err != nil {
			return fmt.Errorf("sensor %d: %w", s.ID, err)
		}
		schema := model.Schema{
			ValueType: vt,
			Unit:      s.Unit,
			TypeID:    s.TypeID,
			Name:      s.Name,
		}
		source := model.RegisterSource{RegAddr: s.Register, BitOffset: s.BitOffset}
		if err := thing.Sensors().Insert(s.ID, schema, s.policyConfig(vt), source); err != nil {
			return fmt.Errorf("sensor %d: %w", s.ID, err)
		}
	}

	if l.creds != nil && f.CredentialsPath != "" {
		stored, err := l.creds.Load(f.CredentialsPath)
		if err != nil {
			return fmt.Errorf("load stored credentials: %w", err)
		}
		if stored != nil {
			thing.SetID(stored.DeviceID)
			thing.SetToken(stored.Token)
		}
	}

	return nil
}
