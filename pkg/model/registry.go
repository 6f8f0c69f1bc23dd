package model

import "errors"

// Registry errors.
var (
	ErrDuplicateSensor = errors.New("duplicate sensor ID")
	ErrSensorNotFound  = errors.New("sensor not found")
)

// Registry maps sensor identifiers to their data items. It owns the data
// items exclusively: Insert creates them and no deletion is exposed; items
// live until the Thing aggregate is reset.
//
// The registry is unsynchronized on purpose: all access happens on the
// supervisor's serial event loop.
type Registry struct {
	items map[int]*DataItem
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{items: make(map[int]*DataItem)}
}

// Insert creates a data item for sensorID. It fails with ErrDuplicateSensor
// if the identifier is already present; the existing item is left untouched.
func (r *Registry) Insert(sensorID int, schema Schema, config PolicyConfig, source RegisterSource) error {
	if _, exists := r.items[sensorID]; exists {
		return ErrDuplicateSensor
	}

	r.items[sensorID] = &DataItem{
		SensorID: sensorID,
		Schema:   schema,
		Config:   config,
		Source:   source,
	}
	return nil
}

// Lookup returns the data item for sensorID, or ErrSensorNotFound.
func (r *Registry) Lookup(sensorID int) (*DataItem, error) {
	item, exists := r.items[sensorID]
	if !exists {
		return nil, ErrSensorNotFound
	}
	return item, nil
}

// ForEach calls f for every data item. Iteration order is unspecified; f
// must not insert into the registry.
func (r *Registry) ForEach(f func(*DataItem)) {
	for _, item := range r.items {
		f(item)
	}
}

// Len returns the number of registered sensors.
func (r *Registry) Len() int {
	return len(r.items)
}
