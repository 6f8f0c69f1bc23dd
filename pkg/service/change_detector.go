package service

import (
	"fmt"

	"github.com/fieldgate-project/fieldgate-go/pkg/event"
)

// checkSensor is the poll callback: it runs on the loop goroutine once per
// tick per sensor. It reads the sensor over the fieldbus, evaluates the
// publish policy against the last sent value, and on a positive verdict
// records the new reference and emits a single-sensor publish request.
//
// A read failure leaves the last sent value untouched and does not suppress
// future ticks; the next tick is the retry.
func (s *Supervisor) checkSensor(sensorID int) error {
	item, err := s.thing.Sensors().Lookup(sensorID)
	if err != nil {
		return err
	}

	value, err := s.fieldbus.Read(item.Source, item.Schema.ValueType)
	if err != nil {
		s.traceError("fieldbus read", err)
		return fmt.Errorf("read sensor %d: %w", sensorID, err)
	}
	item.Current = value

	if s.policy.Evaluate(item.Config, item.Current, item.LastSent, item.Schema.ValueType) > 0 {
		item.LastSent = item.Current
		s.inputEvent(event.PublishRequest(sensorID))
	}
	return nil
}
