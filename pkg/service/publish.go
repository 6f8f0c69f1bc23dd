package service

import (
	"time"

	"github.com/fieldgate-project/fieldgate-go/pkg/model"
	"github.com/fieldgate-project/fieldgate-go/pkg/trace"
)

// PublishData publishes the current value of one sensor. An unknown sensor
// id or a broker failure is logged and traced but not fatal: publishing is
// best effort and the next publish request tries again.
func (s *Supervisor) PublishData(sensorID int) {
	item, err := s.thing.Sensors().Lookup(sensorID)
	if err != nil {
		s.logger.Debug("skipping unknown sensor", "sensor_id", sensorID)
		return
	}

	err = s.broker.PublishData(s.thing.ID(), item.SensorID,
		item.Schema.ValueType, item.Current)
	if err != nil {
		s.logger.Error("failed to publish sensor data",
			"sensor_id", sensorID, "error", err)
		s.traceError("publish data", err)
		return
	}

	s.tracer.Log(trace.Event{
		Timestamp: time.Now(),
		DeviceID:  s.thing.ID(),
		Category:  trace.CategoryPublish,
		Publish: &trace.PublishEvent{
			SensorID: sensorID,
			Value:    item.Current.String(),
		},
	})
}

// PublishDataList publishes the listed sensors, skipping unknown ids.
func (s *Supervisor) PublishDataList(sensorIDs []int) {
	for _, id := range sensorIDs {
		s.PublishData(id)
	}
}

// PublishDataAll publishes every registered sensor.
func (s *Supervisor) PublishDataAll() {
	s.thing.Sensors().ForEach(func(item *model.DataItem) {
		s.PublishData(item.SensorID)
	})
}

// SendSchema uploads the full sensor schema list to the broker.
func (s *Supervisor) SendSchema() error {
	items := make([]model.SchemaItem, 0, s.thing.Sensors().Len())
	s.thing.Sensors().ForEach(func(item *model.DataItem) {
		items = append(items, model.SchemaItem{
			SensorID: item.SensorID,
			Schema:   item.Schema,
		})
	})
	return s.broker.UpdateSchema(s.thing.ID(), items)
}

// SendRegisterRequest asks the broker to register the device under its
// current id and name.
func (s *Supervisor) SendRegisterRequest() error {
	return s.broker.RegisterDevice(s.thing.ID(), s.thing.Name())
}

// SendAuthRequest proves ownership of the stored token to the broker.
func (s *Supervisor) SendAuthRequest() error {
	return s.broker.AuthDevice(s.thing.ID(), s.thing.Token())
}
