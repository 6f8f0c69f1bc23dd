package broker

import (
	"testing"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/stretchr/testify/assert"

	"github.com/fieldgate-project/fieldgate-go/pkg/model"
)

// stalledToken never confirms delivery within any timeout.
type stalledToken struct{}

func (stalledToken) Wait() bool                     { return false }
func (stalledToken) WaitTimeout(time.Duration) bool { return false }
func (stalledToken) Done() <-chan struct{}          { return make(chan struct{}) }
func (stalledToken) Error() error                   { return nil }

// stalledMQTT accepts publishes but never acknowledges them.
type stalledMQTT struct {
	mqtt.Client
}

func (stalledMQTT) Publish(string, byte, bool, interface{}) mqtt.Token {
	return stalledToken{}
}

func TestPublishDoesNotBlockOnDelivery(t *testing.T) {
	c := NewClient(nil)
	c.client = stalledMQTT{}
	c.started = true

	done := make(chan error, 1)
	go func() {
		done <- c.PublishData("0123456789abcdef", 1,
			model.ValueTypeInt, model.IntValue(42))
	}()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("publish waited for delivery confirmation")
	}
}

func TestPublishRequiresStartedClient(t *testing.T) {
	c := NewClient(nil)

	err := c.PublishData("0123456789abcdef", 1,
		model.ValueTypeInt, model.IntValue(42))
	assert.ErrorIs(t, err, ErrNotStarted)
}
