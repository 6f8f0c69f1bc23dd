package broker

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/fieldgate-project/fieldgate-go/pkg/event"
	"github.com/fieldgate-project/fieldgate-go/pkg/model"
	"github.com/fieldgate-project/fieldgate-go/pkg/service"
)

// Client errors.
var (
	ErrNotStarted = errors.New("broker client not started")
	ErrTimeout    = errors.New("broker operation timed out")
)

const (
	connectTimeout   = 10 * time.Second
	operationTimeout = 5 * time.Second
	keepAlive        = 30 * time.Second

	// qosAtLeastOnce: every protocol exchange carries device state the
	// cloud must not silently miss.
	qosAtLeastOnce = 1
)

// Topic layout. Requests go to shared well-known topics; answers and
// cloud-initiated messages arrive on the per-device topic.
const (
	topicRegister = "fieldgate/register"
	topicAuth     = "fieldgate/auth"
	topicSchema   = "fieldgate/schema"
	topicData     = "fieldgate/data"
)

func deviceTopic(id string) string {
	return "fieldgate/device/" + id
}

// Client is the MQTT broker link. The underlying paho client reconnects on
// its own after a connection loss; state changes surface through the
// callbacks handed to Start.
type Client struct {
	mu      sync.Mutex
	client  mqtt.Client
	started bool

	logger *slog.Logger
}

// NewClient creates a stopped client. A nil logger disables logging.
func NewClient(logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Client{logger: logger}
}

// Start connects to the broker at url, authenticating with userToken. The
// initial connect is synchronous; afterwards the client reconnects in the
// background and reports every state change via onConnect/onDisconnect.
func (c *Client) Start(url, userToken string, onConnect, onDisconnect func()) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.started {
		return errors.New("broker client already started")
	}

	opts := mqtt.NewClientOptions().
		AddBroker(url).
		SetClientID("fieldgate-" + uuid.NewString()[:8]).
		SetUsername("fieldgate").
		SetPassword(userToken).
		SetKeepAlive(keepAlive).
		SetAutoReconnect(true).
		SetCleanSession(true).
		SetOnConnectHandler(func(mqtt.Client) {
			onConnect()
		}).
		SetConnectionLostHandler(func(_ mqtt.Client, err error) {
			c.logger.Warn("broker connection lost", "error", err)
			onDisconnect()
		})

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		return fmt.Errorf("connect to %s: %w", url, ErrTimeout)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("connect to %s: %w", url, err)
	}

	c.client = client
	c.started = true
	c.logger.Info("broker client connected", "url", url)
	return nil
}

// Stop disconnects from the broker. Safe to call on a stopped client.
func (c *Client) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.started {
		return
	}
	c.client.Disconnect(250)
	c.started = false
	c.logger.Info("broker client stopped")
}

// RegisterDevice publishes a registration request.
func (c *Client) RegisterDevice(id, name string) error {
	return c.publish(topicRegister, registerRequest{ID: id, Name: name})
}

// AuthDevice publishes an authentication request.
func (c *Client) AuthDevice(id, token string) error {
	return c.publish(topicAuth, authRequest{ID: id, Token: token})
}

// UpdateSchema publishes the full sensor schema list.
func (c *Client) UpdateSchema(id string, items []model.SchemaItem) error {
	return c.publish(topicSchema, newSchemaRequest(id, items))
}

// PublishData publishes one sensor reading.
func (c *Client) PublishData(id string, sensorID int, valueType model.ValueType, value model.Value) error {
	return c.publish(topicData, dataPublication{
		ID:       id,
		SensorID: sensorID,
		Value:    encodeValue(value),
	})
}

// ReadStart subscribes to the device's inbound topic. Malformed payloads
// are logged and dropped; well-formed ones are handed to onMessage from a
// paho worker goroutine.
func (c *Client) ReadStart(id string, onMessage func(msg event.Message)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.started {
		return ErrNotStarted
	}

	token := c.client.Subscribe(deviceTopic(id), qosAtLeastOnce,
		func(_ mqtt.Client, m mqtt.Message) {
			msg, err := decodeMessage(m.Payload())
			if err != nil {
				c.logger.Warn("dropping malformed broker message",
					"topic", m.Topic(), "error", err)
				return
			}
			onMessage(msg)
		})
	if !token.WaitTimeout(operationTimeout) {
		return fmt.Errorf("subscribe %s: %w", deviceTopic(id), ErrTimeout)
	}
	return token.Error()
}

// publish enqueues one QoS-1 message. Publishes are issued from the event
// loop, which must not stall on a slow broker, so delivery confirmation is
// awaited on a separate goroutine and failures are only logged. The message
// timer covers exchanges whose answer never arrives.
func (c *Client) publish(topic string, payload any) error {
	c.mu.Lock()
	client := c.client
	started := c.started
	c.mu.Unlock()

	if !started {
		return ErrNotStarted
	}

	data, err := marshalPayload(payload)
	if err != nil {
		return err
	}

	token := client.Publish(topic, qosAtLeastOnce, false, data)
	go func() {
		if !token.WaitTimeout(operationTimeout) {
			c.logger.Error("publish not confirmed", "topic", topic, "error", ErrTimeout)
			return
		}
		if err := token.Error(); err != nil {
			c.logger.Error("publish failed", "topic", topic, "error", err)
		}
	}()
	return nil
}

var _ service.BrokerLink = (*Client)(nil)
