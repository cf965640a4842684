package mqtt

import (
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const defaultQueueSize = 16

// Config holds broker connection settings.
type Config struct {
	Broker   string
	Prefix   string
	Username string
	Password string

	// QueueSize caps the inbound pending-message queue.
	QueueSize int
}

// Client talks to an actual MQTT broker.
type Client struct {
	client  paho.Client
	topics  Topics
	inbound *inboundQueue
	log     zerolog.Logger
}

// NewClient connects to the broker, subscribes to the node's command and
// request filters and announces availability. Subscriptions are re-applied
// on every reconnect.
func NewClient(cfg Config, logger zerolog.Logger) (*Client, error) {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = defaultQueueSize
	}

	c := &Client{
		topics:  Topics{Prefix: cfg.Prefix},
		inbound: newInboundQueue(cfg.QueueSize),
		log:     logger,
	}

	opts := paho.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID("ac-node-" + uuid.NewString()[:8]).
		SetUsername(cfg.Username).
		SetPassword(cfg.Password).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second).
		SetWill(c.topics.Online(), "offline", 0, true).
		SetOnConnectHandler(c.onConnect).
		SetConnectionLostHandler(func(_ paho.Client, err error) {
			c.log.Warn().Err(err).Msg("broker connection lost")
		})

	c.client = paho.NewClient(opts)
	token := c.client.Connect()
	if !token.WaitTimeout(10 * time.Second) {
		return nil, fmt.Errorf("connection timeout")
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("connect to broker: %w", err)
	}

	return c, nil
}

func (c *Client) onConnect(client paho.Client) {
	c.log.Info().Msg("mqtt connected")
	for _, filter := range []string{c.topics.CommandFilter(), c.topics.RequestFilter()} {
		if token := client.Subscribe(filter, 0, c.handleInbound); token.Wait() && token.Error() != nil {
			c.log.Error().Err(token.Error()).Str("filter", filter).Msg("subscribe failed")
		}
	}
	client.Publish(c.topics.Online(), 0, true, "online")
}

func (c *Client) handleInbound(_ paho.Client, msg paho.Message) {
	if c.inbound.push(Message{Topic: msg.Topic(), Payload: string(msg.Payload())}) {
		c.log.Warn().Msg("inbound queue full, dropped oldest message")
	}
}

// Poll returns the oldest pending inbound message without blocking.
func (c *Client) Poll() (Message, bool) {
	return c.inbound.pop()
}

// PublishOccupancy sends a signed occupancy delta notice.
func (c *Client) PublishOccupancy(delta int) error {
	return c.publish(c.topics.OccupancyNotice(), 0, false, FormatOccupancy(delta))
}

// PublishTemperature sends a room temperature notice.
func (c *Client) PublishTemperature(celsius float64) error {
	return c.publish(c.topics.TemperatureNotice(), 0, false, FormatTemperature(celsius))
}

// PublishLog sends a free-text log notice.
func (c *Client) PublishLog(message string) error {
	return c.publish(c.topics.LogNotice(), 0, false, message)
}

// PublishSystem sends a system lifecycle event.
func (c *Client) PublishSystem(event SystemEvent) error {
	payload, err := FormatSystemPayload(event)
	if err != nil {
		return fmt.Errorf("format system payload: %w", err)
	}
	// QoS 1 (at-least-once) for lifecycle events - we want to ensure delivery
	return c.publish(c.topics.SystemNotice(), 1, event.Retained, payload)
}

func (c *Client) publish(topic string, qos byte, retained bool, payload interface{}) error {
	token := c.client.Publish(topic, qos, retained, payload)
	if !token.WaitTimeout(5 * time.Second) {
		return fmt.Errorf("publish timeout on %s", topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	return nil
}

// IsConnected reports whether the broker connection is up.
func (c *Client) IsConnected() bool {
	return c.client.IsConnected()
}

// Close announces offline and disconnects from the broker.
func (c *Client) Close() error {
	c.client.Publish(c.topics.Online(), 0, true, "offline").WaitTimeout(time.Second)
	c.client.Disconnect(1000) // 1 second timeout
	return nil
}
