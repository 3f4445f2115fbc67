package mqtt

import (
	"crypto/tls"
	"fmt"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"
)

const (
	connectTimeout = 10 * time.Second
	publishTimeout = 5 * time.Second

	// commandQueueSize bounds inbound commands waiting for the control
	// loop. The loop drains one per iteration; a full queue drops new
	// commands rather than blocking the paho callback.
	commandQueueSize = 16

	// outboxCapacity bounds telemetry buffered across a broker outage.
	outboxCapacity = 64
)

// Options configures the real broker client.
type Options struct {
	BrokerURL string // e.g. "tcp://host:1883" or "ssl://host:8883"
	ClientID  string
	Username  string
	Password  string

	// InsecureTLS skips certificate verification for ssl:// brokers.
	InsecureTLS bool
}

// Client is the paho-backed Publisher, ConnectionStatus, and CommandSource.
type Client struct {
	client paho.Client
	log    *zap.SugaredLogger

	commands chan Command

	mu     sync.Mutex
	outbox *outbox
}

// NewClient connects to the broker, subscribes to the control topic, and
// starts buffering telemetry across disconnects (paho reconnects on its own;
// the outbox is drained from the reconnect handler).
func NewClient(o Options, log *zap.SugaredLogger) (*Client, error) {
	c := &Client{
		log:      log,
		commands: make(chan Command, commandQueueSize),
		outbox:   newOutbox(outboxCapacity),
	}

	opts := paho.NewClientOptions().
		AddBroker(o.BrokerURL).
		SetClientID(o.ClientID).
		SetUsername(o.Username).
		SetPassword(o.Password).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second).
		SetOnConnectHandler(c.onConnect).
		SetConnectionLostHandler(func(_ paho.Client, err error) {
			log.Warnw("broker connection lost", "error", err)
		})

	if o.InsecureTLS {
		opts.SetTLSConfig(&tls.Config{InsecureSkipVerify: true})
	}

	c.client = paho.NewClient(opts)
	token := c.client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		return nil, fmt.Errorf("connection timeout")
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("connect to broker: %w", err)
	}

	return c, nil
}

// onConnect runs on every (re)connect: renew the control subscription and
// flush telemetry buffered during the outage.
func (c *Client) onConnect(client paho.Client) {
	token := client.Subscribe(TopicControl, 1, c.onCommand)
	if !token.WaitTimeout(publishTimeout) || token.Error() != nil {
		c.log.Errorw("subscribe to control topic failed", "topic", TopicControl, "error", token.Error())
	}

	c.mu.Lock()
	dropped := c.outbox.droppedCount()
	pending := c.outbox.drain()
	c.mu.Unlock()

	if dropped > 0 {
		c.log.Warnw("telemetry dropped during outage", "count", dropped)
	}
	for _, msg := range pending {
		token := client.Publish(msg.topic, msg.qos, msg.retained, msg.payload)
		if !token.WaitTimeout(publishTimeout) || token.Error() != nil {
			c.log.Warnw("replay publish failed", "topic", msg.topic, "error", token.Error())
		}
	}
	if len(pending) > 0 {
		c.log.Infow("replayed buffered telemetry", "count", len(pending))
	}
}

// onCommand decodes a control message and queues it for the loop. Malformed
// messages are dropped: one bad command must not affect the next.
func (c *Client) onCommand(_ paho.Client, msg paho.Message) {
	cmd, err := ParseCommand(msg.Payload())
	if err != nil {
		c.log.Debugw("ignoring malformed command", "payload", string(msg.Payload()), "error", err)
		return
	}

	select {
	case c.commands <- cmd:
	default:
		c.log.Warnw("command queue full, dropping command", "command", cmd.Name)
	}
}

// Poll returns the next pending command without blocking.
func (c *Client) Poll() (Command, bool) {
	select {
	case cmd := <-c.commands:
		return cmd, true
	default:
		return Command{}, false
	}
}

// PublishGas sends gas telemetry (QoS 0, not retained).
func (c *Client) PublishGas(s GasStatus) error {
	return c.publish(TopicGasData, 0, s)
}

// PublishClimate sends climate telemetry (QoS 0, not retained).
func (c *Client) PublishClimate(s ClimateStatus) error {
	return c.publish(TopicClimateData, 0, s)
}

// PublishAlarm sends an alarm log event. QoS 1: alarm transitions are the
// messages worth a redelivery.
func (c *Client) PublishAlarm(l AlarmLog) error {
	return c.publish(TopicAlarmLog, 1, l)
}

func (c *Client) publish(topic string, qos byte, v any) error {
	payload, err := Marshal(v)
	if err != nil {
		return fmt.Errorf("format payload: %w", err)
	}

	if !c.client.IsConnected() {
		c.mu.Lock()
		c.outbox.push(pendingMsg{topic: topic, payload: payload, qos: qos})
		n := c.outbox.len()
		c.mu.Unlock()
		return fmt.Errorf("broker disconnected, buffered (%d pending)", n)
	}

	token := c.client.Publish(topic, qos, false, payload)
	if !token.WaitTimeout(publishTimeout) {
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

// Close disconnects from the broker.
func (c *Client) Close() error {
	c.client.Disconnect(1000) // milliseconds to flush in-flight work
	return nil
}
