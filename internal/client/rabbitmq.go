package client

import (
	"context"
	"sync"
	"time"

	"github.com/dsp4life2020-woodz/trippintv/internal/dto"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

const (
	tripsExchange       = "trips"
	reconnectDelay      = 5 * time.Second
	publishTimeout      = 5 * time.Second
	subscriberQueueSize = 100
)

// RabbitClient fans raw messages out to every subscriber through a fanout exchange.
type RabbitClient interface {
	PublishMessage(ctx context.Context, message []byte) error
	SubscribeToMessages(id string) (<-chan []byte, error)
	UnsubscribeFromMessages(id string) error
	Close() error
}

type rabbitClient struct {
	url          string
	exchangeName string

	mu          sync.RWMutex
	conn        *amqp.Connection
	channel     *amqp.Channel
	subscribers map[string]chan []byte
	closed      bool
}

func NewRabbitMQClient(config dto.Config) (RabbitClient, error) {
	c := &rabbitClient{
		url:          config.RabbitMQURL,
		exchangeName: tripsExchange,
		subscribers:  make(map[string]chan []byte),
	}

	conn, ch, err := c.dial()
	if err != nil {
		return nil, err
	}
	c.conn = conn
	c.channel = ch

	go c.monitorConnection(conn)

	return c, nil
}

func (c *rabbitClient) dial() (*amqp.Connection, *amqp.Channel, error) {
	conn, err := amqp.Dial(c.url)
	if err != nil {
		return nil, nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, nil, err
	}

	err = ch.ExchangeDeclare(
		c.exchangeName, // name
		"fanout",       // type
		true,           // durable
		false,          // auto-deleted
		false,          // internal
		false,          // no-wait
		nil,            // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, nil, err
	}

	return conn, ch, nil
}

func (c *rabbitClient) monitorConnection(conn *amqp.Connection) {
	closeErr := <-conn.NotifyClose(make(chan *amqp.Error, 1))

	c.mu.RLock()
	closed := c.closed
	c.mu.RUnlock()
	if closed {
		return
	}
	logrus.Errorf("RabbitMQ connection closed: %v", closeErr)

	for {
		time.Sleep(reconnectDelay)

		logrus.Info("Attempting to reconnect to RabbitMQ...")
		newConn, ch, err := c.dial()
		if err != nil {
			logrus.Errorf("Failed to reconnect to RabbitMQ: %v", err)
			continue
		}

		c.mu.Lock()
		c.conn = newConn
		c.channel = ch
		for id, msgChan := range c.subscribers {
			if err := c.consume(id, msgChan); err != nil {
				logrus.Errorf("Failed to resubscribe %s: %v", id, err)
			}
		}
		c.mu.Unlock()

		go c.monitorConnection(newConn)
		return
	}
}

// consume binds a private queue for id and forwards deliveries to msgChan. Callers hold mu.
func (c *rabbitClient) consume(id string, msgChan chan []byte) error {
	q, err := c.channel.QueueDeclare(
		"",    // name, generated by the broker
		false, // durable
		true,  // delete when unused
		true,  // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return err
	}

	if err := c.channel.QueueBind(q.Name, "", c.exchangeName, false, nil); err != nil {
		return err
	}

	deliveries, err := c.channel.Consume(
		q.Name, // queue
		"",     // consumer
		true,   // auto-ack
		true,   // exclusive
		false,  // no-local
		false,  // no-wait
		nil,    // args
	)
	if err != nil {
		return err
	}

	go c.forward(id, msgChan, deliveries)
	return nil
}

func (c *rabbitClient) forward(id string, msgChan chan []byte, deliveries <-chan amqp.Delivery) {
	for d := range deliveries {
		c.mu.RLock()
		if c.subscribers[id] != msgChan {
			c.mu.RUnlock()
			return
		}
		// slow subscribers drop messages instead of stalling the queue
		select {
		case msgChan <- d.Body:
		default:
		}
		c.mu.RUnlock()
	}
}

func (c *rabbitClient) PublishMessage(ctx context.Context, message []byte) error {
	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	c.mu.RLock()
	ch := c.channel
	c.mu.RUnlock()

	return ch.PublishWithContext(
		ctx,
		c.exchangeName, // exchange
		"",             // routing key
		false,          // mandatory
		false,          // immediate
		amqp.Publishing{
			ContentType: "application/json",
			Body:        message,
		})
}

func (c *rabbitClient) SubscribeToMessages(id string) (<-chan []byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if msgChan, exists := c.subscribers[id]; exists {
		return msgChan, nil
	}

	msgChan := make(chan []byte, subscriberQueueSize)
	c.subscribers[id] = msgChan
	if err := c.consume(id, msgChan); err != nil {
		delete(c.subscribers, id)
		return nil, err
	}

	return msgChan, nil
}

func (c *rabbitClient) UnsubscribeFromMessages(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if msgChan, exists := c.subscribers[id]; exists {
		delete(c.subscribers, id)
		close(msgChan)
	}

	return nil
}

func (c *rabbitClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	for id, msgChan := range c.subscribers {
		delete(c.subscribers, id)
		close(msgChan)
	}
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
