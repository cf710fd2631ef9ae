package service

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/dsp4life2020-woodz/trippintv/internal/client"
	"github.com/dsp4life2020-woodz/trippintv/internal/dto"
	"github.com/sirupsen/logrus"
)

const subscriberBuffer = 100

// TripSubscriber receives trip events until it is unsubscribed.
type TripSubscriber struct {
	ID     string
	Events <-chan dto.TripEvent
}

// TripBroker handles the pub/sub of trip events for live clients.
type TripBroker interface {
	Subscribe(id string) *TripSubscriber
	Unsubscribe(id string)
	Publish(ctx context.Context, event dto.TripEvent)
	Close() error
}

func newTripBroker(rabbit client.RabbitClient) TripBroker {
	if rabbit == nil {
		return newInMemoryTripBroker()
	}
	return &rabbitTripBroker{
		rabbit:      rabbit,
		subscribers: make(map[string]*TripSubscriber),
	}
}

type rabbitTripBroker struct {
	rabbit      client.RabbitClient
	mu          sync.Mutex
	subscribers map[string]*TripSubscriber
}

func (b *rabbitTripBroker) Subscribe(id string) *TripSubscriber {
	b.mu.Lock()
	defer b.mu.Unlock()

	if subscriber, exists := b.subscribers[id]; exists {
		return subscriber
	}

	events := make(chan dto.TripEvent, subscriberBuffer)
	subscriber := &TripSubscriber{ID: id, Events: events}

	messages, err := b.rabbit.SubscribeToMessages(id)
	if err != nil {
		logrus.Errorf("Failed to subscribe %s to trip events: %v", id, err)
		close(events)
		return subscriber
	}
	b.subscribers[id] = subscriber

	go func() {
		defer close(events)
		for message := range messages {
			var event dto.TripEvent
			if err := json.Unmarshal(message, &event); err != nil {
				logrus.Errorf("Error unmarshaling trip event for %s: %v", id, err)
				continue
			}
			select {
			case events <- event:
			default:
			}
		}
	}()

	return subscriber
}

func (b *rabbitTripBroker) Unsubscribe(id string) {
	b.mu.Lock()
	delete(b.subscribers, id)
	b.mu.Unlock()

	if err := b.rabbit.UnsubscribeFromMessages(id); err != nil {
		logrus.Errorf("Failed to unsubscribe %s: %v", id, err)
	}
}

func (b *rabbitTripBroker) Publish(ctx context.Context, event dto.TripEvent) {
	body, err := json.Marshal(event)
	if err != nil {
		logrus.Errorf("Error marshaling trip event: %v", err)
		return
	}
	if err := b.rabbit.PublishMessage(ctx, body); err != nil {
		logrus.Errorf("Error publishing trip event: %v", err)
	}
}

func (b *rabbitTripBroker) Close() error {
	return b.rabbit.Close()
}

// inMemoryTripBroker only reaches subscribers of this process.
type inMemoryTripBroker struct {
	mu          sync.RWMutex
	subscribers map[string]chan dto.TripEvent
}

func newInMemoryTripBroker() TripBroker {
	logrus.Warn("Using in-memory trip broker (RabbitMQ not available)")
	return &inMemoryTripBroker{
		subscribers: make(map[string]chan dto.TripEvent),
	}
}

func (b *inMemoryTripBroker) Subscribe(id string) *TripSubscriber {
	b.mu.Lock()
	defer b.mu.Unlock()

	events, exists := b.subscribers[id]
	if !exists {
		events = make(chan dto.TripEvent, subscriberBuffer)
		b.subscribers[id] = events
	}
	return &TripSubscriber{ID: id, Events: events}
}

func (b *inMemoryTripBroker) Unsubscribe(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if events, exists := b.subscribers[id]; exists {
		delete(b.subscribers, id)
		close(events)
	}
}

func (b *inMemoryTripBroker) Publish(_ context.Context, event dto.TripEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, events := range b.subscribers {
		select {
		case events <- event:
		default:
		}
	}
}

func (b *inMemoryTripBroker) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for id, events := range b.subscribers {
		delete(b.subscribers, id)
		close(events)
	}
	return nil
}
