package store

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/example/everest-shop/internal/infrastructure/kafka"
)

// Event is one storefront activity record. Version counts events within a
// session starting at 1.
type Event struct {
	ID            string          `json:"id"`
	SessionID     string          `json:"session_id"`
	AggregateType string          `json:"aggregate_type"`
	EventType     string          `json:"event_type"`
	Data          json.RawMessage `json:"data"`
	Timestamp     time.Time       `json:"timestamp"`
	Version       int             `json:"version"`
}

// EventStore keeps a bounded in-memory history per session and forwards
// every event to Kafka when a producer is configured.
type EventStore struct {
	mu         sync.RWMutex
	events     map[string][]Event
	versions   map[string]int
	perSession int
	producer   *kafka.Producer
}

const defaultPerSession = 200

func NewEventStore(producer *kafka.Producer) *EventStore {
	return &EventStore{
		events:     make(map[string][]Event),
		versions:   make(map[string]int),
		perSession: defaultPerSession,
		producer:   producer,
	}
}

func (es *EventStore) Append(ctx context.Context, sessionID, aggregateType, eventType string, data any) (*Event, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	es.mu.Lock()
	es.versions[sessionID]++
	event := Event{
		ID:            uuid.New().String(),
		SessionID:     sessionID,
		AggregateType: aggregateType,
		EventType:     eventType,
		Data:          jsonData,
		Timestamp:     time.Now(),
		Version:       es.versions[sessionID],
	}
	history := append(es.events[sessionID], event)
	if len(history) > es.perSession {
		history = history[len(history)-es.perSession:]
	}
	es.events[sessionID] = history
	es.mu.Unlock()

	if es.producer != nil {
		if err := es.producer.Publish(ctx, sessionID, event); err != nil {
			return &event, err
		}
	}

	return &event, nil
}

// GetEvents returns the retained history of one session, oldest first.
func (es *EventStore) GetEvents(sessionID string) []Event {
	es.mu.RLock()
	defer es.mu.RUnlock()
	out := make([]Event, len(es.events[sessionID]))
	copy(out, es.events[sessionID])
	return out
}

// Forget drops the history of an expired session.
func (es *EventStore) Forget(sessionID string) {
	es.mu.Lock()
	defer es.mu.Unlock()
	delete(es.events, sessionID)
	delete(es.versions, sessionID)
}
