package mocks

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/example/everest-shop/internal/infrastructure/store"
)

// MockEventStore is an EventStoreInterface for tests that records every call.
type MockEventStore struct {
	mu     sync.RWMutex
	events map[string][]store.Event

	AppendCalls []AppendCall
	AppendErr   error
}

type AppendCall struct {
	SessionID     string
	AggregateType string
	EventType     string
	Data          any
}

func NewMockEventStore() *MockEventStore {
	return &MockEventStore{
		events:      make(map[string][]store.Event),
		AppendCalls: make([]AppendCall, 0),
	}
}

func (m *MockEventStore) Append(ctx context.Context, sessionID, aggregateType, eventType string, data any) (*store.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.AppendCalls = append(m.AppendCalls, AppendCall{
		SessionID:     sessionID,
		AggregateType: aggregateType,
		EventType:     eventType,
		Data:          data,
	})

	if m.AppendErr != nil {
		return nil, m.AppendErr
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	event := store.Event{
		ID:            uuid.New().String(),
		SessionID:     sessionID,
		AggregateType: aggregateType,
		EventType:     eventType,
		Data:          jsonData,
		Timestamp:     time.Now(),
		Version:       len(m.events[sessionID]) + 1,
	}
	m.events[sessionID] = append(m.events[sessionID], event)
	return &event, nil
}

func (m *MockEventStore) GetEvents(sessionID string) []store.Event {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]store.Event(nil), m.events[sessionID]...)
}

// EventTypes lists the recorded event types in call order.
func (m *MockEventStore) EventTypes() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, 0, len(m.AppendCalls))
	for _, c := range m.AppendCalls {
		out = append(out, c.EventType)
	}
	return out
}

func (m *MockEventStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = make(map[string][]store.Event)
	m.AppendCalls = make([]AppendCall, 0)
	m.AppendErr = nil
}
