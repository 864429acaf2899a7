package store

import "context"

// EventStoreInterface records storefront activity keyed by visitor session.
type EventStoreInterface interface {
	Append(ctx context.Context, sessionID, aggregateType, eventType string, data any) (*Event, error)
	GetEvents(sessionID string) []Event
}
