// Package activity records what visitors do in the storefront. Recording is
// best effort: failures are logged and never reach the caller.
package activity

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/example/everest-shop/internal/infrastructure/store"
)

// Aggregate types used for storefront events.
const (
	AggregateCart    = "Cart"
	AggregateFilters = "Filters"
	AggregateChat    = "Chat"
	AggregateSession = "Session"
)

type Recorder struct {
	store  store.EventStoreInterface
	logger *logrus.Entry
}

func NewRecorder(es store.EventStoreInterface, logger *logrus.Entry) *Recorder {
	if logger == nil {
		logger = logrus.WithField("component", "activity")
	}
	return &Recorder{store: es, logger: logger}
}

// Record appends one event for sessionID. A nil Recorder discards events.
func (r *Recorder) Record(ctx context.Context, sessionID, aggregateType, eventType string, data any) {
	if r == nil || r.store == nil {
		return
	}
	// the request may already be finished when a chat reply lands
	ctx = context.WithoutCancel(ctx)
	if _, err := r.store.Append(ctx, sessionID, aggregateType, eventType, data); err != nil {
		r.logger.WithError(err).WithFields(logrus.Fields{
			"session_id": sessionID,
			"event_type": eventType,
		}).Warn("failed to record activity")
	}
}

// Session returns a recorder bound to one session.
func (r *Recorder) Session(sessionID string) SessionRecorder {
	return SessionRecorder{recorder: r, sessionID: sessionID}
}

type SessionRecorder struct {
	recorder  *Recorder
	sessionID string
}

func (s SessionRecorder) Record(ctx context.Context, aggregateType, eventType string, data any) {
	s.recorder.Record(ctx, s.sessionID, aggregateType, eventType, data)
}
