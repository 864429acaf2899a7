package projection

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/example/everest-shop/internal/activity"
	"github.com/example/everest-shop/internal/domain/cart"
	"github.com/example/everest-shop/internal/domain/chat"
	"github.com/example/everest-shop/internal/infrastructure/store"
	"github.com/example/everest-shop/internal/session"
)

var ErrMalformedEvent = errors.New("event is missing id or type")

// EventSink persists consumed activity events.
type EventSink interface {
	Save(ctx context.Context, event store.Event) error
}

// Stats is a running summary of the storefront funnel.
type Stats struct {
	Sessions      int            `json:"sessions"`
	CartAdds      map[string]int `json:"cart_adds"`
	CartRemovals  int            `json:"cart_removals"`
	ChatMessages  int            `json:"chat_messages"`
	ChatReplies   int            `json:"chat_replies"`
	ChatFallbacks int            `json:"chat_fallbacks"`
	UnknownEvents int            `json:"unknown_events"`
}

// Projector stores every activity event and folds it into Stats.
type Projector struct {
	sink   EventSink
	logger *logrus.Entry

	mu    sync.Mutex
	stats Stats
}

func NewProjector(sink EventSink) *Projector {
	return &Projector{
		sink:   sink,
		logger: logrus.WithField("component", "projector"),
		stats:  Stats{CartAdds: make(map[string]int)},
	}
}

func (p *Projector) HandleEvent(ctx context.Context, key, value []byte) error {
	var event store.Event
	if err := json.Unmarshal(value, &event); err != nil {
		return err
	}
	if event.ID == "" || event.EventType == "" {
		return ErrMalformedEvent
	}

	p.logger.WithFields(logrus.Fields{
		"event_type": event.EventType,
		"session_id": event.SessionID,
	}).Debug("received event")

	if p.sink != nil {
		if err := p.sink.Save(ctx, event); err != nil {
			return err
		}
	}
	return p.apply(event)
}

func (p *Projector) apply(event store.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch event.AggregateType {
	case activity.AggregateSession:
		if event.EventType == session.EventSessionStarted {
			p.stats.Sessions++
		}
	case activity.AggregateCart:
		switch event.EventType {
		case cart.EventItemAdded:
			var e cart.ItemAddedToCart
			if err := json.Unmarshal(event.Data, &e); err != nil {
				return err
			}
			p.stats.CartAdds[e.ProductID]++
		case cart.EventItemRemoved:
			p.stats.CartRemovals++
		}
	case activity.AggregateChat:
		switch event.EventType {
		case chat.EventMessageSent:
			p.stats.ChatMessages++
		case chat.EventReplyReceived:
			p.stats.ChatReplies++
		case chat.EventFallbackUsed:
			p.stats.ChatFallbacks++
		}
	case activity.AggregateFilters:
	default:
		p.stats.UnknownEvents++
	}
	return nil
}

// EventSource reads persisted activity back by event type.
type EventSource interface {
	GetEventsByType(ctx context.Context, eventType string) ([]store.Event, error)
}

// CountedEventTypes are the event types that move Stats.
var CountedEventTypes = []string{
	session.EventSessionStarted,
	cart.EventItemAdded,
	cart.EventItemRemoved,
	chat.EventMessageSent,
	chat.EventReplyReceived,
	chat.EventFallbackUsed,
}

// Warm rebuilds Stats from events persisted by earlier runs. It does not
// save anything.
func (p *Projector) Warm(ctx context.Context, source EventSource) (int, error) {
	total := 0
	for _, eventType := range CountedEventTypes {
		events, err := source.GetEventsByType(ctx, eventType)
		if err != nil {
			return total, err
		}
		for _, event := range events {
			if err := p.apply(event); err != nil {
				return total, err
			}
		}
		total += len(events)
	}
	return total, nil
}

// Stats returns a copy of the running summary.
func (p *Projector) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := p.stats
	out.CartAdds = make(map[string]int, len(p.stats.CartAdds))
	for k, v := range p.stats.CartAdds {
		out.CartAdds[k] = v
	}
	return out
}
