package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/example/everest-shop/internal/activity"
	"github.com/example/everest-shop/internal/domain/cart"
	"github.com/example/everest-shop/internal/domain/catalog"
	"github.com/example/everest-shop/internal/domain/chat"
	"github.com/example/everest-shop/internal/i18n"
)

var ErrUnknownPanel = errors.New("unknown panel")

type Panel string

const (
	PanelCart    Panel = "cart"
	PanelFilters Panel = "filters"
	PanelChat    Panel = "chat"
)

var Panels = []Panel{PanelCart, PanelFilters, PanelChat}

func ParsePanel(s string) (Panel, error) {
	for _, p := range Panels {
		if string(p) == s {
			return p, nil
		}
	}
	return "", ErrUnknownPanel
}

// State is one visitor's view state. Every mutation goes through a method;
// each method holds the state lock for its whole duration. The chat
// controller has its own lock so a slow reply never blocks the rest.
type State struct {
	id      string
	engine  *catalog.Engine
	chat    *chat.Controller
	tracker activity.SessionRecorder

	mu       sync.Mutex
	cart     *cart.Cart
	criteria catalog.Criteria
	lang     i18n.Language
	panels   map[Panel]bool
	lastSeen time.Time
}

// View is the whole view state as the front-end renders it.
type View struct {
	SessionID string           `json:"session_id"`
	Language  i18n.Language    `json:"language"`
	Criteria  catalog.Criteria `json:"criteria"`
	Results   int              `json:"results"`
	Cart      cart.View        `json:"cart"`
	Panels    map[Panel]bool   `json:"panels"`
	Chat      chat.Snapshot    `json:"chat"`
}

func (s *State) ID() string {
	return s.id
}

func (s *State) Chat() *chat.Controller {
	return s.chat
}

func (s *State) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *State) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen)
}

// ============================================
// Cart
// ============================================

func (s *State) AddToCart(ctx context.Context, productID string) (cart.Line, error) {
	p, err := s.engine.Product(productID)
	if err != nil {
		return cart.Line{}, err
	}

	s.mu.Lock()
	line, err := s.cart.Add(p)
	s.mu.Unlock()
	if err != nil {
		return cart.Line{}, err
	}

	s.tracker.Record(ctx, activity.AggregateCart, cart.EventItemAdded, cart.ItemAddedToCart{
		SessionID: s.id,
		LineID:    line.LineID,
		ProductID: p.ID,
		Price:     p.Price,
		AddedAt:   time.Now(),
	})
	return line, nil
}

// RemoveFromCart drops one occurrence of productID.
func (s *State) RemoveFromCart(ctx context.Context, productID string) (cart.Line, error) {
	s.mu.Lock()
	line, err := s.cart.Remove(productID)
	s.mu.Unlock()
	if err != nil {
		return cart.Line{}, err
	}

	s.tracker.Record(ctx, activity.AggregateCart, cart.EventItemRemoved, cart.ItemRemovedFromCart{
		SessionID: s.id,
		LineID:    line.LineID,
		ProductID: productID,
		RemovedAt: time.Now(),
	})
	return line, nil
}

func (s *State) ClearCart(ctx context.Context) int {
	s.mu.Lock()
	n := s.cart.Clear()
	s.mu.Unlock()

	if n > 0 {
		s.tracker.Record(ctx, activity.AggregateCart, cart.EventCartCleared, cart.CartCleared{
			SessionID: s.id,
			Lines:     n,
			ClearedAt: time.Now(),
		})
	}
	return n
}

func (s *State) Cart() cart.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.View()
}

// ============================================
// Filters
// ============================================

func (s *State) Criteria() catalog.Criteria {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.criteria
}

// SetCriteria replaces every facet at once.
func (s *State) SetCriteria(ctx context.Context, c catalog.Criteria) error {
	c = c.Normalized()
	if err := c.Validate(); err != nil {
		return err
	}
	for _, b := range c.Brands {
		if !s.knownBrand(b) {
			return catalog.ErrUnknownBrand
		}
	}
	return s.updateCriteria(ctx, func(cur *catalog.Criteria) error {
		*cur = c
		return nil
	})
}

// SetSearch stores the query exactly as typed; surrounding spaces are part
// of the substring match.
func (s *State) SetSearch(ctx context.Context, search string) error {
	return s.updateCriteria(ctx, func(cur *catalog.Criteria) error {
		cur.Search = search
		return nil
	})
}

func (s *State) SetCategory(ctx context.Context, category string) error {
	cat, err := catalog.ParseCategory(category)
	if err != nil {
		return err
	}
	return s.updateCriteria(ctx, func(cur *catalog.Criteria) error {
		cur.Category = cat
		return nil
	})
}

// ToggleBrand adds brand to the brand facet or removes it, and reports
// whether it is selected afterwards.
func (s *State) ToggleBrand(ctx context.Context, brand string) (bool, error) {
	if !s.knownBrand(brand) {
		return false, catalog.ErrUnknownBrand
	}
	var selected bool
	err := s.updateCriteria(ctx, func(cur *catalog.Criteria) error {
		if cur.HasBrand(brand) {
			kept := make([]string, 0, len(cur.Brands))
			for _, b := range cur.Brands {
				if b != brand {
					kept = append(kept, b)
				}
			}
			cur.Brands = kept
			selected = false
		} else {
			cur.Brands = append(append([]string(nil), cur.Brands...), brand)
			selected = true
		}
		return nil
	})
	return selected, err
}

// ClearFilters resets every facet, search included, in one step.
func (s *State) ClearFilters(ctx context.Context) {
	s.mu.Lock()
	s.criteria = catalog.DefaultCriteria()
	s.mu.Unlock()

	s.tracker.Record(ctx, activity.AggregateFilters, catalog.EventFiltersCleared, catalog.FiltersCleared{ClearedAt: time.Now()})
}

func (s *State) updateCriteria(ctx context.Context, mutate func(*catalog.Criteria) error) error {
	s.mu.Lock()
	next := s.criteria
	if err := mutate(&next); err != nil {
		s.mu.Unlock()
		return err
	}
	next = next.Normalized()
	s.criteria = next
	s.mu.Unlock()

	s.tracker.Record(ctx, activity.AggregateFilters, catalog.EventFiltersChanged, catalog.FiltersChanged{
		Criteria:  next,
		Results:   len(s.engine.Filter(next)),
		ChangedAt: time.Now(),
	})
	return nil
}

func (s *State) knownBrand(brand string) bool {
	for _, b := range s.engine.Brands() {
		if b == brand {
			return true
		}
	}
	return false
}

// Products returns the catalog filtered by the current criteria.
func (s *State) Products() []catalog.Product {
	return s.engine.Filter(s.Criteria())
}

// ============================================
// Language and panels
// ============================================

func (s *State) Language() i18n.Language {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lang
}

// SetLanguage changes the global language. The chat widget follows it only
// while its conversation has not started.
func (s *State) SetLanguage(ctx context.Context, lang i18n.Language) error {
	if !lang.Valid() {
		return i18n.ErrUnknownLanguage
	}

	s.mu.Lock()
	from := s.lang
	s.lang = lang
	chatReset := s.chat.FollowGlobalLanguage(lang)
	s.mu.Unlock()

	if from != lang {
		s.tracker.Record(ctx, activity.AggregateSession, EventLanguageChanged, LanguageChanged{
			From:      string(from),
			To:        string(lang),
			ChatReset: chatReset,
			ChangedAt: time.Now(),
		})
	}
	return nil
}

func (s *State) SetPanel(ctx context.Context, panel Panel, open bool) error {
	if _, err := ParsePanel(string(panel)); err != nil {
		return err
	}

	s.mu.Lock()
	changed := s.panels[panel] != open
	s.panels[panel] = open
	s.mu.Unlock()

	if changed {
		s.tracker.Record(ctx, activity.AggregateSession, EventPanelToggled, PanelToggled{
			Panel:     string(panel),
			Open:      open,
			ToggledAt: time.Now(),
		})
	}
	return nil
}

func (s *State) View() View {
	s.mu.Lock()
	criteria := s.criteria
	v := View{
		SessionID: s.id,
		Language:  s.lang,
		Criteria:  criteria,
		Cart:      s.cart.View(),
		Panels:    make(map[Panel]bool, len(s.panels)),
	}
	for p, open := range s.panels {
		v.Panels[p] = open
	}
	s.mu.Unlock()

	v.Results = len(s.engine.Filter(criteria))
	v.Chat = s.chat.Snapshot()
	return v
}
