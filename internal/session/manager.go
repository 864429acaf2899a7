package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/example/everest-shop/internal/activity"
	"github.com/example/everest-shop/internal/domain/cart"
	"github.com/example/everest-shop/internal/domain/catalog"
	"github.com/example/everest-shop/internal/domain/chat"
	"github.com/example/everest-shop/internal/i18n"
)

var ErrSessionNotFound = errors.New("session not found")

type Config struct {
	Engine      *catalog.Engine
	Completer   chat.Completer
	Instruction chat.InstructionFunc
	ChatTimeout time.Duration
	IdleTTL     time.Duration
	Recorder    *activity.Recorder
	// OnExpire runs after a session is dropped by the sweeper.
	OnExpire func(sessionID string)
	Logger   *logrus.Entry
}

// Manager owns every live session. Sessions that stay idle longer than
// IdleTTL are dropped by Run.
type Manager struct {
	cfg    Config
	logger *logrus.Entry

	mu       sync.RWMutex
	sessions map[string]*State
	now      func() time.Time
}

func NewManager(cfg Config) *Manager {
	logger := cfg.Logger
	if logger == nil {
		logger = logrus.WithField("component", "session")
	}
	return &Manager{
		cfg:      cfg,
		logger:   logger,
		sessions: make(map[string]*State),
		now:      time.Now,
	}
}

// Create starts a fresh session: empty cart, default filters, all panels
// closed and a chat transcript holding only the greeting.
func (m *Manager) Create(ctx context.Context, lang i18n.Language) *State {
	if !lang.Valid() {
		lang = i18n.Default
	}
	id := uuid.New().String()
	tracker := m.cfg.Recorder.Session(id)

	s := &State{
		id:       id,
		engine:   m.cfg.Engine,
		tracker:  tracker,
		cart:     cart.New(),
		criteria: catalog.DefaultCriteria(),
		lang:     lang,
		panels:   map[Panel]bool{PanelCart: false, PanelFilters: false, PanelChat: false},
		lastSeen: m.now(),
	}
	s.chat = chat.NewController(m.cfg.Completer, m.cfg.Instruction, lang, chat.Options{
		Timeout: m.cfg.ChatTimeout,
		Logger:  m.logger.WithField("session_id", id),
		OnEvent: func(ctx context.Context, eventType string, data any) {
			tracker.Record(ctx, activity.AggregateChat, eventType, data)
		},
	})

	m.mu.Lock()
	m.sessions[id] = s
	m.mu.Unlock()

	tracker.Record(ctx, activity.AggregateSession, EventSessionStarted, SessionStarted{
		Language:  string(lang),
		StartedAt: time.Now(),
	})
	m.logger.WithFields(logrus.Fields{"session_id": id, "language": lang}).Debug("session created")
	return s
}

// Get returns a live session and marks it as used.
func (m *Manager) Get(id string) (*State, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	s.touch(m.now())
	return s, nil
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Sweep drops sessions idle for longer than the TTL and returns how many
// were dropped.
func (m *Manager) Sweep() int {
	if m.cfg.IdleTTL <= 0 {
		return 0
	}
	now := m.now()

	var expired []string
	m.mu.Lock()
	for id, s := range m.sessions {
		if s.idleSince(now) > m.cfg.IdleTTL {
			delete(m.sessions, id)
			expired = append(expired, id)
		}
	}
	m.mu.Unlock()

	for _, id := range expired {
		if m.cfg.OnExpire != nil {
			m.cfg.OnExpire(id)
		}
	}
	if len(expired) > 0 {
		m.logger.WithField("count", len(expired)).Info("expired idle sessions")
	}
	return len(expired)
}

// Run sweeps on every interval tick until ctx is cancelled.
func (m *Manager) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Sweep()
		}
	}
}
