package chat

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/example/everest-shop/internal/i18n"
)

const (
	DefaultTemperature float32 = 0.7
	DefaultTimeout             = 30 * time.Second
)

// EventFunc receives chat events after the controller lock is released.
type EventFunc func(ctx context.Context, eventType string, data any)

type Options struct {
	// Timeout bounds one completion call. Zero means DefaultTimeout; a
	// negative value disables the bound.
	Timeout     time.Duration
	Temperature float32
	OnEvent     EventFunc
	Logger      *logrus.Entry
}

// Snapshot is a point-in-time copy of the widget state.
type Snapshot struct {
	Language i18n.Language `json:"language"`
	State    State         `json:"state"`
	Turns    []Turn        `json:"turns"`
}

// Controller owns one chat transcript and allows a single send at a time.
type Controller struct {
	completer   Completer
	instruction InstructionFunc
	timeout     time.Duration
	temperature float32
	onEvent     EventFunc
	logger      *logrus.Entry

	mu    sync.Mutex
	lang  i18n.Language
	state State
	turns []Turn
}

func NewController(completer Completer, instruction InstructionFunc, lang i18n.Language, opts Options) *Controller {
	if !lang.Valid() {
		lang = i18n.Default
	}
	c := &Controller{
		completer:   completer,
		instruction: instruction,
		timeout:     opts.Timeout,
		temperature: opts.Temperature,
		onEvent:     opts.OnEvent,
		logger:      opts.Logger,
		lang:        lang,
		state:       StateIdle,
	}
	if c.timeout == 0 {
		c.timeout = DefaultTimeout
	}
	if c.temperature == 0 {
		c.temperature = DefaultTemperature
	}
	if c.logger == nil {
		c.logger = logrus.WithField("component", "chat")
	}
	c.turns = []Turn{greeting(lang)}
	return c
}

func greeting(lang i18n.Language) Turn {
	return Turn{Role: RoleAssistant, Text: i18n.For(lang).AIGreeting}
}

// SetActiveLanguage switches the language. A transcript that holds at most
// the greeting is replaced by a fresh greeting in lang.
func (c *Controller) SetActiveLanguage(lang i18n.Language) {
	if !lang.Valid() {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setLanguageLocked(lang)
}

// FollowGlobalLanguage applies a global language change only while the
// conversation has not started.
func (c *Controller) FollowGlobalLanguage(lang i18n.Language) bool {
	if !lang.Valid() {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.turns) > 1 {
		return false
	}
	c.setLanguageLocked(lang)
	return true
}

func (c *Controller) setLanguageLocked(lang i18n.Language) {
	c.lang = lang
	if len(c.turns) <= 1 {
		c.turns = []Turn{greeting(lang)}
	}
}

func (c *Controller) Language() i18n.Language {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lang
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	turns := make([]Turn, len(c.turns))
	copy(turns, c.turns)
	return Snapshot{Language: c.lang, State: c.state, Turns: turns}
}

// Send appends the user turn, calls the completion service once and appends
// exactly one assistant turn, which it returns. Blank input and overlapping
// sends are rejected without touching the transcript.
func (c *Controller) Send(ctx context.Context, text string) (Turn, error) {
	if strings.TrimSpace(text) == "" {
		return Turn{}, ErrEmptyMessage
	}

	c.mu.Lock()
	if c.state == StateSending {
		c.mu.Unlock()
		return Turn{}, ErrSendInFlight
	}
	c.turns = append(c.turns, Turn{Role: RoleUser, Text: text})
	c.state = StateSending
	lang := c.lang
	req := Request{
		Turns:             append([]Turn(nil), c.turns...),
		SystemInstruction: c.instruction(lang),
		Temperature:       c.temperature,
	}
	c.mu.Unlock()

	started := time.Now()
	c.emit(ctx, EventMessageSent, MessageSent{
		Language: string(lang),
		Length:   len([]rune(text)),
		Turns:    len(req.Turns),
		SentAt:   started,
	})

	callCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	resp, err := c.completer.Complete(callCtx, req)

	bundle := i18n.For(lang)
	var reply Turn
	switch {
	case err != nil:
		c.logger.WithError(err).WithField("language", lang).Warn("completion failed, using fallback reply")
		reply = Turn{Role: RoleAssistant, Text: bundle.AIServiceError}
		c.emit(ctx, EventFallbackUsed, FallbackUsed{Language: string(lang), Reason: "error", Error: err.Error(), UsedAt: time.Now()})
	case resp.Text == "":
		reply = Turn{Role: RoleAssistant, Text: bundle.AIEmptyReply}
		c.emit(ctx, EventFallbackUsed, FallbackUsed{Language: string(lang), Reason: "empty", UsedAt: time.Now()})
	default:
		reply = Turn{Role: RoleAssistant, Text: resp.Text}
		c.emit(ctx, EventReplyReceived, ReplyReceived{
			Language:   string(lang),
			Length:     len([]rune(resp.Text)),
			Latency:    time.Since(started),
			ReceivedAt: time.Now(),
		})
	}

	c.mu.Lock()
	c.turns = append(c.turns, reply)
	c.state = StateIdle
	c.mu.Unlock()

	return reply, nil
}

func (c *Controller) emit(ctx context.Context, eventType string, data any) {
	if c.onEvent != nil {
		c.onEvent(ctx, eventType, data)
	}
}
