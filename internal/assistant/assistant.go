// Package assistant adapts hosted completion services to chat.Completer.
package assistant

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/example/everest-shop/internal/domain/chat"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"

	DefaultGeminiModel = "gemini-3-flash-preview"
	DefaultOpenAIModel = "gpt-4o-mini"
)

var (
	ErrMissingAPIKey   = errors.New("assistant API key is not configured")
	ErrUnknownProvider = errors.New("unknown assistant provider")
	ErrNoCandidates    = errors.New("assistant returned no choices")
)

type Config struct {
	Provider string
	APIKey   string
	Model    string
	// BaseURL overrides the service endpoint, e.g. a local llama.cpp server
	// for the openai provider.
	BaseURL string
}

// New returns the traced completer for cfg.Provider.
func New(cfg Config) (chat.Completer, error) {
	provider := strings.ToLower(strings.TrimSpace(cfg.Provider))
	if provider == "" {
		provider = ProviderGemini
	}

	switch provider {
	case ProviderGemini:
		if cfg.Model == "" {
			cfg.Model = DefaultGeminiModel
		}
		return Traced(NewGemini(cfg), provider, cfg.Model), nil
	case ProviderOpenAI:
		if cfg.Model == "" {
			cfg.Model = DefaultOpenAIModel
		}
		return Traced(NewOpenAI(cfg), provider, cfg.Model), nil
	default:
		return nil, errors.Wrapf(ErrUnknownProvider, "%q", cfg.Provider)
	}
}
