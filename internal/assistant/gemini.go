package assistant

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"google.golang.org/genai"

	"github.com/example/everest-shop/internal/domain/chat"
)

// Gemini calls the Gemini API. The client is built on first use so a
// missing key fails the call rather than startup.
type Gemini struct {
	cfg Config

	once   sync.Once
	client *genai.Client
	err    error
}

func NewGemini(cfg Config) *Gemini {
	if cfg.Model == "" {
		cfg.Model = DefaultGeminiModel
	}
	return &Gemini{cfg: cfg}
}

func (g *Gemini) connect(ctx context.Context) (*genai.Client, error) {
	g.once.Do(func() {
		if g.cfg.APIKey == "" {
			g.err = ErrMissingAPIKey
			return
		}
		cc := &genai.ClientConfig{
			APIKey:  g.cfg.APIKey,
			Backend: genai.BackendGeminiAPI,
		}
		if g.cfg.BaseURL != "" {
			cc.HTTPOptions = genai.HTTPOptions{BaseURL: g.cfg.BaseURL}
		}
		g.client, g.err = genai.NewClient(context.WithoutCancel(ctx), cc)
		if g.err != nil {
			g.err = errors.Wrap(g.err, "create gemini client")
		}
	})
	return g.client, g.err
}

func (g *Gemini) Complete(ctx context.Context, req chat.Request) (chat.Response, error) {
	client, err := g.connect(ctx)
	if err != nil {
		return chat.Response{}, err
	}

	contents := make([]*genai.Content, 0, len(req.Turns))
	for _, turn := range req.Turns {
		var role genai.Role = genai.RoleUser
		if turn.Role == chat.RoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(turn.Text, role))
	}

	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(req.Temperature),
	}
	if req.SystemInstruction != "" {
		config.SystemInstruction = genai.NewContentFromText(req.SystemInstruction, genai.RoleUser)
	}

	resp, err := client.Models.GenerateContent(ctx, g.cfg.Model, contents, config)
	if err != nil {
		return chat.Response{}, errors.Wrap(err, "gemini generate content")
	}
	return chat.Response{Text: resp.Text()}, nil
}
