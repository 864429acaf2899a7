package assistant

import (
	"context"

	openai "github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
	"github.com/openai/openai-go/v2/shared"
	"github.com/pkg/errors"

	"github.com/example/everest-shop/internal/domain/chat"
)

// OpenAI talks to any OpenAI-compatible chat completions endpoint.
type OpenAI struct {
	client openai.Client
	model  string
	hasKey bool
}

func NewOpenAI(cfg Config, extra ...option.RequestOption) *OpenAI {
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	opts = append(opts, extra...)
	model := cfg.Model
	if model == "" {
		model = DefaultOpenAIModel
	}
	return &OpenAI{
		client: openai.NewClient(opts...),
		model:  model,
		// local servers accept any key, so only require one for the hosted API
		hasKey: cfg.APIKey != "" || cfg.BaseURL != "",
	}
}

func (o *OpenAI) Complete(ctx context.Context, req chat.Request) (chat.Response, error) {
	if !o.hasKey {
		return chat.Response{}, ErrMissingAPIKey
	}

	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(req.Turns)+1)
	if req.SystemInstruction != "" {
		messages = append(messages, openai.SystemMessage(req.SystemInstruction))
	}
	for _, turn := range req.Turns {
		if turn.Role == chat.RoleAssistant {
			messages = append(messages, openai.AssistantMessage(turn.Text))
		} else {
			messages = append(messages, openai.UserMessage(turn.Text))
		}
	}

	completion, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages:    messages,
		Model:       shared.ChatModel(o.model),
		Temperature: openai.Float(float64(req.Temperature)),
	})
	if err != nil {
		return chat.Response{}, errors.Wrap(err, "openai chat completion")
	}
	if len(completion.Choices) == 0 {
		return chat.Response{}, ErrNoCandidates
	}
	return chat.Response{Text: completion.Choices[0].Message.Content}, nil
}
