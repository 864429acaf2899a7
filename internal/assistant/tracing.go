package assistant

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/example/everest-shop/internal/domain/chat"
)

const TracerName = "github.com/example/everest-shop/internal/assistant"

const (
	AttrProvider    = "assistant.provider"
	AttrModel       = "assistant.model"
	AttrTurns       = "assistant.turns"
	AttrReplyLength = "assistant.reply_length"
)

type tracedCompleter struct {
	next     chat.Completer
	tracer   trace.Tracer
	provider string
	model    string
}

// Traced wraps next so every call runs inside an "assistant.complete" span
// from the global tracer provider.
func Traced(next chat.Completer, provider, model string) chat.Completer {
	return TracedWith(otel.GetTracerProvider(), next, provider, model)
}

func TracedWith(tp trace.TracerProvider, next chat.Completer, provider, model string) chat.Completer {
	return &tracedCompleter{
		next:     next,
		tracer:   tp.Tracer(TracerName),
		provider: provider,
		model:    model,
	}
}

func (t *tracedCompleter) Complete(ctx context.Context, req chat.Request) (chat.Response, error) {
	ctx, span := t.tracer.Start(ctx, "assistant.complete", trace.WithAttributes(
		attribute.String(AttrProvider, t.provider),
		attribute.String(AttrModel, t.model),
		attribute.Int(AttrTurns, len(req.Turns)),
	))
	defer span.End()

	resp, err := t.next.Complete(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return resp, err
	}
	span.SetAttributes(attribute.Int(AttrReplyLength, len(resp.Text)))
	return resp, nil
}
