package llm

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "dialogsynth/llm"

// instrumented wraps a provider client with a tracing span and cost accounting.
type instrumented struct {
	inner    Client
	model    string
	provider Provider
	pricing  Pricing
	tracer   trace.Tracer
}

func newInstrumented(c Client, model string, p Provider, pricing Pricing) *instrumented {
	return &instrumented{
		inner:    c,
		model:    model,
		provider: p,
		pricing:  pricing,
		tracer:   otel.Tracer(tracerName),
	}
}

func (c *instrumented) Chat(ctx context.Context, messages []Message, opts ...CallOption) (*Response, error) {
	ctx, span := c.tracer.Start(ctx, "llm.chat", trace.WithAttributes(
		attribute.String("llm.model", c.model),
		attribute.String("llm.provider", string(c.provider)),
		attribute.Int("llm.messages", len(messages)),
	))
	defer span.End()

	resp, err := c.inner.Chat(ctx, messages, opts...)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if resp.Usage.PromptTokens == 0 && resp.Usage.CompletionTokens == 0 {
		resp.Usage = EstimateUsage(messages, resp.Content)
		span.SetAttributes(attribute.Bool("llm.usage_estimated", true))
	}
	if resp.Cost == 0 {
		resp.Cost = c.pricing.Cost(c.model, resp.Usage)
	}
	span.SetAttributes(
		attribute.Int("llm.prompt_tokens", resp.Usage.PromptTokens),
		attribute.Int("llm.completion_tokens", resp.Usage.CompletionTokens),
		attribute.Float64("llm.cost_usd", resp.Cost),
	)
	return resp, nil
}
