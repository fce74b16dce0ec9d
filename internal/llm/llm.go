// Package llm is the model gateway: it resolves logical model names to provider
// clients and exposes one capability, "send role-tagged messages, receive text".
package llm

import "context"

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one role-tagged chat message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Usage is the token accounting reported by a provider.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
}

// Response is the text a model returned plus its accounting.
type Response struct {
	Content string
	Model   string
	Usage   Usage
	// Cost is in USD. Filled by the gateway from Usage and the price table.
	Cost float64
}

// Client sends messages to one model and returns its reply.
type Client interface {
	Chat(ctx context.Context, messages []Message, opts ...CallOption) (*Response, error)
}

// ClientFunc adapts a function to Client.
type ClientFunc func(ctx context.Context, messages []Message, opts ...CallOption) (*Response, error)

func (f ClientFunc) Chat(ctx context.Context, messages []Message, opts ...CallOption) (*Response, error) {
	return f(ctx, messages, opts...)
}

// CallOptions are per-request knobs.
type CallOptions struct {
	JSONMode    bool
	Temperature *float64
	MaxTokens   int
}

type CallOption func(*CallOptions)

// WithJSONMode asks the provider for a JSON object response where supported.
func WithJSONMode() CallOption {
	return func(o *CallOptions) { o.JSONMode = true }
}

func WithTemperature(t float64) CallOption {
	return func(o *CallOptions) { o.Temperature = &t }
}

func WithMaxTokens(n int) CallOption {
	return func(o *CallOptions) { o.MaxTokens = n }
}

// ApplyCallOptions folds opts over the client defaults.
func ApplyCallOptions(defaults CallOptions, opts []CallOption) CallOptions {
	o := defaults
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Text is a convenience for a single system + user exchange.
func Text(ctx context.Context, c Client, system, user string, opts ...CallOption) (*Response, error) {
	msgs := make([]Message, 0, 2)
	if system != "" {
		msgs = append(msgs, Message{Role: RoleSystem, Content: system})
	}
	msgs = append(msgs, Message{Role: RoleUser, Content: user})
	return c.Chat(ctx, msgs, opts...)
}

// splitSystem separates system messages from the conversation for providers
// that take the system prompt out of band.
func splitSystem(messages []Message) (string, []Message) {
	var system string
	rest := make([]Message, 0, len(messages))
	for _, m := range messages {
		if m.Role == RoleSystem {
			if system != "" {
				system += "\n\n"
			}
			system += m.Content
			continue
		}
		rest = append(rest, m)
	}
	return system, rest
}
