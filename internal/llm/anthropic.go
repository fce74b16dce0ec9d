package llm

import (
	"context"
	"strings"
)

const (
	anthropicBaseURL = "https://api.anthropic.com"
	anthropicVersion = "2023-06-01"
	// anthropicDefaultMaxTokens is used when no max is configured; the API requires one.
	anthropicDefaultMaxTokens = 4096
)

// AnthropicClient calls the messages API.
type AnthropicClient struct {
	model     string
	apiKey    string
	baseURL   string
	defaults  CallOptions
	transport transport
}

func NewAnthropic(model, apiKey, baseURL string, opts ClientOptions) *AnthropicClient {
	if baseURL == "" {
		baseURL = anthropicBaseURL
	}
	maxTokens := opts.MaxTokens
	if maxTokens == 0 {
		maxTokens = anthropicDefaultMaxTokens
	}
	return &AnthropicClient{
		model:     model,
		apiKey:    apiKey,
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		defaults:  CallOptions{MaxTokens: maxTokens, Temperature: floatPtr(opts.Temperature)},
		transport: newTransport(Anthropic, opts),
	}
}

type anthropicRequest struct {
	Model       string    `json:"model"`
	System      string    `json:"system,omitempty"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature *float64  `json:"temperature,omitempty"`
}

type anthropicResponse struct {
	Model   string `json:"model"`
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Usage struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

func (c *AnthropicClient) Chat(ctx context.Context, messages []Message, opts ...CallOption) (*Response, error) {
	o := ApplyCallOptions(c.defaults, opts)
	system, rest := splitSystem(messages)
	req := anthropicRequest{
		Model:       c.model,
		System:      system,
		Messages:    rest,
		MaxTokens:   o.MaxTokens,
		Temperature: o.Temperature,
	}

	var out anthropicResponse
	headers := map[string]string{
		"x-api-key":         c.apiKey,
		"anthropic-version": anthropicVersion,
	}
	if err := c.transport.postJSON(ctx, c.baseURL+"/v1/messages", headers, req, &out); err != nil {
		return nil, err
	}

	var sb strings.Builder
	for _, block := range out.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	model := out.Model
	if model == "" {
		model = c.model
	}
	return &Response{
		Content: sb.String(),
		Model:   model,
		Usage: Usage{
			PromptTokens:     out.Usage.InputTokens,
			CompletionTokens: out.Usage.OutputTokens,
		},
	}, nil
}
