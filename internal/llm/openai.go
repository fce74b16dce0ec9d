package llm

import (
	"context"
	"fmt"
	"strings"
)

const (
	openAIBaseURL    = "https://api.openai.com/v1"
	groqBaseURL      = "https://api.groq.com/openai/v1"
	nvidiaBaseURL    = "https://integrate.api.nvidia.com/v1"
	fireworksBaseURL = "https://api.fireworks.ai/inference/v1"
	togetherBaseURL  = "https://api.together.xyz/v1"
)

// OpenAICompatible talks to any chat-completions endpoint shaped like OpenAI's.
type OpenAICompatible struct {
	provider  Provider
	model     string
	apiKey    string
	baseURL   string
	defaults  CallOptions
	transport transport
}

func NewOpenAICompatible(p Provider, model, apiKey, baseURL string, opts ClientOptions) *OpenAICompatible {
	return &OpenAICompatible{
		provider:  p,
		model:     model,
		apiKey:    apiKey,
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		defaults:  CallOptions{MaxTokens: opts.MaxTokens, Temperature: floatPtr(opts.Temperature)},
		transport: newTransport(p, opts),
	}
}

type chatCompletionRequest struct {
	Model          string          `json:"model"`
	Messages       []Message       `json:"messages"`
	Temperature    *float64        `json:"temperature,omitempty"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatCompletionResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
	} `json:"usage"`
}

func (c *OpenAICompatible) Chat(ctx context.Context, messages []Message, opts ...CallOption) (*Response, error) {
	o := ApplyCallOptions(c.defaults, opts)
	req := chatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: o.Temperature,
		MaxTokens:   o.MaxTokens,
	}
	if o.JSONMode {
		req.ResponseFormat = &responseFormat{Type: "json_object"}
	}

	var out chatCompletionResponse
	headers := map[string]string{"Authorization": "Bearer " + c.apiKey}
	if err := c.transport.postJSON(ctx, c.baseURL+"/chat/completions", headers, req, &out); err != nil {
		return nil, err
	}
	if len(out.Choices) == 0 {
		return nil, fmt.Errorf("%s returned no choices", c.provider)
	}
	model := out.Model
	if model == "" {
		model = c.model
	}
	return &Response{
		Content: out.Choices[0].Message.Content,
		Model:   model,
		Usage: Usage{
			PromptTokens:     out.Usage.PromptTokens,
			CompletionTokens: out.Usage.CompletionTokens,
		},
	}, nil
}

func floatPtr(f float64) *float64 { return &f }
