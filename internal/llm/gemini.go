package llm

import (
	"context"
	"fmt"
	"strings"
)

const geminiBaseURL = "https://generativelanguage.googleapis.com"

// GeminiClient calls the generateContent REST endpoint.
type GeminiClient struct {
	model     string
	apiKey    string
	baseURL   string
	defaults  CallOptions
	transport transport
}

func NewGemini(model, apiKey, baseURL string, opts ClientOptions) *GeminiClient {
	if baseURL == "" {
		baseURL = geminiBaseURL
	}
	return &GeminiClient{
		model:     model,
		apiKey:    apiKey,
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		defaults:  CallOptions{MaxTokens: opts.MaxTokens, Temperature: floatPtr(opts.Temperature)},
		transport: newTransport(Gemini, opts),
	}
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	Temperature      *float64 `json:"temperature,omitempty"`
	MaxOutputTokens  int      `json:"maxOutputTokens,omitempty"`
	ResponseMimeType string   `json:"responseMimeType,omitempty"`
}

type geminiRequest struct {
	Contents          []geminiContent        `json:"contents"`
	SystemInstruction *geminiContent         `json:"systemInstruction,omitempty"`
	GenerationConfig  geminiGenerationConfig `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	UsageMetadata struct {
		PromptTokenCount     int `json:"promptTokenCount"`
		CandidatesTokenCount int `json:"candidatesTokenCount"`
	} `json:"usageMetadata"`
}

func (c *GeminiClient) Chat(ctx context.Context, messages []Message, opts ...CallOption) (*Response, error) {
	o := ApplyCallOptions(c.defaults, opts)
	system, rest := splitSystem(messages)

	req := geminiRequest{
		GenerationConfig: geminiGenerationConfig{
			Temperature:     o.Temperature,
			MaxOutputTokens: o.MaxTokens,
		},
	}
	if o.JSONMode {
		req.GenerationConfig.ResponseMimeType = "application/json"
	}
	if system != "" {
		req.SystemInstruction = &geminiContent{Parts: []geminiPart{{Text: system}}}
	}
	for _, m := range rest {
		role := "user"
		if m.Role == RoleAssistant {
			role = "model"
		}
		req.Contents = append(req.Contents, geminiContent{Role: role, Parts: []geminiPart{{Text: m.Content}}})
	}

	var out geminiResponse
	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, c.model)
	headers := map[string]string{"x-goog-api-key": c.apiKey}
	if err := c.transport.postJSON(ctx, url, headers, req, &out); err != nil {
		return nil, err
	}
	if len(out.Candidates) == 0 {
		return nil, fmt.Errorf("%s returned no candidates", Gemini)
	}

	var sb strings.Builder
	for _, part := range out.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	return &Response{
		Content: sb.String(),
		Model:   c.model,
		Usage: Usage{
			PromptTokens:     out.UsageMetadata.PromptTokenCount,
			CompletionTokens: out.UsageMetadata.CandidatesTokenCount,
		},
	}, nil
}
