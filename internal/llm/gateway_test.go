package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dialogsynth/internal/config"
	"dialogsynth/internal/logger"
)

func testGateway() *Gateway {
	return NewGateway(DefaultRoutes, DefaultFactories(config.ProvidersConfig{}, ClientOptions{}),
		WithLogger(logger.Discard()))
}

func TestResolve(t *testing.T) {
	g := testGateway()

	tests := []struct {
		model string
		want  Provider
	}{
		{"gpt-4o-mini", OpenAI},
		{"GPT-4o", OpenAI},
		{"gemini-1.5-flash", Gemini},
		{"claude-3-5-sonnet-20240620", Anthropic},
		{"sonnet-latest", Anthropic},
		{"haiku", Anthropic},
		{"nvidia/llama-3.1-nemotron-70b-instruct", NVIDIA},
		{"accounts/fireworks/models/llama-v3p1-70b-instruct", Fireworks},
		{"llama-3.1-70b-versatile", Groq},
		{"gemma2-9b-it", Groq},
		{"mock-model", Mock},
		// first declared key wins even when a later key also matches
		{"gpt-on-llama", OpenAI},
		{"gemini-gemma", Gemini},
	}
	for _, tt := range tests {
		t.Run(tt.model, func(t *testing.T) {
			got, err := g.Resolve(tt.model)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveUnsupported(t *testing.T) {
	g := testGateway()

	_, err := g.Resolve("mistral-large")
	var unsupported *UnsupportedModelError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "mistral-large", unsupported.Model)
	assert.Contains(t, err.Error(), "not supported")
}

func TestClientRequiresCredentials(t *testing.T) {
	g := testGateway()

	_, err := g.Client("gpt-4o-mini")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing api key")
}

func TestClientWrapsWithCost(t *testing.T) {
	scripted := NewScripted("hello there")
	g := NewGateway(
		[]Route{{Key: "gpt", Provider: OpenAI}},
		map[Provider]Factory{OpenAI: func(string) (Client, error) { return scripted, nil }},
		WithLogger(logger.Discard()),
		WithPricing(Pricing{{Prefix: "gpt-test", Input: 1, Output: 2}}),
	)

	c, err := g.Client("gpt-test")
	require.NoError(t, err)

	resp, err := Text(context.Background(), c, "sys", "hi")
	require.NoError(t, err)
	assert.Equal(t, "hello there", resp.Content)
	assert.Positive(t, resp.Usage.PromptTokens)
	assert.Positive(t, resp.Usage.CompletionTokens)
	assert.Greater(t, resp.Cost, 0.0)
}

func TestClientMissingFactory(t *testing.T) {
	g := NewGateway(DefaultRoutes, map[Provider]Factory{}, WithLogger(logger.Discard()))

	_, err := g.Client("gpt-4o")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no client registered")
}
