package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPricingLookupPrefersFirstMatch(t *testing.T) {
	p, ok := DefaultPricing.Lookup("gpt-4o-mini-2024-07-18")
	require.True(t, ok)
	assert.Equal(t, "gpt-4o-mini", p.Prefix)

	_, ok = DefaultPricing.Lookup("unknown-model")
	assert.False(t, ok)
}

func TestPricingCost(t *testing.T) {
	p := Pricing{{Prefix: "m", Input: 1, Output: 2}}
	cost := p.Cost("m-1", Usage{PromptTokens: 1_000_000, CompletionTokens: 500_000})
	assert.InDelta(t, 2.0, cost, 1e-9)
	assert.Zero(t, p.Cost("other", Usage{PromptTokens: 10}))
}

func TestCountTokens(t *testing.T) {
	assert.Zero(t, CountTokens(""))
	assert.Positive(t, CountTokens("Guten Tag, wie kann ich helfen?"))
}

func TestMockClient(t *testing.T) {
	c := NewMock("mock", nil)

	doc, _, err := InvokeJSON(context.Background(), c, "", "generate")
	require.NoError(t, err)
	assert.Contains(t, doc, "conversation")
	assert.Contains(t, doc, "callback_note")

	resp, err := c.Chat(context.Background(), []Message{{Role: RoleUser, Content: "hi"}})
	require.NoError(t, err)
	assert.NotContains(t, resp.Content, "TERMINATE")

	long := make([]Message, 4)
	for i := range long {
		long[i] = Message{Role: RoleUser, Content: "x"}
	}
	resp, err = c.Chat(context.Background(), long)
	require.NoError(t, err)
	assert.Contains(t, resp.Content, "TERMINATE")
}
