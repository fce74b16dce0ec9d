package llm

import (
	"strings"

	"github.com/tiktoken-go/tokenizer"
)

// Price is USD per million tokens.
type Price struct {
	Prefix string
	Input  float64
	Output float64
}

// Pricing is searched in order; list more specific prefixes first.
type Pricing []Price

var DefaultPricing = Pricing{
	{Prefix: "gpt-4o-mini", Input: 0.15, Output: 0.60},
	{Prefix: "gpt-4o", Input: 2.50, Output: 10.00},
	{Prefix: "gpt-4.1-mini", Input: 0.40, Output: 1.60},
	{Prefix: "gpt-4.1", Input: 2.00, Output: 8.00},
	{Prefix: "gpt-3.5-turbo", Input: 0.50, Output: 1.50},
	{Prefix: "claude-3-5-haiku", Input: 0.80, Output: 4.00},
	{Prefix: "claude-3-haiku", Input: 0.25, Output: 1.25},
	{Prefix: "claude-3-5-sonnet", Input: 3.00, Output: 15.00},
	{Prefix: "claude-3-opus", Input: 15.00, Output: 75.00},
	{Prefix: "gemini-1.5-flash", Input: 0.075, Output: 0.30},
	{Prefix: "gemini-1.5-pro", Input: 1.25, Output: 5.00},
	{Prefix: "llama-3.1-8b", Input: 0.05, Output: 0.08},
	{Prefix: "llama-3.1-70b", Input: 0.59, Output: 0.79},
	{Prefix: "gemma2-9b", Input: 0.20, Output: 0.20},
}

// Lookup returns the first price whose prefix matches model.
func (p Pricing) Lookup(model string) (Price, bool) {
	name := strings.ToLower(model)
	for _, price := range p {
		if strings.HasPrefix(name, price.Prefix) {
			return price, true
		}
	}
	return Price{}, false
}

// Cost prices a usage record. Unknown models cost zero.
func (p Pricing) Cost(model string, u Usage) float64 {
	price, ok := p.Lookup(model)
	if !ok {
		return 0
	}
	return (float64(u.PromptTokens)*price.Input + float64(u.CompletionTokens)*price.Output) / 1e6
}

var estimator tokenizer.Codec

func init() {
	codec, err := tokenizer.Get(tokenizer.Cl100kBase)
	if err == nil {
		estimator = codec
	}
}

// CountTokens estimates the token count of text with the cl100k_base encoding,
// falling back to a four-characters-per-token heuristic.
func CountTokens(text string) int {
	if text == "" {
		return 0
	}
	if estimator != nil {
		if ids, _, err := estimator.Encode(text); err == nil {
			return len(ids)
		}
	}
	return (len(text) + 3) / 4
}

// EstimateUsage is used when a provider reports no usage.
func EstimateUsage(messages []Message, completion string) Usage {
	var prompt int
	for _, m := range messages {
		// role and separators add a few tokens per message
		prompt += CountTokens(m.Content) + 4
	}
	return Usage{PromptTokens: prompt, CompletionTokens: CountTokens(completion)}
}
