package llm

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"dialogsynth/internal/config"
	"dialogsynth/internal/logger"
)

// Provider is a supported model backend.
type Provider string

const (
	OpenAI    Provider = "openai"
	Gemini    Provider = "gemini"
	Anthropic Provider = "anthropic"
	NVIDIA    Provider = "nvidia"
	Fireworks Provider = "fireworks"
	Groq      Provider = "groq"
	Together  Provider = "together"
	Mock      Provider = "mock"
)

// Route maps a model-name substring onto a provider.
type Route struct {
	Key      string
	Provider Provider
}

// DefaultRoutes is the declared priority order. The first route whose key occurs
// in the model name wins; overlapping keys resolve by position, never by length.
var DefaultRoutes = []Route{
	{Key: "gpt", Provider: OpenAI},
	{Key: "gemini", Provider: Gemini},
	{Key: "claude", Provider: Anthropic},
	{Key: "sonnet", Provider: Anthropic},
	{Key: "haiku", Provider: Anthropic},
	{Key: "nvidia", Provider: NVIDIA},
	{Key: "fireworks", Provider: Fireworks},
	{Key: "llama", Provider: Groq},
	{Key: "gemma", Provider: Groq},
	{Key: "together", Provider: Together},
	{Key: "mock", Provider: Mock},
}

// UnsupportedModelError is returned when no route matches a model name.
type UnsupportedModelError struct {
	Model string
}

func (e *UnsupportedModelError) Error() string {
	return fmt.Sprintf("model %s not supported", e.Model)
}

// Factory builds the client for one concrete model name.
type Factory func(model string) (Client, error)

// Gateway resolves model names to instrumented provider clients.
type Gateway struct {
	routes    []Route
	factories map[Provider]Factory
	pricing   Pricing
	log       *logger.Logger
}

type GatewayOption func(*Gateway)

func WithPricing(p Pricing) GatewayOption {
	return func(g *Gateway) { g.pricing = p }
}

func WithLogger(l *logger.Logger) GatewayOption {
	return func(g *Gateway) { g.log = l }
}

// NewGateway builds a gateway over an explicit route order and provider factories.
func NewGateway(routes []Route, factories map[Provider]Factory, opts ...GatewayOption) *Gateway {
	g := &Gateway{
		routes:    routes,
		factories: factories,
		pricing:   DefaultPricing,
		log:       logger.New(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Resolve returns the provider of the first route whose key is contained in model.
func (g *Gateway) Resolve(model string) (Provider, error) {
	name := strings.ToLower(model)
	for _, r := range g.routes {
		if strings.Contains(name, r.Key) {
			return r.Provider, nil
		}
	}
	return "", &UnsupportedModelError{Model: model}
}

// Client returns the capability for a logical model name.
func (g *Gateway) Client(model string) (Client, error) {
	p, err := g.Resolve(model)
	if err != nil {
		return nil, err
	}
	factory, ok := g.factories[p]
	if !ok {
		return nil, fmt.Errorf("no client registered for provider %s", p)
	}
	c, err := factory(model)
	if err != nil {
		return nil, fmt.Errorf("create %s client: %w", p, err)
	}
	g.log.WithField("component", "gateway").
		WithField("model", model).
		WithField("provider", p).
		Info("resolved model")
	return newInstrumented(c, model, p, g.pricing), nil
}

// ClientOptions are shared by the HTTP-backed factories. Timeout bounds each
// request when HTTPClient is nil; with both unset http.DefaultClient is used.
type ClientOptions struct {
	HTTPClient  *http.Client
	Timeout     time.Duration
	MaxRetries  int
	MaxTokens   int
	Temperature float64
}

// DefaultFactories wires every provider to its HTTP client using explicit credentials.
func DefaultFactories(p config.ProvidersConfig, opts ClientOptions) map[Provider]Factory {
	compat := func(provider Provider, cfg config.ProviderConfig, baseURL string) Factory {
		return func(model string) (Client, error) {
			if cfg.APIKey == "" {
				return nil, fmt.Errorf("missing api key for %s", provider)
			}
			url := baseURL
			if cfg.BaseURL != "" {
				url = cfg.BaseURL
			}
			return NewOpenAICompatible(provider, model, cfg.APIKey, url, opts), nil
		}
	}
	return map[Provider]Factory{
		OpenAI:    compat(OpenAI, p.OpenAI, openAIBaseURL),
		NVIDIA:    compat(NVIDIA, p.NVIDIA, nvidiaBaseURL),
		Fireworks: compat(Fireworks, p.Fireworks, fireworksBaseURL),
		Groq:      compat(Groq, p.Groq, groqBaseURL),
		Together:  compat(Together, p.Together, togetherBaseURL),
		Anthropic: func(model string) (Client, error) {
			if p.Anthropic.APIKey == "" {
				return nil, fmt.Errorf("missing api key for %s", Anthropic)
			}
			return NewAnthropic(model, p.Anthropic.APIKey, p.Anthropic.BaseURL, opts), nil
		},
		Gemini: func(model string) (Client, error) {
			if p.Gemini.APIKey == "" {
				return nil, fmt.Errorf("missing api key for %s", Gemini)
			}
			return NewGemini(model, p.Gemini.APIKey, p.Gemini.BaseURL, opts), nil
		},
		Mock: func(model string) (Client, error) {
			return NewMock(model, nil), nil
		},
	}
}
