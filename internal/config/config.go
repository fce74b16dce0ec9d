// Package config builds the explicit run configuration handed to every component.
// Values are layered: built-in defaults, then an optional YAML file, then environment
// variables prefixed with DIALOGSYNTH_ (a double underscore separates nesting levels,
// e.g. DIALOGSYNTH_GENERATION__NUM_TOPIC_SAMPLES), then the conventional provider
// credential variables such as OPENAI_API_KEY.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const EnvPrefix = "DIALOGSYNTH_"

type Config struct {
	Environment string           `koanf:"environment"`
	LogLevel    string           `koanf:"log_level"`
	Model       ModelConfig      `koanf:"model"`
	Generation  GenerationConfig `koanf:"generation"`
	Simulation  SimulationConfig `koanf:"simulation"`
	Filter      FilterConfig     `koanf:"filter"`
	Providers   ProvidersConfig  `koanf:"providers"`
	Telemetry   TelemetryConfig  `koanf:"telemetry"`
}

type ModelConfig struct {
	Name        string  `koanf:"name"`
	MaxTokens   int     `koanf:"max_tokens"`
	Temperature float64 `koanf:"temperature"`
	// MaxRetries is the number of extra attempts on transport errors and 5xx
	// responses. Zero keeps every model call one-shot.
	MaxRetries int `koanf:"max_retries"`
	// Timeout per HTTP request, e.g. "2m". Zero leaves the client default.
	Timeout time.Duration `koanf:"timeout"`
}

type GenerationConfig struct {
	Input             string `koanf:"input"`
	Output            string `koanf:"output"`
	Topics            string `koanf:"topics"`
	Schema            string `koanf:"schema"`
	NumTopicSamples   int    `koanf:"num_topic_samples"`
	NumExampleSamples int    `koanf:"num_example_samples"`
	FixedTopics       bool   `koanf:"fixed_topics"`
	InstructLang      string `koanf:"instruct_lang"`
	OutputFolder      string `koanf:"output_folder"`
	AggregatedJSON    string `koanf:"aggregated_json"`
	Seed              int64  `koanf:"seed"`
}

type SimulationConfig struct {
	Iterations      int    `koanf:"iterations"`
	AgentType       string `koanf:"agent_type"`
	Scenario        string `koanf:"scenario"`
	MaxRounds       int    `koanf:"max_rounds"`
	InnerMaxRounds  int    `koanf:"inner_max_rounds"`
	ConfigDir       string `koanf:"config_dir"`
	OutputDir       string `koanf:"output_dir"`
	ContinueOnError bool   `koanf:"continue_on_error"`
	KnowledgeDir    string `koanf:"knowledge_dir"`
	KnowledgeDB     string `koanf:"knowledge_db"`
	Seed            int64  `koanf:"seed"`
}

type FilterConfig struct {
	InputDir   string `koanf:"input_dir"`
	OutputDir  string `koanf:"output_dir"`
	Pattern    string `koanf:"pattern"`
	MediaType  string `koanf:"media_type"`
	TopN       int    `koanf:"top_n"`
	JudgeModel string `koanf:"judge_model"`
	XLSX       string `koanf:"xlsx"`
}

type ProviderConfig struct {
	APIKey  string `koanf:"api_key"`
	BaseURL string `koanf:"base_url"`
}

type ProvidersConfig struct {
	OpenAI    ProviderConfig `koanf:"openai"`
	Anthropic ProviderConfig `koanf:"anthropic"`
	Gemini    ProviderConfig `koanf:"gemini"`
	NVIDIA    ProviderConfig `koanf:"nvidia"`
	Fireworks ProviderConfig `koanf:"fireworks"`
	Groq      ProviderConfig `koanf:"groq"`
	Together  ProviderConfig `koanf:"together"`
}

type TelemetryConfig struct {
	Enabled     bool   `koanf:"enabled"`
	ServiceName string `koanf:"service_name"`
}

// credentialEnv maps the provider credential variables onto config keys.
var credentialEnv = map[string]string{
	"OPENAI_API_KEY":      "providers.openai.api_key",
	"ANTHROPIC_API_KEY":   "providers.anthropic.api_key",
	"GOOGLE_API_KEY":      "providers.gemini.api_key",
	"NVIDIA_API_KEY":      "providers.nvidia.api_key",
	"FIREWORKS_API_KEY":   "providers.fireworks.api_key",
	"GROQ_API_KEY":        "providers.groq.api_key",
	"TOGETHER_AI_API_KEY": "providers.together.api_key",
	"ENVIRONMENT":         "environment",
	"LOG_LEVEL":           "log_level",
}

var defaults = map[string]any{
	"model.name":                     "gpt-4o-mini",
	"model.max_tokens":               4096,
	"model.temperature":              0.2,
	"model.max_retries":              0,
	"model.timeout":                  "0s",
	"generation.input":               "data/examples/example_calls.json",
	"generation.output":              "output/validated_call_scripts.json",
	"generation.topics":              "data/topics.json",
	"generation.schema":              "data/schema/call_script.json",
	"generation.num_topic_samples":   10,
	"generation.num_example_samples": 10,
	"generation.fixed_topics":        false,
	"generation.instruct_lang":       "en",
	"generation.output_folder":       "output",
	"generation.aggregated_json":     "synthetic_data/aggregated_data.json",
	"simulation.iterations":          1,
	"simulation.agent_type":          "simple",
	"simulation.scenario":            "default",
	"simulation.max_rounds":          10,
	"simulation.inner_max_rounds":    4,
	"simulation.config_dir":          "configs/scenario",
	"simulation.output_dir":          "agentic_simulation_outputs",
	"simulation.continue_on_error":   false,
	"simulation.knowledge_dir":       "data/knowledge",
	"simulation.knowledge_db":        "knowledge.db",
	"filter.input_dir":               "agentic_simulation_outputs/default",
	"filter.output_dir":              "agentic_simulation_outputs/default/filtered_conversations",
	"filter.pattern":                 "conversations*.json",
	"filter.top_n":                   20,
	"filter.judge_model":             "gpt-4o",
	"telemetry.enabled":              false,
	"telemetry.service_name":         "dialogsynth",
}

// Load reads the layered configuration. path may be empty.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	for key, val := range defaults {
		if err := k.Set(key, val); err != nil {
			return nil, fmt.Errorf("set default %s: %w", key, err)
		}
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	if err := k.Load(env.Provider("", ".", func(s string) string {
		return credentialEnv[s]
	}), nil); err != nil {
		return nil, fmt.Errorf("load credentials: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, cfg.Validate()
}

// envKey turns DIALOGSYNTH_GENERATION__NUM_TOPIC_SAMPLES into generation.num_topic_samples.
func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}

// Validate rejects values no component can run with.
func (c *Config) Validate() error {
	switch c.Generation.InstructLang {
	case "en", "de":
	default:
		return fmt.Errorf("generation.instruct_lang must be en or de, got %q", c.Generation.InstructLang)
	}
	if c.Generation.NumTopicSamples < 0 || c.Generation.NumExampleSamples < 0 {
		return fmt.Errorf("sample counts must not be negative")
	}
	if c.Simulation.MaxRounds < 1 {
		return fmt.Errorf("simulation.max_rounds must be at least 1")
	}
	if c.Simulation.InnerMaxRounds < 1 {
		return fmt.Errorf("simulation.inner_max_rounds must be at least 1")
	}
	if c.Model.MaxRetries < 0 {
		return fmt.Errorf("model.max_retries must not be negative")
	}
	if c.Model.Timeout < 0 {
		return fmt.Errorf("model.timeout must not be negative")
	}
	return nil
}
