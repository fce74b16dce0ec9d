package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"dialogsynth/internal/config"
	"dialogsynth/internal/llm"
	"dialogsynth/internal/logger"
	"dialogsynth/internal/telemetry"
)

// app is the state shared by every subcommand once the root pre-run is done.
type app struct {
	cfg      *config.Config
	log      *logger.Logger
	gateway  *llm.Gateway
	shutdown func(context.Context) error
}

var (
	state      app
	configPath string
	modelName  string
	logLevel   string

	// traceOutput receives exported spans when telemetry is enabled.
	traceOutput io.Writer = os.Stderr
)

var rootCmd = &cobra.Command{
	Use:           "dialogsynth",
	Short:         "Synthesize customer service dialogue datasets with LLMs",
	SilenceUsage:  true,
	SilenceErrors: false,
	Long: `dialogsynth generates schema-validated call scripts, simulates conversations
between customer and service agents, and aggregates, scores and cleans the
resulting corpora.

Configuration is read from built-in defaults, an optional YAML file (--config),
a .env file and DIALOGSYNTH_* environment variables, in that order.`,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&modelName, "model", "", "Model name (overrides model.name)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
}

func setup(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load() // loads .env

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if modelName != "" {
		cfg.Model.Name = modelName
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	log := logger.NewWithOptions(logger.Options{Environment: cfg.Environment, Level: cfg.LogLevel})
	log.WithField("service", "dialogsynth").WithField("command", cmd.Name()).Info("starting")

	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.InitTracer(cfg.Telemetry.ServiceName, traceOutput, log)
		if err != nil {
			return fmt.Errorf("init tracer: %w", err)
		}
		state.shutdown = shutdown
	}

	factories := llm.DefaultFactories(cfg.Providers, llm.ClientOptions{
		Timeout:     cfg.Model.Timeout,
		MaxRetries:  cfg.Model.MaxRetries,
		MaxTokens:   cfg.Model.MaxTokens,
		Temperature: cfg.Model.Temperature,
	})
	state.cfg = cfg
	state.log = log
	state.gateway = llm.NewGateway(llm.DefaultRoutes, factories, llm.WithLogger(log))
	return nil
}

// runRoot executes the root command and flushes traces whether or not the
// command failed.
func runRoot(ctx context.Context) error {
	defer flushTelemetry()
	return rootCmd.ExecuteContext(ctx)
}

func flushTelemetry() {
	shutdown := state.shutdown
	if shutdown == nil {
		return
	}
	state.shutdown = nil
	if err := shutdown(context.Background()); err != nil && state.log != nil {
		state.log.WithError(err).Warn("failed to flush traces")
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := runRoot(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
