package main

import (
	"github.com/spf13/cobra"

	"dialogsynth/internal/generation"
	"dialogsynth/internal/schema"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate schema-validated call scripts from example calls",
	Long: `Generate samples topics and example calls, asks the model for a resolved and an
unresolved call script per pair, runs a correction pass and keeps only scripts
that satisfy the call script schema.

Examples:
  dialogsynth generate --model gpt-4o-mini --num-topic-samples 5 --num-example-samples 3
  dialogsynth generate --fixed-topics --instruct-lang de --output output/de.json`,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	f := generateCmd.Flags()
	f.String("input", "", "Example calls JSON")
	f.String("output", "", "Output JSON for accepted call scripts")
	f.String("topics", "", "Topics JSON or XLSX")
	f.String("schema", "", "Call script JSON schema")
	f.Int("num-topic-samples", 0, "Number of topics to sample")
	f.Int("num-example-samples", 0, "Number of example calls to sample")
	f.Bool("fixed-topics", false, "Use the fixed topic list instead of sampling")
	f.String("instruct-lang", "", "Prompt language: en or de")
	f.Int64("seed", 0, "Sampling seed, 0 for random")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg := state.cfg.Generation
	f := cmd.Flags()
	overrideString(f, "input", &cfg.Input)
	overrideString(f, "output", &cfg.Output)
	overrideString(f, "topics", &cfg.Topics)
	overrideString(f, "schema", &cfg.Schema)
	overrideInt(f, "num-topic-samples", &cfg.NumTopicSamples)
	overrideInt(f, "num-example-samples", &cfg.NumExampleSamples)
	overrideBool(f, "fixed-topics", &cfg.FixedTopics)
	overrideString(f, "instruct-lang", &cfg.InstructLang)
	overrideInt64(f, "seed", &cfg.Seed)

	gate, err := schema.Load(cfg.Schema, state.log)
	if err != nil {
		return err
	}
	client, err := state.gateway.Client(state.cfg.Model.Name)
	if err != nil {
		return err
	}

	report, err := generation.Generate(cmd.Context(), client, gate, cfg, state.cfg.Model.Name,
		generation.NewRand(cfg.Seed), state.log)
	if report != nil {
		state.log.WithFields(map[string]interface{}{
			"attempts": report.Attempts,
			"accepted": report.Accepted,
			"rejected": report.Rejected,
		}).Info("generation finished")
		for _, r := range report.Failures() {
			state.log.WithFields(map[string]interface{}{
				"topic":   r.Topic,
				"variant": r.Variant,
				"stage":   r.Stage,
				"reason":  r.Reason,
			}).Debug("rejected item")
		}
	}
	return err
}
