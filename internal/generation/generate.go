package generation

import (
	"context"
	"fmt"
	"math/rand/v2"

	"dialogsynth/internal/config"
	"dialogsynth/internal/corpus"
	"dialogsynth/internal/dataset"
	"dialogsynth/internal/llm"
	"dialogsynth/internal/logger"
	"dialogsynth/internal/prompt"
	"dialogsynth/internal/types"
)

// Generate runs one full generation job: load inputs, sample, run the pipeline,
// write the accepted scripts and refresh the aggregated corpus.
func Generate(ctx context.Context, client llm.Client, gate Gate, cfg config.GenerationConfig, model string, rng *rand.Rand, log *logger.Logger) (*types.BatchReport, error) {
	entry := log.WithField("component", "generation")

	examples, err := dataset.LoadCalls(cfg.Input)
	if err != nil {
		return nil, err
	}

	var topics []string
	if cfg.FixedTopics {
		topics = FixedTopicList
		entry.WithField("topics", topics).Info("using fixed topics")
	} else {
		pool, err := dataset.LoadTopics(cfg.Topics)
		if err != nil {
			return nil, err
		}
		topics, err = SampleTopics(rng, pool, cfg.NumTopicSamples, log)
		if err != nil {
			return nil, err
		}
		entry.WithField("topics", topics).Info("using random topics")
	}

	sampled, err := SampleExamples(rng, examples.Calls, cfg.NumExampleSamples, log)
	if err != nil {
		return nil, err
	}
	entry.WithField("examples", len(sampled)).Info("loaded example data")

	p := NewPipeline(client, prompt.Default(), gate, Options{
		Model:        model,
		InstructLang: cfg.InstructLang,
		ExamplesFile: cfg.Input,
	}, log)
	report, err := p.Run(ctx, topics, sampled)
	if err != nil {
		return report, err
	}

	if err := dataset.WriteJSON(cfg.Output, types.CallCorpus{Calls: report.AcceptedScripts()}); err != nil {
		return report, fmt.Errorf("save generated calls: %w", err)
	}
	entry.WithField("path", cfg.Output).Info("validated call scripts saved")

	if cfg.OutputFolder != "" && cfg.AggregatedJSON != "" {
		n, err := corpus.AggregateCalls(cfg.OutputFolder, cfg.AggregatedJSON, log)
		if err != nil {
			return report, fmt.Errorf("aggregate: %w", err)
		}
		entry.WithField("path", cfg.AggregatedJSON).WithField("calls", n).Info("aggregated JSON files saved")
	}
	return report, nil
}
