// Package generation turns example calls and topics into new call scripts:
// generate, correct, tag and gate each (topic, example, variant) tuple.
package generation

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"

	"dialogsynth/internal/llm"
	"dialogsynth/internal/logger"
	"dialogsynth/internal/prompt"
	"dialogsynth/internal/types"
)

// Gate is the schema acceptance check.
type Gate interface {
	Check(doc any) bool
	Raw() string
}

// Options are the per-run generation settings.
type Options struct {
	Model        string
	InstructLang string
	// ExamplesFile is the source examples path; its base name is recorded on every script.
	ExamplesFile string
}

type Pipeline struct {
	client  llm.Client
	catalog *prompt.Catalog
	gate    Gate
	opts    Options
	log     *logger.Logger
	newID   func() string
}

func NewPipeline(client llm.Client, catalog *prompt.Catalog, gate Gate, opts Options, log *logger.Logger) *Pipeline {
	if log == nil {
		log = logger.New()
	}
	return &Pipeline{
		client:  client,
		catalog: catalog,
		gate:    gate,
		opts:    opts,
		log:     log,
		newID:   func() string { return uuid.New().String() },
	}
}

// Run processes every topic × example × variant tuple. Item failures are
// recorded in the report and never abort the batch; only cancellation does.
func (p *Pipeline) Run(ctx context.Context, topics []string, examples []Example) (*types.BatchReport, error) {
	log := p.log.WithField("component", "generation").WithField("model", p.opts.Model)
	report := &types.BatchReport{}

	for _, topic := range topics {
		log.WithField("topic", topic).Info("processing topic")
		for _, ex := range examples {
			for _, variant := range types.Variants {
				if err := ctx.Err(); err != nil {
					return report, err
				}
				res := p.Process(ctx, topic, ex, variant)
				entry := log.WithFields(map[string]interface{}{
					"topic":   topic,
					"example": ex.Index,
					"variant": variant,
				})
				if res.Accepted {
					entry.Info("script accepted")
				} else {
					entry.WithField("stage", res.Stage).WithField("reason", res.Reason).Warn("script rejected")
				}
				report.Add(res)
			}
		}
	}

	log.WithFields(map[string]interface{}{
		"attempts": report.Attempts,
		"accepted": report.Accepted,
		"rejected": report.Rejected,
	}).Info("generation batch complete")
	return report, nil
}

// Process runs one tuple through generate, correct, tag and gate.
func (p *Pipeline) Process(ctx context.Context, topic string, ex Example, variant types.Variant) types.ItemResult {
	res := types.ItemResult{Topic: topic, ExampleIndex: ex.Index, Variant: variant}
	fail := func(stage types.Stage, err error) types.ItemResult {
		res.Stage = stage
		res.Reason = err.Error()
		return res
	}

	generated, err := p.generate(ctx, topic, ex.Call, variant)
	if err != nil {
		return fail(types.StageGenerate, err)
	}

	corrected, err := p.correct(ctx, generated)
	if err != nil {
		return fail(types.StageCorrect, err)
	}

	script := p.tag(corrected, topic, variant)

	if !p.gate.Check(map[string]any(script)) {
		return fail(types.StageGate, fmt.Errorf("script does not conform to schema"))
	}

	res.Accepted = true
	res.Script = script
	return res
}

func (p *Pipeline) generate(ctx context.Context, topic string, example types.CallScript, variant types.Variant) (map[string]any, error) {
	tmpl, err := p.catalog.Generation(variant, p.opts.InstructLang)
	if err != nil {
		return nil, err
	}
	exampleJSON, err := json.MarshalIndent(example, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal example: %w", err)
	}
	system, user, err := tmpl.Render(prompt.Bindings{
		prompt.PHStructure: p.gate.Raw(),
		prompt.PHExample:   string(exampleJSON),
		prompt.PHTopic:     topic,
	})
	if err != nil {
		return nil, err
	}
	doc, _, err := llm.InvokeJSON(ctx, p.client, system, user)
	if err != nil {
		return nil, fmt.Errorf("generate %s script: %w", variant, err)
	}
	return doc, nil
}

func (p *Pipeline) correct(ctx context.Context, generated map[string]any) (map[string]any, error) {
	tmpl, err := p.catalog.Validation(p.opts.InstructLang)
	if err != nil {
		return nil, err
	}
	scriptJSON, err := json.MarshalIndent(generated, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal generated script: %w", err)
	}
	system, user, err := tmpl.Render(prompt.Bindings{prompt.PHScript: string(scriptJSON)})
	if err != nil {
		return nil, err
	}
	doc, _, err := llm.InvokeJSON(ctx, p.client, system, user)
	if err != nil {
		return nil, fmt.Errorf("correct script: %w", err)
	}
	return doc, nil
}

// tag writes the metadata keys onto the corrected document.
func (p *Pipeline) tag(doc map[string]any, topic string, variant types.Variant) types.CallScript {
	script := types.CallScript(doc)
	script[types.KeyCallID] = p.newID()
	script[types.KeyModel] = p.opts.Model
	script[types.KeyExamples] = ""
	if p.opts.ExamplesFile != "" {
		script[types.KeyExamples] = filepath.Base(p.opts.ExamplesFile)
	}
	script[types.KeyTopic] = topic
	script[types.KeyResolved] = variant == types.Resolved
	script[types.KeyInstructLang] = p.opts.InstructLang
	return script
}
