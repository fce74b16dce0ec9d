package generation

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dialogsynth/internal/config"
	"dialogsynth/internal/dataset"
	"dialogsynth/internal/llm"
	"dialogsynth/internal/logger"
	"dialogsynth/internal/prompt"
	"dialogsynth/internal/schema"
	"dialogsynth/internal/types"
)

// fakeGate accepts documents that carry a "conversation" key.
type fakeGate struct{ checked int }

func (g *fakeGate) Check(doc any) bool {
	g.checked++
	m, ok := doc.(map[string]any)
	if !ok {
		return false
	}
	_, ok = m["conversation"]
	return ok
}

func (g *fakeGate) Raw() string { return `{"type":"object"}` }

func newTestPipeline(client llm.Client, gate Gate) *Pipeline {
	p := NewPipeline(client, prompt.Default(), gate, Options{
		Model:        "gpt-test",
		InstructLang: "en",
		ExamplesFile: "data/examples/example_calls.json",
	}, logger.Discard())
	n := 0
	p.newID = func() string {
		n++
		return "id-" + string(rune('0'+n))
	}
	return p
}

var oneExample = []Example{{Index: 0, Call: types.CallScript{"conversation": []any{}}}}

func TestRunSingleTupleMakesTwoAttempts(t *testing.T) {
	gate := &fakeGate{}
	p := newTestPipeline(llm.NewMock("mock", nil), gate)

	report, err := p.Run(context.Background(), []string{"Hypotheken"}, oneExample)
	require.NoError(t, err)

	assert.Equal(t, 2, report.Attempts)
	assert.Equal(t, 2, report.Accepted)
	assert.Equal(t, 2, gate.checked)

	scripts := report.AcceptedScripts()
	require.Len(t, scripts, 2)
	assert.Equal(t, true, scripts[0][types.KeyResolved])
	assert.Equal(t, false, scripts[1][types.KeyResolved])
	for _, s := range scripts {
		assert.Equal(t, "Hypotheken", s[types.KeyTopic])
		assert.Equal(t, "gpt-test", s[types.KeyModel])
		assert.Equal(t, "example_calls.json", s[types.KeyExamples])
		assert.Equal(t, "en", s[types.KeyInstructLang])
		assert.NotEmpty(t, s[types.KeyCallID])
	}
	assert.NotEqual(t, scripts[0][types.KeyCallID], scripts[1][types.KeyCallID])
}

func TestProcessRecordsStageFailures(t *testing.T) {
	client := llm.NewScripted(
		"not json at all",                           // resolved: generate fails
		`{"conversation": []}`, `{"broken": true}`, // unresolved: gate rejects
	)
	p := newTestPipeline(client, &fakeGate{})

	report, err := p.Run(context.Background(), []string{"Börsenauftrag"}, oneExample)
	require.NoError(t, err)

	assert.Equal(t, 2, report.Attempts)
	assert.Equal(t, 0, report.Accepted)
	failures := report.Failures()
	require.Len(t, failures, 2)
	assert.Equal(t, types.StageGenerate, failures[0].Stage)
	assert.Equal(t, types.Resolved, failures[0].Variant)
	assert.Equal(t, types.StageGate, failures[1].Stage)
	assert.Empty(t, report.AcceptedScripts())
}

func TestProcessCorrectionFailure(t *testing.T) {
	client := &llm.ScriptedClient{}
	client.Push(
		llm.ScriptedReply{Content: `{"conversation": []}`},
		llm.ScriptedReply{Err: errors.New("rate limited")},
	)
	p := newTestPipeline(client, &fakeGate{})

	res := p.Process(context.Background(), "Adressänderung", oneExample[0], types.Unresolved)
	assert.False(t, res.Accepted)
	assert.Equal(t, types.StageCorrect, res.Stage)
	assert.Contains(t, res.Reason, "rate limited")
}

func TestProcessBindsTopicAndExampleIntoPrompt(t *testing.T) {
	client := llm.NewScripted(`{"conversation": []}`, `{"conversation": [1]}`)
	p := newTestPipeline(client, &fakeGate{})

	res := p.Process(context.Background(), "Fremdwährungen bestellen", oneExample[0], types.Resolved)
	require.True(t, res.Accepted)

	calls := client.Calls()
	require.Len(t, calls, 2)
	user := calls[0][len(calls[0])-1].Content
	assert.Contains(t, user, "Fremdwährungen bestellen")
	assert.Contains(t, user, `"conversation": []`)
	assert.Contains(t, calls[0][0].Content, "financial service provider")
	// correction sees the generated document
	assert.Contains(t, calls[1][len(calls[1])-1].Content, `"conversation": []`)
	// the corrected document is what gets accepted
	assert.Equal(t, []any{float64(1)}, res.Script["conversation"])
}

func TestRunStopsOnCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := newTestPipeline(llm.NewMock("mock", nil), &fakeGate{})

	report, err := p.Run(ctx, []string{"a", "b"}, oneExample)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, report.Attempts)
}

func TestAcceptedBoundedByAttempts(t *testing.T) {
	p := newTestPipeline(llm.NewMock("mock", nil), &fakeGate{})
	examples := []Example{oneExample[0], {Index: 1, Call: types.CallScript{}}}

	report, err := p.Run(context.Background(), FixedTopicList, examples)
	require.NoError(t, err)
	assert.Equal(t, 2*len(FixedTopicList)*len(examples), report.Attempts)
	assert.LessOrEqual(t, len(report.AcceptedScripts()), report.Attempts)
}

func TestGenerateWritesOutputAndAggregates(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "example_calls.json")
	require.NoError(t, os.WriteFile(input, []byte(`{"calls": [{"conversation": []}]}`), 0o644))
	topics := filepath.Join(dir, "topics.json")
	require.NoError(t, os.WriteFile(topics, []byte(`{"topics": ["Hypotheken", "Börsenauftrag"]}`), 0o644))

	gate, err := schema.Load(filepath.Join("..", "..", "data", "schema", "call_script.json"), logger.Discard())
	require.NoError(t, err)

	outFolder := filepath.Join(dir, "output")
	cfg := config.GenerationConfig{
		Input:             input,
		Output:            filepath.Join(outFolder, "validated_call_scripts.json"),
		Topics:            topics,
		NumTopicSamples:   1,
		NumExampleSamples: 5,
		InstructLang:      "de",
		OutputFolder:      outFolder,
		AggregatedJSON:    filepath.Join(dir, "synthetic_data", "aggregated_data.json"),
	}

	report, err := Generate(context.Background(), llm.NewMock("mock", nil), gate, cfg, "mock", NewRand(7), logger.Discard())
	require.NoError(t, err)
	assert.Equal(t, 2, report.Attempts)
	assert.Equal(t, 2, report.Accepted)

	out, err := dataset.LoadCalls(cfg.Output)
	require.NoError(t, err)
	assert.Len(t, out.Calls, 2)

	agg, err := dataset.LoadCalls(cfg.AggregatedJSON)
	require.NoError(t, err)
	assert.Len(t, agg.Calls, 2)
}

func TestGenerateFailsOnMissingExamples(t *testing.T) {
	cfg := config.GenerationConfig{Input: filepath.Join(t.TempDir(), "nope.json"), FixedTopics: true}

	_, err := Generate(context.Background(), llm.NewMock("mock", nil), &fakeGate{}, cfg, "mock", NewRand(1), logger.Discard())
	var loadErr *dataset.ResourceLoadError
	assert.ErrorAs(t, err, &loadErr)
}
