package types

// CallScript is one generated call document: the schema-owned script and callback-note
// fields plus the metadata keys the pipeline tags onto it.
type CallScript map[string]any

// Metadata keys written onto an accepted CallScript.
const (
	KeyCallID       = "call_id"
	KeyModel        = "model"
	KeyExamples     = "examples"
	KeyTopic        = "topic"
	KeyResolved     = "resolved"
	KeyInstructLang = "instruct_lang"
)

// CallCorpus is the on-disk shape of example, generated and aggregated call files.
type CallCorpus struct {
	Calls []CallScript `json:"calls"`
}

// TopicList is the on-disk shape of the topics file.
type TopicList struct {
	Topics []string `json:"topics"`
}

// Variant selects the resolved or unresolved generation branch.
type Variant string

const (
	Resolved   Variant = "resolved"
	Unresolved Variant = "unresolved"
)

// Variants lists the branches generated for every topic/example pair, in order.
var Variants = []Variant{Resolved, Unresolved}

// Stage names the step of the generation pipeline an item failed in.
type Stage string

const (
	StageGenerate Stage = "generate"
	StageCorrect  Stage = "correct"
	StageGate     Stage = "gate"
)

// ItemResult is the outcome of one (topic, example, variant) tuple.
type ItemResult struct {
	Topic        string     `json:"topic"`
	ExampleIndex int        `json:"example_index"`
	Variant      Variant    `json:"variant"`
	Accepted     bool       `json:"accepted"`
	Stage        Stage      `json:"stage,omitempty"`
	Reason       string     `json:"reason,omitempty"`
	Script       CallScript `json:"-"`
}

// BatchReport collects the per-item results of one generation run.
type BatchReport struct {
	Attempts int          `json:"attempts"`
	Accepted int          `json:"accepted"`
	Rejected int          `json:"rejected"`
	Results  []ItemResult `json:"results"`
}

// Add records one item result.
func (r *BatchReport) Add(res ItemResult) {
	r.Attempts++
	if res.Accepted {
		r.Accepted++
	} else {
		r.Rejected++
	}
	r.Results = append(r.Results, res)
}

// AcceptedScripts returns the accepted documents in processing order.
func (r *BatchReport) AcceptedScripts() []CallScript {
	out := make([]CallScript, 0, r.Accepted)
	for _, res := range r.Results {
		if res.Accepted {
			out = append(out, res.Script)
		}
	}
	return out
}

// Failures returns the rejected results.
func (r *BatchReport) Failures() []ItemResult {
	var out []ItemResult
	for _, res := range r.Results {
		if !res.Accepted {
			out = append(out, res)
		}
	}
	return out
}
