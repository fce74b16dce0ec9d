package corpus

import (
	"context"
	"math"
	"regexp"
	"strconv"
	"strings"

	"dialogsynth/internal/llm"
	"dialogsynth/internal/prompt"
)

// Judge scores a conversation with a model on a 1-10 scale.
type Judge struct {
	client llm.Client
	tmpl   prompt.Template
}

func NewJudge(client llm.Client, catalog *prompt.Catalog) (*Judge, error) {
	tmpl, err := catalog.Lookup(prompt.KindJudge, "", "")
	if err != nil {
		return nil, err
	}
	return &Judge{client: client, tmpl: tmpl}, nil
}

// FormatTranscript renders messages as "role: content" lines.
func FormatTranscript(c Conversation) string {
	var sb strings.Builder
	for i, t := range c.Turns() {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(t.Role)
		sb.WriteString(": ")
		sb.WriteString(t.Content)
	}
	return sb.String()
}

// Score asks the model for a rating. A reply without a readable number scores
// 0.0 with parsed set to false; only a failed model call is an error.
func (j *Judge) Score(ctx context.Context, c Conversation) (score float64, parsed bool, err error) {
	system, user, err := j.tmpl.Render(prompt.Bindings{prompt.PHConversation: FormatTranscript(c)})
	if err != nil {
		return 0, false, err
	}
	resp, err := llm.Text(ctx, j.client, system, user, llm.WithTemperature(0))
	if err != nil {
		return 0, false, err
	}
	score, parsed = ParseScore(resp.Content)
	return score, parsed, nil
}

var plainNumber = regexp.MustCompile(`^[0-9]+(\.[0-9]*)?$`)

// ParseScore reads the rating from a judge reply: the whole reply when it is a
// single number, otherwise the first line that parses as a float.
func ParseScore(text string) (float64, bool) {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	if len(lines) == 1 && plainNumber.MatchString(lines[0]) {
		if f, err := strconv.ParseFloat(lines[0], 64); err == nil {
			return f, true
		}
	}
	for _, line := range lines {
		f, err := strconv.ParseFloat(strings.TrimSpace(line), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			continue
		}
		return f, true
	}
	return 0, false
}
