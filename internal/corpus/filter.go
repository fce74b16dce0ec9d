package corpus

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"dialogsynth/internal/dataset"
	"dialogsynth/internal/logger"
)

// Scored pairs a conversation with its judge rating.
type Scored struct {
	Score        float64
	Conversation Conversation
}

// Rank orders by score, highest first, keeping the input order among equal
// scores, and keeps at most n entries.
func Rank(items []Scored, n int) []Scored {
	out := append([]Scored(nil), items...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if n < 0 {
		n = 0
	}
	if n < len(out) {
		out = out[:n]
	}
	return out
}

// Scorer rates one conversation.
type Scorer interface {
	Score(ctx context.Context, c Conversation) (float64, bool, error)
}

type FilterOptions struct {
	InputDir  string
	OutputDir string
	Pattern   string
	MediaType string
	TopN      int
	// Now stamps the output file name; defaults to time.Now.
	Now func() time.Time
}

// FilterResult describes one filter run.
type FilterResult struct {
	Path     string
	Loaded   int
	Scored   int
	Unparsed int
	Kept     []Conversation
}

// Filter loads, scores, ranks and writes the top conversations to
// <OutputDir>/filtered_conversations-<timestamp>.json. A conversation whose
// scoring call fails is logged and left out.
func Filter(ctx context.Context, scorer Scorer, opts FilterOptions, log *logger.Logger) (*FilterResult, error) {
	entry := log.WithField("component", "filter")

	convs, err := LoadConversations(opts.InputDir, opts.Pattern, opts.MediaType, log)
	if err != nil {
		return nil, err
	}
	res := &FilterResult{Loaded: len(convs)}

	scored := make([]Scored, 0, len(convs))
	for _, c := range convs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		score, parsed, err := scorer.Score(ctx, c)
		if err != nil {
			entry.WithError(err).WithField("call_id", c.CallID()).Warn("error evaluating conversation")
			continue
		}
		if !parsed {
			res.Unparsed++
		}
		c[keyRating] = score
		c[keyRatingParsed] = parsed
		entry.WithField("call_id", c.CallID()).WithField("score", score).Info("evaluated conversation")
		scored = append(scored, Scored{Score: score, Conversation: c})
	}
	res.Scored = len(scored)

	top := Rank(scored, opts.TopN)
	res.Kept = make([]Conversation, len(top))
	for i, s := range top {
		res.Kept[i] = s.Conversation
	}

	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	res.Path = filepath.Join(opts.OutputDir, fmt.Sprintf("filtered_conversations-%s.json", now().Format(TimestampLayout)))
	if err := dataset.WriteJSON(res.Path, res.Kept); err != nil {
		return nil, err
	}
	entry.WithFields(map[string]interface{}{
		"path":     res.Path,
		"loaded":   res.Loaded,
		"scored":   res.Scored,
		"kept":     len(res.Kept),
		"unparsed": res.Unparsed,
	}).Info("filtered conversations saved")
	return res, nil
}

// TimestampLayout is used in generated file names.
const TimestampLayout = "20060102_150405"
