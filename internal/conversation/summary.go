package conversation

import (
	"context"
	"fmt"

	"dialogsynth/internal/llm"
	"dialogsynth/internal/prompt"
	"dialogsynth/internal/types"
)

// InitialMessage asks the customer persona for its opening message. The
// reply is outside the turn loop and becomes turn 0.
func InitialMessage(ctx context.Context, client llm.Client, tmpl prompt.Template, s types.ScenarioParameters) (Reply, error) {
	msgs, err := tmpl.Messages(prompt.ScenarioBindings(s, types.RoleCustomer))
	if err != nil {
		return Reply{}, err
	}
	resp, err := client.Chat(ctx, msgs)
	if err != nil {
		return Reply{}, fmt.Errorf("initial message: %w", err)
	}
	return Reply{Content: resp.Content, Cost: resp.Cost}, nil
}

// Summarize reflects on a finished transcript with one model call.
func Summarize(ctx context.Context, client llm.Client, tmpl prompt.Template, turns []types.Turn) (Reply, error) {
	msgs, err := tmpl.Messages(prompt.Bindings{prompt.PHTranscript: FormatTranscript(turns)})
	if err != nil {
		return Reply{}, err
	}
	resp, err := client.Chat(ctx, msgs)
	if err != nil {
		return Reply{}, fmt.Errorf("summary: %w", err)
	}
	return Reply{Content: resp.Content, Cost: resp.Cost}, nil
}
