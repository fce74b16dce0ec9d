// Package conversation runs turn-based dialogues between persona agents.
package conversation

import (
	"context"
	"fmt"

	"dialogsynth/internal/knowledge"
	"dialogsynth/internal/llm"
	"dialogsynth/internal/types"
)

// Reply is one agent turn and what producing it cost.
type Reply struct {
	Content string
	Cost    float64
}

// Agent produces the next turn of a conversation from its history.
type Agent interface {
	Name() string
	Role() types.Role
	Reply(ctx context.Context, history []types.Turn) (Reply, error)
}

// PersonaAgent answers with one model call under a fixed system prompt.
type PersonaAgent struct {
	name   string
	role   types.Role
	system string
	client llm.Client
}

func NewPersonaAgent(name string, role types.Role, system string, client llm.Client) *PersonaAgent {
	return &PersonaAgent{name: name, role: role, system: system, client: client}
}

func (a *PersonaAgent) Name() string     { return a.name }
func (a *PersonaAgent) Role() types.Role { return a.role }

func (a *PersonaAgent) Reply(ctx context.Context, history []types.Turn) (Reply, error) {
	return a.reply(ctx, Perspective(a.name, a.system, history))
}

func (a *PersonaAgent) reply(ctx context.Context, msgs []llm.Message) (Reply, error) {
	resp, err := a.client.Chat(ctx, msgs)
	if err != nil {
		return Reply{}, fmt.Errorf("%s reply: %w", a.name, err)
	}
	return Reply{Content: resp.Content, Cost: resp.Cost}, nil
}

// Perspective maps a transcript onto chat messages as seen by the agent named
// self: its own turns become assistant messages, every other turn a user
// message.
func Perspective(self, system string, history []types.Turn) []llm.Message {
	msgs := make([]llm.Message, 0, len(history)+1)
	if system != "" {
		msgs = append(msgs, llm.Message{Role: llm.RoleSystem, Content: system})
	}
	for _, t := range history {
		role := llm.RoleUser
		if t.Name == self {
			role = llm.RoleAssistant
		}
		msgs = append(msgs, llm.Message{Role: role, Content: t.Content})
	}
	return msgs
}

// RetrievalAgent is a PersonaAgent that looks up knowledge passages for the
// latest turn and hands them to the model as internal notes.
type RetrievalAgent struct {
	*PersonaAgent
	retriever knowledge.Retriever
	k         int
}

func NewRetrievalAgent(p *PersonaAgent, r knowledge.Retriever, k int) *RetrievalAgent {
	return &RetrievalAgent{PersonaAgent: p, retriever: r, k: k}
}

func (a *RetrievalAgent) Reply(ctx context.Context, history []types.Turn) (Reply, error) {
	var query string
	if len(history) > 0 {
		query = history[len(history)-1].Content
	}
	passages, err := a.retriever.Retrieve(ctx, query, a.k)
	if err != nil {
		return Reply{}, fmt.Errorf("%s retrieval: %w", a.name, err)
	}
	system := a.system + "\n\n### Internal knowledge (not visible to the customer):\n" + knowledge.Format(passages)
	return a.reply(ctx, Perspective(a.name, system, history))
}
