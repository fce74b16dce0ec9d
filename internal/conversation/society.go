package conversation

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"dialogsynth/internal/knowledge"
	"dialogsynth/internal/llm"
	"dialogsynth/internal/prompt"
	"dialogsynth/internal/types"
)

// InnerSpeaker is a participant of the society-of-mind inner loop.
type InnerSpeaker int

const (
	InnerNone InnerSpeaker = iota
	InnerRetrieval
	InnerDrafting
	InnerCritic
)

func (s InnerSpeaker) String() string {
	switch s {
	case InnerRetrieval:
		return "retrieval"
	case InnerDrafting:
		return "drafting"
	case InnerCritic:
		return "critic"
	}
	return "none"
}

// DefaultInnerRounds gives retrieval, draft, critique and a final draft.
const DefaultInnerRounds = 4

// NextInnerSpeaker picks the inner speaker for round. Round 0 always starts
// with retrieval; afterwards drafting and critique alternate.
func NextInnerSpeaker(last InnerSpeaker, round int) InnerSpeaker {
	if round == 0 {
		return InnerRetrieval
	}
	switch last {
	case InnerRetrieval, InnerCritic:
		return InnerDrafting
	case InnerDrafting:
		return InnerCritic
	}
	return InnerRetrieval
}

// SocietyTemplates are the rendered system prompts of the inner agents.
type SocietyTemplates struct {
	Retrieval prompt.Template
	Drafting  prompt.Template
	Critic    prompt.Template
}

// SocietyOfMind is a service agent whose single outer turn is the last draft
// of an inner retrieval, drafting and critique exchange.
type SocietyOfMind struct {
	name      string
	client    llm.Client
	retriever knowledge.Retriever
	k         int
	rounds    int
	tmpl      SocietyTemplates
	bindings  prompt.Bindings
	log       *logrus.Entry
}

// NewSocietyOfMind binds the inner prompts to the scenario of one
// conversation. rounds <= 0 uses DefaultInnerRounds.
func NewSocietyOfMind(name string, client llm.Client, r knowledge.Retriever, k, rounds int,
	tmpl SocietyTemplates, s types.ScenarioParameters, log *logrus.Entry) *SocietyOfMind {
	if rounds <= 0 {
		rounds = DefaultInnerRounds
	}
	return &SocietyOfMind{
		name:      name,
		client:    client,
		retriever: r,
		k:         k,
		rounds:    rounds,
		tmpl:      tmpl,
		bindings:  prompt.ScenarioBindings(s, types.RoleService),
		log:       log.WithField("agent", name),
	}
}

func (a *SocietyOfMind) Name() string     { return a.name }
func (a *SocietyOfMind) Role() types.Role { return types.RoleService }

// inner is the scratch state of one outer turn.
type inner struct {
	notes    string
	draft    string
	feedback string
	cost     float64
}

func (a *SocietyOfMind) Reply(ctx context.Context, history []types.Turn) (Reply, error) {
	var (
		st   inner
		last = InnerNone
	)
	for round := 0; round < a.rounds; round++ {
		speaker := NextInnerSpeaker(last, round)
		content, err := a.step(ctx, speaker, history, &st)
		if err != nil {
			return Reply{}, fmt.Errorf("%s %s: %w", a.name, speaker, err)
		}
		a.log.WithField("round", round).WithField("speaker", speaker.String()).Debug("inner turn")
		last = speaker
		if IsTermination(content) {
			break
		}
	}
	if st.draft == "" {
		if _, err := a.step(ctx, InnerDrafting, history, &st); err != nil {
			return Reply{}, fmt.Errorf("%s %s: %w", a.name, InnerDrafting, err)
		}
	}
	return Reply{Content: st.draft, Cost: st.cost}, nil
}

func (a *SocietyOfMind) step(ctx context.Context, speaker InnerSpeaker, history []types.Turn, st *inner) (string, error) {
	var msgs []llm.Message
	switch speaker {
	case InnerRetrieval:
		var query string
		if len(history) > 0 {
			query = history[len(history)-1].Content
		}
		passages, err := a.retriever.Retrieve(ctx, query, a.k)
		if err != nil {
			return "", err
		}
		b := prompt.Merge(a.bindings, prompt.Bindings{
			prompt.PHQuery:    query,
			prompt.PHPassages: knowledge.Format(passages),
		})
		if msgs, err = a.tmpl.Retrieval.Messages(b); err != nil {
			return "", err
		}

	case InnerDrafting:
		system, _, err := a.tmpl.Drafting.Render(a.bindings)
		if err != nil {
			return "", err
		}
		msgs = Perspective(a.name, system, history)
		msgs = append(msgs, llm.Message{Role: llm.RoleUser, Content: draftingBrief(st)})

	case InnerCritic:
		system, _, err := a.tmpl.Critic.Render(a.bindings)
		if err != nil {
			return "", err
		}
		msgs = []llm.Message{
			{Role: llm.RoleSystem, Content: system},
			{Role: llm.RoleUser, Content: "Conversation so far:\n" + FormatTranscript(history) + "\n\nDraft reply:\n" + st.draft},
		}

	default:
		return "", fmt.Errorf("unknown inner speaker %d", speaker)
	}

	resp, err := a.client.Chat(ctx, msgs)
	if err != nil {
		return "", err
	}
	st.cost += resp.Cost
	switch speaker {
	case InnerRetrieval:
		st.notes = resp.Content
	case InnerDrafting:
		st.draft = resp.Content
	case InnerCritic:
		st.feedback = resp.Content
	}
	return resp.Content, nil
}

// draftingBrief is the internal message the drafting agent receives after the
// outer conversation.
func draftingBrief(st *inner) string {
	var sb strings.Builder
	sb.WriteString("[internal] Write your next reply to the customer.")
	if st.notes != "" {
		sb.WriteString("\n\nInternal notes:\n")
		sb.WriteString(st.notes)
	}
	if st.draft != "" {
		sb.WriteString("\n\nYour previous draft:\n")
		sb.WriteString(st.draft)
	}
	if st.feedback != "" {
		sb.WriteString("\n\nReviewer feedback:\n")
		sb.WriteString(st.feedback)
	}
	return sb.String()
}

// FormatTranscript renders turns as "name: content" lines.
func FormatTranscript(turns []types.Turn) string {
	var sb strings.Builder
	for i, t := range turns {
		if i > 0 {
			sb.WriteByte('\n')
		}
		who := t.Name
		if who == "" {
			who = t.Role
		}
		sb.WriteString(who)
		sb.WriteString(": ")
		sb.WriteString(t.Content)
	}
	return sb.String()
}
