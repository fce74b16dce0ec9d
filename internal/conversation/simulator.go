package conversation

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"dialogsynth/internal/dataset"
	"dialogsynth/internal/knowledge"
	"dialogsynth/internal/llm"
	"dialogsynth/internal/logger"
	"dialogsynth/internal/prompt"
	"dialogsynth/internal/scenario"
	"dialogsynth/internal/types"
)

// AgentType selects how the service side is built.
type AgentType string

const (
	AgentSimple        AgentType = "simple"
	AgentRAG           AgentType = "rag"
	AgentSocietyOfMind AgentType = "society_of_mind"
)

func ParseAgentType(s string) (AgentType, error) {
	switch t := AgentType(s); t {
	case AgentSimple, AgentRAG, AgentSocietyOfMind:
		return t, nil
	}
	return "", fmt.Errorf("unknown agent type %q (want simple, rag or society_of_mind)", s)
}

// NeedsKnowledge reports whether the agent type retrieves passages.
func (t AgentType) NeedsKnowledge() bool {
	return t == AgentRAG || t == AgentSocietyOfMind
}

const (
	customerAgentName = "customer_agent"
	serviceAgentName  = "service_agent"
	defaultPassages   = 3
)

// SimulatorOptions configure a batch of simulations.
type SimulatorOptions struct {
	Model          string
	AgentType      AgentType
	Variant        scenario.Variant
	Iterations     int
	MaxRounds      int
	InnerMaxRounds int
	Passages       int
	OutputDir      string
	// ContinueOnError logs a failed conversation and moves on instead of
	// aborting the batch.
	ContinueOnError bool
	Now             func() time.Time
}

// Simulator samples scenarios, runs conversations and saves the records.
type Simulator struct {
	client    llm.Client
	catalog   *prompt.Catalog
	sampler   *scenario.Sampler
	retriever knowledge.Retriever
	engine    *Engine
	opts      SimulatorOptions
	log       *logrus.Entry
	newID     func() string
}

func NewSimulator(client llm.Client, catalog *prompt.Catalog, sampler *scenario.Sampler,
	retriever knowledge.Retriever, opts SimulatorOptions, log *logger.Logger) (*Simulator, error) {
	if opts.AgentType.NeedsKnowledge() && retriever == nil {
		return nil, fmt.Errorf("agent type %s needs a knowledge store", opts.AgentType)
	}
	if opts.Passages <= 0 {
		opts.Passages = defaultPassages
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Simulator{
		client:    client,
		catalog:   catalog,
		sampler:   sampler,
		retriever: retriever,
		engine:    NewEngine(opts.MaxRounds, log),
		opts:      opts,
		log: log.WithFields(map[string]interface{}{
			"component":  "simulator",
			"model":      opts.Model,
			"agent_type": string(opts.AgentType),
			"scenario":   string(opts.Variant),
		}),
		newID: func() string { return uuid.New().String() },
	}, nil
}

// BuildAgents returns [customer, service] for one scenario.
func (s *Simulator) BuildAgents(p types.ScenarioParameters) ([]Agent, error) {
	variant := string(s.opts.Variant)

	customerTmpl, err := s.catalog.Persona(types.RoleCustomer, variant)
	if err != nil {
		return nil, err
	}
	customerSystem, _, err := customerTmpl.Render(prompt.ScenarioBindings(p, types.RoleCustomer))
	if err != nil {
		return nil, err
	}
	customer := NewPersonaAgent(customerAgentName, types.RoleCustomer, customerSystem, s.client)

	if s.opts.AgentType == AgentSocietyOfMind {
		var tmpl SocietyTemplates
		if tmpl.Retrieval, err = s.catalog.Lookup(prompt.KindRetrieval, "", ""); err != nil {
			return nil, err
		}
		if tmpl.Drafting, err = s.catalog.Lookup(prompt.KindDrafting, "", ""); err != nil {
			return nil, err
		}
		if tmpl.Critic, err = s.catalog.Lookup(prompt.KindCritic, "", ""); err != nil {
			return nil, err
		}
		som := NewSocietyOfMind(serviceAgentName, s.client, s.retriever, s.opts.Passages,
			s.opts.InnerMaxRounds, tmpl, p, s.log)
		return []Agent{customer, som}, nil
	}

	serviceTmpl, err := s.catalog.Persona(types.RoleService, variant)
	if err != nil {
		return nil, err
	}
	serviceSystem, _, err := serviceTmpl.Render(prompt.ScenarioBindings(p, types.RoleService))
	if err != nil {
		return nil, err
	}
	service := NewPersonaAgent(serviceAgentName, types.RoleService, serviceSystem, s.client)
	if s.opts.AgentType == AgentRAG {
		return []Agent{customer, NewRetrievalAgent(service, s.retriever, s.opts.Passages)}, nil
	}
	return []Agent{customer, service}, nil
}

// RunOnce simulates one freshly sampled conversation.
func (s *Simulator) RunOnce(ctx context.Context) (*types.SimulationRecord, error) {
	p, err := s.sampler.Sample()
	if err != nil {
		return nil, fmt.Errorf("sample scenario: %w", err)
	}
	s.log.WithFields(map[string]interface{}{
		"topic": p.Topic,
		"task":  p.Task,
		"media": p.MediaType,
	}).Info("scenario sampled")

	agents, err := s.BuildAgents(p)
	if err != nil {
		return nil, err
	}

	initialTmpl, err := s.catalog.Lookup(prompt.KindInitialMessage, string(s.opts.Variant), "")
	if err != nil {
		return nil, err
	}
	initial, err := InitialMessage(ctx, s.client, initialTmpl, p)
	if err != nil {
		return nil, err
	}

	res, err := s.engine.Run(ctx, agents, initial.Content)
	if err != nil {
		return nil, err
	}

	summaryTmpl, err := s.catalog.Lookup(prompt.KindSummary, "", "")
	if err != nil {
		return nil, err
	}
	summary, err := Summarize(ctx, s.client, summaryTmpl, res.Turns)
	if err != nil {
		return nil, err
	}

	return &types.SimulationRecord{
		InputSettings: p,
		Messages:      res.Turns,
		SummaryPrompt: prompt.SummaryPrompt,
		Summary:       summary.Content,
		Cost:          initial.Cost + res.Cost + summary.Cost,
		AgentType:     string(s.opts.AgentType),
		Scenario:      string(s.opts.Variant),
		Model:         s.opts.Model,
		Status:        res.State.String(),
	}, nil
}

// Run simulates opts.Iterations conversations and writes them as one JSON
// array. It returns the output path.
func (s *Simulator) Run(ctx context.Context) (string, []types.SimulationRecord, error) {
	s.log.WithField("iterations", s.opts.Iterations).Info("running conversation simulations")

	records := make([]types.SimulationRecord, 0, s.opts.Iterations)
	for i := 0; i < s.opts.Iterations; i++ {
		if err := ctx.Err(); err != nil {
			return "", nil, err
		}
		rec, err := s.RunOnce(ctx)
		if err != nil {
			if !s.opts.ContinueOnError {
				return "", nil, fmt.Errorf("iteration %d: %w", i+1, err)
			}
			s.log.WithError(err).WithField("iteration", i+1).Warn("conversation failed, continuing")
			continue
		}
		rec.CallID = s.newID()
		s.log.WithFields(map[string]interface{}{
			"iteration": i + 1,
			"call_id":   rec.CallID,
			"turns":     len(rec.Messages),
			"status":    rec.Status,
		}).Info("conversation simulation completed")
		records = append(records, *rec)
	}

	path := s.OutputPath()
	if err := dataset.WriteJSON(path, records); err != nil {
		return "", nil, err
	}
	s.log.WithField("path", path).WithField("conversations", len(records)).Info("conversations saved")
	return path, records, nil
}

// OutputPath is <out>/<scenario>/conversations-<model>-<agent type>-<timestamp>.json.
func (s *Simulator) OutputPath() string {
	model := strings.ReplaceAll(s.opts.Model, "/", "_")
	name := fmt.Sprintf("conversations-%s-%s-%s.json", model, s.opts.AgentType, s.opts.Now().Format(timestampLayout))
	return filepath.Join(s.opts.OutputDir, string(s.opts.Variant), name)
}

const timestampLayout = "20060102_150405"
