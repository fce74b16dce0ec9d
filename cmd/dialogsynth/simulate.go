package main

import (
	"github.com/spf13/cobra"

	"dialogsynth/internal/conversation"
	"dialogsynth/internal/generation"
	"dialogsynth/internal/knowledge"
	"dialogsynth/internal/prompt"
	"dialogsynth/internal/scenario"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Simulate conversations between a customer and a service agent",
	Long: `Simulate samples a scenario per iteration, lets a customer agent and a service
agent talk in turns until one of them ends with TERMINATE or the round limit is
reached, summarizes the conversation and saves all conversations of the run to
<output-dir>/<scenario>/conversations-<model>-<agent-type>-<timestamp>.json.

Agent types:
  simple           persona prompt only
  rag              persona prompt grounded with knowledge passages
  society_of_mind  inner retrieval, drafting and critic agents per reply

Examples:
  dialogsynth simulate --iterations 5 --agent-type rag --scenario default
  dialogsynth simulate --model mock --scenario aggressive_en`,
	RunE: runSimulate,
}

func init() {
	rootCmd.AddCommand(simulateCmd)

	f := simulateCmd.Flags()
	f.Int("iterations", 0, "Number of conversations to simulate")
	f.String("agent-type", "", "Service agent type: simple, rag, society_of_mind")
	f.String("scenario", "", "Scenario: default, aggressive, aggressive_en")
	f.Int("max-rounds", 0, "Maximum turns per conversation, initial message included")
	f.String("config-dir", "", "Directory with the scenario YAML files")
	f.String("output-dir", "", "Root directory for simulation outputs")
	f.String("knowledge-dir", "", "Directory of .md/.txt knowledge documents")
	f.Bool("continue-on-error", false, "Log failed conversations and keep going")
	f.Int64("seed", 0, "Sampling seed, 0 for random")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	cfg := state.cfg.Simulation
	f := cmd.Flags()
	overrideInt(f, "iterations", &cfg.Iterations)
	overrideString(f, "agent-type", &cfg.AgentType)
	overrideString(f, "scenario", &cfg.Scenario)
	overrideInt(f, "max-rounds", &cfg.MaxRounds)
	overrideString(f, "config-dir", &cfg.ConfigDir)
	overrideString(f, "output-dir", &cfg.OutputDir)
	overrideString(f, "knowledge-dir", &cfg.KnowledgeDir)
	overrideBool(f, "continue-on-error", &cfg.ContinueOnError)
	overrideInt64(f, "seed", &cfg.Seed)

	variant, err := scenario.ParseVariant(cfg.Scenario)
	if err != nil {
		return err
	}
	agentType, err := conversation.ParseAgentType(cfg.AgentType)
	if err != nil {
		return err
	}

	collections, err := scenario.LoadCollections(cfg.ConfigDir, variant)
	if err != nil {
		return err
	}
	sampler := scenario.NewSampler(collections, variant, generation.NewRand(cfg.Seed))

	var retriever knowledge.Retriever
	if agentType.NeedsKnowledge() {
		store, err := knowledge.Open(cfg.KnowledgeDB, state.log)
		if err != nil {
			return err
		}
		defer store.Close()
		if _, err := store.EnsurePopulated(cmd.Context(), cfg.KnowledgeDir); err != nil {
			return err
		}
		retriever = store
	}

	client, err := state.gateway.Client(state.cfg.Model.Name)
	if err != nil {
		return err
	}

	sim, err := conversation.NewSimulator(client, prompt.Default(), sampler, retriever, conversation.SimulatorOptions{
		Model:           state.cfg.Model.Name,
		AgentType:       agentType,
		Variant:         variant,
		Iterations:      cfg.Iterations,
		MaxRounds:       cfg.MaxRounds,
		InnerMaxRounds:  cfg.InnerMaxRounds,
		OutputDir:       cfg.OutputDir,
		ContinueOnError: cfg.ContinueOnError,
	}, state.log)
	if err != nil {
		return err
	}
	_, _, err = sim.Run(cmd.Context())
	return err
}
