package main

import (
	"github.com/spf13/cobra"

	"dialogsynth/internal/corpus"
	"dialogsynth/internal/dataset"
	"dialogsynth/internal/prompt"
)

var aggregateCmd = &cobra.Command{
	Use:   "aggregate",
	Short: "Merge every generated call script file of a folder into one corpus",
	RunE:  runAggregate,
}

var filterCmd = &cobra.Command{
	Use:   "filter",
	Short: "Score simulated conversations with a judge model and keep the best",
	Long: `Filter loads simulated conversations, optionally keeps only one media type,
scores each conversation with the judge model on a 1-10 scale and writes the top N
to <output-dir>/filtered_conversations-<timestamp>.json.

Example:
  dialogsynth filter --input-dir agentic_simulation_outputs/default --media-type "phone call" --top-n 20`,
	RunE: runFilter,
}

var cleanupCmd = &cobra.Command{
	Use:   "cleanup [dir]",
	Short: "Add missing call ids, strip TERMINATE tokens and relabel roles in place",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCleanup,
}

func init() {
	rootCmd.AddCommand(aggregateCmd, filterCmd, cleanupCmd)

	aggregateCmd.Flags().String("folder", "", "Folder with generated call script files")
	aggregateCmd.Flags().String("output", "", "Aggregated corpus JSON")
	aggregateCmd.Flags().String("xlsx", "", "Also write a reviewer sheet to this xlsx file")

	f := filterCmd.Flags()
	f.String("input-dir", "", "Directory with conversation files")
	f.String("output-dir", "", "Directory for the filtered corpus")
	f.String("pattern", "", "Glob for conversation files")
	f.String("media-type", "", "Keep only this media type")
	f.Int("top-n", 0, "Number of conversations to keep")
	f.String("judge-model", "", "Model used for scoring")
	f.String("xlsx", "", "Also write the kept conversations to this xlsx file")
}

func runAggregate(cmd *cobra.Command, args []string) error {
	cfg := state.cfg.Generation
	overrideString(cmd.Flags(), "folder", &cfg.OutputFolder)
	overrideString(cmd.Flags(), "output", &cfg.AggregatedJSON)
	xlsx, _ := cmd.Flags().GetString("xlsx")

	if _, err := corpus.AggregateCalls(cfg.OutputFolder, cfg.AggregatedJSON, state.log); err != nil {
		return err
	}
	agg, err := dataset.LoadCalls(cfg.AggregatedJSON)
	if err != nil {
		return err
	}
	summary := dataset.Summarize(agg.Calls, state.log)
	state.log.WithFields(map[string]interface{}{
		"total_calls": summary.TotalCalls,
		"resolved":    summary.Resolved,
		"unresolved":  summary.Unresolved,
		"top_topics":  summary.TopTopics,
	}).Info("corpus summary")

	if xlsx != "" {
		header, rows := dataset.CallsSheet(agg.Calls)
		if err := dataset.WriteSheet(xlsx, "Calls", header, rows); err != nil {
			return err
		}
		state.log.WithField("path", xlsx).Info("reviewer sheet saved")
	}
	return nil
}

func runFilter(cmd *cobra.Command, args []string) error {
	cfg := state.cfg.Filter
	f := cmd.Flags()
	overrideString(f, "input-dir", &cfg.InputDir)
	overrideString(f, "output-dir", &cfg.OutputDir)
	overrideString(f, "pattern", &cfg.Pattern)
	overrideString(f, "media-type", &cfg.MediaType)
	overrideInt(f, "top-n", &cfg.TopN)
	overrideString(f, "judge-model", &cfg.JudgeModel)
	overrideString(f, "xlsx", &cfg.XLSX)

	client, err := state.gateway.Client(cfg.JudgeModel)
	if err != nil {
		return err
	}
	judge, err := corpus.NewJudge(client, prompt.Default())
	if err != nil {
		return err
	}

	res, err := corpus.Filter(cmd.Context(), judge, corpus.FilterOptions{
		InputDir:  cfg.InputDir,
		OutputDir: cfg.OutputDir,
		Pattern:   cfg.Pattern,
		MediaType: cfg.MediaType,
		TopN:      cfg.TopN,
	}, state.log)
	if err != nil {
		return err
	}

	if cfg.XLSX != "" {
		if err := corpus.ExportXLSX(cfg.XLSX, res.Kept); err != nil {
			return err
		}
		state.log.WithField("path", cfg.XLSX).Info("reviewer sheet saved")
	}
	return nil
}

func runCleanup(cmd *cobra.Command, args []string) error {
	dir := state.cfg.Filter.InputDir
	if len(args) == 1 {
		dir = args[0]
	}
	report, err := corpus.Cleanup(dir, state.log)
	if err != nil {
		return err
	}
	state.log.WithFields(map[string]interface{}{
		"files":   report.Files,
		"updated": report.Updated,
		"skipped": report.Skipped,
	}).Info("cleanup finished")
	return nil
}
