// Package corpus merges, scores, filters and cleans the generated corpora.
package corpus

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"dialogsynth/internal/dataset"
	"dialogsynth/internal/logger"
	"dialogsynth/internal/types"
)

// AggregateCalls concatenates the "calls" arrays of every *.json file directly in
// folder into one {"calls": [...]} document at out. There is no deduplication.
// It returns the number of calls written.
func AggregateCalls(folder, out string, log *logger.Logger) (int, error) {
	entry := log.WithField("component", "aggregate").WithField("folder", folder)

	files, err := filepath.Glob(filepath.Join(folder, "*.json"))
	if err != nil {
		return 0, fmt.Errorf("list %s: %w", folder, err)
	}
	sort.Strings(files)

	outAbs, _ := filepath.Abs(out)
	all := make([]types.CallScript, 0)
	for _, f := range files {
		if abs, _ := filepath.Abs(f); abs == outAbs {
			continue
		}
		info, err := os.Stat(f)
		if err != nil || info.IsDir() {
			continue
		}
		c, err := dataset.LoadCalls(f)
		if err != nil {
			return 0, err
		}
		entry.WithField("file", filepath.Base(f)).WithField("calls", len(c.Calls)).Debug("aggregating file")
		all = append(all, c.Calls...)
	}

	if err := dataset.WriteJSON(out, types.CallCorpus{Calls: all}); err != nil {
		return 0, err
	}
	entry.WithField("files", len(files)).WithField("calls", len(all)).Info("aggregation complete")
	return len(all), nil
}
