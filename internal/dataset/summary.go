package dataset

import (
	"fmt"
	"sort"

	"dialogsynth/internal/logger"
	"dialogsynth/internal/types"
)

type CorpusSummary struct {
	TotalCalls int            `json:"total_calls"`
	Resolved   int            `json:"resolved"`
	Unresolved int            `json:"unresolved"`
	ByTopic    map[string]int `json:"by_topic"`
	ByModel    map[string]int `json:"by_model"`
	ByLanguage map[string]int `json:"by_instruct_lang"`
	TopTopics  []string       `json:"top_topics"`
}

// Summarize counts a generated corpus by its metadata keys.
func Summarize(calls []types.CallScript, log *logger.Logger) CorpusSummary {
	entry := log.WithField("component", "dataset.summary")

	s := CorpusSummary{
		TotalCalls: len(calls),
		ByTopic:    map[string]int{},
		ByModel:    map[string]int{},
		ByLanguage: map[string]int{},
	}
	for _, c := range calls {
		if resolved, ok := c[types.KeyResolved].(bool); ok {
			if resolved {
				s.Resolved++
			} else {
				s.Unresolved++
			}
		}
		if v := stringField(c, types.KeyTopic); v != "" {
			s.ByTopic[v]++
		}
		if v := stringField(c, types.KeyModel); v != "" {
			s.ByModel[v]++
		}
		if v := stringField(c, types.KeyInstructLang); v != "" {
			s.ByLanguage[v]++
		}
	}

	type tc struct {
		t string
		c int
	}
	var arr []tc
	for k, v := range s.ByTopic {
		arr = append(arr, tc{k, v})
	}
	sort.Slice(arr, func(i, j int) bool {
		if arr[i].c != arr[j].c {
			return arr[i].c > arr[j].c
		}
		return arr[i].t < arr[j].t
	})
	for i := 0; i < len(arr) && i < 5; i++ {
		s.TopTopics = append(s.TopTopics, arr[i].t)
	}

	entry.WithFields(map[string]interface{}{
		"total_calls": s.TotalCalls,
		"resolved":    s.Resolved,
		"unresolved":  s.Unresolved,
		"topics":      len(s.ByTopic),
	}).Info("corpus summarization complete")
	return s
}

func stringField(c types.CallScript, key string) string {
	v, ok := c[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
