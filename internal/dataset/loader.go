// Package dataset reads and writes the JSON and spreadsheet resources of a run.
package dataset

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"dialogsynth/internal/types"
)

// ResourceLoadError is a missing or malformed input resource. It is fatal at startup.
type ResourceLoadError struct {
	Path string
	Err  error
}

func (e *ResourceLoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

func (e *ResourceLoadError) Unwrap() error { return e.Err }

// ReadJSON decodes the file at path into v.
func ReadJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &ResourceLoadError{Path: path, Err: err}
	}
	if err := json.Unmarshal(data, v); err != nil {
		return &ResourceLoadError{Path: path, Err: err}
	}
	return nil
}

// WriteJSON writes v as indented JSON, creating parent directories. Non-ASCII
// text is written as-is.
func WriteJSON(path string, v any) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}

// LoadCalls reads a {"calls": [...]} document.
func LoadCalls(path string) (types.CallCorpus, error) {
	var c types.CallCorpus
	if err := ReadJSON(path, &c); err != nil {
		return types.CallCorpus{}, err
	}
	if c.Calls == nil {
		return types.CallCorpus{}, &ResourceLoadError{Path: path, Err: errors.New(`missing "calls" array`)}
	}
	return c, nil
}

// LoadTopics reads the topic pool from a {"topics": [...]} JSON file or from
// the first sheet of an .xlsx workbook.
func LoadTopics(path string) ([]string, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return loadTopicsXLSX(path)
	}
	var t types.TopicList
	if err := ReadJSON(path, &t); err != nil {
		return nil, err
	}
	if t.Topics == nil {
		return nil, &ResourceLoadError{Path: path, Err: errors.New(`missing "topics" array`)}
	}
	return t.Topics, nil
}

// loadTopicsXLSX auto-detects the topic column by header heuristics
func loadTopicsXLSX(path string) ([]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &ResourceLoadError{Path: path, Err: fmt.Errorf("open file: %w", err)}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &ResourceLoadError{Path: path, Err: errors.New("no sheets")}
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, &ResourceLoadError{Path: path, Err: fmt.Errorf("read rows: %w", err)}
	}
	if len(rows) <= 1 {
		return nil, &ResourceLoadError{Path: path, Err: errors.New("no data rows")}
	}

	// find topic column
	topicIdx := -1
	for i, h := range rows[0] {
		l := strings.ToLower(strings.TrimSpace(h))
		if strings.Contains(l, "topic") || strings.Contains(l, "thema") {
			topicIdx = i
			break
		}
	}
	// fallback: first column
	if topicIdx == -1 {
		topicIdx = 0
	}

	var out []string
	for _, r := range rows[1:] {
		if topicIdx >= len(r) {
			continue
		}
		if t := strings.TrimSpace(r[topicIdx]); t != "" {
			out = append(out, t)
		}
	}
	return out, nil
}
