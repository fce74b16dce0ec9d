package corpus

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"dialogsynth/internal/logger"
	"dialogsynth/internal/types"
)

// DefaultPattern matches the files written by the simulator.
const DefaultPattern = "conversations*.json"

// Conversation is one simulated conversation as stored on disk. It is kept as
// a generic document so that fields this package does not know survive a
// rewrite.
type Conversation map[string]any

func (c Conversation) CallID() string {
	s, _ := c[keyCallID].(string)
	return s
}

// Setting reads a string from input_settings.
func (c Conversation) Setting(key string) string {
	settings, _ := c["input_settings"].(map[string]any)
	s, _ := settings[key].(string)
	return s
}

func (c Conversation) MediaType() string {
	return c.Setting("selected_media_type")
}

// Messages returns the raw message objects.
func (c Conversation) Messages() []map[string]any {
	raw, _ := c["messages"].([]any)
	out := make([]map[string]any, 0, len(raw))
	for _, m := range raw {
		if msg, ok := m.(map[string]any); ok {
			out = append(out, msg)
		}
	}
	return out
}

// Turns decodes the messages as transcript turns.
func (c Conversation) Turns() []types.Turn {
	msgs := c.Messages()
	out := make([]types.Turn, 0, len(msgs))
	for _, m := range msgs {
		role, _ := m["role"].(string)
		name, _ := m["name"].(string)
		content, _ := m["content"].(string)
		out = append(out, types.Turn{Role: role, Name: name, Content: content})
	}
	return out
}

// Rating returns the stored llm_rating, if any.
func (c Conversation) Rating() (float64, bool) {
	f, ok := c[keyRating].(float64)
	return f, ok
}

const (
	keyCallID       = "call_id"
	keyRating       = "llm_rating"
	keyRatingParsed = "llm_rating_parsed"
)

// readConversations decodes a file holding a JSON array of conversations.
func readConversations(path string) ([]Conversation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var out []Conversation
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return out, nil
}

// LoadConversations reads every file in dir matching pattern and concatenates
// the records. A non-empty mediaType keeps only exact matches of
// input_settings.selected_media_type. Unreadable files are logged and skipped.
func LoadConversations(dir, pattern, mediaType string, log *logger.Logger) ([]Conversation, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	entry := log.WithField("component", "corpus").WithField("dir", dir)

	files, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, fmt.Errorf("bad pattern %q: %w", pattern, err)
	}
	sort.Strings(files)
	entry.WithField("files", len(files)).Info("found conversation files")

	var all []Conversation
	for _, f := range files {
		convs, err := readConversations(f)
		if err != nil {
			entry.WithError(err).WithField("file", f).Warn("skipping unreadable file")
			continue
		}
		if mediaType != "" {
			kept := convs[:0]
			for _, c := range convs {
				if c.MediaType() == mediaType {
					kept = append(kept, c)
				}
			}
			convs = kept
		}
		entry.WithField("file", filepath.Base(f)).WithField("conversations", len(convs)).Debug("loaded conversations")
		all = append(all, convs...)
	}
	entry.WithField("conversations", len(all)).Info("loaded all conversations")
	return all, nil
}
