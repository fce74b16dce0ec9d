// Package prompt holds the two-part (system + user) prompt templates and binds
// named values into them.
package prompt

import (
	"fmt"
	"sort"
	"strings"

	"dialogsynth/internal/llm"
)

// Bindings maps placeholder names to the text substituted for {name}.
type Bindings map[string]string

// Template is a system/user prompt pair. Only the names listed in Placeholders
// are substituted, so literal braces in embedded JSON are left untouched.
type Template struct {
	Name         string
	System       string
	User         string
	Placeholders []string
}

// MissingBindingsError lists the placeholders that had no value.
type MissingBindingsError struct {
	Template string
	Missing  []string
}

func (e *MissingBindingsError) Error() string {
	return fmt.Sprintf("template %s: unresolved placeholders: %s", e.Template, strings.Join(e.Missing, ", "))
}

// Render substitutes every declared placeholder in a single pass. Bound values
// are never re-scanned, and extra bindings are ignored.
func (t Template) Render(b Bindings) (system, user string, err error) {
	var missing []string
	pairs := make([]string, 0, 2*len(t.Placeholders))
	for _, name := range t.Placeholders {
		v, ok := b[name]
		if !ok {
			missing = append(missing, name)
			continue
		}
		pairs = append(pairs, "{"+name+"}", v)
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return "", "", &MissingBindingsError{Template: t.Name, Missing: missing}
	}

	r := strings.NewReplacer(pairs...)
	return strings.TrimSpace(r.Replace(t.System)), strings.TrimSpace(r.Replace(t.User)), nil
}

// Messages renders the template into chat messages. An empty part is omitted.
func (t Template) Messages(b Bindings) ([]llm.Message, error) {
	system, user, err := t.Render(b)
	if err != nil {
		return nil, err
	}
	return Messages(system, user), nil
}

// Messages builds the system + user message list.
func Messages(system, user string) []llm.Message {
	msgs := make([]llm.Message, 0, 2)
	if system != "" {
		msgs = append(msgs, llm.Message{Role: llm.RoleSystem, Content: system})
	}
	if user != "" {
		msgs = append(msgs, llm.Message{Role: llm.RoleUser, Content: user})
	}
	return msgs
}

// Merge combines bindings; later maps win.
func Merge(maps ...Bindings) Bindings {
	out := Bindings{}
	for _, m := range maps {
		for k, v := range m {
			out[k] = v
		}
	}
	return out
}
