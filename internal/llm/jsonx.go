package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// MalformedResponseError is returned when a reply that must be JSON is not.
type MalformedResponseError struct {
	Content string
	Err     error
}

func (e *MalformedResponseError) Error() string {
	snippet := e.Content
	if len(snippet) > 200 {
		snippet = snippet[:200] + "..."
	}
	if e.Err != nil {
		return fmt.Sprintf("malformed model response: %v: %q", e.Err, snippet)
	}
	return fmt.Sprintf("malformed model response: no JSON object found: %q", snippet)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// InvokeJSON sends a system + user exchange in JSON mode and parses the reply
// into a JSON object.
func InvokeJSON(ctx context.Context, c Client, system, user string, opts ...CallOption) (map[string]any, *Response, error) {
	resp, err := Text(ctx, c, system, user, append([]CallOption{WithJSONMode()}, opts...)...)
	if err != nil {
		return nil, nil, err
	}
	doc, err := ParseJSONObject(resp.Content)
	if err != nil {
		return nil, resp, err
	}
	return doc, resp, nil
}

// ParseJSONObject extracts and decodes the first JSON object in content.
func ParseJSONObject(content string) (map[string]any, error) {
	raw := ExtractJSON(content)
	if raw == "" {
		return nil, &MalformedResponseError{Content: content}
	}
	var doc map[string]any
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, &MalformedResponseError{Content: content, Err: err}
	}
	return doc, nil
}

// ExtractJSON finds the first balanced JSON object in a string and returns it.
// A markdown fence wrapping the whole reply is stripped first; fences inside
// string values are left alone.
func ExtractJSON(s string) string {
	if s == "" {
		return ""
	}

	// normalize newlines
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = stripFence(s)

	start := strings.Index(s, "{")
	if start == -1 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		ch := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return strings.TrimSpace(s[start : i+1])
			}
		}
	}

	// no balanced found
	return ""
}

// stripFence removes a leading ```lang line and a trailing ``` from the
// trimmed reply.
func stripFence(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		if i := strings.IndexByte(s, '\n'); i >= 0 {
			s = s[i+1:]
		} else {
			s = strings.TrimPrefix(s, "```")
		}
	}
	return strings.TrimSuffix(strings.TrimSpace(s), "```")
}
