package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
)

// Responder produces the mock reply for a request.
type Responder func(messages []Message, o CallOptions) (string, error)

// MockClient answers deterministically without network access.
type MockClient struct {
	model     string
	responder Responder
}

// NewMock returns an offline client. A nil responder uses DefaultMockResponder.
func NewMock(model string, responder Responder) *MockClient {
	if responder == nil {
		responder = DefaultMockResponder
	}
	return &MockClient{model: model, responder: responder}
}

func (c *MockClient) Chat(ctx context.Context, messages []Message, opts ...CallOption) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	content, err := c.responder(messages, ApplyCallOptions(CallOptions{}, opts))
	if err != nil {
		return nil, err
	}
	return &Response{Content: content, Model: c.model}, nil
}

// mockCallScript is shaped like the bundled call script schema.
var mockCallScript = map[string]any{
	"conversation": []map[string]any{
		{"speaker": "Agent", "text": "Guten Tag, Sie sind mit der Kantonalbank verbunden. Wie kann ich Ihnen helfen?"},
		{"speaker": "Client", "text": "Guten Tag, ich habe eine Frage zu meinem Konto."},
		{"speaker": "Agent", "text": "Gerne. Darf ich zuerst Ihre Kundennummer haben?"},
		{"speaker": "Client", "text": "Das ist die 123.456.789.0."},
		{"speaker": "Agent", "text": "Vielen Dank. Ich habe Ihr Anliegen erfasst. Kann ich sonst noch etwas für Sie tun?"},
		{"speaker": "Client", "text": "Nein, danke. Auf Wiederhören."},
	},
	"callback_note": map[string]any{
		"person_number":  "123.456.789.0",
		"phone_number":   "079 111 11 11",
		"message":        "Kundenanliegen aufgenommen und bearbeitet.",
		"resolved_items": "Kontoanfrage",
		"action_items":   nil,
		"wants_callback": false,
		"phone_private":  "0799111010",
		"remark":         nil,
	},
}

// DefaultMockResponder returns a schema-shaped call script in JSON mode. In chat
// mode it replies with a short line and ends with the termination token once
// the conversation has four or more turns.
func DefaultMockResponder(messages []Message, o CallOptions) (string, error) {
	if o.JSONMode {
		b, err := json.Marshal(mockCallScript)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	turns := 0
	for _, m := range messages {
		if m.Role != RoleSystem {
			turns++
		}
	}
	if turns >= 4 {
		return "Vielen Dank für Ihren Anruf. Auf Wiederhören. TERMINATE", nil
	}
	return fmt.Sprintf("Mock reply %d.", turns), nil
}

// ErrScriptExhausted is returned by ScriptedClient when it has no replies left.
var ErrScriptExhausted = errors.New("scripted client has no replies left")

// ScriptedClient replays a fixed list of replies and records every request.
type ScriptedClient struct {
	mu      sync.Mutex
	replies []ScriptedReply
	calls   [][]Message
	options []CallOptions
}

// ScriptedReply is one queued answer; Err takes precedence over Content.
type ScriptedReply struct {
	Content string
	Usage   Usage
	Err     error
}

func NewScripted(replies ...string) *ScriptedClient {
	s := &ScriptedClient{}
	for _, r := range replies {
		s.replies = append(s.replies, ScriptedReply{Content: r})
	}
	return s
}

// Push queues more replies.
func (s *ScriptedClient) Push(replies ...ScriptedReply) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replies = append(s.replies, replies...)
}

func (s *ScriptedClient) Chat(ctx context.Context, messages []Message, opts ...CallOption) (*Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, append([]Message(nil), messages...))
	s.options = append(s.options, ApplyCallOptions(CallOptions{}, opts))
	if len(s.replies) == 0 {
		return nil, ErrScriptExhausted
	}
	next := s.replies[0]
	s.replies = s.replies[1:]
	if next.Err != nil {
		return nil, next.Err
	}
	return &Response{Content: next.Content, Model: "scripted", Usage: next.Usage}, nil
}

// Calls returns a copy of the recorded requests.
func (s *ScriptedClient) Calls() [][]Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([][]Message(nil), s.calls...)
}

// Options returns the resolved call options per request.
func (s *ScriptedClient) Options() []CallOptions {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]CallOptions(nil), s.options...)
}
