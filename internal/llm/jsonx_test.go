package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `{"a":1}`, `{"a":1}`},
		{"fenced", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```\n", `{"a":1}`},
		{"fence inside string", "```json\n{\"text\":\"Code: ```x``` ok\"}\n```", "{\"text\":\"Code: ```x``` ok\"}"},
		{"prose around", "Here you go: {\"a\":{\"b\":2}} thanks", `{"a":{"b":2}}`},
		{"brace in string", `{"a":"x}y"}`, `{"a":"x}y"}`},
		{"escaped quote", `{"a":"say \"}\" now"}`, `{"a":"say \"}\" now"}`},
		{"unbalanced", `{"a":1`, ""},
		{"none", "no json here", ""},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractJSON(tt.in))
		})
	}
}

func TestInvokeJSON(t *testing.T) {
	c := NewScripted("```json\n{\"conversation\":[]}\n```")

	doc, resp, err := InvokeJSON(context.Background(), c, "sys", "user")
	require.NoError(t, err)
	assert.Contains(t, doc, "conversation")
	assert.NotNil(t, resp)

	opts := c.Options()
	require.Len(t, opts, 1)
	assert.True(t, opts[0].JSONMode)
}

func TestParseJSONObjectKeepsBackticksInValues(t *testing.T) {
	doc, err := ParseJSONObject("{\"text\":\"Code: ```x``` ok\"}")
	require.NoError(t, err)
	assert.Equal(t, "Code: ```x``` ok", doc["text"])
}

func TestInvokeJSONMalformed(t *testing.T) {
	c := NewScripted("I cannot do that.", `{"a": tru}`)

	_, _, err := InvokeJSON(context.Background(), c, "", "x")
	var malformed *MalformedResponseError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, "I cannot do that.", malformed.Content)

	_, _, err = InvokeJSON(context.Background(), c, "", "x")
	require.ErrorAs(t, err, &malformed)
	assert.Error(t, malformed.Unwrap())
}

func TestInvokeJSONPropagatesClientError(t *testing.T) {
	boom := errors.New("boom")
	c := &ScriptedClient{}
	c.Push(ScriptedReply{Err: boom})

	_, _, err := InvokeJSON(context.Background(), c, "", "x")
	assert.ErrorIs(t, err, boom)
}
