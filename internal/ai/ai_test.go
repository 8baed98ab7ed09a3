package ai

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSONArray(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		wantOK bool
		want   string
	}{
		{name: "plain array", input: `[{"a":1}]`, wantOK: true, want: `[{"a":1}]`},
		{name: "json fence", input: "```json\n[1,2,3]\n```", wantOK: true, want: `[1,2,3]`},
		{name: "bare fence", input: "```[1]```", wantOK: true, want: `[1]`},
		{name: "prose around", input: "Here are the transfers: [{\"x\":\"y\"}] hope it helps", wantOK: true, want: `[{"x":"y"}]`},
		{name: "nested arrays", input: `result [[1],[2]] done`, wantOK: true, want: `[[1],[2]]`},
		{name: "no array", input: `{"a":1}`, wantOK: false},
		{name: "invalid json", input: `[not json]`, wantOK: false},
		{name: "closing before opening", input: `] oops [`, wantOK: false},
		{name: "empty", input: ``, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, ok := ExtractJSONArray(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.JSONEq(t, tt.want, string(raw))
			}
		})
	}
}

func TestDecodeFirstArray(t *testing.T) {
	var out []map[string]int

	ok := DecodeFirstArray([]string{"", "no data here", `[{"n":1}]`, `[{"n":2}]`}, &out)
	require.True(t, ok)
	require.Len(t, out, 1)
	assert.Equal(t, 1, out[0]["n"])

	var empty []map[string]int
	assert.False(t, DecodeFirstArray([]string{"nothing", ""}, &empty))

	// type mismatch falls through to the next candidate
	var typed []struct {
		N int `json:"n"`
	}
	ok = DecodeFirstArray([]string{`["a"]`, `[{"n":5}]`}, &typed)
	require.True(t, ok)
	assert.Equal(t, 5, typed[0].N)
}

func TestMessageResponse_Helpers(t *testing.T) {
	body := `{
		"id": "msg_1",
		"content": [
			{"type": "text", "text": "Let me query that."},
			{"type": "mcp_tool_use", "name": "explorer_query"},
			{"type": "mcp_tool_result", "content": [{"type": "text", "text": "[{\"a\":1}]"}]},
			{"type": "mcp_tool_use", "name": "explorer_query"},
			{"type": "mcp_tool_result", "content": "plain string result"},
			{"type": "mcp_tool_result", "content": []},
			{"type": "text", "text": "Done."}
		]
	}`

	var resp MessageResponse
	require.NoError(t, json.Unmarshal([]byte(body), &resp))

	assert.Equal(t, []string{"Let me query that.", "Done."}, resp.Texts())
	assert.Equal(t, []string{`[{"a":1}]`, "plain string result"}, resp.ToolResultTexts())
	assert.Equal(t, 2, resp.Count(BlockMCPToolUse))
	assert.Equal(t, 3, resp.Count(BlockMCPToolResult))
}

func TestMessageRequest_OmitsEmptyFields(t *testing.T) {
	req := MessageRequest{
		Model:     "claude-sonnet-4-20250514",
		MaxTokens: 100,
		Messages:  []Message{{Role: "user", Content: "hi"}},
	}

	b, err := json.Marshal(req)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "mcp_servers")
	assert.NotContains(t, string(b), "system")
}
