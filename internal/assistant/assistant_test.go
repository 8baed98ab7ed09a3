package assistant

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/songzhibin97/chainpulse/internal/ai"
)

type mockChat struct {
	resp *ai.MessageResponse
	err  error
	last *ai.MessageRequest
}

func (m *mockChat) CreateMessage(ctx context.Context, req *ai.MessageRequest) (*ai.MessageResponse, error) {
	m.last = req
	return m.resp, m.err
}

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestAssistant_Ask(t *testing.T) {
	chat := &mockChat{resp: &ai.MessageResponse{Content: []ai.ContentBlock{
		{Type: ai.BlockText, Text: "Let me check."},
		{Type: ai.BlockMCPToolUse, Name: "explorer_run_sql"},
		{Type: ai.BlockMCPToolResult, Content: ai.BlockContent{{Type: ai.BlockText, Text: `[{"project":"uniswap"}]`}}},
		{Type: ai.BlockMCPToolUse, Name: "explorer_run_sql"},
		{Type: ai.BlockText, Text: "Uniswap leads with $3.7B."},
	}}}
	a := New(chat, "claude-sonnet-4-20250514", "https://mcp-oauth.allium.so", discard)

	answer, err := a.Ask(context.Background(), "  "+ExampleQuestions[0]+" ")
	require.NoError(t, err)

	assert.Equal(t, ExampleQuestions[0], answer.Question)
	assert.Equal(t, "Let me check.\nUniswap leads with $3.7B.", answer.Text)
	assert.True(t, answer.HasData)
	assert.Equal(t, 2, answer.ToolCount)
	assert.False(t, answer.Failed)

	require.NotNil(t, chat.last)
	assert.Equal(t, maxTokens, chat.last.MaxTokens)
	assert.True(t, strings.HasPrefix(chat.last.System, "You are an AI assistant connected to Allium"))
	require.Len(t, chat.last.Messages, 1)
	assert.Equal(t, "user", chat.last.Messages[0].Role)
	require.Len(t, chat.last.MCPServers, 1)
	assert.Equal(t, "https://mcp-oauth.allium.so", chat.last.MCPServers[0].URL)
}

func TestAssistant_AskEdgeCases(t *testing.T) {
	tests := []struct {
		name       string
		chat       ai.ChatClient
		wantText   string
		wantFailed bool
	}{
		{
			name:     "no text blocks",
			chat:     &mockChat{resp: &ai.MessageResponse{Content: []ai.ContentBlock{{Type: ai.BlockMCPToolUse}}}},
			wantText: NoResponseText,
		},
		{
			name:       "upstream error",
			chat:       &mockChat{err: errors.New("upstream error: status 529")},
			wantText:   ErrorText,
			wantFailed: true,
		},
		{
			name:       "no client",
			chat:       nil,
			wantText:   ErrorText,
			wantFailed: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			answer, err := New(tt.chat, "m", "", discard).Ask(context.Background(), "How much TVL does Ethereum have?")
			require.NoError(t, err)
			assert.Equal(t, tt.wantText, answer.Text)
			assert.Equal(t, tt.wantFailed, answer.Failed)
			assert.False(t, answer.HasData)
		})
	}
}

func TestAssistant_EmptyQuestion(t *testing.T) {
	chat := &mockChat{}
	_, err := New(chat, "m", "", discard).Ask(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyQuestion)
	assert.Nil(t, chat.last)
}
