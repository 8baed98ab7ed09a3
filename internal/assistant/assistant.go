package assistant

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/songzhibin97/chainpulse/internal/ai"
)

const (
	maxTokens = 2000

	NoResponseText = "No response received."
	ErrorText      = "Error connecting to Allium. Please try again."
)

var ErrEmptyQuestion = errors.New("question is empty")

const systemPrompt = `You are an AI assistant connected to Allium's blockchain data platform via MCP. You have access to 130+ blockchains of data. When answering questions, query the Allium database using the MCP tools available to you. Key tables include:
- crosschain.metrics.overview (chain activity, TVL, DEX volume, addresses, fees)
- crosschain.metrics.dex_overview (DEX-specific metrics by project)
- crosschain.assets.transfers (token transfers with USD values)
- common.identity.address_names (entity labels for addresses)
- crosschain.metrics.stablecoin_volume (stablecoin transfer volumes)

Always provide specific numbers and data. Format large numbers readably (e.g. $1.2B, 394M txns). Be concise but data-rich. If you run a query, summarize the key findings clearly.`

var ExampleQuestions = []string{
	"What are the top 5 DEXes by volume today?",
	"Show me the biggest ETH transfer in the last hour",
	"Which chain has the most active users right now?",
	"What's the total stablecoin volume across all chains today?",
	"How much TVL does Ethereum have?",
}

// Answer 问答结果
type Answer struct {
	Question  string    `json:"question"`
	Text      string    `json:"text"`
	HasData   bool      `json:"has_data"`
	ToolCount int       `json:"tool_count"`
	Failed    bool      `json:"failed,omitempty"`
	Time      time.Time `json:"time"`
}

type Assistant struct {
	chat   ai.ChatClient
	model  string
	mcpURL string
	logger *slog.Logger
}

func New(chat ai.ChatClient, model, mcpURL string, logger *slog.Logger) *Assistant {
	return &Assistant{
		chat:   chat,
		model:  model,
		mcpURL: mcpURL,
		logger: logger,
	}
}

// Ask sends one question to the model with the data platform attached. Upstream
// failures are folded into the answer text; only an empty question is an error.
func (a *Assistant) Ask(ctx context.Context, question string) (*Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, ErrEmptyQuestion
	}

	answer := &Answer{Question: question, Time: time.Now()}

	resp, err := a.send(ctx, question)
	if err != nil {
		a.logger.Error("ask failed", "question", question, "err", err)
		answer.Text = ErrorText
		answer.Failed = true
		return answer, nil
	}

	answer.Text = strings.Join(resp.Texts(), "\n")
	if answer.Text == "" {
		answer.Text = NoResponseText
	}
	answer.HasData = len(resp.ToolResultTexts()) > 0
	answer.ToolCount = resp.Count(ai.BlockMCPToolUse)

	return answer, nil
}

func (a *Assistant) send(ctx context.Context, question string) (*ai.MessageResponse, error) {
	if a.chat == nil {
		return nil, errors.New("no ai client configured")
	}

	req := &ai.MessageRequest{
		Model:     a.model,
		MaxTokens: maxTokens,
		System:    systemPrompt,
		Messages:  []ai.Message{{Role: "user", Content: question}},
	}
	if a.mcpURL != "" {
		req.MCPServers = []ai.MCPServer{{Type: "url", URL: a.mcpURL, Name: "allium"}}
	}

	return a.chat.CreateMessage(ctx, req)
}
