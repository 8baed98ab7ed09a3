package openai

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/songzhibin97/chainpulse/internal/ai"
)

// Client implements ai.ChatClient on an OpenAI-compatible chat completions API.
// MCP servers are not supported by this provider and are dropped from requests.
type Client struct {
	client *openai.Client
	model  string
}

// NewClient creates a new OpenAI client. baseURL may point at any compatible endpoint.
func NewClient(apiKey, model, baseURL string) *Client {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	if model == "" || strings.HasPrefix(model, "claude-") {
		model = openai.GPT4o // 默认使用GPT-4o
	}
	return &Client{
		client: openai.NewClientWithConfig(config),
		model:  model,
	}
}

// SupportsMCP reports false: chat completions cannot attach MCP servers.
func (c *Client) SupportsMCP() bool {
	return false
}

// CreateMessage implements ai.ChatClient
func (c *Client) CreateMessage(ctx context.Context, req *ai.MessageRequest) (*ai.MessageResponse, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(req.Messages)+1)
	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}
	for _, m := range req.Messages {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	resp, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model:       c.model,
			Messages:    messages,
			MaxTokens:   req.MaxTokens,
			Temperature: 0.3, // 使用较低的temperature以获得更稳定的输出
		},
	)
	if err != nil {
		return nil, fmt.Errorf("openai api error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from openai: %w", ai.ErrEmptyResponse)
	}

	return &ai.MessageResponse{
		ID:         resp.ID,
		Model:      resp.Model,
		StopReason: string(resp.Choices[0].FinishReason),
		Content: []ai.ContentBlock{
			{Type: ai.BlockText, Text: resp.Choices[0].Message.Content},
		},
	}, nil
}
