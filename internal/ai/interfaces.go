package ai

import (
	"context"
	"encoding/json"
	"errors"
)

// Content block types returned by the messages API.
const (
	BlockText          = "text"
	BlockMCPToolUse    = "mcp_tool_use"
	BlockMCPToolResult = "mcp_tool_result"
)

// ErrEmptyResponse is returned when the model answered without usable content.
var ErrEmptyResponse = errors.New("empty response from model")

// ChatClient sends a single message exchange to a model provider.
type ChatClient interface {
	CreateMessage(ctx context.Context, req *MessageRequest) (*MessageResponse, error)
}

// MessageRequest 消息请求
type MessageRequest struct {
	Model      string      `json:"model"`
	MaxTokens  int         `json:"max_tokens"`
	System     string      `json:"system,omitempty"`
	Messages   []Message   `json:"messages"`
	MCPServers []MCPServer `json:"mcp_servers,omitempty"`
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// MCPServer is a remote tool server the model may call during the exchange.
type MCPServer struct {
	Type string `json:"type"`
	URL  string `json:"url"`
	Name string `json:"name"`
}

// MessageResponse 模型响应
type MessageResponse struct {
	ID         string         `json:"id,omitempty"`
	Model      string         `json:"model,omitempty"`
	StopReason string         `json:"stop_reason,omitempty"`
	Content    []ContentBlock `json:"content"`
}

type ContentBlock struct {
	Type    string       `json:"type"`
	Text    string       `json:"text,omitempty"`
	Name    string       `json:"name,omitempty"`
	Content BlockContent `json:"content,omitempty"`
}

// BlockContent is the nested content of a tool result. Upstream sends either a
// list of blocks or a plain string.
type BlockContent []ContentBlock

func (b *BlockContent) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*b = BlockContent{{Type: BlockText, Text: s}}
		return nil
	}

	var blocks []ContentBlock
	if err := json.Unmarshal(data, &blocks); err != nil {
		return err
	}
	*b = blocks
	return nil
}

// Texts returns the text of every top-level text block.
func (r *MessageResponse) Texts() []string {
	var out []string
	for _, c := range r.Content {
		if c.Type == BlockText {
			out = append(out, c.Text)
		}
	}
	return out
}

// ToolResultTexts returns the first non-empty text of every MCP tool result.
func (r *MessageResponse) ToolResultTexts() []string {
	var out []string
	for _, c := range r.Content {
		if c.Type != BlockMCPToolResult || len(c.Content) == 0 {
			continue
		}
		if text := c.Content[0].Text; text != "" {
			out = append(out, text)
		}
	}
	return out
}

// Count returns the number of top-level blocks of the given type.
func (r *MessageResponse) Count(blockType string) int {
	n := 0
	for _, c := range r.Content {
		if c.Type == blockType {
			n++
		}
	}
	return n
}
