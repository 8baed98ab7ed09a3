package anthropic

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/songzhibin97/chainpulse/internal/ai"
	"github.com/songzhibin97/chainpulse/internal/utils/request"
)

const (
	DefaultUpstreamURL = "https://api.anthropic.com/v1/messages"
	apiVersion         = "2023-06-01"
	mcpBeta            = "mcp-client-2025-04-04"
)

// Client calls the messages API through the same-origin proxy first and falls back to
// the upstream endpoint when the proxy is missing or fails.
type Client struct {
	proxyURL    string
	upstreamURL string
	apiKey      string
	httpClient  *resty.Client
	logger      *slog.Logger
}

func NewClient(apiKey, proxyURL, upstreamURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if upstreamURL == "" {
		upstreamURL = DefaultUpstreamURL
	}
	return &Client{
		proxyURL:    proxyURL,
		upstreamURL: upstreamURL,
		apiKey:      apiKey,
		httpClient:  request.New(timeout),
		logger:      logger,
	}
}

// CreateMessage implements ai.ChatClient
func (c *Client) CreateMessage(ctx context.Context, req *ai.MessageRequest) (*ai.MessageResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	raw, err := c.call(ctx, body)
	if err != nil {
		return nil, err
	}

	var resp ai.MessageResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &resp, nil
}

func (c *Client) call(ctx context.Context, body []byte) ([]byte, error) {
	if c.proxyURL != "" {
		resp, err := c.httpClient.R().
			SetContext(ctx).
			SetHeader("Content-Type", "application/json").
			SetBody(body).
			Post(c.proxyURL)
		if err == nil && resp.IsSuccess() {
			return resp.Body(), nil
		}
		c.logger.Debug("ai proxy unavailable, calling upstream directly", "proxy", c.proxyURL, "err", err)
	}

	status, raw, err := c.Forward(ctx, body)
	if err != nil {
		return nil, err
	}
	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("upstream error: status %d: %s", status, upstreamMessage(raw))
	}

	return raw, nil
}

// Forward posts body to the upstream endpoint with server-side credentials and returns
// the upstream status and body unchanged. Only transport failures are errors.
func (c *Client) Forward(ctx context.Context, body []byte) (int, []byte, error) {
	r := c.httpClient.R().
		SetContext(ctx).
		SetHeader("x-api-key", c.apiKey).
		SetHeader("anthropic-version", apiVersion).
		SetHeader("Content-Type", "application/json").
		SetBody(body)
	if hasMCPServers(body) {
		r.SetHeader("anthropic-beta", mcpBeta)
	}

	resp, err := r.Post(c.upstreamURL)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to execute request: %w", err)
	}

	return resp.StatusCode(), resp.Body(), nil
}

func hasMCPServers(body []byte) bool {
	var probe struct {
		MCPServers []json.RawMessage `json:"mcp_servers"`
	}
	if err := json.Unmarshal(body, &probe); err != nil {
		return false
	}
	return len(probe.MCPServers) > 0
}

func upstreamMessage(body []byte) string {
	var e struct {
		Error struct {
			Type    string `json:"type"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &e); err == nil && e.Error.Message != "" {
		return e.Error.Message
	}
	if len(body) > 200 {
		return string(body[:200])
	}
	return string(body)
}
