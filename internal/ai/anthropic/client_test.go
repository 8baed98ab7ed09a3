package anthropic

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/songzhibin97/chainpulse/internal/ai"
)

const okResponse = `{"id":"msg_1","content":[{"type":"text","text":"hello"}]}`

func newTestClient(proxyURL, upstreamURL string) *Client {
	c := NewClient("server-key", proxyURL, upstreamURL, time.Second, slog.New(slog.NewTextHandler(io.Discard, nil)))
	c.httpClient = resty.New()
	return c
}

func testRequest(withMCP bool) *ai.MessageRequest {
	req := &ai.MessageRequest{
		Model:     "claude-sonnet-4-20250514",
		MaxTokens: 100,
		Messages:  []ai.Message{{Role: "user", Content: "hi"}},
	}
	if withMCP {
		req.MCPServers = []ai.MCPServer{{Type: "url", URL: "https://mcp-oauth.allium.so", Name: "allium"}}
	}
	return req
}

func TestClient_CreateMessage(t *testing.T) {
	tests := []struct {
		name           string
		proxyStatus    int // 0 means no proxy configured
		upstreamStatus int
		upstreamBody   string
		withMCP        bool
		expectError    bool
		wantProxyHits  int32
		wantDirectHits int32
	}{
		{
			name:           "proxy succeeds",
			proxyStatus:    http.StatusOK,
			upstreamStatus: http.StatusOK,
			upstreamBody:   okResponse,
			wantProxyHits:  1,
			wantDirectHits: 0,
		},
		{
			name:           "proxy fails falls back to direct",
			proxyStatus:    http.StatusBadGateway,
			upstreamStatus: http.StatusOK,
			upstreamBody:   okResponse,
			withMCP:        true,
			wantProxyHits:  1,
			wantDirectHits: 1,
		},
		{
			name:           "no proxy configured",
			upstreamStatus: http.StatusOK,
			upstreamBody:   okResponse,
			wantDirectHits: 1,
		},
		{
			name:           "upstream error propagates",
			proxyStatus:    http.StatusNotFound,
			upstreamStatus: http.StatusUnauthorized,
			upstreamBody:   `{"type":"error","error":{"type":"authentication_error","message":"invalid x-api-key"}}`,
			expectError:    true,
			wantProxyHits:  1,
			wantDirectHits: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var proxyHits, directHits int32

			upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				atomic.AddInt32(&directHits, 1)
				assert.Equal(t, "server-key", r.Header.Get("x-api-key"))
				assert.Equal(t, "2023-06-01", r.Header.Get("anthropic-version"))
				if tt.withMCP {
					assert.Equal(t, mcpBeta, r.Header.Get("anthropic-beta"))
				} else {
					assert.Empty(t, r.Header.Get("anthropic-beta"))
				}
				w.WriteHeader(tt.upstreamStatus)
				_, _ = w.Write([]byte(tt.upstreamBody))
			}))
			defer upstream.Close()

			proxyURL := ""
			if tt.proxyStatus != 0 {
				proxy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					atomic.AddInt32(&proxyHits, 1)
					// the proxy holds the credentials, the client must not send them
					assert.Empty(t, r.Header.Get("x-api-key"))
					w.WriteHeader(tt.proxyStatus)
					if tt.proxyStatus == http.StatusOK {
						_, _ = w.Write([]byte(okResponse))
					}
				}))
				defer proxy.Close()
				proxyURL = proxy.URL
			}

			client := newTestClient(proxyURL, upstream.URL)
			resp, err := client.CreateMessage(context.Background(), testRequest(tt.withMCP))

			assert.Equal(t, tt.wantProxyHits, atomic.LoadInt32(&proxyHits))
			assert.Equal(t, tt.wantDirectHits, atomic.LoadInt32(&directHits))

			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "invalid x-api-key")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, []string{"hello"}, resp.Texts())
		})
	}
}

func TestClient_ProxyUnreachable(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(okResponse))
	}))
	defer upstream.Close()

	// nothing listens on a closed server's address
	dead := httptest.NewServer(http.NotFoundHandler())
	deadURL := dead.URL
	dead.Close()

	client := newTestClient(deadURL, upstream.URL)
	resp, err := client.CreateMessage(context.Background(), testRequest(false))
	require.NoError(t, err)
	assert.Equal(t, "msg_1", resp.ID)
}

func TestClient_Forward(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"model":"m","max_tokens":1,"messages":[]}`, string(body))
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"slow down"}}`))
	}))
	defer upstream.Close()

	client := newTestClient("", upstream.URL)
	status, body, err := client.Forward(context.Background(), []byte(`{"model":"m","max_tokens":1,"messages":[]}`))
	require.NoError(t, err)
	assert.Equal(t, http.StatusTooManyRequests, status)
	assert.Contains(t, string(body), "slow down")
}

func TestHasMCPServers(t *testing.T) {
	assert.True(t, hasMCPServers([]byte(`{"mcp_servers":[{"type":"url"}]}`)))
	assert.False(t, hasMCPServers([]byte(`{"mcp_servers":[]}`)))
	assert.False(t, hasMCPServers([]byte(`{}`)))
	assert.False(t, hasMCPServers([]byte(`not json`)))
}
