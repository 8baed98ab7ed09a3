package request

import (
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// New returns a resty client honoring HTTP(S)_PROXY (通用客户端, 适配环境变量代理). Retries are left to the caller's
// next tick, the upstream calls here are all best-effort.
func New(timeout time.Duration) *resty.Client {
	c := resty.New().SetTransport(&http.Transport{
		Proxy: http.ProxyFromEnvironment, // 通用适配环境变量
	})
	if timeout > 0 {
		c.SetTimeout(timeout)
	}
	return c.SetHeader("Content-Type", "application/json")
}
