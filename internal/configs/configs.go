package configs

import (
	"time"
)

type Config struct {
	// 基础配置
	LogLevel string `json:"log_level" yaml:"log_level"` // debug/info/warn/error
	Proxy    string `json:"proxy" yaml:"proxy"`         // HTTP(S) 代理

	Server ServerConfig `json:"server" yaml:"server"`

	// Allium 数据接口
	Allium AlliumConfig `json:"allium" yaml:"allium"`

	// AI 模型参数
	AIConfig AIConfig `json:"ai_config" yaml:"ai_config"`

	// 价格轮询
	Prices PricesConfig `json:"prices" yaml:"prices"`

	// 巨鲸动态
	Whales WhalesConfig `json:"whales" yaml:"whales"`

	// 共享存储
	Storage StorageConfig `json:"storage" yaml:"storage"`
}

type ServerConfig struct {
	Port           int      `json:"port" yaml:"port"`
	Host           string   `json:"host" yaml:"host"`
	AllowedOrigins []string `json:"allowed_origins" yaml:"allowed_origins"`
}

type AlliumConfig struct {
	BaseURL string `json:"base_url" yaml:"base_url"` // API 地址
	APIKey  string `json:"api_key" yaml:"api_key"`   // X-API-KEY
	Timeout string `json:"timeout" yaml:"timeout"`   // 请求超时
}

type AIConfig struct {
	Provider    string `json:"provider" yaml:"provider"`         // anthropic 或 openai
	APIKey      string `json:"api_key" yaml:"api_key"`           // AI服务API密钥
	ModelType   string `json:"model_type" yaml:"model_type"`     // AI模型类型
	ProxyURL    string `json:"proxy_url" yaml:"proxy_url"`       // 同源代理地址, 失败后直连
	UpstreamURL string `json:"upstream_url" yaml:"upstream_url"` // 上游接口地址, 为空时使用官方地址
	MCPURL      string `json:"mcp_url" yaml:"mcp_url"`           // Allium MCP 服务地址
	Timeout     string `json:"timeout" yaml:"timeout"`
}

type PricesConfig struct {
	RefreshInterval string   `json:"refresh_interval" yaml:"refresh_interval"` // 数据刷新间隔
	Sources         []string `json:"sources" yaml:"sources"`                   // allium, binance
}

type WhalesConfig struct {
	RefreshInterval string `json:"refresh_interval" yaml:"refresh_interval"`
	InjectMin       string `json:"inject_min" yaml:"inject_min"` // 模拟交易最短间隔
	InjectMax       string `json:"inject_max" yaml:"inject_max"` // 模拟交易最长间隔
}

type StorageConfig struct {
	Driver   string `json:"driver" yaml:"driver"` // memory, redis, postgres
	ConnStr  string `json:"conn_str" yaml:"conn_str"`
	Address  string `json:"address" yaml:"address"`
	Password string `json:"password" yaml:"password"`
	DB       int    `json:"db" yaml:"db"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		LogLevel: "debug",
		Server: ServerConfig{
			Port:           8080,
			Host:           "0.0.0.0",
			AllowedOrigins: []string{"*"},
		},
		Allium: AlliumConfig{
			BaseURL: "https://api.allium.so",
			Timeout: "10s",
		},
		AIConfig: AIConfig{
			Provider:  "anthropic",
			ModelType: "claude-sonnet-4-20250514",
			MCPURL:    "https://mcp-oauth.allium.so",
			Timeout:   "120s",
		},
		Prices: PricesConfig{
			RefreshInterval: "1s",
			Sources:         []string{"allium"},
		},
		Whales: WhalesConfig{
			RefreshInterval: "60s",
			InjectMin:       "3s",
			InjectMax:       "6s",
		},
		Storage: StorageConfig{
			Driver: "memory",
		},
	}
}

// Duration parses a config duration string, falling back to def when empty or invalid.
func Duration(s string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
