package configs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Load reads the config file at path on top of Default, then applies .env and
// environment overrides. An empty path yields defaults plus overrides.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}

		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			err = yaml.Unmarshal(data, cfg)
		default:
			err = json.Unmarshal(data, cfg)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("SERVER_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = p
		}
	}
	if v := os.Getenv("SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		cfg.Server.AllowedOrigins = strings.Split(v, ",")
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("HTTP_PROXY"); v != "" && cfg.Proxy == "" {
		cfg.Proxy = v
	}

	// Allium
	if v := os.Getenv("ALLIUM_API_KEY"); v != "" {
		cfg.Allium.APIKey = v
	}
	if v := os.Getenv("ALLIUM_BASE_URL"); v != "" {
		cfg.Allium.BaseURL = v
	}

	// AI
	if v := os.Getenv("AI_PROVIDER"); v != "" {
		cfg.AIConfig.Provider = v
	}
	if v := os.Getenv("AI_MODEL"); v != "" {
		cfg.AIConfig.ModelType = v
	}
	if v := os.Getenv("AI_PROXY_URL"); v != "" {
		cfg.AIConfig.ProxyURL = v
	}
	switch cfg.AIConfig.Provider {
	case "openai":
		if v := os.Getenv("OPENAI_API_KEY"); v != "" {
			cfg.AIConfig.APIKey = v
		}
	default:
		if v := os.Getenv("ANTHROPIC_API_KEY"); v != "" {
			cfg.AIConfig.APIKey = v
		}
	}

	// Storage
	if v := os.Getenv("STORAGE_DRIVER"); v != "" {
		cfg.Storage.Driver = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Storage.ConnStr = v
	}
	if v := os.Getenv("REDIS_ADDRESS"); v != "" {
		cfg.Storage.Address = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Storage.Password = v
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Storage.DB = p
		}
	}
}
