// Package config loads the client configuration from YAML with environment
// overrides for deployment-specific values.
package config

import (
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/betbot/sportsbook/pkg/logger"
)

// StreamConfig tunes the real-time channel.
type StreamConfig struct {
	ReconnectBaseMS int `yaml:"reconnect_base_ms"`
	MaxReconnects   int `yaml:"max_reconnects"`
}

// ReconnectBase returns the backoff base as a duration.
func (s StreamConfig) ReconnectBase() time.Duration {
	return time.Duration(s.ReconnectBaseMS) * time.Millisecond
}

// Config is the full client configuration.
type Config struct {
	APIBaseURL  string        `yaml:"api_base_url"`
	WSURL       string        `yaml:"ws_url"`
	DataDir     string        `yaml:"data_dir"`
	MetricsAddr string        `yaml:"metrics_addr"`
	Log         logger.Config `yaml:"log"`
	Stream      StreamConfig  `yaml:"stream"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		APIBaseURL:  "http://localhost:8080/api",
		WSURL:       "ws://localhost:8080/ws",
		DataDir:     "data",
		MetricsAddr: "127.0.0.1:9180",
		Log:         logger.Config{Level: "info"},
		Stream: StreamConfig{
			ReconnectBaseMS: 1000,
			MaxReconnects:   5,
		},
	}
}

// Load reads path (optional) and applies environment overrides on top of
// the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, err
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	envStr("SPORTSBOOK_API_URL", &cfg.APIBaseURL)
	envStr("SPORTSBOOK_WS_URL", &cfg.WSURL)
	envStr("SPORTSBOOK_DATA_DIR", &cfg.DataDir)
	envStr("SPORTSBOOK_METRICS_ADDR", &cfg.MetricsAddr)
	envStr("SPORTSBOOK_LOG_LEVEL", &cfg.Log.Level)
	envStr("SPORTSBOOK_LOG_FILE", &cfg.Log.File)
	envInt("SPORTSBOOK_RECONNECT_BASE_MS", &cfg.Stream.ReconnectBaseMS)
	envInt("SPORTSBOOK_MAX_RECONNECTS", &cfg.Stream.MaxReconnects)
}

func envStr(key string, dst *string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func envInt(key string, dst *int) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
