// Package config loads the adapter's YAML configuration and applies
// environment variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ---------------------------------------------------------------------------
// Configuration structs
// ---------------------------------------------------------------------------

// Config is the top-level configuration for the ibsession adapter.
type Config struct {
	Gateway Gateway `yaml:"gateway"`
	Logging Logging `yaml:"logging"`
	Storage Storage `yaml:"storage"`
	Symbols Symbols `yaml:"symbols"`
	Quotes  Quotes  `yaml:"quotes"`
}

// Gateway holds the connection parameters for the trading gateway.
type Gateway struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	ClientID int    `yaml:"client_id"`
	// Multiplier scales signal sizes for callers that drive the adapter
	// from a strategy layer.
	Multiplier int `yaml:"multiplier"`
	// ConnectWaitMS is how long Connect blocks after the transport opens,
	// giving the gateway's handshake messages time to arrive.
	ConnectWaitMS int `yaml:"connect_wait_ms"`
}

// Logging configures the rotating file logger.
type Logging struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	RetainDays int    `yaml:"retain_days"`
}

// Storage holds paths for the order and tick journals.
type Storage struct {
	DataDir    string `yaml:"data_dir"`
	SQLitePath string `yaml:"sqlite_path"`
}

// Symbols points at the JSON exchange-override table.
type Symbols struct {
	MapPath string `yaml:"map_path"`
}

// Quotes controls market-data subscriptions.
type Quotes struct {
	// Record writes received ticks to the tick journal.
	Record bool `yaml:"record"`
}

// Addr returns the gateway connection string as host:port.
func (g Gateway) Addr() string {
	return fmt.Sprintf("%s:%d", g.Host, g.Port)
}

// ---------------------------------------------------------------------------
// Loading
// ---------------------------------------------------------------------------

// Load reads the YAML configuration file at the given path, parses it into a
// Config struct, and then applies environment variable overrides.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	return cfg, nil
}

// applyEnvOverrides checks well-known environment variables and overrides the
// corresponding configuration fields when they are set.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("IB_HOST"); v != "" {
		cfg.Gateway.Host = v
	}
	if v := os.Getenv("IB_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Gateway.Port = p
		}
	}
	if v := os.Getenv("IB_CLIENT_ID"); v != "" {
		if id, err := strconv.Atoi(v); err == nil {
			cfg.Gateway.ClientID = id
		}
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("LOG_FILE"); v != "" {
		cfg.Logging.File = v
	}

	if v := os.Getenv("DATA_DIR"); v != "" {
		cfg.Storage.DataDir = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Storage.SQLitePath = v
	}

	if v := os.Getenv("IB_SYMBOL_MAP"); v != "" {
		cfg.Symbols.MapPath = v
	}
}
