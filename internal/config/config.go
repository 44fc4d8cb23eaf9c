package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Config is the on-disk configuration for cardcourier. Relative paths are
// resolved against the working directory, so a checkout with cards/ and
// favorites.json works without any config at all.
type Config struct {
	Token              string `json:"token"`
	BaseURL            string `json:"base_url"`
	LogLevel           string `json:"log_level"`
	HTTPTimeoutSeconds int    `json:"http_timeout_seconds"`
	// FanOut is the aggregation policy: "fail-fast" or "best-effort".
	FanOut string `json:"fan_out"`
	Cards  struct {
		Dir        string   `json:"dir"`
		Extensions []string `json:"extensions"`
		// AllowComments accepts // comments and trailing commas in card files.
		AllowComments bool `json:"allow_comments"`
	} `json:"cards"`
	Favorites struct {
		Path        string `json:"path"`
		AsyncWrites bool   `json:"async_writes"`
	} `json:"favorites"`
	Spaces struct {
		SendMax   int `json:"send_max"`
		FindMax   int `json:"find_max"`
		SearchMax int `json:"search_max"`
	} `json:"spaces"`
}

// Defaults returns the configuration used when no file exists.
func Defaults() *Config {
	cfg := &Config{
		BaseURL:  "https://webexapis.com",
		LogLevel: "warn",
		FanOut:   "fail-fast",
	}
	cfg.Cards.Dir = "cards"
	cfg.Cards.Extensions = []string{".json", ".txt"}
	cfg.Favorites.Path = "favorites.json"
	cfg.Spaces.SendMax = 20
	cfg.Spaces.FindMax = 40
	return cfg
}

// DefaultPath is ~/.cardcourier/config.json.
func DefaultPath() string {
	return filepath.Join(os.Getenv("HOME"), ".cardcourier", "config.json")
}

// HTTPTimeout converts HTTPTimeoutSeconds; zero means no timeout.
func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutSeconds) * time.Second
}

// Load reads the config at path over the defaults, writing the defaults
// out if the file does not exist yet. Environment variables win over both.
func Load(path string) (*Config, error) {
	cfg, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	ApplyEnv(cfg)
	return cfg, nil
}

// LoadFile is Load without the environment overrides. Use it when the
// result is going to be saved back, so env-only secrets stay off disk.
func LoadFile(path string) (*Config, error) {
	cfg := Defaults()

	if _, err := os.Stat(path); err == nil {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	} else if os.IsNotExist(err) {
		if err := Save(path, cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// envOverrides maps environment variables to the config keys they replace.
var envOverrides = []struct {
	env string
	key string
	set func(*Config, string)
}{
	{"TOKEN", "token", func(c *Config, v string) { c.Token = v }},
	{"WEBEX_BASE_URL", "base_url", func(c *Config, v string) { c.BaseURL = v }},
	{"CARDCOURIER_LOG_LEVEL", "log_level", func(c *Config, v string) { c.LogLevel = v }},
}

// ApplyEnv overrides cfg from the environment and returns the config keys
// that were replaced.
func ApplyEnv(cfg *Config) []string {
	var keys []string
	for _, o := range envOverrides {
		if v := os.Getenv(o.env); v != "" {
			o.set(cfg, v)
			keys = append(keys, o.key)
		}
	}
	return keys
}

// Save writes cfg to path atomically, creating the parent directory.
func Save(path string, cfg any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	data = append(data, '\n')

	// The file may hold a token, so keep it owner-only.
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename config: %w", err)
	}
	return nil
}
