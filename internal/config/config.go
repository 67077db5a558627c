// Package config provides YAML-based configuration loading for the
// shikoyat client. Secrets (API credentials, bot tokens) may also come
// from the environment, loaded via a .env file at startup; environment
// values take precedence over the YAML file.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// AuthMode selects how the client authenticates to the complaint API.
const (
	AuthBasic  = "basic"
	AuthBearer = "bearer"
)

// Config is the top-level shikoyat configuration, loaded from shikoyat.yaml.
type Config struct {
	API       APIConfig       `yaml:"api"`
	Refresh   RefreshConfig   `yaml:"refresh"`
	Notify    NotifyConfig    `yaml:"notify"`
	Dashboard DashboardConfig `yaml:"dashboard"`
}

// APIConfig holds connection settings for the remote complaint API.
type APIConfig struct {
	BaseURL        string `yaml:"base_url"`
	AuthMode       string `yaml:"auth_mode"`
	BasicUser      string `yaml:"basic_user"`
	BasicPass      string `yaml:"basic_pass"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	// ShowEndpoint enables GET /call-center-complaint-index-show/{id}.
	// When false the client falls back to scanning page 1 of the list,
	// which can miss records beyond the first page.
	ShowEndpoint bool `yaml:"show_endpoint"`
}

// Timeout returns the HTTP client timeout.
func (a APIConfig) Timeout() time.Duration {
	return time.Duration(a.TimeoutSeconds) * time.Second
}

// RefreshConfig controls auto-refresh polling of the complaints list.
type RefreshConfig struct {
	IntervalSeconds int `yaml:"interval_seconds"`
}

// Interval returns the auto-refresh poll interval.
func (r RefreshConfig) Interval() time.Duration {
	return time.Duration(r.IntervalSeconds) * time.Second
}

// NotifyConfig selects and configures the chat platform used to announce
// new complaints from `shikoyat watch`.
type NotifyConfig struct {
	Platform       string        `yaml:"platform"` // "slack", "discord" or empty
	DigestSchedule string        `yaml:"digest_schedule"`
	Slack          PlatformCreds `yaml:"slack"`
	Discord        PlatformCreds `yaml:"discord"`
}

// PlatformCreds holds bot credentials for a single chat platform.
type PlatformCreds struct {
	BotToken  string `yaml:"bot_token"`
	ChannelID string `yaml:"channel_id"`
}

// DashboardConfig holds settings for the local web dashboard.
type DashboardConfig struct {
	Port int `yaml:"port"`
}

// Load reads a YAML config file from path and returns a validated Config.
// A missing file is not an error: defaults plus environment overrides
// are enough to run against the production API.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Parse(nil)
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse unmarshals YAML bytes into a validated Config.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	cfg.applyEnv()
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyEnv overrides secret-bearing fields from the environment.
func (c *Config) applyEnv() {
	if v := os.Getenv("SHIKOYAT_API_BASE_URL"); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv("SHIKOYAT_API_AUTH_MODE"); v != "" {
		c.API.AuthMode = v
	}
	if v := os.Getenv("SHIKOYAT_BASIC_USER"); v != "" {
		c.API.BasicUser = v
	}
	if v := os.Getenv("SHIKOYAT_BASIC_PASS"); v != "" {
		c.API.BasicPass = v
	}
	if v := os.Getenv("SHIKOYAT_SLACK_BOT_TOKEN"); v != "" {
		c.Notify.Slack.BotToken = v
	}
	if v := os.Getenv("SHIKOYAT_SLACK_CHANNEL"); v != "" {
		c.Notify.Slack.ChannelID = v
	}
	if v := os.Getenv("SHIKOYAT_DISCORD_BOT_TOKEN"); v != "" {
		c.Notify.Discord.BotToken = v
	}
	if v := os.Getenv("SHIKOYAT_DISCORD_CHANNEL"); v != "" {
		c.Notify.Discord.ChannelID = v
	}
}

// applyDefaults fills in derived and default values.
func (c *Config) applyDefaults() {
	if c.API.BaseURL == "" {
		c.API.BaseURL = "https://garant-hr.uz/api"
	}
	c.API.BaseURL = strings.TrimRight(c.API.BaseURL, "/")
	if c.API.AuthMode == "" {
		c.API.AuthMode = AuthBearer
	}
	if c.API.TimeoutSeconds == 0 {
		c.API.TimeoutSeconds = 15
	}
	if c.Refresh.IntervalSeconds == 0 {
		c.Refresh.IntervalSeconds = 30
	}
	if c.Dashboard.Port == 0 {
		c.Dashboard.Port = 8080
	}
}

// validate checks that all required fields are present and consistent.
func (c *Config) validate() error {
	var errs []string
	switch c.API.AuthMode {
	case AuthBasic:
		if c.API.BasicUser == "" || c.API.BasicPass == "" {
			errs = append(errs, "api.basic_user and api.basic_pass are required in basic auth mode")
		}
	case AuthBearer:
		// Token is obtained at login; nothing to check up front.
	default:
		errs = append(errs, fmt.Sprintf("api.auth_mode must be %q or %q", AuthBasic, AuthBearer))
	}
	switch c.Notify.Platform {
	case "", "slack", "discord":
	default:
		errs = append(errs, `notify.platform must be "slack", "discord" or empty`)
	}
	if c.Notify.Platform == "slack" && c.Notify.Slack.BotToken == "" {
		errs = append(errs, "notify.slack.bot_token is required when notify.platform is slack")
	}
	if c.Notify.Platform == "discord" && c.Notify.Discord.BotToken == "" {
		errs = append(errs, "notify.discord.bot_token is required when notify.platform is discord")
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
