// Package config loads bot configuration from the environment. A .env
// file in the working directory is honored when present.
package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Token                 string `env:"DISCORD_TOKEN"`
	ForumChannelID        string `env:"FORUM_CHANNEL_ID"`
	IntakeParentChannelID string `env:"INTAKE_PARENT_CHANNEL_ID"`
	PanelMessageURL       string `env:"PANEL_MESSAGE_URL"`
	PanelTargetID         string `env:"PANEL_TARGET_ID"`
	GuildID               string `env:"GUILD_ID"`
	ScanLinks             bool   `env:"USE_MESSAGE_CONTENT" envDefault:"true"`
	LogLevel              string `env:"LOG_LEVEL" envDefault:"info"`
	MaxConcurrent         int64  `env:"MAX_CONCURRENT" envDefault:"4"`
}

// Load reads a .env file if one exists and parses the environment into
// a Config. Validation is separate so commands that only inspect config
// can still load a partial one.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Validate checks the required settings and reports every missing one.
func (c *Config) Validate() error {
	var missing []string
	if c.Token == "" {
		missing = append(missing, "DISCORD_TOKEN")
	}
	if c.ForumChannelID == "" {
		missing = append(missing, "FORUM_CHANNEL_ID")
	}
	if c.IntakeParentChannelID == "" {
		missing = append(missing, "INTAKE_PARENT_CHANNEL_ID")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}

// PanelJump returns markdown pointing the user back at the feedback
// panel: a deep link when configured, a channel mention as fallback,
// or the bare label.
func (c *Config) PanelJump() string {
	const label = "back to the panel"
	if c.PanelMessageURL != "" {
		return fmt.Sprintf("[%s](%s)", label, c.PanelMessageURL)
	}
	if c.PanelTargetID != "" {
		return fmt.Sprintf("<#%s>", c.PanelTargetID)
	}
	return label
}

// Values returns the resolved configuration as key/value pairs with the
// bot token masked, for display by the config command.
func (c *Config) Values() map[string]string {
	token := ""
	if c.Token != "" {
		token = "***"
	}
	return map[string]string{
		"DISCORD_TOKEN":            token,
		"FORUM_CHANNEL_ID":         c.ForumChannelID,
		"INTAKE_PARENT_CHANNEL_ID": c.IntakeParentChannelID,
		"PANEL_MESSAGE_URL":        c.PanelMessageURL,
		"PANEL_TARGET_ID":          c.PanelTargetID,
		"GUILD_ID":                 c.GuildID,
		"USE_MESSAGE_CONTENT":      fmt.Sprintf("%t", c.ScanLinks),
		"LOG_LEVEL":                c.LogLevel,
		"MAX_CONCURRENT":           fmt.Sprintf("%d", c.MaxConcurrent),
	}
}
