package config

import (
	"strings"
	"testing"
)

func setFullEnv(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "tok")
	t.Setenv("FORUM_CHANNEL_ID", "111")
	t.Setenv("INTAKE_PARENT_CHANNEL_ID", "222")
}

func TestLoadDefaults(t *testing.T) {
	setFullEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
	if !cfg.ScanLinks {
		t.Error("expected link scanning enabled by default")
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected default log level info, got %s", cfg.LogLevel)
	}
	if cfg.MaxConcurrent != 4 {
		t.Errorf("expected default max concurrent 4, got %d", cfg.MaxConcurrent)
	}
}

func TestValidateReportsAllMissing(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "")
	t.Setenv("FORUM_CHANNEL_ID", "")
	t.Setenv("INTAKE_PARENT_CHANNEL_ID", "333")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	err = cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "DISCORD_TOKEN") || !strings.Contains(msg, "FORUM_CHANNEL_ID") {
		t.Errorf("expected both missing keys listed, got %q", msg)
	}
	if strings.Contains(msg, "INTAKE_PARENT_CHANNEL_ID") {
		t.Errorf("did not expect present key listed, got %q", msg)
	}
}

func TestPanelJump(t *testing.T) {
	cfg := &Config{}
	if got := cfg.PanelJump(); got != "back to the panel" {
		t.Errorf("expected bare label, got %q", got)
	}

	cfg.PanelTargetID = "42"
	if got := cfg.PanelJump(); got != "<#42>" {
		t.Errorf("expected channel mention, got %q", got)
	}

	cfg.PanelMessageURL = "https://discord.com/channels/1/2/3"
	if got := cfg.PanelJump(); !strings.Contains(got, cfg.PanelMessageURL) {
		t.Errorf("expected deep link, got %q", got)
	}
}

func TestValuesMasksToken(t *testing.T) {
	cfg := &Config{Token: "secret", ForumChannelID: "111"}
	values := cfg.Values()
	if values["DISCORD_TOKEN"] != "***" {
		t.Errorf("expected masked token, got %q", values["DISCORD_TOKEN"])
	}
	if values["FORUM_CHANNEL_ID"] != "111" {
		t.Errorf("expected forum id passthrough, got %q", values["FORUM_CHANNEL_ID"])
	}
}
