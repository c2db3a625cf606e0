package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("AI_PROVIDER", "Groq")
	t.Setenv("GROQ_API_KEY", "gsk-test")
	t.Setenv("DEBUG_MODE", "true")
	t.Setenv("PORT", "9090")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.ML.Provider != "groq" {
		t.Errorf("Provider = %q, want groq", cfg.ML.Provider)
	}
	if cfg.ML.Groq.APIKey != "gsk-test" {
		t.Errorf("Groq.APIKey = %q", cfg.ML.Groq.APIKey)
	}
	if cfg.ML.Groq.BaseURL != "https://api.groq.com/openai/v1" {
		t.Errorf("Groq.BaseURL default not applied: %q", cfg.ML.Groq.BaseURL)
	}
	if !cfg.Analysis.DebugMode {
		t.Error("DebugMode should be true")
	}
	if cfg.Server.Port != "9090" {
		t.Errorf("Port = %q", cfg.Server.Port)
	}
	if cfg.Analysis.PreviewLength != 200 || cfg.ML.MaxTokens != 1000 {
		t.Errorf("defaults not applied: preview=%d max_tokens=%d", cfg.Analysis.PreviewLength, cfg.ML.MaxTokens)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  port: "7000"
database:
  path: history.db
ml:
  provider: local
  local:
    response_file: fixtures/food.json
analysis:
  strict_schema: true
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Server.Port != "7000" || cfg.Database.Path != "history.db" {
		t.Errorf("unexpected server/database config: %+v %+v", cfg.Server, cfg.Database)
	}
	if cfg.ML.Provider != "local" || cfg.ML.Local.ResponseFile != "fixtures/food.json" {
		t.Errorf("unexpected ml config: %+v", cfg.ML)
	}
	if !cfg.Analysis.StrictSchema || cfg.Analysis.DebugMode {
		t.Errorf("unexpected analysis config: %+v", cfg.Analysis)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err != nil {
		t.Fatalf("missing config file should fall back to env, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"gemini without key", func(c *Config) { c.ML.Provider = "gemini" }, "GOOGLE_API_KEY"},
		{"openai without key", func(c *Config) { c.ML.Provider = "openai" }, "OPENAI_API_KEY"},
		{"anthropic without key", func(c *Config) { c.ML.Provider = "anthropic" }, "ANTHROPIC_API_KEY"},
		{"vertex without project", func(c *Config) { c.ML.Provider = "vertex" }, "GOOGLE_PROJECT_ID"},
		{"unknown provider", func(c *Config) { c.ML.Provider = "mystery" }, "unsupported"},
		{"no port", func(c *Config) { c.Server.Port = "" }, "port"},
		{"ok", func(c *Config) {}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Server:   ServerConfig{Port: "8000"},
				ML:       MLConfig{Provider: "gemini", Gemini: GeminiConfig{APIKey: "k"}},
				Analysis: AnalysisConfig{PreviewLength: 200},
			}
			if tt.name != "ok" && tt.name != "no port" {
				cfg.ML.Gemini.APIKey = ""
			}
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}
