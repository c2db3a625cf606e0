package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration. It is built once at startup
// and handed to the components that need it.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
	ML       MLConfig       `mapstructure:"ml"`
	Analysis AnalysisConfig `mapstructure:"analysis"`
}

type ServerConfig struct {
	Port      string `mapstructure:"port"`
	StaticDir string `mapstructure:"static_dir"`
}

// DatabaseConfig configures the analysis history. An empty path disables it.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type MLConfig struct {
	Provider  string          `mapstructure:"provider"` // gemini, vertex, openai, groq, anthropic, local
	MaxTokens int             `mapstructure:"max_tokens"`
	Gemini    GeminiConfig    `mapstructure:"gemini"`
	Vertex    VertexConfig    `mapstructure:"vertex"`
	OpenAI    ChatConfig      `mapstructure:"openai"`
	Groq      ChatConfig      `mapstructure:"groq"`
	Anthropic AnthropicConfig `mapstructure:"anthropic"`
	Local     LocalConfig     `mapstructure:"local"`
}

type GeminiConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

type VertexConfig struct {
	ProjectID       string `mapstructure:"project_id"`
	Location        string `mapstructure:"location"`
	CredentialsFile string `mapstructure:"credentials_file"`
	Model           string `mapstructure:"model"`
}

// ChatConfig configures an OpenAI-compatible chat completions provider
type ChatConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

type AnthropicConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

type LocalConfig struct {
	ResponseFile string `mapstructure:"response_file"`
}

type AnalysisConfig struct {
	// DebugMode adds a preview of the raw model text to parse-failure responses
	DebugMode     bool `mapstructure:"debug_mode"`
	StrictSchema  bool `mapstructure:"strict_schema"`
	PreviewLength int  `mapstructure:"preview_length"`
}

var envBindings = map[string]string{
	"server.port":                "PORT",
	"server.static_dir":          "STATIC_DIR",
	"database.path":              "DATABASE_PATH",
	"log.level":                  "LOG_LEVEL",
	"ml.provider":                "AI_PROVIDER",
	"ml.max_tokens":              "MAX_TOKENS",
	"ml.gemini.api_key":          "GOOGLE_API_KEY",
	"ml.gemini.model":            "GEMINI_MODEL",
	"ml.vertex.project_id":       "GOOGLE_PROJECT_ID",
	"ml.vertex.location":         "GOOGLE_LOCATION",
	"ml.vertex.credentials_file": "GOOGLE_CREDENTIALS_FILE",
	"ml.vertex.model":            "VERTEX_MODEL",
	"ml.openai.api_key":          "OPENAI_API_KEY",
	"ml.openai.model":            "OPENAI_MODEL",
	"ml.openai.base_url":         "OPENAI_BASE_URL",
	"ml.groq.api_key":            "GROQ_API_KEY",
	"ml.groq.model":              "GROQ_MODEL",
	"ml.groq.base_url":           "GROQ_BASE_URL",
	"ml.anthropic.api_key":       "ANTHROPIC_API_KEY",
	"ml.anthropic.model":         "ANTHROPIC_MODEL",
	"ml.local.response_file":     "LOCAL_RESPONSE_FILE",
	"analysis.debug_mode":        "DEBUG_MODE",
	"analysis.strict_schema":     "STRICT_SCHEMA",
	"analysis.preview_length":    "PREVIEW_LENGTH",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8000")
	v.SetDefault("log.level", "info")
	v.SetDefault("ml.provider", "gemini")
	v.SetDefault("ml.max_tokens", 1000)
	v.SetDefault("ml.gemini.model", "gemini-1.5-pro")
	v.SetDefault("ml.vertex.location", "us-central1")
	v.SetDefault("ml.vertex.model", "gemini-1.5-pro")
	v.SetDefault("ml.openai.model", "gpt-4o")
	v.SetDefault("ml.groq.model", "llama-3.2-90b-vision-preview")
	v.SetDefault("ml.groq.base_url", "https://api.groq.com/openai/v1")
	v.SetDefault("ml.anthropic.model", "claude-sonnet-4-20250514")
	v.SetDefault("analysis.preview_length", 200)
}

// LoadConfig reads the optional YAML file at configPath and overlays the
// environment. A missing file is not an error.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", env, err)
		}
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	config.ML.Provider = strings.ToLower(strings.TrimSpace(config.ML.Provider))

	return &config, nil
}

// Validate checks that the selected provider can be reached
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port is not set")
	}
	if c.Analysis.PreviewLength <= 0 {
		return fmt.Errorf("analysis.preview_length must be positive")
	}

	ml := c.ML
	var missing string
	switch ml.Provider {
	case "gemini":
		if ml.Gemini.APIKey == "" {
			missing = "GOOGLE_API_KEY"
		}
	case "vertex":
		if ml.Vertex.ProjectID == "" {
			missing = "GOOGLE_PROJECT_ID"
		}
	case "openai":
		if ml.OpenAI.APIKey == "" {
			missing = "OPENAI_API_KEY"
		}
	case "groq":
		if ml.Groq.APIKey == "" {
			missing = "GROQ_API_KEY"
		}
	case "anthropic":
		if ml.Anthropic.APIKey == "" {
			missing = "ANTHROPIC_API_KEY"
		}
	case "local":
		if ml.Local.ResponseFile == "" {
			missing = "LOCAL_RESPONSE_FILE"
		}
	default:
		return fmt.Errorf("unsupported ml provider %q", ml.Provider)
	}
	if missing != "" {
		return fmt.Errorf("%s is required for provider %s", missing, ml.Provider)
	}
	return nil
}

// GetConfigPath returns the path to the configuration file
func GetConfigPath() string {
	// First try environment variable
	if path := os.Getenv("ANALYZER_CONFIG"); path != "" {
		return path
	}

	// Then try config directory
	configDir := "config"
	if _, err := os.Stat(configDir); err == nil {
		return filepath.Join(configDir, "config.yaml")
	}

	// Finally, try current directory
	return "config.yaml"
}
