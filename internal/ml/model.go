package ml

import (
	"context"
	"fmt"

	"github.com/franckalain/healthanalyzer/internal/apperror"
	"github.com/franckalain/healthanalyzer/internal/config"
	"github.com/franckalain/healthanalyzer/internal/models"
	"go.uber.org/zap"
)

// Model is a multimodal provider that answers an instruction about an image
type Model interface {
	// Name identifies the provider in logs and history records
	Name() string
	// Load initializes the provider client with its configuration
	Load(ctx context.Context) error
	// Invoke sends the instruction and image and returns the raw text answer
	Invoke(ctx context.Context, instruction string, img models.ImagePayload) (string, error)
}

// NewModel creates the model selected by cfg.Provider. The returned model
// still has to be loaded.
func NewModel(cfg config.MLConfig, logger *zap.Logger) (Model, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	maxTokens := resolveMaxTokens(cfg.MaxTokens)

	switch cfg.Provider {
	case "gemini":
		return NewGeminiModel(cfg.Gemini, logger), nil
	case "vertex":
		return NewVertexModel(cfg.Vertex, logger), nil
	case "openai":
		return NewChatModel("openai", cfg.OpenAI, maxTokens, logger), nil
	case "groq":
		return NewChatModel("groq", cfg.Groq, maxTokens, logger), nil
	case "anthropic":
		return NewAnthropicModel(cfg.Anthropic, maxTokens, logger), nil
	case "local":
		return NewLocalModel(cfg.Local, logger), nil
	default:
		return nil, fmt.Errorf("%w: %s", apperror.ErrUnsupportedProvider, cfg.Provider)
	}
}
