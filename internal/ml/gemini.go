package ml

import (
	"context"
	"fmt"
	"strings"

	"github.com/franckalain/healthanalyzer/internal/apperror"
	"github.com/franckalain/healthanalyzer/internal/config"
	"github.com/franckalain/healthanalyzer/internal/models"
	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// GeminiModel calls Gemini through the Google AI API. It asks the provider
// for a JSON-typed response instead of free text.
type GeminiModel struct {
	config config.GeminiConfig
	logger *zap.Logger
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGeminiModel(cfg config.GeminiConfig, logger *zap.Logger) *GeminiModel {
	return &GeminiModel{config: cfg, logger: logger}
}

func (m *GeminiModel) Name() string { return "gemini" }

// Load creates the API client
func (m *GeminiModel) Load(ctx context.Context) error {
	key := strings.TrimSpace(m.config.APIKey)
	if key == "" {
		return fmt.Errorf("gemini: %w", apperror.ErrMissingAPIKey)
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(key))
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	m.client = client
	m.model = client.GenerativeModel(m.config.Model)
	m.model.ResponseMIMEType = "application/json"
	return nil
}

func (m *GeminiModel) Invoke(ctx context.Context, instruction string, img models.ImagePayload) (string, error) {
	if m.model == nil {
		return "", apperror.External(m.Name(), apperror.ErrModelNotLoaded)
	}

	resp, err := m.model.GenerateContent(ctx,
		genai.Text(instruction),
		genai.Blob{MIMEType: img.MIMEType, Data: img.Data},
	)
	if err != nil {
		return "", apperror.External(m.Name(), err)
	}
	m.logger.Debug("ml.gemini.response", zap.Any("response", resp))

	text := geminiText(resp)
	if text == "" {
		return "", apperror.External(m.Name(), apperror.ErrEmptyCompletion)
	}
	return text, nil
}

// Close releases the client
func (m *GeminiModel) Close() error {
	if m.client == nil {
		return nil
	}
	return m.client.Close()
}

func geminiText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		if t, ok := p.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	return b.String()
}
