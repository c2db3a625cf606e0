package ml

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/vertexai/genai"
	"github.com/franckalain/healthanalyzer/internal/apperror"
	"github.com/franckalain/healthanalyzer/internal/config"
	"github.com/franckalain/healthanalyzer/internal/models"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// VertexModel calls Gemini hosted on Google Cloud Vertex AI
type VertexModel struct {
	config config.VertexConfig
	logger *zap.Logger
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewVertexModel(cfg config.VertexConfig, logger *zap.Logger) *VertexModel {
	return &VertexModel{config: cfg, logger: logger}
}

func (m *VertexModel) Name() string { return "vertex" }

// Load initializes the Vertex AI client
func (m *VertexModel) Load(ctx context.Context) error {
	if m.config.ProjectID == "" {
		return fmt.Errorf("vertex: project id is not set")
	}

	opts := []option.ClientOption{}
	if m.config.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(m.config.CredentialsFile))
	}

	client, err := genai.NewClient(ctx, m.config.ProjectID, m.config.Location, opts...)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	m.client = client
	m.model = client.GenerativeModel(m.config.Model)
	return nil
}

func (m *VertexModel) Invoke(ctx context.Context, instruction string, img models.ImagePayload) (string, error) {
	if m.model == nil {
		return "", apperror.External(m.Name(), apperror.ErrModelNotLoaded)
	}

	resp, err := m.model.GenerateContent(ctx,
		genai.Text(instruction),
		genai.Blob{MIMEType: img.MIMEType, Data: img.Data},
	)
	if err != nil {
		return "", apperror.External(m.Name(), fmt.Errorf("failed to call ai: %w", err))
	}
	m.logger.Debug("ml.vertex.response", zap.Any("response", resp))

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", apperror.External(m.Name(), apperror.ErrEmptyCompletion)
	}
	var b strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		if t, ok := p.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	if b.Len() == 0 {
		return "", apperror.External(m.Name(), apperror.ErrEmptyCompletion)
	}
	return b.String(), nil
}

// Close releases the client
func (m *VertexModel) Close() error {
	if m.client == nil {
		return nil
	}
	return m.client.Close()
}
