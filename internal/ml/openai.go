package ml

import (
	"context"
	"fmt"
	"strings"

	"github.com/franckalain/healthanalyzer/internal/apperror"
	"github.com/franckalain/healthanalyzer/internal/config"
	"github.com/franckalain/healthanalyzer/internal/models"
	"github.com/franckalain/healthanalyzer/internal/prompts"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"
	"go.uber.org/zap"
)

// ChatModel talks to an OpenAI-compatible chat completions API. It serves
// both OpenAI and Groq, which differ only by endpoint and model.
type ChatModel struct {
	name      string
	config    config.ChatConfig
	maxTokens int
	logger    *zap.Logger
	llm       llms.Model
}

func NewChatModel(name string, cfg config.ChatConfig, maxTokens int, logger *zap.Logger) *ChatModel {
	return &ChatModel{
		name:      name,
		config:    cfg,
		maxTokens: resolveMaxTokens(maxTokens),
		logger:    logger,
	}
}

func (m *ChatModel) Name() string { return m.name }

func (m *ChatModel) Load(ctx context.Context) error {
	key := strings.TrimSpace(m.config.APIKey)
	if key == "" {
		return fmt.Errorf("%s: %w", m.name, apperror.ErrMissingAPIKey)
	}

	opts := []openai.Option{
		openai.WithToken(key),
		openai.WithModel(m.config.Model),
	}
	if m.config.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(m.config.BaseURL))
	}

	llm, err := openai.New(opts...)
	if err != nil {
		return fmt.Errorf("%s: create client: %w", m.name, err)
	}
	m.llm = llm
	return nil
}

func (m *ChatModel) Invoke(ctx context.Context, instruction string, img models.ImagePayload) (string, error) {
	if m.llm == nil {
		return "", apperror.External(m.name, apperror.ErrModelNotLoaded)
	}

	messages := []llms.MessageContent{
		{
			Role:  schema.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(prompts.SystemInstruction)},
		},
		{
			Role: schema.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(instruction),
				llms.ImageURLPart(dataURL(img)),
			},
		},
	}

	resp, err := m.llm.GenerateContent(ctx, messages, llms.WithMaxTokens(m.maxTokens))
	if err != nil {
		return "", apperror.External(m.name, err)
	}
	m.logger.Debug("ml."+m.name+".response", zap.Any("response", resp))

	if len(resp.Choices) == 0 {
		return "", apperror.External(m.name, apperror.ErrEmptyCompletion)
	}
	return resp.Choices[0].Content, nil
}
