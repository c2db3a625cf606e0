package ml

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	anthropicopt "github.com/anthropics/anthropic-sdk-go/option"
	"github.com/franckalain/healthanalyzer/internal/apperror"
	"github.com/franckalain/healthanalyzer/internal/config"
	"github.com/franckalain/healthanalyzer/internal/images"
	"github.com/franckalain/healthanalyzer/internal/models"
	"github.com/franckalain/healthanalyzer/internal/prompts"
	"go.uber.org/zap"
)

// AnthropicModel calls Claude through the Messages API
type AnthropicModel struct {
	config    config.AnthropicConfig
	maxTokens int
	logger    *zap.Logger
	client    *anthropic.Client

	// extra client options, used by tests to point at a local server
	opts []anthropicopt.RequestOption
}

func NewAnthropicModel(cfg config.AnthropicConfig, maxTokens int, logger *zap.Logger) *AnthropicModel {
	return &AnthropicModel{
		config:    cfg,
		maxTokens: resolveMaxTokens(maxTokens),
		logger:    logger,
	}
}

func (m *AnthropicModel) Name() string { return "anthropic" }

func (m *AnthropicModel) Load(ctx context.Context) error {
	key := strings.TrimSpace(m.config.APIKey)
	if key == "" {
		return fmt.Errorf("anthropic: %w", apperror.ErrMissingAPIKey)
	}

	opts := append([]anthropicopt.RequestOption{
		anthropicopt.WithAPIKey(key),
		anthropicopt.WithMaxRetries(0),
	}, m.opts...)
	client := anthropic.NewClient(opts...)
	m.client = &client
	return nil
}

func (m *AnthropicModel) Invoke(ctx context.Context, instruction string, img models.ImagePayload) (string, error) {
	if m.client == nil {
		return "", apperror.External(m.Name(), apperror.ErrModelNotLoaded)
	}

	message, err := m.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(m.config.Model),
		MaxTokens: int64(m.maxTokens),
		System:    []anthropic.TextBlockParam{{Text: prompts.SystemInstruction}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(
				anthropic.NewTextBlock(instruction),
				anthropic.NewImageBlockBase64(images.MediaType(img.MIMEType), base64.StdEncoding.EncodeToString(img.Data)),
			),
		},
	})
	if err != nil {
		return "", apperror.External(m.Name(), err)
	}
	m.logger.Debug("ml.anthropic.response", zap.String("response", message.RawJSON()))

	for _, block := range message.Content {
		if b, ok := block.AsAny().(anthropic.TextBlock); ok {
			return b.Text, nil
		}
	}
	return "", apperror.External(m.Name(), apperror.ErrEmptyCompletion)
}
