package ml

import (
	"context"
	"fmt"
	"os"

	"github.com/franckalain/healthanalyzer/internal/apperror"
	"github.com/franckalain/healthanalyzer/internal/config"
	"github.com/franckalain/healthanalyzer/internal/models"
	"go.uber.org/zap"
)

// LocalModel answers every request with the contents of a fixture file.
// It lets the service run without a provider account.
type LocalModel struct {
	config   config.LocalConfig
	logger   *zap.Logger
	response string
	loaded   bool
}

func NewLocalModel(cfg config.LocalConfig, logger *zap.Logger) *LocalModel {
	return &LocalModel{config: cfg, logger: logger}
}

func (m *LocalModel) Name() string { return "local" }

// Load reads the fixture response
func (m *LocalModel) Load(ctx context.Context) error {
	if m.config.ResponseFile == "" {
		return fmt.Errorf("local: response file is not set")
	}
	data, err := os.ReadFile(m.config.ResponseFile)
	if err != nil {
		return fmt.Errorf("local: read response file: %w", err)
	}
	m.response = string(data)
	m.loaded = true
	return nil
}

func (m *LocalModel) Invoke(ctx context.Context, instruction string, img models.ImagePayload) (string, error) {
	if !m.loaded {
		return "", apperror.External(m.Name(), apperror.ErrModelNotLoaded)
	}
	if err := ctx.Err(); err != nil {
		return "", apperror.External(m.Name(), err)
	}
	m.logger.Debug("ml.local.response",
		zap.Int("image_bytes", len(img.Data)),
		zap.String("response", m.response),
	)
	return m.response, nil
}
