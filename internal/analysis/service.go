// Package analysis runs one image through validation, the model and
// JSON extraction.
package analysis

import (
	"context"
	"fmt"
	"time"

	"github.com/franckalain/healthanalyzer/internal/apperror"
	"github.com/franckalain/healthanalyzer/internal/config"
	"github.com/franckalain/healthanalyzer/internal/extract"
	"github.com/franckalain/healthanalyzer/internal/images"
	"github.com/franckalain/healthanalyzer/internal/ml"
	"github.com/franckalain/healthanalyzer/internal/models"
	"github.com/franckalain/healthanalyzer/internal/prompts"
	"github.com/google/uuid"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"go.uber.org/zap"
)

const defaultPreviewLength = 200

// Recorder persists a summary of each completed analysis
type Recorder interface {
	SaveAnalysis(ctx context.Context, record *models.AnalysisRecord) error
}

// Service holds no per-request state and is safe for concurrent use
type Service struct {
	model    ml.Model
	config   config.AnalysisConfig
	logger   *zap.Logger
	recorder Recorder
	schemas  map[models.Category]*jsonschema.Schema
}

type Option func(*Service)

// WithRecorder stores a summary of every analysis that reaches the model
func WithRecorder(r Recorder) Option {
	return func(s *Service) { s.recorder = r }
}

func NewService(model ml.Model, cfg config.AnalysisConfig, logger *zap.Logger, opts ...Option) (*Service, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.PreviewLength <= 0 {
		cfg.PreviewLength = defaultPreviewLength
	}

	s := &Service{
		model:  model,
		config: cfg,
		logger: logger,
	}
	for _, opt := range opts {
		opt(s)
	}

	if cfg.StrictSchema {
		schemas, err := compileSchemas()
		if err != nil {
			return nil, fmt.Errorf("strict schema: %w", err)
		}
		s.schemas = schemas
	}
	return s, nil
}

// ModelName reports which provider answers requests
func (s *Service) ModelName() string {
	return s.model.Name()
}

// Analyze validates the upload, asks the model about it and returns either
// the extracted record or an *models.ErrorResult. Validation and provider
// failures are returned as errors.
func (s *Service) Analyze(ctx context.Context, category models.Category, file images.File) (any, error) {
	if _, err := models.ParseCategory(string(category)); err != nil {
		return nil, apperror.NewValidationError("%s: category must be food or medical", err)
	}

	img, err := images.Validate(file)
	if err != nil {
		return nil, err
	}

	raw, err := s.model.Invoke(ctx, prompts.For(category), img)
	if err != nil {
		return nil, err
	}

	result := s.toResult(category, raw)
	s.record(ctx, category, result)
	return result, nil
}

func (s *Service) toResult(category models.Category, raw string) any {
	record, ok := extract.Extract(raw)
	if !ok {
		preview := Preview(raw, s.config.PreviewLength)
		s.logger.Warn("analysis.parse_failed",
			zap.String("category", category.String()),
			zap.String("provider", s.model.Name()),
			zap.String("response_preview", preview),
			zap.String("response", raw),
		)

		result := models.NewErrorResult(category, models.ParseErrorMessage)
		if s.config.DebugMode {
			result.DebugInfo = map[string]any{"response_preview": preview}
		}
		return result
	}

	if schema, ok := s.schemas[category]; ok {
		if err := schema.Validate(record); err != nil {
			s.logger.Warn("analysis.schema_mismatch",
				zap.String("category", category.String()),
				zap.Error(err),
			)
			return models.NewErrorResult(category, SchemaErrorMessage)
		}
	}
	return record
}

func (s *Service) record(ctx context.Context, category models.Category, result any) {
	if s.recorder == nil {
		return
	}

	summary, err := models.Summarize(category, result)
	if err != nil {
		s.logger.Debug("analysis.summarize_failed", zap.Error(err))
	}

	entry := &models.AnalysisRecord{
		ID:        uuid.New().String(),
		Category:  category,
		Provider:  s.model.Name(),
		Status:    summary.Status,
		Message:   summary.Message,
		ItemCount: summary.ItemCount,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.recorder.SaveAnalysis(ctx, entry); err != nil {
		s.logger.Error("analysis.history_save_failed", zap.String("id", entry.ID), zap.Error(err))
	}
}

// Preview returns at most n characters of text, with "..." appended when
// something was cut.
func Preview(text string, n int) string {
	r := []rune(text)
	if len(r) <= n {
		return text
	}
	return string(r[:n]) + "..."
}
