package server

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/franckalain/healthanalyzer/internal/apperror"
	"github.com/franckalain/healthanalyzer/internal/images"
	"github.com/franckalain/healthanalyzer/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

type analyzeForm struct {
	File     *multipart.FileHeader `form:"file" binding:"required"`
	Category string                `form:"category" binding:"required,oneof=food medical"`
}

// POST /api/v1/analyze
func (s *Server) handleAnalyze(c *gin.Context) {
	var form analyzeForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": bindingMessage(err)})
		return
	}

	result, err := s.analyzer.Analyze(c.Request.Context(), models.Category(form.Category), images.Multipart{Header: form.File})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GET /api/v1/
func (s *Server) handleInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":    "Health & Nutrition Analyzer API",
		"version": "1.0.0",
		"endpoints": gin.H{
			"/api/v1/analyze":     "POST - Analyze food or medical images",
			"/api/v1/history":     "GET - Recent analyses",
			"/api/v1/history/:id": "GET - One stored analysis",
			"/ws":                 "WebSocket - Analyze images over a persistent connection",
		},
	})
}

// GET /api/v1/history?limit=N
func (s *Server) handleHistory(c *gin.Context) {
	if s.history == nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "history is disabled"})
		return
	}

	limit, err := parseLimit(c.Query("limit"))
	if err != nil {
		s.fail(c, err)
		return
	}

	records, err := s.history.GetRecentAnalyses(c.Request.Context(), limit)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

// GET /api/v1/history/:id
func (s *Server) handleHistoryEntry(c *gin.Context) {
	if s.history == nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "history is disabled"})
		return
	}

	id := c.Param("id")
	record, err := s.history.GetAnalysis(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err)
		return
	}
	if record == nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "analysis " + id + " not found"})
		return
	}
	c.JSON(http.StatusOK, record)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"provider": s.analyzer.ModelName(),
	})
}

// fail writes {detail} with the status the error maps to
func (s *Server) fail(c *gin.Context, err error) {
	status := apperror.StatusCode(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("http.request_failed",
			zap.String("request_id", c.GetString("request_id")),
			zap.Error(err),
			zap.Stack("stack"),
		)
	} else {
		s.logger.Info("http.request_rejected",
			zap.String("request_id", c.GetString("request_id")),
			zap.Error(err),
		)
	}
	c.JSON(status, gin.H{"detail": err.Error()})
}

func parseLimit(raw string) (int, error) {
	if raw == "" {
		return defaultHistoryLimit, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, apperror.NewValidationError("limit must be a positive integer")
	}
	if n > maxHistoryLimit {
		n = maxHistoryLimit
	}
	return n, nil
}

func bindingMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, field+" is required")
		case "oneof":
			msgs = append(msgs, field+" must be one of: "+fe.Param())
		default:
			msgs = append(msgs, field+" is invalid")
		}
	}
	return strings.Join(msgs, "; ")
}
