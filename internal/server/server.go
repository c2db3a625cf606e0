// Package server exposes the analysis service over HTTP and websocket.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/franckalain/healthanalyzer/internal/images"
	"github.com/franckalain/healthanalyzer/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// Analyzer runs one analysis
type Analyzer interface {
	Analyze(ctx context.Context, category models.Category, file images.File) (any, error)
	ModelName() string
}

// History reads stored analyses. It is optional.
type History interface {
	GetAnalysis(ctx context.Context, id string) (*models.AnalysisRecord, error)
	GetRecentAnalyses(ctx context.Context, limit int) ([]*models.AnalysisRecord, error)
}

type Server struct {
	analyzer  Analyzer
	history   History
	logger    *zap.Logger
	staticDir string
	engine    *gin.Engine
	upgrader  websocket.Upgrader
	clients   sync.Map
}

// New builds the server and its routes. history may be nil, in which case
// the history endpoints report that it is disabled.
func New(analyzer Analyzer, history History, logger *zap.Logger, staticDir string) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		analyzer:  analyzer,
		history:   history,
		logger:    logger,
		staticDir: staticDir,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
	s.engine = s.routes()
	return s
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()

	r.Use(s.recovery())
	r.Use(requestID())
	r.Use(s.accessLog())
	r.Use(cors())

	r.GET("/health", s.handleHealth)
	r.GET("/ws", s.handleWebSocket)

	v1 := r.Group("/api/v1")
	{
		v1.GET("/", s.handleInfo)
		v1.POST("/analyze", s.handleAnalyze)
		v1.GET("/history", s.handleHistory)
		v1.GET("/history/:id", s.handleHistoryEntry)
	}

	if s.staticDir != "" {
		r.NoRoute(gin.WrapH(http.FileServer(http.Dir(s.staticDir))))
	}
	return r
}

// Run serves on the given port until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server.start", zap.String("addr", srv.Addr), zap.String("provider", s.analyzer.ModelName()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("server.shutdown")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	s.closeClients()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func (s *Server) closeClients() {
	s.clients.Range(func(key, value any) bool {
		if conn, ok := value.(*websocket.Conn); ok {
			conn.Close()
		}
		s.clients.Delete(key)
		return true
	})
}
