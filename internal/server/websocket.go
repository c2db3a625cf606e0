package server

import (
	"encoding/base64"
	"encoding/json"

	"github.com/franckalain/healthanalyzer/internal/images"
	"github.com/franckalain/healthanalyzer/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type wsMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type wsAnalyzeRequest struct {
	Image    string `json:"image"`
	MIMEType string `json:"mime_type"`
	Category string `json:"category"`
}

// GET /ws
func (s *Server) handleWebSocket(c *gin.Context) {
	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.logger.Warn("ws.upgrade_failed", zap.Error(err))
		return
	}
	defer conn.Close()

	clientID := uuid.New().String()
	s.clients.Store(clientID, conn)
	defer s.clients.Delete(clientID)

	log := s.logger.With(zap.String("client_id", clientID))
	log.Info("ws.connected")

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Warn("ws.read_failed", zap.Error(err))
			}
			break
		}

		var msg wsMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			s.sendError(conn, "Invalid message format")
			continue
		}
		s.handleWebSocketMessage(c, conn, msg)
	}
	log.Info("ws.disconnected")
}

func (s *Server) handleWebSocketMessage(c *gin.Context, conn *websocket.Conn, msg wsMessage) {
	switch msg.Type {
	case "analyze":
		s.handleWSAnalyze(c, conn, msg.Data)
	case "get_history":
		s.handleWSHistory(c, conn)
	default:
		s.sendError(conn, "Unknown message type")
	}
}

func (s *Server) handleWSAnalyze(c *gin.Context, conn *websocket.Conn, data json.RawMessage) {
	var req wsAnalyzeRequest
	if err := json.Unmarshal(data, &req); err != nil || req.Image == "" {
		s.sendError(conn, "Invalid image data")
		return
	}

	imageData, err := base64.StdEncoding.DecodeString(req.Image)
	if err != nil {
		s.sendError(conn, "Invalid image encoding")
		return
	}

	file := images.Bytes{MIMEType: req.MIMEType, Data: imageData}
	result, err := s.analyzer.Analyze(c.Request.Context(), models.Category(req.Category), file)
	if err != nil {
		s.logger.Error("ws.analyze_failed", zap.Error(err))
		s.sendError(conn, err.Error())
		return
	}
	s.sendMessage(conn, "analysis_result", result)
}

func (s *Server) handleWSHistory(c *gin.Context, conn *websocket.Conn) {
	if s.history == nil {
		s.sendError(conn, "history is disabled")
		return
	}

	records, err := s.history.GetRecentAnalyses(c.Request.Context(), defaultHistoryLimit)
	if err != nil {
		s.logger.Error("ws.history_failed", zap.Error(err))
		s.sendError(conn, "Failed to retrieve history")
		return
	}
	s.sendMessage(conn, "history", records)
}

func (s *Server) sendMessage(conn *websocket.Conn, messageType string, data any) {
	msg := map[string]any{
		"type": messageType,
		"data": data,
	}
	if err := conn.WriteJSON(msg); err != nil {
		s.logger.Warn("ws.write_failed", zap.String("type", messageType), zap.Error(err))
	}
}

func (s *Server) sendError(conn *websocket.Conn, message string) {
	msg := map[string]any{
		"type":    "error",
		"message": message,
	}
	if err := conn.WriteJSON(msg); err != nil {
		s.logger.Warn("ws.write_failed", zap.String("type", "error"), zap.Error(err))
	}
}
