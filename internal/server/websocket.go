package server

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/franckalain/nourishbloom/internal/tracker"
)

// wsMessage is the envelope for every websocket message in both directions
type wsMessage struct {
	Type    string          `json:"type"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
}

func envelope(messageType string, data any) map[string]any {
	return map[string]any{
		"type": messageType,
		"data": data,
	}
}

func (s *Server) handleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	cl := s.addClient(conn)
	defer s.removeClient(cl)
	s.log.Debug("websocket client connected", zap.String("client", cl.id))

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Warn("error reading message", zap.String("client", cl.id), zap.Error(err))
			}
			break
		}

		var msg wsMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			s.sendError(cl, "Invalid message format")
			continue
		}

		s.handleWebSocketMessage(c.Request.Context(), cl, msg)
	}
}

func (s *Server) handleWebSocketMessage(ctx context.Context, cl *client, msg wsMessage) {
	switch msg.Type {
	case "log_meal":
		s.wsLogMeal(ctx, cl, msg.Data)
	case "get_day":
		s.wsGetDay(ctx, cl, msg.Data)
	case "get_history":
		s.wsGetHistory(ctx, cl, msg.Data)
	case "delete_meal":
		s.wsDeleteMeal(ctx, cl, msg.Data)
	default:
		s.sendError(cl, "Unknown message type")
	}
}

func (s *Server) wsLogMeal(ctx context.Context, cl *client, data json.RawMessage) {
	var req tracker.LogMealRequest
	if err := json.Unmarshal(data, &req); err != nil {
		s.sendError(cl, "Invalid meal data")
		return
	}

	res, err := s.tracker.LogMeal(ctx, req)
	if err != nil {
		s.sendTrackerError(cl, "Failed to log meal", err)
		return
	}

	s.sendMessage(cl, "meal_logged", res.Meal)
	s.publishDay(res.Day)
}

func (s *Server) wsGetDay(ctx context.Context, cl *client, data json.RawMessage) {
	var req struct {
		Date string `json:"date"`
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &req); err != nil {
			s.sendError(cl, "Invalid day request")
			return
		}
	}

	var (
		day *tracker.DaySummary
		err error
	)
	if req.Date == "" || req.Date == "today" {
		day, err = s.tracker.Today(ctx)
	} else {
		day, err = s.tracker.DayByKey(ctx, req.Date)
	}
	if err != nil {
		s.sendTrackerError(cl, "Failed to load day", err)
		return
	}
	s.sendMessage(cl, "day", day)
}

func (s *Server) wsGetHistory(ctx context.Context, cl *client, data json.RawMessage) {
	var req struct {
		Limit int `json:"limit"`
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &req); err != nil {
			s.sendError(cl, "Invalid history request")
			return
		}
	}

	meals, err := s.tracker.Recent(ctx, req.Limit)
	if err != nil {
		s.sendTrackerError(cl, "Failed to retrieve history", err)
		return
	}
	s.sendMessage(cl, "history", map[string]any{"items": meals})
}

func (s *Server) wsDeleteMeal(ctx context.Context, cl *client, data json.RawMessage) {
	var req struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(data, &req); err != nil || req.ID == "" {
		s.sendError(cl, "Missing meal ID")
		return
	}

	day, err := s.tracker.DeleteMeal(ctx, req.ID)
	if err != nil {
		s.sendTrackerError(cl, "Failed to delete meal", err)
		return
	}
	s.publishDay(day)
}

func (s *Server) sendMessage(cl *client, messageType string, data any) {
	if err := cl.writeJSON(envelope(messageType, data)); err != nil {
		s.log.Warn("error sending message", zap.String("type", messageType), zap.Error(err))
	}
}

func (s *Server) sendError(cl *client, message string) {
	msg := map[string]any{
		"type":    "error",
		"message": message,
	}
	if err := cl.writeJSON(msg); err != nil {
		s.log.Warn("error sending error message", zap.Error(err))
	}
}

// sendTrackerError reports validation problems verbatim and hides the rest
func (s *Server) sendTrackerError(cl *client, message string, err error) {
	if errors.Is(err, tracker.ErrInvalidMeal) || errors.Is(err, tracker.ErrNotFound) {
		s.sendError(cl, message+": "+err.Error())
		return
	}
	s.log.Error(message, zap.Error(err))
	s.sendError(cl, message)
}
