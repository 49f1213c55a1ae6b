package server

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/franckalain/nourishbloom/internal/flower"
	"github.com/franckalain/nourishbloom/internal/tracker"
)

// requestID ensures every request carries a correlation ID
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.GetHeader("X-Request-ID")
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Set("request_id", reqID)
		c.Writer.Header().Set("X-Request-ID", reqID)
		c.Next()
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Debug("request",
			zap.String("request_id", c.GetString("request_id")),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

func abort(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"error": message, "code": code})
}

// handleError maps tracker errors onto HTTP status codes
func (s *Server) handleError(c *gin.Context, message string, err error) {
	switch {
	case errors.Is(err, tracker.ErrInvalidMeal):
		abort(c, http.StatusBadRequest, message+": "+err.Error())
	case errors.Is(err, tracker.ErrNotFound):
		abort(c, http.StatusNotFound, message+": "+err.Error())
	default:
		s.log.Error(message, zap.String("request_id", c.GetString("request_id")), zap.Error(err))
		abort(c, http.StatusInternalServerError, message)
	}
}

func (s *Server) postMeal(c *gin.Context) {
	var req tracker.LogMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}

	res, err := s.tracker.LogMeal(c.Request.Context(), req)
	if err != nil {
		s.handleError(c, "Failed to log meal", err)
		return
	}

	s.publishDay(res.Day)
	c.JSON(http.StatusCreated, res)
}

// getMeals returns one day's meals with ?date=, otherwise the most recent
func (s *Server) getMeals(c *gin.Context) {
	if date := c.Query("date"); date != "" {
		day, err := s.dayFor(c, date)
		if err != nil {
			s.handleError(c, "Failed to load meals", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"date": day.Date, "items": day.Meals})
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			abort(c, http.StatusBadRequest, "'limit' must be a non-negative integer")
			return
		}
		limit = n
	}

	meals, err := s.tracker.Recent(c.Request.Context(), limit)
	if err != nil {
		s.handleError(c, "Failed to fetch meals", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": meals})
}

func (s *Server) deleteMeal(c *gin.Context) {
	day, err := s.tracker.DeleteMeal(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.handleError(c, "Failed to delete meal", err)
		return
	}

	s.publishDay(day)
	c.JSON(http.StatusOK, day)
}

func (s *Server) postEstimate(c *gin.Context) {
	var req tracker.LogMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}

	v, err := s.tracker.Estimate(req)
	if err != nil {
		s.handleError(c, "Failed to estimate meal", err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (s *Server) getDay(c *gin.Context) {
	day, err := s.dayFor(c, c.Param("date"))
	if err != nil {
		s.handleError(c, "Failed to load day", err)
		return
	}
	c.JSON(http.StatusOK, day)
}

func (s *Server) dayFor(c *gin.Context, date string) (*tracker.DaySummary, error) {
	if date == "today" {
		return s.tracker.Today(c.Request.Context())
	}
	return s.tracker.DayByKey(c.Request.Context(), date)
}

func (s *Server) getStages(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"daily_target": flower.DailyTarget, "items": flower.Stages})
}

func (s *Server) getFlowerTypes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"items": flower.Types})
}
