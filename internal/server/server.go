package server

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/franckalain/nourishbloom/internal/tracker"
)

const shutdownTimeout = 10 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // the app is served from the same host
	},
}

// client is one websocket connection. gorilla connections allow a single
// concurrent writer, hence the mutex.
type client struct {
	id   string
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) writeJSON(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	return c.conn.WriteJSON(v)
}

type Server struct {
	tracker *tracker.Service
	clients sync.Map // id -> *client
	log     *zap.Logger
}

func New(t *tracker.Service, log *zap.Logger, debug bool) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	if !debug {
		gin.SetMode(gin.ReleaseMode)
	}
	return &Server{
		tracker: t,
		log:     log.Named("server"),
	}
}

// Router builds the HTTP handler. Unknown paths are served from staticDir
// when it is set.
func (s *Server) Router(staticDir string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestID(), s.requestLogger())

	r.GET("/health", s.handleHealth)
	r.GET("/ws", s.handleWebSocket)

	api := r.Group("/api")
	{
		api.POST("/meals", s.postMeal)
		api.GET("/meals", s.getMeals)
		api.DELETE("/meals/:id", s.deleteMeal)
		api.POST("/meals/estimate", s.postEstimate)
		api.GET("/days/:date", s.getDay)
		api.GET("/flower/stages", s.getStages)
		api.GET("/flower/types", s.getFlowerTypes)
	}

	if staticDir != "" {
		r.NoRoute(gin.WrapH(http.FileServer(http.Dir(staticDir))))
	}
	return r
}

// Start serves on port until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context, port, staticDir string) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           s.Router(staticDir),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.log.Info("starting server", zap.String("port", port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		s.log.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.closeClients()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (s *Server) handleHealth(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}

func (s *Server) addClient(conn *websocket.Conn) *client {
	cl := &client{id: uuid.New().String(), conn: conn}
	s.clients.Store(cl.id, cl)
	return cl
}

func (s *Server) removeClient(cl *client) {
	s.clients.Delete(cl.id)
	cl.conn.Close()
}

func (s *Server) closeClients() {
	s.clients.Range(func(_, v any) bool {
		cl := v.(*client)
		cl.mu.Lock()
		cl.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(time.Second))
		cl.mu.Unlock()
		cl.conn.Close()
		return true
	})
}

// broadcast sends a message to every connected client
func (s *Server) broadcast(messageType string, data any) {
	msg := envelope(messageType, data)
	s.clients.Range(func(_, v any) bool {
		cl := v.(*client)
		if err := cl.writeJSON(msg); err != nil {
			s.log.Debug("broadcast failed", zap.String("client", cl.id), zap.Error(err))
		}
		return true
	})
}

// publishDay pushes a recomputed day, and its milestone if any, to all clients
func (s *Server) publishDay(day *tracker.DaySummary) {
	s.broadcast("day", day)
	if day.Milestone != nil {
		s.broadcast("milestone", day.Milestone)
	}
}
