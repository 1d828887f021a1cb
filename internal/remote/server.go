package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-brush/internal/brush"
	"github.com/vovakirdan/tui-brush/internal/config"
	"github.com/vovakirdan/tui-brush/internal/storage"
)

// Server accepts websocket clients and gives each one a brush.
type Server struct {
	cfg      config.Config
	opts     brush.Options
	initial  brush.State
	store    *storage.Store
	logger   *log.Logger
	upgrader websocket.Upgrader
	router   chi.Router

	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

// NewServer creates a gesture server. Finished selections are saved to
// store when it is not nil; the server does not close it.
func NewServer(cfg config.Config, store *storage.Store, logger *log.Logger) (*Server, error) {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "brush-remote",
		})
	}

	initial, err := InitialState(cfg)
	if err != nil {
		return nil, err
	}

	s := &Server{
		cfg: cfg,
		opts: brush.Options{
			DisableDraggingSelection: cfg.Brush.DisableDraggingSelection,
			UseWindowMoveEvents:      cfg.Brush.UseWindowMoveEvents,
		},
		initial: initial,
		store:   store,
		logger:  logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		conns: make(map[*websocket.Conn]struct{}),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)
	r.Get("/healthz", s.healthz)
	r.Get(cfg.Remote.Path, s.serveWS)
	s.router = r

	return s, nil
}

// InitialState places the configured initial selection on a stage of
// remote.stage_width by remote.stage_height units.
func InitialState(cfg config.Config) (brush.State, error) {
	w, h := cfg.Remote.StageWidth, cfg.Remote.StageHeight
	f := cfg.Brush.Initial
	st, err := brush.NewState(
		brush.Bounds{X0: 0, X1: w, Y0: 0, Y1: h},
		brush.Extent{X0: f.X0 * w, X1: f.X1 * w, Y0: f.Y0 * h, Y1: f.Y1 * h},
	)
	if err != nil {
		return brush.State{}, fmt.Errorf("remote: initial selection: %w", err)
	}
	return st, nil
}

// Handler returns the HTTP handler serving the websocket and health routes.
func (s *Server) Handler() http.Handler {
	return s.router
}

// logRequests logs every request once it has been served.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", middleware.GetReqID(r.Context()),
			"took", time.Since(start),
		)
	})
}

// healthz reports liveness and the number of open connections.
func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "ok",
		"connections": s.Connections(),
	})
}

// serveWS upgrades the connection and processes gesture frames until the
// client goes away.
func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrade failed", "error", err)
		return
	}
	s.track(ws)
	defer s.untrack(ws)

	c := newConn(ws, s.initial, s.opts, s.cfg.Stage.Series, s.store, s.logger)
	c.logger.Info("client connected", "remote", r.RemoteAddr)
	defer c.logger.Info("client disconnected")

	c.send(stateReply(c.state.State()))
	for c.err == nil {
		_, r, err := ws.NextReader()
		if err != nil {
			return
		}
		// Any frame that does not decode is answered, the connection stays.
		var msg Message
		if err := json.NewDecoder(r).Decode(&msg); err != nil {
			c.send(errorReply(fmt.Errorf("remote: bad frame: %w", err)))
			continue
		}
		c.handle(msg)
	}
	c.logger.Warn("connection dropped", "error", c.err)
}

func (s *Server) track(ws *websocket.Conn) {
	s.mu.Lock()
	s.conns[ws] = struct{}{}
	s.mu.Unlock()
}

func (s *Server) untrack(ws *websocket.Conn) {
	s.mu.Lock()
	delete(s.conns, ws)
	s.mu.Unlock()
	_ = ws.Close()
}

// Connections returns the number of open websocket connections.
func (s *Server) Connections() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.conns)
}

// closeAll drops every open websocket connection.
func (s *Server) closeAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for ws := range s.conns {
		_ = ws.Close()
	}
}

// ListenAndServe serves on remote.address until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Remote.Address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting gesture server", "address", srv.Addr, "path", s.cfg.Remote.Path)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Hijacked websocket connections are not closed by Shutdown.
	s.closeAll()
	return srv.Shutdown(shutdownCtx)
}

// writeJSON writes v as a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("cannot encode response", "error", err)
	}
}
