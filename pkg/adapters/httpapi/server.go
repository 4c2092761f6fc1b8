package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aretw0/notesrv/pkg/core"
)

// Config holds the HTTP surface settings.
type Config struct {
	Addr           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	MaxUploadBytes int64
	Debug          bool
	Version        string
	Logger         *slog.Logger
}

// Server exposes a core.Service over HTTP.
type Server struct {
	svc     *core.Service
	cfg     Config
	logger  *slog.Logger
	engine  *gin.Engine
	srv     *http.Server
	openapi map[string]any

	// ctx is canceled by Stop so hijacked websocket connections end too.
	ctx    context.Context
	cancel context.CancelFunc
}

// New builds the router and the underlying http.Server. Nothing listens until Start.
func New(svc *core.Service, cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if !cfg.Debug && gin.Mode() == gin.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		svc:    svc,
		cfg:    cfg,
		logger: cfg.Logger,
		ctx:    ctx,
		cancel: cancel,
	}

	doc, err := loadOpenAPI()
	if err != nil {
		s.logger.Error("openapi document unavailable", "error", err)
	}
	s.openapi = doc

	s.engine = gin.New()
	s.engine.Use(requestID(), requestLogger(s.logger), recovery(s.logger))
	s.setupRoutes()

	s.srv = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.engine,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return s
}

// Handler returns the root http.Handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start listens on the configured address and blocks until the server stops.
// A graceful Stop is not reported as an error.
func (s *Server) Start() error {
	s.logger.Info("http.server.start", "addr", s.cfg.Addr)
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop drains in-flight requests and closes event streams.
func (s *Server) Stop(ctx context.Context) error {
	s.cancel()
	return s.srv.Shutdown(ctx)
}

// Run starts the server and stops it once ctx is done, allowing up to
// shutdownTimeout for in-flight requests.
func (s *Server) Run(ctx context.Context, shutdownTimeout time.Duration) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("http.server.stop", "timeout", shutdownTimeout)
	stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.Stop(stopCtx); err != nil {
		return err
	}
	return <-errCh
}
