package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/jsamuelsen11/projectboard/internal/platform/config"
	"github.com/jsamuelsen11/projectboard/internal/platform/logging"
)

// DefaultDrainTimeout bounds Shutdown when the caller's context has no
// deadline.
const DefaultDrainTimeout = 10 * time.Second

// Server hosts the board API.
type Server struct {
	srv    *http.Server
	logger *slog.Logger
}

// NewServer configures a server for cfg. Request contexts carry logger, so
// code below the middleware can reach it through logging.FromContext.
func NewServer(cfg config.ServerConfig, handler http.Handler, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	logger = logging.Component(logger, "http")

	return &Server{
		srv: &http.Server{
			Addr:              net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
			Handler:           handler,
			ReadHeaderTimeout: cfg.ReadTimeout,
			ReadTimeout:       cfg.ReadTimeout,
			WriteTimeout:      cfg.WriteTimeout,
			IdleTimeout:       cfg.IdleTimeout,
			ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
			BaseContext: func(net.Listener) context.Context {
				return logging.WithLogger(context.Background(), logger)
			},
		},
		logger: logger,
	}
}

// Addr is the configured listen address.
func (s *Server) Addr() string {
	return s.srv.Addr
}

// Run listens on Addr and serves until ctx is done, then drains in-flight
// requests for at most drain. It returns nil after a clean drain.
func (s *Server) Run(ctx context.Context, drain time.Duration) error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.srv.Addr, err)
	}

	served := make(chan error, 1)
	go func() { served <- s.Serve(ln) }()

	select {
	case err := <-served:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), drain)
	defer cancel()
	if err := s.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-served
}

// Serve accepts connections on ln until Shutdown. It returns nil once the
// server has been shut down.
func (s *Server) Serve(ln net.Listener) error {
	s.logger.Info("serving", slog.String("addr", ln.Addr().String()))

	err := s.srv.Serve(ln)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return fmt.Errorf("serving http: %w", err)
}

// Shutdown stops accepting connections and waits for in-flight requests.
// Without a deadline on ctx it waits DefaultDrainTimeout.
func (s *Server) Shutdown(ctx context.Context) error {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultDrainTimeout)
		defer cancel()
	}

	s.logger.Info("draining connections")
	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("draining http server: %w", err)
	}
	return nil
}
