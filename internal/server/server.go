package server

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"tubeideas/internal/config"
	"tubeideas/internal/handlers"
	"tubeideas/internal/middlewares"
)

type Server struct {
	cfg         *config.Config
	httpServer  *http.Server
	analyzer    handlers.Analyzer
	limiter     *middlewares.RateLimiter
	stopCleanup context.CancelFunc
}

func NewServer(cfg *config.Config) (*Server, error) {
	analyzer, err := NewPipeline(context.Background(), cfg)
	if err != nil {
		return nil, err
	}

	s := &Server{
		cfg:      cfg,
		analyzer: analyzer,
		limiter:  middlewares.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
	}

	// Analyses can run up to AnalyzeTimeout, so the write deadline must outlast it.
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.AnalyzeTimeout + 10*time.Second,
	}

	return s, nil
}

func (s *Server) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	s.stopCleanup = cancel
	go s.limiter.Cleanup(ctx, time.Minute)

	log.Info().Int("port", s.cfg.Port).Msg("Starting server")
	return s.httpServer.ListenAndServe()
}

func (s *Server) GracefulShutdown(done chan bool) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	log.Info().Msg("Shutting down gracefully, press Ctrl+C again to force")
	stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown with error")
	}
	if s.stopCleanup != nil {
		s.stopCleanup()
	}

	log.Info().Msg("Server exiting")
	done <- true
}
