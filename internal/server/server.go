package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/lppm/research-portal/internal/bootstrap"
	"github.com/lppm/research-portal/internal/config"
	"github.com/lppm/research-portal/internal/db"
	"github.com/lppm/research-portal/internal/pkg/metrics"
)

// TokenCleaner prunes expired access tokens.
type TokenCleaner interface {
	CleanupExpiredTokens(ctx context.Context) (int64, error)
}

// Server holds the state for the HTTP server.
type Server struct {
	config    *config.Config
	router    *gin.Engine
	database  *db.PostgresDB
	scheduler *cron.Cron
	logger    zerolog.Logger
	http      *http.Server
}

// NewServer creates and initializes a new server instance by calling bootstrap functions.
func NewServer() (*Server, error) {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to load config or setup logger: %w", err)
	}

	database, err := bootstrap.SetupDatabase(cfg, lgr)
	if err != nil {
		return nil, fmt.Errorf("failed to setup database: %w", err)
	}

	deps, err := bootstrap.BuildDependencies(cfg, database, lgr)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to setup dependencies: %w", err)
	}

	router := bootstrap.SetupRouter(cfg, deps, lgr)

	scheduler, err := NewScheduler(cfg.JWT.CleanupSchedule, deps.AuthService, deps.Metrics, lgr)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to schedule token cleanup: %w", err)
	}

	return &Server{
		config:    cfg,
		router:    router,
		database:  database,
		scheduler: scheduler,
		logger:    lgr,
	}, nil
}

// NewScheduler registers the token cleanup job on schedule. The scheduler is not started.
func NewScheduler(schedule string, cleaner TokenCleaner, m *metrics.Metrics, lgr zerolog.Logger) (*cron.Cron, error) {
	scheduler := cron.New()
	_, err := scheduler.AddFunc(schedule, func() {
		runTokenCleanup(cleaner, m, lgr)
	})
	if err != nil {
		return nil, fmt.Errorf("invalid cleanup schedule %q: %w", schedule, err)
	}
	return scheduler, nil
}

func runTokenCleanup(cleaner TokenCleaner, m *metrics.Metrics, lgr zerolog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	n, err := cleaner.CleanupExpiredTokens(ctx)
	if err != nil {
		lgr.Error().Err(err).Msg("Token cleanup job failed")
		return
	}
	if m != nil {
		m.TokensPruned(n)
	}
	lgr.Info().Int64("pruned", n).Msg("Token cleanup job completed")
}

// Run starts the HTTP server and handles graceful shutdown.
func (s *Server) Run() error {
	s.logger.Info().Str("port", s.config.Server.Port).Msg("Starting server...")

	s.http = &http.Server{
		Addr:              ":" + s.config.Server.Port,
		Handler:           s.router,
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info().Str("addr", s.http.Addr).Msg("HTTP server listening")
		serverErrors <- s.http.ListenAndServe()
	}()

	s.scheduler.Start()
	s.logger.Info().Str("schedule", s.config.JWT.CleanupSchedule).Msg("Token cleanup scheduled")

	osSignals := make(chan os.Signal, 1)
	signal.Notify(osSignals, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			s.scheduler.Stop()
			return fmt.Errorf("error starting server: %w", err)
		}
	case sig := <-osSignals:
		s.logger.Info().Str("signal", sig.String()).Msg("Received OS signal, initiating shutdown...")
	}

	return s.Shutdown(context.Background())
}

// Shutdown gracefully stops the server and closes resources.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	shutdownError := false

	if s.http != nil {
		s.logger.Info().Msg("Shutting down HTTP server...")
		if err := s.http.Shutdown(ctx); err != nil {
			s.logger.Error().Err(err).Msg("HTTP server shutdown error")
			shutdownError = true
		} else {
			s.logger.Info().Msg("HTTP server gracefully stopped.")
		}
	}

	if s.scheduler != nil {
		// Wait for a running cleanup job before the pool goes away.
		select {
		case <-s.scheduler.Stop().Done():
		case <-ctx.Done():
			s.logger.Warn().Msg("Token cleanup job still running at shutdown")
		}
	}

	if s.database != nil {
		s.logger.Info().Msg("Closing database connection pool...")
		s.database.Close()
		s.logger.Info().Msg("Database connection pool closed.")
	}

	s.logger.Info().Msg("Server shutdown process complete.")
	if shutdownError {
		return errors.New("server shutdown completed with errors")
	}
	return nil
}
