// Package server defines the application container that composes the
// app's main dependencies and owns their lifecycle.
//
// Server is not the HTTP server itself; it holds configuration, loggers,
// the database pool, the Redis client, the background job service and the
// periodic health monitor, plus an internal http.Server configured in
// SetupHTTPServer and run by Start. Shutdown tears everything down in
// dependency order.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/newrelic/go-agent/v3/integrations/nrredis-v9"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/nyumbahomes/nyumba/internal/config"
	"github.com/nyumbahomes/nyumba/internal/database"
	"github.com/nyumbahomes/nyumba/internal/lib/job"
	"github.com/nyumbahomes/nyumba/internal/lib/monitor"
	loggerPkg "github.com/nyumbahomes/nyumba/internal/logger"
)

// Server holds shared application resources.
type Server struct {
	Config *config.Config

	Logger *zerolog.Logger

	// LoggerService holds the optional New Relic application; nil app
	// means telemetry is disabled.
	LoggerService *loggerPkg.LoggerService

	DB *database.Database

	Redis *redis.Client

	// Job runs background workers (asynq) and enqueues tasks.
	Job *job.JobService

	// Monitor runs periodic dependency health checks.
	Monitor *monitor.Monitor

	httpServer *http.Server
}

// New constructs a Server and initializes core dependencies: the database
// pool (pinged at startup), the Redis client, the background job service
// and the health monitor.
//
// Redis connectivity failure does not block startup: inquiries keep
// working without notification jobs, so it logs and continues.
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) (*Server, error) {
	db, err := database.New(cfg, logger, loggerService)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr: cfg.Redis.Address,
	})

	if loggerService != nil && loggerService.GetApplication() != nil {
		redisClient.AddHook(nrredis.NewHook(redisClient.Options()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Error().Err(err).Msg("Failed to connect to Redis, continuing without Redis")
	}

	jobService := job.NewJobService(logger, cfg)
	jobService.InitHandlers(cfg, logger)

	if err := jobService.Start(); err != nil {
		return nil, err
	}

	server := &Server{
		Config:        cfg,
		Logger:        logger,
		LoggerService: loggerService,
		DB:            db,
		Redis:         redisClient,
		Job:           jobService,
	}

	if cfg.Observability.HealthChecks.Enabled {
		server.Monitor = monitor.New(cfg, logger, loggerService, db.Pool, redisClient)
		if err := server.Monitor.Start(); err != nil {
			return nil, fmt.Errorf("failed to start health monitor: %w", err)
		}
	}

	return server, nil
}

// SetupHTTPServer configures the internal net/http server with the given
// handler (the Echo router).
func (s *Server) SetupHTTPServer(handler http.Handler) {
	s.httpServer = &http.Server{
		Addr:    ":" + s.Config.Server.Port,
		Handler: handler,

		ReadTimeout:  time.Duration(s.Config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.Config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(s.Config.Server.IdleTimeout) * time.Second,
	}
}

// Start runs the HTTP server. SetupHTTPServer must have been called first.
// It blocks until the server stops or errors.
func (s *Server) Start() error {
	if s.httpServer == nil {
		return errors.New("HTTP server not initialized")
	}

	s.Logger.Info().
		Str("port", s.Config.Server.Port).
		Str("env", s.Config.Primary.Env).
		Msg("starting server")

	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server, the health monitor, the job
// workers and closes the database pool and Redis client.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}

	if s.Monitor != nil {
		s.Monitor.Stop()
	}

	if s.Job != nil {
		s.Job.Stop()
	}

	if err := s.DB.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}

	if err := s.Redis.Close(); err != nil {
		return fmt.Errorf("failed to close redis client: %w", err)
	}

	return nil
}
