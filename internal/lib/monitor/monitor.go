// Package monitor runs periodic dependency health checks on a cron
// schedule and reports the results through logs and, when the agent is
// active, New Relic custom events.
package monitor

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/nyumbahomes/nyumba/internal/config"
	loggerPkg "github.com/nyumbahomes/nyumba/internal/logger"
)

// Monitor schedules and runs the configured dependency checks.
type Monitor struct {
	cfg           *config.Config
	logger        *zerolog.Logger
	loggerService *loggerPkg.LoggerService

	pool        *pgxpool.Pool
	redisClient *redis.Client

	cron *cron.Cron
}

// New creates a Monitor over the shared database pool and Redis client.
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService, pool *pgxpool.Pool, redisClient *redis.Client) *Monitor {
	return &Monitor{
		cfg:           cfg,
		logger:        logger,
		loggerService: loggerService,
		pool:          pool,
		redisClient:   redisClient,
		cron:          cron.New(),
	}
}

// Start registers the check job at the configured interval and starts the
// scheduler. One round of checks runs immediately so a broken dependency
// shows up in the logs at boot rather than one interval later.
func (m *Monitor) Start() error {
	interval := m.cfg.Observability.HealthChecks.Interval
	if interval <= 0 {
		interval = 30 * time.Second
	}

	spec := fmt.Sprintf("@every %s", interval)
	if _, err := m.cron.AddFunc(spec, m.runChecks); err != nil {
		return fmt.Errorf("failed to schedule health checks: %w", err)
	}

	m.cron.Start()
	go m.runChecks()

	m.logger.Info().
		Str("interval", interval.String()).
		Strs("checks", m.cfg.Observability.HealthChecks.Checks).
		Msg("health monitor started")

	return nil
}

// Stop stops the scheduler and waits for any in-flight check to finish.
func (m *Monitor) Stop() {
	ctx := m.cron.Stop()
	<-ctx.Done()
	m.logger.Info().Msg("health monitor stopped")
}

func (m *Monitor) runChecks() {
	timeout := m.cfg.Observability.HealthChecks.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	for _, check := range m.cfg.Observability.HealthChecks.Checks {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)

		var err error
		start := time.Now()
		switch check {
		case "database":
			err = m.pool.Ping(ctx)
		case "redis":
			err = m.redisClient.Ping(ctx).Err()
		default:
			m.logger.Warn().Str("check", check).Msg("unknown health check, skipping")
			cancel()
			continue
		}
		cancel()

		m.report(check, time.Since(start), err)
	}
}

func (m *Monitor) report(check string, elapsed time.Duration, err error) {
	healthy := err == nil

	event := m.logger.Info()
	if !healthy {
		event = m.logger.Error().Err(err)
	}
	event.
		Str("check", check).
		Bool("healthy", healthy).
		Dur("elapsed", elapsed).
		Msg("health check")

	if m.loggerService == nil || m.loggerService.GetApplication() == nil {
		return
	}
	m.loggerService.GetApplication().RecordCustomEvent("HealthCheck", map[string]any{
		"check":     check,
		"healthy":   healthy,
		"elapsedMs": float64(elapsed.Milliseconds()),
	})
}
