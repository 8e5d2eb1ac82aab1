// Package logger configures the application's structured logging and its
// New Relic integration.
//
// It builds the root zerolog logger (console or JSON format, level from
// config), optionally routes log lines through New Relic log forwarding,
// and exposes helpers for correlating pgx query logs and trace metadata.
package logger

import (
	"fmt"
	"io"
	"os"

	"github.com/jackc/pgx/v5/tracelog"
	"github.com/newrelic/go-agent/v3/integrations/logcontext-v2/zerologWriter"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"

	"github.com/nyumbahomes/nyumba/internal/config"
)

// LoggerService wraps the optional New Relic application instance. A nil
// receiver or nil inner application means New Relic is disabled and every
// consumer degrades to a no-op.
type LoggerService struct {
	nrApp *newrelic.Application
}

// GetApplication returns the New Relic application, or nil when disabled.
func (s *LoggerService) GetApplication() *newrelic.Application {
	if s == nil {
		return nil
	}
	return s.nrApp
}

// Shutdown flushes buffered telemetry. Safe to call when disabled.
func (s *LoggerService) Shutdown() {
	if s != nil && s.nrApp != nil {
		s.nrApp.Shutdown(0)
	}
}

// New builds the root logger and, when a license key is configured, the
// New Relic application with log forwarding wired into the zerolog output.
func New(cfg *config.Config) (*zerolog.Logger, *LoggerService, error) {
	level, err := zerolog.ParseLevel(cfg.Observability.GetLogLevel())
	if err != nil {
		return nil, nil, fmt.Errorf("parsing log level: %w", err)
	}

	service := &LoggerService{}

	nrCfg := cfg.Observability.NewRelic
	if nrCfg.LicenseKey != "" {
		app, err := newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.Observability.ServiceName),
			newrelic.ConfigLicense(nrCfg.LicenseKey),
			newrelic.ConfigDistributedTracerEnabled(nrCfg.DistributedTracingEnabled),
			newrelic.ConfigAppLogForwardingEnabled(nrCfg.AppLogForwardingEnabled),
		)
		if err != nil {
			return nil, nil, fmt.Errorf("initializing new relic application: %w", err)
		}
		service.nrApp = app
	}

	var out io.Writer = os.Stdout
	if cfg.Observability.Logging.Format == "console" {
		out = zerolog.ConsoleWriter{Out: os.Stdout}
	}
	if service.nrApp != nil && nrCfg.AppLogForwardingEnabled {
		w := zerologWriter.New(out, service.nrApp)
		out = &w
	}

	log := zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("service", cfg.Observability.ServiceName).
		Str("env", cfg.Observability.Environment).
		Logger()

	return &log, service, nil
}

// NewPgxLogger builds the logger pgx query tracing writes to. SQL logging
// is noisy, so it gets its own console-formatted logger at the given level.
func NewPgxLogger(level zerolog.Level) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().
		Timestamp().
		Str("component", "pgx").
		Logger()
}

// GetPgxTraceLogLevel maps the application log level onto a pgx tracelog
// level so query tracing verbosity follows the app's.
func GetPgxTraceLogLevel(level zerolog.Level) int {
	switch level {
	case zerolog.TraceLevel:
		return int(tracelog.LogLevelTrace)
	case zerolog.DebugLevel:
		return int(tracelog.LogLevelDebug)
	case zerolog.InfoLevel:
		return int(tracelog.LogLevelInfo)
	case zerolog.WarnLevel:
		return int(tracelog.LogLevelWarn)
	case zerolog.ErrorLevel, zerolog.FatalLevel, zerolog.PanicLevel:
		return int(tracelog.LogLevelError)
	default:
		return int(tracelog.LogLevelNone)
	}
}

// WithTraceContext returns a child logger annotated with the transaction's
// trace and span ids so log lines correlate with distributed traces.
func WithTraceContext(log zerolog.Logger, txn *newrelic.Transaction) zerolog.Logger {
	if txn == nil {
		return log
	}
	md := txn.GetTraceMetadata()
	return log.With().
		Str("trace.id", md.TraceID).
		Str("span.id", md.SpanID).
		Logger()
}
