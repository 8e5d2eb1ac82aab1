// Package job provides Redis-backed background processing using Asynq.
// Tasks are enqueued through asynq.Client and executed by worker
// goroutines owned by asynq.Server.
package job

import (
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/nyumbahomes/nyumba/internal/config"
	"github.com/nyumbahomes/nyumba/internal/lib/email"
	"github.com/nyumbahomes/nyumba/internal/lib/sms"
)

// JobService holds the Asynq client (enqueue side) and server (worker
// side), plus the delivery clients its handlers need.
type JobService struct {
	// Client enqueues tasks into Redis.
	Client *asynq.Client

	server *asynq.Server
	logger *zerolog.Logger

	emailClient *email.Client
	smsClient   *sms.Client
	adminEmail  string
}

// NewJobService creates a JobService over the configured Redis instance.
// Queue weights split the worker pool so visitor-facing acknowledgements
// drain ahead of internal notifications.
func NewJobService(logger *zerolog.Logger, cfg *config.Config) *JobService {
	redisAddr := cfg.Redis.Address

	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr: redisAddr,
	})

	server := asynq.NewServer(
		asynq.RedisClientOpt{Addr: redisAddr},
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
		},
	)

	return &JobService{
		Client: client,
		server: server,
		logger: logger,
	}
}

// InitHandlers constructs the delivery clients task handlers depend on.
// It must run before Start.
func (j *JobService) InitHandlers(cfg *config.Config, logger *zerolog.Logger) {
	j.emailClient = email.NewClient(cfg, logger)
	j.smsClient = sms.NewClient(cfg, logger)
	j.adminEmail = cfg.Integration.AdminEmail
}

// Start registers task handlers and starts the worker server. Asynq's
// Start returns immediately; workers run until Stop.
func (j *JobService) Start() error {
	mux := asynq.NewServeMux()

	mux.HandleFunc(TaskInquiryAck, j.handleInquiryAckTask)
	mux.HandleFunc(TaskInquiryNotify, j.handleInquiryNotifyTask)

	j.logger.Info().Msg("starting background job server")

	if err := j.server.Start(mux); err != nil {
		return err
	}

	return nil
}

// Stop gracefully stops the workers and closes the enqueue client.
func (j *JobService) Stop() {
	j.logger.Info().Msg("stopping background job server")
	j.server.Shutdown()
	j.Client.Close()
}
