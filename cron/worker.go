package cron

import (
	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"warrapay/config"
	"warrapay/services/tasks"
)

// InitTrialReminderWorker starts the asynq worker that delivers
// trial-ending reminders. The returned server should be shut down
// before the process exits.
func InitTrialReminderWorker(logger *zap.Logger) *asynq.Server {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeTrialEndingReminder, tasks.HandleTrialReminderTask(logger))

	go func() {
		logger.Sugar().Info("starting trial reminder worker...")
		if err := srv.Run(mux); err != nil {
			logger.Sugar().Errorf("trial reminder worker stopped: %v", err)
		}
	}()

	return srv
}
