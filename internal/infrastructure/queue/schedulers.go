package queue

import (
	"time"

	"github.com/hibiken/asynq"

	"marketplace-backend/internal/config"
	"marketplace-backend/internal/domains/order/job"
	"marketplace-backend/pkg/logger"
)

type Scheduler struct {
	scheduler *asynq.Scheduler
	jobConfig config.JobConfig
}

func NewScheduler(redisAddress string, jobConfig config.JobConfig) *Scheduler {
	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{Addr: redisAddress},
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{
		scheduler: scheduler,
		jobConfig: jobConfig,
	}
}

func (s *Scheduler) RegisterCleanupJobs() error {
	return s.registerAbandonStaleRequestsJob()
}

// ================================================
// ABANDON STALE PAYMENT REQUESTS
// ================================================
// Chạy định kỳ để abandon các additional payment request
// mà khách bỏ dở, trả order về shipping cũ.
func (s *Scheduler) registerAbandonStaleRequestsJob() error {
	task, err := job.NewAbandonStaleRequestsTask()
	if err != nil {
		return err
	}

	entryID, err := s.scheduler.Register(
		s.jobConfig.AbandonStaleRequestsCron,
		task,
		asynq.Queue("low"),
	)
	if err != nil {
		return err
	}

	logger.Info("Registered abandon stale requests job", map[string]interface{}{
		"entry_id": entryID,
		"cron":     s.jobConfig.AbandonStaleRequestsCron,
	})

	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Start()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
