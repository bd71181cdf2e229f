package queue

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"checkout-backend/internal/config"
	"checkout-backend/internal/shared"
	"checkout-backend/pkg/logger"
)

type Scheduler struct {
	scheduler *asynq.Scheduler
	jobConfig config.JobConfig
}

func NewScheduler(redisAddress, redisPassword string, redisDB int, jobConfig config.JobConfig) *Scheduler {
	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{Addr: redisAddress, Password: redisPassword, DB: redisDB},
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

func (s *Scheduler) RegisterCheckoutJobs() error {
	return s.registerReconcilePendingPaymentsJob()
}

// ================================================
// JOB 1: Reconcile Pending Payments
// ================================================
// Sweeps orders stuck in PENDING and asks the gateway for their real status.
// The cadence is configurable; webhooks remain the primary signal and this
// job only covers deliveries that never arrived.
func (s *Scheduler) registerReconcilePendingPaymentsJob() error {
	payload, err := json.Marshal(shared.ReconcilePendingPayload{})
	if err != nil {
		return err
	}

	task := asynq.NewTask(shared.TypeReconcilePendingPayments, payload)

	_, err = s.scheduler.Register(
		s.jobConfig.ReconcileCron,
		task,
		asynq.Queue(shared.QueueDefault),
		asynq.MaxRetry(2),
		asynq.Timeout(5*time.Minute),
	)

	if err != nil {
		logger.Error("Failed to register ReconcilePendingPayments job", err)
		return err
	}

	logger.Info("Registered ReconcilePendingPayments", map[string]interface{}{
		"cron": s.jobConfig.ReconcileCron,
	})
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Run()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
