package scheduler

import (
	"fmt"
	"sync"

	"github.com/Tanya-Zhu/fitness-manager/internal/config"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"
)

// Scheduler maintains one cron entry per enabled reminder. It wraps the asynq
// scheduler with a job-id registry so entries can be removed by the reminder's
// stable job id rather than asynq's generated entry id.
type Scheduler struct {
	scheduler *asynq.Scheduler
	logger    *logrus.Logger

	mu      sync.Mutex
	entries map[string]string // job id -> asynq entry id
}

// New creates the scheduler. Nothing talks to Redis until Start.
func New(cfg config.RedisConfig, logger *logrus.Logger) *Scheduler {
	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
	return &Scheduler{
		scheduler: asynq.NewScheduler(redisOpt, &asynq.SchedulerOpts{
			LogLevel: asynq.InfoLevel,
			Logger:   &asynqLoggerAdapter{logger: logger},
		}),
		logger:  logger,
		entries: make(map[string]string),
	}
}

// Start launches the scheduler loop (non-blocking).
func (s *Scheduler) Start() error {
	if err := s.scheduler.Start(); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}
	return nil
}

// Shutdown stops the scheduler and waits for in-flight enqueues.
func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}

// Register adds or replaces the cron entry for the given job id.
func (s *Scheduler) Register(jobID, cronSpec string, planID, reminderID uuid.UUID) error {
	task, err := newReminderTask(planID, reminderID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if entryID, ok := s.entries[jobID]; ok {
		if err := s.scheduler.Unregister(entryID); err != nil {
			return fmt.Errorf("unregister stale entry: %w", err)
		}
		delete(s.entries, jobID)
	}

	entryID, err := s.scheduler.Register(cronSpec, task)
	if err != nil {
		return fmt.Errorf("register %q: %w", cronSpec, err)
	}
	s.entries[jobID] = entryID

	s.logger.WithFields(logrus.Fields{
		"job_id":    jobID,
		"entry_id":  entryID,
		"cron_spec": cronSpec,
	}).Debug("reminder job registered")
	return nil
}

// Remove drops the cron entry for the given job id. Removing an unknown job
// id is a no-op.
func (s *Scheduler) Remove(jobID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entryID, ok := s.entries[jobID]
	if !ok {
		return nil
	}
	if err := s.scheduler.Unregister(entryID); err != nil {
		return fmt.Errorf("unregister: %w", err)
	}
	delete(s.entries, jobID)
	return nil
}

// Exists reports whether a job is currently registered.
func (s *Scheduler) Exists(jobID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.entries[jobID]
	return ok
}
