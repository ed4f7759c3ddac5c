package scheduler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Tanya-Zhu/fitness-manager/internal/config"
	"github.com/Tanya-Zhu/fitness-manager/internal/domain"
	"github.com/Tanya-Zhu/fitness-manager/internal/repository"
	"github.com/Tanya-Zhu/fitness-manager/internal/service"
	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"
)

// Worker consumes reminder delivery tasks. Delivery re-checks the stored
// state at fire time: disabled reminders and paused or deleted plans stay
// silent even if a stale cron entry fires.
type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
}

// NewWorker wires the asynq server and its task handlers.
func NewWorker(
	cfg config.RedisConfig,
	reminderRepo repository.ReminderRepository,
	planRepo repository.PlanRepository,
	memberRepo repository.MemberRepository,
	notifier service.NotificationService,
	logger *logrus.Logger,
) *Worker {
	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
	server := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency:     5,
		ShutdownTimeout: 30 * time.Second,
		Logger:          &asynqLoggerAdapter{logger: logger},
		ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
			logger.WithFields(logrus.Fields{
				"task_type": task.Type(),
			}).WithError(err).Error("task execution failed")
		}),
	})

	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskReminderDeliver, handleReminderDeliver(reminderRepo, planRepo, memberRepo, notifier, logger))

	return &Worker{server: server, mux: mux}
}

// Start runs the worker in non-blocking mode.
func (w *Worker) Start() error {
	return w.server.Start(w.mux)
}

// Shutdown drains in-flight tasks and stops the worker.
func (w *Worker) Shutdown() {
	w.server.Shutdown()
}

// handleReminderDeliver delivers one fired reminder to every plan
// participant.
func handleReminderDeliver(
	reminderRepo repository.ReminderRepository,
	planRepo repository.PlanRepository,
	memberRepo repository.MemberRepository,
	notifier service.NotificationService,
	logger *logrus.Logger,
) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var payload reminderPayload
		if err := json.Unmarshal(task.Payload(), &payload); err != nil {
			return fmt.Errorf("invalid payload: %w", asynq.SkipRetry)
		}

		log := logger.WithFields(logrus.Fields{
			"plan_id":     payload.PlanID,
			"reminder_id": payload.ReminderID,
		})

		reminder, err := reminderRepo.GetByID(ctx, payload.ReminderID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				log.Debug("reminder gone, suppressing delivery")
				return nil
			}
			return fmt.Errorf("load reminder: %w", err)
		}
		if !reminder.IsEnabled {
			log.Debug("reminder disabled, suppressing delivery")
			return nil
		}

		// GetByID excludes soft-deleted plans.
		plan, err := planRepo.GetByID(ctx, payload.PlanID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				log.Debug("plan gone, suppressing delivery")
				return nil
			}
			return fmt.Errorf("load plan: %w", err)
		}
		if plan.Status != domain.PlanStatusActive {
			log.Debug("plan paused, suppressing delivery")
			return nil
		}

		if plan.Owner != nil {
			notifier.SendReminder(ctx, plan.Owner, plan)
		}
		members, err := memberRepo.ListByPlan(ctx, plan.ID)
		if err != nil {
			return fmt.Errorf("list members: %w", err)
		}
		for i := range members {
			if members[i].User != nil {
				notifier.SendReminder(ctx, members[i].User, plan)
			}
		}

		log.WithField("recipients", 1+len(members)).Info("reminder delivered")
		return nil
	}
}
