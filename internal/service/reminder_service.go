package service

import (
	"context"
	"errors"

	"github.com/Tanya-Zhu/fitness-manager/internal/domain"
	"github.com/Tanya-Zhu/fitness-manager/internal/repository"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// --- Error Definitions ---
var (
	ErrReminderNotFound = errors.New("reminder not found")
	ErrInvalidSchedule  = errors.New("invalid reminder schedule")
)

// ReminderScheduler manages the cron jobs backing enabled reminders in the
// external scheduler. Implementations key jobs by the reminder's job id.
type ReminderScheduler interface {
	Register(jobID, cronSpec string, planID, reminderID uuid.UUID) error
	Remove(jobID string) error
}

// ReminderInput carries the attributes of a reminder on create/update.
type ReminderInput struct {
	ReminderTime string
	Frequency    domain.ReminderFrequency
	DaysOfWeek   []int
	IsEnabled    bool
}

// ReminderService manages reminders and keeps the scheduler in sync with the
// stored state. Only the plan owner may mutate reminders.
type ReminderService interface {
	CreateReminder(ctx context.Context, planID, ownerID uuid.UUID, input ReminderInput) (*domain.Reminder, error)
	UpdateReminder(ctx context.Context, planID, reminderID, ownerID uuid.UUID, input ReminderInput) (*domain.Reminder, error)
	DeleteReminder(ctx context.Context, planID, reminderID, ownerID uuid.UUID) error
	// ResyncJobs re-registers jobs for every enabled reminder. The scheduler
	// holds its entries in process memory, so this runs once at startup.
	ResyncJobs(ctx context.Context) error
}

type reminderService struct {
	planRepo     repository.PlanRepository
	reminderRepo repository.ReminderRepository
	scheduler    ReminderScheduler
	logger       *logrus.Logger
}

// NewReminderService creates a new instance of reminderService.
func NewReminderService(
	planRepo repository.PlanRepository,
	reminderRepo repository.ReminderRepository,
	scheduler ReminderScheduler,
	logger *logrus.Logger,
) ReminderService {
	return &reminderService{
		planRepo:     planRepo,
		reminderRepo: reminderRepo,
		scheduler:    scheduler,
		logger:       logger,
	}
}

func (s *reminderService) CreateReminder(ctx context.Context, planID, ownerID uuid.UUID, input ReminderInput) (*domain.Reminder, error) {
	plan, err := s.planRepo.GetOwned(ctx, planID, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}

	cronSpec, err := cronSpecFor(input.ReminderTime, input.Frequency, input.DaysOfWeek)
	if err != nil {
		return nil, ErrInvalidSchedule
	}

	reminder := &domain.Reminder{
		PlanID:       plan.ID,
		ReminderTime: input.ReminderTime,
		Frequency:    input.Frequency,
		DaysOfWeek:   input.DaysOfWeek,
		IsEnabled:    input.IsEnabled,
	}
	if err := s.reminderRepo.Create(ctx, reminder); err != nil {
		return nil, err
	}

	if reminder.IsEnabled {
		s.registerJob(reminder, cronSpec)
	}
	return reminder, nil
}

func (s *reminderService) UpdateReminder(ctx context.Context, planID, reminderID, ownerID uuid.UUID, input ReminderInput) (*domain.Reminder, error) {
	if _, err := s.planRepo.GetOwned(ctx, planID, ownerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}

	reminder, err := s.reminderRepo.GetInPlan(ctx, reminderID, planID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrReminderNotFound
		}
		return nil, err
	}

	cronSpec, err := cronSpecFor(input.ReminderTime, input.Frequency, input.DaysOfWeek)
	if err != nil {
		return nil, ErrInvalidSchedule
	}

	reminder.ReminderTime = input.ReminderTime
	reminder.Frequency = input.Frequency
	reminder.DaysOfWeek = input.DaysOfWeek
	reminder.IsEnabled = input.IsEnabled

	if err := s.reminderRepo.Update(ctx, reminder); err != nil {
		return nil, err
	}

	// Reschedule from scratch: remove any existing job, then register again
	// when the reminder stays enabled.
	s.removeJob(reminder)
	if reminder.IsEnabled {
		s.registerJob(reminder, cronSpec)
	}
	return reminder, nil
}

func (s *reminderService) DeleteReminder(ctx context.Context, planID, reminderID, ownerID uuid.UUID) error {
	if _, err := s.planRepo.GetOwned(ctx, planID, ownerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPlanNotFound
		}
		return err
	}

	reminder, err := s.reminderRepo.GetInPlan(ctx, reminderID, planID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrReminderNotFound
		}
		return err
	}

	if err := s.reminderRepo.Delete(ctx, reminder.ID); err != nil {
		return err
	}
	s.removeJob(reminder)
	return nil
}

func (s *reminderService) ResyncJobs(ctx context.Context) error {
	reminders, err := s.reminderRepo.ListEnabled(ctx)
	if err != nil {
		return err
	}
	for i := range reminders {
		cronSpec, err := cronSpecFor(reminders[i].ReminderTime, reminders[i].Frequency, reminders[i].DaysOfWeek)
		if err != nil {
			s.logger.WithField("reminder_id", reminders[i].ID).
				WithError(err).Warn("skipping reminder with invalid schedule")
			continue
		}
		s.registerJob(&reminders[i], cronSpec)
	}
	return nil
}

// registerJob schedules the reminder's job, degrading to a warning when the
// scheduler is unavailable. The stored reminder is the source of truth; the
// worker re-checks it at fire time.
func (s *reminderService) registerJob(reminder *domain.Reminder, cronSpec string) {
	if err := s.scheduler.Register(reminder.JobID(), cronSpec, reminder.PlanID, reminder.ID); err != nil {
		s.logger.WithFields(logrus.Fields{
			"job_id":    reminder.JobID(),
			"cron_spec": cronSpec,
		}).WithError(err).Warn("failed to register reminder job")
	}
}

func (s *reminderService) removeJob(reminder *domain.Reminder) {
	if err := s.scheduler.Remove(reminder.JobID()); err != nil {
		s.logger.WithField("job_id", reminder.JobID()).
			WithError(err).Warn("failed to remove reminder job")
	}
}
