package service

import (
	"context"
	"errors"
	"time"

	"github.com/Tanya-Zhu/fitness-manager/internal/domain"
	"github.com/Tanya-Zhu/fitness-manager/internal/repository"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// --- Error Definitions ---
var (
	ErrPlanNotFound     = errors.New("fitness plan not found")
	ErrExerciseNotFound = errors.New("exercise not found")
	ErrLastExercise     = errors.New("a plan must keep at least one exercise")
	ErrValidationFailed = errors.New("validation failed")
)

// ExerciseInput carries the attributes of one exercise on create/update.
// At least one of DurationMinutes or Repetitions must be a positive value.
type ExerciseInput struct {
	Name            string
	DurationMinutes *int
	Repetitions     *int
	Intensity       domain.ExerciseIntensity
	OrderIndex      int
}

func (in ExerciseInput) validate() error {
	if in.Name == "" {
		return ErrValidationFailed
	}
	hasDuration := in.DurationMinutes != nil && *in.DurationMinutes > 0
	hasReps := in.Repetitions != nil && *in.Repetitions > 0
	if !hasDuration && !hasReps {
		return ErrValidationFailed
	}
	return nil
}

// PlanUpdate lists the mutable plan attributes; nil means "leave unchanged".
type PlanUpdate struct {
	Name        *string
	Description *string
	Status      *domain.PlanStatus
}

// PlanService manages fitness plans and their exercises. All reads accept
// owner or member access; all mutations require ownership, and a denied
// mutation is indistinguishable from a missing plan.
type PlanService interface {
	CreatePlan(ctx context.Context, ownerID uuid.UUID, name, description string, exercises []ExerciseInput) (*domain.FitnessPlan, error)
	GetPlan(ctx context.Context, planID, userID uuid.UUID) (*domain.FitnessPlan, error)
	ListPlans(ctx context.Context, userID uuid.UUID, filter repository.PlanFilter) ([]domain.FitnessPlan, int64, error)
	UpdatePlan(ctx context.Context, planID, ownerID uuid.UUID, update PlanUpdate) (*domain.FitnessPlan, error)
	DeletePlan(ctx context.Context, planID, ownerID uuid.UUID) error

	AddExercise(ctx context.Context, planID, ownerID uuid.UUID, input ExerciseInput) (*domain.Exercise, error)
	UpdateExercise(ctx context.Context, planID, exerciseID, ownerID uuid.UUID, input ExerciseInput) (*domain.Exercise, error)
	DeleteExercise(ctx context.Context, planID, exerciseID, ownerID uuid.UUID) error
}

type planService struct {
	planRepo     repository.PlanRepository
	exerciseRepo repository.ExerciseRepository
	reminderRepo repository.ReminderRepository
	scheduler    ReminderScheduler
	logger       *logrus.Logger
}

// NewPlanService creates a new instance of planService.
func NewPlanService(
	planRepo repository.PlanRepository,
	exerciseRepo repository.ExerciseRepository,
	reminderRepo repository.ReminderRepository,
	scheduler ReminderScheduler,
	logger *logrus.Logger,
) PlanService {
	return &planService{
		planRepo:     planRepo,
		exerciseRepo: exerciseRepo,
		reminderRepo: reminderRepo,
		scheduler:    scheduler,
		logger:       logger,
	}
}

// CreatePlan creates a plan together with its initial exercises. A plan is
// never empty, so at least one exercise is required up front.
func (s *planService) CreatePlan(ctx context.Context, ownerID uuid.UUID, name, description string, exercises []ExerciseInput) (*domain.FitnessPlan, error) {
	if name == "" || len(exercises) == 0 {
		return nil, ErrValidationFailed
	}
	for _, in := range exercises {
		if err := in.validate(); err != nil {
			return nil, err
		}
	}

	plan := &domain.FitnessPlan{
		UserID:      ownerID,
		Name:        name,
		Description: description,
		Status:      domain.PlanStatusActive,
	}
	for i, in := range exercises {
		orderIndex := in.OrderIndex
		if orderIndex == 0 {
			orderIndex = i
		}
		plan.Exercises = append(plan.Exercises, domain.Exercise{
			Name:            in.Name,
			DurationMinutes: in.DurationMinutes,
			Repetitions:     in.Repetitions,
			Intensity:       in.Intensity,
			OrderIndex:      orderIndex,
		})
	}

	if err := s.planRepo.Create(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *planService) GetPlan(ctx context.Context, planID, userID uuid.UUID) (*domain.FitnessPlan, error) {
	plan, err := s.planRepo.GetAccessible(ctx, planID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return plan, nil
}

func (s *planService) ListPlans(ctx context.Context, userID uuid.UUID, filter repository.PlanFilter) ([]domain.FitnessPlan, int64, error) {
	return s.planRepo.ListForUser(ctx, userID, filter)
}

func (s *planService) UpdatePlan(ctx context.Context, planID, ownerID uuid.UUID, update PlanUpdate) (*domain.FitnessPlan, error) {
	plan, err := s.planRepo.GetOwned(ctx, planID, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}

	if update.Name != nil {
		if *update.Name == "" {
			return nil, ErrValidationFailed
		}
		plan.Name = *update.Name
	}
	if update.Description != nil {
		plan.Description = *update.Description
	}
	if update.Status != nil {
		plan.Status = *update.Status
	}

	if err := s.planRepo.Update(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// DeletePlan soft-deletes the plan and cancels the scheduler jobs of its
// reminders. Past executions are history and stay untouched.
func (s *planService) DeletePlan(ctx context.Context, planID, ownerID uuid.UUID) error {
	plan, err := s.planRepo.GetOwned(ctx, planID, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPlanNotFound
		}
		return err
	}

	reminders, err := s.reminderRepo.ListByPlan(ctx, plan.ID)
	if err != nil {
		return err
	}

	if err := s.planRepo.SoftDelete(ctx, plan.ID, time.Now().UTC()); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPlanNotFound
		}
		return err
	}

	// Job cancellation is best effort once the delete is committed; the worker
	// also checks plan state at fire time, so a leftover job stays silent.
	for _, reminder := range reminders {
		if err := s.scheduler.Remove(reminder.JobID()); err != nil {
			s.logger.WithFields(logrus.Fields{
				"plan_id": plan.ID,
				"job_id":  reminder.JobID(),
			}).WithError(err).Warn("failed to cancel reminder job on plan delete")
		}
	}
	return nil
}

func (s *planService) AddExercise(ctx context.Context, planID, ownerID uuid.UUID, input ExerciseInput) (*domain.Exercise, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	plan, err := s.planRepo.GetOwned(ctx, planID, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}

	exercise := &domain.Exercise{
		PlanID:          plan.ID,
		Name:            input.Name,
		DurationMinutes: input.DurationMinutes,
		Repetitions:     input.Repetitions,
		Intensity:       input.Intensity,
		OrderIndex:      input.OrderIndex,
	}
	if err := s.exerciseRepo.Create(ctx, exercise); err != nil {
		return nil, err
	}
	return exercise, nil
}

func (s *planService) UpdateExercise(ctx context.Context, planID, exerciseID, ownerID uuid.UUID, input ExerciseInput) (*domain.Exercise, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	if _, err := s.planRepo.GetOwned(ctx, planID, ownerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}

	exercise, err := s.exerciseRepo.GetInPlan(ctx, exerciseID, planID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}

	exercise.Name = input.Name
	exercise.DurationMinutes = input.DurationMinutes
	exercise.Repetitions = input.Repetitions
	exercise.Intensity = input.Intensity
	exercise.OrderIndex = input.OrderIndex

	if err := s.exerciseRepo.Update(ctx, exercise); err != nil {
		return nil, err
	}
	return exercise, nil
}

// DeleteExercise removes an exercise unless it is the plan's last one; the
// count and the delete run in the same transaction in the repository.
func (s *planService) DeleteExercise(ctx context.Context, planID, exerciseID, ownerID uuid.UUID) error {
	if _, err := s.planRepo.GetOwned(ctx, planID, ownerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPlanNotFound
		}
		return err
	}

	err := s.exerciseRepo.DeleteGuarded(ctx, exerciseID, planID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrLastExercise):
			return ErrLastExercise
		case errors.Is(err, repository.ErrNotFound):
			return ErrExerciseNotFound
		default:
			return err
		}
	}
	return nil
}
