package service

import (
	"context"
	"errors"
	"time"

	"github.com/Tanya-Zhu/fitness-manager/internal/domain"
	"github.com/Tanya-Zhu/fitness-manager/internal/repository"
	"github.com/google/uuid"
)

// --- Error Definitions ---
var (
	ErrWorkoutLogNotFound = errors.New("workout log not found")
)

// WorkoutLogInput carries the attributes of a free-form workout log.
type WorkoutLogInput struct {
	WorkoutDate     time.Time
	WorkoutName     string
	DurationMinutes int
	CaloriesBurned  *float64
	Notes           string
}

func (in WorkoutLogInput) validate() error {
	if in.WorkoutName == "" || in.DurationMinutes <= 0 {
		return ErrValidationFailed
	}
	if in.CaloriesBurned != nil && *in.CaloriesBurned < 0 {
		return ErrValidationFailed
	}
	return nil
}

// WorkoutService manages free-form workout logs, independent of plans.
type WorkoutService interface {
	CreateLog(ctx context.Context, userID uuid.UUID, input WorkoutLogInput) (*domain.WorkoutLog, error)
	GetLog(ctx context.Context, logID, userID uuid.UUID) (*domain.WorkoutLog, error)
	ListLogs(ctx context.Context, userID uuid.UUID, filter repository.DateRangeFilter) ([]domain.WorkoutLog, int64, error)
	UpdateLog(ctx context.Context, logID, userID uuid.UUID, input WorkoutLogInput) (*domain.WorkoutLog, error)
	DeleteLog(ctx context.Context, logID, userID uuid.UUID) error
	Stats(ctx context.Context, userID uuid.UUID, startDate, endDate *time.Time) (repository.WorkoutStats, error)
	ChartData(ctx context.Context, userID uuid.UUID, periodType string, limit int) ([]repository.WorkoutChartPoint, error)
}

type workoutService struct {
	workoutRepo repository.WorkoutLogRepository
}

// NewWorkoutService creates a new instance of workoutService.
func NewWorkoutService(workoutRepo repository.WorkoutLogRepository) WorkoutService {
	return &workoutService{workoutRepo: workoutRepo}
}

func (s *workoutService) CreateLog(ctx context.Context, userID uuid.UUID, input WorkoutLogInput) (*domain.WorkoutLog, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	log := &domain.WorkoutLog{
		UserID:          userID,
		WorkoutDate:     input.WorkoutDate,
		WorkoutName:     input.WorkoutName,
		DurationMinutes: input.DurationMinutes,
		CaloriesBurned:  input.CaloriesBurned,
		Notes:           input.Notes,
	}
	if err := s.workoutRepo.Create(ctx, log); err != nil {
		return nil, err
	}
	return log, nil
}

func (s *workoutService) GetLog(ctx context.Context, logID, userID uuid.UUID) (*domain.WorkoutLog, error) {
	log, err := s.workoutRepo.GetForUser(ctx, logID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutLogNotFound
		}
		return nil, err
	}
	return log, nil
}

func (s *workoutService) ListLogs(ctx context.Context, userID uuid.UUID, filter repository.DateRangeFilter) ([]domain.WorkoutLog, int64, error) {
	return s.workoutRepo.ListForUser(ctx, userID, filter)
}

func (s *workoutService) UpdateLog(ctx context.Context, logID, userID uuid.UUID, input WorkoutLogInput) (*domain.WorkoutLog, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	log, err := s.workoutRepo.GetForUser(ctx, logID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutLogNotFound
		}
		return nil, err
	}

	log.WorkoutDate = input.WorkoutDate
	log.WorkoutName = input.WorkoutName
	log.DurationMinutes = input.DurationMinutes
	log.CaloriesBurned = input.CaloriesBurned
	log.Notes = input.Notes
	log.UpdatedAt = time.Now().UTC()

	if err := s.workoutRepo.Update(ctx, log); err != nil {
		return nil, err
	}
	return log, nil
}

func (s *workoutService) DeleteLog(ctx context.Context, logID, userID uuid.UUID) error {
	if _, err := s.workoutRepo.GetForUser(ctx, logID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrWorkoutLogNotFound
		}
		return err
	}
	return s.workoutRepo.Delete(ctx, logID)
}

func (s *workoutService) Stats(ctx context.Context, userID uuid.UUID, startDate, endDate *time.Time) (repository.WorkoutStats, error) {
	return s.workoutRepo.Stats(ctx, userID, startDate, endDate)
}

func (s *workoutService) ChartData(ctx context.Context, userID uuid.UUID, periodType string, limit int) ([]repository.WorkoutChartPoint, error) {
	if periodType != "week" && periodType != "month" {
		return nil, ErrValidationFailed
	}
	if limit <= 0 {
		limit = 12
	}
	return s.workoutRepo.ChartData(ctx, userID, periodType, limit)
}
