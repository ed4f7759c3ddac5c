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
	ErrGymLogNotFound = errors.New("gym exercise log not found")
)

// GymSetInput is one set of a gym exercise log on create/update.
type GymSetInput struct {
	SetNumber int
	Reps      int
	Weight    *float64
	Notes     string
}

// GymLogInput carries the attributes of a gym exercise log with its sets.
type GymLogInput struct {
	WorkoutDate  time.Time
	ExerciseName string
	Notes        string
	Sets         []GymSetInput
}

func (in GymLogInput) validate() error {
	if in.ExerciseName == "" || len(in.Sets) == 0 {
		return ErrValidationFailed
	}
	for _, set := range in.Sets {
		if set.Reps <= 0 {
			return ErrValidationFailed
		}
		if set.Weight != nil && *set.Weight < 0 {
			return ErrValidationFailed
		}
	}
	return nil
}

// GymLogSummary aggregates a log's sets. Volume counts reps times weight;
// bodyweight sets contribute no volume.
type GymLogSummary struct {
	TotalSets   int
	TotalReps   int
	TotalVolume float64
}

// SummarizeGymLog computes the set totals for one log.
func SummarizeGymLog(log *domain.GymExerciseLog) GymLogSummary {
	var summary GymLogSummary
	summary.TotalSets = len(log.Sets)
	for _, set := range log.Sets {
		summary.TotalReps += set.Reps
		if set.Weight != nil {
			summary.TotalVolume += float64(set.Reps) * *set.Weight
		}
	}
	return summary
}

// GymTrendPoint is one session in a per-exercise progress series.
type GymTrendPoint struct {
	WorkoutDate time.Time
	MaxWeight   float64
	AvgWeight   float64
	TotalReps   int
	TotalSets   int
}

// GymLogWithSummary pairs a log with its set totals.
type GymLogWithSummary struct {
	Log     domain.GymExerciseLog
	Summary GymLogSummary
}

// GymService manages strength-training logs and their sets.
type GymService interface {
	CreateLog(ctx context.Context, userID uuid.UUID, input GymLogInput) (*domain.GymExerciseLog, error)
	GetLog(ctx context.Context, logID, userID uuid.UUID) (*domain.GymExerciseLog, error)
	ListLogs(ctx context.Context, userID uuid.UUID, filter repository.DateRangeFilter) ([]GymLogWithSummary, int64, error)
	UpdateLog(ctx context.Context, logID, userID uuid.UUID, input GymLogInput) (*domain.GymExerciseLog, error)
	DeleteLog(ctx context.Context, logID, userID uuid.UUID) error
	ExerciseNames(ctx context.Context, userID uuid.UUID) ([]string, error)
	Trends(ctx context.Context, userID uuid.UUID, exerciseName string) ([]GymTrendPoint, error)
}

type gymService struct {
	gymRepo repository.GymExerciseRepository
}

// NewGymService creates a new instance of gymService.
func NewGymService(gymRepo repository.GymExerciseRepository) GymService {
	return &gymService{gymRepo: gymRepo}
}

func (s *gymService) CreateLog(ctx context.Context, userID uuid.UUID, input GymLogInput) (*domain.GymExerciseLog, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	log := &domain.GymExerciseLog{
		UserID:       userID,
		WorkoutDate:  input.WorkoutDate,
		ExerciseName: input.ExerciseName,
		Notes:        input.Notes,
	}
	for i, set := range input.Sets {
		number := set.SetNumber
		if number == 0 {
			number = i + 1
		}
		log.Sets = append(log.Sets, domain.GymExerciseSet{
			SetNumber: number,
			Reps:      set.Reps,
			Weight:    set.Weight,
			Notes:     set.Notes,
		})
	}
	if err := s.gymRepo.Create(ctx, log); err != nil {
		return nil, err
	}
	return log, nil
}

func (s *gymService) GetLog(ctx context.Context, logID, userID uuid.UUID) (*domain.GymExerciseLog, error) {
	log, err := s.gymRepo.GetForUser(ctx, logID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrGymLogNotFound
		}
		return nil, err
	}
	return log, nil
}

func (s *gymService) ListLogs(ctx context.Context, userID uuid.UUID, filter repository.DateRangeFilter) ([]GymLogWithSummary, int64, error) {
	logs, total, err := s.gymRepo.ListForUser(ctx, userID, filter)
	if err != nil {
		return nil, 0, err
	}
	items := make([]GymLogWithSummary, 0, len(logs))
	for i := range logs {
		items = append(items, GymLogWithSummary{
			Log:     logs[i],
			Summary: SummarizeGymLog(&logs[i]),
		})
	}
	return items, total, nil
}

func (s *gymService) UpdateLog(ctx context.Context, logID, userID uuid.UUID, input GymLogInput) (*domain.GymExerciseLog, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	log, err := s.gymRepo.GetForUser(ctx, logID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrGymLogNotFound
		}
		return nil, err
	}

	log.WorkoutDate = input.WorkoutDate
	log.ExerciseName = input.ExerciseName
	log.Notes = input.Notes
	log.UpdatedAt = time.Now().UTC()
	if err := s.gymRepo.Update(ctx, log); err != nil {
		return nil, err
	}

	sets := make([]domain.GymExerciseSet, 0, len(input.Sets))
	for i, set := range input.Sets {
		number := set.SetNumber
		if number == 0 {
			number = i + 1
		}
		sets = append(sets, domain.GymExerciseSet{
			SetNumber: number,
			Reps:      set.Reps,
			Weight:    set.Weight,
			Notes:     set.Notes,
		})
	}
	if err := s.gymRepo.ReplaceSets(ctx, log.ID, sets); err != nil {
		return nil, err
	}
	log.Sets = sets
	return log, nil
}

func (s *gymService) DeleteLog(ctx context.Context, logID, userID uuid.UUID) error {
	if _, err := s.gymRepo.GetForUser(ctx, logID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrGymLogNotFound
		}
		return err
	}
	return s.gymRepo.Delete(ctx, logID)
}

func (s *gymService) ExerciseNames(ctx context.Context, userID uuid.UUID) ([]string, error) {
	return s.gymRepo.ExerciseNames(ctx, userID)
}

// Trends builds the per-session progress series for one exercise, ordered
// oldest to newest.
func (s *gymService) Trends(ctx context.Context, userID uuid.UUID, exerciseName string) ([]GymTrendPoint, error) {
	if exerciseName == "" {
		return nil, ErrValidationFailed
	}
	logs, err := s.gymRepo.ListByExerciseName(ctx, userID, exerciseName)
	if err != nil {
		return nil, err
	}

	points := make([]GymTrendPoint, 0, len(logs))
	for i := range logs {
		point := GymTrendPoint{
			WorkoutDate: logs[i].WorkoutDate,
			TotalSets:   len(logs[i].Sets),
		}
		var weightSum float64
		var weighted int
		for _, set := range logs[i].Sets {
			point.TotalReps += set.Reps
			if set.Weight != nil {
				weightSum += *set.Weight
				weighted++
				if *set.Weight > point.MaxWeight {
					point.MaxWeight = *set.Weight
				}
			}
		}
		if weighted > 0 {
			point.AvgWeight = weightSum / float64(weighted)
		}
		points = append(points, point)
	}
	return points, nil
}
