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
	ErrExecutionNotFound = errors.New("plan execution not found")
)

// ExerciseExecutionInput records the outcome of one planned exercise.
type ExerciseExecutionInput struct {
	ExerciseID            uuid.UUID
	Completed             bool
	ActualDurationMinutes *int
	ActualRepetitions     *int
	Notes                 string
}

// ExecutionWithSummary pairs an execution with its completion summary.
type ExecutionWithSummary struct {
	Execution domain.PlanExecution
	Summary   ExecutionSummary
}

// ExecutionService records and reads plan executions. Executing a plan
// requires owner or member access; executions belong to the user who logged
// them and survive plan deletion.
type ExecutionService interface {
	CreateExecution(ctx context.Context, userID, planID uuid.UUID, date time.Time, notes string, results []ExerciseExecutionInput) (*ExecutionWithSummary, error)
	GetExecution(ctx context.Context, executionID, userID uuid.UUID) (*ExecutionWithSummary, error)
	ListExecutions(ctx context.Context, userID uuid.UUID, filter repository.ExecutionFilter) ([]ExecutionWithSummary, int64, error)
	UpdateExecution(ctx context.Context, executionID, userID uuid.UUID, date time.Time, notes string, results []ExerciseExecutionInput) (*ExecutionWithSummary, error)
	DeleteExecution(ctx context.Context, executionID, userID uuid.UUID) error
}

type executionService struct {
	planRepo      repository.PlanRepository
	executionRepo repository.ExecutionRepository
}

// NewExecutionService creates a new instance of executionService.
func NewExecutionService(planRepo repository.PlanRepository, executionRepo repository.ExecutionRepository) ExecutionService {
	return &executionService{
		planRepo:      planRepo,
		executionRepo: executionRepo,
	}
}

func (s *executionService) CreateExecution(ctx context.Context, userID, planID uuid.UUID, date time.Time, notes string, results []ExerciseExecutionInput) (*ExecutionWithSummary, error) {
	plan, err := s.planRepo.GetAccessible(ctx, planID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}

	// Every referenced exercise must belong to the plan at recording time.
	known := make(map[uuid.UUID]bool, len(plan.Exercises))
	for _, exercise := range plan.Exercises {
		known[exercise.ID] = true
	}
	for _, result := range results {
		if !known[result.ExerciseID] {
			return nil, ErrExerciseNotFound
		}
	}

	execution := &domain.PlanExecution{
		PlanID:        plan.ID,
		UserID:        userID,
		ExecutionDate: date,
		Notes:         notes,
	}
	for _, result := range results {
		execution.ExerciseExecutions = append(execution.ExerciseExecutions, domain.ExerciseExecution{
			ExerciseID:            result.ExerciseID,
			Completed:             result.Completed,
			ActualDurationMinutes: result.ActualDurationMinutes,
			ActualRepetitions:     result.ActualRepetitions,
			Notes:                 result.Notes,
		})
	}

	if err := s.executionRepo.Create(ctx, execution); err != nil {
		return nil, err
	}
	return &ExecutionWithSummary{
		Execution: *execution,
		Summary:   SummarizeExecution(plan.Exercises, execution.ExerciseExecutions),
	}, nil
}

func (s *executionService) GetExecution(ctx context.Context, executionID, userID uuid.UUID) (*ExecutionWithSummary, error) {
	execution, err := s.executionRepo.GetForUser(ctx, executionID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExecutionNotFound
		}
		return nil, err
	}

	exercises, err := s.planExercises(ctx, execution.PlanID)
	if err != nil {
		return nil, err
	}
	return &ExecutionWithSummary{
		Execution: *execution,
		Summary:   SummarizeExecution(exercises, execution.ExerciseExecutions),
	}, nil
}

func (s *executionService) ListExecutions(ctx context.Context, userID uuid.UUID, filter repository.ExecutionFilter) ([]ExecutionWithSummary, int64, error) {
	executions, total, err := s.executionRepo.ListForUser(ctx, userID, filter)
	if err != nil {
		return nil, 0, err
	}

	// Plans repeat across executions; fetch each one's exercises once.
	exercisesByPlan := make(map[uuid.UUID][]domain.Exercise)
	items := make([]ExecutionWithSummary, 0, len(executions))
	for i := range executions {
		exercises, ok := exercisesByPlan[executions[i].PlanID]
		if !ok {
			exercises, err = s.planExercises(ctx, executions[i].PlanID)
			if err != nil {
				return nil, 0, err
			}
			exercisesByPlan[executions[i].PlanID] = exercises
		}
		items = append(items, ExecutionWithSummary{
			Execution: executions[i],
			Summary:   SummarizeExecution(exercises, executions[i].ExerciseExecutions),
		})
	}
	return items, total, nil
}

func (s *executionService) UpdateExecution(ctx context.Context, executionID, userID uuid.UUID, date time.Time, notes string, results []ExerciseExecutionInput) (*ExecutionWithSummary, error) {
	execution, err := s.executionRepo.GetForUser(ctx, executionID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExecutionNotFound
		}
		return nil, err
	}

	execution.ExecutionDate = date
	execution.Notes = notes
	execution.UpdatedAt = time.Now().UTC()
	if err := s.executionRepo.Update(ctx, execution); err != nil {
		return nil, err
	}

	items := make([]domain.ExerciseExecution, 0, len(results))
	for _, result := range results {
		items = append(items, domain.ExerciseExecution{
			ExerciseID:            result.ExerciseID,
			Completed:             result.Completed,
			ActualDurationMinutes: result.ActualDurationMinutes,
			ActualRepetitions:     result.ActualRepetitions,
			Notes:                 result.Notes,
		})
	}
	if err := s.executionRepo.ReplaceExerciseExecutions(ctx, execution.ID, items); err != nil {
		return nil, err
	}
	execution.ExerciseExecutions = items

	exercises, err := s.planExercises(ctx, execution.PlanID)
	if err != nil {
		return nil, err
	}
	return &ExecutionWithSummary{
		Execution: *execution,
		Summary:   SummarizeExecution(exercises, execution.ExerciseExecutions),
	}, nil
}

func (s *executionService) DeleteExecution(ctx context.Context, executionID, userID uuid.UUID) error {
	if _, err := s.executionRepo.GetForUser(ctx, executionID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrExecutionNotFound
		}
		return err
	}
	return s.executionRepo.Delete(ctx, executionID)
}

// planExercises loads the plan's exercises for scoring. A deleted plan yields
// no exercises; its executions still score 100 per completed item.
func (s *executionService) planExercises(ctx context.Context, planID uuid.UUID) ([]domain.Exercise, error) {
	plan, err := s.planRepo.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return plan.Exercises, nil
}
