package service

import (
	"github.com/Tanya-Zhu/fitness-manager/internal/domain"
	"github.com/google/uuid"
)

// ExecutionSummary aggregates the per-exercise results of one plan execution.
type ExecutionSummary struct {
	TotalExercises     int
	CompletedExercises int
	CompletionRate     float64
}

// exerciseCompletionRate scores one performed exercise in percent.
// A skipped exercise scores 0. A completed exercise scores against the planned
// metric when an actual value was recorded, capped at 100; with no actuals, or
// when the planned exercise is unknown (e.g. it was deleted since), completion
// alone is worth 100.
func exerciseCompletionRate(planned *domain.Exercise, result domain.ExerciseExecution) float64 {
	if !result.Completed {
		return 0
	}
	if planned == nil {
		return 100
	}
	if planned.DurationMinutes != nil && *planned.DurationMinutes > 0 && result.ActualDurationMinutes != nil {
		rate := float64(*result.ActualDurationMinutes) / float64(*planned.DurationMinutes) * 100
		if rate > 100 {
			return 100
		}
		return rate
	}
	if planned.Repetitions != nil && *planned.Repetitions > 0 && result.ActualRepetitions != nil {
		rate := float64(*result.ActualRepetitions) / float64(*planned.Repetitions) * 100
		if rate > 100 {
			return 100
		}
		return rate
	}
	return 100
}

// SummarizeExecution computes the completion summary for one execution against
// the plan's exercises. The rate is the arithmetic mean of per-exercise rates,
// 0 when no exercises were recorded.
func SummarizeExecution(planExercises []domain.Exercise, results []domain.ExerciseExecution) ExecutionSummary {
	byID := make(map[uuid.UUID]*domain.Exercise, len(planExercises))
	for i := range planExercises {
		byID[planExercises[i].ID] = &planExercises[i]
	}

	summary := ExecutionSummary{TotalExercises: len(results)}
	if len(results) == 0 {
		return summary
	}

	var sum float64
	for _, result := range results {
		if result.Completed {
			summary.CompletedExercises++
		}
		sum += exerciseCompletionRate(byID[result.ExerciseID], result)
	}
	summary.CompletionRate = sum / float64(len(results))
	return summary
}
