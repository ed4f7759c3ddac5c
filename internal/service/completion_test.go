package service

import (
	"testing"

	"github.com/Tanya-Zhu/fitness-manager/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestSummarizeExecutionEmpty(t *testing.T) {
	summary := SummarizeExecution(nil, nil)
	assert.Equal(t, 0, summary.TotalExercises)
	assert.Equal(t, 0, summary.CompletedExercises)
	assert.Equal(t, 0.0, summary.CompletionRate)
}

func TestSummarizeExecutionRates(t *testing.T) {
	durationEx := domain.Exercise{ID: uuid.New(), Name: "run", DurationMinutes: intPtr(30)}
	repsEx := domain.Exercise{ID: uuid.New(), Name: "pushups", Repetitions: intPtr(20)}
	exercises := []domain.Exercise{durationEx, repsEx}

	tests := []struct {
		name     string
		results  []domain.ExerciseExecution
		wantRate float64
		wantDone int
	}{
		{
			name: "skipped scores zero",
			results: []domain.ExerciseExecution{
				{ExerciseID: durationEx.ID, Completed: false},
			},
			wantRate: 0,
			wantDone: 0,
		},
		{
			name: "partial duration",
			results: []domain.ExerciseExecution{
				{ExerciseID: durationEx.ID, Completed: true, ActualDurationMinutes: intPtr(15)},
			},
			wantRate: 50,
			wantDone: 1,
		},
		{
			name: "overachievement capped at 100",
			results: []domain.ExerciseExecution{
				{ExerciseID: durationEx.ID, Completed: true, ActualDurationMinutes: intPtr(60)},
			},
			wantRate: 100,
			wantDone: 1,
		},
		{
			name: "partial repetitions",
			results: []domain.ExerciseExecution{
				{ExerciseID: repsEx.ID, Completed: true, ActualRepetitions: intPtr(10)},
			},
			wantRate: 50,
			wantDone: 1,
		},
		{
			name: "completed without actuals scores 100",
			results: []domain.ExerciseExecution{
				{ExerciseID: durationEx.ID, Completed: true},
			},
			wantRate: 100,
			wantDone: 1,
		},
		{
			name: "unknown exercise scores 100 when completed",
			results: []domain.ExerciseExecution{
				{ExerciseID: uuid.New(), Completed: true, ActualDurationMinutes: intPtr(1)},
			},
			wantRate: 100,
			wantDone: 1,
		},
		{
			name: "rate is the mean across exercises",
			results: []domain.ExerciseExecution{
				{ExerciseID: durationEx.ID, Completed: true, ActualDurationMinutes: intPtr(15)},
				{ExerciseID: repsEx.ID, Completed: false},
			},
			wantRate: 25,
			wantDone: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary := SummarizeExecution(exercises, tt.results)
			assert.Equal(t, len(tt.results), summary.TotalExercises)
			assert.Equal(t, tt.wantDone, summary.CompletedExercises)
			assert.InDelta(t, tt.wantRate, summary.CompletionRate, 0.001)
		})
	}
}
