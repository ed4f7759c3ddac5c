package service

import (
	"context"
	"testing"

	"github.com/Tanya-Zhu/fitness-manager/internal/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }

func TestWorkoutLogLifecycle(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "runner@example.com")

	log, err := env.workouts.CreateLog(context.Background(), user.ID, WorkoutLogInput{
		WorkoutDate:     testDate(2026, 8, 1),
		WorkoutName:     "morning run",
		DurationMinutes: 45,
		CaloriesBurned:  floatPtr(420),
	})
	require.NoError(t, err)

	got, err := env.workouts.GetLog(context.Background(), log.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "morning run", got.WorkoutName)
	require.NotNil(t, got.CaloriesBurned)
	assert.InDelta(t, 420, *got.CaloriesBurned, 0.001)

	updated, err := env.workouts.UpdateLog(context.Background(), log.ID, user.ID, WorkoutLogInput{
		WorkoutDate:     testDate(2026, 8, 1),
		WorkoutName:     "evening run",
		DurationMinutes: 60,
	})
	require.NoError(t, err)
	assert.Equal(t, "evening run", updated.WorkoutName)
	assert.Nil(t, updated.CaloriesBurned)

	require.NoError(t, env.workouts.DeleteLog(context.Background(), log.ID, user.ID))
	_, err = env.workouts.GetLog(context.Background(), log.ID, user.ID)
	assert.ErrorIs(t, err, ErrWorkoutLogNotFound)
}

func TestWorkoutLogValidation(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "runner@example.com")

	_, err := env.workouts.CreateLog(context.Background(), user.ID, WorkoutLogInput{
		WorkoutDate: testDate(2026, 8, 1), DurationMinutes: 30,
	})
	assert.ErrorIs(t, err, ErrValidationFailed)

	_, err = env.workouts.CreateLog(context.Background(), user.ID, WorkoutLogInput{
		WorkoutDate: testDate(2026, 8, 1), WorkoutName: "run", DurationMinutes: 0,
	})
	assert.ErrorIs(t, err, ErrValidationFailed)

	_, err = env.workouts.CreateLog(context.Background(), user.ID, WorkoutLogInput{
		WorkoutDate: testDate(2026, 8, 1), WorkoutName: "run", DurationMinutes: 30, CaloriesBurned: floatPtr(-1),
	})
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestWorkoutLogsAreUserScoped(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice@example.com")
	bob := env.createUser(t, "bob@example.com")

	log, err := env.workouts.CreateLog(context.Background(), alice.ID, WorkoutLogInput{
		WorkoutDate: testDate(2026, 8, 1), WorkoutName: "yoga", DurationMinutes: 30,
	})
	require.NoError(t, err)

	_, err = env.workouts.GetLog(context.Background(), log.ID, bob.ID)
	assert.ErrorIs(t, err, ErrWorkoutLogNotFound)
	err = env.workouts.DeleteLog(context.Background(), log.ID, bob.ID)
	assert.ErrorIs(t, err, ErrWorkoutLogNotFound)
}

func TestWorkoutStats(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "runner@example.com")

	inputs := []WorkoutLogInput{
		{WorkoutDate: testDate(2026, 8, 1), WorkoutName: "run", DurationMinutes: 30, CaloriesBurned: floatPtr(300)},
		{WorkoutDate: testDate(2026, 8, 2), WorkoutName: "swim", DurationMinutes: 50, CaloriesBurned: floatPtr(500)},
		{WorkoutDate: testDate(2026, 8, 3), WorkoutName: "walk", DurationMinutes: 40},
	}
	for _, in := range inputs {
		_, err := env.workouts.CreateLog(context.Background(), user.ID, in)
		require.NoError(t, err)
	}

	stats, err := env.workouts.Stats(context.Background(), user.ID, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.TotalWorkouts)
	assert.Equal(t, int64(120), stats.TotalDurationMinutes)
	assert.InDelta(t, 800, stats.TotalCalories, 0.001)
	assert.InDelta(t, 40, stats.AvgDurationMinutes, 0.001)

	// Date bounds narrow the aggregation.
	start := testDate(2026, 8, 2)
	stats, err = env.workouts.Stats(context.Background(), user.ID, &start, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalWorkouts)
	assert.Equal(t, int64(90), stats.TotalDurationMinutes)

	// A user with no logs gets zeroes, not an error.
	other := env.createUser(t, "other@example.com")
	stats, err = env.workouts.Stats(context.Background(), other.ID, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.TotalWorkouts)
}

func TestWorkoutChartData(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "runner@example.com")

	// Two workouts in July, one in August.
	inputs := []WorkoutLogInput{
		{WorkoutDate: testDate(2026, 7, 6), WorkoutName: "run", DurationMinutes: 30, CaloriesBurned: floatPtr(300)},
		{WorkoutDate: testDate(2026, 7, 8), WorkoutName: "swim", DurationMinutes: 50, CaloriesBurned: floatPtr(500)},
		{WorkoutDate: testDate(2026, 8, 3), WorkoutName: "walk", DurationMinutes: 40},
	}
	for _, in := range inputs {
		_, err := env.workouts.CreateLog(context.Background(), user.ID, in)
		require.NoError(t, err)
	}

	points, err := env.workouts.ChartData(context.Background(), user.ID, "month", 12)
	require.NoError(t, err)
	require.Len(t, points, 2)

	// Oldest period first.
	assert.Equal(t, "2026-07", points[0].Period)
	assert.Equal(t, int64(2), points[0].Workouts)
	assert.Equal(t, int64(80), points[0].DurationMinutes)
	assert.InDelta(t, 800, points[0].Calories, 0.001)
	assert.Equal(t, "2026-08", points[1].Period)
	assert.Equal(t, int64(1), points[1].Workouts)

	// The limit keeps only the most recent periods.
	points, err = env.workouts.ChartData(context.Background(), user.ID, "month", 1)
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Equal(t, "2026-08", points[0].Period)

	_, err = env.workouts.ChartData(context.Background(), user.ID, "decade", 12)
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestWorkoutListPaginated(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "runner@example.com")

	for day := 1; day <= 5; day++ {
		_, err := env.workouts.CreateLog(context.Background(), user.ID, WorkoutLogInput{
			WorkoutDate: testDate(2026, 8, day), WorkoutName: "run", DurationMinutes: 30,
		})
		require.NoError(t, err)
	}

	logs, total, err := env.workouts.ListLogs(context.Background(), user.ID, repository.DateRangeFilter{Page: 1, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	require.Len(t, logs, 2)
	// Most recent first.
	assert.Equal(t, testDate(2026, 8, 5), logs[0].WorkoutDate)

	_, err = env.workouts.GetLog(context.Background(), uuid.New(), user.ID)
	assert.ErrorIs(t, err, ErrWorkoutLogNotFound)
}
