package service

import (
	"context"
	"testing"

	"github.com/Tanya-Zhu/fitness-manager/internal/domain"
	"github.com/Tanya-Zhu/fitness-manager/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePlanRequiresExercises(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner@example.com")

	_, err := env.plans.CreatePlan(context.Background(), owner.ID, "empty", "", nil)
	assert.ErrorIs(t, err, ErrValidationFailed)

	_, err = env.plans.CreatePlan(context.Background(), owner.ID, "bad metric", "", []ExerciseInput{
		{Name: "stretch"},
	})
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestGetPlanAccess(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner@example.com")
	member := env.createUser(t, "member@example.com")
	stranger := env.createUser(t, "stranger@example.com")
	plan := env.createPlan(t, owner.ID, "morning routine")

	_, err := env.members.InviteMember(context.Background(), plan.ID, owner.ID, member.Email)
	require.NoError(t, err)

	got, err := env.plans.GetPlan(context.Background(), plan.ID, owner.ID)
	require.NoError(t, err)
	assert.Len(t, got.Exercises, 2)

	_, err = env.plans.GetPlan(context.Background(), plan.ID, member.ID)
	assert.NoError(t, err)

	// Denied access is indistinguishable from a missing plan.
	_, err = env.plans.GetPlan(context.Background(), plan.ID, stranger.ID)
	assert.ErrorIs(t, err, ErrPlanNotFound)
}

func TestUpdatePlanOwnerOnly(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner@example.com")
	member := env.createUser(t, "member@example.com")
	plan := env.createPlan(t, owner.ID, "routine")

	_, err := env.members.InviteMember(context.Background(), plan.ID, owner.ID, member.Email)
	require.NoError(t, err)

	paused := domain.PlanStatusPaused
	_, err = env.plans.UpdatePlan(context.Background(), plan.ID, member.ID, PlanUpdate{Status: &paused})
	assert.ErrorIs(t, err, ErrPlanNotFound)

	updated, err := env.plans.UpdatePlan(context.Background(), plan.ID, owner.ID, PlanUpdate{Status: &paused})
	require.NoError(t, err)
	assert.Equal(t, domain.PlanStatusPaused, updated.Status)
}

func TestDeleteLastExerciseRefused(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner@example.com")
	plan := env.createPlan(t, owner.ID, "routine")
	require.Len(t, plan.Exercises, 2)

	err := env.plans.DeleteExercise(context.Background(), plan.ID, plan.Exercises[0].ID, owner.ID)
	require.NoError(t, err)

	err = env.plans.DeleteExercise(context.Background(), plan.ID, plan.Exercises[1].ID, owner.ID)
	assert.ErrorIs(t, err, ErrLastExercise)

	// Plan still has one exercise after the refused delete.
	got, err := env.plans.GetPlan(context.Background(), plan.ID, owner.ID)
	require.NoError(t, err)
	assert.Len(t, got.Exercises, 1)
}

func TestExerciseLifecycle(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner@example.com")
	plan := env.createPlan(t, owner.ID, "routine")

	added, err := env.plans.AddExercise(context.Background(), plan.ID, owner.ID, ExerciseInput{
		Name:        "squats",
		Repetitions: intPtr(15),
		Intensity:   domain.IntensityHigh,
		OrderIndex:  2,
	})
	require.NoError(t, err)

	updated, err := env.plans.UpdateExercise(context.Background(), plan.ID, added.ID, owner.ID, ExerciseInput{
		Name:        "jump squats",
		Repetitions: intPtr(12),
		Intensity:   domain.IntensityHigh,
		OrderIndex:  2,
	})
	require.NoError(t, err)
	assert.Equal(t, "jump squats", updated.Name)
	assert.Equal(t, 12, *updated.Repetitions)

	got, err := env.plans.GetPlan(context.Background(), plan.ID, owner.ID)
	require.NoError(t, err)
	assert.Len(t, got.Exercises, 3)

	require.NoError(t, env.plans.DeleteExercise(context.Background(), plan.ID, added.ID, owner.ID))
	got, err = env.plans.GetPlan(context.Background(), plan.ID, owner.ID)
	require.NoError(t, err)
	assert.Len(t, got.Exercises, 2)
}

func TestDeletePlanSoftDeletesAndCancelsJobs(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner@example.com")
	plan := env.createPlan(t, owner.ID, "routine")

	reminder, err := env.reminders.CreateReminder(context.Background(), plan.ID, owner.ID, ReminderInput{
		ReminderTime: "07:00",
		Frequency:    domain.FrequencyDaily,
		IsEnabled:    true,
	})
	require.NoError(t, err)
	require.True(t, env.sched.has(reminder.JobID()))

	require.NoError(t, env.plans.DeletePlan(context.Background(), plan.ID, owner.ID))

	_, err = env.plans.GetPlan(context.Background(), plan.ID, owner.ID)
	assert.ErrorIs(t, err, ErrPlanNotFound)
	assert.False(t, env.sched.has(reminder.JobID()))

	// Deleting again reports not found.
	err = env.plans.DeletePlan(context.Background(), plan.ID, owner.ID)
	assert.ErrorIs(t, err, ErrPlanNotFound)
}

func TestDeletePlanKeepsExecutions(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner@example.com")
	plan := env.createPlan(t, owner.ID, "routine")

	item, err := env.executions.CreateExecution(context.Background(), owner.ID, plan.ID, testDate(2026, 8, 1), "", nil)
	require.NoError(t, err)

	require.NoError(t, env.plans.DeletePlan(context.Background(), plan.ID, owner.ID))

	got, err := env.executions.GetExecution(context.Background(), item.Execution.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, plan.ID, got.Execution.PlanID)
}

func TestListPlansPaginatedWithStatusFilter(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner@example.com")

	for i := 0; i < 3; i++ {
		env.createPlan(t, owner.ID, "plan")
	}
	paused := domain.PlanStatusPaused
	pausedPlan := env.createPlan(t, owner.ID, "paused plan")
	_, err := env.plans.UpdatePlan(context.Background(), pausedPlan.ID, owner.ID, PlanUpdate{Status: &paused})
	require.NoError(t, err)

	plans, total, err := env.plans.ListPlans(context.Background(), owner.ID, repository.PlanFilter{Page: 1, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
	assert.Len(t, plans, 2)

	plans, total, err = env.plans.ListPlans(context.Background(), owner.ID, repository.PlanFilter{
		Status: &paused, Page: 1, PageSize: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, plans, 1)
	assert.Equal(t, pausedPlan.ID, plans[0].ID)
}
