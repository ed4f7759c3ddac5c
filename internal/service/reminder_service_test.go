package service

import (
	"context"
	"testing"

	"github.com/Tanya-Zhu/fitness-manager/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateReminderRegistersJob(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner@example.com")
	plan := env.createPlan(t, owner.ID, "routine")

	reminder, err := env.reminders.CreateReminder(context.Background(), plan.ID, owner.ID, ReminderInput{
		ReminderTime: "18:30",
		Frequency:    domain.FrequencyWeekly,
		DaysOfWeek:   []int{1, 3, 5},
		IsEnabled:    true,
	})
	require.NoError(t, err)
	assert.Equal(t, "30 18 * * 1,3,5", env.sched.registered[reminder.JobID()])

	// Disabled reminders are stored but never scheduled.
	disabled, err := env.reminders.CreateReminder(context.Background(), plan.ID, owner.ID, ReminderInput{
		ReminderTime: "07:00",
		Frequency:    domain.FrequencyDaily,
		IsEnabled:    false,
	})
	require.NoError(t, err)
	assert.False(t, env.sched.has(disabled.JobID()))
}

func TestCreateReminderValidation(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner@example.com")
	member := env.createUser(t, "member@example.com")
	plan := env.createPlan(t, owner.ID, "routine")

	_, err := env.members.InviteMember(context.Background(), plan.ID, owner.ID, member.Email)
	require.NoError(t, err)

	_, err = env.reminders.CreateReminder(context.Background(), plan.ID, owner.ID, ReminderInput{
		ReminderTime: "25:00",
		Frequency:    domain.FrequencyDaily,
		IsEnabled:    true,
	})
	assert.ErrorIs(t, err, ErrInvalidSchedule)

	_, err = env.reminders.CreateReminder(context.Background(), plan.ID, owner.ID, ReminderInput{
		ReminderTime: "07:00",
		Frequency:    domain.FrequencyWeekly,
		DaysOfWeek:   []int{0},
		IsEnabled:    true,
	})
	assert.ErrorIs(t, err, ErrInvalidSchedule)

	// Members cannot manage reminders.
	_, err = env.reminders.CreateReminder(context.Background(), plan.ID, member.ID, ReminderInput{
		ReminderTime: "07:00",
		Frequency:    domain.FrequencyDaily,
		IsEnabled:    true,
	})
	assert.ErrorIs(t, err, ErrPlanNotFound)
}

func TestUpdateReminderReschedules(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner@example.com")
	plan := env.createPlan(t, owner.ID, "routine")

	reminder, err := env.reminders.CreateReminder(context.Background(), plan.ID, owner.ID, ReminderInput{
		ReminderTime: "07:00",
		Frequency:    domain.FrequencyDaily,
		IsEnabled:    true,
	})
	require.NoError(t, err)
	require.Equal(t, "0 7 * * *", env.sched.registered[reminder.JobID()])

	updated, err := env.reminders.UpdateReminder(context.Background(), plan.ID, reminder.ID, owner.ID, ReminderInput{
		ReminderTime: "06:15",
		Frequency:    domain.FrequencyCustom,
		DaysOfWeek:   []int{2, 4},
		IsEnabled:    true,
	})
	require.NoError(t, err)
	assert.Equal(t, "15 6 * * 2,4", env.sched.registered[updated.JobID()])

	// Disabling drops the job without deleting the reminder.
	_, err = env.reminders.UpdateReminder(context.Background(), plan.ID, reminder.ID, owner.ID, ReminderInput{
		ReminderTime: "06:15",
		Frequency:    domain.FrequencyCustom,
		DaysOfWeek:   []int{2, 4},
		IsEnabled:    false,
	})
	require.NoError(t, err)
	assert.False(t, env.sched.has(reminder.JobID()))
}

func TestDeleteReminderRemovesJob(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner@example.com")
	plan := env.createPlan(t, owner.ID, "routine")

	reminder, err := env.reminders.CreateReminder(context.Background(), plan.ID, owner.ID, ReminderInput{
		ReminderTime: "07:00",
		Frequency:    domain.FrequencyDaily,
		IsEnabled:    true,
	})
	require.NoError(t, err)

	require.NoError(t, env.reminders.DeleteReminder(context.Background(), plan.ID, reminder.ID, owner.ID))
	assert.False(t, env.sched.has(reminder.JobID()))

	err = env.reminders.DeleteReminder(context.Background(), plan.ID, reminder.ID, owner.ID)
	assert.ErrorIs(t, err, ErrReminderNotFound)
}

func TestResyncJobs(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner@example.com")
	plan := env.createPlan(t, owner.ID, "routine")
	deleted := env.createPlan(t, owner.ID, "old routine")

	enabled, err := env.reminders.CreateReminder(context.Background(), plan.ID, owner.ID, ReminderInput{
		ReminderTime: "07:00",
		Frequency:    domain.FrequencyDaily,
		IsEnabled:    true,
	})
	require.NoError(t, err)
	disabled, err := env.reminders.CreateReminder(context.Background(), plan.ID, owner.ID, ReminderInput{
		ReminderTime: "08:00",
		Frequency:    domain.FrequencyDaily,
		IsEnabled:    false,
	})
	require.NoError(t, err)
	orphaned, err := env.reminders.CreateReminder(context.Background(), deleted.ID, owner.ID, ReminderInput{
		ReminderTime: "09:00",
		Frequency:    domain.FrequencyDaily,
		IsEnabled:    true,
	})
	require.NoError(t, err)
	require.NoError(t, env.plans.DeletePlan(context.Background(), deleted.ID, owner.ID))

	// Simulate a restart: the scheduler comes up empty.
	env.sched.registered = map[string]string{}

	require.NoError(t, env.reminders.ResyncJobs(context.Background()))
	assert.True(t, env.sched.has(enabled.JobID()))
	assert.False(t, env.sched.has(disabled.JobID()))
	assert.False(t, env.sched.has(orphaned.JobID()))
}
