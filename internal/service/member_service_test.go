package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInviteMember(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner@example.com")
	friend := env.createUser(t, "friend@example.com")
	plan := env.createPlan(t, owner.ID, "shared plan")

	member, err := env.members.InviteMember(context.Background(), plan.ID, owner.ID, friend.Email)
	require.NoError(t, err)
	assert.Equal(t, friend.ID, member.UserID)
	require.NotNil(t, member.InvitedBy)
	assert.Equal(t, owner.ID, *member.InvitedBy)

	// Inviting twice conflicts, as does inviting the owner.
	_, err = env.members.InviteMember(context.Background(), plan.ID, owner.ID, friend.Email)
	assert.ErrorIs(t, err, ErrAlreadyMember)
	_, err = env.members.InviteMember(context.Background(), plan.ID, owner.ID, owner.Email)
	assert.ErrorIs(t, err, ErrAlreadyMember)

	_, err = env.members.InviteMember(context.Background(), plan.ID, owner.ID, "nobody@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestMembersMayInviteOthers(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner@example.com")
	member := env.createUser(t, "member@example.com")
	third := env.createUser(t, "third@example.com")
	plan := env.createPlan(t, owner.ID, "shared plan")

	_, err := env.members.InviteMember(context.Background(), plan.ID, owner.ID, member.Email)
	require.NoError(t, err)

	_, err = env.members.InviteMember(context.Background(), plan.ID, member.ID, third.Email)
	require.NoError(t, err)

	members, err := env.members.ListMembers(context.Background(), plan.ID, owner.ID)
	require.NoError(t, err)
	assert.Len(t, members, 2)
}

func TestRemoveMember(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner@example.com")
	first := env.createUser(t, "first@example.com")
	second := env.createUser(t, "second@example.com")
	plan := env.createPlan(t, owner.ID, "shared plan")

	_, err := env.members.InviteMember(context.Background(), plan.ID, owner.ID, first.Email)
	require.NoError(t, err)
	_, err = env.members.InviteMember(context.Background(), plan.ID, owner.ID, second.Email)
	require.NoError(t, err)

	// A member cannot remove another member, but may leave.
	err = env.members.RemoveMember(context.Background(), plan.ID, first.ID, second.ID)
	assert.ErrorIs(t, err, ErrRemovalDenied)
	require.NoError(t, env.members.RemoveMember(context.Background(), plan.ID, first.ID, first.ID))

	// The owner can remove anyone.
	require.NoError(t, env.members.RemoveMember(context.Background(), plan.ID, owner.ID, second.ID))
	err = env.members.RemoveMember(context.Background(), plan.ID, owner.ID, second.ID)
	assert.ErrorIs(t, err, ErrMemberNotFound)
}

func TestLeaderboard(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner@example.com")
	member := env.createUser(t, "member@example.com")
	idle := env.createUser(t, "idle@example.com")
	plan := env.createPlan(t, owner.ID, "shared plan")

	_, err := env.members.InviteMember(context.Background(), plan.ID, owner.ID, member.Email)
	require.NoError(t, err)
	_, err = env.members.InviteMember(context.Background(), plan.ID, owner.ID, idle.Email)
	require.NoError(t, err)

	// Owner completes everything twice; member once, half-heartedly.
	full := []ExerciseExecutionInput{
		{ExerciseID: plan.Exercises[0].ID, Completed: true},
		{ExerciseID: plan.Exercises[1].ID, Completed: true},
	}
	half := []ExerciseExecutionInput{
		{ExerciseID: plan.Exercises[0].ID, Completed: true},
		{ExerciseID: plan.Exercises[1].ID, Completed: false},
	}
	_, err = env.executions.CreateExecution(context.Background(), owner.ID, plan.ID, testDate(2026, 8, 1), "", full)
	require.NoError(t, err)
	_, err = env.executions.CreateExecution(context.Background(), owner.ID, plan.ID, testDate(2026, 8, 2), "", full)
	require.NoError(t, err)
	_, err = env.executions.CreateExecution(context.Background(), member.ID, plan.ID, testDate(2026, 8, 3), "", half)
	require.NoError(t, err)

	entries, err := env.members.Leaderboard(context.Background(), plan.ID, member.ID)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// Ordered by rate rank: owner (100), member (50), idle (0).
	assert.Equal(t, owner.ID, entries[0].UserID)
	assert.True(t, entries[0].IsOwner)
	assert.Equal(t, 2, entries[0].TotalExecutions)
	assert.InDelta(t, 100, entries[0].AverageCompletionRate, 0.001)
	require.NotNil(t, entries[0].LastExecutionDate)
	assert.Equal(t, testDate(2026, 8, 2), *entries[0].LastExecutionDate)

	assert.Equal(t, member.ID, entries[1].UserID)
	assert.InDelta(t, 50, entries[1].AverageCompletionRate, 0.001)
	assert.Equal(t, 2, entries[1].RankByRate)
	assert.Equal(t, 2, entries[1].RankByCount)

	// Zero-execution participants still get an entry.
	assert.Equal(t, idle.ID, entries[2].UserID)
	assert.Equal(t, 0, entries[2].TotalExecutions)
	assert.Nil(t, entries[2].LastExecutionDate)
	assert.Equal(t, 3, entries[2].RankByRate)
	assert.Equal(t, 3, entries[2].RankByCount)
}

func TestLeaderboardDeniedForStrangers(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner@example.com")
	stranger := env.createUser(t, "stranger@example.com")
	plan := env.createPlan(t, owner.ID, "private plan")

	_, err := env.members.Leaderboard(context.Background(), plan.ID, stranger.ID)
	assert.ErrorIs(t, err, ErrPlanNotFound)
}
