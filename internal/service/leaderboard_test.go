package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankLeaderboardOrdersByRate(t *testing.T) {
	entries := rankLeaderboard([]LeaderboardEntry{
		{UserID: uuid.New(), DisplayName: "low", AverageCompletionRate: 40, TotalExecutions: 10},
		{UserID: uuid.New(), DisplayName: "high", AverageCompletionRate: 90, TotalExecutions: 2},
		{UserID: uuid.New(), DisplayName: "mid", AverageCompletionRate: 70, TotalExecutions: 5},
	})
	require.Len(t, entries, 3)

	assert.Equal(t, "high", entries[0].DisplayName)
	assert.Equal(t, "mid", entries[1].DisplayName)
	assert.Equal(t, "low", entries[2].DisplayName)

	assert.Equal(t, 1, entries[0].RankByRate)
	assert.Equal(t, 2, entries[1].RankByRate)
	assert.Equal(t, 3, entries[2].RankByRate)

	// Count ranking is independent of rate ranking.
	assert.Equal(t, 3, entries[0].RankByCount) // high: 2 executions
	assert.Equal(t, 2, entries[1].RankByCount) // mid: 5 executions
	assert.Equal(t, 1, entries[2].RankByCount) // low: 10 executions
}

func TestRankLeaderboardStableOnTies(t *testing.T) {
	first := uuid.New()
	second := uuid.New()
	entries := rankLeaderboard([]LeaderboardEntry{
		{UserID: first, AverageCompletionRate: 80, TotalExecutions: 3},
		{UserID: second, AverageCompletionRate: 80, TotalExecutions: 3},
	})
	require.Len(t, entries, 2)

	// Tied participants keep their incoming order on both rankings.
	assert.Equal(t, first, entries[0].UserID)
	assert.Equal(t, second, entries[1].UserID)
	assert.Equal(t, 1, entries[0].RankByRate)
	assert.Equal(t, 2, entries[1].RankByRate)
	assert.Equal(t, 1, entries[0].RankByCount)
	assert.Equal(t, 2, entries[1].RankByCount)
}

func TestRankLeaderboardRanksArePermutations(t *testing.T) {
	entries := rankLeaderboard([]LeaderboardEntry{
		{UserID: uuid.New(), AverageCompletionRate: 10, TotalExecutions: 7},
		{UserID: uuid.New(), AverageCompletionRate: 60, TotalExecutions: 0},
		{UserID: uuid.New(), AverageCompletionRate: 60, TotalExecutions: 4},
		{UserID: uuid.New(), AverageCompletionRate: 0, TotalExecutions: 0},
	})

	rateRanks := make(map[int]bool)
	countRanks := make(map[int]bool)
	for _, entry := range entries {
		rateRanks[entry.RankByRate] = true
		countRanks[entry.RankByCount] = true
	}
	for rank := 1; rank <= len(entries); rank++ {
		assert.True(t, rateRanks[rank], "missing rate rank %d", rank)
		assert.True(t, countRanks[rank], "missing count rank %d", rank)
	}
}
