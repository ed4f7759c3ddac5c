package service

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// LeaderboardEntry is one participant's standing on a plan. Every participant
// (owner and members) gets an entry, including those with zero executions.
type LeaderboardEntry struct {
	UserID                uuid.UUID
	DisplayName           string
	IsOwner               bool
	TotalExecutions       int
	AverageCompletionRate float64
	LastExecutionDate     *time.Time
	RankByRate            int
	RankByCount           int
}

// rankLeaderboard assigns the two independent 1-based rankings and returns the
// entries ordered by completion-rate rank. Both sorts are stable, so
// participants tied on a metric keep their incoming relative order.
func rankLeaderboard(entries []LeaderboardEntry) []LeaderboardEntry {
	byCount := make([]*LeaderboardEntry, len(entries))
	for i := range entries {
		byCount[i] = &entries[i]
	}
	sort.SliceStable(byCount, func(i, j int) bool {
		return byCount[i].TotalExecutions > byCount[j].TotalExecutions
	})
	for rank, entry := range byCount {
		entry.RankByCount = rank + 1
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].AverageCompletionRate > entries[j].AverageCompletionRate
	})
	for i := range entries {
		entries[i].RankByRate = i + 1
	}
	return entries
}
