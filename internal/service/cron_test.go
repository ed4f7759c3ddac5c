package service

import (
	"testing"

	"github.com/Tanya-Zhu/fitness-manager/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCronSpecFor(t *testing.T) {
	tests := []struct {
		name      string
		time      string
		frequency domain.ReminderFrequency
		days      []int
		want      string
	}{
		{
			name:      "daily",
			time:      "07:30",
			frequency: domain.FrequencyDaily,
			want:      "30 7 * * *",
		},
		{
			name:      "daily ignores weekdays",
			time:      "07:30",
			frequency: domain.FrequencyDaily,
			days:      []int{1, 3},
			want:      "30 7 * * *",
		},
		{
			name:      "weekly with weekdays",
			time:      "18:00",
			frequency: domain.FrequencyWeekly,
			days:      []int{1, 3, 5},
			want:      "0 18 * * 1,3,5",
		},
		{
			name:      "sunday maps to zero",
			time:      "09:15",
			frequency: domain.FrequencyCustom,
			days:      []int{7},
			want:      "15 9 * * 0",
		},
		{
			name:      "weekdays deduplicated and sorted",
			time:      "06:00",
			frequency: domain.FrequencyCustom,
			days:      []int{5, 1, 5, 7},
			want:      "0 6 * * 1,5,0",
		},
		{
			name:      "weekly without weekdays falls back to daily",
			time:      "21:45",
			frequency: domain.FrequencyWeekly,
			want:      "45 21 * * *",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := cronSpecFor(tt.time, tt.frequency, tt.days)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCronSpecForInvalid(t *testing.T) {
	tests := []struct {
		name string
		time string
		days []int
	}{
		{name: "missing colon", time: "0730"},
		{name: "hour out of range", time: "24:00"},
		{name: "minute out of range", time: "10:60"},
		{name: "day out of range", time: "10:00", days: []int{0}},
		{name: "day too large", time: "10:00", days: []int{8}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := cronSpecFor(tt.time, domain.FrequencyWeekly, tt.days)
			assert.Error(t, err)
		})
	}
}
