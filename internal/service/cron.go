package service

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/Tanya-Zhu/fitness-manager/internal/domain"
)

// cronSpecFor translates a reminder's schedule into a five-field cron spec.
//
// reminderTime is "HH:MM". Weekdays use 1 (Monday) through 7 (Sunday) and are
// mapped to cron's 0-6 convention where Sunday is 0. Daily reminders fire
// every day regardless of any weekday set; weekly and custom reminders
// without weekdays fall back to daily.
func cronSpecFor(reminderTime string, frequency domain.ReminderFrequency, daysOfWeek []int) (string, error) {
	hour, minute, err := parseReminderTime(reminderTime)
	if err != nil {
		return "", err
	}

	if frequency == domain.FrequencyDaily || len(daysOfWeek) == 0 {
		return fmt.Sprintf("%d %d * * *", minute, hour), nil
	}

	seen := make(map[int]bool, len(daysOfWeek))
	days := make([]int, 0, len(daysOfWeek))
	for _, day := range daysOfWeek {
		if day < 1 || day > 7 {
			return "", fmt.Errorf("day of week out of range: %d", day)
		}
		if !seen[day] {
			seen[day] = true
			days = append(days, day)
		}
	}
	sort.Ints(days)

	cronDays := make([]string, len(days))
	for i, day := range days {
		cronDays[i] = strconv.Itoa(day % 7) // 7 (Sunday) becomes 0
	}
	return fmt.Sprintf("%d %d * * %s", minute, hour, strings.Join(cronDays, ",")), nil
}

// parseReminderTime splits "HH:MM" into its components.
func parseReminderTime(value string) (hour, minute int, err error) {
	parts := strings.Split(value, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid reminder time %q", value)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid reminder hour %q", value)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid reminder minute %q", value)
	}
	return hour, minute, nil
}
