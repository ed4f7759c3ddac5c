package api

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Tanya-Zhu/fitness-manager/internal/domain"
	"github.com/Tanya-Zhu/fitness-manager/internal/service"
	ics "github.com/arran4/golang-ical"
	"github.com/gin-gonic/gin"
)

// icsWeekdays maps 1 (Monday) through 7 (Sunday) to RFC 5545 day codes.
var icsWeekdays = [8]string{"", "MO", "TU", "WE", "TH", "FR", "SA", "SU"}

// CalendarHandler exports a plan's reminders as an iCalendar feed.
type CalendarHandler struct {
	planService service.PlanService
}

// NewCalendarHandler creates a new CalendarHandler.
func NewCalendarHandler(planService service.PlanService) *CalendarHandler {
	return &CalendarHandler{planService: planService}
}

// ExportCalendar streams an ics file with one recurring event per enabled
// reminder.
func (h *CalendarHandler) ExportCalendar(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	planID, ok := parseUUIDParam(c, "planID")
	if !ok {
		return
	}

	plan, err := h.planService.GetPlan(c.Request.Context(), planID, userID)
	if err != nil {
		if err == service.ErrPlanNotFound {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to load plan")
		}
		return
	}

	cal := buildPlanCalendar(plan, time.Now().UTC())

	filename := fmt.Sprintf("plan-%s.ics", plan.ID)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(cal.Serialize()))
}

// buildPlanCalendar renders one recurring VEVENT per enabled reminder, with a
// 15-minute display alarm and the exercise list in the description.
func buildPlanCalendar(plan *domain.FitnessPlan, now time.Time) *ics.Calendar {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//fitness-manager//EN")
	cal.SetXWRCalName(plan.Name)

	description := planDescription(plan)

	for i := range plan.Reminders {
		reminder := &plan.Reminders[i]
		if !reminder.IsEnabled {
			continue
		}

		hour, minute, err := splitReminderTime(reminder.ReminderTime)
		if err != nil {
			continue
		}
		start := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, time.UTC)

		event := cal.AddEvent(reminder.JobID())
		event.SetSummary(fmt.Sprintf("Workout: %s", plan.Name))
		event.SetDescription(description)
		event.SetCreatedTime(reminder.CreatedAt)
		event.SetDtStampTime(now)
		event.SetStartAt(start)
		event.SetEndAt(start.Add(planDuration(plan)))
		event.AddRrule(reminderRRule(reminder))

		alarm := event.AddAlarm()
		alarm.SetAction(ics.ActionDisplay)
		alarm.SetTrigger("-PT15M")
	}
	return cal
}

// reminderRRule renders the recurrence rule matching the reminder's schedule.
func reminderRRule(reminder *domain.Reminder) string {
	if reminder.Frequency == domain.FrequencyDaily || len(reminder.DaysOfWeek) == 0 {
		return "FREQ=DAILY"
	}
	days := make([]string, 0, len(reminder.DaysOfWeek))
	seen := make(map[int]bool, len(reminder.DaysOfWeek))
	for _, day := range reminder.DaysOfWeek {
		if day >= 1 && day <= 7 && !seen[day] {
			seen[day] = true
			days = append(days, icsWeekdays[day])
		}
	}
	if len(days) == 0 {
		return "FREQ=DAILY"
	}
	return "FREQ=WEEKLY;BYDAY=" + strings.Join(days, ",")
}

// planDescription lists the plan's exercises for the event body.
func planDescription(plan *domain.FitnessPlan) string {
	if len(plan.Exercises) == 0 {
		return plan.Description
	}
	var b strings.Builder
	if plan.Description != "" {
		b.WriteString(plan.Description)
		b.WriteString("\n\n")
	}
	b.WriteString("Exercises:\n")
	for _, exercise := range plan.Exercises {
		b.WriteString("- ")
		b.WriteString(exercise.Name)
		switch {
		case exercise.DurationMinutes != nil:
			fmt.Fprintf(&b, " (%d min)", *exercise.DurationMinutes)
		case exercise.Repetitions != nil:
			fmt.Fprintf(&b, " (%d reps)", *exercise.Repetitions)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// planDuration sums the exercises' planned minutes, defaulting to half an
// hour when none carry a duration.
func planDuration(plan *domain.FitnessPlan) time.Duration {
	total := 0
	for _, exercise := range plan.Exercises {
		if exercise.DurationMinutes != nil {
			total += *exercise.DurationMinutes
		}
	}
	if total == 0 {
		total = 30
	}
	return time.Duration(total) * time.Minute
}

// splitReminderTime parses "HH:MM" without pulling in the service layer.
func splitReminderTime(value string) (hour, minute int, err error) {
	t, err := time.Parse("15:04", value)
	if err != nil {
		return 0, 0, err
	}
	return t.Hour(), t.Minute(), nil
}
