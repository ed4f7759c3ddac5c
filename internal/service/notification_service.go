package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Tanya-Zhu/fitness-manager/internal/domain"
	"github.com/sirupsen/logrus"
)

// NotificationService delivers user-facing messages. The current transport
// writes structured log lines; swapping in email or push only touches the
// implementation.
type NotificationService interface {
	SendReminder(ctx context.Context, user *domain.User, plan *domain.FitnessPlan)
	SendInvitation(ctx context.Context, user *domain.User, plan *domain.FitnessPlan)
}

type logNotificationService struct {
	logger *logrus.Logger
}

// NewLogNotificationService creates a notification service that logs
// deliveries instead of sending them anywhere.
func NewLogNotificationService(logger *logrus.Logger) NotificationService {
	return &logNotificationService{logger: logger}
}

func (s *logNotificationService) SendReminder(ctx context.Context, user *domain.User, plan *domain.FitnessPlan) {
	s.logger.WithFields(logrus.Fields{
		"user_id": user.ID,
		"plan_id": plan.ID,
		"channel": "log",
	}).Info(formatReminderMessage(user, plan))
}

func (s *logNotificationService) SendInvitation(ctx context.Context, user *domain.User, plan *domain.FitnessPlan) {
	s.logger.WithFields(logrus.Fields{
		"user_id": user.ID,
		"plan_id": plan.ID,
		"channel": "log",
	}).Infof("You were added to the fitness plan %q", plan.Name)
}

// formatReminderMessage renders the reminder text with the plan's exercises.
func formatReminderMessage(user *domain.User, plan *domain.FitnessPlan) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s! Time for your fitness plan %q.", user.DisplayName(), plan.Name)
	if len(plan.Exercises) > 0 {
		b.WriteString(" Today's exercises:")
		for _, exercise := range plan.Exercises {
			b.WriteString(" ")
			b.WriteString(exercise.Name)
			switch {
			case exercise.DurationMinutes != nil:
				fmt.Fprintf(&b, " (%d min);", *exercise.DurationMinutes)
			case exercise.Repetitions != nil:
				fmt.Fprintf(&b, " (%d reps);", *exercise.Repetitions)
			default:
				b.WriteString(";")
			}
		}
	}
	return b.String()
}
