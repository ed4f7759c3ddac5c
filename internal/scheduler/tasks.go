package scheduler

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// Task type constants
const (
	TaskReminderDeliver = "reminder:deliver"
)

// reminderPayload identifies which reminder fired.
type reminderPayload struct {
	PlanID     uuid.UUID `json:"plan_id"`
	ReminderID uuid.UUID `json:"reminder_id"`
}

// newReminderTask builds the task enqueued each time a reminder's cron entry
// fires. Uniqueness prevents a doubled delivery when two scheduler instances
// overlap during a deploy.
func newReminderTask(planID, reminderID uuid.UUID) (*asynq.Task, error) {
	payload, err := json.Marshal(reminderPayload{PlanID: planID, ReminderID: reminderID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(
		TaskReminderDeliver,
		payload,
		asynq.MaxRetry(3),
		asynq.Timeout(time.Minute),
		asynq.Unique(time.Minute),
	), nil
}
