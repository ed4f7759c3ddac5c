package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReminderFrequency describes how often a reminder fires.
type ReminderFrequency string

const (
	FrequencyDaily  ReminderFrequency = "daily"
	FrequencyWeekly ReminderFrequency = "weekly"
	FrequencyCustom ReminderFrequency = "custom"
)

// Reminder schedules notifications for a plan. ReminderTime is the time of day
// in "HH:MM" form; DaysOfWeek uses 1 (Monday) through 7 (Sunday) and is only
// meaningful for weekly/custom frequencies. Each enabled reminder has a
// matching job in the external scheduler, keyed by JobID().
type Reminder struct {
	ID           uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	PlanID       uuid.UUID         `gorm:"type:uuid;index;not null" json:"planId"`
	ReminderTime string            `gorm:"size:5;not null" json:"reminderTime"`
	Frequency    ReminderFrequency `gorm:"size:20;not null;default:weekly" json:"frequency"`
	DaysOfWeek   []int             `gorm:"serializer:json" json:"daysOfWeek,omitempty"`
	IsEnabled    bool              `gorm:"not null;default:true" json:"isEnabled"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

func (r *Reminder) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.Frequency == "" {
		r.Frequency = FrequencyWeekly
	}
	return nil
}

// JobID derives the scheduler job identifier for this reminder.
func (r *Reminder) JobID() string {
	return "reminder_" + r.PlanID.String() + "_" + r.ID.String()
}
