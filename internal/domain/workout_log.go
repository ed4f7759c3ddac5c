package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WorkoutLog is a free-form workout session, independent of any plan.
type WorkoutLog struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          uuid.UUID `gorm:"type:uuid;index;not null" json:"userId"`
	WorkoutDate     time.Time `gorm:"type:date;index;not null" json:"workoutDate"`
	WorkoutName     string    `gorm:"size:100;not null" json:"workoutName"`
	DurationMinutes int       `gorm:"not null" json:"durationMinutes"`
	CaloriesBurned  *float64  `json:"caloriesBurned,omitempty"`
	Notes           string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func (w *WorkoutLog) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}
