package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PlanStatus type to distinguish plan lifecycle states.
type PlanStatus string

const (
	PlanStatusActive PlanStatus = "active"
	PlanStatusPaused PlanStatus = "paused"
)

// ExerciseIntensity describes how demanding an exercise is.
type ExerciseIntensity string

const (
	IntensityLow    ExerciseIntensity = "low"
	IntensityMedium ExerciseIntensity = "medium"
	IntensityHigh   ExerciseIntensity = "high"
)

// FitnessPlan is a user-owned workout plan. It always contains at least one
// exercise while it exists; deletion is a soft delete (DeletedAt set), and
// exercises/reminders logically go with the plan while past executions stay.
type FitnessPlan struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID  `gorm:"type:uuid;index;not null" json:"userId"`
	Name        string     `gorm:"size:50;not null" json:"name"`
	Description string     `gorm:"type:text" json:"description,omitempty"`
	Status      PlanStatus `gorm:"size:20;not null;default:active" json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	DeletedAt   *time.Time `gorm:"index" json:"-"`

	Owner     *User      `gorm:"foreignKey:UserID" json:"-"`
	Exercises []Exercise `gorm:"foreignKey:PlanID" json:"exercises,omitempty"`
	Reminders []Reminder `gorm:"foreignKey:PlanID" json:"reminders,omitempty"`
}

func (p *FitnessPlan) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Status == "" {
		p.Status = PlanStatusActive
	}
	return nil
}

// Exercise belongs to exactly one plan. At least one of DurationMinutes or
// Repetitions is set; both may be.
type Exercise struct {
	ID              uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	PlanID          uuid.UUID         `gorm:"type:uuid;index;not null" json:"planId"`
	Name            string            `gorm:"size:100;not null" json:"name"`
	DurationMinutes *int              `json:"durationMinutes,omitempty"`
	Repetitions     *int              `json:"repetitions,omitempty"`
	Intensity       ExerciseIntensity `gorm:"size:20;not null;default:medium" json:"intensity"`
	OrderIndex      int               `gorm:"not null;default:0" json:"orderIndex"`
	CreatedAt       time.Time         `json:"createdAt"`
}

func (e *Exercise) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.Intensity == "" {
		e.Intensity = IntensityMedium
	}
	return nil
}
