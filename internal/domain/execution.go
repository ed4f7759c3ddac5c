package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PlanExecution records that a user performed a plan on a given day.
// Executions are history: they survive plan deletion.
type PlanExecution struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PlanID        uuid.UUID `gorm:"type:uuid;index;not null" json:"planId"`
	UserID        uuid.UUID `gorm:"type:uuid;index;not null" json:"userId"`
	ExecutionDate time.Time `gorm:"type:date;index;not null" json:"executionDate"`
	Notes         string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`

	ExerciseExecutions []ExerciseExecution `gorm:"foreignKey:PlanExecutionID;constraint:OnDelete:CASCADE" json:"exerciseExecutions,omitempty"`
}

func (e *PlanExecution) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// ExerciseExecution records whether one planned exercise was completed during
// an execution, with optional actual metrics for partial-credit scoring.
type ExerciseExecution struct {
	ID                    uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PlanExecutionID       uuid.UUID `gorm:"type:uuid;index;not null" json:"planExecutionId"`
	ExerciseID            uuid.UUID `gorm:"type:uuid;index;not null" json:"exerciseId"`
	Completed             bool      `gorm:"not null;default:true" json:"completed"`
	ActualDurationMinutes *int      `json:"actualDurationMinutes,omitempty"`
	ActualRepetitions     *int      `json:"actualRepetitions,omitempty"`
	Notes                 string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt             time.Time `json:"createdAt"`
}

func (e *ExerciseExecution) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
