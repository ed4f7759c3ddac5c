package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GymExerciseLog tracks strength training for one exercise on one day,
// broken down into sets.
type GymExerciseLog struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID `gorm:"type:uuid;index;not null" json:"userId"`
	WorkoutDate  time.Time `gorm:"type:date;index;not null" json:"workoutDate"`
	ExerciseName string    `gorm:"size:100;not null" json:"exerciseName"`
	Notes        string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	Sets []GymExerciseSet `gorm:"foreignKey:GymExerciseLogID;constraint:OnDelete:CASCADE" json:"sets,omitempty"`
}

func (g *GymExerciseLog) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

// GymExerciseSet is one set within a gym exercise log. Weight is optional for
// bodyweight movements.
type GymExerciseSet struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	GymExerciseLogID uuid.UUID `gorm:"type:uuid;index;not null" json:"gymExerciseLogId"`
	SetNumber        int       `gorm:"not null" json:"setNumber"`
	Reps             int       `gorm:"not null" json:"reps"`
	Weight           *float64  `json:"weight,omitempty"`
	Notes            string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
}

func (s *GymExerciseSet) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
