package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PlanMember grants a user (other than the owner) access to a plan. Membership
// confers read and execution-logging rights; plan mutation stays with the owner.
type PlanMember struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	PlanID    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uq_plan_member" json:"planId"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uq_plan_member" json:"userId"`
	InvitedBy *uuid.UUID `gorm:"type:uuid" json:"invitedBy,omitempty"`
	JoinedAt  time.Time  `gorm:"not null" json:"joinedAt"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}

func (m *PlanMember) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.JoinedAt.IsZero() {
		m.JoinedAt = time.Now().UTC()
	}
	return nil
}
