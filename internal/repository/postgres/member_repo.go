package postgres

import (
	"context"
	"errors"

	"github.com/Tanya-Zhu/fitness-manager/internal/domain"
	"github.com/Tanya-Zhu/fitness-manager/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// memberRepository implements repository.MemberRepository on GORM.
type memberRepository struct {
	db *gorm.DB
}

func NewMemberRepository(db *gorm.DB) repository.MemberRepository {
	return &memberRepository{db: db}
}

func (r *memberRepository) Create(ctx context.Context, member *domain.PlanMember) error {
	return r.db.WithContext(ctx).Create(member).Error
}

func (r *memberRepository) Get(ctx context.Context, planID, userID uuid.UUID) (*domain.PlanMember, error) {
	var member domain.PlanMember
	err := r.db.WithContext(ctx).
		Where("plan_id = ? AND user_id = ?", planID, userID).
		First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &member, nil
}

func (r *memberRepository) ListByPlan(ctx context.Context, planID uuid.UUID) ([]domain.PlanMember, error) {
	var members []domain.PlanMember
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("plan_id = ?", planID).
		Order("joined_at ASC").
		Find(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}

func (r *memberRepository) IsMember(ctx context.Context, planID, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.PlanMember{}).
		Where("plan_id = ? AND user_id = ?", planID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *memberRepository) Delete(ctx context.Context, planID, userID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("plan_id = ? AND user_id = ?", planID, userID).
		Delete(&domain.PlanMember{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
