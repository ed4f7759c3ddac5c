package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/Tanya-Zhu/fitness-manager/internal/domain"
	"github.com/Tanya-Zhu/fitness-manager/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// planRepository implements repository.PlanRepository on GORM.
type planRepository struct {
	db *gorm.DB
}

func NewPlanRepository(db *gorm.DB) repository.PlanRepository {
	return &planRepository{db: db}
}

func (r *planRepository) Create(ctx context.Context, plan *domain.FitnessPlan) error {
	// Creates the plan and its exercises in one transaction.
	return r.db.WithContext(ctx).Create(plan).Error
}

// memberPlanIDs is the subquery selecting plans the user joined as a member.
func (r *planRepository) memberPlanIDs(userID uuid.UUID) *gorm.DB {
	return r.db.Model(&domain.PlanMember{}).Select("plan_id").Where("user_id = ?", userID)
}

func (r *planRepository) GetAccessible(ctx context.Context, planID, userID uuid.UUID) (*domain.FitnessPlan, error) {
	var plan domain.FitnessPlan
	err := r.db.WithContext(ctx).
		Preload("Exercises", func(db *gorm.DB) *gorm.DB { return db.Order("order_index ASC") }).
		Preload("Reminders").
		Preload("Owner").
		Where("id = ? AND deleted_at IS NULL", planID).
		Where("user_id = ? OR id IN (?)", userID, r.memberPlanIDs(userID)).
		First(&plan).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &plan, nil
}

func (r *planRepository) GetOwned(ctx context.Context, planID, ownerID uuid.UUID) (*domain.FitnessPlan, error) {
	var plan domain.FitnessPlan
	err := r.db.WithContext(ctx).
		Preload("Exercises", func(db *gorm.DB) *gorm.DB { return db.Order("order_index ASC") }).
		Preload("Reminders").
		Where("id = ? AND user_id = ? AND deleted_at IS NULL", planID, ownerID).
		First(&plan).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &plan, nil
}

func (r *planRepository) GetByID(ctx context.Context, planID uuid.UUID) (*domain.FitnessPlan, error) {
	var plan domain.FitnessPlan
	err := r.db.WithContext(ctx).
		Preload("Exercises", func(db *gorm.DB) *gorm.DB { return db.Order("order_index ASC") }).
		Preload("Owner").
		Where("id = ? AND deleted_at IS NULL", planID).
		First(&plan).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &plan, nil
}

func (r *planRepository) ListForUser(ctx context.Context, userID uuid.UUID, filter repository.PlanFilter) ([]domain.FitnessPlan, int64, error) {
	query := r.db.WithContext(ctx).Model(&domain.FitnessPlan{}).
		Where("deleted_at IS NULL").
		Where("user_id = ? OR id IN (?)", userID, r.memberPlanIDs(userID))
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var plans []domain.FitnessPlan
	offset := (filter.Page - 1) * filter.PageSize
	err := query.
		Preload("Exercises", func(db *gorm.DB) *gorm.DB { return db.Order("order_index ASC") }).
		Preload("Owner").
		Order("updated_at DESC").
		Offset(offset).Limit(filter.PageSize).
		Find(&plans).Error
	if err != nil {
		return nil, 0, err
	}
	return plans, total, nil
}

func (r *planRepository) Update(ctx context.Context, plan *domain.FitnessPlan) error {
	return r.db.WithContext(ctx).Model(plan).
		Select("name", "description", "status", "updated_at").
		Updates(map[string]any{
			"name":        plan.Name,
			"description": plan.Description,
			"status":      plan.Status,
			"updated_at":  time.Now().UTC(),
		}).Error
}

func (r *planRepository) SoftDelete(ctx context.Context, planID uuid.UUID, deletedAt time.Time) error {
	res := r.db.WithContext(ctx).Model(&domain.FitnessPlan{}).
		Where("id = ? AND deleted_at IS NULL", planID).
		Update("deleted_at", deletedAt)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
