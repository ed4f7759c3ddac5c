package postgres

import (
	"context"
	"errors"

	"github.com/Tanya-Zhu/fitness-manager/internal/domain"
	"github.com/Tanya-Zhu/fitness-manager/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// exerciseRepository implements repository.ExerciseRepository on GORM.
type exerciseRepository struct {
	db *gorm.DB
}

func NewExerciseRepository(db *gorm.DB) repository.ExerciseRepository {
	return &exerciseRepository{db: db}
}

func (r *exerciseRepository) Create(ctx context.Context, exercise *domain.Exercise) error {
	return r.db.WithContext(ctx).Create(exercise).Error
}

func (r *exerciseRepository) GetInPlan(ctx context.Context, exerciseID, planID uuid.UUID) (*domain.Exercise, error) {
	var exercise domain.Exercise
	err := r.db.WithContext(ctx).
		Where("id = ? AND plan_id = ?", exerciseID, planID).
		First(&exercise).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &exercise, nil
}

func (r *exerciseRepository) Update(ctx context.Context, exercise *domain.Exercise) error {
	return r.db.WithContext(ctx).Save(exercise).Error
}

// DeleteGuarded counts and deletes in one transaction so two concurrent
// deletions of the last two exercises serialize on the same boundary.
func (r *exerciseRepository) DeleteGuarded(ctx context.Context, exerciseID, planID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var exercise domain.Exercise
		if err := tx.Where("id = ? AND plan_id = ?", exerciseID, planID).First(&exercise).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return repository.ErrNotFound
			}
			return err
		}

		var count int64
		if err := tx.Model(&domain.Exercise{}).Where("plan_id = ?", planID).Count(&count).Error; err != nil {
			return err
		}
		if count <= 1 {
			return repository.ErrLastExercise
		}

		return tx.Delete(&exercise).Error
	})
}
