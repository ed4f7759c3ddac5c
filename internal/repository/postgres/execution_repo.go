package postgres

import (
	"context"
	"errors"

	"github.com/Tanya-Zhu/fitness-manager/internal/domain"
	"github.com/Tanya-Zhu/fitness-manager/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// executionRepository implements repository.ExecutionRepository on GORM.
type executionRepository struct {
	db *gorm.DB
}

func NewExecutionRepository(db *gorm.DB) repository.ExecutionRepository {
	return &executionRepository{db: db}
}

func (r *executionRepository) Create(ctx context.Context, execution *domain.PlanExecution) error {
	// Inserts the execution and its exercise rows in one transaction.
	return r.db.WithContext(ctx).Create(execution).Error
}

func (r *executionRepository) GetForUser(ctx context.Context, executionID, userID uuid.UUID) (*domain.PlanExecution, error) {
	var execution domain.PlanExecution
	err := r.db.WithContext(ctx).
		Preload("ExerciseExecutions").
		Where("id = ? AND user_id = ?", executionID, userID).
		First(&execution).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &execution, nil
}

func (r *executionRepository) ListForUser(ctx context.Context, userID uuid.UUID, filter repository.ExecutionFilter) ([]domain.PlanExecution, int64, error) {
	query := r.db.WithContext(ctx).Model(&domain.PlanExecution{}).
		Where("user_id = ?", userID)
	if filter.PlanID != nil {
		query = query.Where("plan_id = ?", *filter.PlanID)
	}
	if filter.StartDate != nil {
		query = query.Where("execution_date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("execution_date <= ?", *filter.EndDate)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var executions []domain.PlanExecution
	offset := (filter.Page - 1) * filter.PageSize
	err := query.
		Preload("ExerciseExecutions").
		Order("execution_date DESC, created_at DESC").
		Offset(offset).Limit(filter.PageSize).
		Find(&executions).Error
	if err != nil {
		return nil, 0, err
	}
	return executions, total, nil
}

func (r *executionRepository) ListByPlanAndUser(ctx context.Context, planID, userID uuid.UUID) ([]domain.PlanExecution, error) {
	var executions []domain.PlanExecution
	err := r.db.WithContext(ctx).
		Preload("ExerciseExecutions").
		Where("plan_id = ? AND user_id = ?", planID, userID).
		Order("execution_date DESC").
		Find(&executions).Error
	if err != nil {
		return nil, err
	}
	return executions, nil
}

func (r *executionRepository) Update(ctx context.Context, execution *domain.PlanExecution) error {
	return r.db.WithContext(ctx).Model(execution).
		Select("execution_date", "notes", "updated_at").
		Updates(map[string]any{
			"execution_date": execution.ExecutionDate,
			"notes":          execution.Notes,
			"updated_at":     execution.UpdatedAt,
		}).Error
}

// ReplaceExerciseExecutions swaps the full set of per-exercise results for an
// execution. Callers resubmit the whole list on update.
func (r *executionRepository) ReplaceExerciseExecutions(ctx context.Context, executionID uuid.UUID, items []domain.ExerciseExecution) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("plan_execution_id = ?", executionID).Delete(&domain.ExerciseExecution{}).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		for i := range items {
			items[i].PlanExecutionID = executionID
		}
		return tx.Create(&items).Error
	})
}

func (r *executionRepository) Delete(ctx context.Context, executionID uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&domain.PlanExecution{}, "id = ?", executionID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
