package postgres

import (
	"context"
	"errors"

	"github.com/Tanya-Zhu/fitness-manager/internal/domain"
	"github.com/Tanya-Zhu/fitness-manager/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// gymExerciseRepository implements repository.GymExerciseRepository on GORM.
type gymExerciseRepository struct {
	db *gorm.DB
}

func NewGymExerciseRepository(db *gorm.DB) repository.GymExerciseRepository {
	return &gymExerciseRepository{db: db}
}

func (r *gymExerciseRepository) Create(ctx context.Context, log *domain.GymExerciseLog) error {
	// Inserts the log and its sets in one transaction.
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *gymExerciseRepository) GetForUser(ctx context.Context, logID, userID uuid.UUID) (*domain.GymExerciseLog, error) {
	var log domain.GymExerciseLog
	err := r.db.WithContext(ctx).
		Preload("Sets", func(db *gorm.DB) *gorm.DB { return db.Order("set_number ASC") }).
		Where("id = ? AND user_id = ?", logID, userID).
		First(&log).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &log, nil
}

func (r *gymExerciseRepository) ListForUser(ctx context.Context, userID uuid.UUID, filter repository.DateRangeFilter) ([]domain.GymExerciseLog, int64, error) {
	query := r.db.WithContext(ctx).Model(&domain.GymExerciseLog{}).
		Where("user_id = ?", userID)
	if filter.StartDate != nil {
		query = query.Where("workout_date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("workout_date <= ?", *filter.EndDate)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []domain.GymExerciseLog
	offset := (filter.Page - 1) * filter.PageSize
	err := query.
		Preload("Sets", func(db *gorm.DB) *gorm.DB { return db.Order("set_number ASC") }).
		Order("workout_date DESC, created_at DESC").
		Offset(offset).Limit(filter.PageSize).
		Find(&logs).Error
	if err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}

func (r *gymExerciseRepository) Update(ctx context.Context, log *domain.GymExerciseLog) error {
	return r.db.WithContext(ctx).Model(log).
		Select("workout_date", "exercise_name", "notes", "updated_at").
		Updates(map[string]any{
			"workout_date":  log.WorkoutDate,
			"exercise_name": log.ExerciseName,
			"notes":         log.Notes,
			"updated_at":    log.UpdatedAt,
		}).Error
}

// ReplaceSets swaps the full set list for a log. Callers resubmit all sets
// on update, renumbered from one.
func (r *gymExerciseRepository) ReplaceSets(ctx context.Context, logID uuid.UUID, sets []domain.GymExerciseSet) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("gym_exercise_log_id = ?", logID).Delete(&domain.GymExerciseSet{}).Error; err != nil {
			return err
		}
		if len(sets) == 0 {
			return nil
		}
		for i := range sets {
			sets[i].GymExerciseLogID = logID
		}
		return tx.Create(&sets).Error
	})
}

func (r *gymExerciseRepository) Delete(ctx context.Context, logID uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&domain.GymExerciseLog{}, "id = ?", logID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *gymExerciseRepository) ExerciseNames(ctx context.Context, userID uuid.UUID) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).Model(&domain.GymExerciseLog{}).
		Distinct("exercise_name").
		Where("user_id = ?", userID).
		Order("exercise_name ASC").
		Pluck("exercise_name", &names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}

func (r *gymExerciseRepository) ListByExerciseName(ctx context.Context, userID uuid.UUID, exerciseName string) ([]domain.GymExerciseLog, error) {
	var logs []domain.GymExerciseLog
	err := r.db.WithContext(ctx).
		Preload("Sets", func(db *gorm.DB) *gorm.DB { return db.Order("set_number ASC") }).
		Where("user_id = ? AND exercise_name = ?", userID, exerciseName).
		Order("workout_date ASC").
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}
