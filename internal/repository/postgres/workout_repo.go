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

// workoutLogRepository implements repository.WorkoutLogRepository on GORM.
type workoutLogRepository struct {
	db *gorm.DB
}

func NewWorkoutLogRepository(db *gorm.DB) repository.WorkoutLogRepository {
	return &workoutLogRepository{db: db}
}

func (r *workoutLogRepository) Create(ctx context.Context, log *domain.WorkoutLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *workoutLogRepository) GetForUser(ctx context.Context, logID, userID uuid.UUID) (*domain.WorkoutLog, error) {
	var log domain.WorkoutLog
	err := r.db.WithContext(ctx).
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

func (r *workoutLogRepository) ListForUser(ctx context.Context, userID uuid.UUID, filter repository.DateRangeFilter) ([]domain.WorkoutLog, int64, error) {
	query := r.db.WithContext(ctx).Model(&domain.WorkoutLog{}).
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

	var logs []domain.WorkoutLog
	offset := (filter.Page - 1) * filter.PageSize
	err := query.
		Order("workout_date DESC, created_at DESC").
		Offset(offset).Limit(filter.PageSize).
		Find(&logs).Error
	if err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}

func (r *workoutLogRepository) Update(ctx context.Context, log *domain.WorkoutLog) error {
	return r.db.WithContext(ctx).Model(log).Select("*").Omit("id", "user_id", "created_at").Updates(log).Error
}

func (r *workoutLogRepository) Delete(ctx context.Context, logID uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&domain.WorkoutLog{}, "id = ?", logID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *workoutLogRepository) Stats(ctx context.Context, userID uuid.UUID, startDate, endDate *time.Time) (repository.WorkoutStats, error) {
	query := r.db.WithContext(ctx).Model(&domain.WorkoutLog{}).
		Where("user_id = ?", userID)
	if startDate != nil {
		query = query.Where("workout_date >= ?", *startDate)
	}
	if endDate != nil {
		query = query.Where("workout_date <= ?", *endDate)
	}

	var stats repository.WorkoutStats
	err := query.
		Select(
			"COUNT(*) AS total_workouts, " +
				"COALESCE(SUM(duration_minutes), 0) AS total_duration_minutes, " +
				"COALESCE(SUM(calories_burned), 0) AS total_calories, " +
				"COALESCE(AVG(duration_minutes), 0) AS avg_duration_minutes, " +
				"COALESCE(AVG(calories_burned), 0) AS avg_calories",
		).
		Scan(&stats).Error
	if err != nil {
		return repository.WorkoutStats{}, err
	}
	return stats, nil
}

// periodExpr returns the SQL grouping expression for the requested period
// under the connected dialect. The in-memory test database is sqlite, so
// both spellings are supported.
func (r *workoutLogRepository) periodExpr(periodType string) string {
	if r.db.Dialector.Name() == "sqlite" {
		if periodType == "month" {
			return "strftime('%Y-%m', workout_date)"
		}
		return "strftime('%Y-W%W', workout_date)"
	}
	if periodType == "month" {
		return "to_char(workout_date, 'YYYY-MM')"
	}
	return "to_char(workout_date, 'IYYY-\"W\"IW')"
}

func (r *workoutLogRepository) ChartData(ctx context.Context, userID uuid.UUID, periodType string, limit int) ([]repository.WorkoutChartPoint, error) {
	expr := r.periodExpr(periodType)

	var points []repository.WorkoutChartPoint
	err := r.db.WithContext(ctx).Model(&domain.WorkoutLog{}).
		Select(expr+" AS period, "+
			"COUNT(*) AS workouts, "+
			"COALESCE(SUM(duration_minutes), 0) AS duration_minutes, "+
			"COALESCE(SUM(calories_burned), 0) AS calories").
		Where("user_id = ?", userID).
		Group(expr).
		Order("period DESC").
		Limit(limit).
		Scan(&points).Error
	if err != nil {
		return nil, err
	}

	// Reverse so the chart reads oldest to newest.
	for i, j := 0, len(points)-1; i < j; i, j = i+1, j-1 {
		points[i], points[j] = points[j], points[i]
	}
	return points, nil
}
