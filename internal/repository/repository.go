package repository

import (
	"context"
	"time"

	"github.com/Tanya-Zhu/fitness-manager/internal/domain"
	"github.com/google/uuid"
)

// Error constants for the repository layer.
var (
	ErrNotFound     = RepositoryError("not found")
	ErrLastExercise = RepositoryError("last exercise in plan")
)

// RepositoryError helps distinguish repository errors.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// PlanFilter narrows plan listing queries.
type PlanFilter struct {
	Status   *domain.PlanStatus
	Page     int
	PageSize int
}

// ExecutionFilter narrows plan execution listing queries.
type ExecutionFilter struct {
	PlanID    *uuid.UUID
	StartDate *time.Time
	EndDate   *time.Time
	Page      int
	PageSize  int
}

// DateRangeFilter narrows log listing queries by workout date.
type DateRangeFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Page      int
	PageSize  int
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

// PlanRepository defines the interface for interacting with fitness plan data.
// "Accessible" means the user is the owner or a member; "Owned" requires
// ownership. Both exclude soft-deleted plans.
type PlanRepository interface {
	Create(ctx context.Context, plan *domain.FitnessPlan) error
	GetAccessible(ctx context.Context, planID, userID uuid.UUID) (*domain.FitnessPlan, error)
	GetOwned(ctx context.Context, planID, ownerID uuid.UUID) (*domain.FitnessPlan, error)
	GetByID(ctx context.Context, planID uuid.UUID) (*domain.FitnessPlan, error)
	ListForUser(ctx context.Context, userID uuid.UUID, filter PlanFilter) ([]domain.FitnessPlan, int64, error)
	Update(ctx context.Context, plan *domain.FitnessPlan) error
	SoftDelete(ctx context.Context, planID uuid.UUID, deletedAt time.Time) error
}

// ExerciseRepository defines the interface for interacting with exercise data.
type ExerciseRepository interface {
	Create(ctx context.Context, exercise *domain.Exercise) error
	GetInPlan(ctx context.Context, exerciseID, planID uuid.UUID) (*domain.Exercise, error)
	Update(ctx context.Context, exercise *domain.Exercise) error
	// DeleteGuarded removes the exercise inside a transaction that first counts
	// the plan's exercises; it returns ErrLastExercise when only one remains.
	DeleteGuarded(ctx context.Context, exerciseID, planID uuid.UUID) error
}

// ReminderRepository defines the interface for interacting with reminder data.
type ReminderRepository interface {
	Create(ctx context.Context, reminder *domain.Reminder) error
	GetInPlan(ctx context.Context, reminderID, planID uuid.UUID) (*domain.Reminder, error)
	GetByID(ctx context.Context, reminderID uuid.UUID) (*domain.Reminder, error)
	ListByPlan(ctx context.Context, planID uuid.UUID) ([]domain.Reminder, error)
	// ListEnabled returns enabled reminders whose plan still exists, for
	// re-registering scheduler jobs after a restart.
	ListEnabled(ctx context.Context) ([]domain.Reminder, error)
	Update(ctx context.Context, reminder *domain.Reminder) error
	Delete(ctx context.Context, reminderID uuid.UUID) error
}

// MemberRepository defines the interface for interacting with plan membership.
type MemberRepository interface {
	Create(ctx context.Context, member *domain.PlanMember) error
	Get(ctx context.Context, planID, userID uuid.UUID) (*domain.PlanMember, error)
	ListByPlan(ctx context.Context, planID uuid.UUID) ([]domain.PlanMember, error)
	IsMember(ctx context.Context, planID, userID uuid.UUID) (bool, error)
	Delete(ctx context.Context, planID, userID uuid.UUID) error
}

// ExecutionRepository defines the interface for interacting with plan
// execution data. Exercise executions are loaded together with their parent.
type ExecutionRepository interface {
	Create(ctx context.Context, execution *domain.PlanExecution) error
	GetForUser(ctx context.Context, executionID, userID uuid.UUID) (*domain.PlanExecution, error)
	ListForUser(ctx context.Context, userID uuid.UUID, filter ExecutionFilter) ([]domain.PlanExecution, int64, error)
	ListByPlanAndUser(ctx context.Context, planID, userID uuid.UUID) ([]domain.PlanExecution, error)
	Update(ctx context.Context, execution *domain.PlanExecution) error
	ReplaceExerciseExecutions(ctx context.Context, executionID uuid.UUID, items []domain.ExerciseExecution) error
	Delete(ctx context.Context, executionID uuid.UUID) error
}

// WorkoutStats aggregates a user's free-form workout logs.
type WorkoutStats struct {
	TotalWorkouts        int64
	TotalDurationMinutes int64
	TotalCalories        float64
	AvgDurationMinutes   float64
	AvgCalories          float64
}

// WorkoutChartPoint is one aggregated period (week or month) for charting.
type WorkoutChartPoint struct {
	Period          string
	Workouts        int64
	DurationMinutes int64
	Calories        float64
}

// WorkoutLogRepository defines the interface for free-form workout logs.
type WorkoutLogRepository interface {
	Create(ctx context.Context, log *domain.WorkoutLog) error
	GetForUser(ctx context.Context, logID, userID uuid.UUID) (*domain.WorkoutLog, error)
	ListForUser(ctx context.Context, userID uuid.UUID, filter DateRangeFilter) ([]domain.WorkoutLog, int64, error)
	Update(ctx context.Context, log *domain.WorkoutLog) error
	Delete(ctx context.Context, logID uuid.UUID) error
	Stats(ctx context.Context, userID uuid.UUID, startDate, endDate *time.Time) (WorkoutStats, error)
	ChartData(ctx context.Context, userID uuid.UUID, periodType string, limit int) ([]WorkoutChartPoint, error)
}

// GymExerciseRepository defines the interface for gym exercise logs and sets.
type GymExerciseRepository interface {
	Create(ctx context.Context, log *domain.GymExerciseLog) error
	GetForUser(ctx context.Context, logID, userID uuid.UUID) (*domain.GymExerciseLog, error)
	ListForUser(ctx context.Context, userID uuid.UUID, filter DateRangeFilter) ([]domain.GymExerciseLog, int64, error)
	Update(ctx context.Context, log *domain.GymExerciseLog) error
	ReplaceSets(ctx context.Context, logID uuid.UUID, sets []domain.GymExerciseSet) error
	Delete(ctx context.Context, logID uuid.UUID) error
	ExerciseNames(ctx context.Context, userID uuid.UUID) ([]string, error)
	ListByExerciseName(ctx context.Context, userID uuid.UUID, exerciseName string) ([]domain.GymExerciseLog, error)
}
