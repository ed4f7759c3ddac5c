package postgres

import (
	"context"
	"errors"

	"github.com/Tanya-Zhu/fitness-manager/internal/domain"
	"github.com/Tanya-Zhu/fitness-manager/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// reminderRepository implements repository.ReminderRepository on GORM.
type reminderRepository struct {
	db *gorm.DB
}

func NewReminderRepository(db *gorm.DB) repository.ReminderRepository {
	return &reminderRepository{db: db}
}

func (r *reminderRepository) Create(ctx context.Context, reminder *domain.Reminder) error {
	return r.db.WithContext(ctx).Create(reminder).Error
}

func (r *reminderRepository) GetInPlan(ctx context.Context, reminderID, planID uuid.UUID) (*domain.Reminder, error) {
	var reminder domain.Reminder
	err := r.db.WithContext(ctx).
		Where("id = ? AND plan_id = ?", reminderID, planID).
		First(&reminder).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &reminder, nil
}

func (r *reminderRepository) GetByID(ctx context.Context, reminderID uuid.UUID) (*domain.Reminder, error) {
	var reminder domain.Reminder
	err := r.db.WithContext(ctx).Where("id = ?", reminderID).First(&reminder).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &reminder, nil
}

func (r *reminderRepository) ListByPlan(ctx context.Context, planID uuid.UUID) ([]domain.Reminder, error) {
	var reminders []domain.Reminder
	err := r.db.WithContext(ctx).
		Where("plan_id = ?", planID).
		Order("created_at ASC").
		Find(&reminders).Error
	if err != nil {
		return nil, err
	}
	return reminders, nil
}

func (r *reminderRepository) ListEnabled(ctx context.Context) ([]domain.Reminder, error) {
	var reminders []domain.Reminder
	err := r.db.WithContext(ctx).
		Joins("JOIN fitness_plans ON fitness_plans.id = reminders.plan_id").
		Where("reminders.is_enabled = ? AND fitness_plans.deleted_at IS NULL", true).
		Find(&reminders).Error
	if err != nil {
		return nil, err
	}
	return reminders, nil
}

func (r *reminderRepository) Update(ctx context.Context, reminder *domain.Reminder) error {
	// Save would skip zero values for DaysOfWeek/IsEnabled via Updates; use
	// Select("*") so clearing the weekday set or disabling persists.
	return r.db.WithContext(ctx).Model(reminder).Select("*").Omit("created_at").Updates(reminder).Error
}

func (r *reminderRepository) Delete(ctx context.Context, reminderID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Reminder{}, "id = ?", reminderID).Error
}
