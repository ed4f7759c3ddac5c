package postgres

import (
	"fmt"

	"github.com/Tanya-Zhu/fitness-manager/internal/config"
	"github.com/Tanya-Zhu/fitness-manager/internal/domain"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// ConnectDB opens the database connection and runs schema migration.
func ConnectDB(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%d sslmode=%s",
		cfg.Host, cfg.User, cfg.Password, cfg.Name, cfg.Port, cfg.SSLMode,
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}
	return db, nil
}

// Migrate creates or updates the schema for all domain entities.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.FitnessPlan{},
		&domain.Exercise{},
		&domain.Reminder{},
		&domain.PlanMember{},
		&domain.PlanExecution{},
		&domain.ExerciseExecution{},
		&domain.WorkoutLog{},
		&domain.GymExerciseLog{},
		&domain.GymExerciseSet{},
	)
}

// DisconnectDB closes the underlying sql.DB pool.
func DisconnectDB(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
