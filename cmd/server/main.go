package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Tanya-Zhu/fitness-manager/internal/api"
	"github.com/Tanya-Zhu/fitness-manager/internal/config"
	"github.com/Tanya-Zhu/fitness-manager/internal/repository/postgres"
	"github.com/Tanya-Zhu/fitness-manager/internal/scheduler"
	"github.com/Tanya-Zhu/fitness-manager/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.Info("Starting fitness manager server...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		logger.WithError(err).Fatal("Could not load config")
	}

	// --- Database Connection ---
	db, err := postgres.ConnectDB(cfg.Database)
	if err != nil {
		logger.WithError(err).Fatal("Could not connect to database")
	}
	defer func() {
		if err := postgres.DisconnectDB(db); err != nil {
			logger.WithError(err).Error("Failed to close database connection")
		}
	}()
	logger.Info("Database connection established, schema migrated.")

	// --- Initialize Repositories ---
	userRepo := postgres.NewUserRepository(db)
	planRepo := postgres.NewPlanRepository(db)
	exerciseRepo := postgres.NewExerciseRepository(db)
	reminderRepo := postgres.NewReminderRepository(db)
	memberRepo := postgres.NewMemberRepository(db)
	executionRepo := postgres.NewExecutionRepository(db)
	workoutRepo := postgres.NewWorkoutLogRepository(db)
	gymRepo := postgres.NewGymExerciseRepository(db)

	// --- Scheduler + Worker ---
	// The API stays up without Redis; reminders degrade to unavailable.
	reminderScheduler := scheduler.New(cfg.Redis, logger)
	schedulerReady := false
	if err := reminderScheduler.Start(); err != nil {
		logger.WithError(err).Warn("Reminder scheduler unavailable, continuing without reminders")
	} else {
		schedulerReady = true
		defer reminderScheduler.Shutdown()
	}

	// --- Initialize Services ---
	notifier := service.NewLogNotificationService(logger)
	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration)
	planService := service.NewPlanService(planRepo, exerciseRepo, reminderRepo, reminderScheduler, logger)
	reminderService := service.NewReminderService(planRepo, reminderRepo, reminderScheduler, logger)
	memberService := service.NewMemberService(planRepo, memberRepo, userRepo, executionRepo, notifier)
	executionService := service.NewExecutionService(planRepo, executionRepo)
	workoutService := service.NewWorkoutService(workoutRepo)
	gymService := service.NewGymService(gymRepo)

	if schedulerReady {
		worker := scheduler.NewWorker(cfg.Redis, reminderRepo, planRepo, memberRepo, notifier, logger)
		if err := worker.Start(); err != nil {
			logger.WithError(err).Warn("Reminder worker unavailable, continuing without deliveries")
		} else {
			defer worker.Shutdown()
		}

		// Cron entries live in process memory; rebuild them from the database.
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := reminderService.ResyncJobs(ctx); err != nil {
			logger.WithError(err).Warn("Failed to resync reminder jobs")
		}
		cancel()
	}

	// --- Initialize Gin Engine ---
	router := gin.Default()

	// --- Setup Routes ---
	api.SetupRoutes(router, cfg, api.Services{
		Auth:      authService,
		Plan:      planService,
		Reminder:  reminderService,
		Member:    memberService,
		Execution: executionService,
		Workout:   workoutService,
		Gym:       gymService,
	})

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.WithField("address", cfg.Server.Address).Info("Server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("ListenAndServe failed")
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(ctxShutdown); err != nil {
		logger.WithError(err).Fatal("Server forced to shutdown")
	}

	logger.Info("Server exiting.")
}
