package api

import (
	"net/http"

	"github.com/Tanya-Zhu/fitness-manager/internal/config"
	"github.com/Tanya-Zhu/fitness-manager/internal/service"
	"github.com/gin-gonic/gin"
)

// Services bundles the service dependencies for route setup.
type Services struct {
	Auth      service.AuthService
	Plan      service.PlanService
	Reminder  service.ReminderService
	Member    service.MemberService
	Execution service.ExecutionService
	Workout   service.WorkoutService
	Gym       service.GymService
}

// SetupRoutes registers every endpoint on the router. Everything under
// /api/v1 except register/login requires a bearer token.
func SetupRoutes(router *gin.Engine, cfg config.Config, services Services) {
	pages := pageParams{
		DefaultPageSize: cfg.Pagination.DefaultPageSize,
		MaxPageSize:     cfg.Pagination.MaxPageSize,
	}

	authHandler := NewAuthHandler(services.Auth)
	planHandler := NewPlanHandler(services.Plan, pages)
	reminderHandler := NewReminderHandler(services.Reminder)
	calendarHandler := NewCalendarHandler(services.Plan)
	memberHandler := NewMemberHandler(services.Member)
	executionHandler := NewExecutionHandler(services.Execution, pages)
	workoutHandler := NewWorkoutHandler(services.Workout, pages)
	gymHandler := NewGymHandler(services.Gym, pages)

	authMiddleware := AuthMiddleware(cfg.JWT.Secret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.GET("/me", authMiddleware, authHandler.Me)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		planGroup := protected.Group("/plans")
		{
			planGroup.POST("", planHandler.CreatePlan)
			planGroup.GET("", planHandler.ListPlans)
			planGroup.GET("/:planID", planHandler.GetPlan)
			planGroup.PUT("/:planID", planHandler.UpdatePlan)
			planGroup.DELETE("/:planID", planHandler.DeletePlan)

			planGroup.POST("/:planID/exercises", planHandler.AddExercise)
			planGroup.PUT("/:planID/exercises/:exerciseID", planHandler.UpdateExercise)
			planGroup.DELETE("/:planID/exercises/:exerciseID", planHandler.DeleteExercise)

			planGroup.POST("/:planID/reminders", reminderHandler.CreateReminder)
			planGroup.PUT("/:planID/reminders/:reminderID", reminderHandler.UpdateReminder)
			planGroup.DELETE("/:planID/reminders/:reminderID", reminderHandler.DeleteReminder)
			planGroup.GET("/:planID/export/calendar", calendarHandler.ExportCalendar)

			planGroup.POST("/:planID/members", memberHandler.InviteMember)
			planGroup.GET("/:planID/members", memberHandler.ListMembers)
			planGroup.DELETE("/:planID/members/:userID", memberHandler.RemoveMember)
			planGroup.GET("/:planID/leaderboard", memberHandler.Leaderboard)
		}

		executionGroup := protected.Group("/plan-executions")
		{
			executionGroup.POST("", executionHandler.CreateExecution)
			executionGroup.GET("", executionHandler.ListExecutions)
			executionGroup.GET("/:executionID", executionHandler.GetExecution)
			executionGroup.PUT("/:executionID", executionHandler.UpdateExecution)
			executionGroup.DELETE("/:executionID", executionHandler.DeleteExecution)
		}

		workoutGroup := protected.Group("/workout-logs")
		{
			workoutGroup.POST("", workoutHandler.CreateLog)
			workoutGroup.GET("", workoutHandler.ListLogs)
			workoutGroup.GET("/stats", workoutHandler.Stats)
			workoutGroup.GET("/chart-data", workoutHandler.ChartData)
			workoutGroup.GET("/:logID", workoutHandler.GetLog)
			workoutGroup.PUT("/:logID", workoutHandler.UpdateLog)
			workoutGroup.DELETE("/:logID", workoutHandler.DeleteLog)
		}

		gymGroup := protected.Group("/gym-exercises")
		{
			gymGroup.POST("", gymHandler.CreateLog)
			gymGroup.GET("", gymHandler.ListLogs)
			gymGroup.GET("/stats/exercise-names", gymHandler.ExerciseNames)
			gymGroup.GET("/trends/:exerciseName", gymHandler.Trends)
			gymGroup.GET("/:logID", gymHandler.GetLog)
			gymGroup.PUT("/:logID", gymHandler.UpdateLog)
			gymGroup.DELETE("/:logID", gymHandler.DeleteLog)
		}
	}
}
