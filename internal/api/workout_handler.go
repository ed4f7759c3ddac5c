package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/Tanya-Zhu/fitness-manager/internal/domain"
	"github.com/Tanya-Zhu/fitness-manager/internal/repository"
	"github.com/Tanya-Zhu/fitness-manager/internal/service"
	"github.com/gin-gonic/gin"
)

// WorkoutHandler holds the workout service dependency.
type WorkoutHandler struct {
	workoutService service.WorkoutService
	pages          pageParams
}

// NewWorkoutHandler creates a new WorkoutHandler.
func NewWorkoutHandler(workoutService service.WorkoutService, pages pageParams) *WorkoutHandler {
	return &WorkoutHandler{workoutService: workoutService, pages: pages}
}

// --- Request/Response Structs ---

type WorkoutLogRequest struct {
	WorkoutDate     string   `json:"workoutDate" binding:"required,datetime=2006-01-02"`
	WorkoutName     string   `json:"workoutName" binding:"required,max=100"`
	DurationMinutes int      `json:"durationMinutes" binding:"required,gt=0"`
	CaloriesBurned  *float64 `json:"caloriesBurned" binding:"omitempty,gte=0"`
	Notes           string   `json:"notes" binding:"omitempty,max=1000"`
}

func (r WorkoutLogRequest) toInput() service.WorkoutLogInput {
	date, _ := time.Parse("2006-01-02", r.WorkoutDate)
	return service.WorkoutLogInput{
		WorkoutDate:     date,
		WorkoutName:     r.WorkoutName,
		DurationMinutes: r.DurationMinutes,
		CaloriesBurned:  r.CaloriesBurned,
		Notes:           r.Notes,
	}
}

type WorkoutLogResponse struct {
	ID              string    `json:"id"`
	WorkoutDate     string    `json:"workoutDate"`
	WorkoutName     string    `json:"workoutName"`
	DurationMinutes int       `json:"durationMinutes"`
	CaloriesBurned  *float64  `json:"caloriesBurned,omitempty"`
	Notes           string    `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

type WorkoutStatsResponse struct {
	TotalWorkouts        int64   `json:"totalWorkouts"`
	TotalDurationMinutes int64   `json:"totalDurationMinutes"`
	TotalCalories        float64 `json:"totalCalories"`
	AvgDurationMinutes   float64 `json:"avgDurationMinutes"`
	AvgCalories          float64 `json:"avgCalories"`
}

type WorkoutChartPointResponse struct {
	Period          string  `json:"period"`
	Workouts        int64   `json:"workouts"`
	DurationMinutes int64   `json:"durationMinutes"`
	Calories        float64 `json:"calories"`
}

type WorkoutListResponse struct {
	Logs       []WorkoutLogResponse `json:"logs"`
	Stats      WorkoutStatsResponse `json:"stats"`
	Pagination Pagination           `json:"pagination"`
}

// --- Handler Methods ---

// CreateLog records one free-form workout.
func (h *WorkoutHandler) CreateLog(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req WorkoutLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	log, err := h.workoutService.CreateLog(c.Request.Context(), userID, req.toInput())
	if err != nil {
		h.mapWorkoutError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapWorkoutLogToResponse(log))
}

// ListLogs returns the user's workout logs, paginated with date filters.
// The matching date range's stats ride along with each page.
func (h *WorkoutHandler) ListLogs(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	page, pageSize := h.pages.parse(c)
	filter := repository.DateRangeFilter{Page: page, PageSize: pageSize}
	var ok bool
	if filter.StartDate, ok = parseDateQuery(c, "start_date"); !ok {
		abortWithError(c, http.StatusBadRequest, "Invalid start_date")
		return
	}
	if filter.EndDate, ok = parseDateQuery(c, "end_date"); !ok {
		abortWithError(c, http.StatusBadRequest, "Invalid end_date")
		return
	}

	logs, total, err := h.workoutService.ListLogs(c.Request.Context(), userID, filter)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list workout logs")
		return
	}
	stats, err := h.workoutService.Stats(c.Request.Context(), userID, filter.StartDate, filter.EndDate)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to compute workout stats")
		return
	}

	resp := WorkoutListResponse{
		Logs:       make([]WorkoutLogResponse, len(logs)),
		Stats:      mapWorkoutStats(stats),
		Pagination: newPagination(page, pageSize, total),
	}
	for i := range logs {
		resp.Logs[i] = MapWorkoutLogToResponse(&logs[i])
	}
	c.JSON(http.StatusOK, resp)
}

// Stats returns aggregate workout statistics for an optional date range.
func (h *WorkoutHandler) Stats(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	startDate, ok := parseDateQuery(c, "start_date")
	if !ok {
		abortWithError(c, http.StatusBadRequest, "Invalid start_date")
		return
	}
	endDate, ok := parseDateQuery(c, "end_date")
	if !ok {
		abortWithError(c, http.StatusBadRequest, "Invalid end_date")
		return
	}

	stats, err := h.workoutService.Stats(c.Request.Context(), userID, startDate, endDate)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to compute workout stats")
		return
	}
	c.JSON(http.StatusOK, mapWorkoutStats(stats))
}

// ChartData returns per-week or per-month aggregates for charting.
func (h *WorkoutHandler) ChartData(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	periodType := c.DefaultQuery("period_type", "week")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "12"))

	points, err := h.workoutService.ChartData(c.Request.Context(), userID, periodType, limit)
	if err != nil {
		h.mapWorkoutError(c, err)
		return
	}

	resp := make([]WorkoutChartPointResponse, len(points))
	for i, point := range points {
		resp[i] = WorkoutChartPointResponse{
			Period:          point.Period,
			Workouts:        point.Workouts,
			DurationMinutes: point.DurationMinutes,
			Calories:        point.Calories,
		}
	}
	c.JSON(http.StatusOK, gin.H{"period_type": periodType, "points": resp})
}

// GetLog returns one workout log.
func (h *WorkoutHandler) GetLog(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	logID, ok := parseUUIDParam(c, "logID")
	if !ok {
		return
	}

	log, err := h.workoutService.GetLog(c.Request.Context(), logID, userID)
	if err != nil {
		h.mapWorkoutError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapWorkoutLogToResponse(log))
}

// UpdateLog replaces a workout log's attributes.
func (h *WorkoutHandler) UpdateLog(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	logID, ok := parseUUIDParam(c, "logID")
	if !ok {
		return
	}

	var req WorkoutLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	log, err := h.workoutService.UpdateLog(c.Request.Context(), logID, userID, req.toInput())
	if err != nil {
		h.mapWorkoutError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapWorkoutLogToResponse(log))
}

// DeleteLog removes a workout log.
func (h *WorkoutHandler) DeleteLog(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	logID, ok := parseUUIDParam(c, "logID")
	if !ok {
		return
	}

	if err := h.workoutService.DeleteLog(c.Request.Context(), logID, userID); err != nil {
		h.mapWorkoutError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// mapWorkoutError translates workout service errors into HTTP responses.
func (h *WorkoutHandler) mapWorkoutError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrWorkoutLogNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrValidationFailed):
		abortWithError(c, http.StatusBadRequest, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}

// MapWorkoutLogToResponse converts a domain WorkoutLog to its DTO.
func MapWorkoutLogToResponse(log *domain.WorkoutLog) WorkoutLogResponse {
	return WorkoutLogResponse{
		ID:              log.ID.String(),
		WorkoutDate:     log.WorkoutDate.Format("2006-01-02"),
		WorkoutName:     log.WorkoutName,
		DurationMinutes: log.DurationMinutes,
		CaloriesBurned:  log.CaloriesBurned,
		Notes:           log.Notes,
		CreatedAt:       log.CreatedAt,
	}
}

func mapWorkoutStats(stats repository.WorkoutStats) WorkoutStatsResponse {
	return WorkoutStatsResponse{
		TotalWorkouts:        stats.TotalWorkouts,
		TotalDurationMinutes: stats.TotalDurationMinutes,
		TotalCalories:        stats.TotalCalories,
		AvgDurationMinutes:   stats.AvgDurationMinutes,
		AvgCalories:          stats.AvgCalories,
	}
}
