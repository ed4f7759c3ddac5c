package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Tanya-Zhu/fitness-manager/internal/domain"
	"github.com/Tanya-Zhu/fitness-manager/internal/repository"
	"github.com/Tanya-Zhu/fitness-manager/internal/service"
	"github.com/gin-gonic/gin"
)

// GymHandler holds the gym service dependency.
type GymHandler struct {
	gymService service.GymService
	pages      pageParams
}

// NewGymHandler creates a new GymHandler.
func NewGymHandler(gymService service.GymService, pages pageParams) *GymHandler {
	return &GymHandler{gymService: gymService, pages: pages}
}

// --- Request/Response Structs ---

type GymSetRequest struct {
	SetNumber int      `json:"setNumber" binding:"omitempty,gt=0"`
	Reps      int      `json:"reps" binding:"required,gt=0"`
	Weight    *float64 `json:"weight" binding:"omitempty,gte=0"`
	Notes     string   `json:"notes" binding:"omitempty,max=500"`
}

type GymLogRequest struct {
	WorkoutDate  string          `json:"workoutDate" binding:"required,datetime=2006-01-02"`
	ExerciseName string          `json:"exerciseName" binding:"required,max=100"`
	Notes        string          `json:"notes" binding:"omitempty,max=1000"`
	Sets         []GymSetRequest `json:"sets" binding:"required,min=1,dive"`
}

func (r GymLogRequest) toInput() service.GymLogInput {
	date, _ := time.Parse("2006-01-02", r.WorkoutDate)
	input := service.GymLogInput{
		WorkoutDate:  date,
		ExerciseName: r.ExerciseName,
		Notes:        r.Notes,
	}
	for _, set := range r.Sets {
		input.Sets = append(input.Sets, service.GymSetInput{
			SetNumber: set.SetNumber,
			Reps:      set.Reps,
			Weight:    set.Weight,
			Notes:     set.Notes,
		})
	}
	return input
}

type GymSetResponse struct {
	SetNumber int      `json:"setNumber"`
	Reps      int      `json:"reps"`
	Weight    *float64 `json:"weight,omitempty"`
	Notes     string   `json:"notes,omitempty"`
}

type GymLogResponse struct {
	ID           string           `json:"id"`
	WorkoutDate  string           `json:"workoutDate"`
	ExerciseName string           `json:"exerciseName"`
	Notes        string           `json:"notes,omitempty"`
	Sets         []GymSetResponse `json:"sets"`
	TotalSets    int              `json:"totalSets"`
	TotalReps    int              `json:"totalReps"`
	TotalVolume  float64          `json:"totalVolume"`
	CreatedAt    time.Time        `json:"createdAt"`
}

type GymListResponse struct {
	Logs       []GymLogResponse `json:"logs"`
	Pagination Pagination       `json:"pagination"`
}

type GymTrendPointResponse struct {
	WorkoutDate string  `json:"workoutDate"`
	MaxWeight   float64 `json:"maxWeight"`
	AvgWeight   float64 `json:"avgWeight"`
	TotalReps   int     `json:"totalReps"`
	TotalSets   int     `json:"totalSets"`
}

// --- Handler Methods ---

// CreateLog records one gym exercise session with its sets.
func (h *GymHandler) CreateLog(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req GymLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	log, err := h.gymService.CreateLog(c.Request.Context(), userID, req.toInput())
	if err != nil {
		h.mapGymError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapGymLogToResponse(log))
}

// ListLogs returns the user's gym logs with per-log set totals.
func (h *GymHandler) ListLogs(c *gin.Context) {
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

	items, total, err := h.gymService.ListLogs(c.Request.Context(), userID, filter)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list gym logs")
		return
	}

	resp := GymListResponse{
		Logs:       make([]GymLogResponse, len(items)),
		Pagination: newPagination(page, pageSize, total),
	}
	for i := range items {
		resp.Logs[i] = MapGymLogToResponse(&items[i].Log)
	}
	c.JSON(http.StatusOK, resp)
}

// ExerciseNames returns the distinct exercise names the user has logged.
func (h *GymHandler) ExerciseNames(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	names, err := h.gymService.ExerciseNames(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list exercise names")
		return
	}
	c.JSON(http.StatusOK, gin.H{"exercise_names": names})
}

// Trends returns the per-session progress series for one exercise.
func (h *GymHandler) Trends(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	exerciseName := c.Param("exerciseName")

	points, err := h.gymService.Trends(c.Request.Context(), userID, exerciseName)
	if err != nil {
		h.mapGymError(c, err)
		return
	}

	resp := make([]GymTrendPointResponse, len(points))
	for i, point := range points {
		resp[i] = GymTrendPointResponse{
			WorkoutDate: point.WorkoutDate.Format("2006-01-02"),
			MaxWeight:   point.MaxWeight,
			AvgWeight:   point.AvgWeight,
			TotalReps:   point.TotalReps,
			TotalSets:   point.TotalSets,
		}
	}
	c.JSON(http.StatusOK, gin.H{"exercise_name": exerciseName, "trends": resp})
}

// GetLog returns one gym log with its sets.
func (h *GymHandler) GetLog(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	logID, ok := parseUUIDParam(c, "logID")
	if !ok {
		return
	}

	log, err := h.gymService.GetLog(c.Request.Context(), logID, userID)
	if err != nil {
		h.mapGymError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapGymLogToResponse(log))
}

// UpdateLog replaces a gym log and its full set list.
func (h *GymHandler) UpdateLog(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	logID, ok := parseUUIDParam(c, "logID")
	if !ok {
		return
	}

	var req GymLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	log, err := h.gymService.UpdateLog(c.Request.Context(), logID, userID, req.toInput())
	if err != nil {
		h.mapGymError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapGymLogToResponse(log))
}

// DeleteLog removes a gym log and its sets.
func (h *GymHandler) DeleteLog(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	logID, ok := parseUUIDParam(c, "logID")
	if !ok {
		return
	}

	if err := h.gymService.DeleteLog(c.Request.Context(), logID, userID); err != nil {
		h.mapGymError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// mapGymError translates gym service errors into HTTP responses.
func (h *GymHandler) mapGymError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrGymLogNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrValidationFailed):
		abortWithError(c, http.StatusBadRequest, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}

// MapGymLogToResponse converts a domain GymExerciseLog to its DTO.
func MapGymLogToResponse(log *domain.GymExerciseLog) GymLogResponse {
	summary := service.SummarizeGymLog(log)
	resp := GymLogResponse{
		ID:           log.ID.String(),
		WorkoutDate:  log.WorkoutDate.Format("2006-01-02"),
		ExerciseName: log.ExerciseName,
		Notes:        log.Notes,
		Sets:         make([]GymSetResponse, len(log.Sets)),
		TotalSets:    summary.TotalSets,
		TotalReps:    summary.TotalReps,
		TotalVolume:  summary.TotalVolume,
		CreatedAt:    log.CreatedAt,
	}
	for i, set := range log.Sets {
		resp.Sets[i] = GymSetResponse{
			SetNumber: set.SetNumber,
			Reps:      set.Reps,
			Weight:    set.Weight,
			Notes:     set.Notes,
		}
	}
	return resp
}
