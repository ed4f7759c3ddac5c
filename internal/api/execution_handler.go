package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Tanya-Zhu/fitness-manager/internal/repository"
	"github.com/Tanya-Zhu/fitness-manager/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ExecutionHandler holds the execution service dependency.
type ExecutionHandler struct {
	executionService service.ExecutionService
	pages            pageParams
}

// NewExecutionHandler creates a new ExecutionHandler.
func NewExecutionHandler(executionService service.ExecutionService, pages pageParams) *ExecutionHandler {
	return &ExecutionHandler{executionService: executionService, pages: pages}
}

// --- Request/Response Structs ---

type ExerciseExecutionRequest struct {
	ExerciseID            string `json:"exerciseId" binding:"required,uuid"`
	Completed             *bool  `json:"completed" binding:"omitempty"`
	ActualDurationMinutes *int   `json:"actualDurationMinutes" binding:"omitempty,gte=0"`
	ActualRepetitions     *int   `json:"actualRepetitions" binding:"omitempty,gte=0"`
	Notes                 string `json:"notes" binding:"omitempty,max=1000"`
}

type CreateExecutionRequest struct {
	PlanID             string                     `json:"planId" binding:"required,uuid"`
	ExecutionDate      string                     `json:"executionDate" binding:"required,datetime=2006-01-02"`
	Notes              string                     `json:"notes" binding:"omitempty,max=1000"`
	ExerciseExecutions []ExerciseExecutionRequest `json:"exerciseExecutions" binding:"omitempty,dive"`
}

type UpdateExecutionRequest struct {
	ExecutionDate      string                     `json:"executionDate" binding:"required,datetime=2006-01-02"`
	Notes              string                     `json:"notes" binding:"omitempty,max=1000"`
	ExerciseExecutions []ExerciseExecutionRequest `json:"exerciseExecutions" binding:"omitempty,dive"`
}

type ExerciseExecutionResponse struct {
	ExerciseID            string `json:"exerciseId"`
	Completed             bool   `json:"completed"`
	ActualDurationMinutes *int   `json:"actualDurationMinutes,omitempty"`
	ActualRepetitions     *int   `json:"actualRepetitions,omitempty"`
	Notes                 string `json:"notes,omitempty"`
}

type ExecutionResponse struct {
	ID                 string                      `json:"id"`
	PlanID             string                      `json:"planId"`
	UserID             string                      `json:"userId"`
	ExecutionDate      string                      `json:"executionDate"`
	Notes              string                      `json:"notes,omitempty"`
	TotalExercises     int                         `json:"totalExercises"`
	CompletedExercises int                         `json:"completedExercises"`
	CompletionRate     float64                     `json:"completionRate"`
	ExerciseExecutions []ExerciseExecutionResponse `json:"exerciseExecutions"`
	CreatedAt          time.Time                   `json:"createdAt"`
}

type ExecutionListResponse struct {
	Executions []ExecutionResponse `json:"executions"`
	Pagination Pagination          `json:"pagination"`
}

func parseExerciseExecutions(items []ExerciseExecutionRequest) ([]service.ExerciseExecutionInput, error) {
	results := make([]service.ExerciseExecutionInput, len(items))
	for i, item := range items {
		exerciseID, err := uuid.Parse(item.ExerciseID)
		if err != nil {
			return nil, fmt.Errorf("invalid exercise id %q", item.ExerciseID)
		}
		completed := true
		if item.Completed != nil {
			completed = *item.Completed
		}
		results[i] = service.ExerciseExecutionInput{
			ExerciseID:            exerciseID,
			Completed:             completed,
			ActualDurationMinutes: item.ActualDurationMinutes,
			ActualRepetitions:     item.ActualRepetitions,
			Notes:                 item.Notes,
		}
	}
	return results, nil
}

// --- Handler Methods ---

// CreateExecution records one performed plan session.
func (h *ExecutionHandler) CreateExecution(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req CreateExecutionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	planID, err := uuid.Parse(req.PlanID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid plan id")
		return
	}
	date, _ := time.Parse("2006-01-02", req.ExecutionDate)
	results, err := parseExerciseExecutions(req.ExerciseExecutions)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	item, err := h.executionService.CreateExecution(c.Request.Context(), userID, planID, date, req.Notes, results)
	if err != nil {
		h.mapExecutionError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapExecutionToResponse(item))
}

// ListExecutions returns the user's executions, paginated and filterable by
// plan and date range.
func (h *ExecutionHandler) ListExecutions(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	page, pageSize := h.pages.parse(c)
	filter := repository.ExecutionFilter{Page: page, PageSize: pageSize}
	if raw := c.Query("plan_id"); raw != "" {
		planID, err := uuid.Parse(raw)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid plan_id filter")
			return
		}
		filter.PlanID = &planID
	}
	var ok bool
	if filter.StartDate, ok = parseDateQuery(c, "start_date"); !ok {
		abortWithError(c, http.StatusBadRequest, "Invalid start_date")
		return
	}
	if filter.EndDate, ok = parseDateQuery(c, "end_date"); !ok {
		abortWithError(c, http.StatusBadRequest, "Invalid end_date")
		return
	}

	items, total, err := h.executionService.ListExecutions(c.Request.Context(), userID, filter)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list executions")
		return
	}

	resp := ExecutionListResponse{
		Executions: make([]ExecutionResponse, len(items)),
		Pagination: newPagination(page, pageSize, total),
	}
	for i := range items {
		resp.Executions[i] = MapExecutionToResponse(&items[i])
	}
	c.JSON(http.StatusOK, resp)
}

// GetExecution returns one execution with its completion summary.
func (h *ExecutionHandler) GetExecution(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	executionID, ok := parseUUIDParam(c, "executionID")
	if !ok {
		return
	}

	item, err := h.executionService.GetExecution(c.Request.Context(), executionID, userID)
	if err != nil {
		h.mapExecutionError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapExecutionToResponse(item))
}

// UpdateExecution replaces an execution's date, notes and results.
func (h *ExecutionHandler) UpdateExecution(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	executionID, ok := parseUUIDParam(c, "executionID")
	if !ok {
		return
	}

	var req UpdateExecutionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	date, _ := time.Parse("2006-01-02", req.ExecutionDate)
	results, err := parseExerciseExecutions(req.ExerciseExecutions)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	item, err := h.executionService.UpdateExecution(c.Request.Context(), executionID, userID, date, req.Notes, results)
	if err != nil {
		h.mapExecutionError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapExecutionToResponse(item))
}

// DeleteExecution removes an execution and its exercise results.
func (h *ExecutionHandler) DeleteExecution(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	executionID, ok := parseUUIDParam(c, "executionID")
	if !ok {
		return
	}

	if err := h.executionService.DeleteExecution(c.Request.Context(), executionID, userID); err != nil {
		h.mapExecutionError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// mapExecutionError translates execution service errors into HTTP responses.
func (h *ExecutionHandler) mapExecutionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPlanNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrExecutionNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrExerciseNotFound):
		abortWithError(c, http.StatusBadRequest, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}

// MapExecutionToResponse converts an execution plus summary to its DTO.
func MapExecutionToResponse(item *service.ExecutionWithSummary) ExecutionResponse {
	execution := item.Execution
	resp := ExecutionResponse{
		ID:                 execution.ID.String(),
		PlanID:             execution.PlanID.String(),
		UserID:             execution.UserID.String(),
		ExecutionDate:      execution.ExecutionDate.Format("2006-01-02"),
		Notes:              execution.Notes,
		TotalExercises:     item.Summary.TotalExercises,
		CompletedExercises: item.Summary.CompletedExercises,
		CompletionRate:     item.Summary.CompletionRate,
		ExerciseExecutions: make([]ExerciseExecutionResponse, len(execution.ExerciseExecutions)),
		CreatedAt:          execution.CreatedAt,
	}
	for i, result := range execution.ExerciseExecutions {
		resp.ExerciseExecutions[i] = ExerciseExecutionResponse{
			ExerciseID:            result.ExerciseID.String(),
			Completed:             result.Completed,
			ActualDurationMinutes: result.ActualDurationMinutes,
			ActualRepetitions:     result.ActualRepetitions,
			Notes:                 result.Notes,
		}
	}
	return resp
}
