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

// PlanHandler holds the plan service dependency.
type PlanHandler struct {
	planService service.PlanService
	pages       pageParams
}

// NewPlanHandler creates a new PlanHandler.
func NewPlanHandler(planService service.PlanService, pages pageParams) *PlanHandler {
	return &PlanHandler{planService: planService, pages: pages}
}

// --- Request/Response Structs ---

type ExerciseRequest struct {
	Name            string `json:"name" binding:"required,max=100"`
	DurationMinutes *int   `json:"durationMinutes" binding:"omitempty,gt=0"`
	Repetitions     *int   `json:"repetitions" binding:"omitempty,gt=0"`
	Intensity       string `json:"intensity" binding:"omitempty,oneof=low medium high"`
	OrderIndex      int    `json:"orderIndex" binding:"omitempty,gte=0"`
}

func (r ExerciseRequest) toInput() service.ExerciseInput {
	return service.ExerciseInput{
		Name:            r.Name,
		DurationMinutes: r.DurationMinutes,
		Repetitions:     r.Repetitions,
		Intensity:       domain.ExerciseIntensity(r.Intensity),
		OrderIndex:      r.OrderIndex,
	}
}

type CreatePlanRequest struct {
	Name        string            `json:"name" binding:"required,max=50"`
	Description string            `json:"description" binding:"omitempty,max=1000"`
	Exercises   []ExerciseRequest `json:"exercises" binding:"required,min=1,dive"`
}

type UpdatePlanRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=50"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
	Status      *string `json:"status" binding:"omitempty,oneof=active paused"`
}

type ExerciseResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	DurationMinutes *int   `json:"durationMinutes,omitempty"`
	Repetitions     *int   `json:"repetitions,omitempty"`
	Intensity       string `json:"intensity"`
	OrderIndex      int    `json:"orderIndex"`
}

type ReminderResponse struct {
	ID           string `json:"id"`
	ReminderTime string `json:"reminderTime"`
	Frequency    string `json:"frequency"`
	DaysOfWeek   []int  `json:"daysOfWeek,omitempty"`
	IsEnabled    bool   `json:"isEnabled"`
}

type PlanResponse struct {
	ID          string             `json:"id"`
	OwnerID     string             `json:"ownerId"`
	OwnerName   string             `json:"ownerName,omitempty"`
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	Status      string             `json:"status"`
	Exercises   []ExerciseResponse `json:"exercises"`
	Reminders   []ReminderResponse `json:"reminders,omitempty"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

type PlanListResponse struct {
	Plans      []PlanResponse `json:"plans"`
	Pagination Pagination     `json:"pagination"`
}

// --- Handler Methods ---

// CreatePlan creates a plan with its initial exercises.
func (h *PlanHandler) CreatePlan(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	exercises := make([]service.ExerciseInput, len(req.Exercises))
	for i, ex := range req.Exercises {
		exercises[i] = ex.toInput()
	}

	plan, err := h.planService.CreatePlan(c.Request.Context(), userID, req.Name, req.Description, exercises)
	if err != nil {
		h.mapPlanError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapPlanToResponse(plan))
}

// ListPlans returns the user's accessible plans, paginated.
func (h *PlanHandler) ListPlans(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	page, pageSize := h.pages.parse(c)
	filter := repository.PlanFilter{Page: page, PageSize: pageSize}
	if raw := c.Query("status"); raw != "" {
		if raw != string(domain.PlanStatusActive) && raw != string(domain.PlanStatusPaused) {
			abortWithError(c, http.StatusBadRequest, "Invalid status filter")
			return
		}
		status := domain.PlanStatus(raw)
		filter.Status = &status
	}

	plans, total, err := h.planService.ListPlans(c.Request.Context(), userID, filter)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list plans")
		return
	}

	resp := PlanListResponse{
		Plans:      make([]PlanResponse, len(plans)),
		Pagination: newPagination(page, pageSize, total),
	}
	for i := range plans {
		resp.Plans[i] = MapPlanToResponse(&plans[i])
	}
	c.JSON(http.StatusOK, resp)
}

// GetPlan returns one plan with exercises and reminders.
func (h *PlanHandler) GetPlan(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	planID, ok := parseUUIDParam(c, "planID")
	if !ok {
		return
	}

	plan, err := h.planService.GetPlan(c.Request.Context(), planID, userID)
	if err != nil {
		h.mapPlanError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapPlanToResponse(plan))
}

// UpdatePlan updates name, description or status. Owner only.
func (h *PlanHandler) UpdatePlan(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	planID, ok := parseUUIDParam(c, "planID")
	if !ok {
		return
	}

	var req UpdatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	update := service.PlanUpdate{Name: req.Name, Description: req.Description}
	if req.Status != nil {
		status := domain.PlanStatus(*req.Status)
		update.Status = &status
	}

	plan, err := h.planService.UpdatePlan(c.Request.Context(), planID, userID, update)
	if err != nil {
		h.mapPlanError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapPlanToResponse(plan))
}

// DeletePlan soft-deletes a plan. Owner only.
func (h *PlanHandler) DeletePlan(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	planID, ok := parseUUIDParam(c, "planID")
	if !ok {
		return
	}

	if err := h.planService.DeletePlan(c.Request.Context(), planID, userID); err != nil {
		h.mapPlanError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AddExercise appends an exercise to a plan. Owner only.
func (h *PlanHandler) AddExercise(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	planID, ok := parseUUIDParam(c, "planID")
	if !ok {
		return
	}

	var req ExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	exercise, err := h.planService.AddExercise(c.Request.Context(), planID, userID, req.toInput())
	if err != nil {
		h.mapPlanError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapExerciseToResponse(exercise))
}

// UpdateExercise replaces an exercise's attributes. Owner only.
func (h *PlanHandler) UpdateExercise(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	planID, ok := parseUUIDParam(c, "planID")
	if !ok {
		return
	}
	exerciseID, ok := parseUUIDParam(c, "exerciseID")
	if !ok {
		return
	}

	var req ExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	exercise, err := h.planService.UpdateExercise(c.Request.Context(), planID, exerciseID, userID, req.toInput())
	if err != nil {
		h.mapPlanError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapExerciseToResponse(exercise))
}

// DeleteExercise removes an exercise unless it is the plan's last one.
func (h *PlanHandler) DeleteExercise(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	planID, ok := parseUUIDParam(c, "planID")
	if !ok {
		return
	}
	exerciseID, ok := parseUUIDParam(c, "exerciseID")
	if !ok {
		return
	}

	if err := h.planService.DeleteExercise(c.Request.Context(), planID, exerciseID, userID); err != nil {
		h.mapPlanError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// mapPlanError translates plan service errors into HTTP responses.
func (h *PlanHandler) mapPlanError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPlanNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrExerciseNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrLastExercise):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrValidationFailed):
		abortWithError(c, http.StatusBadRequest, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}

// --- DTO Mapping ---

// MapPlanToResponse converts a domain FitnessPlan to its DTO.
func MapPlanToResponse(plan *domain.FitnessPlan) PlanResponse {
	resp := PlanResponse{
		ID:          plan.ID.String(),
		OwnerID:     plan.UserID.String(),
		Name:        plan.Name,
		Description: plan.Description,
		Status:      string(plan.Status),
		Exercises:   make([]ExerciseResponse, len(plan.Exercises)),
		CreatedAt:   plan.CreatedAt,
		UpdatedAt:   plan.UpdatedAt,
	}
	if plan.Owner != nil {
		resp.OwnerName = plan.Owner.DisplayName()
	}
	for i := range plan.Exercises {
		resp.Exercises[i] = MapExerciseToResponse(&plan.Exercises[i])
	}
	for i := range plan.Reminders {
		resp.Reminders = append(resp.Reminders, MapReminderToResponse(&plan.Reminders[i]))
	}
	return resp
}

// MapExerciseToResponse converts a domain Exercise to its DTO.
func MapExerciseToResponse(exercise *domain.Exercise) ExerciseResponse {
	return ExerciseResponse{
		ID:              exercise.ID.String(),
		Name:            exercise.Name,
		DurationMinutes: exercise.DurationMinutes,
		Repetitions:     exercise.Repetitions,
		Intensity:       string(exercise.Intensity),
		OrderIndex:      exercise.OrderIndex,
	}
}

// MapReminderToResponse converts a domain Reminder to its DTO.
func MapReminderToResponse(reminder *domain.Reminder) ReminderResponse {
	return ReminderResponse{
		ID:           reminder.ID.String(),
		ReminderTime: reminder.ReminderTime,
		Frequency:    string(reminder.Frequency),
		DaysOfWeek:   reminder.DaysOfWeek,
		IsEnabled:    reminder.IsEnabled,
	}
}
