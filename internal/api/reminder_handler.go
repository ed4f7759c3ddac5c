package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Tanya-Zhu/fitness-manager/internal/domain"
	"github.com/Tanya-Zhu/fitness-manager/internal/service"
	"github.com/gin-gonic/gin"
)

// ReminderHandler holds the reminder service dependency.
type ReminderHandler struct {
	reminderService service.ReminderService
}

// NewReminderHandler creates a new ReminderHandler.
func NewReminderHandler(reminderService service.ReminderService) *ReminderHandler {
	return &ReminderHandler{reminderService: reminderService}
}

// --- Request Structs ---

type ReminderRequest struct {
	ReminderTime string `json:"reminderTime" binding:"required,len=5"`
	Frequency    string `json:"frequency" binding:"required,oneof=daily weekly custom"`
	DaysOfWeek   []int  `json:"daysOfWeek" binding:"omitempty,dive,min=1,max=7"`
	IsEnabled    *bool  `json:"isEnabled" binding:"omitempty"`
}

func (r ReminderRequest) toInput() service.ReminderInput {
	enabled := true
	if r.IsEnabled != nil {
		enabled = *r.IsEnabled
	}
	return service.ReminderInput{
		ReminderTime: r.ReminderTime,
		Frequency:    domain.ReminderFrequency(r.Frequency),
		DaysOfWeek:   r.DaysOfWeek,
		IsEnabled:    enabled,
	}
}

// --- Handler Methods ---

// CreateReminder attaches a reminder to a plan. Owner only.
func (h *ReminderHandler) CreateReminder(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	planID, ok := parseUUIDParam(c, "planID")
	if !ok {
		return
	}

	var req ReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	reminder, err := h.reminderService.CreateReminder(c.Request.Context(), planID, userID, req.toInput())
	if err != nil {
		h.mapReminderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapReminderToResponse(reminder))
}

// UpdateReminder replaces a reminder's schedule. Owner only.
func (h *ReminderHandler) UpdateReminder(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	planID, ok := parseUUIDParam(c, "planID")
	if !ok {
		return
	}
	reminderID, ok := parseUUIDParam(c, "reminderID")
	if !ok {
		return
	}

	var req ReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	reminder, err := h.reminderService.UpdateReminder(c.Request.Context(), planID, reminderID, userID, req.toInput())
	if err != nil {
		h.mapReminderError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapReminderToResponse(reminder))
}

// DeleteReminder removes a reminder and its scheduler job. Owner only.
func (h *ReminderHandler) DeleteReminder(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	planID, ok := parseUUIDParam(c, "planID")
	if !ok {
		return
	}
	reminderID, ok := parseUUIDParam(c, "reminderID")
	if !ok {
		return
	}

	if err := h.reminderService.DeleteReminder(c.Request.Context(), planID, reminderID, userID); err != nil {
		h.mapReminderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// mapReminderError translates reminder service errors into HTTP responses.
func (h *ReminderHandler) mapReminderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPlanNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrReminderNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidSchedule):
		abortWithError(c, http.StatusBadRequest, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}
