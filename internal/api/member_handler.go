package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Tanya-Zhu/fitness-manager/internal/domain"
	"github.com/Tanya-Zhu/fitness-manager/internal/service"
	"github.com/gin-gonic/gin"
)

// MemberHandler holds the member service dependency.
type MemberHandler struct {
	memberService service.MemberService
}

// NewMemberHandler creates a new MemberHandler.
func NewMemberHandler(memberService service.MemberService) *MemberHandler {
	return &MemberHandler{memberService: memberService}
}

// --- Request/Response Structs ---

type InviteMemberRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type MemberResponse struct {
	UserID      string    `json:"userId"`
	Email       string    `json:"email,omitempty"`
	DisplayName string    `json:"displayName,omitempty"`
	InvitedBy   *string   `json:"invitedBy,omitempty"`
	JoinedAt    time.Time `json:"joinedAt"`
}

type LeaderboardEntryResponse struct {
	UserID                string     `json:"userId"`
	DisplayName           string     `json:"displayName"`
	IsOwner               bool       `json:"isOwner"`
	TotalExecutions       int        `json:"totalExecutions"`
	AverageCompletionRate float64    `json:"averageCompletionRate"`
	LastExecutionDate     *time.Time `json:"lastExecutionDate,omitempty"`
	RankByRate            int        `json:"rankByRate"`
	RankByCount           int        `json:"rankByCount"`
}

// --- Handler Methods ---

// InviteMember adds a registered user to the plan by email.
func (h *MemberHandler) InviteMember(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	planID, ok := parseUUIDParam(c, "planID")
	if !ok {
		return
	}

	var req InviteMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	member, err := h.memberService.InviteMember(c.Request.Context(), planID, userID, req.Email)
	if err != nil {
		h.mapMemberError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapMemberToResponse(member))
}

// ListMembers returns the plan's members.
func (h *MemberHandler) ListMembers(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	planID, ok := parseUUIDParam(c, "planID")
	if !ok {
		return
	}

	members, err := h.memberService.ListMembers(c.Request.Context(), planID, userID)
	if err != nil {
		h.mapMemberError(c, err)
		return
	}

	resp := make([]MemberResponse, len(members))
	for i := range members {
		resp[i] = MapMemberToResponse(&members[i])
	}
	c.JSON(http.StatusOK, gin.H{"members": resp})
}

// RemoveMember removes a member from the plan. The owner may remove anyone;
// members may only remove themselves.
func (h *MemberHandler) RemoveMember(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	planID, ok := parseUUIDParam(c, "planID")
	if !ok {
		return
	}
	memberUserID, ok := parseUUIDParam(c, "userID")
	if !ok {
		return
	}

	if err := h.memberService.RemoveMember(c.Request.Context(), planID, userID, memberUserID); err != nil {
		h.mapMemberError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Leaderboard returns the per-participant standings for a plan.
func (h *MemberHandler) Leaderboard(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	planID, ok := parseUUIDParam(c, "planID")
	if !ok {
		return
	}

	entries, err := h.memberService.Leaderboard(c.Request.Context(), planID, userID)
	if err != nil {
		h.mapMemberError(c, err)
		return
	}

	resp := make([]LeaderboardEntryResponse, len(entries))
	for i, entry := range entries {
		resp[i] = LeaderboardEntryResponse{
			UserID:                entry.UserID.String(),
			DisplayName:           entry.DisplayName,
			IsOwner:               entry.IsOwner,
			TotalExecutions:       entry.TotalExecutions,
			AverageCompletionRate: entry.AverageCompletionRate,
			LastExecutionDate:     entry.LastExecutionDate,
			RankByRate:            entry.RankByRate,
			RankByCount:           entry.RankByCount,
		}
	}
	c.JSON(http.StatusOK, gin.H{"leaderboard": resp})
}

// mapMemberError translates member service errors into HTTP responses.
func (h *MemberHandler) mapMemberError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPlanNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrMemberNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrUserNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrAlreadyMember):
		abortWithError(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrRemovalDenied):
		abortWithError(c, http.StatusForbidden, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}

// MapMemberToResponse converts a domain PlanMember to its DTO.
func MapMemberToResponse(member *domain.PlanMember) MemberResponse {
	resp := MemberResponse{
		UserID:   member.UserID.String(),
		JoinedAt: member.JoinedAt,
	}
	if member.User != nil {
		resp.Email = member.User.Email
		resp.DisplayName = member.User.DisplayName()
	}
	if member.InvitedBy != nil {
		invitedBy := member.InvitedBy.String()
		resp.InvitedBy = &invitedBy
	}
	return resp
}
