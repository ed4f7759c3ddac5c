package service

import (
	"context"
	"errors"

	"github.com/Tanya-Zhu/fitness-manager/internal/domain"
	"github.com/Tanya-Zhu/fitness-manager/internal/repository"
	"github.com/google/uuid"
)

// --- Error Definitions ---
var (
	ErrAlreadyMember  = errors.New("user already participates in this plan")
	ErrMemberNotFound = errors.New("plan member not found")
	ErrRemovalDenied  = errors.New("only the plan owner may remove other members")
)

// MemberService manages plan membership and the leaderboard. Any participant
// (owner or member) may invite others and read the member list; removal is
// owner-only except that members may leave on their own.
type MemberService interface {
	InviteMember(ctx context.Context, planID, inviterID uuid.UUID, email string) (*domain.PlanMember, error)
	ListMembers(ctx context.Context, planID, userID uuid.UUID) ([]domain.PlanMember, error)
	RemoveMember(ctx context.Context, planID, requesterID, memberUserID uuid.UUID) error
	Leaderboard(ctx context.Context, planID, userID uuid.UUID) ([]LeaderboardEntry, error)
}

type memberService struct {
	planRepo      repository.PlanRepository
	memberRepo    repository.MemberRepository
	userRepo      repository.UserRepository
	executionRepo repository.ExecutionRepository
	notifier      NotificationService
}

// NewMemberService creates a new instance of memberService.
func NewMemberService(
	planRepo repository.PlanRepository,
	memberRepo repository.MemberRepository,
	userRepo repository.UserRepository,
	executionRepo repository.ExecutionRepository,
	notifier NotificationService,
) MemberService {
	return &memberService{
		planRepo:      planRepo,
		memberRepo:    memberRepo,
		userRepo:      userRepo,
		executionRepo: executionRepo,
		notifier:      notifier,
	}
}

// InviteMember adds the user registered under email to the plan.
func (s *memberService) InviteMember(ctx context.Context, planID, inviterID uuid.UUID, email string) (*domain.PlanMember, error) {
	plan, err := s.planRepo.GetAccessible(ctx, planID, inviterID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}

	invitee, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	// The owner participates implicitly and cannot be invited again.
	if invitee.ID == plan.UserID {
		return nil, ErrAlreadyMember
	}
	isMember, err := s.memberRepo.IsMember(ctx, plan.ID, invitee.ID)
	if err != nil {
		return nil, err
	}
	if isMember {
		return nil, ErrAlreadyMember
	}

	member := &domain.PlanMember{
		PlanID:    plan.ID,
		UserID:    invitee.ID,
		InvitedBy: &inviterID,
	}
	if err := s.memberRepo.Create(ctx, member); err != nil {
		return nil, err
	}
	member.User = invitee

	s.notifier.SendInvitation(ctx, invitee, plan)
	return member, nil
}

func (s *memberService) ListMembers(ctx context.Context, planID, userID uuid.UUID) ([]domain.PlanMember, error) {
	plan, err := s.planRepo.GetAccessible(ctx, planID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return s.memberRepo.ListByPlan(ctx, plan.ID)
}

func (s *memberService) RemoveMember(ctx context.Context, planID, requesterID, memberUserID uuid.UUID) error {
	plan, err := s.planRepo.GetAccessible(ctx, planID, requesterID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPlanNotFound
		}
		return err
	}

	if requesterID != plan.UserID && requesterID != memberUserID {
		return ErrRemovalDenied
	}

	err = s.memberRepo.Delete(ctx, plan.ID, memberUserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrMemberNotFound
		}
		return err
	}
	return nil
}

// Leaderboard builds the per-participant standings: execution count, average
// completion rate across executions, last execution date, and the two
// independent rankings.
func (s *memberService) Leaderboard(ctx context.Context, planID, userID uuid.UUID) ([]LeaderboardEntry, error) {
	plan, err := s.planRepo.GetAccessible(ctx, planID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}

	members, err := s.memberRepo.ListByPlan(ctx, plan.ID)
	if err != nil {
		return nil, err
	}

	type participant struct {
		user    *domain.User
		isOwner bool
	}
	participants := make([]participant, 0, len(members)+1)

	owner := plan.Owner
	if owner == nil {
		owner, err = s.userRepo.GetByID(ctx, plan.UserID)
		if err != nil {
			return nil, err
		}
	}
	participants = append(participants, participant{user: owner, isOwner: true})
	for i := range members {
		user := members[i].User
		if user == nil {
			user, err = s.userRepo.GetByID(ctx, members[i].UserID)
			if err != nil {
				return nil, err
			}
		}
		participants = append(participants, participant{user: user})
	}

	entries := make([]LeaderboardEntry, 0, len(participants))
	for _, p := range participants {
		executions, err := s.executionRepo.ListByPlanAndUser(ctx, plan.ID, p.user.ID)
		if err != nil {
			return nil, err
		}

		entry := LeaderboardEntry{
			UserID:          p.user.ID,
			DisplayName:     p.user.DisplayName(),
			IsOwner:         p.isOwner,
			TotalExecutions: len(executions),
		}
		var sum float64
		for i := range executions {
			summary := SummarizeExecution(plan.Exercises, executions[i].ExerciseExecutions)
			sum += summary.CompletionRate
			date := executions[i].ExecutionDate
			if entry.LastExecutionDate == nil || date.After(*entry.LastExecutionDate) {
				last := date
				entry.LastExecutionDate = &last
			}
		}
		if len(executions) > 0 {
			entry.AverageCompletionRate = sum / float64(len(executions))
		}
		entries = append(entries, entry)
	}

	return rankLeaderboard(entries), nil
}
