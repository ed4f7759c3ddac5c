package service

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/Tanya-Zhu/fitness-manager/internal/domain"
	"github.com/Tanya-Zhu/fitness-manager/internal/repository"
	"github.com/Tanya-Zhu/fitness-manager/internal/repository/postgres"
	"github.com/Tanya-Zhu/fitness-manager/internal/testutil"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeScheduler records job registrations in memory.
type fakeScheduler struct {
	mu         sync.Mutex
	registered map[string]string // job id -> cron spec
	removed    []string
}

func newFakeScheduler() *fakeScheduler {
	return &fakeScheduler{registered: make(map[string]string)}
}

func (f *fakeScheduler) Register(jobID, cronSpec string, planID, reminderID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.registered[jobID] = cronSpec
	return nil
}

func (f *fakeScheduler) Remove(jobID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.registered, jobID)
	f.removed = append(f.removed, jobID)
	return nil
}

func (f *fakeScheduler) has(jobID string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.registered[jobID]
	return ok
}

// testEnv wires every service against one in-memory database.
type testEnv struct {
	db    *gorm.DB
	sched *fakeScheduler

	userRepo      repository.UserRepository
	planRepo      repository.PlanRepository
	exerciseRepo  repository.ExerciseRepository
	reminderRepo  repository.ReminderRepository
	memberRepo    repository.MemberRepository
	executionRepo repository.ExecutionRepository

	auth       AuthService
	plans      PlanService
	reminders  ReminderService
	members    MemberService
	executions ExecutionService
	workouts   WorkoutService
	gym        GymService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.SetupTestDB(t)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	env := &testEnv{
		db:            db,
		sched:         newFakeScheduler(),
		userRepo:      postgres.NewUserRepository(db),
		planRepo:      postgres.NewPlanRepository(db),
		exerciseRepo:  postgres.NewExerciseRepository(db),
		reminderRepo:  postgres.NewReminderRepository(db),
		memberRepo:    postgres.NewMemberRepository(db),
		executionRepo: postgres.NewExecutionRepository(db),
	}
	notifier := NewLogNotificationService(logger)

	env.auth = NewAuthService(env.userRepo, "test-secret", 0)
	env.plans = NewPlanService(env.planRepo, env.exerciseRepo, env.reminderRepo, env.sched, logger)
	env.reminders = NewReminderService(env.planRepo, env.reminderRepo, env.sched, logger)
	env.members = NewMemberService(env.planRepo, env.memberRepo, env.userRepo, env.executionRepo, notifier)
	env.executions = NewExecutionService(env.planRepo, env.executionRepo)
	env.workouts = NewWorkoutService(postgres.NewWorkoutLogRepository(db))
	env.gym = NewGymService(postgres.NewGymExerciseRepository(db))
	return env
}

func testDate(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

func (e *testEnv) createUser(t *testing.T, email string) *domain.User {
	t.Helper()
	user, err := e.auth.Register(context.Background(), email, "password123", "")
	require.NoError(t, err)
	return user
}

// createPlan makes a plan with one duration and one repetition exercise.
func (e *testEnv) createPlan(t *testing.T, ownerID uuid.UUID, name string) *domain.FitnessPlan {
	t.Helper()
	plan, err := e.plans.CreatePlan(context.Background(), ownerID, name, "", []ExerciseInput{
		{Name: "run", DurationMinutes: intPtr(30)},
		{Name: "pushups", Repetitions: intPtr(20)},
	})
	require.NoError(t, err)
	return plan
}
