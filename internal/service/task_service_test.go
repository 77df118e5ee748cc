package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"vitacoin.app/rewardsplatform/internal/model"
)

type taskFixture struct {
	users  *stubUserRepo
	tasks  *stubTaskRepo
	ledger *memoryLedger
	hub    *stubHub
	svc    TaskService
}

func newTaskFixture(user *model.User, tasks ...*model.Task) *taskFixture {
	f := &taskFixture{
		users:  &stubUserRepo{user: user, completed: make(map[uuid.UUID]bool)},
		tasks:  &stubTaskRepo{tasks: make(map[uuid.UUID]*model.Task)},
		ledger: &memoryLedger{balance: user.Coins},
		hub:    newStubHub(),
	}
	for _, task := range tasks {
		f.tasks.tasks[task.ID] = task
	}
	f.svc = NewTaskService(f.tasks, f.users, &stubActivityRepo{}, f.ledger, &stubLeaderboard{}, f.hub, nil, 20, 10)
	return f
}

func TestClaimTask_Success(t *testing.T) {
	user := &model.User{ID: uuid.New(), Coins: 10}
	task := &model.Task{ID: uuid.New(), Title: "Community Member", Category: model.TaskCategorySpecial, CoinsReward: 20, Active: true}
	f := newTaskFixture(user, task)

	res, err := f.svc.ClaimTask(context.Background(), user.ID, task.ID)
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Equal(t, 20, res.CoinsEarned)
	assert.Equal(t, 30, res.NewBalance)

	events := f.hub.sentTo(user.ID.String())
	require.Len(t, events, 2)
	assert.Equal(t, "balance_update", events[0].Type)
	assert.Equal(t, "task_completed", events[1].Type)
	require.Len(t, f.hub.broadcast, 1)
	assert.Equal(t, "leaderboard_update", f.hub.broadcast[0].Type)
}

func TestClaimTask_NotFound(t *testing.T) {
	user := &model.User{ID: uuid.New()}
	f := newTaskFixture(user)

	_, err := f.svc.ClaimTask(context.Background(), user.ID, uuid.New())
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestClaimTask_InactiveIsNotFound(t *testing.T) {
	user := &model.User{ID: uuid.New()}
	task := &model.Task{ID: uuid.New(), Title: "old", CoinsReward: 5, Active: false}
	f := newTaskFixture(user, task)

	_, err := f.svc.ClaimTask(context.Background(), user.ID, task.ID)
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

// The expired check must win over already-completed for a task that is both.
func TestClaimTask_ExpiredBeforeAlreadyCompleted(t *testing.T) {
	user := &model.User{ID: uuid.New()}
	expired := time.Now().UTC().Add(-time.Hour)
	task := &model.Task{ID: uuid.New(), Title: "gone", CoinsReward: 5, Active: true, ExpiresAt: &expired}
	f := newTaskFixture(user, task)
	f.users.completed[task.ID] = true

	_, err := f.svc.ClaimTask(context.Background(), user.ID, task.ID)
	assert.ErrorIs(t, err, ErrTaskExpired)
}

func TestClaimTask_AlreadyCompleted(t *testing.T) {
	user := &model.User{ID: uuid.New()}
	task := &model.Task{ID: uuid.New(), Title: "done", CoinsReward: 5, Active: true}
	f := newTaskFixture(user, task)
	f.users.completed[task.ID] = true

	_, err := f.svc.ClaimTask(context.Background(), user.ID, task.ID)
	assert.ErrorIs(t, err, ErrAlreadyCompleted)
}

func TestClaimTask_RequirementsNotMet(t *testing.T) {
	user := &model.User{ID: uuid.New(), Coins: 40}
	task := &model.Task{
		ID:          uuid.New(),
		Title:       "Coin Collector",
		CoinsReward: 25,
		Active:      true,
		Kind:        model.TaskKindThreshold,
		TargetValue: 100,
	}
	f := newTaskFixture(user, task)

	_, err := f.svc.ClaimTask(context.Background(), user.ID, task.ID)

	var notMet *RequirementsNotMetError
	require.ErrorAs(t, err, &notMet)
	require.NotNil(t, notMet.Progress.Remaining)
	assert.Equal(t, 60, *notMet.Progress.Remaining)
	assert.Empty(t, f.hub.sentTo(user.ID.String()))
}

func TestClaimTask_CompletionLimitReached(t *testing.T) {
	user := &model.User{ID: uuid.New()}
	limit := 2
	task := &model.Task{
		ID:              uuid.New(),
		Title:           "limited",
		CoinsReward:     5,
		Active:          true,
		MaxCompletions:  &limit,
		CompletionCount: 2,
	}
	f := newTaskFixture(user, task)

	_, err := f.svc.ClaimTask(context.Background(), user.ID, task.ID)
	assert.ErrorIs(t, err, ErrCompletionLimitReached)
}

// Concurrent claims of the same task by the same user settle exactly once.
func TestClaimTask_ConcurrentClaimsSettleOnce(t *testing.T) {
	user := &model.User{ID: uuid.New(), Coins: 0}
	task := &model.Task{ID: uuid.New(), Title: "bonus", CoinsReward: 20, Active: true}
	f := newTaskFixture(user, task)

	const n = 16
	var wg sync.WaitGroup
	errs := make([]error, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.svc.ClaimTask(context.Background(), user.ID, task.ID)
		}(i)
	}
	wg.Wait()

	var successes, duplicates int
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		case assert.ErrorIs(t, err, ErrAlreadyCompleted):
			duplicates++
		}
	}

	assert.Equal(t, 1, successes)
	assert.Equal(t, n-1, duplicates)
	assert.Equal(t, 20, f.ledger.balance)
}

func TestListTasks_MarksCompletedAndEvaluatesProgress(t *testing.T) {
	user := &model.User{ID: uuid.New(), Coins: 150}
	done := &model.Task{ID: uuid.New(), Title: "done", Category: model.TaskCategoryDaily, CoinsReward: 5, Active: true, CreatedAt: time.Now().Add(-2 * time.Hour)}
	open := &model.Task{
		ID:          uuid.New(),
		Title:       "Coin Collector",
		Category:    model.TaskCategoryAchievement,
		CoinsReward: 25,
		Active:      true,
		Kind:        model.TaskKindThreshold,
		TargetValue: 100,
		CreatedAt:   time.Now().Add(-time.Hour),
	}
	f := newTaskFixture(user, done, open)
	f.users.completed[done.ID] = true
	f.users.completedIDs = []uuid.UUID{done.ID}

	list, err := f.svc.ListTasks(context.Background(), user.ID, "", "")
	require.NoError(t, err)
	require.Len(t, list, 2)

	byID := make(map[uuid.UUID]int)
	for i, entry := range list {
		byID[entry.ID] = i
	}

	doneEntry := list[byID[done.ID]]
	assert.True(t, doneEntry.Completed)
	assert.False(t, doneEntry.Progress.CanClaim)

	openEntry := list[byID[open.ID]]
	assert.False(t, openEntry.Completed)
	assert.True(t, openEntry.Progress.CanClaim)
}

func TestListTasks_FiltersExpired(t *testing.T) {
	user := &model.User{ID: uuid.New()}
	expired := time.Now().UTC().Add(-time.Minute)
	task := &model.Task{ID: uuid.New(), Title: "gone", CoinsReward: 5, Active: true, ExpiresAt: &expired}
	f := newTaskFixture(user, task)

	list, err := f.svc.ListTasks(context.Background(), user.ID, "", "")
	require.NoError(t, err)
	assert.Empty(t, list)
}
