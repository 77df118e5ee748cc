package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"vitacoin.app/rewardsplatform/internal/dto"
	"vitacoin.app/rewardsplatform/internal/model"
	"vitacoin.app/rewardsplatform/internal/realtime"
	"vitacoin.app/rewardsplatform/internal/repository"
)

const DefaultActivityWindow = 20

type TaskService interface {
	ListTasks(ctx context.Context, userID uuid.UUID, category, difficulty string) ([]dto.TaskWithProgress, error)
	ClaimTask(ctx context.Context, userID, taskID uuid.UUID) (*dto.TaskClaimResponse, error)
	ListCompletions(ctx context.Context, userID uuid.UUID) ([]model.CompletedTask, error)

	CreateTask(ctx context.Context, input dto.TaskCreateInput) (*model.Task, error)
	UpdateTask(ctx context.Context, id uuid.UUID, input dto.TaskCreateInput) (*model.Task, error)
	DeleteTask(ctx context.Context, id uuid.UUID) error
	ListAllTasks(ctx context.Context) ([]model.Task, error)
}

type taskService struct {
	tasks           repository.TaskRepository
	users           repository.UserRepository
	activity        repository.ActivityRepository
	ledger          repository.LedgerRepository
	leaderboard     LeaderboardService
	hub             Broadcaster
	search          SearchService
	activityWindow  int
	leaderboardSize int
}

func NewTaskService(
	tasks repository.TaskRepository,
	users repository.UserRepository,
	activity repository.ActivityRepository,
	ledger repository.LedgerRepository,
	leaderboard LeaderboardService,
	hub Broadcaster,
	search SearchService,
	activityWindow int,
	leaderboardSize int,
) TaskService {
	if activityWindow <= 0 {
		activityWindow = DefaultActivityWindow
	}
	if leaderboardSize <= 0 {
		leaderboardSize = DefaultLeaderboardSize
	}
	return &taskService{
		tasks:           tasks,
		users:           users,
		activity:        activity,
		ledger:          ledger,
		leaderboard:     leaderboard,
		hub:             hub,
		search:          search,
		activityWindow:  activityWindow,
		leaderboardSize: leaderboardSize,
	}
}

func (s *taskService) ListTasks(ctx context.Context, userID uuid.UUID, category, difficulty string) ([]dto.TaskWithProgress, error) {
	now := time.Now().UTC()

	tasks, err := s.tasks.FindAvailable(ctx, category, difficulty, now)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, userID.String())
	if err != nil {
		return nil, err
	}

	completedIDs, err := s.users.CompletedTaskIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	completed := make(map[uuid.UUID]bool, len(completedIDs))
	for _, id := range completedIDs {
		completed[id] = true
	}

	events, err := s.activity.Recent(ctx, userID, s.activityWindow)
	if err != nil {
		return nil, err
	}

	result := make([]dto.TaskWithProgress, 0, len(tasks))
	for i := range tasks {
		task := tasks[i]
		entry := dto.TaskWithProgress{Task: task, Completed: completed[task.ID]}
		if entry.Completed {
			entry.Progress = dto.TaskProgress{
				Status:      dto.ProgressCompleted,
				Description: "Task already completed",
			}
		} else {
			entry.Progress = EvaluateRequirements(user, &task, events, now)
		}
		result = append(result, entry)
	}

	return result, nil
}

// ClaimTask validates and settles a task claim. The check order is part of
// the contract: not-found, expired, already-completed, requirements-not-met,
// completion-limit.
func (s *taskService) ClaimTask(ctx context.Context, userID, taskID uuid.UUID) (*dto.TaskClaimResponse, error) {
	task, err := s.tasks.FindActiveByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	now := time.Now().UTC()
	if task.Expired(now) {
		return nil, ErrTaskExpired
	}

	done, err := s.users.HasCompletedTask(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}
	if done {
		return nil, ErrAlreadyCompleted
	}

	user, err := s.users.FindByID(ctx, userID.String())
	if err != nil {
		return nil, err
	}

	events, err := s.activity.Recent(ctx, userID, s.activityWindow)
	if err != nil {
		return nil, err
	}

	progress := EvaluateRequirements(user, task, events, now)
	if !progress.CanClaim {
		return nil, &RequirementsNotMetError{Progress: progress}
	}

	if task.MaxCompletions != nil && task.CompletionCount >= *task.MaxCompletions {
		return nil, ErrCompletionLimitReached
	}

	newBalance, err := s.ledger.CompleteTask(ctx, userID, task, now)
	if err != nil {
		// The storage layer re-checks both races under its transaction.
		if errors.Is(err, repository.ErrAlreadyCompleted) {
			return nil, ErrAlreadyCompleted
		}
		if errors.Is(err, repository.ErrCompletionLimitReached) {
			return nil, ErrCompletionLimitReached
		}
		return nil, err
	}

	s.pushTaskCompleted(userID, task, newBalance)

	return &dto.TaskClaimResponse{
		Success:     true,
		Message:     fmt.Sprintf("Task '%s' completed! +%d coins", task.Title, task.CoinsReward),
		CoinsEarned: task.CoinsReward,
		NewBalance:  newBalance,
	}, nil
}

func (s *taskService) pushTaskCompleted(userID uuid.UUID, task *model.Task, newBalance int) {
	if s.hub == nil {
		return
	}

	id := userID.String()
	s.hub.SendToUser(id, realtime.NewBalanceUpdate(newBalance, task.CoinsReward, "Task: "+task.Title))
	s.hub.SendToUser(id, realtime.NewTaskCompleted(task.ID.String(), task.Title, task.CoinsReward))
	broadcastLeaderboard(s.hub, s.leaderboard, s.leaderboardSize)
}

func (s *taskService) ListCompletions(ctx context.Context, userID uuid.UUID) ([]model.CompletedTask, error) {
	return s.tasks.ListCompletions(ctx, userID)
}

func (s *taskService) CreateTask(ctx context.Context, input dto.TaskCreateInput) (*model.Task, error) {
	task := taskFromInput(input)
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}

	s.indexTask(task)
	return task, nil
}

func (s *taskService) UpdateTask(ctx context.Context, id uuid.UUID, input dto.TaskCreateInput) (*model.Task, error) {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	updated := taskFromInput(input)
	updated.ID = task.ID
	updated.Active = task.Active
	updated.CompletionCount = task.CompletionCount
	updated.CreatedAt = task.CreatedAt

	if err := s.tasks.Update(ctx, updated); err != nil {
		return nil, err
	}

	s.indexTask(updated)
	return updated, nil
}

func (s *taskService) DeleteTask(ctx context.Context, id uuid.UUID) error {
	if err := s.tasks.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return err
	}

	if s.search != nil {
		if err := s.search.DeleteTask(id.String()); err != nil {
			log.Printf("failed to de-index task %s: %v", id, err)
		}
	}
	return nil
}

func (s *taskService) ListAllTasks(ctx context.Context) ([]model.Task, error) {
	return s.tasks.FindAll(ctx)
}

func (s *taskService) indexTask(task *model.Task) {
	if s.search == nil {
		return
	}
	if err := s.search.IndexTask(task); err != nil {
		log.Printf("failed to index task %s: %v", task.ID, err)
	}
}

func taskFromInput(input dto.TaskCreateInput) *model.Task {
	difficulty := input.Difficulty
	if difficulty == "" {
		difficulty = "easy"
	}

	return &model.Task{
		Title:           input.Title,
		Description:     input.Description,
		Category:        input.Category,
		CoinsReward:     input.CoinsReward,
		Difficulty:      difficulty,
		Kind:            input.Kind,
		RequiredActions: input.RequiredActions,
		TargetValue:     input.TargetValue,
		WindowAction:    input.WindowAction,
		Active:          true,
		MaxCompletions:  input.MaxCompletions,
		ExpiresAt:       input.ExpiresAt,
	}
}
