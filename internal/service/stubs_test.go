package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"vitacoin.app/rewardsplatform/internal/dto"
	"vitacoin.app/rewardsplatform/internal/model"
	"vitacoin.app/rewardsplatform/internal/realtime"
	"vitacoin.app/rewardsplatform/internal/repository"
)

type stubUserRepo struct {
	user         *model.User
	users        []*model.User
	completed    map[uuid.UUID]bool
	completedIDs []uuid.UUID
}

func (s *stubUserRepo) Create(ctx context.Context, user *model.User) error { return nil }

func (s *stubUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	if s.user == nil || s.user.ID.String() != id {
		return nil, gorm.ErrRecordNotFound
	}
	u := *s.user
	return &u, nil
}

func (s *stubUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	if s.user == nil || s.user.Email != email {
		return nil, gorm.ErrRecordNotFound
	}
	u := *s.user
	return &u, nil
}

func (s *stubUserRepo) FindAll(ctx context.Context) ([]*model.User, error) { return s.users, nil }

func (s *stubUserRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(s.users)), nil
}

func (s *stubUserRepo) Update(ctx context.Context, user *model.User) error {
	s.user = user
	return nil
}

func (s *stubUserRepo) HasCompletedTask(ctx context.Context, userID, taskID uuid.UUID) (bool, error) {
	return s.completed[taskID], nil
}

func (s *stubUserRepo) CompletedTaskIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	return s.completedIDs, nil
}

type stubRuleRepo struct {
	rules map[string]*model.RewardRule
}

func (s *stubRuleRepo) Create(ctx context.Context, rule *model.RewardRule) error {
	if s.rules == nil {
		s.rules = make(map[string]*model.RewardRule)
	}
	s.rules[rule.Key] = rule
	return nil
}

func (s *stubRuleRepo) FindActiveByKey(ctx context.Context, key string) (*model.RewardRule, error) {
	rule, ok := s.rules[key]
	if !ok || !rule.Active {
		return nil, gorm.ErrRecordNotFound
	}
	return rule, nil
}

func (s *stubRuleRepo) FindAll(ctx context.Context) ([]model.RewardRule, error) {
	var out []model.RewardRule
	for _, r := range s.rules {
		out = append(out, *r)
	}
	return out, nil
}

func (s *stubRuleRepo) ExistsByKey(ctx context.Context, key string) (bool, error) {
	_, ok := s.rules[key]
	return ok, nil
}

type stubTaskRepo struct {
	tasks       map[uuid.UUID]*model.Task
	completions []model.CompletedTask
}

func (s *stubTaskRepo) Create(ctx context.Context, task *model.Task) error {
	if s.tasks == nil {
		s.tasks = make(map[uuid.UUID]*model.Task)
	}
	if task.ID == uuid.Nil {
		task.ID = uuid.New()
	}
	s.tasks[task.ID] = task
	return nil
}

func (s *stubTaskRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	task, ok := s.tasks[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return task, nil
}

func (s *stubTaskRepo) FindActiveByID(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	task, ok := s.tasks[id]
	if !ok || !task.Active {
		return nil, gorm.ErrRecordNotFound
	}
	return task, nil
}

func (s *stubTaskRepo) FindAll(ctx context.Context) ([]model.Task, error) {
	var out []model.Task
	for _, t := range s.tasks {
		out = append(out, *t)
	}
	return out, nil
}

func (s *stubTaskRepo) FindAvailable(ctx context.Context, category, difficulty string, now time.Time) ([]model.Task, error) {
	var out []model.Task
	for _, t := range s.tasks {
		if !t.Active || t.Expired(now) {
			continue
		}
		if category != "" && t.Category != category {
			continue
		}
		if difficulty != "" && t.Difficulty != difficulty {
			continue
		}
		out = append(out, *t)
	}
	return out, nil
}

func (s *stubTaskRepo) Update(ctx context.Context, task *model.Task) error {
	s.tasks[task.ID] = task
	return nil
}

func (s *stubTaskRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := s.tasks[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(s.tasks, id)
	return nil
}

func (s *stubTaskRepo) ListCompletions(ctx context.Context, userID uuid.UUID) ([]model.CompletedTask, error) {
	return s.completions, nil
}

func (s *stubTaskRepo) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
	var n int64
	for _, t := range s.tasks {
		if t.Active && t.Expired(now) {
			t.Active = false
			n++
		}
	}
	return n, nil
}

type stubActivityRepo struct {
	events []model.ActivityEvent
}

func (s *stubActivityRepo) Append(ctx context.Context, event *model.ActivityEvent) error {
	s.events = append(s.events, *event)
	return nil
}

func (s *stubActivityRepo) Recent(ctx context.Context, userID uuid.UUID, limit int) ([]model.ActivityEvent, error) {
	if len(s.events) > limit {
		return s.events[:limit], nil
	}
	return s.events, nil
}

type stubTransactionRepo struct {
	countByRule      int64
	countByRuleSince int64
}

func (s *stubTransactionRepo) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Transaction, error) {
	return nil, nil
}

func (s *stubTransactionRepo) CountByUserAndRule(ctx context.Context, userID uuid.UUID, ruleKey string) (int64, error) {
	return s.countByRule, nil
}

func (s *stubTransactionRepo) CountByUserAndRuleSince(ctx context.Context, userID uuid.UUID, ruleKey string, since time.Time) (int64, error) {
	return s.countByRuleSince, nil
}

// stubLedger lets each test script the outcome of the transactional units.
type stubLedger struct {
	applyDaily   func(userID uuid.UUID, rule *model.RewardRule, now, cutoff time.Time) (int, error)
	completeTask func(userID uuid.UUID, task *model.Task, now time.Time) (int, error)
}

func (s *stubLedger) ApplyDailyReward(ctx context.Context, userID uuid.UUID, rule *model.RewardRule, now, cutoff time.Time) (int, error) {
	return s.applyDaily(userID, rule, now, cutoff)
}

func (s *stubLedger) CompleteTask(ctx context.Context, userID uuid.UUID, task *model.Task, now time.Time) (int, error) {
	return s.completeTask(userID, task, now)
}

// memoryLedger emulates the database's exactly-once guarantees for the
// concurrency tests.
type memoryLedger struct {
	mu        sync.Mutex
	balance   int
	completed map[uuid.UUID]bool
}

func (l *memoryLedger) ApplyDailyReward(ctx context.Context, userID uuid.UUID, rule *model.RewardRule, now, cutoff time.Time) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.balance += rule.Points
	return l.balance, nil
}

func (l *memoryLedger) CompleteTask(ctx context.Context, userID uuid.UUID, task *model.Task, now time.Time) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.completed == nil {
		l.completed = make(map[uuid.UUID]bool)
	}
	if l.completed[task.ID] {
		return 0, repository.ErrAlreadyCompleted
	}
	if task.MaxCompletions != nil && task.CompletionCount >= *task.MaxCompletions {
		return 0, repository.ErrCompletionLimitReached
	}
	l.completed[task.ID] = true
	l.balance += task.CoinsReward
	return l.balance, nil
}

type stubLeaderboard struct {
	entries []dto.LeaderboardEntry
	err     error
}

func (s *stubLeaderboard) GetLeaderboard(ctx context.Context, limit int) ([]dto.LeaderboardEntry, error) {
	return s.entries, s.err
}

// stubHub records delivered events so tests can assert fan-out behavior.
type stubHub struct {
	mu        sync.Mutex
	sent      map[string][]realtime.Event
	broadcast []realtime.Event
}

func newStubHub() *stubHub {
	return &stubHub{sent: make(map[string][]realtime.Event)}
}

func (h *stubHub) SendToUser(userID string, event realtime.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sent[userID] = append(h.sent[userID], event)
}

func (h *stubHub) Broadcast(event realtime.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.broadcast = append(h.broadcast, event)
}

func (h *stubHub) sentTo(userID string) []realtime.Event {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.sent[userID]
}
