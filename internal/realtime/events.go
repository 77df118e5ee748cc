package realtime

import "vitacoin.app/rewardsplatform/internal/dto"

// Event is the envelope every websocket message uses. Field names are part
// of the client contract.
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

type BalanceUpdate struct {
	Coins  int    `json:"coins"`
	Delta  int    `json:"delta"`
	Source string `json:"source"`
}

type TaskCompleted struct {
	TaskID      string `json:"task_id"`
	TaskTitle   string `json:"task_title"`
	CoinsEarned int    `json:"coins_earned"`
}

func NewBalanceUpdate(coins, delta int, source string) Event {
	return Event{Type: "balance_update", Data: BalanceUpdate{Coins: coins, Delta: delta, Source: source}}
}

func NewTaskCompleted(taskID, taskTitle string, coinsEarned int) Event {
	return Event{Type: "task_completed", Data: TaskCompleted{TaskID: taskID, TaskTitle: taskTitle, CoinsEarned: coinsEarned}}
}

func NewLeaderboardUpdate(entries []dto.LeaderboardEntry) Event {
	return Event{Type: "leaderboard_update", Data: entries}
}
