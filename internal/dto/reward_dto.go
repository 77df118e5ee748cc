package dto

// DailyRewardResponse reports both outcomes of a daily reward attempt:
// ineligibility is an expected result, not an error.
type DailyRewardResponse struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	CoinsEarned  *int   `json:"coins_earned,omitempty"`
	NewBalance   *int   `json:"new_balance,omitempty"`
	NextRewardIn *int   `json:"next_reward_in,omitempty"` // whole hours, rounded up
}
