package dto

type RuleCreateInput struct {
	Key           string `json:"key" binding:"required,max=50"`
	Description   string `json:"description"`
	Points        int    `json:"points" binding:"required"`
	Penalty       bool   `json:"penalty"`
	Active        *bool  `json:"active"`
	CooldownHours *int   `json:"cooldown_hours"`
	DailyCap      *int   `json:"daily_cap"`
	PerUserCap    *int   `json:"per_user_cap"`
}
