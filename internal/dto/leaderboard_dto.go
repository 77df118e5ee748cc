package dto

type LeaderboardEntry struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Coins int    `json:"coins"`
	Rank  int    `json:"rank"`
}
