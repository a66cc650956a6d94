package dto

import "time"

// LeaderboardEntryDTO is one ranked row: finished attempts only, ordered by score
// descending with earlier finishes winning ties.
type LeaderboardEntryDTO struct {
	UserID     uint      `json:"user_id"`
	Score      float64   `json:"score"`
	FinishedAt time.Time `json:"finished_at"`
}
