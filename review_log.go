package cadence

import "time"

// ReviewLog records a single review event for a card.
// State is the state before the review; the remaining fields describe the
// card after it.
type ReviewLog struct {
	CardID        string    `json:"card_id"`
	Rating        Rating    `json:"rating"`
	State         State     `json:"state"`
	Due           time.Time `json:"due"`
	Stability     float64   `json:"stability"`
	Difficulty    float64   `json:"difficulty"`
	ElapsedDays   int       `json:"elapsed_days"`
	ScheduledDays int       `json:"scheduled_days"`
	ReviewedAt    time.Time `json:"reviewed_at"`
}
