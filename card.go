package cadence

import (
	"fmt"
	"time"
)

// Card is a flashcard's scheduling state. Only Scheduler.ReviewCard
// produces new values of it after NewCard.
type Card struct {
	CardID        string     `json:"card_id"`
	State         State      `json:"state"`
	Step          int        `json:"step"`       // learning/relearning step index; 0 in New and Review.
	Stability     float64    `json:"stability"`  // 0 before first review.
	Difficulty    float64    `json:"difficulty"` // 0 before first review, else [1, 10].
	ElapsedDays   int        `json:"elapsed_days"`
	ScheduledDays int        `json:"scheduled_days"`
	Reps          int        `json:"reps"`
	Lapses        int        `json:"lapses"`
	Due           time.Time  `json:"due"`
	LastReview    *time.Time `json:"last_review,omitempty"` // nil before first review.
}

// NewCard creates a card in the New state with the given ID.
// Due is set to now (immediately reviewable).
func NewCard(id string, now time.Time) Card {
	return Card{
		CardID: id,
		State:  New,
		Due:    now,
	}
}

// IsDue reports whether the card is eligible for review at now.
func (c Card) IsDue(now time.Time) bool {
	return !now.Before(c.Due)
}

// clone returns a deep copy of the card.
func (c Card) clone() Card {
	out := c
	if c.LastReview != nil {
		v := *c.LastReview
		out.LastReview = &v
	}
	return out
}

// elapsedDays returns the whole days between the last review and now.
func (c Card) elapsedDays(now time.Time) (int, error) {
	if c.LastReview == nil {
		return 0, nil
	}
	d := now.Sub(*c.LastReview)
	if d < 0 {
		return 0, fmt.Errorf("%w: card %s reviewed at %s, last review %s",
			ErrClockRegression, c.CardID, now.Format(time.RFC3339), c.LastReview.Format(time.RFC3339))
	}
	return int(d / day), nil
}
