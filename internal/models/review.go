package models

import "time"

// ReviewCard tracks spaced-repetition state for one (user, item) pair. The
// item is opaque to the scheduler: the same shape backs coding-problem cards
// and roadmap-step cards, each in its own table with a UNIQUE(user_id, item)
// constraint.
type ReviewCard struct {
	ID             int64      `json:"id"`
	UserID         int64      `json:"-"`
	ItemID         int64      `json:"item_id"`
	EaseFactor     float64    `json:"ease_factor"`
	IntervalDays   int        `json:"interval_days"`
	Repetitions    int        `json:"repetitions"`
	NextReviewDate Date       `json:"next_review_date"`
	LastReviewedAt *time.Time `json:"last_reviewed_at"`
	LastQuality    *int       `json:"last_quality"`
	CreatedAt      time.Time  `json:"created_at"`
}

// ReviewStats is the read-side aggregate over one user's cards.
type ReviewStats struct {
	TotalCards   int `json:"total_cards"`
	DueToday     int `json:"due_today"`
	Mastered     int `json:"mastered"`
	UpcomingWeek int `json:"upcoming_week"`
}
