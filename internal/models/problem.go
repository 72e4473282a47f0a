package models

import "time"

type Problem struct {
	ID          int64     `json:"id"`
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Difficulty  string    `json:"difficulty"`
	Topic       string    `json:"topic"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// ProblemFilter narrows and paginates problem listings.
type ProblemFilter struct {
	Difficulty string
	Topic      string
	Limit      int
	Offset     int
}
