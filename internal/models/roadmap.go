package models

import "time"

// RoadmapStep is one unit of a learning roadmap, ordered by Position within
// its roadmap slug.
type RoadmapStep struct {
	ID          int64     `json:"id"`
	Roadmap     string    `json:"roadmap"`
	Position    int       `json:"position"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}
