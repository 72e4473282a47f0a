// Package srs implements the SM-2 spaced-repetition scheduling algorithm as a
// pure transition function. Both card kinds (problems and roadmap steps) share
// this single implementation so the two surfaces cannot drift.
package srs

import (
	"math"
	"time"

	"github.com/prepdeck/prepdeck/internal/models"
)

const (
	// InitialEaseFactor is the ease assigned to a freshly created card.
	InitialEaseFactor = 2.5
	// InitialIntervalDays schedules a new card for the day after creation.
	InitialIntervalDays = 1
	// MinEaseFactor bounds ease degradation from repeated failures.
	MinEaseFactor = 1.3
)

// NewCard returns the initial scheduling state for a (user, item) pair.
func NewCard(userID, itemID int64, now time.Time) models.ReviewCard {
	return models.ReviewCard{
		UserID:         userID,
		ItemID:         itemID,
		EaseFactor:     InitialEaseFactor,
		IntervalDays:   InitialIntervalDays,
		Repetitions:    0,
		NextReviewDate: models.DateOf(now).AddDays(InitialIntervalDays),
	}
}

// Review applies one SM-2 pass to card for a self-reported recall quality and
// returns the updated card. Quality is clamped into [0,5], never rejected.
//
// A failed recall (quality < 3) resets repetitions and the interval but leaves
// the ease factor to the regular ease update. A successful recall grows the
// interval: 1 day on the first success, 6 on the second, and interval*ease
// after that, rounded half-up. The interval computation uses the ease the card
// carried into the review; the ease update happens afterwards.
func Review(card models.ReviewCard, quality int, now time.Time) models.ReviewCard {
	if quality < 0 {
		quality = 0
	}
	if quality > 5 {
		quality = 5
	}

	if quality < 3 {
		card.Repetitions = 0
		card.IntervalDays = 1
	} else {
		switch {
		case card.Repetitions == 0:
			card.IntervalDays = 1
		case card.IntervalDays <= 1:
			card.IntervalDays = 6
		default:
			// math.Round is half-away-from-zero; operands here are
			// positive, so this is round-half-up.
			card.IntervalDays = int(math.Round(float64(card.IntervalDays) * card.EaseFactor))
		}
		card.Repetitions++
	}

	q := float64(quality)
	ease := card.EaseFactor + (0.1 - (5-q)*(0.08+(5-q)*0.02))
	if ease < MinEaseFactor {
		ease = MinEaseFactor
	}
	card.EaseFactor = ease

	reviewedAt := now
	card.LastReviewedAt = &reviewedAt
	card.LastQuality = &quality
	card.NextReviewDate = models.DateOf(now).AddDays(card.IntervalDays)
	return card
}
