package srs_test

import (
	"testing"
	"time"

	"github.com/prepdeck/prepdeck/internal/models"
	"github.com/prepdeck/prepdeck/internal/srs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var reviewTime = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func freshCard() models.ReviewCard {
	return srs.NewCard(1, 42, reviewTime)
}

func TestNewCard_InitialState(t *testing.T) {
	card := freshCard()

	assert.Equal(t, 2.5, card.EaseFactor)
	assert.Equal(t, 1, card.IntervalDays)
	assert.Equal(t, 0, card.Repetitions)
	assert.Equal(t, "2026-03-15", card.NextReviewDate.String(), "new card is due tomorrow")
	assert.Nil(t, card.LastReviewedAt)
	assert.Nil(t, card.LastQuality)
}

func TestReview_FirstPerfectRecall(t *testing.T) {
	updated := srs.Review(freshCard(), 5, reviewTime)

	assert.Equal(t, 1, updated.IntervalDays, "first success keeps a 1-day interval")
	assert.Equal(t, 1, updated.Repetitions)
	assert.InDelta(t, 2.6, updated.EaseFactor, 1e-9)
	assert.Equal(t, "2026-03-15", updated.NextReviewDate.String())
	require.NotNil(t, updated.LastQuality)
	assert.Equal(t, 5, *updated.LastQuality)
	require.NotNil(t, updated.LastReviewedAt)
	assert.Equal(t, reviewTime, *updated.LastReviewedAt)
}

func TestReview_SecondSuccessJumpsToSixDays(t *testing.T) {
	card := srs.Review(freshCard(), 5, reviewTime)
	card = srs.Review(card, 5, reviewTime)

	assert.Equal(t, 6, card.IntervalDays)
	assert.Equal(t, 2, card.Repetitions)
	assert.Equal(t, "2026-03-20", card.NextReviewDate.String())
}

func TestReview_ThirdSuccessMultipliesByEase(t *testing.T) {
	card := models.ReviewCard{
		EaseFactor:   2.6,
		IntervalDays: 6,
		Repetitions:  2,
	}

	updated := srs.Review(card, 4, reviewTime)

	// round(6 * 2.6) with the pre-review ease; quality 4 leaves ease alone.
	assert.Equal(t, 16, updated.IntervalDays)
	assert.Equal(t, 3, updated.Repetitions)
	assert.InDelta(t, 2.6, updated.EaseFactor, 1e-9)
}

func TestReview_RepeatedSuccessMonotonicity(t *testing.T) {
	card := freshCard()

	prevEase := card.EaseFactor
	wantIntervals := []int{1, 6}
	for i := 0; i < 5; i++ {
		prevInterval := card.IntervalDays
		card = srs.Review(card, 5, reviewTime)

		assert.Equal(t, i+1, card.Repetitions)
		assert.Greater(t, card.EaseFactor, prevEase, "ease strictly increases on perfect recall")
		if i < len(wantIntervals) {
			assert.Equal(t, wantIntervals[i], card.IntervalDays)
		} else {
			assert.Greater(t, card.IntervalDays, prevInterval)
		}
		prevEase = card.EaseFactor
	}
}

func TestReview_FailureResetsProgressButNotEase(t *testing.T) {
	card := models.ReviewCard{
		EaseFactor:   2.6,
		IntervalDays: 20,
		Repetitions:  3,
	}

	updated := srs.Review(card, 1, reviewTime)

	assert.Equal(t, 0, updated.Repetitions)
	assert.Equal(t, 1, updated.IntervalDays)
	// Ease drops by the regular quality-1 penalty, not to the floor.
	assert.InDelta(t, 2.06, updated.EaseFactor, 1e-9)
	assert.Equal(t, "2026-03-15", updated.NextReviewDate.String())
}

func TestReview_FailureFromAnyStateResets(t *testing.T) {
	states := []models.ReviewCard{
		{EaseFactor: 2.5, IntervalDays: 1, Repetitions: 0},
		{EaseFactor: 2.5, IntervalDays: 6, Repetitions: 2},
		{EaseFactor: 1.9, IntervalDays: 120, Repetitions: 9},
	}
	for _, card := range states {
		updated := srs.Review(card, 2, reviewTime)
		assert.Equal(t, 0, updated.Repetitions)
		assert.Equal(t, 1, updated.IntervalDays)
	}
}

func TestReview_EaseFactorFloor(t *testing.T) {
	card := models.ReviewCard{EaseFactor: 2.5, IntervalDays: 10, Repetitions: 4}

	for i := 0; i < 10; i++ {
		card = srs.Review(card, 0, reviewTime)
		assert.GreaterOrEqual(t, card.EaseFactor, srs.MinEaseFactor)
	}
	assert.Equal(t, srs.MinEaseFactor, card.EaseFactor)
}

func TestReview_QualityClamping(t *testing.T) {
	base := models.ReviewCard{EaseFactor: 2.3, IntervalDays: 12, Repetitions: 3}

	low := srs.Review(base, -5, reviewTime)
	zero := srs.Review(base, 0, reviewTime)
	assert.Equal(t, zero.EaseFactor, low.EaseFactor)
	assert.Equal(t, zero.IntervalDays, low.IntervalDays)
	assert.Equal(t, zero.Repetitions, low.Repetitions)
	require.NotNil(t, low.LastQuality)
	assert.Equal(t, 0, *low.LastQuality, "recorded quality is the clamped value")

	high := srs.Review(base, 99, reviewTime)
	five := srs.Review(base, 5, reviewTime)
	assert.Equal(t, five.EaseFactor, high.EaseFactor)
	assert.Equal(t, five.IntervalDays, high.IntervalDays)
	require.NotNil(t, high.LastQuality)
	assert.Equal(t, 5, *high.LastQuality)
}

func TestReview_InvariantsHoldUnderRandomishSequence(t *testing.T) {
	card := freshCard()
	qualities := []int{5, 2, 3, 3, 5, 0, 4, 4, 4, 1, 5, 5, 5, 5}

	for _, q := range qualities {
		card = srs.Review(card, q, reviewTime)
		assert.GreaterOrEqual(t, card.EaseFactor, srs.MinEaseFactor)
		assert.GreaterOrEqual(t, card.IntervalDays, 1)
		assert.GreaterOrEqual(t, card.Repetitions, 0)
	}
}

func TestReview_QualityFourKeepsEase(t *testing.T) {
	card := models.ReviewCard{EaseFactor: 2.2, IntervalDays: 8, Repetitions: 3}

	updated := srs.Review(card, 4, reviewTime)

	assert.InDelta(t, 2.2, updated.EaseFactor, 1e-9)
}

func TestReview_QualityThreeLowersEase(t *testing.T) {
	card := models.ReviewCard{EaseFactor: 2.5, IntervalDays: 1, Repetitions: 0}

	updated := srs.Review(card, 3, reviewTime)

	// 2.5 + (0.1 - 2*(0.08 + 2*0.02)) = 2.36
	assert.InDelta(t, 2.36, updated.EaseFactor, 1e-9)
	assert.Equal(t, 1, updated.IntervalDays)
	assert.Equal(t, 1, updated.Repetitions)
}
