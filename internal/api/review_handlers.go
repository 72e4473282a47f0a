package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prepdeck/prepdeck/internal/errors"
	"github.com/prepdeck/prepdeck/internal/services"
)

// Quality is a pointer so an absent field is distinguishable from a
// legitimate rating of 0. Out-of-range values are still accepted and
// clamped by the scheduler.
type reviewRequest struct {
	Quality *int `json:"quality" validate:"required"`
}

// handleDueCards lists the authenticated user's cards due today or earlier,
// oldest first. An optional ?limit= caps the page below the server default.
func (s *Server) handleDueCards(reviews services.ReviewService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := userFromContext(r.Context())

		limit := s.DueCardLimit
		if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
			parsed, err := strconv.Atoi(limitStr)
			if err != nil || parsed < 1 {
				handleError(w, r, errors.NewValidationError("limit", "must be a positive integer"))
				return
			}
			if parsed < limit || limit == 0 {
				limit = parsed
			}
		}

		cards, err := reviews.DueCards(r.Context(), user.ID, limit)
		if err != nil {
			handleError(w, r, err)
			return
		}

		respondJSON(w, r, http.StatusOK, map[string]any{
			"cards": cards,
			"count": len(cards),
		})
	}
}

// handleReviewCard grades one card. The quality score is accepted as-is;
// out-of-range values are clamped by the scheduler rather than rejected.
func (s *Server) handleReviewCard(reviews services.ReviewService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := userFromContext(r.Context())

		cardID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			handleError(w, r, errors.NewBadRequestError("invalid card ID"))
			return
		}

		var req reviewRequest
		if err := decodeJSON(r, &req); err != nil {
			handleError(w, r, err)
			return
		}

		card, err := reviews.Review(r.Context(), cardID, user.ID, *req.Quality)
		if err != nil {
			handleError(w, r, err)
			return
		}

		respondJSON(w, r, http.StatusOK, card)
	}
}

func (s *Server) handleReviewStats(reviews services.ReviewService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := userFromContext(r.Context())

		stats, err := reviews.Stats(r.Context(), user.ID)
		if err != nil {
			handleError(w, r, err)
			return
		}

		respondJSON(w, r, http.StatusOK, stats)
	}
}
