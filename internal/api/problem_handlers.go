package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prepdeck/prepdeck/internal/errors"
	"github.com/prepdeck/prepdeck/internal/models"
	"github.com/prepdeck/prepdeck/internal/worker"
)

type createProblemRequest struct {
	Slug        string `json:"slug" validate:"required"`
	Title       string `json:"title" validate:"required"`
	Difficulty  string `json:"difficulty" validate:"omitempty,oneof=easy medium hard"`
	Topic       string `json:"topic"`
	Description string `json:"description"`
}

func (s *Server) handleListProblems(w http.ResponseWriter, r *http.Request) {
	filter := models.ProblemFilter{
		Difficulty: r.URL.Query().Get("difficulty"),
		Topic:      r.URL.Query().Get("topic"),
	}
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 {
			handleError(w, r, errors.NewValidationError("limit", "must be a positive integer"))
			return
		}
		filter.Limit = limit
	}
	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		offset, err := strconv.Atoi(offsetStr)
		if err != nil || offset < 0 {
			handleError(w, r, errors.NewValidationError("offset", "must be a non-negative integer"))
			return
		}
		filter.Offset = offset
	}

	problems, total, err := s.ProblemService.List(r.Context(), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, map[string]any{
		"problems": problems,
		"total":    total,
	})
}

func (s *Server) handleGetProblem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		handleError(w, r, errors.NewBadRequestError("invalid problem ID"))
		return
	}

	problem, err := s.ProblemService.Get(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, problem)
}

func (s *Server) handleCreateProblem(w http.ResponseWriter, r *http.Request) {
	var req createProblemRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	problem, err := s.ProblemService.Create(r.Context(), models.Problem{
		Slug:        req.Slug,
		Title:       req.Title,
		Difficulty:  req.Difficulty,
		Topic:       req.Topic,
		Description: req.Description,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusCreated, problem)
}

// handleCompleteProblem records that the user solved the problem and queues
// the review card creation. The response does not wait for the card: creation
// is idempotent, so a repeated job is a no-op, and a job lost to shutdown is
// recovered the next time the user completes the same problem.
func (s *Server) handleCompleteProblem(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		handleError(w, r, errors.NewBadRequestError("invalid problem ID"))
		return
	}

	// Reject completions of problems that do not exist before queueing.
	if _, err := s.ProblemService.Get(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}

	s.CompletionPool.Submit(&worker.CreateCardJob{
		Reviews: s.ProblemReviews,
		Kind:    "problem",
		UserID:  user.ID,
		ItemID:  id,
	})

	respondJSON(w, r, http.StatusAccepted, map[string]any{
		"status":     "queued",
		"problem_id": id,
	})
}
