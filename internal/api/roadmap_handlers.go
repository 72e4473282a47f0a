package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prepdeck/prepdeck/internal/errors"
	"github.com/prepdeck/prepdeck/internal/models"
	"github.com/prepdeck/prepdeck/internal/worker"
)

type createStepRequest struct {
	Roadmap     string `json:"roadmap" validate:"required"`
	Position    int    `json:"position" validate:"required,min=1"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
}

func (s *Server) handleListSteps(w http.ResponseWriter, r *http.Request) {
	steps, err := s.RoadmapService.Steps(r.Context(), r.URL.Query().Get("roadmap"))
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, map[string]any{
		"steps": steps,
		"count": len(steps),
	})
}

func (s *Server) handleGetStep(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		handleError(w, r, errors.NewBadRequestError("invalid step ID"))
		return
	}

	step, err := s.RoadmapService.GetStep(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, step)
}

func (s *Server) handleCreateStep(w http.ResponseWriter, r *http.Request) {
	var req createStepRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	step, err := s.RoadmapService.CreateStep(r.Context(), models.RoadmapStep{
		Roadmap:     req.Roadmap,
		Position:    req.Position,
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusCreated, step)
}

// handleCompleteStep mirrors problem completion for roadmap steps.
func (s *Server) handleCompleteStep(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		handleError(w, r, errors.NewBadRequestError("invalid step ID"))
		return
	}

	if _, err := s.RoadmapService.GetStep(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}

	s.CompletionPool.Submit(&worker.CreateCardJob{
		Reviews: s.RoadmapReviews,
		Kind:    "roadmap_step",
		UserID:  user.ID,
		ItemID:  id,
	})

	respondJSON(w, r, http.StatusAccepted, map[string]any{
		"status":  "queued",
		"step_id": id,
	})
}
