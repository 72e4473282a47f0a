package api

import (
	"net/http"

	"github.com/prepdeck/prepdeck/internal/errors"
)

type registerRequest struct {
	Username string `json:"username" validate:"required,min=2,max=64"`
}

// handleRegister creates (or re-fetches) the user and issues a token. The
// endpoint is idempotent on username so clients can treat it as login.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	user, err := s.UserService.Register(r.Context(), req.Username)
	if err != nil {
		handleError(w, r, err)
		return
	}

	token, err := s.Tokens.Sign(user.ID)
	if err != nil {
		handleError(w, r, errors.NewInternalError(err))
		return
	}

	respondJSON(w, r, http.StatusCreated, map[string]any{
		"user":  user,
		"token": token,
	})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, userFromContext(r.Context()))
}
