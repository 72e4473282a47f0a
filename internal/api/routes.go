package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)

	r.Get("/healthz", s.handleHealthz)
	r.Get("/readyz", s.handleReadyz)

	r.Route("/api", func(r chi.Router) {
		r.Post("/users", s.handleRegister)

		r.Group(func(r chi.Router) {
			r.Use(s.authMiddleware)

			r.Get("/users/me", s.handleMe)

			r.Route("/problems", func(r chi.Router) {
				r.Get("/", s.handleListProblems)
				r.Post("/", s.handleCreateProblem)
				r.Get("/reviews/due", s.handleDueCards(s.ProblemReviews))
				r.Post("/reviews/{id}", s.handleReviewCard(s.ProblemReviews))
				r.Get("/reviews/stats", s.handleReviewStats(s.ProblemReviews))
				r.Get("/{id}", s.handleGetProblem)
				r.Post("/{id}/complete", s.handleCompleteProblem)
			})

			r.Route("/roadmap/steps", func(r chi.Router) {
				r.Get("/", s.handleListSteps)
				r.Post("/", s.handleCreateStep)
				r.Get("/reviews/due", s.handleDueCards(s.RoadmapReviews))
				r.Post("/reviews/{id}", s.handleReviewCard(s.RoadmapReviews))
				r.Get("/reviews/stats", s.handleReviewStats(s.RoadmapReviews))
				r.Get("/{id}", s.handleGetStep)
				r.Post("/{id}/complete", s.handleCompleteStep)
			})
		})
	})

	return r
}
