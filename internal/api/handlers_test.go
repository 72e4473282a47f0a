package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/prepdeck/prepdeck/internal/auth"
	"github.com/prepdeck/prepdeck/internal/models"
	"github.com/prepdeck/prepdeck/internal/repository"
	"github.com/prepdeck/prepdeck/internal/repository/sqlite"
	"github.com/prepdeck/prepdeck/internal/services"
	"github.com/prepdeck/prepdeck/internal/testutil"
	"github.com/prepdeck/prepdeck/internal/worker"
)

type APISuite struct {
	suite.Suite
	router       http.Handler
	pool         *worker.Pool
	problemCards repository.CardRepository
	now          time.Time
	closeDB      func()
}

func (s *APISuite) SetupTest() {
	db := testutil.NewTestDB(s.T())
	s.closeDB = func() { testutil.MustClose(s.T(), db) }

	s.now = time.Date(2026, 7, 20, 12, 0, 0, 0, time.UTC)
	clock := services.WithNow(func() time.Time { return s.now })

	s.problemCards = sqlite.NewProblemCardRepository(db)
	problemReviews := services.NewReviewService(s.problemCards, "problem", clock)
	roadmapReviews := services.NewReviewService(sqlite.NewRoadmapCardRepository(db), "roadmap_step", clock)

	s.pool = worker.NewPool(1, 16)
	s.pool.Start(context.Background())

	srv := &Server{
		UserService:    services.NewUserService(sqlite.NewUserRepository(db)),
		ProblemService: services.NewProblemService(sqlite.NewProblemRepository(db)),
		RoadmapService: services.NewRoadmapService(sqlite.NewRoadmapStepRepository(db)),
		ProblemReviews: problemReviews,
		RoadmapReviews: roadmapReviews,
		CompletionPool: s.pool,
		Tokens:         auth.New("test-secret", time.Hour),
		DB:             db,
		DueCardLimit:   50,
	}
	s.router = srv.Routes()
}

func (s *APISuite) TearDownTest() {
	s.pool.Stop()
	s.closeDB()
}

func (s *APISuite) request(method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *APISuite) decode(rec *httptest.ResponseRecorder, dst any) {
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), dst))
}

// register creates a user and returns its auth token.
func (s *APISuite) register(username string) string {
	rec := s.request(http.MethodPost, "/api/users", "", map[string]any{"username": username})
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	s.decode(rec, &resp)
	s.Require().NotEmpty(resp.Token)
	return resp.Token
}

// createProblem inserts a problem through the API and returns its id.
func (s *APISuite) createProblem(token, slug string) int64 {
	rec := s.request(http.MethodPost, "/api/problems", token, map[string]any{
		"slug": slug, "title": slug,
	})
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())

	var problem models.Problem
	s.decode(rec, &problem)
	return problem.ID
}

func (s *APISuite) errorCode(rec *httptest.ResponseRecorder) string {
	var resp struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	s.decode(rec, &resp)
	return resp.Error.Code
}

func (s *APISuite) TestRegisterAndMe() {
	token := s.register("ada")

	rec := s.request(http.MethodGet, "/api/users/me", token, nil)
	s.Equal(http.StatusOK, rec.Code)

	var user models.User
	s.decode(rec, &user)
	s.Equal("ada", user.Username)
	s.NotZero(user.ID)
}

func (s *APISuite) TestRegisterIsIdempotentOnUsername() {
	s.register("ada")
	token := s.register("ada")

	rec := s.request(http.MethodGet, "/api/users/me", token, nil)
	s.Equal(http.StatusOK, rec.Code)
}

func (s *APISuite) TestAuthRequired() {
	rec := s.request(http.MethodGet, "/api/users/me", "", nil)
	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Equal("UNAUTHORIZED", s.errorCode(rec))

	rec = s.request(http.MethodGet, "/api/users/me", "not-a-token", nil)
	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *APISuite) TestCreateAndListProblems() {
	token := s.register("ada")

	rec := s.request(http.MethodPost, "/api/problems", token, map[string]any{
		"slug":       "two-sum",
		"title":      "Two Sum",
		"difficulty": "easy",
		"topic":      "arrays",
	})
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())

	var problem models.Problem
	s.decode(rec, &problem)
	s.Equal("two-sum", problem.Slug)

	rec = s.request(http.MethodGet, "/api/problems?difficulty=easy", token, nil)
	s.Equal(http.StatusOK, rec.Code)

	var list struct {
		Problems []models.Problem `json:"problems"`
		Total    int              `json:"total"`
	}
	s.decode(rec, &list)
	s.Equal(1, list.Total)
	s.Len(list.Problems, 1)
}

func (s *APISuite) TestCreateProblemRejectsUnknownDifficulty() {
	token := s.register("ada")

	rec := s.request(http.MethodPost, "/api/problems", token, map[string]any{
		"slug":       "two-sum",
		"title":      "Two Sum",
		"difficulty": "brutal",
	})
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal("VALIDATION_ERROR", s.errorCode(rec))
}

func (s *APISuite) TestCompleteProblemCreatesCard() {
	token := s.register("ada")

	rec := s.request(http.MethodPost, "/api/problems", token, map[string]any{
		"slug": "two-sum", "title": "Two Sum",
	})
	s.Require().Equal(http.StatusCreated, rec.Code)
	var problem models.Problem
	s.decode(rec, &problem)

	rec = s.request(http.MethodPost, "/api/problems/1/complete", token, nil)
	s.Require().Equal(http.StatusAccepted, rec.Code, rec.Body.String())

	// Card creation runs on the worker pool; wait for it to land.
	var me models.User
	s.decode(s.request(http.MethodGet, "/api/users/me", token, nil), &me)
	s.Require().Eventually(func() bool {
		card, err := s.problemCards.Get(context.Background(), 1, me.ID)
		return err == nil && card != nil
	}, 2*time.Second, 10*time.Millisecond)

	card, err := s.problemCards.Get(context.Background(), 1, me.ID)
	s.Require().NoError(err)
	s.Equal(2.5, card.EaseFactor)
	s.Equal(1, card.IntervalDays)
	s.Equal(0, card.Repetitions)
	s.Equal("2026-07-21", card.NextReviewDate.String())
}

func (s *APISuite) TestCompleteMissingProblem() {
	token := s.register("ada")

	rec := s.request(http.MethodPost, "/api/problems/999/complete", token, nil)
	s.Equal(http.StatusNotFound, rec.Code)
	s.Equal("NOT_FOUND", s.errorCode(rec))
}

func (s *APISuite) TestDueAndReviewFlow() {
	token := s.register("ada")
	var me models.User
	s.decode(s.request(http.MethodGet, "/api/users/me", token, nil), &me)

	problemID := s.createProblem(token, "two-sum")

	// Seed a card that became due yesterday.
	card, _, err := s.problemCards.CreateIfAbsent(context.Background(), models.ReviewCard{
		UserID:         me.ID,
		ItemID:         problemID,
		EaseFactor:     2.6,
		IntervalDays:   6,
		Repetitions:    2,
		NextReviewDate: models.DateOf(s.now).AddDays(-1),
		CreatedAt:      s.now,
	})
	s.Require().NoError(err)

	rec := s.request(http.MethodGet, "/api/problems/reviews/due", token, nil)
	s.Require().Equal(http.StatusOK, rec.Code)

	var due struct {
		Cards []models.ReviewCard `json:"cards"`
		Count int                 `json:"count"`
	}
	s.decode(rec, &due)
	s.Require().Equal(1, due.Count)
	s.Equal(card.ID, due.Cards[0].ID)

	rec = s.request(http.MethodPost, fmt.Sprintf("/api/problems/reviews/%d", card.ID), token, map[string]any{"quality": 5})
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	var updated models.ReviewCard
	s.decode(rec, &updated)
	s.Equal(3, updated.Repetitions)
	s.Equal(16, updated.IntervalDays)
	s.Equal("2026-08-05", updated.NextReviewDate.String())

	// No longer due after the successful review.
	s.decode(s.request(http.MethodGet, "/api/problems/reviews/due", token, nil), &due)
	s.Equal(0, due.Count)
}

func (s *APISuite) TestReviewOtherUsersCard() {
	adaToken := s.register("ada")
	bobToken := s.register("bob")

	var ada models.User
	s.decode(s.request(http.MethodGet, "/api/users/me", adaToken, nil), &ada)

	problemID := s.createProblem(adaToken, "two-sum")

	card, _, err := s.problemCards.CreateIfAbsent(context.Background(), models.ReviewCard{
		UserID:         ada.ID,
		ItemID:         problemID,
		EaseFactor:     2.5,
		IntervalDays:   1,
		Repetitions:    0,
		NextReviewDate: models.DateOf(s.now),
		CreatedAt:      s.now,
	})
	s.Require().NoError(err)

	rec := s.request(http.MethodPost, fmt.Sprintf("/api/problems/reviews/%d", card.ID), bobToken, map[string]any{"quality": 5})
	s.Equal(http.StatusNotFound, rec.Code)
	s.Equal("NOT_FOUND", s.errorCode(rec))
}

func (s *APISuite) TestReviewRejectsMalformedBody() {
	token := s.register("ada")

	req := httptest.NewRequest(http.MethodPost, "/api/problems/reviews/1", bytes.NewBufferString("{oops"))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal("BAD_REQUEST", s.errorCode(rec))
}

func (s *APISuite) TestReviewRequiresQuality() {
	token := s.register("ada")

	rec := s.request(http.MethodPost, "/api/problems/reviews/1", token, map[string]any{})
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal("VALIDATION_ERROR", s.errorCode(rec))
}

func (s *APISuite) TestReviewClampsOutOfRangeQuality() {
	token := s.register("ada")
	var me models.User
	s.decode(s.request(http.MethodGet, "/api/users/me", token, nil), &me)

	problemID := s.createProblem(token, "two-sum")

	card, _, err := s.problemCards.CreateIfAbsent(context.Background(), models.ReviewCard{
		UserID:         me.ID,
		ItemID:         problemID,
		EaseFactor:     2.5,
		IntervalDays:   1,
		Repetitions:    0,
		NextReviewDate: models.DateOf(s.now),
		CreatedAt:      s.now,
	})
	s.Require().NoError(err)

	// 99 is clamped to 5, not rejected.
	rec := s.request(http.MethodPost, fmt.Sprintf("/api/problems/reviews/%d", card.ID), token, map[string]any{"quality": 99})
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	var updated models.ReviewCard
	s.decode(rec, &updated)
	s.Require().NotNil(updated.LastQuality)
	s.Equal(5, *updated.LastQuality)

	// An explicit 0 is a valid (failed) grade, not a missing field.
	rec = s.request(http.MethodPost, fmt.Sprintf("/api/problems/reviews/%d", card.ID), token, map[string]any{"quality": 0})
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	s.decode(rec, &updated)
	s.Equal(0, updated.Repetitions)
	s.Equal(1, updated.IntervalDays)
}

func (s *APISuite) TestRoadmapStepsAndStats() {
	token := s.register("ada")

	rec := s.request(http.MethodPost, "/api/roadmap/steps", token, map[string]any{
		"roadmap":  "backend",
		"position": 1,
		"title":    "Learn HTTP",
	})
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.request(http.MethodGet, "/api/roadmap/steps?roadmap=backend", token, nil)
	s.Require().Equal(http.StatusOK, rec.Code)

	var list struct {
		Steps []models.RoadmapStep `json:"steps"`
		Count int                  `json:"count"`
	}
	s.decode(rec, &list)
	s.Equal(1, list.Count)
	s.Equal("Learn HTTP", list.Steps[0].Title)

	rec = s.request(http.MethodGet, "/api/roadmap/steps/reviews/stats", token, nil)
	s.Require().Equal(http.StatusOK, rec.Code)

	var stats models.ReviewStats
	s.decode(rec, &stats)
	s.Equal(0, stats.TotalCards)
}

func (s *APISuite) TestHealthEndpoints() {
	rec := s.request(http.MethodGet, "/healthz", "", nil)
	s.Equal(http.StatusOK, rec.Code)

	rec = s.request(http.MethodGet, "/readyz", "", nil)
	s.Equal(http.StatusOK, rec.Code)
}

func TestAPISuite(t *testing.T) {
	suite.Run(t, new(APISuite))
}
