package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/techblitz/techblitz-backend/internal/logger"
	"github.com/techblitz/techblitz-backend/internal/services"
)

type fakeGenerationService struct {
	result *services.GenerationResult
	err    error
}

func (f *fakeGenerationService) PrepareGenerationData(ctx context.Context, userID, roadmapID uuid.UUID) (*services.GenerationData, error) {
	return nil, nil
}

func (f *fakeGenerationService) Generate(ctx context.Context, userID, roadmapID uuid.UUID) (*services.GenerationResult, error) {
	return f.result, f.err
}

type fakeQuestionService struct {
	result *services.SubmitAnswerResult
	err    error
}

func (f *fakeQuestionService) SubmitAnswer(ctx context.Context, in services.SubmitAnswerInput) (*services.SubmitAnswerResult, error) {
	return f.result, f.err
}

func newTestRouter(tb testing.TB, gen services.RoadmapGenerationService, q services.RoadmapQuestionService) *gin.Engine {
	tb.Helper()
	gin.SetMode(gin.TestMode)
	log, err := logger.New("test")
	if err != nil {
		tb.Fatalf("init logger: %v", err)
	}
	h := NewRoadmapHandler(log, gen, q)
	r := gin.New()
	r.POST("/api/roadmaps/:roadmapId/generate", h.Generate)
	r.POST("/api/roadmaps/:roadmapId/questions/:questionId/answer", h.SubmitAnswer)
	return r
}

func TestGenerateRequiresIdentity(t *testing.T) {
	r := newTestRouter(t, &fakeGenerationService{}, &fakeQuestionService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/roadmaps/"+uuid.NewString()+"/generate", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestGenerateInvalidRoadmapIsBadRequest(t *testing.T) {
	gen := &fakeGenerationService{result: &services.GenerationResult{Status: services.GenerationStatusInvalid}}
	r := newTestRouter(t, gen, &fakeQuestionService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/roadmaps/"+uuid.NewString()+"/generate", nil)
	req.Header.Set("X-User-ID", uuid.NewString())
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	var envelope ErrorEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode error envelope: %v", err)
	}
	if envelope.Error.Code != "roadmap_not_generatable" {
		t.Fatalf("unexpected error code %q", envelope.Error.Code)
	}
}

func TestGenerateReturnsResult(t *testing.T) {
	gen := &fakeGenerationService{result: &services.GenerationResult{Status: services.GenerationStatusCreated}}
	r := newTestRouter(t, gen, &fakeQuestionService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/roadmaps/"+uuid.NewString()+"/generate", nil)
	req.Header.Set("X-User-ID", uuid.NewString())
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var result services.GenerationResult
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if result.Status != services.GenerationStatusCreated {
		t.Fatalf("unexpected status %s", result.Status)
	}
}

func TestSubmitAnswerMapsServiceErrors(t *testing.T) {
	cases := []struct {
		err      error
		wantCode int
	}{
		{services.ErrRoadmapNotFound, http.StatusNotFound},
		{services.ErrQuestionNotFound, http.StatusNotFound},
		{services.ErrAnswerNotFound, http.StatusBadRequest},
		{services.ErrRoadmapCompleted, http.StatusConflict},
	}
	for _, tc := range cases {
		r := newTestRouter(t, &fakeGenerationService{}, &fakeQuestionService{err: tc.err})

		body := `{"answer_id": "` + uuid.NewString() + `", "current_order": 1}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost,
			"/api/roadmaps/"+uuid.NewString()+"/questions/"+uuid.NewString()+"/answer",
			strings.NewReader(body))
		req.Header.Set("X-User-ID", uuid.NewString())
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		if w.Code != tc.wantCode {
			t.Fatalf("%v: expected %d, got %d", tc.err, tc.wantCode, w.Code)
		}
	}
}

func TestSubmitAnswerRejectsBadBody(t *testing.T) {
	r := newTestRouter(t, &fakeGenerationService{}, &fakeQuestionService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost,
		"/api/roadmaps/"+uuid.NewString()+"/questions/"+uuid.NewString()+"/answer",
		strings.NewReader(`{"answer_id": "not-a-uuid", "current_order": 1}`))
	req.Header.Set("X-User-ID", uuid.NewString())
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}
