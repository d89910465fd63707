package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/techblitz/techblitz-backend/internal/repos"
	"github.com/techblitz/techblitz-backend/internal/repos/testutil"
	"github.com/techblitz/techblitz-backend/internal/types"
)

type fakeAIClient struct {
	raw   json.RawMessage
	err   error
	calls int
}

func (f *fakeAIClient) GenerateJSON(ctx context.Context, system, user, schemaName string, schema map[string]any) (json.RawMessage, *AIUsage, error) {
	f.calls++
	return f.raw, &AIUsage{InputTokens: 100, OutputTokens: 500}, f.err
}

func (f *fakeAIClient) Model() string { return "fake-model" }

type failingRoadmapAnswerRepo struct {
	repos.RoadmapAnswerRepo
}

func (f *failingRoadmapAnswerRepo) Create(ctx context.Context, tx *gorm.DB, answers []*types.RoadmapAnswer) ([]*types.RoadmapAnswer, error) {
	return nil, errors.New("insert rejected")
}

func newGenerationService(tb testing.TB, tx *gorm.DB, ai OpenAIClient) RoadmapGenerationService {
	tb.Helper()
	log := testutil.Logger(tb)
	return NewRoadmapGenerationService(
		tx,
		log,
		repos.NewRoadmapRepo(tx, log),
		repos.NewRoadmapQuestionRepo(tx, log),
		repos.NewRoadmapAnswerRepo(tx, log),
		repos.NewDefaultRoadmapAnswerRepo(tx, log),
		repos.NewDefaultRoadmapQuestionRepo(tx, log),
		repos.NewAICallLogRepo(tx, log),
		ai,
	)
}

func seedOnboarding(tb testing.TB, ctx context.Context, tx *gorm.DB, roadmapID uuid.UUID, answerCount int) {
	tb.Helper()
	for i := 0; i < answerCount; i++ {
		q := testutil.SeedDefaultQuestion(tb, ctx, tx, i+1)
		testutil.SeedDefaultAnswer(tb, ctx, tx, roadmapID, q.ID, i%2 == 0)
	}
}

func TestGenerateCreatesRoadmapQuestions(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	user := testutil.SeedUser(t, ctx, tx, "gen-create@test.dev")
	roadmap := testutil.SeedRoadmap(t, ctx, tx, user.ID, types.RoadmapStatusCreating)
	seedOnboarding(t, ctx, tx, roadmap.ID, 3)

	ai := &fakeAIClient{raw: validAIResponse(t, 10)}
	svc := newGenerationService(t, tx, ai)

	result, err := svc.Generate(ctx, user.ID, roadmap.ID)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if result.Status != GenerationStatusCreated {
		t.Fatalf("expected status %s, got %s", GenerationStatusCreated, result.Status)
	}
	if len(result.Questions) != 10 {
		t.Fatalf("expected 10 committed questions, got %d", len(result.Questions))
	}
	for i, q := range result.Questions {
		if q.Order != i+1 {
			t.Fatalf("question %d has order %d, want %d", i, q.Order, i+1)
		}
		if len(q.Answers) != 4 {
			t.Fatalf("question %d has %d answers, want 4", i, len(q.Answers))
		}
	}

	var reloaded types.UserRoadmap
	if err := tx.WithContext(ctx).Where("id = ?", roadmap.ID).First(&reloaded).Error; err != nil {
		t.Fatalf("reload roadmap: %v", err)
	}
	if !reloaded.HasGeneratedRoadmap {
		t.Fatalf("expected has_generated_roadmap to be set")
	}
}

func TestGenerateIsIdempotent(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	user := testutil.SeedUser(t, ctx, tx, "gen-idem@test.dev")
	roadmap := testutil.SeedRoadmap(t, ctx, tx, user.ID, types.RoadmapStatusCreating)
	seedOnboarding(t, ctx, tx, roadmap.ID, 2)

	ai := &fakeAIClient{raw: validAIResponse(t, 10)}
	svc := newGenerationService(t, tx, ai)

	first, err := svc.Generate(ctx, user.ID, roadmap.ID)
	if err != nil {
		t.Fatalf("first generate: %v", err)
	}
	if first.Status != GenerationStatusCreated {
		t.Fatalf("expected first status %s, got %s", GenerationStatusCreated, first.Status)
	}

	second, err := svc.Generate(ctx, user.ID, roadmap.ID)
	if err != nil {
		t.Fatalf("second generate: %v", err)
	}
	if second.Status != GenerationStatusGenerated {
		t.Fatalf("expected second status %s, got %s", GenerationStatusGenerated, second.Status)
	}
	if ai.calls != 1 {
		t.Fatalf("expected exactly one generator call, got %d", ai.calls)
	}
	if len(second.Questions) != len(first.Questions) {
		t.Fatalf("expected same question set, got %d then %d", len(first.Questions), len(second.Questions))
	}
}

func TestGenerateWithoutSeedAnswersIsInvalid(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	user := testutil.SeedUser(t, ctx, tx, "gen-invalid@test.dev")
	roadmap := testutil.SeedRoadmap(t, ctx, tx, user.ID, types.RoadmapStatusCreating)

	ai := &fakeAIClient{raw: validAIResponse(t, 10)}
	svc := newGenerationService(t, tx, ai)

	result, err := svc.Generate(ctx, user.ID, roadmap.ID)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if result.Status != GenerationStatusInvalid {
		t.Fatalf("expected status %s, got %s", GenerationStatusInvalid, result.Status)
	}
	if ai.calls != 0 {
		t.Fatalf("expected no generator call, got %d", ai.calls)
	}
}

func TestGenerateEmptyModelContentIsInvalid(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	user := testutil.SeedUser(t, ctx, tx, "gen-empty@test.dev")
	roadmap := testutil.SeedRoadmap(t, ctx, tx, user.ID, types.RoadmapStatusCreating)
	seedOnboarding(t, ctx, tx, roadmap.ID, 1)

	ai := &fakeAIClient{raw: nil}
	svc := newGenerationService(t, tx, ai)

	result, err := svc.Generate(ctx, user.ID, roadmap.ID)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if result.Status != GenerationStatusInvalid {
		t.Fatalf("expected status %s, got %s", GenerationStatusInvalid, result.Status)
	}
	if ai.calls != 1 {
		t.Fatalf("expected one generator call, got %d", ai.calls)
	}
}

func TestGenerateMalformedModelContentErrors(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	user := testutil.SeedUser(t, ctx, tx, "gen-malformed@test.dev")
	roadmap := testutil.SeedRoadmap(t, ctx, tx, user.ID, types.RoadmapStatusCreating)
	seedOnboarding(t, ctx, tx, roadmap.ID, 1)

	ai := &fakeAIClient{raw: json.RawMessage(`{"questionData": "nope"}`)}
	svc := newGenerationService(t, tx, ai)

	if _, err := svc.Generate(ctx, user.ID, roadmap.ID); err == nil {
		t.Fatalf("expected error for malformed model content")
	}

	var count int64
	if err := tx.WithContext(ctx).Model(&types.RoadmapQuestion{}).
		Where("roadmap_id = ?", roadmap.ID).Count(&count).Error; err != nil {
		t.Fatalf("count questions: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected no persisted questions, got %d", count)
	}
}

func TestGenerateCommitFailureRollsBackEverything(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	user := testutil.SeedUser(t, ctx, tx, "gen-rollback@test.dev")
	roadmap := testutil.SeedRoadmap(t, ctx, tx, user.ID, types.RoadmapStatusCreating)
	seedOnboarding(t, ctx, tx, roadmap.ID, 1)

	log := testutil.Logger(t)
	svc := NewRoadmapGenerationService(
		tx,
		log,
		repos.NewRoadmapRepo(tx, log),
		repos.NewRoadmapQuestionRepo(tx, log),
		&failingRoadmapAnswerRepo{repos.NewRoadmapAnswerRepo(tx, log)},
		repos.NewDefaultRoadmapAnswerRepo(tx, log),
		repos.NewDefaultRoadmapQuestionRepo(tx, log),
		repos.NewAICallLogRepo(tx, log),
		&fakeAIClient{raw: validAIResponse(t, 10)},
	)

	_, err := svc.Generate(ctx, user.ID, roadmap.ID)
	if !errors.Is(err, ErrGenerationFailed) {
		t.Fatalf("expected ErrGenerationFailed, got %v", err)
	}

	var questionCount int64
	if err := tx.WithContext(ctx).Model(&types.RoadmapQuestion{}).
		Where("roadmap_id = ?", roadmap.ID).Count(&questionCount).Error; err != nil {
		t.Fatalf("count questions: %v", err)
	}
	if questionCount != 0 {
		t.Fatalf("expected rolled-back questions, found %d", questionCount)
	}

	var reloaded types.UserRoadmap
	if err := tx.WithContext(ctx).Where("id = ?", roadmap.ID).First(&reloaded).Error; err != nil {
		t.Fatalf("reload roadmap: %v", err)
	}
	if reloaded.HasGeneratedRoadmap {
		t.Fatalf("expected has_generated_roadmap to stay false")
	}
}

func TestGenerateCompletedRoadmapReturnsHistory(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	user := testutil.SeedUser(t, ctx, tx, "gen-history@test.dev")
	roadmap := testutil.SeedRoadmap(t, ctx, tx, user.ID, types.RoadmapStatusCompleted)
	testutil.SeedGeneratedQuestion(t, ctx, tx, roadmap.ID, 1)
	testutil.SeedGeneratedQuestion(t, ctx, tx, roadmap.ID, 2)

	ai := &fakeAIClient{raw: validAIResponse(t, 10)}
	svc := newGenerationService(t, tx, ai)

	result, err := svc.Generate(ctx, user.ID, roadmap.ID)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if result.Status != GenerationStatusCompleted {
		t.Fatalf("expected status %s, got %s", GenerationStatusCompleted, result.Status)
	}
	if len(result.History) != 2 {
		t.Fatalf("expected 2 history entries, got %d", len(result.History))
	}
	if ai.calls != 0 {
		t.Fatalf("expected no generator call for a completed roadmap, got %d", ai.calls)
	}
}
