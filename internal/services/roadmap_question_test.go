package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/techblitz/techblitz-backend/internal/repos"
	"github.com/techblitz/techblitz-backend/internal/repos/testutil"
	"github.com/techblitz/techblitz-backend/internal/types"
)

func newQuestionService(tb testing.TB, tx *gorm.DB) RoadmapQuestionService {
	tb.Helper()
	log := testutil.Logger(tb)
	return NewRoadmapQuestionService(tx, log, repos.NewRoadmapRepo(tx, log), repos.NewRoadmapQuestionRepo(tx, log))
}

func TestSubmitAnswerAdvancesToNextQuestion(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	user := testutil.SeedUser(t, ctx, tx, "submit-advance@test.dev")
	roadmap := testutil.SeedRoadmap(t, ctx, tx, user.ID, types.RoadmapStatusActive)
	q1 := testutil.SeedGeneratedQuestion(t, ctx, tx, roadmap.ID, 1)
	q2 := testutil.SeedGeneratedQuestion(t, ctx, tx, roadmap.ID, 2)

	svc := newQuestionService(t, tx)
	result, err := svc.SubmitAnswer(ctx, SubmitAnswerInput{
		UserID:       user.ID,
		RoadmapID:    roadmap.ID,
		QuestionID:   q1.ID,
		AnswerID:     q1.CorrectAnswerID,
		CurrentOrder: 1,
	})
	if err != nil {
		t.Fatalf("submit answer: %v", err)
	}

	if !result.Question.Completed {
		t.Fatalf("expected question to be marked completed")
	}
	if !result.Question.UserCorrect {
		t.Fatalf("expected correct submission to be recorded as correct")
	}
	if result.Question.AnsweredAt == nil {
		t.Fatalf("expected answered_at to be set")
	}
	if result.NextQuestion == nil || result.NextQuestion.ID != q2.ID {
		t.Fatalf("expected next question %s, got %+v", q2.ID, result.NextQuestion)
	}

	var reloaded types.UserRoadmap
	if err := tx.WithContext(ctx).Where("id = ?", roadmap.ID).First(&reloaded).Error; err != nil {
		t.Fatalf("reload roadmap: %v", err)
	}
	if reloaded.CurrentQuestionIndex != 2 {
		t.Fatalf("expected current_question_index 2, got %d", reloaded.CurrentQuestionIndex)
	}
}

func TestSubmitAnswerRecordsIncorrect(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	user := testutil.SeedUser(t, ctx, tx, "submit-wrong@test.dev")
	roadmap := testutil.SeedRoadmap(t, ctx, tx, user.ID, types.RoadmapStatusActive)
	q1 := testutil.SeedGeneratedQuestion(t, ctx, tx, roadmap.ID, 1)

	var wrong *types.RoadmapAnswer
	for _, a := range q1.Answers {
		if !a.Correct {
			wrong = a
			break
		}
	}

	svc := newQuestionService(t, tx)
	result, err := svc.SubmitAnswer(ctx, SubmitAnswerInput{
		UserID:       user.ID,
		RoadmapID:    roadmap.ID,
		QuestionID:   q1.ID,
		AnswerID:     wrong.ID,
		CurrentOrder: 1,
	})
	if err != nil {
		t.Fatalf("submit answer: %v", err)
	}
	if result.Question.UserCorrect {
		t.Fatalf("expected incorrect submission to be recorded as incorrect")
	}
	if !result.Question.Completed {
		t.Fatalf("expected question to still be marked completed")
	}
}

func TestSubmitAnswerLastQuestionHasNoNext(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	user := testutil.SeedUser(t, ctx, tx, "submit-last@test.dev")
	roadmap := testutil.SeedRoadmap(t, ctx, tx, user.ID, types.RoadmapStatusActive)
	q1 := testutil.SeedGeneratedQuestion(t, ctx, tx, roadmap.ID, 1)

	svc := newQuestionService(t, tx)
	result, err := svc.SubmitAnswer(ctx, SubmitAnswerInput{
		UserID:       user.ID,
		RoadmapID:    roadmap.ID,
		QuestionID:   q1.ID,
		AnswerID:     q1.CorrectAnswerID,
		CurrentOrder: 1,
	})
	if err != nil {
		t.Fatalf("submit answer: %v", err)
	}
	if result.NextQuestion != nil {
		t.Fatalf("expected no next question after the last one, got %s", result.NextQuestion.ID)
	}
}

func TestSubmitAnswerRejectsCompletedRoadmap(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	user := testutil.SeedUser(t, ctx, tx, "submit-completed@test.dev")
	roadmap := testutil.SeedRoadmap(t, ctx, tx, user.ID, types.RoadmapStatusCompleted)
	q1 := testutil.SeedGeneratedQuestion(t, ctx, tx, roadmap.ID, 1)

	svc := newQuestionService(t, tx)
	_, err := svc.SubmitAnswer(ctx, SubmitAnswerInput{
		UserID:       user.ID,
		RoadmapID:    roadmap.ID,
		QuestionID:   q1.ID,
		AnswerID:     q1.CorrectAnswerID,
		CurrentOrder: 1,
	})
	if !errors.Is(err, ErrRoadmapCompleted) {
		t.Fatalf("expected ErrRoadmapCompleted, got %v", err)
	}
}

func TestSubmitAnswerRejectsForeignRoadmap(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	owner := testutil.SeedUser(t, ctx, tx, "submit-owner@test.dev")
	intruder := testutil.SeedUser(t, ctx, tx, "submit-intruder@test.dev")
	roadmap := testutil.SeedRoadmap(t, ctx, tx, owner.ID, types.RoadmapStatusActive)
	q1 := testutil.SeedGeneratedQuestion(t, ctx, tx, roadmap.ID, 1)

	svc := newQuestionService(t, tx)
	_, err := svc.SubmitAnswer(ctx, SubmitAnswerInput{
		UserID:       intruder.ID,
		RoadmapID:    roadmap.ID,
		QuestionID:   q1.ID,
		AnswerID:     q1.CorrectAnswerID,
		CurrentOrder: 1,
	})
	if !errors.Is(err, ErrRoadmapNotFound) {
		t.Fatalf("expected ErrRoadmapNotFound, got %v", err)
	}
}

func TestSubmitAnswerRejectsUnrelatedAnswer(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	user := testutil.SeedUser(t, ctx, tx, "submit-foreign-answer@test.dev")
	roadmap := testutil.SeedRoadmap(t, ctx, tx, user.ID, types.RoadmapStatusActive)
	q1 := testutil.SeedGeneratedQuestion(t, ctx, tx, roadmap.ID, 1)

	svc := newQuestionService(t, tx)
	_, err := svc.SubmitAnswer(ctx, SubmitAnswerInput{
		UserID:       user.ID,
		RoadmapID:    roadmap.ID,
		QuestionID:   q1.ID,
		AnswerID:     uuid.New(),
		CurrentOrder: 1,
	})
	if !errors.Is(err, ErrAnswerNotFound) {
		t.Fatalf("expected ErrAnswerNotFound, got %v", err)
	}
}
