package testutil

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/techblitz/techblitz-backend/internal/types"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, email string) *types.User {
	tb.Helper()
	u := &types.User{
		ID:        uuid.New(),
		Email:     email,
		Username:  email,
		FirstName: "A",
		LastName:  "B",
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedStreak(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID, current, longest int) *types.Streak {
	tb.Helper()
	s := &types.Streak{
		ID:            uuid.New(),
		UserID:        userID,
		CurrentStreak: current,
		LongestStreak: longest,
	}
	if err := tx.WithContext(ctx).Create(s).Error; err != nil {
		tb.Fatalf("seed streak: %v", err)
	}
	return s
}

func SeedRoadmap(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID, status string) *types.UserRoadmap {
	tb.Helper()
	r := &types.UserRoadmap{
		ID:                   uuid.New(),
		UserID:               userID,
		Status:               status,
		Title:                "roadmap",
		CurrentQuestionIndex: 1,
	}
	if err := tx.WithContext(ctx).Create(r).Error; err != nil {
		tb.Fatalf("seed roadmap: %v", err)
	}
	return r
}

func SeedDefaultQuestion(tb testing.TB, ctx context.Context, tx *gorm.DB, order int) *types.DefaultRoadmapQuestion {
	tb.Helper()
	q := &types.DefaultRoadmapQuestion{
		ID:         uuid.New(),
		Title:      fmt.Sprintf("seed question %d", order),
		AITitle:    fmt.Sprintf("What does snippet %d print?", order),
		Difficulty: types.DifficultyEasy,
		Order:      order,
	}
	if err := tx.WithContext(ctx).Create(q).Error; err != nil {
		tb.Fatalf("seed default question: %v", err)
	}
	return q
}

func SeedDefaultAnswer(tb testing.TB, ctx context.Context, tx *gorm.DB, roadmapID, questionID uuid.UUID, correct bool) *types.DefaultRoadmapAnswer {
	tb.Helper()
	a := &types.DefaultRoadmapAnswer{
		ID:         uuid.New(),
		RoadmapID:  roadmapID,
		QuestionID: questionID,
		Answer:     "42",
		Correct:    correct,
	}
	if err := tx.WithContext(ctx).Create(a).Error; err != nil {
		tb.Fatalf("seed default answer: %v", err)
	}
	return a
}

// SeedGeneratedQuestion creates a roadmap question with four answers, the
// first of which is correct.
func SeedGeneratedQuestion(tb testing.TB, ctx context.Context, tx *gorm.DB, roadmapID uuid.UUID, order int) *types.RoadmapQuestion {
	tb.Helper()
	q := &types.RoadmapQuestion{
		ID:         uuid.New(),
		RoadmapID:  roadmapID,
		Question:   fmt.Sprintf("generated question %d", order),
		Difficulty: types.DifficultyEasy,
		Order:      order,
	}
	answers := make([]*types.RoadmapAnswer, 0, 4)
	for i := 0; i < 4; i++ {
		answers = append(answers, &types.RoadmapAnswer{
			ID:         uuid.New(),
			QuestionID: q.ID,
			Answer:     fmt.Sprintf("answer %d", i+1),
			Correct:    i == 0,
		})
	}
	q.CorrectAnswerID = answers[0].ID

	if err := tx.WithContext(ctx).Omit("Answers").Create(q).Error; err != nil {
		tb.Fatalf("seed generated question: %v", err)
	}
	if err := tx.WithContext(ctx).Create(&answers).Error; err != nil {
		tb.Fatalf("seed generated answers: %v", err)
	}
	q.Answers = answers
	return q
}

func SeedDailyQuestion(tb testing.TB, ctx context.Context, tx *gorm.DB, tagNames ...string) *types.Question {
	tb.Helper()
	q := &types.Question{
		ID:         uuid.New(),
		Question:   "daily question",
		Difficulty: types.DifficultyEasy,
	}
	for _, name := range tagNames {
		q.Tags = append(q.Tags, &types.Tag{ID: uuid.New(), Name: name})
	}
	if err := tx.WithContext(ctx).Create(q).Error; err != nil {
		tb.Fatalf("seed daily question: %v", err)
	}
	return q
}

func SeedAnswer(tb testing.TB, ctx context.Context, tx *gorm.DB, userID, questionID uuid.UUID, correct bool, timeTakenMS int64) *types.Answer {
	tb.Helper()
	a := &types.Answer{
		ID:          uuid.New(),
		UserID:      userID,
		QuestionID:  questionID,
		Correct:     correct,
		TimeTakenMS: timeTakenMS,
	}
	if err := tx.WithContext(ctx).Create(a).Error; err != nil {
		tb.Fatalf("seed answer: %v", err)
	}
	return a
}
