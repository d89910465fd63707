package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/techblitz/techblitz-backend/internal/logger"
	"github.com/techblitz/techblitz-backend/internal/repos"
	"github.com/techblitz/techblitz-backend/internal/types"
)

var (
	ErrRoadmapNotFound  = errors.New("roadmap not found")
	ErrRoadmapCompleted = errors.New("roadmap is completed and read-only")
	ErrQuestionNotFound = errors.New("roadmap question not found")
	ErrAnswerNotFound   = errors.New("answer does not belong to question")
)

type SubmitAnswerInput struct {
	UserID       uuid.UUID
	RoadmapID    uuid.UUID
	QuestionID   uuid.UUID
	AnswerID     uuid.UUID
	CurrentOrder int
}

type SubmitAnswerResult struct {
	// Question is the answered question with its completion state recorded.
	Question *types.RoadmapQuestion `json:"question"`
	// NextQuestion is the question at the following order, or nil when the
	// submitted question was the last of the roadmap.
	NextQuestion *types.RoadmapQuestion `json:"next_question,omitempty"`
}

type RoadmapQuestionService interface {
	// SubmitAnswer records one answer against a generated roadmap question
	// and returns the next unanswered question in sequence.
	SubmitAnswer(ctx context.Context, in SubmitAnswerInput) (*SubmitAnswerResult, error)
}

type roadmapQuestionService struct {
	db  *gorm.DB
	log *logger.Logger

	roadmapRepo  repos.RoadmapRepo
	questionRepo repos.RoadmapQuestionRepo
}

func NewRoadmapQuestionService(
	db *gorm.DB,
	baseLog *logger.Logger,
	roadmapRepo repos.RoadmapRepo,
	questionRepo repos.RoadmapQuestionRepo,
) RoadmapQuestionService {
	return &roadmapQuestionService{
		db:           db,
		log:          baseLog.With("service", "RoadmapQuestionService"),
		roadmapRepo:  roadmapRepo,
		questionRepo: questionRepo,
	}
}

func (s *roadmapQuestionService) SubmitAnswer(ctx context.Context, in SubmitAnswerInput) (*SubmitAnswerResult, error) {
	roadmap, err := s.roadmapRepo.GetByIDForUser(ctx, nil, in.RoadmapID, in.UserID, "")
	if err != nil {
		return nil, fmt.Errorf("load roadmap: %w", err)
	}
	if roadmap == nil {
		return nil, ErrRoadmapNotFound
	}
	if roadmap.Status == types.RoadmapStatusCompleted {
		return nil, ErrRoadmapCompleted
	}

	question, err := s.questionRepo.GetByIDForRoadmap(ctx, nil, in.QuestionID, in.RoadmapID)
	if err != nil {
		return nil, fmt.Errorf("load question: %w", err)
	}
	if question == nil {
		return nil, ErrQuestionNotFound
	}

	owned := false
	for _, a := range question.Answers {
		if a.ID == in.AnswerID {
			owned = true
			break
		}
	}
	if !owned {
		return nil, ErrAnswerNotFound
	}

	correct := question.CorrectAnswerID == in.AnswerID

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.questionRepo.MarkAnswered(ctx, tx, question.ID, in.AnswerID, correct); err != nil {
			return fmt.Errorf("mark question answered: %w", err)
		}
		if err := s.roadmapRepo.SetCurrentQuestionIndex(ctx, tx, in.RoadmapID, in.CurrentOrder+1); err != nil {
			return fmt.Errorf("advance question index: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	answered, err := s.questionRepo.GetByIDForRoadmap(ctx, nil, question.ID, in.RoadmapID)
	if err != nil {
		return nil, fmt.Errorf("reload answered question: %w", err)
	}

	next, err := s.questionRepo.GetByOrder(ctx, nil, in.RoadmapID, in.CurrentOrder+1)
	if err != nil {
		return nil, fmt.Errorf("load next question: %w", err)
	}

	return &SubmitAnswerResult{Question: answered, NextQuestion: next}, nil
}
