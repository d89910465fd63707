package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/techblitz/techblitz-backend/internal/logger"
	"github.com/techblitz/techblitz-backend/internal/types"
)

type RoadmapAnswerRepo interface {
	Create(ctx context.Context, tx *gorm.DB, answers []*types.RoadmapAnswer) ([]*types.RoadmapAnswer, error)
	GetByQuestionIDs(ctx context.Context, tx *gorm.DB, questionIDs []uuid.UUID) ([]*types.RoadmapAnswer, error)
}

type roadmapAnswerRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRoadmapAnswerRepo(db *gorm.DB, baseLog *logger.Logger) RoadmapAnswerRepo {
	repoLog := baseLog.With("repo", "RoadmapAnswerRepo")
	return &roadmapAnswerRepo{db: db, log: repoLog}
}

func (r *roadmapAnswerRepo) Create(ctx context.Context, tx *gorm.DB, answers []*types.RoadmapAnswer) ([]*types.RoadmapAnswer, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(answers) == 0 {
		return []*types.RoadmapAnswer{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&answers).Error; err != nil {
		return nil, err
	}
	return answers, nil
}

func (r *roadmapAnswerRepo) GetByQuestionIDs(ctx context.Context, tx *gorm.DB, questionIDs []uuid.UUID) ([]*types.RoadmapAnswer, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.RoadmapAnswer
	if len(questionIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("question_id IN ?", questionIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
