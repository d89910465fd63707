package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/techblitz/techblitz-backend/internal/logger"
	"github.com/techblitz/techblitz-backend/internal/types"
)

type DefaultRoadmapQuestionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, questions []*types.DefaultRoadmapQuestion) ([]*types.DefaultRoadmapQuestion, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, questionIDs []uuid.UUID) ([]*types.DefaultRoadmapQuestion, error)
}

type defaultRoadmapQuestionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDefaultRoadmapQuestionRepo(db *gorm.DB, baseLog *logger.Logger) DefaultRoadmapQuestionRepo {
	repoLog := baseLog.With("repo", "DefaultRoadmapQuestionRepo")
	return &defaultRoadmapQuestionRepo{db: db, log: repoLog}
}

func (r *defaultRoadmapQuestionRepo) Create(ctx context.Context, tx *gorm.DB, questions []*types.DefaultRoadmapQuestion) ([]*types.DefaultRoadmapQuestion, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(questions) == 0 {
		return []*types.DefaultRoadmapQuestion{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *defaultRoadmapQuestionRepo) GetByIDs(ctx context.Context, tx *gorm.DB, questionIDs []uuid.UUID) ([]*types.DefaultRoadmapQuestion, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.DefaultRoadmapQuestion
	if len(questionIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", questionIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
