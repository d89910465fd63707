package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/techblitz/techblitz-backend/internal/logger"
	"github.com/techblitz/techblitz-backend/internal/types"
)

type DefaultRoadmapAnswerRepo interface {
	Create(ctx context.Context, tx *gorm.DB, answers []*types.DefaultRoadmapAnswer) ([]*types.DefaultRoadmapAnswer, error)
	// GetByRoadmapID returns seed answers in insertion order; the aggregation
	// that feeds the generator depends on that order.
	GetByRoadmapID(ctx context.Context, tx *gorm.DB, roadmapID uuid.UUID) ([]*types.DefaultRoadmapAnswer, error)
}

type defaultRoadmapAnswerRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDefaultRoadmapAnswerRepo(db *gorm.DB, baseLog *logger.Logger) DefaultRoadmapAnswerRepo {
	repoLog := baseLog.With("repo", "DefaultRoadmapAnswerRepo")
	return &defaultRoadmapAnswerRepo{db: db, log: repoLog}
}

func (r *defaultRoadmapAnswerRepo) Create(ctx context.Context, tx *gorm.DB, answers []*types.DefaultRoadmapAnswer) ([]*types.DefaultRoadmapAnswer, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(answers) == 0 {
		return []*types.DefaultRoadmapAnswer{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&answers).Error; err != nil {
		return nil, err
	}
	return answers, nil
}

func (r *defaultRoadmapAnswerRepo) GetByRoadmapID(ctx context.Context, tx *gorm.DB, roadmapID uuid.UUID) ([]*types.DefaultRoadmapAnswer, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.DefaultRoadmapAnswer
	if roadmapID == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("roadmap_id = ?", roadmapID).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
