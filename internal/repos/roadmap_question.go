package repos

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/techblitz/techblitz-backend/internal/logger"
	"github.com/techblitz/techblitz-backend/internal/types"
)

type RoadmapQuestionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, questions []*types.RoadmapQuestion) ([]*types.RoadmapQuestion, error)
	// GetByRoadmapID returns the roadmap's generated questions with their
	// answer options, ordered by the question order.
	GetByRoadmapID(ctx context.Context, tx *gorm.DB, roadmapID uuid.UUID) ([]*types.RoadmapQuestion, error)
	GetByIDForRoadmap(ctx context.Context, tx *gorm.DB, questionID, roadmapID uuid.UUID) (*types.RoadmapQuestion, error)
	GetByOrder(ctx context.Context, tx *gorm.DB, roadmapID uuid.UUID, order int) (*types.RoadmapQuestion, error)
	MarkAnswered(ctx context.Context, tx *gorm.DB, questionID, answerID uuid.UUID, correct bool) error
	CountByRoadmapID(ctx context.Context, tx *gorm.DB, roadmapID uuid.UUID) (int64, error)
}

type roadmapQuestionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRoadmapQuestionRepo(db *gorm.DB, baseLog *logger.Logger) RoadmapQuestionRepo {
	repoLog := baseLog.With("repo", "RoadmapQuestionRepo")
	return &roadmapQuestionRepo{db: db, log: repoLog}
}

func (r *roadmapQuestionRepo) Create(ctx context.Context, tx *gorm.DB, questions []*types.RoadmapQuestion) ([]*types.RoadmapQuestion, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(questions) == 0 {
		return []*types.RoadmapQuestion{}, nil
	}

	if err := transaction.WithContext(ctx).Omit("Answers").Create(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *roadmapQuestionRepo) GetByRoadmapID(ctx context.Context, tx *gorm.DB, roadmapID uuid.UUID) ([]*types.RoadmapQuestion, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.RoadmapQuestion
	if roadmapID == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("roadmap_id = ?", roadmapID).
		Order("order_index ASC").
		Preload("Answers").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *roadmapQuestionRepo) GetByIDForRoadmap(ctx context.Context, tx *gorm.DB, questionID, roadmapID uuid.UUID) (*types.RoadmapQuestion, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if questionID == uuid.Nil || roadmapID == uuid.Nil {
		return nil, nil
	}

	var result types.RoadmapQuestion
	if err := transaction.WithContext(ctx).
		Where("id = ? AND roadmap_id = ?", questionID, roadmapID).
		Preload("Answers").
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (r *roadmapQuestionRepo) GetByOrder(ctx context.Context, tx *gorm.DB, roadmapID uuid.UUID, order int) (*types.RoadmapQuestion, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.RoadmapQuestion
	if err := transaction.WithContext(ctx).
		Where("roadmap_id = ? AND order_index = ?", roadmapID, order).
		Preload("Answers").
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (r *roadmapQuestionRepo) MarkAnswered(ctx context.Context, tx *gorm.DB, questionID, answerID uuid.UUID, correct bool) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	now := time.Now()
	return transaction.WithContext(ctx).
		Model(&types.RoadmapQuestion{}).
		Where("id = ?", questionID).
		Updates(map[string]any{
			"completed":      true,
			"user_correct":   correct,
			"user_answer_id": answerID,
			"answered_at":    now,
			"updated_at":     now,
		}).Error
}

func (r *roadmapQuestionRepo) CountByRoadmapID(ctx context.Context, tx *gorm.DB, roadmapID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.RoadmapQuestion{}).
		Where("roadmap_id = ?", roadmapID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
