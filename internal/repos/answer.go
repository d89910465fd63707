package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/techblitz/techblitz-backend/internal/logger"
	"github.com/techblitz/techblitz-backend/internal/types"
)

type AnswerRepo interface {
	Create(ctx context.Context, tx *gorm.DB, answers []*types.Answer) ([]*types.Answer, error)
	// GetFastestForQuestion returns correct answers for a question ordered by
	// time taken ascending, with their users loaded.
	GetFastestForQuestion(ctx context.Context, tx *gorm.DB, questionID uuid.UUID, limit, offset int) ([]*types.Answer, error)
	CountCorrectForQuestion(ctx context.Context, tx *gorm.DB, questionID uuid.UUID) (int64, error)
	GetByUserInRange(ctx context.Context, tx *gorm.DB, userID uuid.UUID, from, to time.Time) ([]*types.Answer, error)
}

type answerRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAnswerRepo(db *gorm.DB, baseLog *logger.Logger) AnswerRepo {
	repoLog := baseLog.With("repo", "AnswerRepo")
	return &answerRepo{db: db, log: repoLog}
}

func (r *answerRepo) Create(ctx context.Context, tx *gorm.DB, answers []*types.Answer) ([]*types.Answer, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(answers) == 0 {
		return []*types.Answer{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&answers).Error; err != nil {
		return nil, err
	}
	return answers, nil
}

func (r *answerRepo) GetFastestForQuestion(ctx context.Context, tx *gorm.DB, questionID uuid.UUID, limit, offset int) ([]*types.Answer, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Answer
	if questionID == uuid.Nil {
		return results, nil
	}

	query := transaction.WithContext(ctx).
		Where("question_id = ? AND correct = ?", questionID, true).
		Order("time_taken_ms ASC").
		Preload("User")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	if err := query.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *answerRepo) CountCorrectForQuestion(ctx context.Context, tx *gorm.DB, questionID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Answer{}).
		Where("question_id = ? AND correct = ?", questionID, true).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *answerRepo) GetByUserInRange(ctx context.Context, tx *gorm.DB, userID uuid.UUID, from, to time.Time) ([]*types.Answer, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Answer
	if userID == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND created_at >= ? AND created_at <= ?", userID, from, to).
		Order("created_at ASC").
		Preload("Question.Tags").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
