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

type RoadmapRepo interface {
	Create(ctx context.Context, tx *gorm.DB, roadmaps []*types.UserRoadmap) ([]*types.UserRoadmap, error)
	// GetByIDForUser returns the roadmap owned by userID, or nil when no such
	// row exists. An optional status narrows the lookup.
	GetByIDForUser(ctx context.Context, tx *gorm.DB, roadmapID, userID uuid.UUID, status string) (*types.UserRoadmap, error)
	SetGenerated(ctx context.Context, tx *gorm.DB, roadmapID uuid.UUID) error
	SetCurrentQuestionIndex(ctx context.Context, tx *gorm.DB, roadmapID uuid.UUID, index int) error
	// LockForGeneration takes a transaction-scoped advisory lock keyed by the
	// roadmap id. Must be called inside a transaction; the lock releases on
	// commit or rollback.
	LockForGeneration(ctx context.Context, tx *gorm.DB, roadmapID uuid.UUID) error
}

type roadmapRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRoadmapRepo(db *gorm.DB, baseLog *logger.Logger) RoadmapRepo {
	repoLog := baseLog.With("repo", "RoadmapRepo")
	return &roadmapRepo{db: db, log: repoLog}
}

func (r *roadmapRepo) Create(ctx context.Context, tx *gorm.DB, roadmaps []*types.UserRoadmap) ([]*types.UserRoadmap, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(roadmaps) == 0 {
		return []*types.UserRoadmap{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&roadmaps).Error; err != nil {
		return nil, err
	}
	return roadmaps, nil
}

func (r *roadmapRepo) GetByIDForUser(ctx context.Context, tx *gorm.DB, roadmapID, userID uuid.UUID, status string) (*types.UserRoadmap, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if roadmapID == uuid.Nil || userID == uuid.Nil {
		return nil, nil
	}

	query := transaction.WithContext(ctx).
		Where("id = ? AND user_id = ?", roadmapID, userID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var result types.UserRoadmap
	if err := query.First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (r *roadmapRepo) SetGenerated(ctx context.Context, tx *gorm.DB, roadmapID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Model(&types.UserRoadmap{}).
		Where("id = ?", roadmapID).
		Updates(map[string]any{
			"has_generated_roadmap": true,
			"updated_at":            time.Now(),
		}).Error
}

func (r *roadmapRepo) SetCurrentQuestionIndex(ctx context.Context, tx *gorm.DB, roadmapID uuid.UUID, index int) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Model(&types.UserRoadmap{}).
		Where("id = ?", roadmapID).
		Updates(map[string]any{
			"current_question_index": index,
			"updated_at":             time.Now(),
		}).Error
}

func (r *roadmapRepo) LockForGeneration(ctx context.Context, tx *gorm.DB, roadmapID uuid.UUID) error {
	if tx == nil {
		return errors.New("advisory lock requires a transaction")
	}
	return tx.WithContext(ctx).
		Exec("SELECT pg_advisory_xact_lock(hashtext(?))", roadmapID.String()).Error
}
