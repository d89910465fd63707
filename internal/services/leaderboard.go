package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/techblitz/techblitz-backend/internal/clients/redis"
	"github.com/techblitz/techblitz-backend/internal/logger"
	"github.com/techblitz/techblitz-backend/internal/repos"
	"github.com/techblitz/techblitz-backend/internal/types"
)

var ErrBadLeaderboardQuery = errors.New("either numberOfResults or both page and pageSize must be provided")

const leaderboardCacheTTL = 30 * time.Second

type FastestTimesInput struct {
	QuestionID uuid.UUID
	// NumberOfResults requests a fixed-size result. Mutually exclusive with
	// Page/PageSize.
	NumberOfResults *int
	Page            *int
	PageSize        *int
}

type FastestTimesResult struct {
	FastestTimes []*types.Answer `json:"fastest_times"`
	Total        int64           `json:"total"`
	Page         int             `json:"page"`
	PageSize     int64           `json:"page_size"`
	TotalPages   int64           `json:"total_pages"`
}

type LeaderboardService interface {
	// GetFastestTimes returns the fastest correct answers for a question,
	// either as a fixed top-N or paginated.
	GetFastestTimes(ctx context.Context, in FastestTimesInput) (*FastestTimesResult, error)
}

type leaderboardService struct {
	db  *gorm.DB
	log *logger.Logger

	answerRepo repos.AnswerRepo
	cache      redis.Cache
}

// NewLeaderboardService builds the leaderboard service. cache may be nil;
// results are then always served from the database.
func NewLeaderboardService(db *gorm.DB, baseLog *logger.Logger, answerRepo repos.AnswerRepo, cache redis.Cache) LeaderboardService {
	return &leaderboardService{
		db:         db,
		log:        baseLog.With("service", "LeaderboardService"),
		answerRepo: answerRepo,
		cache:      cache,
	}
}

func (s *leaderboardService) GetFastestTimes(ctx context.Context, in FastestTimesInput) (*FastestTimesResult, error) {
	if in.QuestionID == uuid.Nil {
		return nil, errors.New("missing required parameter: questionID")
	}

	var limit, offset, page int
	switch {
	case in.NumberOfResults != nil:
		limit = *in.NumberOfResults
		page = 1
	case in.Page != nil && in.PageSize != nil:
		limit = *in.PageSize
		offset = (*in.Page - 1) * *in.PageSize
		page = *in.Page
	default:
		return nil, ErrBadLeaderboardQuery
	}

	cacheKey := fmt.Sprintf("leaderboard:fastest:%s:%d:%d", in.QuestionID, limit, offset)
	if s.cache != nil {
		var cached FastestTimesResult
		hit, err := s.cache.Get(ctx, cacheKey, &cached)
		if err != nil {
			s.log.Warn("Leaderboard cache read failed", "key", cacheKey, "error", err)
		}
		if hit {
			return &cached, nil
		}
	}

	answers, err := s.answerRepo.GetFastestForQuestion(ctx, nil, in.QuestionID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("load fastest answers: %w", err)
	}
	total, err := s.answerRepo.CountCorrectForQuestion(ctx, nil, in.QuestionID)
	if err != nil {
		return nil, fmt.Errorf("count correct answers: %w", err)
	}

	pageSize := total
	if in.PageSize != nil {
		pageSize = int64(*in.PageSize)
	}
	var totalPages int64
	if pageSize > 0 {
		totalPages = int64(math.Ceil(float64(total) / float64(pageSize)))
	}

	result := &FastestTimesResult{
		FastestTimes: answers,
		Total:        total,
		Page:         page,
		PageSize:     pageSize,
		TotalPages:   totalPages,
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, result, leaderboardCacheTTL); err != nil {
			s.log.Warn("Leaderboard cache write failed", "key", cacheKey, "error", err)
		}
	}

	return result, nil
}
