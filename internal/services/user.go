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

var ErrUserNotFound = errors.New("user not found")

type DailyStreak struct {
	UserID        uuid.UUID     `json:"user_id"`
	CurrentStreak int           `json:"current_streak"`
	LongestStreak int           `json:"longest_streak"`
	StreakData    *types.Streak `json:"streak_data,omitempty"`
}

type UserService interface {
	GetDailyStreak(ctx context.Context, userID uuid.UUID) (*DailyStreak, error)
}

type userService struct {
	db  *gorm.DB
	log *logger.Logger

	userRepo repos.UserRepo
}

func NewUserService(db *gorm.DB, baseLog *logger.Logger, userRepo repos.UserRepo) UserService {
	return &userService{
		db:       db,
		log:      baseLog.With("service", "UserService"),
		userRepo: userRepo,
	}
}

func (s *userService) GetDailyStreak(ctx context.Context, userID uuid.UUID) (*DailyStreak, error) {
	if userID == uuid.Nil {
		return nil, errors.New("missing required parameter: userID")
	}

	user, err := s.userRepo.GetWithStreak(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("load user streak: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	streak := &DailyStreak{UserID: user.ID}
	if user.Streak != nil {
		streak.CurrentStreak = user.Streak.CurrentStreak
		streak.LongestStreak = user.Streak.LongestStreak
		streak.StreakData = user.Streak
	}
	return streak, nil
}
