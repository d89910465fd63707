package types

import (
	"time"

	"github.com/google/uuid"
)

type Streak struct {
	ID             uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID         uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	User           *User      `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	StreakStart    *time.Time `gorm:"column:streak_start" json:"streak_start,omitempty"`
	StreakEnd      *time.Time `gorm:"column:streak_end" json:"streak_end,omitempty"`
	CurrentStreak  int        `gorm:"column:current_streak;not null;default:0" json:"current_streak"`
	LongestStreak  int        `gorm:"column:longest_streak;not null;default:0" json:"longest_streak"`
	CreatedAt      time.Time  `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"not null;default:now()" json:"updated_at"`
}

func (Streak) TableName() string { return "streak" }
