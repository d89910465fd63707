package types

import (
	"time"

	"github.com/google/uuid"
)

const (
	DifficultyEasy   = "EASY"
	DifficultyMedium = "MEDIUM"
	DifficultyHard   = "HARD"
)

// DefaultRoadmapQuestion is a seed/onboarding question used to gauge a user's
// starting knowledge before a roadmap is generated. Static reference data.
type DefaultRoadmapQuestion struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Title       string    `gorm:"column:title;not null" json:"title"`
	AITitle     string    `gorm:"column:ai_title" json:"ai_title"`
	Difficulty  string    `gorm:"column:difficulty;not null;default:'EASY'" json:"difficulty"`
	CodeSnippet *string   `gorm:"column:code_snippet" json:"code_snippet,omitempty"`
	Order       int       `gorm:"column:order_index;not null;default:0" json:"order"`
	CreatedAt   time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (DefaultRoadmapQuestion) TableName() string { return "default_roadmap_question" }
