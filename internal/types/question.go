package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Question is a daily coding question (not roadmap-specific). Answers against
// these feed the leaderboard and the statistics aggregation.
type Question struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Question     string         `gorm:"column:question;not null" json:"question"`
	CodeSnippet  *string        `gorm:"column:code_snippet" json:"code_snippet,omitempty"`
	Hint         *string        `gorm:"column:hint" json:"hint,omitempty"`
	Difficulty   string         `gorm:"column:difficulty;not null;default:'EASY'" json:"difficulty"`
	QuestionDate *time.Time     `gorm:"column:question_date;index" json:"question_date,omitempty"`
	Tags         []*Tag         `gorm:"many2many:question_tag" json:"tags,omitempty"`
	CreatedAt    time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Question) TableName() string { return "question" }

type Tag struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name      string    `gorm:"column:name;uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (Tag) TableName() string { return "tag" }
