package types

import (
	"time"

	"github.com/google/uuid"
)

// RoadmapQuestion is one AI-generated question belonging to a roadmap.
// Order is a strict 1-based sequence per roadmap; the composite unique index
// on (roadmap_id, order_index) also rejects a second generation commit for
// the same roadmap.
type RoadmapQuestion struct {
	ID              uuid.UUID        `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	RoadmapID       uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_roadmap_question_order" json:"roadmap_id"`
	Roadmap         *UserRoadmap     `gorm:"constraint:OnDelete:CASCADE;foreignKey:RoadmapID;references:ID" json:"roadmap,omitempty"`
	Question        string           `gorm:"column:question;not null" json:"question"`
	CorrectAnswerID uuid.UUID        `gorm:"type:uuid;not null;column:correct_answer_id" json:"correct_answer_id"`
	CodeSnippet     *string          `gorm:"column:code_snippet" json:"code_snippet,omitempty"`
	Hint            *string          `gorm:"column:hint" json:"hint,omitempty"`
	Difficulty      string           `gorm:"column:difficulty;not null;default:'EASY'" json:"difficulty"`
	Completed       bool             `gorm:"column:completed;not null;default:false" json:"completed"`
	UserCorrect     bool             `gorm:"column:user_correct;not null;default:false" json:"user_correct"`
	UserAnswerID    *uuid.UUID       `gorm:"type:uuid;column:user_answer_id" json:"user_answer_id,omitempty"`
	AnsweredAt      *time.Time       `gorm:"column:answered_at" json:"answered_at,omitempty"`
	Order           int              `gorm:"column:order_index;not null;uniqueIndex:idx_roadmap_question_order" json:"order"`
	Answers         []*RoadmapAnswer `gorm:"foreignKey:QuestionID;references:ID" json:"answers,omitempty"`
	CreatedAt       time.Time        `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt       time.Time        `gorm:"not null;default:now()" json:"updated_at"`
}

func (RoadmapQuestion) TableName() string { return "roadmap_question" }
