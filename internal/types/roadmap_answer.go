package types

import (
	"time"

	"github.com/google/uuid"
)

// RoadmapAnswer is one answer choice for a generated roadmap question.
// Created in the same transaction as its question.
type RoadmapAnswer struct {
	ID         uuid.UUID        `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	QuestionID uuid.UUID        `gorm:"type:uuid;not null;index" json:"question_id"`
	Question   *RoadmapQuestion `gorm:"constraint:OnDelete:CASCADE;foreignKey:QuestionID;references:ID" json:"question,omitempty"`
	Answer     string           `gorm:"column:answer;not null" json:"answer"`
	Correct    bool             `gorm:"column:correct;not null;default:false" json:"correct"`
	CreatedAt  time.Time        `gorm:"not null;default:now()" json:"created_at"`
}

func (RoadmapAnswer) TableName() string { return "roadmap_answer" }
