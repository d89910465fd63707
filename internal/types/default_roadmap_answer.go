package types

import (
	"time"

	"github.com/google/uuid"
)

// DefaultRoadmapAnswer records a user's answer to one of the roadmap's seed
// questions during onboarding. Read-only to the generation workflow; the
// aggregation that feeds the generator walks these in insertion order.
type DefaultRoadmapAnswer struct {
	ID         uuid.UUID               `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	RoadmapID  uuid.UUID               `gorm:"type:uuid;not null;index" json:"roadmap_id"`
	Roadmap    *UserRoadmap            `gorm:"constraint:OnDelete:CASCADE;foreignKey:RoadmapID;references:ID" json:"roadmap,omitempty"`
	QuestionID uuid.UUID               `gorm:"type:uuid;not null;index" json:"question_id"`
	Question   *DefaultRoadmapQuestion `gorm:"constraint:OnDelete:CASCADE;foreignKey:QuestionID;references:ID" json:"question,omitempty"`
	Answer     string                  `gorm:"column:answer" json:"answer"`
	Correct    bool                    `gorm:"column:correct;not null;default:false" json:"correct"`
	CreatedAt  time.Time               `gorm:"not null;default:now()" json:"created_at"`
}

func (DefaultRoadmapAnswer) TableName() string { return "default_roadmap_answer" }
