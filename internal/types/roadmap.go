package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoadmapStatusActive    = "ACTIVE"
	RoadmapStatusCreating  = "CREATING"
	RoadmapStatusCompleted = "COMPLETED"
)

// UserRoadmap is one user's personalized roadmap. The generated question set
// is produced exactly once; HasGeneratedRoadmap marks that the generation
// pass already happened.
type UserRoadmap struct {
	ID                   uuid.UUID          `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID               uuid.UUID          `gorm:"type:uuid;not null;index" json:"user_id"`
	User                 *User              `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Status               string             `gorm:"column:status;not null;default:'CREATING'" json:"status"`
	Title                string             `gorm:"column:title" json:"title"`
	Description          string             `gorm:"column:description" json:"description"`
	HasGeneratedRoadmap  bool               `gorm:"column:has_generated_roadmap;not null;default:false" json:"has_generated_roadmap"`
	CurrentQuestionIndex int                `gorm:"column:current_question_index;not null;default:1" json:"current_question_index"`
	Questions            []*RoadmapQuestion `gorm:"foreignKey:RoadmapID;references:ID" json:"questions,omitempty"`
	CreatedAt            time.Time          `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt            time.Time          `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt            gorm.DeletedAt     `gorm:"index" json:"deleted_at,omitempty"`
}

func (UserRoadmap) TableName() string { return "user_roadmap" }
