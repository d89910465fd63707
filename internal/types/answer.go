package types

import (
	"time"

	"github.com/google/uuid"
)

// Answer is a user's submission against a daily question, with the time it
// took them. Correct answers ranked by TimeTakenMS form the leaderboard.
type Answer struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User        *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	QuestionID  uuid.UUID `gorm:"type:uuid;not null;index" json:"question_id"`
	Question    *Question `gorm:"constraint:OnDelete:CASCADE;foreignKey:QuestionID;references:ID" json:"question,omitempty"`
	Correct     bool      `gorm:"column:correct;not null;default:false" json:"correct"`
	TimeTakenMS int64     `gorm:"column:time_taken_ms;not null;default:0" json:"time_taken_ms"`
	CreatedAt   time.Time `gorm:"not null;default:now();index" json:"created_at"`
}

func (Answer) TableName() string { return "answer" }
