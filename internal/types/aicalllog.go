package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AICallLog is an audit row for a single outbound model call. Written
// best-effort; a failed log write never fails the calling workflow.
type AICallLog struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID       *uuid.UUID     `gorm:"type:uuid;index" json:"user_id,omitempty"`
	Kind         string         `gorm:"column:kind;not null;index" json:"kind"`
	Model        string         `gorm:"column:model;not null" json:"model"`
	LatencyMS    int64          `gorm:"column:latency_ms;not null;default:0" json:"latency_ms"`
	InputTokens  int            `gorm:"column:input_tokens;not null;default:0" json:"input_tokens"`
	OutputTokens int            `gorm:"column:output_tokens;not null;default:0" json:"output_tokens"`
	Success      bool           `gorm:"column:success;not null;default:false" json:"success"`
	Error        string         `gorm:"column:error" json:"error,omitempty"`
	Metadata     datatypes.JSON `gorm:"type:jsonb;column:metadata" json:"metadata,omitempty"`
	CreatedAt    time.Time      `gorm:"not null;default:now()" json:"created_at"`
}

func (AICallLog) TableName() string { return "ai_call_log" }
