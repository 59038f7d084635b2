package domain

import "time"

// GenerationStatus is the outcome of one completion call.
type GenerationStatus string

const (
	GenerationStatusSuccess      GenerationStatus = "success"
	GenerationStatusConfigError  GenerationStatus = "config_error"
	GenerationStatusServiceError GenerationStatus = "service_error"
)

// GenerationLog records one call to the completion service. Topics and
// idea content are not stored.
type GenerationLog struct {
	ID         string           `gorm:"type:text;primaryKey" json:"id"`
	Platform   Platform         `gorm:"type:text;not null;index" json:"platform"`
	Provider   string           `gorm:"type:text;not null" json:"provider"`
	Model      string           `gorm:"type:text" json:"model"`
	Status     GenerationStatus `gorm:"type:text;not null;index" json:"status"`
	IdeaCount  int              `gorm:"default:0" json:"idea_count"`
	DurationMs int64            `json:"duration_ms"`
	ErrorLog   string           `json:"error_log,omitempty"`
	CreatedAt  time.Time        `gorm:"index" json:"created_at"`
}

// TableName returns the table for GORM.
func (GenerationLog) TableName() string {
	return "generation_logs"
}
