package repository

import (
	"context"

	"github.com/timmy/contentflow/internal/domain"
	"gorm.io/gorm"
)

// DefaultListLimit and MaxListLimit bound ListRecent.
const (
	DefaultListLimit = 20
	MaxListLimit     = 200
)

// GenerationLogRepository stores one row per completion call.
type GenerationLogRepository struct {
	db *gorm.DB
}

// NewGenerationLogRepository creates a new GenerationLogRepository.
func NewGenerationLogRepository(db *gorm.DB) *GenerationLogRepository {
	return &GenerationLogRepository{db: db}
}

// Record inserts entry.
func (r *GenerationLogRepository) Record(ctx context.Context, entry *domain.GenerationLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// ListRecent returns the newest rows first. limit is clamped to
// [1, MaxListLimit]; zero or negative selects DefaultListLimit.
func (r *GenerationLogRepository) ListRecent(ctx context.Context, limit int) ([]domain.GenerationLog, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	var logs []domain.GenerationLog
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}

// CountByStatus returns the number of rows per status.
func (r *GenerationLogRepository) CountByStatus(ctx context.Context) (map[domain.GenerationStatus]int64, error) {
	var rows []struct {
		Status domain.GenerationStatus
		Count  int64
	}
	err := r.db.WithContext(ctx).
		Model(&domain.GenerationLog{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[domain.GenerationStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}
