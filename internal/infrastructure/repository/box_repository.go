package repository

import (
	"time"

	"github.com/warzonebot/warzone-core/internal/domain"

	"gorm.io/gorm"
)

// BoxRepository implements domain.BoxRepository
type BoxRepository struct {
	db *gorm.DB
}

// NewBoxRepository creates a new box repository
func NewBoxRepository(db *gorm.DB) domain.BoxRepository {
	return &BoxRepository{db: db}
}

// WithTransaction returns a repository bound to the given transaction.
func (r *BoxRepository) WithTransaction(tx *gorm.DB) domain.BoxRepository {
	if tx == nil {
		return r
	}
	return &BoxRepository{db: tx}
}

// Create appends a box-open record.
func (r *BoxRepository) Create(record *domain.BoxOpenRecord) error {
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}
	return r.db.Create(record).Error
}

// CountSince counts a user's opens of one box kind at or after the given
// instant; the daily-limit check passes the start of the calendar day.
func (r *BoxRepository) CountSince(userID int64, boxKind string, since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&domain.BoxOpenRecord{}).
		Where("user_id = ? AND box_kind = ? AND created_at >= ?", userID, boxKind, since).
		Count(&count).Error
	return count, err
}
