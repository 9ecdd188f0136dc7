package repository

import (
	"time"

	"github.com/warzonebot/warzone-core/internal/domain"

	"gorm.io/gorm"
)

// AttackRepository implements domain.AttackRepository
type AttackRepository struct {
	db *gorm.DB
}

// NewAttackRepository creates a new attack repository
func NewAttackRepository(db *gorm.DB) domain.AttackRepository {
	return &AttackRepository{db: db}
}

// WithTransaction returns a repository bound to the given transaction.
func (r *AttackRepository) WithTransaction(tx *gorm.DB) domain.AttackRepository {
	if tx == nil {
		return r
	}
	return &AttackRepository{db: tx}
}

// Create appends an attack record. The log is append-only; there is no
// update path.
func (r *AttackRepository) Create(record *domain.AttackRecord) error {
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}
	return r.db.Create(record).Error
}

// ListByAttacker returns the most recent attacks launched by a user.
func (r *AttackRepository) ListByAttacker(attackerID int64, limit int) ([]*domain.AttackRecord, error) {
	var records []*domain.AttackRecord
	err := r.db.Where("attacker_id = ?", attackerID).
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error
	return records, err
}
