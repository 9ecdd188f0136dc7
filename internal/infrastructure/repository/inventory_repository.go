package repository

import (
	"errors"
	"time"

	"github.com/warzonebot/warzone-core/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InventoryRepository implements domain.InventoryRepository
type InventoryRepository struct {
	db *gorm.DB
}

// NewInventoryRepository creates a new inventory repository
func NewInventoryRepository(db *gorm.DB) domain.InventoryRepository {
	return &InventoryRepository{db: db}
}

// WithTransaction returns a repository bound to the given transaction.
func (r *InventoryRepository) WithTransaction(tx *gorm.DB) domain.InventoryRepository {
	if tx == nil {
		return r
	}
	return &InventoryRepository{db: tx}
}

// GetQuantity returns the owned quantity for one item; a missing row is zero.
func (r *InventoryRepository) GetQuantity(userID int64, kind domain.ItemKind, name string) (int, error) {
	var entry domain.InventoryEntry
	result := r.db.Where("user_id = ? AND item_kind = ? AND item_name = ?", userID, kind, name).First(&entry)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, result.Error
	}
	return entry.Quantity, nil
}

// List returns every non-zero inventory entry for a user.
func (r *InventoryRepository) List(userID int64) ([]*domain.InventoryEntry, error) {
	var entries []*domain.InventoryEntry
	err := r.db.Where("user_id = ? AND quantity > 0", userID).
		Order("item_kind, item_name").
		Find(&entries).Error
	return entries, err
}

// Add upserts the entry and increments its quantity by qty.
func (r *InventoryRepository) Add(userID int64, kind domain.ItemKind, name string, qty int) error {
	entry := domain.InventoryEntry{
		UserID:    userID,
		ItemKind:  kind,
		ItemName:  name,
		Quantity:  qty,
		UpdatedAt: time.Now(),
	}
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "item_kind"}, {Name: "item_name"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity":   gorm.Expr("inventory_entries.quantity + ?", qty),
			"updated_at": time.Now(),
		}),
	}).Create(&entry).Error
}

// Remove decrements the entry quantity. The guard keeps a concurrent
// double-spend from driving a row negative even outside a user lock.
func (r *InventoryRepository) Remove(userID int64, kind domain.ItemKind, name string, qty int) error {
	result := r.db.Model(&domain.InventoryEntry{}).
		Where("user_id = ? AND item_kind = ? AND item_name = ? AND quantity >= ?", userID, kind, name, qty).
		Updates(map[string]interface{}{
			"quantity":   gorm.Expr("quantity - ?", qty),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.NewAppError(domain.ErrCodeMissingRequirements, "Not enough items to consume", 400, nil)
	}
	return nil
}

// GetDefense returns one defense structure row, nil when not owned.
func (r *InventoryRepository) GetDefense(userID int64, name string) (*domain.DefenseStructure, error) {
	var def domain.DefenseStructure
	result := r.db.Where("user_id = ? AND name = ?", userID, name).First(&def)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &def, nil
}

// ListDefenses returns every defense structure a user owns.
func (r *InventoryRepository) ListDefenses(userID int64) ([]*domain.DefenseStructure, error) {
	var defs []*domain.DefenseStructure
	err := r.db.Where("user_id = ?", userID).Order("name").Find(&defs).Error
	return defs, err
}

// UpsertDefense creates or updates a defense structure row.
func (r *InventoryRepository) UpsertDefense(d *domain.DefenseStructure) error {
	d.UpdatedAt = time.Now()
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"level", "updated_at"}),
	}).Create(d).Error
}
