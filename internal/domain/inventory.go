package domain

import (
	"time"

	"gorm.io/gorm"
)

// ItemKind distinguishes the combat item families tracked per user.
type ItemKind string

const (
	ItemKindMissile ItemKind = "missile"
	ItemKindFighter ItemKind = "fighter"
	ItemKindDrone   ItemKind = "drone"
)

// InventoryEntry represents one (user, item) quantity row. Absence of a row
// implies quantity zero.
type InventoryEntry struct {
	UserID    int64     `json:"user_id" gorm:"primaryKey;type:bigint"`
	ItemKind  ItemKind  `json:"item_kind" gorm:"primaryKey;type:varchar(16)"`
	ItemName  string    `json:"item_name" gorm:"primaryKey;type:varchar(64)"`
	Quantity  int       `json:"quantity" gorm:"not null;default:0"`
	UpdatedAt time.Time `json:"updated_at" gorm:"not null"`
}

// TableName specifies the table name for InventoryEntry
func (e InventoryEntry) TableName() string {
	return "inventory_entries"
}

// DefenseStructure represents a leveled defensive structure owned by a user.
// The mitigation it contributes is the catalog's base bonus times Level.
type DefenseStructure struct {
	UserID    int64     `json:"user_id" gorm:"primaryKey;type:bigint"`
	Name      string    `json:"name" gorm:"primaryKey;type:varchar(64)"`
	Level     int       `json:"level" gorm:"not null;default:1"`
	UpdatedAt time.Time `json:"updated_at" gorm:"not null"`
}

// TableName specifies the table name for DefenseStructure
func (d DefenseStructure) TableName() string {
	return "user_defenses"
}

// InventoryRepository defines the interface for per-user item quantities.
type InventoryRepository interface {
	GetQuantity(userID int64, kind ItemKind, name string) (int, error)
	List(userID int64) ([]*InventoryEntry, error)
	// Add upserts the entry and increments its quantity by qty.
	Add(userID int64, kind ItemKind, name string, qty int) error
	// Remove decrements the entry quantity by qty. Callers validate the
	// available quantity first; Remove never drives a row negative.
	Remove(userID int64, kind ItemKind, name string, qty int) error
	GetDefense(userID int64, name string) (*DefenseStructure, error)
	ListDefenses(userID int64) ([]*DefenseStructure, error)
	UpsertDefense(d *DefenseStructure) error
	WithTransaction(tx *gorm.DB) InventoryRepository
}

// PurchaseResult describes a completed shop purchase.
type PurchaseResult struct {
	ItemName  string   `json:"item_name"`
	Quantity  int      `json:"quantity"`
	CoinPaid  int64    `json:"coin_paid"`
	GemPaid   int64    `json:"gem_paid"`
	NewCoin   int64    `json:"new_coin"`
	NewGem    int64    `json:"new_gem"`
	NewAmount int      `json:"new_amount"`
}

// DefenseUpgradeResult describes a completed defense purchase or upgrade.
type DefenseUpgradeResult struct {
	Name     string `json:"name"`
	NewLevel int    `json:"new_level"`
	CoinPaid int64  `json:"coin_paid"`
	NewCoin  int64  `json:"new_coin"`
}

// InventoryUseCase defines the interface for inventory business logic.
type InventoryUseCase interface {
	Purchase(userID int64, itemName string, quantity int) (*PurchaseResult, error)
	UpgradeDefense(userID int64, defenseName string) (*DefenseUpgradeResult, error)
}
