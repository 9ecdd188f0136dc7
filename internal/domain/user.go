package domain

import (
	"time"

	"gorm.io/gorm"
)

// Currency identifies one of the three player currencies.
type Currency string

const (
	CurrencyCoin Currency = "coin"
	CurrencyGem  Currency = "gem"
	CurrencyZP   Currency = "zp"
)

// IsValid reports whether c names a known currency.
func (c Currency) IsValid() bool {
	return c == CurrencyCoin || c == CurrencyGem || c == CurrencyZP
}

// LevelXPThreshold is the XP required to advance one level.
const LevelXPThreshold = 1000

// MaxMinerLevel is the highest miner level; upgrades are disabled there.
const MaxMinerLevel = 15

// User represents a player in the system
type User struct {
	ID             int64      `json:"user_id" gorm:"primaryKey;column:id;type:bigint"`
	Username       string     `json:"username" gorm:"index;type:varchar(64)"`
	FullName       string     `json:"full_name" gorm:"type:varchar(128)"`
	Coin           int64      `json:"coin" gorm:"not null;default:0"`
	Gem            int64      `json:"gem" gorm:"not null;default:0"`
	Zp             int64      `json:"zp" gorm:"not null;default:0"`
	Level          int        `json:"level" gorm:"not null;default:1"`
	XP             int64      `json:"xp" gorm:"column:xp;not null;default:0"`
	MinerLevel     int        `json:"miner_level" gorm:"not null;default:1"`
	LastMinerClaim *time.Time `json:"last_miner_claim,omitempty"`
	IsAdmin        bool       `json:"is_admin" gorm:"not null;default:false"`
	TotalDamage    int64      `json:"total_damage" gorm:"not null;default:0"`
	AttacksWon     int64      `json:"attacks_won" gorm:"not null;default:0"`
	CreatedAt      time.Time  `json:"created_at" gorm:"not null"`
	UpdatedAt      time.Time  `json:"updated_at" gorm:"not null"`
}

// TableName specifies the table name for User
func (u User) TableName() string {
	return "users"
}

// Balance returns the user's balance in the given currency.
func (u *User) Balance(c Currency) int64 {
	switch c {
	case CurrencyCoin:
		return u.Coin
	case CurrencyGem:
		return u.Gem
	case CurrencyZP:
		return u.Zp
	}
	return 0
}

// Credit adds amount to the given currency balance. Amount must be positive;
// callers validate before mutating.
func (u *User) Credit(c Currency, amount int64) {
	switch c {
	case CurrencyCoin:
		u.Coin += amount
	case CurrencyGem:
		u.Gem += amount
	case CurrencyZP:
		u.Zp += amount
	}
}

// Debit subtracts amount from the given currency balance. The balance is
// checked first so a failed debit leaves the user untouched.
func (u *User) Debit(c Currency, amount int64) error {
	if u.Balance(c) < amount {
		return NewAppError(ErrCodeInsufficientFunds, "Insufficient "+string(c)+" balance", 400, nil)
	}
	switch c {
	case CurrencyCoin:
		u.Coin -= amount
	case CurrencyGem:
		u.Gem -= amount
	case CurrencyZP:
		u.Zp -= amount
	}
	return nil
}

// AddXP grants experience and advances the level every LevelXPThreshold
// points, carrying the remainder over instead of zeroing it. Returns the
// number of levels gained.
func (u *User) AddXP(amount int64) int {
	u.XP += amount
	gained := 0
	for u.XP >= LevelXPThreshold {
		u.XP -= LevelXPThreshold
		u.Level++
		gained++
	}
	return gained
}

// GlobalStats holds aggregate counters across all users.
type GlobalStats struct {
	TotalUsers  int64 `json:"total_users"`
	TotalCoins  int64 `json:"total_coins"`
	TotalDamage int64 `json:"total_damage"`
}

// UserRepository defines the interface for user data
type UserRepository interface {
	GetByID(id int64) (*User, error)
	GetByIDForUpdate(id int64) (*User, error)
	GetByUsername(username string) (*User, error)
	Create(user *User) error
	Update(user *User) error
	ListIDs() ([]int64, error)
	AggregateStats() (*GlobalStats, error)
	WithTransaction(tx *gorm.DB) UserRepository
}

// Profile is the read model returned to the front end for rendering.
type Profile struct {
	User         *User               `json:"user"`
	Power        int64               `json:"power"`
	AccruedZp    int64               `json:"accrued_zp"`
	MinerRate    int64               `json:"miner_rate"`
	Inventory    []*InventoryEntry   `json:"inventory"`
	Defenses     []*DefenseStructure `json:"defenses"`
	DefenseBonus float64             `json:"defense_bonus"`
}

// UserUseCase defines the interface for user lifecycle and profile reads.
type UserUseCase interface {
	Register(userID int64, username, fullName string) (*User, error)
	GetProfile(userID int64, now time.Time) (*Profile, error)
}
