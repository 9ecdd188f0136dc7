package domain

import (
	"time"

	"gorm.io/gorm"
)

// RewardKind tags the variant of a box reward.
type RewardKind string

const (
	RewardCoin   RewardKind = "coin"
	RewardGem    RewardKind = "gem"
	RewardZp     RewardKind = "zp"
	RewardBundle RewardKind = "bundle"
)

// Reward is a tagged payout. Only the fields implied by Kind are set; a
// bundle carries coin and zp together.
type Reward struct {
	Kind RewardKind `json:"kind"`
	Coin int64      `json:"coin,omitempty"`
	Gem  int64      `json:"gem,omitempty"`
	Zp   int64      `json:"zp,omitempty"`
}

// Apply credits every currency the reward carries.
func (r Reward) Apply(u *User) {
	if r.Coin > 0 {
		u.Credit(CurrencyCoin, r.Coin)
	}
	if r.Gem > 0 {
		u.Credit(CurrencyGem, r.Gem)
	}
	if r.Zp > 0 {
		u.Credit(CurrencyZP, r.Zp)
	}
}

// BoxOpenRecord is an append-only audit row for an opened box. The free-box
// daily limit is enforced by counting these per calendar day.
type BoxOpenRecord struct {
	ID           int64      `json:"box_open_id" gorm:"primaryKey;type:bigint;autoIncrement"`
	UserID       int64      `json:"user_id" gorm:"index;not null;type:bigint"`
	BoxKind      string     `json:"box_kind" gorm:"type:varchar(32);not null"`
	RewardKind   RewardKind `json:"reward_kind" gorm:"type:varchar(16);not null"`
	RewardAmount int64      `json:"reward_amount" gorm:"not null"`
	CreatedAt    time.Time  `json:"created_at" gorm:"index;not null"`
}

// TableName specifies the table name for BoxOpenRecord
func (b BoxOpenRecord) TableName() string {
	return "box_open_records"
}

// BoxRepository defines the interface for the box audit log.
type BoxRepository interface {
	Create(record *BoxOpenRecord) error
	CountSince(userID int64, boxKind string, since time.Time) (int64, error)
	WithTransaction(tx *gorm.DB) BoxRepository
}

// BoxOpenResult describes an opened box to the caller.
type BoxOpenResult struct {
	BoxKind  string `json:"box_kind"`
	Reward   Reward `json:"reward"`
	CoinPaid int64  `json:"coin_paid"`
	GemPaid  int64  `json:"gem_paid"`
	RareHit  bool   `json:"rare_hit"`
}

// BoxUseCase defines the interface for the reward box engine.
type BoxUseCase interface {
	OpenBox(userID int64, boxKind string, now time.Time) (*BoxOpenResult, error)
}
