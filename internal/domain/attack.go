package domain

import (
	"time"

	"gorm.io/gorm"
)

// AttackRecord is an append-only audit row for a resolved attack.
type AttackRecord struct {
	ID         int64     `json:"attack_id" gorm:"primaryKey;type:bigint;autoIncrement"`
	AttackerID int64     `json:"attacker_id" gorm:"index;not null;type:bigint"`
	TargetID   int64     `json:"target_id" gorm:"index;not null;type:bigint"`
	Damage     int64     `json:"damage" gorm:"not null"`
	CoinLooted int64     `json:"coin_looted" gorm:"not null"`
	ZpLooted   int64     `json:"zp_looted" gorm:"not null"`
	ComboUsed  string    `json:"combo_used" gorm:"type:varchar(64);not null"`
	CreatedAt  time.Time `json:"created_at" gorm:"not null"`
}

// TableName specifies the table name for AttackRecord
func (a AttackRecord) TableName() string {
	return "attack_records"
}

// AttackRepository defines the interface for the attack audit log.
type AttackRepository interface {
	Create(record *AttackRecord) error
	ListByAttacker(attackerID int64, limit int) ([]*AttackRecord, error)
	WithTransaction(tx *gorm.DB) AttackRepository
}

// AttackResult describes a resolved attack to the caller.
type AttackResult struct {
	AttackerID   int64  `json:"attacker_id"`
	TargetID     int64  `json:"target_id"`
	ComboUsed    string `json:"combo_used"`
	BaseDamage   int64  `json:"base_damage"`
	FinalDamage  int64  `json:"final_damage"`
	CoinLooted   int64  `json:"coin_looted"`
	ZpLooted     int64  `json:"zp_looted"`
	XPGained     int64  `json:"xp_gained"`
	LevelsGained int    `json:"levels_gained"`
}

// CombatUseCase defines the interface for attack resolution.
type CombatUseCase interface {
	Attack(attackerID, targetID int64, comboName string) (*AttackResult, error)
}
