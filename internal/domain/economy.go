package domain

import "time"

// MinerClaimResult describes a completed miner income claim.
type MinerClaimResult struct {
	Accrued    int64     `json:"accrued"`
	NewZp      int64     `json:"new_zp"`
	MinerLevel int       `json:"miner_level"`
	ClaimedAt  time.Time `json:"claimed_at"`
}

// MinerUpgradeResult describes a completed miner upgrade.
type MinerUpgradeResult struct {
	NewLevel int   `json:"new_level"`
	NewRate  int64 `json:"new_rate"`
	ZpPaid   int64 `json:"zp_paid"`
	NewZp    int64 `json:"new_zp"`
	XPGained int64 `json:"xp_gained"`
}

// EconomyUseCase defines the interface for the currency ledger and the
// passive-income miner.
type EconomyUseCase interface {
	Credit(userID int64, currency Currency, amount int64) (*User, error)
	Debit(userID int64, currency Currency, amount int64) (*User, error)
	ClaimMiner(userID int64, now time.Time) (*MinerClaimResult, error)
	UpgradeMiner(userID int64) (*MinerUpgradeResult, error)
}
