package domain

// AdjustResult describes a completed admin balance adjustment.
type AdjustResult struct {
	TargetID   int64    `json:"target_id"`
	Currency   Currency `json:"currency"`
	Delta      int64    `json:"delta"`
	NewBalance int64    `json:"new_balance"`
}

// GiftOutcome is the per-user outcome of a broadcast gift. Failures carry
// the error message; the batch itself never aborts.
type GiftOutcome struct {
	UserID int64  `json:"user_id"`
	OK     bool   `json:"ok"`
	Error  string `json:"error,omitempty"`
}

// GiftReport summarizes a best-effort broadcast gift.
type GiftReport struct {
	Currency  Currency      `json:"currency"`
	Amount    int64         `json:"amount"`
	Succeeded int           `json:"succeeded"`
	Failed    int           `json:"failed"`
	Outcomes  []GiftOutcome `json:"outcomes"`
}

// AdminUseCase defines the interface for privileged adjustments. Every
// method verifies the acting user's admin flag before touching the target.
type AdminUseCase interface {
	Adjust(adminID, targetID int64, currency Currency, delta int64) (*AdjustResult, error)
	SetLevel(adminID, targetID int64, level int) (*User, error)
	BroadcastGift(adminID int64, currency Currency, amount int64) (*GiftReport, error)
	Stats(adminID int64) (*GlobalStats, error)
}
