package domain

import "gorm.io/gorm"

// TxManager runs a function inside a single storage transaction. The gorm
// implementation maps Run onto db.Transaction; the in-memory store serializes
// Run calls and rolls the snapshot back when fn errors. Repositories are
// rebound into the transaction via their WithTransaction method.
type TxManager interface {
	Run(fn func(tx *gorm.DB) error) error
}
