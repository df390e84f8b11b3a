package models

import (
	"time"
)

// ProcessShare is a grant: its existence is what authorizes a supplier
// to read a process. Shares are append-only, carry no expiry, and there
// is no revocation path. Duplicates for the same (process, supplier)
// pair are permitted; authorization is an existence check, so they are
// harmless.
type ProcessShare struct {
	ID                     string    `gorm:"primaryKey"`
	ProcessID              string    `gorm:"index;not null"`
	SupplierPublicKey      string    `gorm:"index;not null"`
	StellarTransactionHash string    `gorm:"not null"`
	SharedAt               time.Time `gorm:"autoCreateTime"`
}
