package models

import (
	"time"
)

// ProcessAccess is one audit row per successful read. Immutable,
// append-only, never deleted.
type ProcessAccess struct {
	ID         string    `gorm:"primaryKey"`
	ProcessID  string    `gorm:"index;not null"`
	SupplierID string    `gorm:"index;not null"`
	AccessedAt time.Time `gorm:"autoCreateTime"`
}
