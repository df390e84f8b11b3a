package models

import (
	"time"
)

type ProcessStatus string

const (
	StatusActive   ProcessStatus = "active"
	StatusArchived ProcessStatus = "archived"
)

// Process is a confidential document. The body is stored sealed; the
// per-process key sits in the same row, which means anyone with read
// access to storage can decrypt. Known limitation, kept deliberately.
type Process struct {
	ID               string        `gorm:"primaryKey"`
	ClientID         string        `gorm:"index;not null"`
	Title            string        `gorm:"not null"`
	EncryptedContent string        `gorm:"not null"`
	EncryptionKey    string        `gorm:"not null"`
	Status           ProcessStatus `gorm:"not null;default:'active'"`
	CreatedAt        time.Time     `gorm:"autoCreateTime"`
}
