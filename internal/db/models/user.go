package models

import (
	"time"
)

type UserRole string

const (
	RoleClient   UserRole = "client"
	RoleSupplier UserRole = "supplier"
)

func (r UserRole) Valid() bool {
	return r == RoleClient || r == RoleSupplier
}

type User struct {
	ID               string    `gorm:"primaryKey"`
	Username         string    `gorm:"unique;not null"`
	StellarPublicKey string    `gorm:"unique;not null"`
	StellarSecretKey string    `gorm:"not null"` // Never serialized in responses.
	PasswordHash     string    `gorm:"not null"` // Bcrypt hash of password
	Role             UserRole  `gorm:"not null"`
	CreatedAt        time.Time `gorm:"autoCreateTime"`
}
