// File: internal/domain/directory.go
package domain

import "github.com/google/uuid"

// Provider, Parent and Workshop are owned by other parts of the system.
// The chat subsystem only reads them to resolve ownership.

type Provider struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID string    `gorm:"size:64;not null;uniqueIndex"`
}

type Parent struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID string    `gorm:"size:64;not null;uniqueIndex"`
}

type Workshop struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProviderID uuid.UUID `gorm:"type:uuid;not null;index"`
	Title      string    `gorm:"size:120"`
}
