// File: internal/domain/chat.go
package domain

import (
	"time"

	"github.com/google/uuid"
)

// ChatRoom is the conversation between one workshop and one parent.
// At most one non-deleted room exists per (WorkshopID, ParentID).
type ChatRoom struct {
	ID                  uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	WorkshopID          uuid.UUID `json:"workshopId" gorm:"type:uuid;not null;uniqueIndex:idx_chat_rooms_workshop_parent,where:is_deleted = false"`
	ParentID            uuid.UUID `json:"parentId" gorm:"type:uuid;not null;index;uniqueIndex:idx_chat_rooms_workshop_parent,where:is_deleted = false"`
	IsBlockedByProvider bool      `json:"isBlockedByProvider" gorm:"not null;default:false"`
	IsDeleted           bool      `json:"-" gorm:"not null;default:false;index"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"` // touched on every new message
}
