// File: internal/domain/message.go
package domain

import (
	"time"

	"github.com/google/uuid"
)

// ChatMessage is a single text message inside a ChatRoom.
type ChatMessage struct {
	ID                   uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	ChatRoomID           uuid.UUID  `json:"chatRoomId" gorm:"type:uuid;not null;index:idx_chat_messages_room_created,priority:1"`
	Text                 string     `json:"text" gorm:"size:256;not null"`
	SenderRoleIsProvider bool       `json:"senderRoleIsProvider" gorm:"not null"`
	CreatedDateTime      time.Time  `json:"createdDateTime" gorm:"not null;index:idx_chat_messages_room_created,priority:2"`
	ReadDateTime         *time.Time `json:"readDateTime"`
}

// IsRead reports whether the receiving party has read the message.
func (m *ChatMessage) IsRead() bool {
	return m.ReadDateTime != nil
}

// SentBy reports whether the message was authored by the given side.
func (m *ChatMessage) SentBy(role Role) bool {
	return m.SenderRoleIsProvider == role.IsProvider()
}
