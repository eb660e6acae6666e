// File: internal/services/chat/types.go
package chat

import "github.com/iyunix/go-workshopchat/internal/domain"

// Logger defines the logging interface used across chat components
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}

// RoomSummary is an inbox entry: the room, its newest message (nil for an
// empty room) and how many messages from the other side the viewer has not read.
type RoomSummary struct {
	Room        domain.ChatRoom     `json:"room"`
	LastMessage *domain.ChatMessage `json:"lastMessage"`
	UnreadCount int64               `json:"unreadCount"`
}
