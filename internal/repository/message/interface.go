// File: internal/repository/message/interface.go
package message

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/iyunix/go-workshopchat/internal/domain"
)

type MessageRepository interface {
	Create(ctx context.Context, message *domain.ChatMessage) (*domain.ChatMessage, error)
	FindByID(ctx context.Context, messageID uuid.UUID) (*domain.ChatMessage, error)
	FindByChatRoomIDWithPagination(ctx context.Context, roomID uuid.UUID, limit, offset int) ([]domain.ChatMessage, error)
	FindLatest(ctx context.Context, roomID uuid.UUID) (*domain.ChatMessage, error)
	UpdateText(ctx context.Context, messageID uuid.UUID, text string) error
	Delete(ctx context.Context, messageID uuid.UUID) error

	// Read state. readerIsProvider selects the messages authored by the other side.
	MarkRead(ctx context.Context, roomID uuid.UUID, readerIsProvider bool, at time.Time) (int64, error)
	CountUnread(ctx context.Context, roomID uuid.UUID, viewerIsProvider bool) (int64, error)
}

// Logger is the logging surface the repository needs.
type Logger interface {
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
}
