package chat

import (
	"context"

	"github.com/google/uuid"
	"github.com/iyunix/go-workshopchat/internal/domain"
)

// ChatRoomRepository handles chat room data operations. Every read path
// ignores soft-deleted rooms.
type ChatRoomRepository interface {
	Create(ctx context.Context, room *domain.ChatRoom) (*domain.ChatRoom, error)
	FindByID(ctx context.Context, roomID uuid.UUID) (*domain.ChatRoom, error)
	FindUnique(ctx context.Context, workshopID, parentID uuid.UUID) (*domain.ChatRoom, error)
	FindByProviderID(ctx context.Context, providerID uuid.UUID) ([]domain.ChatRoom, error)
	FindByParentID(ctx context.Context, parentID uuid.UUID) ([]domain.ChatRoom, error)
	FindByProviderAndParent(ctx context.Context, providerID, parentID uuid.UUID) ([]domain.ChatRoom, error)
	SoftDeleteIfEmpty(ctx context.Context, roomID uuid.UUID) error
	SetBlocked(ctx context.Context, roomID uuid.UUID, blocked bool) error
	TouchUpdatedAt(ctx context.Context, roomID uuid.UUID) error
}

// Logger is the logging surface the repository needs.
type Logger interface {
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
}
