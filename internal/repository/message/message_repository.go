// File: internal/repository/message/message_repository.go
package message

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/iyunix/go-workshopchat/internal/domain"
	"gorm.io/gorm"
)

var ErrMessageNotFound = errors.New("message not found")

// MaxPageLimit caps a single page read regardless of what the caller asks for.
const MaxPageLimit = 1000

type gormMessageRepository struct {
	db     *gorm.DB
	logger Logger
}

func NewMessageRepository(db *gorm.DB, logger Logger) MessageRepository {
	return &gormMessageRepository{db: db, logger: logger}
}

func (r *gormMessageRepository) Create(ctx context.Context, message *domain.ChatMessage) (*domain.ChatMessage, error) {
	if message == nil || message.ChatRoomID == uuid.Nil {
		return nil, errors.New("chat room ID is required")
	}
	if message.ID == uuid.Nil {
		// v7 ids grow with insertion order, so they can break created_date_time ties
		id, err := uuid.NewV7()
		if err != nil {
			return nil, fmt.Errorf("generate message id: %w", err)
		}
		message.ID = id
	}

	if err := r.db.WithContext(ctx).Create(message).Error; err != nil {
		// message text is never logged
		r.logger.Error("[MessageRepository] database error creating message", "room_id", message.ChatRoomID, "error", err)
		return nil, errors.New("database error creating message")
	}

	r.logger.Debug("[MessageRepository] message created", "message_id", message.ID, "room_id", message.ChatRoomID)
	return message, nil
}

func (r *gormMessageRepository) FindByID(ctx context.Context, messageID uuid.UUID) (*domain.ChatMessage, error) {
	if messageID == uuid.Nil {
		return nil, ErrMessageNotFound
	}

	var message domain.ChatMessage
	err := r.db.WithContext(ctx).Where("id = ?", messageID).First(&message).Error
	return r.handleFindError(err, &message, "FindByID")
}

// FindByChatRoomIDWithPagination returns messages oldest first. Ids are
// time-ordered, so a later insert never sorts ahead of an existing message
// with the same timestamp.
func (r *gormMessageRepository) FindByChatRoomIDWithPagination(ctx context.Context, roomID uuid.UUID, limit, offset int) ([]domain.ChatMessage, error) {
	if limit <= 0 || limit > MaxPageLimit {
		return nil, errors.New("invalid limit: must be between 1 and 1000")
	}
	if offset < 0 {
		return nil, errors.New("invalid offset: must be >= 0")
	}

	var messages []domain.ChatMessage
	err := r.db.WithContext(ctx).
		Where("chat_room_id = ?", roomID).
		Order("created_date_time ASC, id ASC").
		Limit(limit).
		Offset(offset).
		Find(&messages).Error
	if err != nil {
		r.logger.Error("[MessageRepository] database error in paginated query", "room_id", roomID, "error", err)
		return nil, errors.New("database error retrieving paginated messages")
	}
	return messages, nil
}

func (r *gormMessageRepository) FindLatest(ctx context.Context, roomID uuid.UUID) (*domain.ChatMessage, error) {
	var message domain.ChatMessage
	err := r.db.WithContext(ctx).
		Where("chat_room_id = ?", roomID).
		Order("created_date_time DESC, id DESC").
		Limit(1).
		Take(&message).Error
	return r.handleFindError(err, &message, "FindLatest")
}

func (r *gormMessageRepository) UpdateText(ctx context.Context, messageID uuid.UUID, text string) error {
	result := r.db.WithContext(ctx).
		Model(&domain.ChatMessage{}).
		Where("id = ?", messageID).
		Update("text", text)
	if result.Error != nil {
		r.logger.Error("[MessageRepository] database error updating message", "message_id", messageID, "error", result.Error)
		return errors.New("database error updating message")
	}
	if result.RowsAffected == 0 {
		return ErrMessageNotFound
	}
	return nil
}

func (r *gormMessageRepository) Delete(ctx context.Context, messageID uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", messageID).Delete(&domain.ChatMessage{})
	if result.Error != nil {
		r.logger.Error("[MessageRepository] database error deleting message", "message_id", messageID, "error", result.Error)
		return errors.New("database error deleting message")
	}
	if result.RowsAffected == 0 {
		return ErrMessageNotFound
	}

	r.logger.Debug("[MessageRepository] message deleted", "message_id", messageID)
	return nil
}

// MarkRead stamps every unread message sent by the other side in one
// statement. The predicate only matches rows still unread, so concurrent
// calls never overwrite an earlier read time.
func (r *gormMessageRepository) MarkRead(ctx context.Context, roomID uuid.UUID, readerIsProvider bool, at time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&domain.ChatMessage{}).
		Where("chat_room_id = ? AND sender_role_is_provider <> ? AND read_date_time IS NULL", roomID, readerIsProvider).
		Update("read_date_time", at)
	if result.Error != nil {
		r.logger.Error("[MessageRepository] database error marking messages read", "room_id", roomID, "error", result.Error)
		return 0, errors.New("database error marking messages read")
	}
	return result.RowsAffected, nil
}

func (r *gormMessageRepository) CountUnread(ctx context.Context, roomID uuid.UUID, viewerIsProvider bool) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.ChatMessage{}).
		Where("chat_room_id = ? AND sender_role_is_provider <> ? AND read_date_time IS NULL", roomID, viewerIsProvider).
		Count(&count).Error
	if err != nil {
		r.logger.Error("[MessageRepository] database error counting unread messages", "room_id", roomID, "error", err)
		return 0, errors.New("database error counting unread messages")
	}
	return count, nil
}

func (r *gormMessageRepository) handleFindError(err error, message *domain.ChatMessage, operation string) (*domain.ChatMessage, error) {
	if err == nil {
		return message, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrMessageNotFound
	}

	r.logger.Error("[MessageRepository] query failed", "operation", operation, "error", err)
	return nil, errors.New("database query failed")
}
