// File: internal/repository/chat/chat_repository.go
package chat

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/iyunix/go-workshopchat/internal/domain"
	"gorm.io/gorm"
)

var (
	ErrRoomNotFound    = errors.New("chat room not found")
	ErrDuplicateRoom   = errors.New("chat room already exists for workshop and parent")
	ErrRoomHasMessages = errors.New("chat room has messages")
)

type gormChatRoomRepository struct {
	db     *gorm.DB
	logger Logger
}

func NewChatRoomRepository(db *gorm.DB, logger Logger) ChatRoomRepository {
	return &gormChatRoomRepository{db: db, logger: logger}
}

// active is the single soft-delete predicate shared by every read path.
func active(db *gorm.DB) *gorm.DB {
	return db.Where("chat_rooms.is_deleted = ?", false)
}

// Create inserts a new room. A uniqueness violation on (workshop_id, parent_id)
// is reported as ErrDuplicateRoom so callers can re-read the winning row.
func (r *gormChatRoomRepository) Create(ctx context.Context, room *domain.ChatRoom) (*domain.ChatRoom, error) {
	if room == nil || room.WorkshopID == uuid.Nil || room.ParentID == uuid.Nil {
		return nil, errors.New("workshop ID and parent ID are required")
	}
	if room.ID == uuid.Nil {
		room.ID = uuid.New()
	}

	if err := r.db.WithContext(ctx).Create(room).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateRoom
		}
		r.logger.Error("[ChatRepository] database error creating room", "workshop_id", room.WorkshopID, "parent_id", room.ParentID, "error", err)
		return nil, errors.New("database error creating chat room")
	}

	r.logger.Debug("[ChatRepository] room created", "room_id", room.ID)
	return room, nil
}

func (r *gormChatRoomRepository) FindByID(ctx context.Context, roomID uuid.UUID) (*domain.ChatRoom, error) {
	if roomID == uuid.Nil {
		return nil, ErrRoomNotFound
	}

	var room domain.ChatRoom
	err := r.db.WithContext(ctx).Scopes(active).Where("chat_rooms.id = ?", roomID).First(&room).Error
	return r.handleFindError(err, &room, "FindByID")
}

func (r *gormChatRoomRepository) FindUnique(ctx context.Context, workshopID, parentID uuid.UUID) (*domain.ChatRoom, error) {
	var room domain.ChatRoom
	err := r.db.WithContext(ctx).
		Scopes(active).
		Where("chat_rooms.workshop_id = ? AND chat_rooms.parent_id = ?", workshopID, parentID).
		First(&room).Error
	return r.handleFindError(err, &room, "FindUnique")
}

// FindByProviderID joins through workshops so only rooms of the provider's
// own workshops are returned, most recently active first.
func (r *gormChatRoomRepository) FindByProviderID(ctx context.Context, providerID uuid.UUID) ([]domain.ChatRoom, error) {
	var rooms []domain.ChatRoom
	err := r.providerRooms(ctx, providerID).Find(&rooms).Error
	if err != nil {
		r.logger.Error("[ChatRepository] database error finding rooms for provider", "provider_id", providerID, "error", err)
		return nil, errors.New("database error fetching chat rooms")
	}
	return rooms, nil
}

func (r *gormChatRoomRepository) FindByParentID(ctx context.Context, parentID uuid.UUID) ([]domain.ChatRoom, error) {
	var rooms []domain.ChatRoom
	err := r.db.WithContext(ctx).
		Scopes(active).
		Where("chat_rooms.parent_id = ?", parentID).
		Order("chat_rooms.updated_at DESC, chat_rooms.id").
		Find(&rooms).Error
	if err != nil {
		r.logger.Error("[ChatRepository] database error finding rooms for parent", "parent_id", parentID, "error", err)
		return nil, errors.New("database error fetching chat rooms")
	}
	return rooms, nil
}

func (r *gormChatRoomRepository) FindByProviderAndParent(ctx context.Context, providerID, parentID uuid.UUID) ([]domain.ChatRoom, error) {
	var rooms []domain.ChatRoom
	err := r.providerRooms(ctx, providerID).
		Where("chat_rooms.parent_id = ?", parentID).
		Find(&rooms).Error
	if err != nil {
		r.logger.Error("[ChatRepository] database error finding rooms for provider and parent", "provider_id", providerID, "parent_id", parentID, "error", err)
		return nil, errors.New("database error fetching chat rooms")
	}
	return rooms, nil
}

func (r *gormChatRoomRepository) providerRooms(ctx context.Context, providerID uuid.UUID) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&domain.ChatRoom{}).
		Select("chat_rooms.*").
		Joins("JOIN workshops ON workshops.id = chat_rooms.workshop_id").
		Scopes(active).
		Where("workshops.provider_id = ?", providerID).
		Order("chat_rooms.updated_at DESC, chat_rooms.id")
}

// SoftDeleteIfEmpty flags the room deleted in one statement, guarded by the
// absence of messages, so a message inserted concurrently keeps the room alive.
func (r *gormChatRoomRepository) SoftDeleteIfEmpty(ctx context.Context, roomID uuid.UUID) error {
	hasMessages := r.db.WithContext(ctx).Model(&domain.ChatMessage{}).Select("1").Where("chat_messages.chat_room_id = ?", roomID)

	result := r.db.WithContext(ctx).
		Model(&domain.ChatRoom{}).
		Where("id = ? AND is_deleted = ?", roomID, false).
		Where("NOT EXISTS (?)", hasMessages).
		Update("is_deleted", true)
	if result.Error != nil {
		r.logger.Error("[ChatRepository] database error deleting room", "room_id", roomID, "error", result.Error)
		return errors.New("database error deleting chat room")
	}

	if result.RowsAffected == 0 {
		if _, err := r.FindByID(ctx, roomID); err != nil {
			return err
		}
		return ErrRoomHasMessages
	}

	r.logger.Debug("[ChatRepository] room soft-deleted", "room_id", roomID)
	return nil
}

func (r *gormChatRoomRepository) SetBlocked(ctx context.Context, roomID uuid.UUID, blocked bool) error {
	result := r.db.WithContext(ctx).
		Model(&domain.ChatRoom{}).
		Where("id = ? AND is_deleted = ?", roomID, false).
		UpdateColumn("is_blocked_by_provider", blocked)
	if result.Error != nil {
		r.logger.Error("[ChatRepository] database error updating block flag", "room_id", roomID, "error", result.Error)
		return errors.New("database error updating chat room")
	}
	if result.RowsAffected == 0 {
		return ErrRoomNotFound
	}
	return nil
}

func (r *gormChatRoomRepository) TouchUpdatedAt(ctx context.Context, roomID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&domain.ChatRoom{}).
		Where("id = ?", roomID).
		Update("updated_at", r.db.NowFunc())
	if result.Error != nil {
		r.logger.Error("[ChatRepository] database error updating timestamp", "room_id", roomID, "error", result.Error)
		return errors.New("database error updating chat room timestamp")
	}
	if result.RowsAffected == 0 {
		return ErrRoomNotFound
	}
	return nil
}

func (r *gormChatRoomRepository) handleFindError(err error, room *domain.ChatRoom, operation string) (*domain.ChatRoom, error) {
	if err == nil {
		return room, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRoomNotFound
	}

	r.logger.Error("[ChatRepository] query failed", "operation", operation, "error", err)
	return nil, errors.New("database query failed")
}

// isUniqueViolation recognises duplicate-key errors from the translated gorm
// error as well as the raw sqlite and postgres messages.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "SQLSTATE 23505")
}
