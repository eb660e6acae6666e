// File: internal/services/chat/registry.go
package chat

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/iyunix/go-workshopchat/internal/domain"
	"github.com/iyunix/go-workshopchat/internal/metrics"
	chatrepo "github.com/iyunix/go-workshopchat/internal/repository/chat"
)

// RoomRegistry owns room creation and lookup. Uniqueness of the
// (workshop, parent) pair is enforced by the storage index, not by this
// type, so it holds across service instances.
type RoomRegistry struct {
	rooms  chatrepo.ChatRoomRepository
	config *Config
	logger Logger
}

func NewRoomRegistry(rooms chatrepo.ChatRoomRepository, config *Config, logger Logger) *RoomRegistry {
	return &RoomRegistry{rooms: rooms, config: config, logger: logger}
}

func (r *RoomRegistry) GetUniqueRoom(ctx context.Context, workshopID, parentID uuid.UUID) (*domain.ChatRoom, error) {
	room, err := r.rooms.FindUnique(ctx, workshopID, parentID)
	return room, r.mapRepoError("get_unique_room", err)
}

// GetOrCreate returns the active room of the pair, creating it when absent.
// Two callers racing past the lookup both insert; the loser gets
// ErrDuplicateRoom from the unique index and re-reads the winner's row.
func (r *RoomRegistry) GetOrCreate(ctx context.Context, workshopID, parentID uuid.UUID) (*domain.ChatRoom, error) {
	const op = "get_or_create_room"
	if workshopID == uuid.Nil || parentID == uuid.Nil {
		return nil, NewValidationError(op, "workshop ID and parent ID are required")
	}

	for attempt := 1; attempt <= r.config.CreateRoomAttempts; attempt++ {
		room, err := r.rooms.FindUnique(ctx, workshopID, parentID)
		if err == nil {
			return room, nil
		}
		if !errors.Is(err, chatrepo.ErrRoomNotFound) {
			return nil, NewStorageError(op, err)
		}

		created, err := r.rooms.Create(ctx, &domain.ChatRoom{WorkshopID: workshopID, ParentID: parentID})
		if err == nil {
			metrics.RoomsCreated.Inc()
			r.logger.Info("chat room created", "room_id", created.ID, "workshop_id", workshopID, "parent_id", parentID)
			return created, nil
		}
		if !errors.Is(err, chatrepo.ErrDuplicateRoom) {
			return nil, NewStorageError(op, err)
		}

		metrics.RoomCreateConflicts.Inc()
		r.logger.Debug("room insert lost a uniqueness race, re-reading", "workshop_id", workshopID, "parent_id", parentID, "attempt", attempt)
	}

	return nil, NewStorageError(op, errors.New("room creation did not converge"))
}

func (r *RoomRegistry) GetByID(ctx context.Context, roomID uuid.UUID) (*domain.ChatRoom, error) {
	room, err := r.rooms.FindByID(ctx, roomID)
	return room, r.mapRepoError("get_room", err)
}

func (r *RoomRegistry) GetRoomsForProvider(ctx context.Context, providerID uuid.UUID) ([]domain.ChatRoom, error) {
	rooms, err := r.rooms.FindByProviderID(ctx, providerID)
	return rooms, r.mapRepoError("get_rooms_for_provider", err)
}

func (r *RoomRegistry) GetRoomsForParent(ctx context.Context, parentID uuid.UUID) ([]domain.ChatRoom, error) {
	rooms, err := r.rooms.FindByParentID(ctx, parentID)
	return rooms, r.mapRepoError("get_rooms_for_parent", err)
}

func (r *RoomRegistry) GetRoomsForProviderAndParent(ctx context.Context, providerID, parentID uuid.UUID) ([]domain.ChatRoom, error) {
	rooms, err := r.rooms.FindByProviderAndParent(ctx, providerID, parentID)
	return rooms, r.mapRepoError("get_rooms_for_provider_and_parent", err)
}

// Delete soft-deletes an empty room. A room holding messages yields a
// CONFLICT error and stays active.
func (r *RoomRegistry) Delete(ctx context.Context, roomID uuid.UUID) error {
	err := r.rooms.SoftDeleteIfEmpty(ctx, roomID)
	if errors.Is(err, chatrepo.ErrRoomHasMessages) {
		return NewConflictError("delete_room", "chat room has messages", err)
	}
	if err == nil {
		r.logger.Info("chat room deleted", "room_id", roomID)
	}
	return r.mapRepoError("delete_room", err)
}

func (r *RoomRegistry) SetBlocked(ctx context.Context, roomID uuid.UUID, blocked bool) error {
	return r.mapRepoError("set_room_blocked", r.rooms.SetBlocked(ctx, roomID, blocked))
}

// Touch bumps the room's activity timestamp used to order inboxes.
func (r *RoomRegistry) Touch(ctx context.Context, roomID uuid.UUID) error {
	return r.mapRepoError("touch_room", r.rooms.TouchUpdatedAt(ctx, roomID))
}

func (r *RoomRegistry) mapRepoError(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, chatrepo.ErrRoomNotFound):
		return NewNotFoundError(op, "chat room not found")
	default:
		return NewStorageError(op, err)
	}
}
