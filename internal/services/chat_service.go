// File: internal/services/chat_service.go
package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/iyunix/go-workshopchat/internal/domain"
	"github.com/iyunix/go-workshopchat/internal/metrics"
	chatservice "github.com/iyunix/go-workshopchat/internal/services/chat"
)

// ChatService is the entry point of the chat subsystem. Every operation takes
// the caller's identity explicitly and checks ownership before touching data.
type ChatService struct {
	gate     *chatservice.OwnershipGate
	registry *chatservice.RoomRegistry
	store    *chatservice.MessageStore
	tracker  *chatservice.ReadStateTracker
	logger   Logger
}

func NewChatService(
	gate *chatservice.OwnershipGate,
	registry *chatservice.RoomRegistry,
	store *chatservice.MessageStore,
	tracker *chatservice.ReadStateTracker,
	logger Logger,
) (*ChatService, error) {
	if gate == nil {
		return nil, chatservice.NewValidationError("constructor", "ownership gate is required")
	}
	if registry == nil {
		return nil, chatservice.NewValidationError("constructor", "room registry is required")
	}
	if store == nil {
		return nil, chatservice.NewValidationError("constructor", "message store is required")
	}
	if tracker == nil {
		return nil, chatservice.NewValidationError("constructor", "read state tracker is required")
	}
	if logger == nil {
		logger = &NoOpLogger{}
	}

	return &ChatService{
		gate:     gate,
		registry: registry,
		store:    store,
		tracker:  tracker,
		logger:   logger,
	}, nil
}

// SendMessage is the only path that creates a room: the room of the
// (workshop, parent) pair appears with its first message. Parents cannot
// write into a room the provider has blocked.
func (s *ChatService) SendMessage(ctx context.Context, userID string, role domain.Role, workshopID, parentID uuid.UUID, text string) (*domain.ChatMessage, error) {
	const op = "send_message"
	if workshopID == uuid.Nil || parentID == uuid.Nil {
		return nil, chatservice.NewValidationError(op, "workshop ID and parent ID are required")
	}
	if !s.gate.HasRights(ctx, userID, role, workshopID, parentID) {
		return nil, chatservice.NewForbiddenError(op, "no rights for this chat room")
	}
	if err := s.store.ValidateText(op, text); err != nil {
		return nil, err
	}

	room, err := s.registry.GetOrCreate(ctx, workshopID, parentID)
	if err != nil {
		return nil, err
	}
	if room.IsBlockedByProvider && !role.IsProvider() {
		return nil, chatservice.NewForbiddenError(op, "chat room is blocked")
	}

	message, err := s.store.Create(ctx, room.ID, role.IsProvider(), text)
	if err != nil {
		return nil, err
	}
	metrics.MessagesSent.WithLabelValues(role.String()).Inc()

	if err := s.registry.Touch(ctx, room.ID); err != nil {
		s.logger.Warn("failed to update room activity", "room_id", room.ID, "error", err)
	}
	return message, nil
}

func (s *ChatService) ReadRoom(ctx context.Context, userID string, role domain.Role, roomID uuid.UUID) (*domain.ChatRoom, error) {
	return s.roomWithRights(ctx, "read_room", userID, role, roomID)
}

func (s *ChatService) ReadMessages(ctx context.Context, userID string, role domain.Role, roomID uuid.UUID, offset, size int) ([]domain.ChatMessage, error) {
	room, err := s.roomWithRights(ctx, "read_messages", userID, role, roomID)
	if err != nil {
		return nil, err
	}
	return s.store.GetPage(ctx, room.ID, offset, size)
}

// ListMyRooms returns the caller's inbox, most recently active room first.
// A caller who owns no provider or parent record gets an empty inbox.
func (s *ChatService) ListMyRooms(ctx context.Context, userID string, role domain.Role) ([]chatservice.RoomSummary, error) {
	ownerID, ok := s.gate.OwnedEntityID(ctx, userID, role)
	if !ok {
		return []chatservice.RoomSummary{}, nil
	}

	var (
		rooms []domain.ChatRoom
		err   error
	)
	if role.IsProvider() {
		rooms, err = s.registry.GetRoomsForProvider(ctx, ownerID)
	} else {
		rooms, err = s.registry.GetRoomsForParent(ctx, ownerID)
	}
	if err != nil {
		return nil, err
	}
	return s.summarize(ctx, rooms, role)
}

// GetRoomForWorkshop returns the parent's own room for a workshop without
// creating it.
func (s *ChatService) GetRoomForWorkshop(ctx context.Context, userID string, role domain.Role, workshopID uuid.UUID) (*chatservice.RoomSummary, error) {
	const op = "get_room_for_workshop"
	if role != domain.RoleParent {
		return nil, chatservice.NewForbiddenError(op, "only parents can look up a room by workshop")
	}
	parentID, ok := s.gate.OwnedEntityID(ctx, userID, role)
	if !ok {
		return nil, chatservice.NewForbiddenError(op, "no rights for this chat room")
	}

	room, err := s.registry.GetUniqueRoom(ctx, workshopID, parentID)
	if err != nil {
		return nil, err
	}
	summaries, err := s.summarize(ctx, []domain.ChatRoom{*room}, role)
	if err != nil {
		return nil, err
	}
	return &summaries[0], nil
}

// ListRoomsWithParent returns the rooms between the calling provider's
// workshops and one parent.
func (s *ChatService) ListRoomsWithParent(ctx context.Context, userID string, role domain.Role, parentID uuid.UUID) ([]chatservice.RoomSummary, error) {
	const op = "list_rooms_with_parent"
	if role != domain.RoleProvider {
		return nil, chatservice.NewForbiddenError(op, "only providers can list rooms by parent")
	}
	providerID, ok := s.gate.OwnedEntityID(ctx, userID, role)
	if !ok {
		return []chatservice.RoomSummary{}, nil
	}

	rooms, err := s.registry.GetRoomsForProviderAndParent(ctx, providerID, parentID)
	if err != nil {
		return nil, err
	}
	return s.summarize(ctx, rooms, role)
}

func (s *ChatService) MarkRoomRead(ctx context.Context, userID string, role domain.Role, roomID uuid.UUID) (int64, error) {
	room, err := s.roomWithRights(ctx, "mark_room_read", userID, role, roomID)
	if err != nil {
		return 0, err
	}
	return s.tracker.MarkRead(ctx, room.ID, role.IsProvider())
}

func (s *ChatService) EditMessage(ctx context.Context, userID string, role domain.Role, messageID uuid.UUID, newText string) (*domain.ChatMessage, error) {
	if _, err := s.messageWithRights(ctx, "edit_message", userID, role, messageID); err != nil {
		return nil, err
	}
	return s.store.Update(ctx, messageID, role.IsProvider(), newText)
}

func (s *ChatService) DeleteMessage(ctx context.Context, userID string, role domain.Role, messageID uuid.UUID) error {
	if _, err := s.messageWithRights(ctx, "delete_message", userID, role, messageID); err != nil {
		return err
	}
	return s.store.Delete(ctx, messageID, role.IsProvider())
}

// DeleteRoom removes a room that never received a message. A room with
// history is permanent and the request is refused.
func (s *ChatService) DeleteRoom(ctx context.Context, userID string, role domain.Role, roomID uuid.UUID) error {
	const op = "delete_room"
	room, err := s.roomWithRights(ctx, op, userID, role, roomID)
	if err != nil {
		return err
	}

	page, err := s.store.GetPage(ctx, room.ID, 0, 1)
	if err != nil {
		return err
	}
	if len(page) > 0 {
		return chatservice.NewForbiddenError(op, "chat room has messages")
	}

	if err := s.registry.Delete(ctx, room.ID); err != nil {
		// a message arrived between the check and the delete
		if chatservice.IsConflict(err) {
			return chatservice.NewForbiddenError(op, "chat room has messages")
		}
		return err
	}
	return nil
}

// SetRoomBlocked lets the owning provider stop or resume parent messages in a room.
func (s *ChatService) SetRoomBlocked(ctx context.Context, userID string, role domain.Role, roomID uuid.UUID, blocked bool) (*domain.ChatRoom, error) {
	const op = "set_room_blocked"
	room, err := s.roomWithRights(ctx, op, userID, role, roomID)
	if err != nil {
		return nil, err
	}
	if !role.IsProvider() {
		return nil, chatservice.NewForbiddenError(op, "only the provider can block a chat room")
	}

	if err := s.registry.SetBlocked(ctx, room.ID, blocked); err != nil {
		return nil, err
	}
	s.logger.Info("chat room block changed", "room_id", room.ID, "blocked", blocked, "user_id", userID)
	room.IsBlockedByProvider = blocked
	return room, nil
}

func (s *ChatService) roomWithRights(ctx context.Context, op, userID string, role domain.Role, roomID uuid.UUID) (*domain.ChatRoom, error) {
	room, err := s.registry.GetByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if !s.gate.HasRoomRights(ctx, userID, role, room) {
		return nil, chatservice.NewForbiddenError(op, "no rights for this chat room")
	}
	return room, nil
}

func (s *ChatService) messageWithRights(ctx context.Context, op, userID string, role domain.Role, messageID uuid.UUID) (*domain.ChatMessage, error) {
	message, err := s.store.GetByID(ctx, messageID)
	if err != nil {
		return nil, err
	}
	if _, err := s.roomWithRights(ctx, op, userID, role, message.ChatRoomID); err != nil {
		return nil, err
	}
	return message, nil
}

func (s *ChatService) summarize(ctx context.Context, rooms []domain.ChatRoom, viewer domain.Role) ([]chatservice.RoomSummary, error) {
	summaries := make([]chatservice.RoomSummary, 0, len(rooms))
	for _, room := range rooms {
		latest, err := s.store.Latest(ctx, room.ID)
		if err != nil {
			return nil, err
		}
		unread, err := s.tracker.UnreadCountForViewer(ctx, room.ID, viewer.IsProvider())
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, chatservice.RoomSummary{Room: room, LastMessage: latest, UnreadCount: unread})
	}
	return summaries, nil
}
