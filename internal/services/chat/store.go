// File: internal/services/chat/store.go
package chat

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/iyunix/go-workshopchat/internal/domain"
	"github.com/iyunix/go-workshopchat/internal/metrics"
	msgrepo "github.com/iyunix/go-workshopchat/internal/repository/message"
	"github.com/samber/lo"
)

// MessageStore owns message creation, paging and the time-boxed edit and
// delete rights of a message's sender.
type MessageStore struct {
	messages msgrepo.MessageRepository
	config   *Config
	logger   Logger
}

func NewMessageStore(messages msgrepo.MessageRepository, config *Config, logger Logger) *MessageStore {
	return &MessageStore{messages: messages, config: config, logger: logger}
}

// ValidateText rejects blank text and text longer than MaxTextLength characters.
func (s *MessageStore) ValidateText(op, text string) error {
	if strings.TrimSpace(text) == "" {
		return NewValidationError(op, "message text cannot be empty")
	}
	if utf8.RuneCountInString(text) > s.config.MaxTextLength {
		return NewValidationError(op, "message text is too long")
	}
	return nil
}

func (s *MessageStore) Create(ctx context.Context, roomID uuid.UUID, senderIsProvider bool, text string) (*domain.ChatMessage, error) {
	const op = "create_message"
	if roomID == uuid.Nil {
		return nil, NewValidationError(op, "chat room ID is required")
	}
	if err := s.ValidateText(op, text); err != nil {
		return nil, err
	}

	message, err := s.messages.Create(ctx, &domain.ChatMessage{
		ChatRoomID:           roomID,
		Text:                 text,
		SenderRoleIsProvider: senderIsProvider,
		CreatedDateTime:      s.config.now(),
	})
	if err != nil {
		return nil, NewStorageError(op, err)
	}
	return message, nil
}

func (s *MessageStore) GetByID(ctx context.Context, messageID uuid.UUID) (*domain.ChatMessage, error) {
	message, err := s.messages.FindByID(ctx, messageID)
	if errors.Is(err, msgrepo.ErrMessageNotFound) {
		return nil, NewNotFoundError("get_message", "message not found")
	}
	if err != nil {
		return nil, NewStorageError("get_message", err)
	}
	return message, nil
}

// GetPage returns messages oldest first. A non-positive size falls back to
// the default page size; larger sizes are capped at MaxPageSize.
func (s *MessageStore) GetPage(ctx context.Context, roomID uuid.UUID, offset, size int) ([]domain.ChatMessage, error) {
	const op = "get_messages"
	if offset < 0 {
		return nil, NewValidationError(op, "offset must be >= 0")
	}
	if size <= 0 {
		size = s.config.DefaultPageSize
	}
	size = lo.Clamp(size, 1, s.config.MaxPageSize)

	messages, err := s.messages.FindByChatRoomIDWithPagination(ctx, roomID, size, offset)
	if err != nil {
		return nil, NewStorageError(op, err)
	}
	return messages, nil
}

// Latest returns the newest message of the room, or nil for an empty room.
func (s *MessageStore) Latest(ctx context.Context, roomID uuid.UUID) (*domain.ChatMessage, error) {
	message, err := s.messages.FindLatest(ctx, roomID)
	if errors.Is(err, msgrepo.ErrMessageNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, NewStorageError("latest_message", err)
	}
	return message, nil
}

// Update replaces the text of a message. Checks run in order: the message
// exists, the text actually changes (otherwise a no-op), the caller is the
// sender, the message is younger than the mutability window, the new text
// is valid. Only Text is written.
func (s *MessageStore) Update(ctx context.Context, messageID uuid.UUID, callerIsProvider bool, newText string) (*domain.ChatMessage, error) {
	const op = "update_message"

	message, err := s.GetByID(ctx, messageID)
	if err != nil {
		return nil, err
	}
	if message.Text == newText {
		return message, nil
	}
	if err := s.checkMutable(op, message, callerIsProvider); err != nil {
		metrics.MessageMutations.WithLabelValues("update", "forbidden").Inc()
		return nil, err
	}
	if err := s.ValidateText(op, newText); err != nil {
		return nil, err
	}

	if err := s.messages.UpdateText(ctx, messageID, newText); err != nil {
		if errors.Is(err, msgrepo.ErrMessageNotFound) {
			return nil, NewNotFoundError(op, "message not found")
		}
		return nil, NewStorageError(op, err)
	}

	metrics.MessageMutations.WithLabelValues("update", "ok").Inc()
	message.Text = newText
	return message, nil
}

// Delete removes a message under the same sender and window rules as Update.
func (s *MessageStore) Delete(ctx context.Context, messageID uuid.UUID, callerIsProvider bool) error {
	const op = "delete_message"

	message, err := s.GetByID(ctx, messageID)
	if err != nil {
		return err
	}
	if err := s.checkMutable(op, message, callerIsProvider); err != nil {
		metrics.MessageMutations.WithLabelValues("delete", "forbidden").Inc()
		return err
	}

	if err := s.messages.Delete(ctx, messageID); err != nil {
		if errors.Is(err, msgrepo.ErrMessageNotFound) {
			return NewNotFoundError(op, "message not found")
		}
		return NewStorageError(op, err)
	}

	metrics.MessageMutations.WithLabelValues("delete", "ok").Inc()
	s.logger.Debug("message deleted", "message_id", messageID, "room_id", message.ChatRoomID)
	return nil
}

func (s *MessageStore) checkMutable(op string, message *domain.ChatMessage, callerIsProvider bool) error {
	if message.SenderRoleIsProvider != callerIsProvider {
		return NewForbiddenError(op, "only the sender can change a message")
	}
	if s.config.now().Sub(message.CreatedDateTime) >= s.config.MutabilityWindow {
		return NewForbiddenError(op, "message is too old to change")
	}
	return nil
}
