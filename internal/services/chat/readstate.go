package chat

import (
	"context"

	"github.com/google/uuid"
	"github.com/iyunix/go-workshopchat/internal/metrics"
	msgrepo "github.com/iyunix/go-workshopchat/internal/repository/message"
)

// ReadStateTracker stamps read times and derives unread counts. A message is
// unread for a viewer when the other side sent it and ReadDateTime is null.
type ReadStateTracker struct {
	messages msgrepo.MessageRepository
	config   *Config
	logger   Logger
}

func NewReadStateTracker(messages msgrepo.MessageRepository, config *Config, logger Logger) *ReadStateTracker {
	return &ReadStateTracker{messages: messages, config: config, logger: logger}
}

// MarkRead returns how many messages were stamped; 0 when nothing was unread.
func (t *ReadStateTracker) MarkRead(ctx context.Context, roomID uuid.UUID, readerIsProvider bool) (int64, error) {
	updated, err := t.messages.MarkRead(ctx, roomID, readerIsProvider, t.config.now())
	if err != nil {
		return 0, NewStorageError("mark_read", err)
	}
	if updated > 0 {
		metrics.MessagesMarkedRead.Add(float64(updated))
		t.logger.Debug("messages marked read", "room_id", roomID, "count", updated)
	}
	return updated, nil
}

func (t *ReadStateTracker) UnreadCountForViewer(ctx context.Context, roomID uuid.UUID, viewerIsProvider bool) (int64, error) {
	count, err := t.messages.CountUnread(ctx, roomID, viewerIsProvider)
	if err != nil {
		return 0, NewStorageError("unread_count", err)
	}
	return count, nil
}
