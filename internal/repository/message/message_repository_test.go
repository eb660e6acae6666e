package message

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/iyunix/go-workshopchat/internal/database"
	"github.com/iyunix/go-workshopchat/internal/domain"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Debug(string, ...interface{}) {}

func newRepo(t *testing.T) MessageRepository {
	t.Helper()
	db, err := database.Open(database.Options{
		Driver:       database.DriverSQLite,
		DSN:          filepath.Join(t.TempDir(), "messages.db"),
		MaxOpenConns: 1,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db, false))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return NewMessageRepository(db, nopLogger{})
}

func seed(t *testing.T, repo MessageRepository, roomID uuid.UUID, fromProvider bool, at time.Time) *domain.ChatMessage {
	t.Helper()
	msg, err := repo.Create(context.Background(), &domain.ChatMessage{
		ChatRoomID:           roomID,
		Text:                 "text",
		SenderRoleIsProvider: fromProvider,
		CreatedDateTime:      at,
	})
	require.NoError(t, err)
	return msg
}

func TestPagination(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()
	roomID := uuid.New()
	base := time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC)

	var ids []uuid.UUID
	for i := 0; i < 4; i++ {
		ids = append(ids, seed(t, repo, roomID, false, base.Add(time.Duration(i)*time.Minute)).ID)
	}
	seed(t, repo, uuid.New(), false, base)

	page, err := repo.FindByChatRoomIDWithPagination(ctx, roomID, 2, 1)
	require.NoError(t, err)
	require.Len(t, page, 2)
	require.Equal(t, ids[1], page[0].ID)
	require.Equal(t, ids[2], page[1].ID)

	_, err = repo.FindByChatRoomIDWithPagination(ctx, roomID, 0, 0)
	require.Error(t, err)
	_, err = repo.FindByChatRoomIDWithPagination(ctx, roomID, MaxPageLimit+1, 0)
	require.Error(t, err)
	_, err = repo.FindByChatRoomIDWithPagination(ctx, roomID, 1, -1)
	require.Error(t, err)

	latest, err := repo.FindLatest(ctx, roomID)
	require.NoError(t, err)
	require.Equal(t, ids[3], latest.ID)

	_, err = repo.FindLatest(ctx, uuid.New())
	require.ErrorIs(t, err, ErrMessageNotFound)
}

func TestPaginationKeepsInsertionOrderForEqualTimestamps(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()
	roomID := uuid.New()
	at := time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC)

	var ids []uuid.UUID
	for i := 0; i < 10; i++ {
		ids = append(ids, seed(t, repo, roomID, i%2 == 0, at).ID)
	}

	page, err := repo.FindByChatRoomIDWithPagination(ctx, roomID, 10, 0)
	require.NoError(t, err)
	require.Len(t, page, 10)
	for i, m := range page {
		require.Equal(t, ids[i], m.ID)
	}
}

func TestUpdateTextAndDelete(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()
	msg := seed(t, repo, uuid.New(), true, time.Now().UTC())

	require.NoError(t, repo.UpdateText(ctx, msg.ID, "changed"))
	got, err := repo.FindByID(ctx, msg.ID)
	require.NoError(t, err)
	require.Equal(t, "changed", got.Text)
	require.True(t, got.SenderRoleIsProvider)
	require.Nil(t, got.ReadDateTime)

	require.ErrorIs(t, repo.UpdateText(ctx, uuid.New(), "x"), ErrMessageNotFound)

	require.NoError(t, repo.Delete(ctx, msg.ID))
	require.ErrorIs(t, repo.Delete(ctx, msg.ID), ErrMessageNotFound)
	_, err = repo.FindByID(ctx, msg.ID)
	require.ErrorIs(t, err, ErrMessageNotFound)
}

func TestMarkReadAndCountUnread(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()
	roomID := uuid.New()
	now := time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC)

	seed(t, repo, roomID, false, now)
	seed(t, repo, roomID, false, now)
	seed(t, repo, roomID, true, now)

	count, err := repo.CountUnread(ctx, roomID, true)
	require.NoError(t, err)
	require.EqualValues(t, 2, count)

	updated, err := repo.MarkRead(ctx, roomID, true, now.Add(time.Minute))
	require.NoError(t, err)
	require.EqualValues(t, 2, updated)

	updated, err = repo.MarkRead(ctx, roomID, true, now.Add(time.Hour))
	require.NoError(t, err)
	require.Zero(t, updated)

	count, err = repo.CountUnread(ctx, roomID, false)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)
}
