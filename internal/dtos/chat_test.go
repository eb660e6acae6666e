package dtos

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/iyunix/go-workshopchat/internal/domain"
	chatservice "github.com/iyunix/go-workshopchat/internal/services/chat"
	"github.com/stretchr/testify/require"
)

func TestRenderText(t *testing.T) {
	require.Equal(t, "<p>see you <strong>soon</strong></p>", RenderText("see you **soon**"))
	require.NotContains(t, RenderText("<script>alert(1)</script>"), "<script>")
}

func TestSendMessageRequest_IDs(t *testing.T) {
	workshopID, parentID := uuid.New(), uuid.New()

	gotWorkshop, gotParent, err := SendMessageRequest{WorkshopID: workshopID.String(), ParentID: parentID.String()}.IDs()
	require.NoError(t, err)
	require.Equal(t, workshopID, gotWorkshop)
	require.Equal(t, parentID, gotParent)

	_, _, err = SendMessageRequest{WorkshopID: "nope", ParentID: parentID.String()}.IDs()
	require.Error(t, err)
	_, _, err = SendMessageRequest{WorkshopID: workshopID.String(), ParentID: ""}.IDs()
	require.Error(t, err)
}

func TestToMessageResponse(t *testing.T) {
	readAt := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	msg := domain.ChatMessage{
		ID:                   uuid.New(),
		ChatRoomID:           uuid.New(),
		Text:                 "hello",
		SenderRoleIsProvider: true,
		ReadDateTime:         &readAt,
	}

	dto := ToMessageResponse(msg)
	require.Equal(t, "provider", dto.SenderRole)
	require.True(t, dto.IsRead)
	require.Equal(t, "<p>hello</p>", dto.TextHTML)

	msg.SenderRoleIsProvider = false
	msg.ReadDateTime = nil
	dto = ToMessageResponse(msg)
	require.Equal(t, "parent", dto.SenderRole)
	require.False(t, dto.IsRead)
}

func TestToRoomSummaries(t *testing.T) {
	room := domain.ChatRoom{ID: uuid.New()}
	last := domain.ChatMessage{ID: uuid.New(), ChatRoomID: room.ID, Text: "x"}

	out := ToRoomSummaries([]chatservice.RoomSummary{
		{Room: room, LastMessage: &last, UnreadCount: 2},
		{Room: domain.ChatRoom{ID: uuid.New()}},
	})
	require.Len(t, out, 2)
	require.Equal(t, last.ID, out[0].LastMessage.ID)
	require.EqualValues(t, 2, out[0].UnreadCount)
	require.Nil(t, out[1].LastMessage)
}
