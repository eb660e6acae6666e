// File: internal/dtos/chat.go
package dtos

import (
	"bytes"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/iyunix/go-workshopchat/internal/domain"
	chatservice "github.com/iyunix/go-workshopchat/internal/services/chat"
	"github.com/samber/lo"
	"github.com/yuin/goldmark"
)

// Request bodies. Text limits are enforced by the chat service, which counts
// characters rather than bytes.

type SendMessageRequest struct {
	WorkshopID string `json:"workshopId" validate:"required,uuid"`
	ParentID   string `json:"parentId" validate:"required,uuid"`
	Text       string `json:"text" validate:"required"`
}

// IDs parses the workshop and parent identifiers.
func (r SendMessageRequest) IDs() (workshopID, parentID uuid.UUID, err error) {
	if workshopID, err = uuid.Parse(r.WorkshopID); err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	if parentID, err = uuid.Parse(r.ParentID); err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return workshopID, parentID, nil
}

type EditMessageRequest struct {
	Text string `json:"text" validate:"required"`
}

type BlockRoomRequest struct {
	Blocked *bool `json:"blocked" validate:"required"`
}

// MessageResponseDTO is a message as the API exposes it. TextHTML is the text
// rendered as Markdown with raw HTML suppressed.
type MessageResponseDTO struct {
	ID              uuid.UUID  `json:"id"`
	ChatRoomID      uuid.UUID  `json:"chatRoomId"`
	Text            string     `json:"text"`
	TextHTML        string     `json:"textHtml"`
	SenderRole      string     `json:"senderRole"`
	CreatedDateTime time.Time  `json:"createdDateTime"`
	ReadDateTime    *time.Time `json:"readDateTime"`
	IsRead          bool       `json:"isRead"`
}

type RoomResponseDTO struct {
	ID                  uuid.UUID `json:"id"`
	WorkshopID          uuid.UUID `json:"workshopId"`
	ParentID            uuid.UUID `json:"parentId"`
	IsBlockedByProvider bool      `json:"isBlockedByProvider"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

type RoomSummaryDTO struct {
	Room        RoomResponseDTO     `json:"room"`
	LastMessage *MessageResponseDTO `json:"lastMessage"`
	UnreadCount int64               `json:"unreadCount"`
}

func ToMessageResponse(m domain.ChatMessage) MessageResponseDTO {
	sender := domain.RoleParent
	if m.SenderRoleIsProvider {
		sender = domain.RoleProvider
	}
	return MessageResponseDTO{
		ID:              m.ID,
		ChatRoomID:      m.ChatRoomID,
		Text:            m.Text,
		TextHTML:        RenderText(m.Text),
		SenderRole:      sender.String(),
		CreatedDateTime: m.CreatedDateTime,
		ReadDateTime:    m.ReadDateTime,
		IsRead:          m.IsRead(),
	}
}

func ToMessageResponses(messages []domain.ChatMessage) []MessageResponseDTO {
	return lo.Map(messages, func(m domain.ChatMessage, _ int) MessageResponseDTO {
		return ToMessageResponse(m)
	})
}

func ToRoomResponse(r domain.ChatRoom) RoomResponseDTO {
	return RoomResponseDTO{
		ID:                  r.ID,
		WorkshopID:          r.WorkshopID,
		ParentID:            r.ParentID,
		IsBlockedByProvider: r.IsBlockedByProvider,
		CreatedAt:           r.CreatedAt,
		UpdatedAt:           r.UpdatedAt,
	}
}

func ToRoomSummary(s chatservice.RoomSummary) RoomSummaryDTO {
	dto := RoomSummaryDTO{Room: ToRoomResponse(s.Room), UnreadCount: s.UnreadCount}
	if s.LastMessage != nil {
		last := ToMessageResponse(*s.LastMessage)
		dto.LastMessage = &last
	}
	return dto
}

func ToRoomSummaries(summaries []chatservice.RoomSummary) []RoomSummaryDTO {
	return lo.Map(summaries, func(s chatservice.RoomSummary, _ int) RoomSummaryDTO {
		return ToRoomSummary(s)
	})
}

// goldmark's default renderer omits raw HTML, so user text cannot inject markup.
var markdown = goldmark.New()

// RenderText converts message text to HTML. On a render failure the text is
// returned escaped inside a paragraph.
func RenderText(text string) string {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(text), &buf); err != nil {
		return "<p>" + htmlEscaper.Replace(text) + "</p>"
	}
	return strings.TrimSpace(buf.String())
}

var htmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&#34;", "'", "&#39;")
