package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/iyunix/go-workshopchat/internal/domain"
	"github.com/iyunix/go-workshopchat/internal/middleware"
	chatservice "github.com/iyunix/go-workshopchat/internal/services/chat"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Error(string, ...interface{}) {}

// stubChatService records the last call and returns canned results.
type stubChatService struct {
	err error

	gotUserID string
	gotRole   domain.Role
	gotRoomID uuid.UUID
	gotOffset int
	gotSize   int
	gotText   string
	gotBlock  bool

	message   *domain.ChatMessage
	messages  []domain.ChatMessage
	room      *domain.ChatRoom
	summaries []chatservice.RoomSummary
	updated   int64
}

func (s *stubChatService) record(userID string, role domain.Role) {
	s.gotUserID, s.gotRole = userID, role
}

func (s *stubChatService) SendMessage(_ context.Context, userID string, role domain.Role, workshopID, parentID uuid.UUID, text string) (*domain.ChatMessage, error) {
	s.record(userID, role)
	s.gotText = text
	return s.message, s.err
}

func (s *stubChatService) ReadRoom(_ context.Context, userID string, role domain.Role, roomID uuid.UUID) (*domain.ChatRoom, error) {
	s.record(userID, role)
	s.gotRoomID = roomID
	return s.room, s.err
}

func (s *stubChatService) ReadMessages(_ context.Context, userID string, role domain.Role, roomID uuid.UUID, offset, size int) ([]domain.ChatMessage, error) {
	s.record(userID, role)
	s.gotRoomID, s.gotOffset, s.gotSize = roomID, offset, size
	return s.messages, s.err
}

func (s *stubChatService) ListMyRooms(_ context.Context, userID string, role domain.Role) ([]chatservice.RoomSummary, error) {
	s.record(userID, role)
	return s.summaries, s.err
}

func (s *stubChatService) GetRoomForWorkshop(_ context.Context, userID string, role domain.Role, _ uuid.UUID) (*chatservice.RoomSummary, error) {
	s.record(userID, role)
	if s.err != nil {
		return nil, s.err
	}
	return &s.summaries[0], nil
}

func (s *stubChatService) ListRoomsWithParent(_ context.Context, userID string, role domain.Role, _ uuid.UUID) ([]chatservice.RoomSummary, error) {
	s.record(userID, role)
	return s.summaries, s.err
}

func (s *stubChatService) MarkRoomRead(_ context.Context, userID string, role domain.Role, roomID uuid.UUID) (int64, error) {
	s.record(userID, role)
	s.gotRoomID = roomID
	return s.updated, s.err
}

func (s *stubChatService) EditMessage(_ context.Context, userID string, role domain.Role, _ uuid.UUID, newText string) (*domain.ChatMessage, error) {
	s.record(userID, role)
	s.gotText = newText
	return s.message, s.err
}

func (s *stubChatService) DeleteMessage(_ context.Context, userID string, role domain.Role, _ uuid.UUID) error {
	s.record(userID, role)
	return s.err
}

func (s *stubChatService) DeleteRoom(_ context.Context, userID string, role domain.Role, roomID uuid.UUID) error {
	s.record(userID, role)
	s.gotRoomID = roomID
	return s.err
}

func (s *stubChatService) SetRoomBlocked(_ context.Context, userID string, role domain.Role, _ uuid.UUID, blocked bool) (*domain.ChatRoom, error) {
	s.record(userID, role)
	s.gotBlock = blocked
	return s.room, s.err
}

func newTestRouter(svc ChatService) *mux.Router {
	router := mux.NewRouter()
	NewChatHandler(svc, nopLogger{}).Routes(router.PathPrefix("/api/chat").Subrouter(), nil)
	return router
}

func do(router http.Handler, method, path, body string, authed bool) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if authed {
		req = req.WithContext(middleware.WithIdentity(req.Context(), "user-1", domain.RoleParent))
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestSendMessage(t *testing.T) {
	msg := &domain.ChatMessage{ID: uuid.New(), ChatRoomID: uuid.New(), Text: "*hi*", CreatedDateTime: time.Now().UTC()}
	svc := &stubChatService{message: msg}
	router := newTestRouter(svc)

	body := `{"workshopId":"` + uuid.NewString() + `","parentId":"` + uuid.NewString() + `","text":"*hi*"}`
	rec := do(router, http.MethodPost, "/api/chat/messages", body, true)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, "user-1", svc.gotUserID)
	require.Equal(t, domain.RoleParent, svc.gotRole)
	require.Equal(t, "*hi*", svc.gotText)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, msg.ID.String(), resp["id"])
	require.Equal(t, "<p><em>hi</em></p>", resp["textHtml"])
	require.Equal(t, "parent", resp["senderRole"])
}

func TestSendMessage_BadRequests(t *testing.T) {
	router := newTestRouter(&stubChatService{})

	tests := []struct {
		name string
		body string
	}{
		{name: "malformed json", body: `{`},
		{name: "missing text", body: `{"workshopId":"` + uuid.NewString() + `","parentId":"` + uuid.NewString() + `"}`},
		{name: "bad workshop id", body: `{"workshopId":"nope","parentId":"` + uuid.NewString() + `","text":"x"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(router, http.MethodPost, "/api/chat/messages", tt.body, true)
			require.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestSendMessage_UnparsableIDWithoutTagCheck(t *testing.T) {
	svc := &stubChatService{}
	handler := NewChatHandler(svc, nopLogger{})
	lax := validator.New()
	lax.SetTagName("unchecked")
	handler.validate = lax

	router := mux.NewRouter()
	handler.Routes(router.PathPrefix("/api/chat").Subrouter(), nil)

	body := `{"workshopId":"nope","parentId":"` + uuid.NewString() + `","text":"x"}`
	require.NotPanics(t, func() {
		rec := do(router, http.MethodPost, "/api/chat/messages", body, true)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
	require.Empty(t, svc.gotUserID)
}

func TestUnauthenticated(t *testing.T) {
	router := newTestRouter(&stubChatService{})

	rec := do(router, http.MethodGet, "/api/chat/rooms", "", false)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "validation", err: chatservice.NewValidationError("op", "bad"), want: http.StatusBadRequest},
		{name: "not found", err: chatservice.NewNotFoundError("op", "missing"), want: http.StatusNotFound},
		{name: "forbidden", err: chatservice.NewForbiddenError("op", "no rights for this chat room"), want: http.StatusForbidden},
		{name: "storage", err: chatservice.NewStorageError("op", errors.New("disk on fire")), want: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(&stubChatService{err: tt.err})
			rec := do(router, http.MethodGet, "/api/chat/rooms/"+uuid.NewString(), "", true)
			require.Equal(t, tt.want, rec.Code)
			require.NotContains(t, rec.Body.String(), "no rights")
			require.NotContains(t, rec.Body.String(), "disk on fire")
		})
	}
}

func TestGetRoomMessages_Paging(t *testing.T) {
	svc := &stubChatService{messages: []domain.ChatMessage{{ID: uuid.New()}}}
	router := newTestRouter(svc)
	roomID := uuid.New()

	rec := do(router, http.MethodGet, "/api/chat/rooms/"+roomID.String()+"/messages?offset=20&size=10", "", true)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, roomID, svc.gotRoomID)
	require.Equal(t, 20, svc.gotOffset)
	require.Equal(t, 10, svc.gotSize)

	rec = do(router, http.MethodGet, "/api/chat/rooms/"+roomID.String()+"/messages", "", true)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Zero(t, svc.gotOffset)
	require.Zero(t, svc.gotSize)

	rec = do(router, http.MethodGet, "/api/chat/rooms/"+roomID.String()+"/messages?size=ten", "", true)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(router, http.MethodGet, "/api/chat/rooms/not-a-uuid/messages", "", true)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMarkRoomRead(t *testing.T) {
	svc := &stubChatService{updated: 3}
	router := newTestRouter(svc)

	rec := do(router, http.MethodPost, "/api/chat/rooms/"+uuid.NewString()+"/read", "", true)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"updated":3}`, rec.Body.String())
}

func TestSetRoomBlocked(t *testing.T) {
	room := &domain.ChatRoom{ID: uuid.New(), IsBlockedByProvider: true}
	svc := &stubChatService{room: room}
	router := newTestRouter(svc)

	rec := do(router, http.MethodPut, "/api/chat/rooms/"+room.ID.String()+"/block", `{"blocked":true}`, true)
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, svc.gotBlock)

	rec = do(router, http.MethodPut, "/api/chat/rooms/"+room.ID.String()+"/block", `{}`, true)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteEndpoints(t *testing.T) {
	router := newTestRouter(&stubChatService{})

	rec := do(router, http.MethodDelete, "/api/chat/rooms/"+uuid.NewString(), "", true)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(router, http.MethodDelete, "/api/chat/messages/"+uuid.NewString(), "", true)
	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestListEndpoints(t *testing.T) {
	summaries := []chatservice.RoomSummary{{Room: domain.ChatRoom{ID: uuid.New()}, UnreadCount: 4}}
	router := newTestRouter(&stubChatService{summaries: summaries})

	for _, path := range []string{
		"/api/chat/rooms",
		"/api/chat/parents/" + uuid.NewString() + "/rooms",
	} {
		rec := do(router, http.MethodGet, path, "", true)
		require.Equal(t, http.StatusOK, rec.Code, path)

		var resp []map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp, 1)
		require.EqualValues(t, 4, resp[0]["unreadCount"])
	}

	rec := do(router, http.MethodGet, "/api/chat/workshops/"+uuid.NewString()+"/room", "", true)
	require.Equal(t, http.StatusOK, rec.Code)
}

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) PingContext(ctx context.Context) error { return f(ctx) }

func TestHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	Health(pingerFunc(func(context.Context) error { return nil }))(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	Health(pingerFunc(func(context.Context) error { return errors.New("down") }))(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
