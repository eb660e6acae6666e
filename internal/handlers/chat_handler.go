// File: internal/handlers/chat_handler.go
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/iyunix/go-workshopchat/internal/domain"
	"github.com/iyunix/go-workshopchat/internal/dtos"
	"github.com/iyunix/go-workshopchat/internal/middleware"
	chatservice "github.com/iyunix/go-workshopchat/internal/services/chat"
)

// ChatService is the chat façade as the HTTP layer uses it.
type ChatService interface {
	SendMessage(ctx context.Context, userID string, role domain.Role, workshopID, parentID uuid.UUID, text string) (*domain.ChatMessage, error)
	ReadRoom(ctx context.Context, userID string, role domain.Role, roomID uuid.UUID) (*domain.ChatRoom, error)
	ReadMessages(ctx context.Context, userID string, role domain.Role, roomID uuid.UUID, offset, size int) ([]domain.ChatMessage, error)
	ListMyRooms(ctx context.Context, userID string, role domain.Role) ([]chatservice.RoomSummary, error)
	GetRoomForWorkshop(ctx context.Context, userID string, role domain.Role, workshopID uuid.UUID) (*chatservice.RoomSummary, error)
	ListRoomsWithParent(ctx context.Context, userID string, role domain.Role, parentID uuid.UUID) ([]chatservice.RoomSummary, error)
	MarkRoomRead(ctx context.Context, userID string, role domain.Role, roomID uuid.UUID) (int64, error)
	EditMessage(ctx context.Context, userID string, role domain.Role, messageID uuid.UUID, newText string) (*domain.ChatMessage, error)
	DeleteMessage(ctx context.Context, userID string, role domain.Role, messageID uuid.UUID) error
	DeleteRoom(ctx context.Context, userID string, role domain.Role, roomID uuid.UUID) error
	SetRoomBlocked(ctx context.Context, userID string, role domain.Role, roomID uuid.UUID, blocked bool) (*domain.ChatRoom, error)
}

// Logger is the logging surface the handlers need.
type Logger interface {
	Error(msg string, keysAndValues ...interface{})
}

type ChatHandler struct {
	ChatService ChatService
	validate    *validator.Validate
	logger      Logger
}

func NewChatHandler(cs ChatService, logger Logger) *ChatHandler {
	return &ChatHandler{
		ChatService: cs,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
		logger:      logger,
	}
}

// Routes mounts the chat API on r. sendMiddleware wraps only the send
// endpoint, which is where rate limiting applies.
func (h *ChatHandler) Routes(r *mux.Router, sendMiddleware func(http.Handler) http.Handler) {
	send := http.Handler(http.HandlerFunc(h.SendMessage))
	if sendMiddleware != nil {
		send = sendMiddleware(send)
	}

	r.Handle("/messages", send).Methods(http.MethodPost)
	r.HandleFunc("/messages/{id}", h.EditMessage).Methods(http.MethodPut)
	r.HandleFunc("/messages/{id}", h.DeleteMessage).Methods(http.MethodDelete)

	r.HandleFunc("/rooms", h.ListMyRooms).Methods(http.MethodGet)
	r.HandleFunc("/rooms/{id}", h.GetRoom).Methods(http.MethodGet)
	r.HandleFunc("/rooms/{id}", h.DeleteRoom).Methods(http.MethodDelete)
	r.HandleFunc("/rooms/{id}/messages", h.GetRoomMessages).Methods(http.MethodGet)
	r.HandleFunc("/rooms/{id}/read", h.MarkRoomRead).Methods(http.MethodPost)
	r.HandleFunc("/rooms/{id}/block", h.SetRoomBlocked).Methods(http.MethodPut)

	r.HandleFunc("/workshops/{workshopId}/room", h.GetRoomForWorkshop).Methods(http.MethodGet)
	r.HandleFunc("/parents/{parentId}/rooms", h.ListRoomsWithParent).Methods(http.MethodGet)
}

func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := middleware.Identity(r.Context())
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req dtos.SendMessageRequest
	if !h.decode(w, r, &req) {
		return
	}

	workshopID, parentID, err := req.IDs()
	if err != nil {
		writeError(w, "Bad Request", http.StatusBadRequest)
		return
	}

	msg, err := h.ChatService.SendMessage(r.Context(), userID, role, workshopID, parentID, req.Text)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, dtos.ToMessageResponse(*msg))
}

func (h *ChatHandler) EditMessage(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := middleware.Identity(r.Context())
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	messageID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req dtos.EditMessageRequest
	if !h.decode(w, r, &req) {
		return
	}

	msg, err := h.ChatService.EditMessage(r.Context(), userID, role, messageID, req.Text)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dtos.ToMessageResponse(*msg))
}

func (h *ChatHandler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := middleware.Identity(r.Context())
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	messageID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.ChatService.DeleteMessage(r.Context(), userID, role, messageID); err != nil {
		h.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ChatHandler) ListMyRooms(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := middleware.Identity(r.Context())
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	summaries, err := h.ChatService.ListMyRooms(r.Context(), userID, role)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dtos.ToRoomSummaries(summaries))
}

func (h *ChatHandler) GetRoom(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := middleware.Identity(r.Context())
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	roomID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	room, err := h.ChatService.ReadRoom(r.Context(), userID, role, roomID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dtos.ToRoomResponse(*room))
}

// GetRoomMessages serves one page of a room's history, oldest first.
// Missing offset and size fall back to 0 and the default page size.
func (h *ChatHandler) GetRoomMessages(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := middleware.Identity(r.Context())
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	roomID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	offset, err := queryInt(r, "offset")
	if err != nil {
		writeError(w, "Invalid offset", http.StatusBadRequest)
		return
	}
	size, err := queryInt(r, "size")
	if err != nil {
		writeError(w, "Invalid size", http.StatusBadRequest)
		return
	}

	messages, err := h.ChatService.ReadMessages(r.Context(), userID, role, roomID, offset, size)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dtos.ToMessageResponses(messages))
}

func (h *ChatHandler) MarkRoomRead(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := middleware.Identity(r.Context())
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	roomID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	updated, err := h.ChatService.MarkRoomRead(r.Context(), userID, role, roomID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"updated": updated})
}

func (h *ChatHandler) SetRoomBlocked(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := middleware.Identity(r.Context())
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	roomID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req dtos.BlockRoomRequest
	if !h.decode(w, r, &req) {
		return
	}

	room, err := h.ChatService.SetRoomBlocked(r.Context(), userID, role, roomID, *req.Blocked)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dtos.ToRoomResponse(*room))
}

func (h *ChatHandler) DeleteRoom(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := middleware.Identity(r.Context())
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	roomID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.ChatService.DeleteRoom(r.Context(), userID, role, roomID); err != nil {
		h.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ChatHandler) GetRoomForWorkshop(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := middleware.Identity(r.Context())
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	workshopID, ok := pathUUID(w, r, "workshopId")
	if !ok {
		return
	}

	summary, err := h.ChatService.GetRoomForWorkshop(r.Context(), userID, role, workshopID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dtos.ToRoomSummary(*summary))
}

func (h *ChatHandler) ListRoomsWithParent(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := middleware.Identity(r.Context())
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	parentID, ok := pathUUID(w, r, "parentId")
	if !ok {
		return
	}

	summaries, err := h.ChatService.ListRoomsWithParent(r.Context(), userID, role, parentID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dtos.ToRoomSummaries(summaries))
}

func (h *ChatHandler) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, "Bad Request", http.StatusBadRequest)
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		writeError(w, "Bad Request", http.StatusBadRequest)
		return false
	}
	return true
}

// writeServiceError maps the chat error taxonomy to a status code. Only the
// category is exposed so ownership details do not leak.
func (h *ChatHandler) writeServiceError(w http.ResponseWriter, err error) {
	switch chatservice.TypeOf(err) {
	case chatservice.ErrTypeValidation:
		writeError(w, "Bad Request", http.StatusBadRequest)
	case chatservice.ErrTypeNotFound:
		writeError(w, "Not Found", http.StatusNotFound)
	case chatservice.ErrTypeForbidden:
		writeError(w, "Forbidden", http.StatusForbidden)
	default:
		h.logger.Error("[ChatHandler] request failed", "error", err)
		writeError(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)[name])
	if err != nil {
		writeError(w, "Invalid "+name, http.StatusBadRequest)
		return uuid.Nil, false
	}
	return id, true
}

func queryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}

// writeJSON is a helper for sending JSON responses.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError is a helper for sending JSON error responses.
func writeError(w http.ResponseWriter, message string, status int) {
	writeJSON(w, status, map[string]string{"error": message})
}
