//go:generate go run go.uber.org/mock/mockgen -source=ownership.go -destination=mocks/mock_ownership.go -package=mocks
package chat

import (
	"context"

	"github.com/google/uuid"
	"github.com/iyunix/go-workshopchat/internal/domain"
)

// OwnershipResolver maps an authenticated user to the provider or parent
// record they control.
type OwnershipResolver interface {
	ResolveProviderID(ctx context.Context, userID string) (uuid.UUID, error)
	ResolveParentID(ctx context.Context, userID string) (uuid.UUID, error)
}

// WorkshopDirectory tells which provider owns a workshop.
type WorkshopDirectory interface {
	WorkshopProviderID(ctx context.Context, workshopID uuid.UUID) (uuid.UUID, error)
}

// OwnershipGate answers whether a caller may act on the room identified by
// (workshopID, parentID). It has no state and never returns an error: a
// failed lookup is treated as missing rights.
type OwnershipGate struct {
	resolver  OwnershipResolver
	workshops WorkshopDirectory
	logger    Logger
}

func NewOwnershipGate(resolver OwnershipResolver, workshops WorkshopDirectory, logger Logger) *OwnershipGate {
	return &OwnershipGate{resolver: resolver, workshops: workshops, logger: logger}
}

func (g *OwnershipGate) HasRights(ctx context.Context, userID string, role domain.Role, workshopID, parentID uuid.UUID) bool {
	if userID == "" {
		return false
	}

	switch role {
	case domain.RoleProvider:
		callerProviderID, err := g.resolver.ResolveProviderID(ctx, userID)
		if err != nil {
			g.logger.Debug("provider resolution failed", "user_id", userID, "error", err)
			return false
		}
		ownerID, err := g.workshops.WorkshopProviderID(ctx, workshopID)
		if err != nil {
			g.logger.Debug("workshop resolution failed", "workshop_id", workshopID, "error", err)
			return false
		}
		return callerProviderID != uuid.Nil && callerProviderID == ownerID

	case domain.RoleParent:
		callerParentID, err := g.resolver.ResolveParentID(ctx, userID)
		if err != nil {
			g.logger.Debug("parent resolution failed", "user_id", userID, "error", err)
			return false
		}
		return callerParentID != uuid.Nil && callerParentID == parentID

	default:
		return false
	}
}

// HasRoomRights is HasRights for an existing room.
func (g *OwnershipGate) HasRoomRights(ctx context.Context, userID string, role domain.Role, room *domain.ChatRoom) bool {
	if room == nil {
		return false
	}
	ok := g.HasRights(ctx, userID, role, room.WorkshopID, room.ParentID)
	if !ok {
		g.logger.Warn("user is trying to access a chat room they do not participate in", "user_id", userID, "role", role.String(), "room_id", room.ID)
	}
	return ok
}

// OwnedEntityID resolves the provider or parent record of the caller.
func (g *OwnershipGate) OwnedEntityID(ctx context.Context, userID string, role domain.Role) (uuid.UUID, bool) {
	var (
		id  uuid.UUID
		err error
	)
	switch role {
	case domain.RoleProvider:
		id, err = g.resolver.ResolveProviderID(ctx, userID)
	case domain.RoleParent:
		id, err = g.resolver.ResolveParentID(ctx, userID)
	default:
		return uuid.Nil, false
	}
	if err != nil || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}
