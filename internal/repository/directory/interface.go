package directory

import (
	"context"

	"github.com/google/uuid"
)

// DirectoryRepository reads the ownership facts owned by the rest of the
// system: which provider or parent record a user controls, and which
// provider owns a workshop.
type DirectoryRepository interface {
	ResolveProviderID(ctx context.Context, userID string) (uuid.UUID, error)
	ResolveParentID(ctx context.Context, userID string) (uuid.UUID, error)
	WorkshopProviderID(ctx context.Context, workshopID uuid.UUID) (uuid.UUID, error)
}

// Logger is the logging surface the repository needs.
type Logger interface {
	Error(msg string, keysAndValues ...interface{})
}
