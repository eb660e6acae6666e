// File: internal/repository/directory/directory_repository.go
package directory

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/iyunix/go-workshopchat/internal/domain"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("ownership record not found")

type gormDirectoryRepository struct {
	db     *gorm.DB
	logger Logger
}

func NewDirectoryRepository(db *gorm.DB, logger Logger) DirectoryRepository {
	return &gormDirectoryRepository{db: db, logger: logger}
}

func (r *gormDirectoryRepository) ResolveProviderID(ctx context.Context, userID string) (uuid.UUID, error) {
	if err := validateUserID(userID); err != nil {
		return uuid.Nil, err
	}

	var provider domain.Provider
	err := r.db.WithContext(ctx).Select("id").Where("user_id = ?", userID).Take(&provider).Error
	return r.handleFindError(err, provider.ID, "ResolveProviderID")
}

func (r *gormDirectoryRepository) ResolveParentID(ctx context.Context, userID string) (uuid.UUID, error) {
	if err := validateUserID(userID); err != nil {
		return uuid.Nil, err
	}

	var parent domain.Parent
	err := r.db.WithContext(ctx).Select("id").Where("user_id = ?", userID).Take(&parent).Error
	return r.handleFindError(err, parent.ID, "ResolveParentID")
}

func (r *gormDirectoryRepository) WorkshopProviderID(ctx context.Context, workshopID uuid.UUID) (uuid.UUID, error) {
	if workshopID == uuid.Nil {
		return uuid.Nil, ErrNotFound
	}

	var workshop domain.Workshop
	err := r.db.WithContext(ctx).Select("provider_id").Where("id = ?", workshopID).Take(&workshop).Error
	return r.handleFindError(err, workshop.ProviderID, "WorkshopProviderID")
}

func validateUserID(userID string) error {
	if strings.TrimSpace(userID) == "" {
		return ErrNotFound
	}
	if len(userID) > 64 {
		return errors.New("user ID must be 64 characters or less")
	}
	return nil
}

func (r *gormDirectoryRepository) handleFindError(err error, id uuid.UUID, operation string) (uuid.UUID, error) {
	if err == nil {
		return id, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return uuid.Nil, ErrNotFound
	}

	r.logger.Error("[DirectoryRepository] query failed", "operation", operation, "error", err)
	return uuid.Nil, errors.New("database query failed")
}
