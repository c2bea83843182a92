// Package widget provides PostgreSQL persistence for dashboard widgets.
package widget

import (
	"context"
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	domain "dashboard-server/internal/domain/widget"
	"dashboard-server/internal/infrastructure/database/entities"
	"dashboard-server/internal/utils/idgen"
	"dashboard-server/internal/utils/platformerrors"
)

// PostgresRepository provides persistence for widgets.
type PostgresRepository struct {
	db *gorm.DB
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new widget record and assigns its public ID.
func (r *PostgresRepository) Create(ctx context.Context, w *domain.Widget) error {
	entity := entities.NewSchemaWidget(w)
	if entity.PublicID == "" {
		id, err := idgen.GenerateSecureID("wdgt", 12)
		if err != nil {
			return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeInternal,
				"failed to generate widget id", err, "widget-create-id-001")
		}
		entity.PublicID = id
	}
	if entity.Preferences == nil {
		entity.Preferences = datatypes.JSONMap{}
	}

	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to create widget", err, "widget-create-db-001")
	}

	w.ID = entity.PublicID
	w.CreatedAt = entity.CreatedAt
	w.UpdatedAt = entity.UpdatedAt
	return nil
}

// Update persists title and preferences for an existing widget and refreshes
// its updated timestamp. Type and owner are never changed by an update.
func (r *PostgresRepository) Update(ctx context.Context, w *domain.Widget) error {
	now := time.Now().UTC()
	result := r.db.WithContext(ctx).
		Model(&entities.Widget{}).
		Where("public_id = ?", w.ID).
		Updates(map[string]interface{}{
			"title":       w.Title,
			"preferences": datatypes.JSONMap(w.Preferences),
			"updated_at":  now,
		})

	if result.Error != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to update widget", result.Error, "widget-update-db-001")
	}
	if result.RowsAffected == 0 {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound,
			"widget not found", nil, "widget-update-notfound-001")
	}

	w.UpdatedAt = now
	return nil
}

// FindByID retrieves a widget by public ID.
func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*domain.Widget, error) {
	var entity entities.Widget
	if err := r.db.WithContext(ctx).
		Where("public_id = ?", id).
		First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound,
				"widget not found", err, "widget-find-notfound-001")
		}
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to find widget", err, "widget-find-db-001")
	}

	return entity.EtoD(), nil
}

// ListByOwner retrieves all widgets owned by the given user.
func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Widget, error) {
	var rows []entities.Widget
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("updated_at DESC").
		Find(&rows).Error; err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to list widgets", err, "widget-list-db-001")
	}

	widgets := make([]*domain.Widget, len(rows))
	for i := range rows {
		widgets[i] = rows[i].EtoD()
	}
	return widgets, nil
}

// Delete removes a widget by public ID.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).
		Where("public_id = ?", id).
		Delete(&entities.Widget{})

	if result.Error != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to delete widget", result.Error, "widget-delete-db-001")
	}
	if result.RowsAffected == 0 {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound,
			"widget not found", nil, "widget-delete-notfound-001")
	}
	return nil
}
