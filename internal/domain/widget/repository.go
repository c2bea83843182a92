package widget

import "context"

// Repository defines the interface for widget persistence.
type Repository interface {
	// Create persists a new widget and assigns its public ID.
	Create(ctx context.Context, widget *Widget) error

	// Update persists a new title and preferences for the widget,
	// refreshing its updated timestamp.
	Update(ctx context.Context, widget *Widget) error

	// FindByID retrieves a widget by public ID.
	FindByID(ctx context.Context, id string) (*Widget, error)

	// ListByOwner retrieves all widgets owned by the given user, most
	// recently updated first.
	ListByOwner(ctx context.Context, ownerID string) ([]*Widget, error)

	// Delete removes a widget by public ID.
	Delete(ctx context.Context, id string) error
}
