package widget

import (
	"context"

	"github.com/rs/zerolog"

	"dashboard-server/internal/infrastructure/metrics"
	"dashboard-server/internal/infrastructure/observability"
	"dashboard-server/internal/utils/platformerrors"
)

// Publisher receives change notifications after successful persistence
// effects. Delivery is best effort and never fails the operation.
type Publisher interface {
	WidgetCreated(w *Widget)
	WidgetUpdated(w *Widget)
	WidgetDeleted(ownerID, id string)
}

// Service defines the interface for widget business logic.
type Service interface {
	// Create inserts a new widget owned by the caller.
	Create(ctx context.Context, params CreateParams) (*Widget, error)

	// Update applies a partial edit: the title falls back to the stored
	// title when omitted and preferences are shallow-merged over the
	// stored preferences.
	Update(ctx context.Context, params UpdateParams) (*Widget, error)

	// Get retrieves one of the caller's widgets.
	Get(ctx context.Context, ownerID, id string) (*Widget, error)

	// List retrieves all widgets owned by the caller.
	List(ctx context.Context, ownerID string) ([]*Widget, error)

	// Delete removes one of the caller's widgets.
	Delete(ctx context.Context, ownerID, id string) error
}

// CreateParams contains the fields required to insert a widget.
type CreateParams struct {
	OwnerID     string
	Type        Type
	Title       string
	Preferences Preferences
}

// UpdateParams contains a partial edit for an existing widget. An empty Title
// keeps the stored title; Preferences are merged key-by-key over the stored
// preferences.
type UpdateParams struct {
	OwnerID     string
	ID          string
	Title       string
	Preferences Preferences
}

type service struct {
	repo      Repository
	publisher Publisher
	log       zerolog.Logger
}

// NewService constructs the widget service. publisher may be nil.
func NewService(repo Repository, publisher Publisher, log zerolog.Logger) Service {
	return &service{
		repo:      repo,
		publisher: publisher,
		log:       log.With().Str("component", "widget-service").Logger(),
	}
}

func (s *service) Create(ctx context.Context, params CreateParams) (*Widget, error) {
	ctx, span := observability.StartWidgetSpan(ctx, "create", "", params.Type.String())
	defer span.End()

	if err := ValidateNew(ctx, params.Type, params.Title, params.Preferences); err != nil {
		metrics.WidgetOpsTotal.WithLabelValues("create", "invalid").Inc()
		observability.RecordError(span, err)
		return nil, err
	}

	w := &Widget{
		Type:        params.Type,
		Title:       params.Title,
		Preferences: params.Preferences.Clone(),
		OwnerID:     params.OwnerID,
	}

	if err := s.repo.Create(ctx, w); err != nil {
		metrics.WidgetOpsTotal.WithLabelValues("create", "error").Inc()
		observability.RecordError(span, err)
		return nil, err
	}

	metrics.WidgetOpsTotal.WithLabelValues("create", "ok").Inc()
	s.log.Info().Str("widget_id", w.ID).Str("type", w.Type.String()).Msg("widget created")

	if s.publisher != nil {
		s.publisher.WidgetCreated(w)
	}
	return w, nil
}

func (s *service) Update(ctx context.Context, params UpdateParams) (*Widget, error) {
	ctx, span := observability.StartWidgetSpan(ctx, "update", params.ID, "")
	defer span.End()

	current, err := s.findOwned(ctx, params.OwnerID, params.ID)
	if err != nil {
		metrics.WidgetOpsTotal.WithLabelValues("update", "not_found").Inc()
		observability.RecordError(span, err)
		return nil, err
	}

	title := params.Title
	if title == "" {
		// Compatibility rule: an omitted title carries the stored one
		// forward rather than failing the edit.
		title = current.Title
	}

	merged := current.Preferences.Merge(params.Preferences)
	if err := ValidatePreferences(ctx, current.Type, merged); err != nil {
		metrics.WidgetOpsTotal.WithLabelValues("update", "invalid").Inc()
		observability.RecordError(span, err)
		return nil, err
	}

	current.Title = title
	current.Preferences = merged

	if err := s.repo.Update(ctx, current); err != nil {
		metrics.WidgetOpsTotal.WithLabelValues("update", "error").Inc()
		observability.RecordError(span, err)
		return nil, err
	}

	metrics.WidgetOpsTotal.WithLabelValues("update", "ok").Inc()
	s.log.Info().Str("widget_id", current.ID).Msg("widget updated")

	if s.publisher != nil {
		s.publisher.WidgetUpdated(current)
	}
	return current, nil
}

func (s *service) Get(ctx context.Context, ownerID, id string) (*Widget, error) {
	return s.findOwned(ctx, ownerID, id)
}

func (s *service) List(ctx context.Context, ownerID string) ([]*Widget, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

func (s *service) Delete(ctx context.Context, ownerID, id string) error {
	ctx, span := observability.StartWidgetSpan(ctx, "delete", id, "")
	defer span.End()

	if _, err := s.findOwned(ctx, ownerID, id); err != nil {
		metrics.WidgetOpsTotal.WithLabelValues("delete", "not_found").Inc()
		observability.RecordError(span, err)
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		metrics.WidgetOpsTotal.WithLabelValues("delete", "error").Inc()
		observability.RecordError(span, err)
		return err
	}

	metrics.WidgetOpsTotal.WithLabelValues("delete", "ok").Inc()
	s.log.Info().Str("widget_id", id).Msg("widget deleted")

	if s.publisher != nil {
		s.publisher.WidgetDeleted(ownerID, id)
	}
	return nil
}

// findOwned loads a widget and verifies ownership. A widget owned by another
// user is reported as not found so existence does not leak across owners.
func (s *service) findOwned(ctx context.Context, ownerID, id string) (*Widget, error) {
	w, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if w.OwnerID != ownerID {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound,
			"widget not found", nil, "widget-owner-mismatch-001")
	}
	return w, nil
}
