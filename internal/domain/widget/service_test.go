package widget

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"dashboard-server/internal/utils/platformerrors"
)

// MockRepository is a function-field mock of Repository.
type MockRepository struct {
	CreateFunc      func(ctx context.Context, w *Widget) error
	UpdateFunc      func(ctx context.Context, w *Widget) error
	FindByIDFunc    func(ctx context.Context, id string) (*Widget, error)
	ListByOwnerFunc func(ctx context.Context, ownerID string) ([]*Widget, error)
	DeleteFunc      func(ctx context.Context, id string) error
}

func (m *MockRepository) Create(ctx context.Context, w *Widget) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, w)
	}
	return nil
}

func (m *MockRepository) Update(ctx context.Context, w *Widget) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, w)
	}
	return nil
}

func (m *MockRepository) FindByID(ctx context.Context, id string) (*Widget, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockRepository) ListByOwner(ctx context.Context, ownerID string) ([]*Widget, error) {
	if m.ListByOwnerFunc != nil {
		return m.ListByOwnerFunc(ctx, ownerID)
	}
	return nil, nil
}

func (m *MockRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func notFound(ctx context.Context) error {
	return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound,
		"widget not found", nil, "test-notfound")
}

func TestServiceCreateNote(t *testing.T) {
	var inserted *Widget
	repo := &MockRepository{
		CreateFunc: func(ctx context.Context, w *Widget) error {
			w.ID = "wdgt_1"
			inserted = w
			return nil
		},
	}
	svc := NewService(repo, nil, zerolog.Nop())

	w, err := svc.Create(context.Background(), CreateParams{
		OwnerID:     "user-1",
		Type:        TypeNote,
		Title:       "T",
		Preferences: Preferences{"content": "x"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if inserted == nil {
		t.Fatal("expected repository insert")
	}
	if w.OwnerID != "user-1" || w.Title != "T" || w.Type != TypeNote {
		t.Errorf("unexpected widget: %+v", w)
	}
	if w.Preferences["content"] != "x" {
		t.Errorf("unexpected preferences: %v", w.Preferences)
	}
}

func TestServiceCreateSalesforceMissingFieldsNoInsert(t *testing.T) {
	createCalled := false
	repo := &MockRepository{
		CreateFunc: func(ctx context.Context, w *Widget) error {
			createCalled = true
			return nil
		},
	}
	svc := NewService(repo, nil, zerolog.Nop())

	_, err := svc.Create(context.Background(), CreateParams{
		OwnerID:     "user-1",
		Type:        TypeSalesforce,
		Title:       "T",
		Preferences: Preferences{},
	})
	if !platformerrors.IsType(err, platformerrors.ErrorTypeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if createCalled {
		t.Error("expected no insert on validation failure")
	}
}

func TestServiceUpdateOmittedTitleFallsBack(t *testing.T) {
	var updated *Widget
	repo := &MockRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*Widget, error) {
			return &Widget{
				ID:          id,
				Type:        TypeNote,
				Title:       "Old",
				OwnerID:     "user-1",
				Preferences: Preferences{"content": "x", "a": 1, "b": 2},
			}, nil
		},
		UpdateFunc: func(ctx context.Context, w *Widget) error {
			updated = w
			return nil
		},
	}
	svc := NewService(repo, nil, zerolog.Nop())

	w, err := svc.Update(context.Background(), UpdateParams{
		OwnerID:     "user-1",
		ID:          "wdgt_1",
		Preferences: Preferences{"b": 3},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if updated == nil {
		t.Fatal("expected repository update")
	}
	if w.Title != "Old" {
		t.Errorf("expected title fallback to 'Old', got %q", w.Title)
	}
	if w.Preferences["a"] != 1 || w.Preferences["b"] != 3 {
		t.Errorf("unexpected merged preferences: %v", w.Preferences)
	}
}

func TestServiceUpdateNotFound(t *testing.T) {
	updateCalled := false
	repo := &MockRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*Widget, error) {
			return nil, notFound(ctx)
		},
		UpdateFunc: func(ctx context.Context, w *Widget) error {
			updateCalled = true
			return nil
		},
	}
	svc := NewService(repo, nil, zerolog.Nop())

	_, err := svc.Update(context.Background(), UpdateParams{OwnerID: "user-1", ID: "wdgt_missing"})
	if !platformerrors.IsType(err, platformerrors.ErrorTypeNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
	if updateCalled {
		t.Error("expected no row mutation on not-found")
	}
}

func TestServiceUpdateOtherOwnerReportedNotFound(t *testing.T) {
	repo := &MockRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*Widget, error) {
			return &Widget{ID: id, OwnerID: "someone-else", Type: TypeNote, Title: "T"}, nil
		},
	}
	svc := NewService(repo, nil, zerolog.Nop())

	_, err := svc.Update(context.Background(), UpdateParams{OwnerID: "user-1", ID: "wdgt_1"})
	if !platformerrors.IsType(err, platformerrors.ErrorTypeNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestServiceUpdateCannotStripSalesforceFields(t *testing.T) {
	repo := &MockRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*Widget, error) {
			return &Widget{
				ID:      id,
				Type:    TypeSalesforce,
				Title:   "Contacts",
				OwnerID: "user-1",
				Preferences: Preferences{
					"soql_query":  "SELECT Id FROM Contact",
					"object_type": "Contact",
					"columns":     []any{},
				},
			}, nil
		},
	}
	svc := NewService(repo, nil, zerolog.Nop())

	// Explicitly nulling a required key must be rejected; merely omitting
	// it is fine because the merge retains the stored value.
	_, err := svc.Update(context.Background(), UpdateParams{
		OwnerID:     "user-1",
		ID:          "wdgt_1",
		Preferences: Preferences{"soql_query": nil},
	})
	if !platformerrors.IsType(err, platformerrors.ErrorTypeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

type recordingPublisher struct {
	created []string
	updated []string
	deleted []string
}

func (p *recordingPublisher) WidgetCreated(w *Widget) { p.created = append(p.created, w.ID) }
func (p *recordingPublisher) WidgetUpdated(w *Widget) { p.updated = append(p.updated, w.ID) }
func (p *recordingPublisher) WidgetDeleted(ownerID, id string) {
	p.deleted = append(p.deleted, id)
}

func TestServicePublishesChangeEvents(t *testing.T) {
	repo := &MockRepository{
		CreateFunc: func(ctx context.Context, w *Widget) error {
			w.ID = "wdgt_1"
			return nil
		},
		FindByIDFunc: func(ctx context.Context, id string) (*Widget, error) {
			return &Widget{ID: id, OwnerID: "user-1", Type: TypeNote, Title: "T", Preferences: Preferences{"content": "x"}}, nil
		},
	}
	pub := &recordingPublisher{}
	svc := NewService(repo, pub, zerolog.Nop())

	if _, err := svc.Create(context.Background(), CreateParams{
		OwnerID: "user-1", Type: TypeNote, Title: "T", Preferences: Preferences{"content": "x"},
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Update(context.Background(), UpdateParams{OwnerID: "user-1", ID: "wdgt_1"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.Delete(context.Background(), "user-1", "wdgt_1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(pub.created) != 1 || len(pub.updated) != 1 || len(pub.deleted) != 1 {
		t.Errorf("expected one event of each kind, got %+v", pub)
	}
}
