package entities

import (
	"time"

	"gorm.io/datatypes"

	"dashboard-server/internal/domain/widget"
)

// Widget represents the database schema for dashboard widgets.
type Widget struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	PublicID    string            `gorm:"type:varchar(64);uniqueIndex;not null"`
	Type        string            `gorm:"type:varchar(32);not null"`
	Title       string            `gorm:"type:varchar(512);not null"`
	Preferences datatypes.JSONMap `gorm:"type:jsonb;not null"`
	OwnerID     string            `gorm:"type:varchar(64);index:idx_widget_owner_id;not null"`
}

// TableName specifies the table name for Widget.
func (Widget) TableName() string {
	return "widget"
}

// EtoD converts the database entity to the domain model.
func (w *Widget) EtoD() *widget.Widget {
	prefs := widget.Preferences{}
	if w.Preferences != nil {
		prefs = widget.Preferences(w.Preferences)
	}

	return &widget.Widget{
		ID:          w.PublicID,
		Type:        widget.Type(w.Type),
		Title:       w.Title,
		Preferences: prefs,
		OwnerID:     w.OwnerID,
		CreatedAt:   w.CreatedAt,
		UpdatedAt:   w.UpdatedAt,
	}
}

// NewSchemaWidget creates a database entity from the domain model.
func NewSchemaWidget(w *widget.Widget) *Widget {
	return &Widget{
		PublicID:    w.ID,
		Type:        w.Type.String(),
		Title:       w.Title,
		Preferences: datatypes.JSONMap(w.Preferences),
		OwnerID:     w.OwnerID,
		CreatedAt:   w.CreatedAt,
		UpdatedAt:   w.UpdatedAt,
	}
}
