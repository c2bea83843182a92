// Package widget defines the dashboard widget domain entities and services.
package widget

import (
	"time"
)

// Type discriminates which renderer and preference conventions apply.
type Type string

const (
	TypeSalesforce Type = "salesforce" // CRM data table backed by a SOQL query
	TypeNote       Type = "note"       // free-text note
	TypePica       Type = "pica"       // generic AI-tool-backed panel
)

// Valid reports whether the type belongs to the closed set.
func (t Type) Valid() bool {
	switch t {
	case TypeSalesforce, TypeNote, TypePica:
		return true
	}
	return false
}

// String returns the string representation of the type.
func (t Type) String() string {
	return string(t)
}

// Widget represents a persisted dashboard panel.
type Widget struct {
	ID          string      `json:"id"`
	Type        Type        `json:"type"`
	Title       string      `json:"title"`
	Preferences Preferences `json:"preferences"`
	OwnerID     string      `json:"owner_id"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}
