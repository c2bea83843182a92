package widget

import (
	"context"
	"fmt"
	"strings"

	"dashboard-server/internal/utils/platformerrors"
)

// Preference keys the salesforce renderer cannot work without.
const (
	PrefSOQLQuery  = "soql_query"
	PrefObjectType = "object_type"
	PrefColumns    = "columns"
)

// PrefContent is the text body a note widget renders.
const PrefContent = "content"

// MissingSalesforceFields returns the convention-required salesforce
// preference keys absent from prefs.
func MissingSalesforceFields(prefs Preferences) []string {
	var missing []string
	for _, key := range []string{PrefColumns, PrefSOQLQuery, PrefObjectType} {
		if v, ok := prefs[key]; !ok || v == nil {
			missing = append(missing, key)
		}
	}
	return missing
}

// ValidateNew checks the fields required before a widget may be inserted.
// Salesforce widgets carry required query keys and note widgets a content
// body; pica preferences are convention only.
func ValidateNew(ctx context.Context, t Type, title string, prefs Preferences) error {
	if !t.Valid() {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			fmt.Sprintf("unknown widget type %q", t), nil, "widget-validate-type-001")
	}
	if strings.TrimSpace(title) == "" {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"widget title is required", nil, "widget-validate-title-001")
	}
	if prefs == nil {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"widget preferences are required", nil, "widget-validate-prefs-001")
	}
	return ValidatePreferences(ctx, t, prefs)
}

// ValidatePreferences checks per-type required preference keys. It is also
// applied to the merged result of an update so a partial edit cannot strip a
// salesforce widget of its query configuration or a note of its content.
func ValidatePreferences(ctx context.Context, t Type, prefs Preferences) error {
	switch t {
	case TypeSalesforce:
		if missing := MissingSalesforceFields(prefs); len(missing) > 0 {
			return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
				fmt.Sprintf("missing required salesforce fields: %s", strings.Join(missing, ", ")),
				nil, "widget-validate-salesforce-001")
		}
	case TypeNote:
		if content, ok := prefs.StringValue(PrefContent); !ok || strings.TrimSpace(content) == "" {
			return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
				"note widgets require a content preference", nil, "widget-validate-note-001")
		}
	}
	return nil
}
