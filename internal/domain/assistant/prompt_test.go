package assistant

import (
	"strings"
	"testing"

	"dashboard-server/internal/domain/widget"
)

func TestBuildSystemPromptListsTools(t *testing.T) {
	prompt := BuildSystemPrompt(nil)

	for _, tool := range []string{"create_widget", "update_widget", "final_answer"} {
		if !strings.Contains(prompt, tool) {
			t.Errorf("expected prompt to mention %s", tool)
		}
	}
	if strings.Contains(prompt, "EDIT MODE") {
		t.Error("expected no edit context without a current widget")
	}
}

func TestBuildSystemPromptEmbedsCurrentWidget(t *testing.T) {
	current := &widget.Widget{
		ID:          "wdgt_abc",
		Type:        widget.TypeSalesforce,
		Title:       "Top Accounts",
		Preferences: widget.Preferences{"soql_query": "SELECT Id FROM Account"},
		OwnerID:     "user-1",
	}

	prompt := BuildSystemPrompt(current)

	if !strings.Contains(prompt, "EDIT MODE") {
		t.Error("expected edit mode context")
	}
	if !strings.Contains(prompt, "wdgt_abc") || !strings.Contains(prompt, "Top Accounts") {
		t.Error("expected the current widget record embedded in the prompt")
	}
	if !strings.Contains(prompt, "SELECT Id FROM Account") {
		t.Error("expected existing preferences embedded in the prompt")
	}
	if !strings.Contains(prompt, "Preserve existing preferences") {
		t.Error("expected the preserve instruction")
	}
	if !strings.Contains(prompt, "current widget's title") {
		t.Error("expected the title carry-forward instruction")
	}
}
