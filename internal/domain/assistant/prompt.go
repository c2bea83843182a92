package assistant

import (
	"encoding/json"
	"strings"

	"dashboard-server/internal/domain/widget"
)

// BuildSystemPrompt produces the instruction text sent ahead of the user's
// messages. It is rebuilt on every turn because the edit target and widget
// state may have changed since the prior one. currentWidget is nil when no
// edit target is set.
func BuildSystemPrompt(currentWidget *widget.Widget) string {
	var b strings.Builder

	b.WriteString("You are a helpful AI assistant that helps users manage their dashboard widgets.\n")
	b.WriteString("You have access to the following tools:\n\n")

	catalog, _ := json.MarshalIndent(toolCatalog, "", "  ")
	b.Write(catalog)

	b.WriteString("\n\nAlways follow these rules:\n")
	b.WriteString("1. First understand if the user's request requires creating/updating a widget or just needs information\n")
	b.WriteString("2. If they need a new widget, use the create_widget tool\n")
	b.WriteString("3. If they want to modify an existing widget AND you are in edit mode, ALWAYS use the update_widget tool\n")
	b.WriteString("4. If they just need information or have a question, use the final_answer tool\n")
	b.WriteString("5. Always be clear and concise in your responses\n")
	b.WriteString("6. For salesforce widgets, ALWAYS include columns, soql_query and object_type in preferences\n")
	b.WriteString("7. For note widgets, ALWAYS include a content string in preferences\n")
	b.WriteString("8. If you don't understand the request or can't help, use final_answer to explain why\n")

	if currentWidget != nil {
		b.WriteString("\nCURRENT WIDGET CONTEXT:\nYou are currently in EDIT MODE for this widget:\n")
		state, _ := json.MarshalIndent(currentWidget, "", "  ")
		b.Write(state)
		b.WriteString("\n\nWhen using the update_widget tool:\n")
		b.WriteString("- Use it for ANY changes to the widget (visual, data, or configuration)\n")
		b.WriteString("- ALWAYS include the current widget's title unless specifically asked to change it\n")
		b.WriteString("- Only include the preference keys that need to change\n")
		b.WriteString("- Preserve existing preferences unless explicitly asked to change them\n")
		b.WriteString("- Keep the widget type as is\n")
	}

	b.WriteString("\nYou MUST respond with properly formatted JSON. Example format:\n")
	b.WriteString("{\n")
	b.WriteString("  \"tool\": \"tool_name\",\n")
	b.WriteString("  \"parameters\": {\n")
	b.WriteString("    \"title\": \"Widget Title\",\n")
	b.WriteString("    \"preferences\": {\n")
	b.WriteString("      \"key\": \"value\"\n")
	b.WriteString("    }\n")
	b.WriteString("  }\n")
	b.WriteString("}")

	return b.String()
}
