package assistant

// toolProperty describes one parameter of a tool.
type toolProperty struct {
	Type        string   `json:"type"`
	Description string   `json:"description"`
	Enum        []string `json:"enum,omitempty"`
}

type toolParameterSchema struct {
	Type       string                  `json:"type"`
	Properties map[string]toolProperty `json:"properties"`
	Required   []string                `json:"required,omitempty"`
}

type toolSpec struct {
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Parameters  toolParameterSchema `json:"parameters"`
}

// toolCatalog is the fixed set of actions advertised in the system prompt.
var toolCatalog = map[ToolName]toolSpec{
	ToolCreateWidget: {
		Name:        string(ToolCreateWidget),
		Description: "Creates a new widget based on user requirements.",
		Parameters: toolParameterSchema{
			Type: "object",
			Properties: map[string]toolProperty{
				"type": {
					Type:        "string",
					Enum:        []string{"salesforce", "note", "pica"},
					Description: "The type of widget to create",
				},
				"title": {
					Type:        "string",
					Description: "The title of the widget",
				},
				"preferences": {
					Type:        "object",
					Description: "Widget-specific preferences. Salesforce widgets must include columns, soql_query and object_type; note widgets must include content.",
				},
			},
			Required: []string{"type", "title", "preferences"},
		},
	},
	ToolUpdateWidget: {
		Name:        string(ToolUpdateWidget),
		Description: "Updates the widget currently being edited. Use it for ANY changes to the widget including visual changes, data changes, or configuration updates.",
		Parameters: toolParameterSchema{
			Type: "object",
			Properties: map[string]toolProperty{
				"title": {
					Type:        "string",
					Description: "The title of the widget (preserve the current title unless asked to change it)",
				},
				"preferences": {
					Type:        "object",
					Description: "Only the preference keys that need to change. Untouched keys are preserved.",
				},
			},
			Required: []string{"title"},
		},
	},
	ToolFinalAnswer: {
		Name:        string(ToolFinalAnswer),
		Description: "Use this to provide a final response to the user without taking any action",
		Parameters: toolParameterSchema{
			Type: "object",
			Properties: map[string]toolProperty{
				"message": {
					Type:        "string",
					Description: "The message to send to the user",
				},
			},
			Required: []string{"message"},
		},
	},
}
