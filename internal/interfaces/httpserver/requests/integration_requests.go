package requests

// SpeechRequest represents a text-to-speech request.
type SpeechRequest struct {
	Text string `json:"text" binding:"required"`
}

// SalesforceQueryRequest represents a SOQL query proxied to the CRM.
type SalesforceQueryRequest struct {
	Query      string `json:"query" binding:"required"`
	MaxRecords int    `json:"maxRecords,omitempty"`
}

// PicaGenerateRequest represents a generation prompt proxied to the Pica API.
type PicaGenerateRequest struct {
	Prompt   string `json:"prompt" binding:"required"`
	Tool     string `json:"tool,omitempty"`
	MaxSteps int    `json:"maxSteps,omitempty"`
}
