package dto

// CreateTemplateRequest creates a report template.
type CreateTemplateRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description,omitempty"`
	Body        string  `json:"body" validate:"required"`
}

// UpdateTemplateRequest fully replaces a template's editable fields.
// There is no partial-patch surface; editors always submit the whole
// document.
type UpdateTemplateRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description,omitempty"`
	Body        string  `json:"body" validate:"required"`
}

// PreviewTemplateRequest renders a body against the built-in sample
// dataset for editor feedback.
type PreviewTemplateRequest struct {
	Body string `json:"body" validate:"required"`
}

// PreviewTemplateResponse returns the rendered preview.
type PreviewTemplateResponse struct {
	HTML      string   `json:"html"`
	Variables []string `json:"variables"`
}

// SeedResult reports what a seeding pass installed.
type SeedResult struct {
	Installed int `json:"installed"`
	Skipped   int `json:"skipped"`
}
