package dto

import (
	"time"

	"github.com/superplace/growth-report-api/internal/models"
)

// PublishReportRequest binds a template and subject into a public report.
type PublishReportRequest struct {
	Title      string                   `json:"title" validate:"required"`
	StudentID  string                   `json:"student_id" validate:"required"`
	TemplateID string                   `json:"template_id" validate:"required"`
	Visibility models.VisibilityOptions `json:"visibility"`
}

// PublishReportResponse returns the opaque share identity.
type PublishReportResponse struct {
	PublicID  string    `json:"public_id"`
	ShareURL  string    `json:"share_url"`
	QRCodeURL string    `json:"qr_code_url"`
	CreatedAt time.Time `json:"created_at"`
}

// PublicReportResponse is what unauthenticated readers receive: the
// rendered document plus the structured sections that fed it. Assembly
// warnings stay on the admin surface.
type PublicReportResponse struct {
	PublicID   string                    `json:"public_id"`
	Title      string                    `json:"title"`
	CreatedAt  time.Time                 `json:"created_at"`
	Visibility models.VisibilityOptions  `json:"visibility"`
	HTML       string                    `json:"html"`
	BasicInfo  *models.BasicInfo         `json:"basic_info,omitempty"`
	Attendance *models.AttendanceSummary `json:"attendance,omitempty"`
	AIActivity *models.AIActivitySummary `json:"ai_activity,omitempty"`
	Concepts   *models.ConceptSummary    `json:"concepts,omitempty"`
	Homework   *models.HomeworkSummary   `json:"homework,omitempty"`
}
