package models

import "time"

// VisibilityOptions is the set of per-domain switches controlling which
// sections an assembled report contains. Fixed at publish time.
type VisibilityOptions struct {
	ShowBasicInfo  bool `db:"show_basic_info" json:"show_basic_info"`
	ShowAttendance bool `db:"show_attendance" json:"show_attendance"`
	ShowAIActivity bool `db:"show_ai_activity" json:"show_ai_activity"`
	ShowConcepts   bool `db:"show_concepts" json:"show_concepts"`
	ShowHomework   bool `db:"show_homework" json:"show_homework"`
}

// PublishedReport binds a template and subject to an opaque public id.
// The public id doubles as the unauthenticated access token, so it is a
// UUID rather than anything sequential.
type PublishedReport struct {
	PublicID     string  `db:"public_id" json:"public_id"`
	Title        string  `db:"title" json:"title"`
	StudentID    string  `db:"student_id" json:"student_id"`
	StudentName  string  `db:"student_name" json:"student_name"`
	StudentEmail string  `db:"student_email" json:"student_email"`
	AcademyName  *string `db:"academy_name" json:"academy_name,omitempty"`
	TemplateID   string  `db:"template_id" json:"template_id"`
	VisibilityOptions
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// AssembledReport is the payload produced by one assembler pass: the
// per-domain sections (absent when gated off or unavailable) plus the
// flat variable map fed to the substitution engine.
type AssembledReport struct {
	Title       string             `json:"title"`
	StudentName string             `json:"student_name"`
	GeneratedAt time.Time          `json:"generated_at"`
	BasicInfo   *BasicInfo         `json:"basic_info,omitempty"`
	Attendance  *AttendanceSummary `json:"attendance,omitempty"`
	AIActivity  *AIActivitySummary `json:"ai_activity,omitempty"`
	Concepts    *ConceptSummary    `json:"concepts,omitempty"`
	Homework    *HomeworkSummary   `json:"homework,omitempty"`
	Variables   map[string]string  `json:"variables"`
	Warnings    []string           `json:"warnings,omitempty"`
}

// Student is the subject identity the assembler resolves before fan-out.
type Student struct {
	ID          string     `db:"id" json:"id"`
	Name        string     `db:"name" json:"name"`
	Email       string     `db:"email" json:"email"`
	AcademyName *string    `db:"academy_name" json:"academy_name,omitempty"`
	JoinedAt    *time.Time `db:"joined_at" json:"joined_at,omitempty"`
}

// Pagination captures paging metadata in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
