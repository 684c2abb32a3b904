package models

import "time"

// AttendanceStatus represents the status for attendance records.
type AttendanceStatus string

const (
	AttendanceStatusPresent AttendanceStatus = "present"
	AttendanceStatusLate    AttendanceStatus = "late"
	AttendanceStatusAbsent  AttendanceStatus = "absent"
	AttendanceStatusExcused AttendanceStatus = "excused"
)

// Valid returns true when the status is a supported value.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendanceStatusPresent, AttendanceStatusLate, AttendanceStatusAbsent, AttendanceStatusExcused:
		return true
	default:
		return false
	}
}

// ConceptSeverity grades how weak a concept is for a student.
type ConceptSeverity string

const (
	ConceptSeverityLow    ConceptSeverity = "low"
	ConceptSeverityMedium ConceptSeverity = "medium"
	ConceptSeverityHigh   ConceptSeverity = "high"
)

// Valid returns true when the severity is a supported value.
func (s ConceptSeverity) Valid() bool {
	switch s {
	case ConceptSeverityLow, ConceptSeverityMedium, ConceptSeverityHigh:
		return true
	default:
		return false
	}
}

// BasicInfo carries the subject identity section of a report.
type BasicInfo struct {
	Name     string     `json:"name"`
	Email    string     `json:"email"`
	Academy  *string    `json:"academy,omitempty"`
	JoinedAt *time.Time `json:"joined_at,omitempty"`
}

// AttendanceRecord is one dated attendance entry.
type AttendanceRecord struct {
	Date   time.Time        `db:"date" json:"date"`
	Status AttendanceStatus `db:"status" json:"status"`
}

// AttendanceSummary aggregates a student's attendance domain.
type AttendanceSummary struct {
	Total          int                `json:"total"`
	Present        int                `json:"present"`
	Late           int                `json:"late"`
	Absent         int                `json:"absent"`
	AttendanceRate int                `json:"attendance_rate"`
	RecentRecords  []AttendanceRecord `json:"recent_records"`
}

// AIAnalysis is the optional free-text analysis of tutoring activity.
type AIAnalysis struct {
	Summary    string   `json:"summary"`
	Strengths  []string `json:"strengths"`
	Weaknesses []string `json:"weaknesses"`
}

// AIActivitySummary aggregates AI-tutoring interactions.
type AIActivitySummary struct {
	TotalChats     int         `json:"total_chats"`
	RecentActivity string      `json:"recent_activity,omitempty"`
	Analysis       *AIAnalysis `json:"analysis,omitempty"`
}

// WeakConcept names a concept the student struggles with.
type WeakConcept struct {
	Concept     string          `json:"concept"`
	Description string          `json:"description"`
	Severity    ConceptSeverity `json:"severity"`
}

// ConceptRecommendation suggests an action for a concept.
type ConceptRecommendation struct {
	Concept string `json:"concept"`
	Action  string `json:"action"`
}

// ConceptSummary aggregates the concept-mastery domain.
type ConceptSummary struct {
	Summary         string                  `json:"summary"`
	WeakConcepts    []WeakConcept           `json:"weak_concepts"`
	Recommendations []ConceptRecommendation `json:"recommendations"`
}

// HomeworkSubmission is one submitted assignment.
type HomeworkSubmission struct {
	Title       string    `db:"title" json:"title"`
	SubmittedAt time.Time `db:"submitted_at" json:"submitted_at"`
	Score       *float64  `db:"score" json:"score,omitempty"`
}

// HomeworkSummary aggregates the homework domain.
type HomeworkSummary struct {
	TotalAssignments  int                  `json:"total_assignments"`
	Completed         int                  `json:"completed"`
	AverageScore      float64              `json:"average_score"`
	RecentSubmissions []HomeworkSubmission `json:"recent_submissions"`
}
