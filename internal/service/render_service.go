package service

import (
	"html"
	"regexp"
)

// tokenPattern matches {{identifier}} placeholders. Identifiers are
// alphanumeric/underscore, same as the editor's variable scanner.
var tokenPattern = regexp.MustCompile(`\{\{(\w+)\}\}`)

// RenderService is the substitution engine. Rendering is pure and
// deterministic: the same body and variable map always produce the same
// output, with no I/O and no hidden state.
type RenderService struct{}

// NewRenderService constructs the engine.
func NewRenderService() *RenderService {
	return &RenderService{}
}

// Render substitutes every {{identifier}} token in body. Values are
// HTML-escaped unless the identifier is listed in rawKeys (reserved for
// pre-vetted HTML fragments). Identifiers absent from the map are
// replaced with the empty string; a template's declared-variable
// metadata plays no part here.
func (s *RenderService) Render(body string, vars map[string]string, rawKeys ...string) string {
	raw := make(map[string]struct{}, len(rawKeys))
	for _, key := range rawKeys {
		raw[key] = struct{}{}
	}
	return tokenPattern.ReplaceAllStringFunc(body, func(token string) string {
		name := token[2 : len(token)-2]
		value, ok := vars[name]
		if !ok {
			return ""
		}
		if _, isRaw := raw[name]; isRaw {
			return value
		}
		return html.EscapeString(value)
	})
}

// ScanVariables returns the unique identifiers present in body, in
// first-appearance order. Stored as editor metadata on save; mismatches
// between this list and the body are legal.
func (s *RenderService) ScanVariables(body string) []string {
	matches := tokenPattern.FindAllStringSubmatch(body, -1)
	seen := make(map[string]struct{}, len(matches))
	variables := make([]string, 0, len(matches))
	for _, match := range matches {
		name := match[1]
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		variables = append(variables, name)
	}
	return variables
}

// Preview renders a body against the fixed sample dataset, giving
// template editors WYSIWYG feedback without touching the aggregators.
func (s *RenderService) Preview(body string) string {
	return s.Render(body, SampleVariables())
}

// SampleVariables returns the engine-owned preview dataset. Callers get
// a fresh copy each time.
func SampleVariables() map[string]string {
	return map[string]string{
		"studentName":       "Kim Minjun",
		"studentEmail":      "minjun.kim@example.com",
		"academyName":       "Superplace Study",
		"title":             "Student Growth Report",
		"period":            "2024.01.01 ~ 2024.02.28",
		"generatedDate":     "2024-03-01",
		"totalDays":         "40",
		"presentDays":       "38",
		"lateDays":          "1",
		"absentDays":        "1",
		"attendanceRate":    "95",
		"homeworkRate":      "90",
		"homeworkCompleted": "36",
		"totalAssignments":  "40",
		"avgScore":          "88",
		"aiChatCount":       "127",
		"aiSummary":         "Asks precise follow-up questions and retries failed problems unprompted.",
		"conceptSummary":    "Strong on core grammar; relative clauses need another pass.",
		"teacherComment":    "Consistent effort across the whole period. Keep up the momentum.",
	}
}
