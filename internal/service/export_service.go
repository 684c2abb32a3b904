package service

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/superplace/growth-report-api/internal/models"
	appErrors "github.com/superplace/growth-report-api/pkg/errors"
	"github.com/superplace/growth-report-api/pkg/export"
)

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(sections []export.Section, title string) ([]byte, error)
}

// ExportResult carries a rendered document back to the handler.
type ExportResult struct {
	Content  []byte
	Filename string
	MIME     string
}

// ExportService turns an assembled report into downloadable files. CSV
// carries the flat summary metrics; PDF adds per-section tables.
type ExportService struct {
	csv    csvRenderer
	pdf    pdfRenderer
	logger *zap.Logger
}

// NewExportService constructs an ExportService.
func NewExportService(csv csvRenderer, pdf pdfRenderer, logger *zap.Logger) *ExportService {
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{csv: csv, pdf: pdf, logger: logger}
}

// Generate renders the report in the requested format, "csv" or "pdf".
func (s *ExportService) Generate(report *models.PublishedReport, assembled *models.AssembledReport, format string) (*ExportResult, error) {
	base := exportBaseName(report)
	switch strings.ToLower(format) {
	case "csv":
		content, err := s.csv.Render(summaryDataset(assembled))
		if err != nil {
			return nil, fmt.Errorf("render csv export: %w", err)
		}
		return &ExportResult{Content: content, Filename: base + ".csv", MIME: "text/csv"}, nil
	case "pdf":
		content, err := s.pdf.Render(reportSections(assembled), report.Title)
		if err != nil {
			return nil, fmt.Errorf("render pdf export: %w", err)
		}
		return &ExportResult{Content: content, Filename: base + ".pdf", MIME: "application/pdf"}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported export format: "+format)
	}
}

func exportBaseName(report *models.PublishedReport) string {
	name := strings.ToLower(strings.TrimSpace(report.StudentName))
	name = strings.ReplaceAll(name, " ", "-")
	if name == "" {
		name = report.PublicID
	}
	return "report-" + name + "-" + report.CreatedAt.Format("20060102")
}

// summaryDataset flattens the variable map into a metric/value table,
// keys sorted for a stable column order.
func summaryDataset(assembled *models.AssembledReport) export.Dataset {
	keys := make([]string, 0, len(assembled.Variables))
	for key := range assembled.Variables {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	rows := make([]map[string]string, 0, len(keys))
	for _, key := range keys {
		rows = append(rows, map[string]string{"Metric": key, "Value": assembled.Variables[key]})
	}
	return export.Dataset{Headers: []string{"Metric", "Value"}, Rows: rows}
}

func reportSections(assembled *models.AssembledReport) []export.Section {
	sections := []export.Section{{Name: "Summary", Data: summaryDataset(assembled)}}

	if att := assembled.Attendance; att != nil && len(att.RecentRecords) > 0 {
		rows := make([]map[string]string, 0, len(att.RecentRecords))
		for _, record := range att.RecentRecords {
			rows = append(rows, map[string]string{
				"Date":   record.Date.Format("2006-01-02"),
				"Status": string(record.Status),
			})
		}
		sections = append(sections, export.Section{
			Name: "Recent Attendance",
			Data: export.Dataset{Headers: []string{"Date", "Status"}, Rows: rows},
		})
	}

	if hw := assembled.Homework; hw != nil && len(hw.RecentSubmissions) > 0 {
		rows := make([]map[string]string, 0, len(hw.RecentSubmissions))
		for _, submission := range hw.RecentSubmissions {
			score := ""
			if submission.Score != nil {
				score = strconv.FormatFloat(*submission.Score, 'f', -1, 64)
			}
			rows = append(rows, map[string]string{
				"Assignment":   submission.Title,
				"Submitted At": submission.SubmittedAt.Format("2006-01-02"),
				"Score":        score,
			})
		}
		sections = append(sections, export.Section{
			Name: "Recent Homework",
			Data: export.Dataset{Headers: []string{"Assignment", "Submitted At", "Score"}, Rows: rows},
		})
	}

	return sections
}
