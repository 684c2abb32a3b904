package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/superplace/growth-report-api/internal/models"
	appErrors "github.com/superplace/growth-report-api/pkg/errors"
)

func exportFixtures() (*models.PublishedReport, *models.AssembledReport) {
	report := &models.PublishedReport{
		PublicID:    "pub-1",
		Title:       "March Report",
		StudentName: "Kim Minjun",
		CreatedAt:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	score := 92.0
	assembled := &models.AssembledReport{
		Title:     "March Report",
		Variables: map[string]string{"studentName": "Kim Minjun", "attendanceRate": "95"},
		Attendance: &models.AttendanceSummary{
			RecentRecords: []models.AttendanceRecord{
				{Date: time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC), Status: models.AttendanceStatusPresent},
			},
		},
		Homework: &models.HomeworkSummary{
			RecentSubmissions: []models.HomeworkSubmission{
				{Title: "Unit 4 drill", SubmittedAt: time.Date(2024, 2, 27, 0, 0, 0, 0, time.UTC), Score: &score},
			},
		},
	}
	return report, assembled
}

func TestExportServiceGeneratesCSV(t *testing.T) {
	svc := NewExportService(nil, nil, nil)
	report, assembled := exportFixtures()

	result, err := svc.Generate(report, assembled, "csv")
	require.NoError(t, err)
	assert.Equal(t, "report-kim-minjun-20240301.csv", result.Filename)
	assert.Equal(t, "text/csv", result.MIME)
	csv := string(result.Content)
	assert.Contains(t, csv, "Metric,Value")
	assert.Contains(t, csv, "attendanceRate,95")
	assert.Contains(t, csv, "studentName,Kim Minjun")
}

func TestExportServiceGeneratesPDF(t *testing.T) {
	svc := NewExportService(nil, nil, nil)
	report, assembled := exportFixtures()

	result, err := svc.Generate(report, assembled, "pdf")
	require.NoError(t, err)
	assert.Equal(t, "report-kim-minjun-20240301.pdf", result.Filename)
	assert.Equal(t, "application/pdf", result.MIME)
	assert.NotEmpty(t, result.Content)
}

func TestExportServiceRejectsUnknownFormat(t *testing.T) {
	svc := NewExportService(nil, nil, nil)
	report, assembled := exportFixtures()

	_, err := svc.Generate(report, assembled, "xlsx")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
