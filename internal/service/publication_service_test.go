package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/superplace/growth-report-api/internal/dto"
	"github.com/superplace/growth-report-api/internal/models"
	appErrors "github.com/superplace/growth-report-api/pkg/errors"
)

type templateReaderStub struct {
	templates map[string]models.Template
}

func newTemplateReaderStub() *templateReaderStub {
	return &templateReaderStub{templates: make(map[string]models.Template)}
}

func (s *templateReaderStub) GetByID(ctx context.Context, id string) (*models.Template, error) {
	if tpl, ok := s.templates[id]; ok {
		return &tpl, nil
	}
	return nil, sql.ErrNoRows
}

// publishedReportStoreStub mirrors the repository's transactional
// semantics: a publish persists the row and the counter bump together
// or not at all, and an unpublish releases both together.
type publishedReportStoreStub struct {
	reports   map[string]models.PublishedReport
	templates *templateReaderStub
	createErr error
	deleteErr error
}

func newPublishedReportStoreStub(templates *templateReaderStub) *publishedReportStoreStub {
	return &publishedReportStoreStub{
		reports:   make(map[string]models.PublishedReport),
		templates: templates,
	}
}

func (s *publishedReportStoreStub) CreateWithUsage(ctx context.Context, report *models.PublishedReport) (int64, error) {
	if s.createErr != nil {
		return 0, s.createErr
	}
	tpl, ok := s.templates.templates[report.TemplateID]
	if !ok {
		return 0, nil
	}
	tpl.UsageCount++
	s.templates.templates[report.TemplateID] = tpl
	s.reports[report.PublicID] = *report
	return 1, nil
}

func (s *publishedReportStoreStub) GetByPublicID(ctx context.Context, publicID string) (*models.PublishedReport, error) {
	if report, ok := s.reports[publicID]; ok {
		return &report, nil
	}
	return nil, sql.ErrNoRows
}

func (s *publishedReportStoreStub) List(ctx context.Context) ([]models.PublishedReport, error) {
	result := make([]models.PublishedReport, 0, len(s.reports))
	for _, report := range s.reports {
		result = append(result, report)
	}
	return result, nil
}

func (s *publishedReportStoreStub) DeleteWithUsage(ctx context.Context, publicID string) (int64, error) {
	if s.deleteErr != nil {
		return 0, s.deleteErr
	}
	report, ok := s.reports[publicID]
	if !ok {
		return 0, nil
	}
	if tpl, found := s.templates.templates[report.TemplateID]; found && tpl.UsageCount > 0 {
		tpl.UsageCount--
		s.templates.templates[report.TemplateID] = tpl
	}
	delete(s.reports, publicID)
	return 1, nil
}

type assemblerStub struct {
	report *models.AssembledReport
	err    error
	calls  int
}

func (s *assemblerStub) Assemble(ctx context.Context, studentID string, vis models.VisibilityOptions, title string) (*models.AssembledReport, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.report, nil
}

func newTestPublicationService(reports *publishedReportStoreStub, templates *templateReaderStub, students studentReaderStub, assembler *assemblerStub) *PublicationService {
	return NewPublicationService(
		reports, templates, students, assembler, NewRenderService(),
		nil, nil, nil, nil,
		PublicationConfig{PublicBaseURL: "https://reports.example.com"},
	)
}

func seedUsageTemplate(store *templateReaderStub, id, body string) {
	store.templates[id] = models.Template{ID: id, Name: "tpl", Body: body}
}

func TestPublishMintsPublicIDAndBumpsUsage(t *testing.T) {
	templates := newTemplateReaderStub()
	reports := newPublishedReportStoreStub(templates)
	seedUsageTemplate(templates, "tpl-1", "Hello {{studentName}}")
	svc := newTestPublicationService(reports, templates, studentReaderStub{student: testStudent()}, &assemblerStub{})

	resp, err := svc.Publish(context.Background(), dto.PublishReportRequest{
		Title:      "March Report",
		StudentID:  "stu-1",
		TemplateID: "tpl-1",
		Visibility: allVisible(),
	}, &models.JWTClaims{UserID: "admin-1"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.PublicID)
	assert.Equal(t, "https://reports.example.com/r/"+resp.PublicID, resp.ShareURL)
	assert.Contains(t, resp.QRCodeURL, "api.qrserver.com")
	assert.Equal(t, 1, templates.templates["tpl-1"].UsageCount)
	assert.Contains(t, reports.reports, resp.PublicID)
}

func TestPublishSecondReportBumpsUsageAgain(t *testing.T) {
	templates := newTemplateReaderStub()
	reports := newPublishedReportStoreStub(templates)
	seedUsageTemplate(templates, "tpl-1", "x")
	svc := newTestPublicationService(reports, templates, studentReaderStub{student: testStudent()}, &assemblerStub{})

	req := dto.PublishReportRequest{Title: "t", StudentID: "stu-1", TemplateID: "tpl-1"}
	_, err := svc.Publish(context.Background(), req, nil)
	require.NoError(t, err)
	_, err = svc.Publish(context.Background(), req, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, templates.templates["tpl-1"].UsageCount)
}

func TestPublishFailureLeavesNoOrphanRow(t *testing.T) {
	templates := newTemplateReaderStub()
	reports := newPublishedReportStoreStub(templates)
	reports.createErr = errors.New("deadlock detected")
	seedUsageTemplate(templates, "tpl-1", "x")
	svc := newTestPublicationService(reports, templates, studentReaderStub{student: testStudent()}, &assemblerStub{})

	_, err := svc.Publish(context.Background(), dto.PublishReportRequest{Title: "t", StudentID: "stu-1", TemplateID: "tpl-1"}, nil)
	require.Error(t, err)
	assert.Empty(t, reports.reports)
	assert.Zero(t, templates.templates["tpl-1"].UsageCount)
}

func TestPublishUnknownTemplate(t *testing.T) {
	templates := newTemplateReaderStub()
	svc := newTestPublicationService(newPublishedReportStoreStub(templates), templates, studentReaderStub{student: testStudent()}, &assemblerStub{})
	_, err := svc.Publish(context.Background(), dto.PublishReportRequest{Title: "t", StudentID: "stu-1", TemplateID: "ghost"}, nil)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestPublishUnknownStudent(t *testing.T) {
	templates := newTemplateReaderStub()
	seedUsageTemplate(templates, "tpl-1", "x")
	svc := newTestPublicationService(newPublishedReportStoreStub(templates), templates, studentReaderStub{err: sql.ErrNoRows}, &assemblerStub{})
	_, err := svc.Publish(context.Background(), dto.PublishReportRequest{Title: "t", StudentID: "ghost", TemplateID: "tpl-1"}, nil)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestUnpublishReleasesUsage(t *testing.T) {
	templates := newTemplateReaderStub()
	reports := newPublishedReportStoreStub(templates)
	seedUsageTemplate(templates, "tpl-1", "x")
	svc := newTestPublicationService(reports, templates, studentReaderStub{student: testStudent()}, &assemblerStub{})

	resp, err := svc.Publish(context.Background(), dto.PublishReportRequest{Title: "t", StudentID: "stu-1", TemplateID: "tpl-1"}, nil)
	require.NoError(t, err)
	require.Equal(t, 1, templates.templates["tpl-1"].UsageCount)

	require.NoError(t, svc.Unpublish(context.Background(), resp.PublicID, nil))
	assert.Zero(t, templates.templates["tpl-1"].UsageCount)
	assert.NotContains(t, reports.reports, resp.PublicID)
}

func TestUnpublishFailureKeepsRowAndUsage(t *testing.T) {
	templates := newTemplateReaderStub()
	reports := newPublishedReportStoreStub(templates)
	seedUsageTemplate(templates, "tpl-1", "x")
	svc := newTestPublicationService(reports, templates, studentReaderStub{student: testStudent()}, &assemblerStub{})

	resp, err := svc.Publish(context.Background(), dto.PublishReportRequest{Title: "t", StudentID: "stu-1", TemplateID: "tpl-1"}, nil)
	require.NoError(t, err)

	reports.deleteErr = errors.New("connection reset")
	require.Error(t, svc.Unpublish(context.Background(), resp.PublicID, nil))
	assert.Contains(t, reports.reports, resp.PublicID)
	assert.Equal(t, 1, templates.templates["tpl-1"].UsageCount)
}

func TestUnpublishMissing(t *testing.T) {
	templates := newTemplateReaderStub()
	svc := newTestPublicationService(newPublishedReportStoreStub(templates), templates, studentReaderStub{}, &assemblerStub{})
	err := svc.Unpublish(context.Background(), "ghost", nil)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestFetchRendersLiveReport(t *testing.T) {
	templates := newTemplateReaderStub()
	reports := newPublishedReportStoreStub(templates)
	seedUsageTemplate(templates, "tpl-1", "Hello {{studentName}}, rate {{attendanceRate}}%")
	assembler := &assemblerStub{report: &models.AssembledReport{
		Title:      "March Report",
		Attendance: &models.AttendanceSummary{AttendanceRate: 95},
		Variables:  map[string]string{"studentName": "Kim Minjun", "attendanceRate": "95"},
	}}
	svc := newTestPublicationService(reports, templates, studentReaderStub{student: testStudent()}, assembler)

	resp, err := svc.Publish(context.Background(), dto.PublishReportRequest{
		Title: "March Report", StudentID: "stu-1", TemplateID: "tpl-1", Visibility: allVisible(),
	}, nil)
	require.NoError(t, err)

	public, err := svc.Fetch(context.Background(), resp.PublicID)
	require.NoError(t, err)
	assert.Equal(t, "Hello Kim Minjun, rate 95%", public.HTML)
	assert.Equal(t, "March Report", public.Title)
	assert.NotNil(t, public.Attendance)
	assert.Equal(t, 1, assembler.calls)
}

func TestFetchEscapesVariableValues(t *testing.T) {
	templates := newTemplateReaderStub()
	reports := newPublishedReportStoreStub(templates)
	seedUsageTemplate(templates, "tpl-1", "{{comment}}")
	assembler := &assemblerStub{report: &models.AssembledReport{
		Variables: map[string]string{"comment": "<img src=x>"},
	}}
	svc := newTestPublicationService(reports, templates, studentReaderStub{student: testStudent()}, assembler)

	resp, err := svc.Publish(context.Background(), dto.PublishReportRequest{Title: "t", StudentID: "stu-1", TemplateID: "tpl-1"}, nil)
	require.NoError(t, err)

	public, err := svc.Fetch(context.Background(), resp.PublicID)
	require.NoError(t, err)
	assert.Equal(t, "&lt;img src=x&gt;", public.HTML)
}

func TestFetchUnknownID(t *testing.T) {
	templates := newTemplateReaderStub()
	svc := newTestPublicationService(newPublishedReportStoreStub(templates), templates, studentReaderStub{}, &assemblerStub{})
	_, err := svc.Fetch(context.Background(), "ghost")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestFetchVanishedStudentDegradesToNotFound(t *testing.T) {
	templates := newTemplateReaderStub()
	reports := newPublishedReportStoreStub(templates)
	seedUsageTemplate(templates, "tpl-1", "x")
	assembler := &assemblerStub{err: appErrors.Clone(appErrors.ErrNotFound, "student not found")}
	svc := newTestPublicationService(reports, templates, studentReaderStub{student: testStudent()}, assembler)

	resp, err := svc.Publish(context.Background(), dto.PublishReportRequest{Title: "t", StudentID: "stu-1", TemplateID: "tpl-1"}, nil)
	require.NoError(t, err)

	_, err = svc.Fetch(context.Background(), resp.PublicID)
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
	assert.Equal(t, "report not found", appErr.Message)
}

func TestFetchEmptyTemplateBodyIsRenderError(t *testing.T) {
	templates := newTemplateReaderStub()
	reports := newPublishedReportStoreStub(templates)
	seedUsageTemplate(templates, "tpl-1", "   ")
	assembler := &assemblerStub{report: &models.AssembledReport{Variables: map[string]string{}}}
	svc := newTestPublicationService(reports, templates, studentReaderStub{student: testStudent()}, assembler)

	resp, err := svc.Publish(context.Background(), dto.PublishReportRequest{Title: "t", StudentID: "stu-1", TemplateID: "tpl-1"}, nil)
	require.NoError(t, err)

	_, err = svc.Fetch(context.Background(), resp.PublicID)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrRender.Code, appErrors.FromError(err).Code)
}

func TestPublishRejectsBlankTitle(t *testing.T) {
	templates := newTemplateReaderStub()
	svc := newTestPublicationService(newPublishedReportStoreStub(templates), templates, studentReaderStub{}, &assemblerStub{})
	_, err := svc.Publish(context.Background(), dto.PublishReportRequest{Title: "   ", StudentID: "s", TemplateID: "t"}, nil)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
