package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/superplace/growth-report-api/internal/dto"
	"github.com/superplace/growth-report-api/internal/models"
	appErrors "github.com/superplace/growth-report-api/pkg/errors"
)

type publishedReportStore interface {
	CreateWithUsage(ctx context.Context, report *models.PublishedReport) (int64, error)
	GetByPublicID(ctx context.Context, publicID string) (*models.PublishedReport, error)
	List(ctx context.Context) ([]models.PublishedReport, error)
	DeleteWithUsage(ctx context.Context, publicID string) (int64, error)
}

type templateReader interface {
	GetByID(ctx context.Context, id string) (*models.Template, error)
}

type reportAssembler interface {
	Assemble(ctx context.Context, studentID string, vis models.VisibilityOptions, title string) (*models.AssembledReport, error)
}

type reportRenderer interface {
	Render(body string, vars map[string]string, rawKeys ...string) string
}

// PublicationConfig tunes the publication registry.
type PublicationConfig struct {
	CacheTTL      time.Duration
	PublicBaseURL string
}

// PublicationService owns the publish/unpublish lifecycle and the
// public fetch path. Reports are assembled live on every uncached
// fetch; the registry row stores identity and visibility, never the
// rendered document.
type PublicationService struct {
	reports   publishedReportStore
	templates templateReader
	students  studentReader
	assembler reportAssembler
	renderer  reportRenderer
	cache     *CacheService
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	cfg       PublicationConfig
}

// NewPublicationService wires the registry.
func NewPublicationService(
	reports publishedReportStore,
	templates templateReader,
	students studentReader,
	assembler reportAssembler,
	renderer reportRenderer,
	cache *CacheService,
	metrics *MetricsService,
	validate *validator.Validate,
	logger *zap.Logger,
	cfg PublicationConfig,
) *PublicationService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PublicationService{
		reports:   reports,
		templates: templates,
		students:  students,
		assembler: assembler,
		renderer:  renderer,
		cache:     cache,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
		cfg:       cfg,
	}
}

func publicReportCacheKey(publicID string) string {
	return "report:public:" + publicID
}

// Publish mints an opaque public id for a student/template pair and
// bumps the template's usage counter. The counter moves exactly once
// per publish regardless of how often the report is later viewed.
func (s *PublicationService) Publish(ctx context.Context, req dto.PublishReportRequest, actor *models.JWTClaims) (*dto.PublishReportResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
	}
	if strings.TrimSpace(req.Title) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "report title is required")
	}

	student, err := s.students.FindByID(ctx, req.StudentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, fmt.Errorf("find student: %w", err)
	}
	if _, err := s.templates.GetByID(ctx, req.TemplateID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "template not found")
		}
		return nil, fmt.Errorf("find template: %w", err)
	}

	report := &models.PublishedReport{
		PublicID:          uuid.NewString(),
		Title:             strings.TrimSpace(req.Title),
		StudentID:         student.ID,
		StudentName:       student.Name,
		StudentEmail:      student.Email,
		AcademyName:       student.AcademyName,
		TemplateID:        req.TemplateID,
		VisibilityOptions: req.Visibility,
	}
	affected, err := s.reports.CreateWithUsage(ctx, report)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		// Template vanished between the lookup and the insert; the
		// transaction rolled back and no orphan link survives.
		return nil, appErrors.Clone(appErrors.ErrNotFound, "template not found")
	}

	s.metrics.RecordPublish()
	s.logger.Info("report published",
		zap.String("public_id", report.PublicID),
		zap.String("student_id", report.StudentID),
		zap.String("template_id", report.TemplateID),
		zap.String("actor", actorID(actor)))

	shareURL := s.cfg.PublicBaseURL + "/r/" + report.PublicID
	return &dto.PublishReportResponse{
		PublicID:  report.PublicID,
		ShareURL:  shareURL,
		QRCodeURL: "https://api.qrserver.com/v1/create-qr-code/?size=300x300&data=" + url.QueryEscape(shareURL),
		CreatedAt: report.CreatedAt,
	}, nil
}

// List returns every published report, newest first.
func (s *PublicationService) List(ctx context.Context) ([]models.PublishedReport, error) {
	return s.reports.List(ctx)
}

// Unpublish retires a public id and releases its hold on the template.
// Row removal and the usage decrement commit together, so a failure
// leaves both the link and the counter as they were.
func (s *PublicationService) Unpublish(ctx context.Context, publicID string, actor *models.JWTClaims) error {
	affected, err := s.reports.DeleteWithUsage(ctx, publicID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return appErrors.Clone(appErrors.ErrNotFound, "published report not found")
	}
	if err := s.cache.Invalidate(ctx, publicReportCacheKey(publicID)); err != nil {
		s.logger.Warn("cache invalidation failed after unpublish",
			zap.String("public_id", publicID), zap.Error(err))
	}
	s.logger.Info("report unpublished",
		zap.String("public_id", publicID),
		zap.String("actor", actorID(actor)))
	return nil
}

// Fetch serves the public read path: resolve the registry row, assemble
// the report live, render the template, cache the result. Every
// internal failure mode collapses to a generic not-found so the public
// surface leaks nothing.
func (s *PublicationService) Fetch(ctx context.Context, publicID string) (*dto.PublicReportResponse, error) {
	cacheKey := publicReportCacheKey(publicID)
	var cached dto.PublicReportResponse
	if hit, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
		return &cached, nil
	}

	report, err := s.reports.GetByPublicID(ctx, publicID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "report not found")
		}
		return nil, fmt.Errorf("find published report: %w", err)
	}

	assembled, err := s.assembleFor(ctx, report)
	if err != nil {
		return nil, err
	}

	html, err := s.renderFor(ctx, report, assembled)
	if err != nil {
		return nil, err
	}

	resp := &dto.PublicReportResponse{
		PublicID:   report.PublicID,
		Title:      report.Title,
		CreatedAt:  report.CreatedAt,
		Visibility: report.VisibilityOptions,
		HTML:       html,
		BasicInfo:  assembled.BasicInfo,
		Attendance: assembled.Attendance,
		AIActivity: assembled.AIActivity,
		Concepts:   assembled.Concepts,
		Homework:   assembled.Homework,
	}
	if err := s.cache.Set(ctx, cacheKey, resp, s.cfg.CacheTTL); err != nil {
		s.logger.Warn("cache write failed for public report",
			zap.String("public_id", publicID), zap.Error(err))
	}
	return resp, nil
}

// Assembled returns the live assembled snapshot for an admin surface
// such as export, warnings included.
func (s *PublicationService) Assembled(ctx context.Context, publicID string) (*models.PublishedReport, *models.AssembledReport, error) {
	report, err := s.reports.GetByPublicID(ctx, publicID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, appErrors.Clone(appErrors.ErrNotFound, "published report not found")
		}
		return nil, nil, fmt.Errorf("find published report: %w", err)
	}
	assembled, err := s.assembleFor(ctx, report)
	if err != nil {
		return nil, nil, err
	}
	return report, assembled, nil
}

func (s *PublicationService) assembleFor(ctx context.Context, report *models.PublishedReport) (*models.AssembledReport, error) {
	start := time.Now()
	assembled, err := s.assembler.Assemble(ctx, report.StudentID, report.VisibilityOptions, report.Title)
	s.metrics.ObserveAssembly(time.Since(start))
	if err != nil {
		// The subject can disappear after publication; readers see
		// the same not-found as a bad link.
		var appErr *appErrors.Error
		if errors.As(err, &appErr) && appErr.Code == appErrors.ErrNotFound.Code {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "report not found")
		}
		return nil, err
	}
	return assembled, nil
}

func (s *PublicationService) renderFor(ctx context.Context, report *models.PublishedReport, assembled *models.AssembledReport) (string, error) {
	tpl, err := s.templates.GetByID(ctx, report.TemplateID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Usage guarding makes this unreachable short of manual
			// database surgery.
			return "", appErrors.Clone(appErrors.ErrRender, "report template is missing")
		}
		return "", fmt.Errorf("find template for render: %w", err)
	}
	if strings.TrimSpace(tpl.Body) == "" {
		return "", appErrors.Clone(appErrors.ErrRender, "report template is empty")
	}
	start := time.Now()
	html := s.renderer.Render(tpl.Body, assembled.Variables)
	s.metrics.ObserveRender(time.Since(start))
	return html, nil
}
