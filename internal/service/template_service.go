package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/superplace/growth-report-api/internal/dto"
	"github.com/superplace/growth-report-api/internal/models"
	appErrors "github.com/superplace/growth-report-api/pkg/errors"
)

type templateStore interface {
	Create(ctx context.Context, tpl *models.Template) error
	GetByID(ctx context.Context, id string) (*models.Template, error)
	List(ctx context.Context) ([]models.Template, error)
	Update(ctx context.Context, tpl *models.Template) (int64, error)
	DeleteUnused(ctx context.Context, id string) (int64, error)
	SeedInsert(ctx context.Context, tpl *models.Template) (bool, error)
}

type variableScanner interface {
	ScanVariables(body string) []string
}

// TemplateService orchestrates the template store: CRUD, duplication,
// and starter-catalog seeding. Variable metadata is re-derived from the
// body on every write so the stored list never drifts from the content.
type TemplateService struct {
	repo      templateStore
	scanner   variableScanner
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTemplateService constructs a TemplateService.
func NewTemplateService(repo templateStore, scanner variableScanner, validate *validator.Validate, logger *zap.Logger) *TemplateService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TemplateService{repo: repo, scanner: scanner, validator: validate, logger: logger}
}

// List returns every template, defaults first.
func (s *TemplateService) List(ctx context.Context) ([]models.Template, error) {
	return s.repo.List(ctx)
}

// Get fetches a single template.
func (s *TemplateService) Get(ctx context.Context, id string) (*models.Template, error) {
	tpl, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "template not found")
		}
		return nil, fmt.Errorf("get template: %w", err)
	}
	return tpl, nil
}

// Create stores a new template authored by actor.
func (s *TemplateService) Create(ctx context.Context, req dto.CreateTemplateRequest, actor *models.JWTClaims) (*models.Template, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
	}
	if err := s.validateTemplateFields(req.Name, req.Body); err != nil {
		return nil, err
	}
	tpl := &models.Template{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Body:        req.Body,
		Variables:   s.scanner.ScanVariables(req.Body),
		IsDefault:   false,
		UsageCount:  0,
	}
	if err := s.repo.Create(ctx, tpl); err != nil {
		return nil, err
	}
	s.logger.Info("template created",
		zap.String("template_id", tpl.ID),
		zap.String("name", tpl.Name),
		zap.String("actor", actorID(actor)))
	return tpl, nil
}

// Update replaces a template's editable fields wholesale. The default
// flag and usage count survive edits untouched.
func (s *TemplateService) Update(ctx context.Context, id string, req dto.UpdateTemplateRequest, actor *models.JWTClaims) (*models.Template, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
	}
	if err := s.validateTemplateFields(req.Name, req.Body); err != nil {
		return nil, err
	}
	tpl, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	tpl.Name = strings.TrimSpace(req.Name)
	tpl.Description = req.Description
	tpl.Body = req.Body
	tpl.Variables = s.scanner.ScanVariables(req.Body)
	affected, err := s.repo.Update(ctx, tpl)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "template not found")
	}
	s.logger.Info("template updated",
		zap.String("template_id", tpl.ID),
		zap.String("actor", actorID(actor)))
	return tpl, nil
}

// Duplicate copies an existing template into a fresh editable row. The
// copy starts unused and never inherits the default flag.
func (s *TemplateService) Duplicate(ctx context.Context, id string, actor *models.JWTClaims) (*models.Template, error) {
	source, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	copyTpl := &models.Template{
		ID:          uuid.NewString(),
		Name:        source.Name + " (copy)",
		Description: source.Description,
		Body:        source.Body,
		Variables:   s.scanner.ScanVariables(source.Body),
		IsDefault:   false,
		UsageCount:  0,
	}
	if err := s.repo.Create(ctx, copyTpl); err != nil {
		return nil, err
	}
	s.logger.Info("template duplicated",
		zap.String("source_id", source.ID),
		zap.String("template_id", copyTpl.ID),
		zap.String("actor", actorID(actor)))
	return copyTpl, nil
}

// Delete removes a template, refusing while any published report still
// references it. The guard rides in the delete statement itself, so two
// racing requests cannot both slip past a stale usage read.
func (s *TemplateService) Delete(ctx context.Context, id string, actor *models.JWTClaims) error {
	affected, err := s.repo.DeleteUnused(ctx, id)
	if err != nil {
		return err
	}
	if affected > 0 {
		s.logger.Info("template deleted",
			zap.String("template_id", id),
			zap.String("actor", actorID(actor)))
		return nil
	}
	tpl, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "template not found")
		}
		return fmt.Errorf("inspect template for delete: %w", err)
	}
	return appErrors.Clone(appErrors.ErrDeletionBlocked,
		fmt.Sprintf("template is referenced by %d published report(s); unpublish them first", tpl.UsageCount))
}

// SeedDefaults installs the starter catalog. Present rows are skipped,
// so the call is idempotent and safe on every startup.
func (s *TemplateService) SeedDefaults(ctx context.Context) (*dto.SeedResult, error) {
	result := &dto.SeedResult{}
	for _, starter := range starterTemplates() {
		tpl := starter
		tpl.Variables = s.scanner.ScanVariables(tpl.Body)
		inserted, err := s.repo.SeedInsert(ctx, &tpl)
		if err != nil {
			return nil, err
		}
		if inserted {
			result.Installed++
		} else {
			result.Skipped++
		}
	}
	s.logger.Info("starter templates seeded",
		zap.Int("installed", result.Installed),
		zap.Int("skipped", result.Skipped))
	return result, nil
}

func (s *TemplateService) validateTemplateFields(name, body string) error {
	if strings.TrimSpace(name) == "" {
		return appErrors.Clone(appErrors.ErrValidation, "template name is required")
	}
	if strings.TrimSpace(body) == "" {
		return appErrors.Clone(appErrors.ErrValidation, "template body is required")
	}
	return nil
}

func actorID(actor *models.JWTClaims) string {
	if actor == nil {
		return "system"
	}
	return actor.UserID
}
