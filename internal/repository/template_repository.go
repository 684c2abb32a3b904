package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/superplace/growth-report-api/internal/models"
)

// TemplateRepository persists report templates.
type TemplateRepository struct {
	db *sqlx.DB
}

// NewTemplateRepository constructs the repository.
func NewTemplateRepository(db *sqlx.DB) *TemplateRepository {
	return &TemplateRepository{db: db}
}

const templateColumns = `id, name, description, body, variables, is_default, usage_count, created_at, updated_at`

// Create inserts a new template row.
func (r *TemplateRepository) Create(ctx context.Context, tpl *models.Template) error {
	const query = `INSERT INTO report_templates (id, name, description, body, variables, is_default, usage_count, created_at, updated_at)
VALUES (:id, :name, :description, :body, :variables, :is_default, :usage_count, :created_at, :updated_at)`
	now := time.Now().UTC()
	tpl.CreatedAt = now
	tpl.UpdatedAt = now
	if _, err := r.db.NamedExecContext(ctx, query, tpl); err != nil {
		return fmt.Errorf("insert template: %w", err)
	}
	return nil
}

// GetByID fetches a single template.
func (r *TemplateRepository) GetByID(ctx context.Context, id string) (*models.Template, error) {
	query := fmt.Sprintf(`SELECT %s FROM report_templates WHERE id = $1`, templateColumns)
	var tpl models.Template
	if err := r.db.GetContext(ctx, &tpl, query, id); err != nil {
		return nil, err
	}
	return &tpl, nil
}

// List returns all templates, default templates first, newest after.
func (r *TemplateRepository) List(ctx context.Context) ([]models.Template, error) {
	query := fmt.Sprintf(`SELECT %s FROM report_templates ORDER BY is_default DESC, created_at DESC`, templateColumns)
	var templates []models.Template
	if err := r.db.SelectContext(ctx, &templates, query); err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	return templates, nil
}

// Update replaces the editable fields of a template. Usage count and the
// default flag are not editable through this path.
func (r *TemplateRepository) Update(ctx context.Context, tpl *models.Template) (int64, error) {
	const query = `UPDATE report_templates
SET name = :name, description = :description, body = :body, variables = :variables, updated_at = :updated_at
WHERE id = :id`
	tpl.UpdatedAt = time.Now().UTC()
	result, err := r.db.NamedExecContext(ctx, query, tpl)
	if err != nil {
		return 0, fmt.Errorf("update template: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("update template rows affected: %w", err)
	}
	return affected, nil
}

// DeleteUnused removes the template only while its usage count is zero.
// Returns the number of rows removed; zero means the row was missing or
// still referenced, which the caller disambiguates.
func (r *TemplateRepository) DeleteUnused(ctx context.Context, id string) (int64, error) {
	const query = `DELETE FROM report_templates WHERE id = $1 AND usage_count = 0`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("delete template: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete template rows affected: %w", err)
	}
	return affected, nil
}

// SeedInsert installs a starter template keyed by its stable id. Rows
// already present are left untouched, so reseeding never duplicates a
// starter or resets its usage count.
func (r *TemplateRepository) SeedInsert(ctx context.Context, tpl *models.Template) (bool, error) {
	const query = `INSERT INTO report_templates (id, name, description, body, variables, is_default, usage_count, created_at, updated_at)
VALUES (:id, :name, :description, :body, :variables, :is_default, 0, :created_at, :updated_at)
ON CONFLICT (id) DO NOTHING`
	now := time.Now().UTC()
	tpl.CreatedAt = now
	tpl.UpdatedAt = now
	result, err := r.db.NamedExecContext(ctx, query, tpl)
	if err != nil {
		return false, fmt.Errorf("seed template: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("seed template rows affected: %w", err)
	}
	return affected > 0, nil
}
