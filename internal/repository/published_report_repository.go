package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/superplace/growth-report-api/internal/models"
)

// PublishedReportRepository persists published report rows keyed by
// their opaque public id.
type PublishedReportRepository struct {
	db *sqlx.DB
}

// NewPublishedReportRepository constructs the repository.
func NewPublishedReportRepository(db *sqlx.DB) *PublishedReportRepository {
	return &PublishedReportRepository{db: db}
}

const publishedReportColumns = `public_id, title, student_id, student_name, student_email, academy_name, template_id,
show_basic_info, show_attendance, show_ai_activity, show_concepts, show_homework, created_at`

// CreateWithUsage inserts a published report and bumps the template's
// usage counter in one transaction, so the counter always equals the
// number of live rows referencing the template. Returns the rows
// touched by the usage update; zero means the template vanished after
// its lookup and nothing was persisted.
func (r *PublishedReportRepository) CreateWithUsage(ctx context.Context, report *models.PublishedReport) (int64, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin publish transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const insertQuery = `INSERT INTO published_reports (public_id, title, student_id, student_name, student_email, academy_name, template_id,
show_basic_info, show_attendance, show_ai_activity, show_concepts, show_homework, created_at)
VALUES (:public_id, :title, :student_id, :student_name, :student_email, :academy_name, :template_id,
:show_basic_info, :show_attendance, :show_ai_activity, :show_concepts, :show_homework, :created_at)`
	report.CreatedAt = time.Now().UTC()
	if _, err = tx.NamedExecContext(ctx, insertQuery, report); err != nil {
		return 0, fmt.Errorf("insert published report: %w", err)
	}

	const usageQuery = `UPDATE report_templates SET usage_count = usage_count + 1, updated_at = $2 WHERE id = $1`
	result, execErr := tx.ExecContext(ctx, usageQuery, report.TemplateID, time.Now().UTC())
	if execErr != nil {
		err = fmt.Errorf("increment template usage: %w", execErr)
		return 0, err
	}
	affected, affErr := result.RowsAffected()
	if affErr != nil {
		err = fmt.Errorf("increment template usage rows affected: %w", affErr)
		return 0, err
	}
	if affected == 0 {
		_ = tx.Rollback()
		return 0, nil
	}
	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit publish transaction: %w", err)
	}
	return affected, nil
}

// GetByPublicID fetches one published report.
func (r *PublishedReportRepository) GetByPublicID(ctx context.Context, publicID string) (*models.PublishedReport, error) {
	query := fmt.Sprintf(`SELECT %s FROM published_reports WHERE public_id = $1`, publishedReportColumns)
	var report models.PublishedReport
	if err := r.db.GetContext(ctx, &report, query, publicID); err != nil {
		return nil, err
	}
	return &report, nil
}

// List returns published reports, newest first.
func (r *PublishedReportRepository) List(ctx context.Context) ([]models.PublishedReport, error) {
	query := fmt.Sprintf(`SELECT %s FROM published_reports ORDER BY created_at DESC`, publishedReportColumns)
	var reports []models.PublishedReport
	if err := r.db.SelectContext(ctx, &reports, query); err != nil {
		return nil, fmt.Errorf("list published reports: %w", err)
	}
	return reports, nil
}

// DeleteWithUsage removes a published report row and lowers the
// template's usage counter (floor 0) in one transaction. Returns rows
// removed so the caller can distinguish a vanished row from a
// successful unpublish; zero leaves the counter untouched.
func (r *PublishedReportRepository) DeleteWithUsage(ctx context.Context, publicID string) (int64, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin unpublish transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const deleteQuery = `DELETE FROM published_reports WHERE public_id = $1 RETURNING template_id`
	var templateID string
	if err = tx.QueryRowxContext(ctx, deleteQuery, publicID).Scan(&templateID); err != nil {
		if err == sql.ErrNoRows {
			_ = tx.Rollback()
			err = nil
			return 0, nil
		}
		return 0, fmt.Errorf("delete published report: %w", err)
	}

	const usageQuery = `UPDATE report_templates
SET usage_count = GREATEST(usage_count - 1, 0), updated_at = $2 WHERE id = $1`
	if _, err = tx.ExecContext(ctx, usageQuery, templateID, time.Now().UTC()); err != nil {
		return 0, fmt.Errorf("decrement template usage: %w", err)
	}
	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit unpublish transaction: %w", err)
	}
	return 1, nil
}
