package aggregator

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/superplace/growth-report-api/internal/models"
)

// HomeworkAggregator summarizes homework assignments and submissions.
type HomeworkAggregator struct {
	db          *sqlx.DB
	recentLimit int
}

// NewHomeworkAggregator constructs the aggregator.
func NewHomeworkAggregator(db *sqlx.DB, recentLimit int) *HomeworkAggregator {
	if recentLimit <= 0 {
		recentLimit = 5
	}
	return &HomeworkAggregator{db: db, recentLimit: recentLimit}
}

type homeworkStats struct {
	TotalAssignments int             `db:"total_assignments"`
	Completed        int             `db:"completed"`
	AverageScore     sql.NullFloat64 `db:"average_score"`
}

// Summarize aggregates assignment counts, the average score, and recent
// submissions.
func (a *HomeworkAggregator) Summarize(ctx context.Context, studentID string) (*models.HomeworkSummary, error) {
	const statsQuery = `SELECT
(SELECT COUNT(*) FROM homework_assignments WHERE student_id = $1) AS total_assignments,
COUNT(*) AS completed,
AVG(score) AS average_score
FROM homework_submissions WHERE student_id = $1`
	var stats homeworkStats
	if err := a.db.GetContext(ctx, &stats, statsQuery, studentID); err != nil {
		return nil, fmt.Errorf("homework stats: %w", err)
	}

	const recentQuery = `SELECT title, submitted_at, score FROM homework_submissions
WHERE student_id = $1 ORDER BY submitted_at DESC LIMIT $2`
	var submissions []models.HomeworkSubmission
	if err := a.db.SelectContext(ctx, &submissions, recentQuery, studentID, a.recentLimit); err != nil {
		return nil, fmt.Errorf("homework recent submissions: %w", err)
	}

	return &models.HomeworkSummary{
		TotalAssignments:  stats.TotalAssignments,
		Completed:         stats.Completed,
		AverageScore:      stats.AverageScore.Float64,
		RecentSubmissions: submissions,
	}, nil
}
