package aggregator

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/superplace/growth-report-api/internal/models"
)

// AttendanceAggregator summarizes a student's attendance records.
type AttendanceAggregator struct {
	db          *sqlx.DB
	recentLimit int
}

// NewAttendanceAggregator constructs the aggregator.
func NewAttendanceAggregator(db *sqlx.DB, recentLimit int) *AttendanceAggregator {
	if recentLimit <= 0 {
		recentLimit = 5
	}
	return &AttendanceAggregator{db: db, recentLimit: recentLimit}
}

type attendanceCounts struct {
	Total   int `db:"total"`
	Present int `db:"present"`
	Late    int `db:"late"`
	Absent  int `db:"absent"`
}

// Summarize aggregates counts, the attendance rate, and recent records.
func (a *AttendanceAggregator) Summarize(ctx context.Context, studentID string) (*models.AttendanceSummary, error) {
	const countQuery = `SELECT COUNT(*) AS total,
COUNT(*) FILTER (WHERE status = 'present') AS present,
COUNT(*) FILTER (WHERE status = 'late') AS late,
COUNT(*) FILTER (WHERE status = 'absent') AS absent
FROM attendance_records WHERE student_id = $1`

	var counts attendanceCounts
	if err := a.db.GetContext(ctx, &counts, countQuery, studentID); err != nil {
		return nil, fmt.Errorf("attendance counts: %w", err)
	}

	const recentQuery = `SELECT date, status FROM attendance_records
WHERE student_id = $1 ORDER BY date DESC LIMIT $2`
	var records []models.AttendanceRecord
	if err := a.db.SelectContext(ctx, &records, recentQuery, studentID, a.recentLimit); err != nil {
		return nil, fmt.Errorf("attendance recent records: %w", err)
	}

	return &models.AttendanceSummary{
		Total:          counts.Total,
		Present:        counts.Present,
		Late:           counts.Late,
		Absent:         counts.Absent,
		AttendanceRate: Rate(counts.Present, counts.Total),
		RecentRecords:  records,
	}, nil
}
