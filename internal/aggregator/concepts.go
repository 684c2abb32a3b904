package aggregator

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/superplace/growth-report-api/internal/models"
)

// ConceptAggregator summarizes the latest concept-mastery analysis. A
// student without any analysis row has nothing to report, which is the
// explicit ErrUnavailable case rather than an empty summary.
type ConceptAggregator struct {
	db *sqlx.DB
}

// NewConceptAggregator constructs the aggregator.
func NewConceptAggregator(db *sqlx.DB) *ConceptAggregator {
	return &ConceptAggregator{db: db}
}

type conceptAnalysisRow struct {
	Summary         string `db:"summary"`
	WeakConcepts    []byte `db:"weak_concepts"`
	Recommendations []byte `db:"recommendations"`
}

// Summarize loads the newest analysis row for the student.
func (a *ConceptAggregator) Summarize(ctx context.Context, studentID string) (*models.ConceptSummary, error) {
	const query = `SELECT summary, weak_concepts, recommendations FROM concept_analyses
WHERE student_id = $1 ORDER BY created_at DESC LIMIT 1`
	var row conceptAnalysisRow
	if err := a.db.GetContext(ctx, &row, query, studentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUnavailable
		}
		return nil, fmt.Errorf("concept analysis: %w", err)
	}

	summary := &models.ConceptSummary{Summary: row.Summary}
	if len(row.WeakConcepts) > 0 {
		if err := json.Unmarshal(row.WeakConcepts, &summary.WeakConcepts); err != nil {
			return nil, fmt.Errorf("parse weak concepts: %w", err)
		}
	}
	if len(row.Recommendations) > 0 {
		if err := json.Unmarshal(row.Recommendations, &summary.Recommendations); err != nil {
			return nil, fmt.Errorf("parse concept recommendations: %w", err)
		}
	}

	// Analysis rows predate the closed severity set; unknown values
	// collapse to low rather than leaking through.
	for i := range summary.WeakConcepts {
		if !summary.WeakConcepts[i].Severity.Valid() {
			summary.WeakConcepts[i].Severity = models.ConceptSeverityLow
		}
	}
	return summary, nil
}
