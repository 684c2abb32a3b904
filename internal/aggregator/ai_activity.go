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

// AIActivityAggregator summarizes AI-tutoring interactions. The analysis
// sub-record is optional; students who never had an analysis run still
// get a well-formed summary with a nil Analysis.
type AIActivityAggregator struct {
	db *sqlx.DB
}

// NewAIActivityAggregator constructs the aggregator.
func NewAIActivityAggregator(db *sqlx.DB) *AIActivityAggregator {
	return &AIActivityAggregator{db: db}
}

type aiActivityRow struct {
	TotalChats     int            `db:"total_chats"`
	RecentActivity sql.NullString `db:"recent_activity"`
}

type aiAnalysisRow struct {
	Summary    string `db:"summary"`
	Strengths  []byte `db:"strengths"`
	Weaknesses []byte `db:"weaknesses"`
}

// Summarize counts chat sessions and attaches the latest analysis when
// one exists.
func (a *AIActivityAggregator) Summarize(ctx context.Context, studentID string) (*models.AIActivitySummary, error) {
	const sessionQuery = `SELECT COUNT(*) AS total_chats, MAX(topic) AS recent_activity
FROM ai_chat_sessions WHERE student_id = $1`
	var row aiActivityRow
	if err := a.db.GetContext(ctx, &row, sessionQuery, studentID); err != nil {
		return nil, fmt.Errorf("ai activity counts: %w", err)
	}

	summary := &models.AIActivitySummary{
		TotalChats:     row.TotalChats,
		RecentActivity: row.RecentActivity.String,
	}

	const analysisQuery = `SELECT summary, strengths, weaknesses FROM ai_chat_analyses
WHERE student_id = $1 ORDER BY created_at DESC LIMIT 1`
	var analysis aiAnalysisRow
	if err := a.db.GetContext(ctx, &analysis, analysisQuery, studentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return summary, nil
		}
		return nil, fmt.Errorf("ai activity analysis: %w", err)
	}

	parsed := &models.AIAnalysis{Summary: analysis.Summary}
	if len(analysis.Strengths) > 0 {
		if err := json.Unmarshal(analysis.Strengths, &parsed.Strengths); err != nil {
			return nil, fmt.Errorf("parse analysis strengths: %w", err)
		}
	}
	if len(analysis.Weaknesses) > 0 {
		if err := json.Unmarshal(analysis.Weaknesses, &parsed.Weaknesses); err != nil {
			return nil, fmt.Errorf("parse analysis weaknesses: %w", err)
		}
	}
	summary.Analysis = parsed
	return summary, nil
}
