package analysis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Adedunmol/questino/api/custom_errors"
	"github.com/Adedunmol/questino/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const queryTimeout = 5 * time.Second

// Record is one stored analysis result. A nil QuestionID means the analysis
// covers the whole response.
type Record struct {
	ID             string    `json:"id"`
	ResponseID     string    `json:"responseId"`
	QuestionID     *string   `json:"questionId"`
	Joy            float64   `json:"joy"`
	Sadness        float64   `json:"sadness"`
	Anger          float64   `json:"anger"`
	Fear           float64   `json:"fear"`
	Disgust        float64   `json:"disgust"`
	Sentiment      float64   `json:"sentiment"`
	SentimentLabel string    `json:"sentimentLabel"`
	Model          string    `json:"model"`
	ProcessedAt    time.Time `json:"processedAt"`
	CreatedAt      time.Time `json:"createdAt"`
}

type Store interface {
	CreateAnalysis(ctx context.Context, record Record) (Record, error)
	GetLatestAnalysis(ctx context.Context, responseID string) (Record, error)
	ListAnalysisByResponseIDs(ctx context.Context, responseIDs []string) ([]Record, error)
}

type Repository struct {
	queries *database.Queries
}

func NewAnalysisStore(queries *database.Queries) *Repository {
	return &Repository{queries: queries}
}

func (r *Repository) CreateAnalysis(ctx context.Context, record Record) (Record, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	params := database.CreateAnalysisParams{
		ID:             record.ID,
		ResponseID:     record.ResponseID,
		Joy:            record.Joy,
		Sadness:        record.Sadness,
		Anger:          record.Anger,
		Fear:           record.Fear,
		Disgust:        record.Disgust,
		Sentiment:      record.Sentiment,
		SentimentLabel: record.SentimentLabel,
		Model:          record.Model,
		ProcessedAt:    pgtype.Timestamptz{Time: record.ProcessedAt, Valid: true},
	}
	if record.QuestionID != nil {
		params.QuestionID = pgtype.Text{String: *record.QuestionID, Valid: true}
	}

	row, err := r.queries.CreateAnalysis(ctx, params)
	if err != nil {
		return Record{}, fmt.Errorf("error creating analysis: %w", err)
	}

	return recordFromRow(row), nil
}

// GetLatestAnalysis returns custom_errors.ErrNotFound while no analysis exists
// for the response.
func (r *Repository) GetLatestAnalysis(ctx context.Context, responseID string) (Record, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	row, err := r.queries.GetLatestAnalysisByResponse(ctx, responseID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Record{}, custom_errors.ErrNotFound
		}
		return Record{}, fmt.Errorf("error fetching analysis: %w", err)
	}

	return recordFromRow(row), nil
}

func (r *Repository) ListAnalysisByResponseIDs(ctx context.Context, responseIDs []string) ([]Record, error) {
	if len(responseIDs) == 0 {
		return []Record{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := r.queries.ListAnalysisByResponseIDs(ctx, responseIDs)
	if err != nil {
		return nil, fmt.Errorf("error listing analysis: %w", err)
	}

	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, recordFromRow(row))
	}
	return records, nil
}

func recordFromRow(row database.Analysis) Record {
	record := Record{
		ID:             row.ID,
		ResponseID:     row.ResponseID,
		Joy:            row.Joy,
		Sadness:        row.Sadness,
		Anger:          row.Anger,
		Fear:           row.Fear,
		Disgust:        row.Disgust,
		Sentiment:      row.Sentiment,
		SentimentLabel: row.SentimentLabel,
		Model:          row.Model,
		ProcessedAt:    row.ProcessedAt.Time,
		CreatedAt:      row.CreatedAt.Time,
	}
	if row.QuestionID.Valid {
		questionID := row.QuestionID.String
		record.QuestionID = &questionID
	}
	return record
}
