package responses

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Adedunmol/questino/api/custom_errors"
	"github.com/Adedunmol/questino/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const queryTimeout = 5 * time.Second

// Responses are never updated once written, so the store has no update.
type Store interface {
	CreateResponse(ctx context.Context, params CreateResponseParams) (Response, error)
	GetResponse(ctx context.Context, responseID string) (Response, error)
	ListResponsesBySurvey(ctx context.Context, surveyID string) ([]Response, error)
}

type Repository struct {
	queries *database.Queries
}

func NewResponseStore(queries *database.Queries) *Repository {
	return &Repository{queries: queries}
}

func (r *Repository) CreateResponse(ctx context.Context, params CreateResponseParams) (Response, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	answers, err := json.Marshal(params.Answers)
	if err != nil {
		return Response{}, fmt.Errorf("error encoding answers: %w", err)
	}

	row, err := r.queries.CreateResponse(ctx, database.CreateResponseParams{
		ID:              uuid.NewString(),
		QuestionnaireID: params.SurveyID,
		ParticipantID:   textOrNull(params.ParticipantID),
		Answers:         string(answers),
		SubmittedAt:     pgtype.Timestamptz{Time: params.SubmittedAt, Valid: true},
	})
	if err != nil {
		return Response{}, fmt.Errorf("error creating response: %w", err)
	}

	return responseFromRow(row), nil
}

func (r *Repository) GetResponse(ctx context.Context, responseID string) (Response, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	row, err := r.queries.GetResponse(ctx, responseID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Response{}, custom_errors.ErrNotFound
		}
		return Response{}, fmt.Errorf("error fetching response: %w", err)
	}

	return responseFromRow(row), nil
}

func (r *Repository) ListResponsesBySurvey(ctx context.Context, surveyID string) ([]Response, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := r.queries.ListResponsesBySurvey(ctx, surveyID)
	if err != nil {
		return nil, fmt.Errorf("error listing responses: %w", err)
	}

	responses := make([]Response, 0, len(rows))
	for _, row := range rows {
		responses = append(responses, responseFromRow(row))
	}
	return responses, nil
}

func responseFromRow(row database.Response) Response {
	response := Response{
		ID:          row.ID,
		SurveyID:    row.QuestionnaireID,
		Answers:     DecodeAnswers(row.Answers),
		SubmittedAt: row.SubmittedAt.Time,
		CreatedAt:   row.CreatedAt.Time,
	}
	if row.ParticipantID.Valid {
		participantID := row.ParticipantID.String
		response.ParticipantID = &participantID
	}
	return response
}

// DecodeAnswers parses a stored answers document. Malformed documents decode
// to an empty map.
func DecodeAnswers(raw string) map[string]interface{} {
	answers := map[string]interface{}{}
	if raw == "" {
		return answers
	}
	if err := json.Unmarshal([]byte(raw), &answers); err != nil || answers == nil {
		return map[string]interface{}{}
	}
	return answers
}

func textOrNull(value *string) pgtype.Text {
	if value == nil {
		return pgtype.Text{}
	}
	return pgtype.Text{String: *value, Valid: true}
}
