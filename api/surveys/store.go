package surveys

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Adedunmol/questino/api/custom_errors"
	"github.com/Adedunmol/questino/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

type Store interface {
	// Survey Management
	CreateSurveyWithQuestions(ctx context.Context, params CreateSurveyParams, inputs []QuestionInput) (Survey, []Question, error)
	GetSurvey(ctx context.Context, surveyID string) (Survey, error)
	GetSurveyBySlug(ctx context.Context, slug string) (Survey, error)
	ListSurveysByOwner(ctx context.Context, ownerID string) ([]Survey, error)
	UpdateSurvey(ctx context.Context, params UpdateSurveyParams) (Survey, error)
	DeleteSurvey(ctx context.Context, surveyID string) error
	DeleteSurveys(ctx context.Context, surveyIDs []string) []BulkResult
	DuplicateSurvey(ctx context.Context, surveyID, ownerID string) (Survey, error)

	// Question Management
	AddQuestion(ctx context.Context, surveyID string, input QuestionInput) (Question, error)
	GetQuestion(ctx context.Context, questionID string) (Question, error)
	ListQuestions(ctx context.Context, surveyID string) ([]Question, error)
	UpdateQuestion(ctx context.Context, params UpdateQuestionParams) (Question, error)
	DeleteQuestion(ctx context.Context, questionID string) error
}

const (
	UniqueViolationCode = "23505"
	UntitledSurvey      = "Untitled survey"
	slugAttempts        = 3
	queryTimeout        = 5 * time.Second
)

type Repository struct {
	queries    *database.Queries
	transactor database.Transactor
}

func NewSurveyStore(queries *database.Queries, transactor database.Transactor) *Repository {
	return &Repository{queries: queries, transactor: transactor}
}

// ==================== Survey Management ====================

// CreateSurveyWithQuestions stores a survey and its initial questions in one
// transaction. Questions without an order take their position in inputs.
func (r *Repository) CreateSurveyWithQuestions(ctx context.Context, params CreateSurveyParams, inputs []QuestionInput) (Survey, []Question, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*queryTimeout)
	defer cancel()

	var survey Survey
	questions := make([]Question, 0, len(inputs))

	err := r.transactor.WithTransaction(ctx, func(ctx context.Context) error {
		q := database.QueriesFor(ctx, r.queries)

		var err error
		survey, err = r.createSurvey(ctx, q, params, ResolveNameConflict)
		if err != nil {
			return err
		}

		for i, input := range inputs {
			if input.Order == nil {
				order := i + 1
				input.Order = &order
			}

			questionParams, err := createQuestionParams(survey.ID, input)
			if err != nil {
				return err
			}

			row, err := q.CreateQuestion(ctx, questionParams)
			if err != nil {
				return fmt.Errorf("error creating question: %w", err)
			}
			questions = append(questions, questionFromRow(row))
		}

		return nil
	})
	if err != nil {
		return Survey{}, nil, err
	}

	return survey, questions, nil
}

func (r *Repository) createSurvey(ctx context.Context, q *database.Queries, params CreateSurveyParams, resolve func(string, []string) string) (Survey, error) {
	title := params.Title
	if params.OwnerID != "" {
		existing, err := q.ListSurveyTitlesByOwner(ctx, database.ListSurveyTitlesByOwnerParams{
			OwnerID: pgtype.Text{String: params.OwnerID, Valid: true},
		})
		if err != nil {
			return Survey{}, fmt.Errorf("error listing survey titles: %w", err)
		}
		title = resolve(title, existing)
	}

	for attempt := 0; attempt < slugAttempts; attempt++ {
		slug, err := NewSlug(title)
		if err != nil {
			return Survey{}, err
		}

		var row database.Survey
		err = database.WithSavepoint(ctx, func(ctx context.Context) error {
			var err error
			row, err = database.QueriesFor(ctx, q).CreateSurvey(ctx, database.CreateSurveyParams{
				ID:             uuid.NewString(),
				OwnerID:        pgtype.Text{String: params.OwnerID, Valid: params.OwnerID != ""},
				Title:          title,
				Description:    params.Description,
				Slug:           slug,
				AllowAnonymous: boolOr(params.AllowAnonymous, true),
				IsPublic:       pgtype.Bool{Bool: boolOr(params.IsPublic, true), Valid: true},
				StatsPublic:    pgtype.Bool{Bool: boolOr(params.StatsPublic, true), Valid: true},
			})
			return err
		})
		if err == nil {
			return surveyFromRow(row), nil
		}

		if !isUniqueViolation(err) {
			return Survey{}, fmt.Errorf("error creating survey: %w", err)
		}
	}

	return Survey{}, fmt.Errorf("error creating survey: %w", custom_errors.ErrConflict)
}

func (r *Repository) GetSurvey(ctx context.Context, surveyID string) (Survey, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	row, err := r.queries.GetSurvey(ctx, surveyID)
	if err != nil {
		return Survey{}, wrapQueryError("error getting survey", err)
	}

	return surveyFromRow(row), nil
}

func (r *Repository) GetSurveyBySlug(ctx context.Context, slug string) (Survey, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	row, err := r.queries.GetSurveyBySlug(ctx, slug)
	if err != nil {
		return Survey{}, wrapQueryError("error getting survey", err)
	}

	return surveyFromRow(row), nil
}

func (r *Repository) ListSurveysByOwner(ctx context.Context, ownerID string) ([]Survey, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := r.queries.ListSurveysByOwner(ctx, pgtype.Text{String: ownerID, Valid: true})
	if err != nil {
		return nil, fmt.Errorf("error listing surveys: %w", err)
	}

	surveys := make([]Survey, 0, len(rows))
	for _, row := range rows {
		surveys = append(surveys, surveyFromRow(row))
	}

	return surveys, nil
}

func (r *Repository) UpdateSurvey(ctx context.Context, params UpdateSurveyParams) (Survey, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	updateParams := database.UpdateSurveyParams{
		ID: params.ID,
	}

	if params.Title != nil {
		title := strings.TrimSpace(*params.Title)
		if title == "" {
			title = UntitledSurvey
		}

		current, err := r.queries.GetSurvey(ctx, params.ID)
		if err != nil {
			return Survey{}, wrapQueryError("error getting survey", err)
		}

		if current.OwnerID.Valid {
			others, err := r.queries.ListSurveyTitlesByOwner(ctx, database.ListSurveyTitlesByOwnerParams{
				OwnerID:   current.OwnerID,
				ExcludeID: pgtype.Text{String: params.ID, Valid: true},
			})
			if err != nil {
				return Survey{}, fmt.Errorf("error listing survey titles: %w", err)
			}
			title = ResolveNameConflict(title, others)
		}

		updateParams.Title = pgtype.Text{String: title, Valid: true}
	}

	if params.Description != nil {
		updateParams.Description = pgtype.Text{String: *params.Description, Valid: true}
	}

	if params.AllowAnonymous != nil {
		updateParams.AllowAnonymous = pgtype.Bool{Bool: *params.AllowAnonymous, Valid: true}
	}

	if params.IsPublic != nil {
		updateParams.IsPublic = pgtype.Bool{Bool: *params.IsPublic, Valid: true}
	}

	if params.StatsPublic != nil {
		updateParams.StatsPublic = pgtype.Bool{Bool: *params.StatsPublic, Valid: true}
	}

	row, err := r.queries.UpdateSurvey(ctx, updateParams)
	if err != nil {
		return Survey{}, wrapQueryError("error updating survey", err)
	}

	return surveyFromRow(row), nil
}

func (r *Repository) DeleteSurvey(ctx context.Context, surveyID string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	deleted, err := r.queries.DeleteSurvey(ctx, surveyID)
	if err != nil {
		return fmt.Errorf("error deleting survey: %w", err)
	}

	if deleted == 0 {
		return fmt.Errorf("error deleting survey: %w", custom_errors.ErrNotFound)
	}

	return nil
}

// DeleteSurveys attempts every id and reports each outcome. A failed delete
// does not stop the remaining ones.
func (r *Repository) DeleteSurveys(ctx context.Context, surveyIDs []string) []BulkResult {
	results := make([]BulkResult, 0, len(surveyIDs))

	for _, id := range surveyIDs {
		result := BulkResult{ID: id, OK: true}
		if err := r.DeleteSurvey(ctx, id); err != nil {
			result.OK = false
			result.Error = err.Error()
		}
		results = append(results, result)
	}

	return results
}

// DuplicateSurvey copies a survey and its questions for ownerID in a single
// transaction. The copy gets a fresh slug and a "(Copy)" title.
func (r *Repository) DuplicateSurvey(ctx context.Context, surveyID, ownerID string) (Survey, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*queryTimeout)
	defer cancel()

	var duplicate Survey

	err := r.transactor.WithTransaction(ctx, func(ctx context.Context) error {
		q := database.QueriesFor(ctx, r.queries)

		source, err := q.GetSurvey(ctx, surveyID)
		if err != nil {
			return wrapQueryError("error getting survey", err)
		}

		questions, err := q.ListQuestionsBySurvey(ctx, surveyID)
		if err != nil {
			return fmt.Errorf("error listing questions: %w", err)
		}

		source.IsPublic = pgtype.Bool{Bool: !source.IsPublic.Valid || source.IsPublic.Bool, Valid: true}
		source.StatsPublic = pgtype.Bool{Bool: !source.StatsPublic.Valid || source.StatsPublic.Bool, Valid: true}

		duplicate, err = r.createSurvey(ctx, q, CreateSurveyParams{
			OwnerID:        ownerID,
			Title:          source.Title,
			Description:    source.Description,
			AllowAnonymous: &source.AllowAnonymous,
			IsPublic:       &source.IsPublic.Bool,
			StatsPublic:    &source.StatsPublic.Bool,
		}, ResolveCopyNameConflict)
		if err != nil {
			return err
		}

		for i, question := range questions {
			_, err := q.CreateQuestion(ctx, database.CreateQuestionParams{
				ID:                 uuid.NewString(),
				QuestionnaireID:    duplicate.ID,
				Text:               question.Text,
				Type:               NormalizeType(question.Type),
				Options:            question.Options,
				Required:           question.Required,
				OrderIndex:         int32(i + 1),
				ScaleMin:           question.ScaleMin,
				ScaleMax:           question.ScaleMax,
				SectionTitle:       question.SectionTitle,
				SectionDescription: question.SectionDescription,
			})
			if err != nil {
				return fmt.Errorf("error copying question: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return Survey{}, err
	}

	return duplicate, nil
}

// ==================== Question Management ====================

func (r *Repository) AddQuestion(ctx context.Context, surveyID string, input QuestionInput) (Question, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	params, err := createQuestionParams(surveyID, input)
	if err != nil {
		return Question{}, err
	}

	row, err := r.queries.CreateQuestion(ctx, params)
	if err != nil {
		var e *pgconn.PgError
		if errors.As(err, &e) && e.Code == "23503" {
			return Question{}, fmt.Errorf("error creating question: %w", custom_errors.ErrNotFound)
		}
		return Question{}, fmt.Errorf("error creating question: %w", err)
	}

	return questionFromRow(row), nil
}

func createQuestionParams(surveyID string, input QuestionInput) (database.CreateQuestionParams, error) {
	questionType := NormalizeType(input.Type)

	params := database.CreateQuestionParams{
		ID:              uuid.NewString(),
		QuestionnaireID: surveyID,
		Text:            input.Text,
		Type:            questionType,
		Required:        input.Required,
		OrderIndex:      1,
	}

	if input.Order != nil {
		params.OrderIndex = int32(*input.Order)
	}

	switch questionType {
	case TypeMCQ:
		options, err := encodeOptions(input.Options)
		if err != nil {
			return database.CreateQuestionParams{}, err
		}
		params.Options = options
	case TypeScale, TypeSlider:
		low, high := defaultBounds(questionType)
		scaleMin, scaleMax := intOr(input.ScaleMin, low), intOr(input.ScaleMax, high)
		if err := checkBoundRange(scaleMin, scaleMax); err != nil {
			return database.CreateQuestionParams{}, err
		}
		if err := CheckScaleBounds(questionType, scaleMin, scaleMax); err != nil {
			return database.CreateQuestionParams{}, err
		}
		params.ScaleMin = pgtype.Int4{Int32: int32(scaleMin), Valid: true}
		params.ScaleMax = pgtype.Int4{Int32: int32(scaleMax), Valid: true}
	case TypeSection:
		params.SectionTitle = pgtype.Text{String: input.SectionTitle, Valid: input.SectionTitle != ""}
		params.SectionDescription = pgtype.Text{String: input.SectionDescription, Valid: input.SectionDescription != ""}
	}

	return params, nil
}

func (r *Repository) GetQuestion(ctx context.Context, questionID string) (Question, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	row, err := r.queries.GetQuestion(ctx, questionID)
	if err != nil {
		return Question{}, wrapQueryError("error getting question", err)
	}

	return questionFromRow(row), nil
}

func (r *Repository) ListQuestions(ctx context.Context, surveyID string) ([]Question, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := r.queries.ListQuestionsBySurvey(ctx, surveyID)
	if err != nil {
		return nil, fmt.Errorf("error getting questions: %w", err)
	}

	questions := make([]Question, 0, len(rows))
	for _, row := range rows {
		questions = append(questions, questionFromRow(row))
	}

	return questions, nil
}

func (r *Repository) UpdateQuestion(ctx context.Context, params UpdateQuestionParams) (Question, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	updateParams := database.UpdateQuestionParams{
		ID: params.ID,
	}

	if params.Text != nil {
		updateParams.Text = pgtype.Text{String: *params.Text, Valid: true}
	}

	if params.Type != nil {
		updateParams.Type = pgtype.Text{String: NormalizeType(*params.Type), Valid: true}
	}

	if params.Options != nil {
		options, err := encodeOptions(params.Options)
		if err != nil {
			return Question{}, err
		}
		updateParams.Options = options
	}

	if params.Required != nil {
		updateParams.Required = pgtype.Bool{Bool: *params.Required, Valid: true}
	}

	if params.Order != nil {
		updateParams.OrderIndex = pgtype.Int4{Int32: int32(*params.Order), Valid: true}
	}

	if params.ScaleMin != nil {
		if err := checkBoundRange(*params.ScaleMin); err != nil {
			return Question{}, err
		}
		updateParams.ScaleMin = pgtype.Int4{Int32: int32(*params.ScaleMin), Valid: true}
	}

	if params.ScaleMax != nil {
		if err := checkBoundRange(*params.ScaleMax); err != nil {
			return Question{}, err
		}
		updateParams.ScaleMax = pgtype.Int4{Int32: int32(*params.ScaleMax), Valid: true}
	}

	if params.SectionTitle != nil {
		updateParams.SectionTitle = pgtype.Text{String: *params.SectionTitle, Valid: true}
	}

	if params.SectionDescription != nil {
		updateParams.SectionDescription = pgtype.Text{String: *params.SectionDescription, Valid: true}
	}

	row, err := r.queries.UpdateQuestion(ctx, updateParams)
	if err != nil {
		return Question{}, wrapQueryError("error updating question", err)
	}

	return questionFromRow(row), nil
}

func (r *Repository) DeleteQuestion(ctx context.Context, questionID string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	deleted, err := r.queries.DeleteQuestion(ctx, questionID)
	if err != nil {
		return fmt.Errorf("error deleting question: %w", err)
	}

	if deleted == 0 {
		return fmt.Errorf("error deleting question: %w", custom_errors.ErrNotFound)
	}

	return nil
}

// ==================== Mapping ====================

func surveyFromRow(row database.Survey) Survey {
	return Survey{
		ID:             row.ID,
		OwnerID:        row.OwnerID.String,
		Title:          row.Title,
		Description:    row.Description,
		Slug:           row.Slug,
		AllowAnonymous: row.AllowAnonymous,
		// NULL visibility comes from legacy rows and means public.
		IsPublic:    !row.IsPublic.Valid || row.IsPublic.Bool,
		StatsPublic: !row.StatsPublic.Valid || row.StatsPublic.Bool,
		CreatedAt:   row.CreatedAt.Time,
	}
}

func questionFromRow(row database.Question) Question {
	question := Question{
		ID:                 row.ID,
		SurveyID:           row.QuestionnaireID,
		Text:               row.Text,
		Type:               NormalizeType(row.Type),
		Options:            DecodeOptions(row.Options.String),
		Required:           row.Required,
		Order:              int(row.OrderIndex),
		SectionTitle:       row.SectionTitle.String,
		SectionDescription: row.SectionDescription.String,
	}

	if row.ScaleMin.Valid {
		low := int(row.ScaleMin.Int32)
		question.ScaleMin = &low
	}

	if row.ScaleMax.Valid {
		high := int(row.ScaleMax.Int32)
		question.ScaleMax = &high
	}

	return question
}

// DecodeOptions parses stored mcq options. Malformed input yields no options.
func DecodeOptions(raw string) []string {
	options := []string{}
	if raw == "" {
		return options
	}

	var decoded []interface{}
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return options
	}

	for _, option := range decoded {
		options = append(options, fmt.Sprint(option))
	}

	return options
}

func encodeOptions(options []string) (pgtype.Text, error) {
	cleaned := make([]string, 0, len(options))
	for _, option := range options {
		if trimmed := strings.TrimSpace(option); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}

	encoded, err := json.Marshal(cleaned)
	if err != nil {
		return pgtype.Text{}, fmt.Errorf("error marshaling options: %w", err)
	}

	return pgtype.Text{String: string(encoded), Valid: true}, nil
}

func wrapQueryError(message string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", message, custom_errors.ErrNotFound)
	}
	if isUniqueViolation(err) {
		return fmt.Errorf("%s: %w", message, custom_errors.ErrConflict)
	}
	return fmt.Errorf("%s: %w", message, err)
}

func isUniqueViolation(err error) bool {
	var e *pgconn.PgError
	return errors.As(err, &e) && e.Code == UniqueViolationCode
}

func boolOr(value *bool, fallback bool) bool {
	if value == nil {
		return fallback
	}
	return *value
}

func intOr(value *int, fallback int32) int {
	if value == nil {
		return int(fallback)
	}
	return *value
}

// checkBoundRange keeps scale bounds inside the range request bodies accept so
// nothing is truncated on the way into an int4 column.
func checkBoundRange(bounds ...int) error {
	for _, bound := range bounds {
		if bound < -ScaleBoundLimit || bound > ScaleBoundLimit {
			return fmt.Errorf("%w: bound %d is outside ±%d", custom_errors.ErrInvalidScale, bound, ScaleBoundLimit)
		}
	}
	return nil
}
