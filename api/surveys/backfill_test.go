package surveys_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Adedunmol/questino/api/surveys"
	"github.com/Adedunmol/questino/database"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type StubVisibilityQueries struct {
	Rows            []database.Survey
	Updates         []database.SetSurveyVisibilityParams
	ShouldFailList  bool
	ShouldFailWrite bool
}

func (s *StubVisibilityQueries) ListSurveysWithNullVisibility(ctx context.Context) ([]database.Survey, error) {
	if s.ShouldFailList {
		return nil, errors.New("database unavailable")
	}
	return s.Rows, nil
}

func (s *StubVisibilityQueries) SetSurveyVisibility(ctx context.Context, arg database.SetSurveyVisibilityParams) error {
	if s.ShouldFailWrite {
		return errors.New("database unavailable")
	}
	s.Updates = append(s.Updates, arg)
	return nil
}

func visibilityRows() []database.Survey {
	return []database.Survey{
		{ID: "s-1", Title: "Both missing"},
		{ID: "s-2", Title: "Private", IsPublic: pgtype.Bool{Bool: false, Valid: true}},
		{ID: "s-3", Title: "Already set", IsPublic: pgtype.Bool{Bool: true, Valid: true}, StatsPublic: pgtype.Bool{Bool: false, Valid: true}},
	}
}

func TestBackfillVisibility(t *testing.T) {
	t.Run("fills only missing flags", func(t *testing.T) {
		q := &StubVisibilityQueries{Rows: visibilityRows()}

		result, err := surveys.BackfillVisibility(context.Background(), q, false, zap.NewNop())
		require.NoError(t, err)

		assert.Equal(t, surveys.BackfillResult{Updated: 2, Skipped: 1}, result)
		require.Len(t, q.Updates, 2)
		assert.Equal(t, pgtype.Bool{Bool: true, Valid: true}, q.Updates[0].IsPublic)
		assert.Equal(t, pgtype.Bool{Bool: true, Valid: true}, q.Updates[0].StatsPublic)
		assert.Equal(t, pgtype.Bool{Bool: false, Valid: true}, q.Updates[1].IsPublic)
		assert.Equal(t, pgtype.Bool{Bool: true, Valid: true}, q.Updates[1].StatsPublic)
	})

	t.Run("dry run writes nothing", func(t *testing.T) {
		q := &StubVisibilityQueries{Rows: visibilityRows()}

		result, err := surveys.BackfillVisibility(context.Background(), q, true, zap.NewNop())
		require.NoError(t, err)

		assert.Equal(t, 2, result.Updated)
		assert.Empty(t, q.Updates)
	})

	t.Run("write failure stops the run", func(t *testing.T) {
		q := &StubVisibilityQueries{Rows: visibilityRows(), ShouldFailWrite: true}

		_, err := surveys.BackfillVisibility(context.Background(), q, false, zap.NewNop())
		assert.Error(t, err)
	})

	t.Run("list failure", func(t *testing.T) {
		q := &StubVisibilityQueries{ShouldFailList: true}

		_, err := surveys.BackfillVisibility(context.Background(), q, false, zap.NewNop())
		assert.Error(t, err)
	})
}
