package surveys

import (
	"context"
	"fmt"

	"github.com/Adedunmol/questino/database"
	"github.com/jackc/pgx/v5/pgtype"
	"go.uber.org/zap"
)

// VisibilityQueries is the part of database.Queries the visibility backfill needs.
type VisibilityQueries interface {
	ListSurveysWithNullVisibility(ctx context.Context) ([]database.Survey, error)
	SetSurveyVisibility(ctx context.Context, arg database.SetSurveyVisibilityParams) error
}

type BackfillResult struct {
	Updated int
	Skipped int
}

// BackfillVisibility sets NULL is_public and stats_public flags to true and
// leaves flags that are already set alone. With dryRun nothing is written.
func BackfillVisibility(ctx context.Context, q VisibilityQueries, dryRun bool, logger *zap.Logger) (BackfillResult, error) {
	var result BackfillResult

	rows, err := q.ListSurveysWithNullVisibility(ctx)
	if err != nil {
		return result, fmt.Errorf("error listing surveys: %w", err)
	}
	logger.Info("backfill starting", zap.Int("candidates", len(rows)), zap.Bool("dry_run", dryRun))

	for _, row := range rows {
		if row.IsPublic.Valid && row.StatsPublic.Valid {
			result.Skipped++
			continue
		}

		after := database.SetSurveyVisibilityParams{
			ID:          row.ID,
			IsPublic:    fillTrue(row.IsPublic),
			StatsPublic: fillTrue(row.StatsPublic),
		}

		if !dryRun {
			if err := q.SetSurveyVisibility(ctx, after); err != nil {
				return result, fmt.Errorf("error updating survey %s: %w", row.ID, err)
			}
		}

		logger.Info("survey visibility backfilled",
			zap.String("survey_id", row.ID),
			zap.String("title", clipTitle(row.Title)),
			zap.String("is_public", describeBool(row.IsPublic)+" -> "+describeBool(after.IsPublic)),
			zap.String("stats_public", describeBool(row.StatsPublic)+" -> "+describeBool(after.StatsPublic)),
			zap.Bool("dry_run", dryRun),
		)
		result.Updated++
	}

	logger.Info(fmt.Sprintf("backfill complete. Updated: %d, Skipped: %d", result.Updated, result.Skipped))
	return result, nil
}

func fillTrue(value pgtype.Bool) pgtype.Bool {
	if value.Valid {
		return value
	}
	return pgtype.Bool{Bool: true, Valid: true}
}

func describeBool(value pgtype.Bool) string {
	if !value.Valid {
		return "null"
	}
	return fmt.Sprintf("%t", value.Bool)
}

func clipTitle(title string) string {
	if title == "" {
		return "(untitled)"
	}
	runes := []rune(title)
	if len(runes) > 40 {
		return string(runes[:39]) + "…"
	}
	return title
}
