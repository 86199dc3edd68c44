package stats

import (
	"context"
	"errors"
	"net/http"

	"github.com/Adedunmol/questino/api/analysis"
	"github.com/Adedunmol/questino/api/custom_errors"
	"github.com/Adedunmol/questino/api/identity"
	"github.com/Adedunmol/questino/api/jsonutil"
	"github.com/Adedunmol/questino/api/responses"
	"github.com/Adedunmol/questino/api/surveys"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type SurveyReader interface {
	GetSurvey(ctx context.Context, surveyID string) (surveys.Survey, error)
	GetSurveyBySlug(ctx context.Context, slug string) (surveys.Survey, error)
	ListQuestions(ctx context.Context, surveyID string) ([]surveys.Question, error)
}

type ResponseLister interface {
	ListResponsesBySurvey(ctx context.Context, surveyID string) ([]responses.Response, error)
}

type AnalysisLister interface {
	ListAnalysisByResponseIDs(ctx context.Context, responseIDs []string) ([]analysis.Record, error)
}

type Handler struct {
	Surveys   SurveyReader
	Responses ResponseLister
	Analysis  AnalysisLister
	Insights  *InsightsService
	Logger    *zap.Logger
}

type SurveySummary struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Slug        string `json:"slug"`
}

type StatsPayload struct {
	Survey SurveySummary `json:"survey"`
	Report Report        `json:"report"`
}

// GetSurveyStatsHandler serves stats to the owner, and to anyone else only
// when the owner has made them public.
func (h *Handler) GetSurveyStatsHandler(responseWriter http.ResponseWriter, request *http.Request) {
	ctx := request.Context()

	survey, err := h.Surveys.GetSurvey(ctx, chi.URLParam(request, "surveyID"))
	if err != nil {
		writeError(responseWriter, err)
		return
	}

	caller, _ := identity.FromContext(ctx)
	if !caller.Owns(survey.OwnerID) && !survey.StatsPublic {
		writeError(responseWriter, custom_errors.ErrStatsPrivate)
		return
	}

	h.writeReport(responseWriter, request, survey)
}

func (h *Handler) GetPublicStatsHandler(responseWriter http.ResponseWriter, request *http.Request) {
	survey, err := h.Surveys.GetSurveyBySlug(request.Context(), chi.URLParam(request, "slug"))
	if err != nil {
		if errors.Is(err, custom_errors.ErrNotFound) {
			response := jsonutil.Response{Status: "error", Message: "Survey not found."}
			jsonutil.WriteJSONResponse(responseWriter, response, http.StatusNotFound)
			return
		}
		writeError(responseWriter, err)
		return
	}

	if !survey.StatsPublic {
		writeError(responseWriter, custom_errors.ErrPublicStatsOff)
		return
	}

	h.writeReport(responseWriter, request, survey)
}

func (h *Handler) InsightsHandler(responseWriter http.ResponseWriter, request *http.Request) {
	ctx := request.Context()

	caller, ok := identity.FromContext(ctx)
	if !ok {
		response := jsonutil.Response{Status: "error", Message: "unauthorized"}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusUnauthorized)
		return
	}

	survey, err := h.Surveys.GetSurvey(ctx, chi.URLParam(request, "surveyID"))
	if err != nil {
		writeError(responseWriter, err)
		return
	}

	if !caller.Owns(survey.OwnerID) {
		writeError(responseWriter, custom_errors.ErrForbidden)
		return
	}

	data, err := jsonutil.UnmarshalJsonResponse[InsightsBody](request)
	if err != nil {
		response := jsonutil.Response{Status: "error", Message: err.Error()}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusBadRequest)
		return
	}

	report, err := h.buildReport(ctx, survey)
	if err != nil {
		writeError(responseWriter, err)
		return
	}

	response := jsonutil.Response{
		Status:  "success",
		Message: "insights generated",
		Data:    map[string]string{"answer": h.Insights.Ask(ctx, survey, report, data)},
	}
	jsonutil.WriteJSONResponse(responseWriter, response, http.StatusOK)
}

func (h *Handler) writeReport(responseWriter http.ResponseWriter, request *http.Request, survey surveys.Survey) {
	report, err := h.buildReport(request.Context(), survey)
	if err != nil {
		h.Logger.Error("error building stats", zap.String("survey_id", survey.ID), zap.Error(err))
		writeError(responseWriter, err)
		return
	}

	response := jsonutil.Response{
		Status:  "success",
		Message: "stats retrieved successfully",
		Data: StatsPayload{
			Survey: SurveySummary{
				ID:          survey.ID,
				Title:       survey.Title,
				Description: survey.Description,
				Slug:        survey.Slug,
			},
			Report: report,
		},
	}
	jsonutil.WriteJSONResponse(responseWriter, response, http.StatusOK)
}

// buildReport fetches questions, responses and the analysis rows joined to
// those responses, then aggregates them.
func (h *Handler) buildReport(ctx context.Context, survey surveys.Survey) (Report, error) {
	questions, err := h.Surveys.ListQuestions(ctx, survey.ID)
	if err != nil {
		return Report{}, err
	}

	resps, err := h.Responses.ListResponsesBySurvey(ctx, survey.ID)
	if err != nil {
		return Report{}, err
	}

	ids := make([]string, 0, len(resps))
	for _, r := range resps {
		ids = append(ids, r.ID)
	}

	records, err := h.Analysis.ListAnalysisByResponseIDs(ctx, ids)
	if err != nil {
		return Report{}, err
	}

	return Compute(questions, resps, records), nil
}

func writeError(responseWriter http.ResponseWriter, err error) {
	response := jsonutil.Response{Status: "error", Message: err.Error()}
	jsonutil.WriteJSONResponse(responseWriter, response, custom_errors.HTTPStatus(err))
}
