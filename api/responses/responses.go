package responses

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Adedunmol/questino/api/analysis"
	"github.com/Adedunmol/questino/api/custom_errors"
	"github.com/Adedunmol/questino/api/identity"
	"github.com/Adedunmol/questino/api/jsonutil"
	"github.com/Adedunmol/questino/api/surveys"
	"github.com/Adedunmol/questino/queue"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const DefaultMinTextLength = 8

// SurveyReader is the read side of the survey store used while collecting
// responses.
type SurveyReader interface {
	GetSurvey(ctx context.Context, surveyID string) (surveys.Survey, error)
	GetSurveyBySlug(ctx context.Context, slug string) (surveys.Survey, error)
	ListQuestions(ctx context.Context, surveyID string) ([]surveys.Question, error)
}

type AnalysisReader interface {
	ListAnalysisByResponseIDs(ctx context.Context, responseIDs []string) ([]analysis.Record, error)
}

type Handler struct {
	Store         Store
	Surveys       SurveyReader
	Analysis      AnalysisReader
	Poller        *analysis.Poller
	Queue         queue.Queue
	Logger        *zap.Logger
	MinTextLength int
}

// ==================== Respondent Handlers ====================

func (h *Handler) GetRunnerHandler(responseWriter http.ResponseWriter, request *http.Request) {
	ctx := request.Context()

	survey, ok := h.loadSurveyBySlug(responseWriter, request)
	if !ok {
		return
	}

	caller, _ := identity.FromContext(ctx)
	if !survey.IsPublic && !caller.Owns(survey.OwnerID) {
		writeError(responseWriter, custom_errors.ErrSurveyPrivate)
		return
	}

	questions, err := h.Surveys.ListQuestions(ctx, survey.ID)
	if err != nil {
		writeError(responseWriter, err)
		return
	}

	count := 0
	for _, q := range questions {
		if q.Type != surveys.TypeSection {
			count++
		}
	}

	response := jsonutil.Response{
		Status:  "success",
		Message: "survey retrieved successfully",
		Data: RunnerPayload{
			Survey: RunnerSurvey{
				ID:             survey.ID,
				Title:          survey.Title,
				Description:    survey.Description,
				Slug:           survey.Slug,
				AllowAnonymous: survey.AllowAnonymous,
			},
			Sections:      surveys.BuildSections(questions),
			QuestionCount: count,
		},
	}
	jsonutil.WriteJSONResponse(responseWriter, response, http.StatusOK)
}

func (h *Handler) SubmitResponseHandler(responseWriter http.ResponseWriter, request *http.Request) {
	ctx := request.Context()

	survey, ok := h.loadSurveyBySlug(responseWriter, request)
	if !ok {
		return
	}

	if !survey.IsPublic {
		writeError(responseWriter, custom_errors.ErrSurveyPrivate)
		return
	}

	var participantID *string
	if !survey.AllowAnonymous {
		caller, ok := identity.FromContext(ctx)
		if !ok || !caller.IsAccount() {
			writeError(responseWriter, custom_errors.ErrAccountRequired)
			return
		}
		participantID = &caller.UserID
	}

	data, err := jsonutil.UnmarshalJsonResponse[SubmitResponseBody](request)
	if err != nil {
		response := jsonutil.Response{Status: "error", Message: err.Error()}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusBadRequest)
		return
	}

	questions, err := h.Surveys.ListQuestions(ctx, survey.ID)
	if err != nil {
		writeError(responseWriter, err)
		return
	}

	if missing := MissingRequired(questions, data.Answers); len(missing) > 0 {
		writeError(responseWriter, fmt.Errorf("%w: %s", custom_errors.ErrMissingAnswers, strings.Join(missing, ", ")))
		return
	}

	saved, err := h.Store.CreateResponse(ctx, CreateResponseParams{
		SurveyID:      survey.ID,
		ParticipantID: participantID,
		Answers:       data.Answers,
		SubmittedAt:   time.Now().UTC(),
	})
	if err != nil {
		h.Logger.Error("error saving response", zap.String("survey_id", survey.ID), zap.Error(err))
		writeError(responseWriter, err)
		return
	}

	enqueued := h.enqueueAnalysis(ctx, saved, questions)

	response := jsonutil.Response{
		Status:  "success",
		Message: "response submitted successfully",
		Data:    SubmitResult{Response: saved, AnalysisEnqueued: enqueued},
	}
	jsonutil.WriteJSONResponse(responseWriter, response, http.StatusCreated)
}

// enqueueAnalysis queues one analysis task per eligible text answer. Each
// failure is logged and skipped; the submission itself has already succeeded.
func (h *Handler) enqueueAnalysis(ctx context.Context, saved Response, questions []surveys.Question) int {
	minLength := h.MinTextLength
	if minLength <= 0 {
		minLength = DefaultMinTextLength
	}

	enqueued := 0
	for _, candidate := range AnalysisCandidates(questions, saved.Answers, minLength) {
		err := h.Queue.Enqueue(ctx, &queue.EmotionAnalysisPayload{
			ResponseID: saved.ID,
			QuestionID: candidate.QuestionID,
			Text:       candidate.Text,
		})
		if err != nil {
			h.Logger.Warn("analysis enqueue failed",
				zap.String("response_id", saved.ID),
				zap.String("question_id", candidate.QuestionID),
				zap.Error(err),
			)
			continue
		}
		enqueued++
	}
	return enqueued
}

// GetAnalysisHandler reports the latest analysis of a response. With
// ?wait=true it polls until the analysis arrives or the poller gives up.
func (h *Handler) GetAnalysisHandler(responseWriter http.ResponseWriter, request *http.Request) {
	ctx := request.Context()

	responseID := chi.URLParam(request, "responseID")
	if strings.TrimSpace(responseID) == "" {
		response := jsonutil.Response{Status: "error", Message: "invalid response ID"}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusBadRequest)
		return
	}

	if _, err := h.Store.GetResponse(ctx, responseID); err != nil {
		writeError(responseWriter, err)
		return
	}

	var (
		record analysis.Record
		err    error
	)
	if request.URL.Query().Get("wait") == "true" {
		record, err = h.Poller.WaitForAnalysis(ctx, responseID)
	} else {
		record, err = h.Poller.Latest(ctx, responseID)
	}

	if errors.Is(err, custom_errors.ErrNotFound) || errors.Is(err, custom_errors.ErrAnalysisTimeout) {
		response := jsonutil.Response{Status: "pending", Message: "Analysis in Progress"}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusAccepted)
		return
	}
	if err != nil {
		writeError(responseWriter, err)
		return
	}

	response := jsonutil.Response{
		Status:  "success",
		Message: "analysis retrieved successfully",
		Data:    record,
	}
	jsonutil.WriteJSONResponse(responseWriter, response, http.StatusOK)
}

// ==================== Owner Handlers ====================

// ListSurveyResponsesHandler returns a survey's responses together with the
// analysis rows that reference them.
func (h *Handler) ListSurveyResponsesHandler(responseWriter http.ResponseWriter, request *http.Request) {
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

	responses, err := h.Store.ListResponsesBySurvey(ctx, survey.ID)
	if err != nil {
		writeError(responseWriter, err)
		return
	}

	ids := make([]string, 0, len(responses))
	for _, r := range responses {
		ids = append(ids, r.ID)
	}

	records, err := h.Analysis.ListAnalysisByResponseIDs(ctx, ids)
	if err != nil {
		writeError(responseWriter, err)
		return
	}

	response := jsonutil.Response{
		Status:  "success",
		Message: "responses retrieved successfully",
		Data:    SurveyResponses{Responses: responses, Analysis: records},
	}
	jsonutil.WriteJSONResponse(responseWriter, response, http.StatusOK)
}

// ==================== Helpers ====================

func (h *Handler) loadSurveyBySlug(responseWriter http.ResponseWriter, request *http.Request) (surveys.Survey, bool) {
	survey, err := h.Surveys.GetSurveyBySlug(request.Context(), chi.URLParam(request, "slug"))
	if err != nil {
		if errors.Is(err, custom_errors.ErrNotFound) {
			response := jsonutil.Response{Status: "error", Message: "Survey not found."}
			jsonutil.WriteJSONResponse(responseWriter, response, http.StatusNotFound)
			return surveys.Survey{}, false
		}
		writeError(responseWriter, err)
		return surveys.Survey{}, false
	}
	return survey, true
}

func writeError(responseWriter http.ResponseWriter, err error) {
	response := jsonutil.Response{Status: "error", Message: err.Error()}
	jsonutil.WriteJSONResponse(responseWriter, response, custom_errors.HTTPStatus(err))
}
