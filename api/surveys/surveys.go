package surveys

import (
	"context"
	"net/http"
	"strings"

	"github.com/Adedunmol/questino/api/custom_errors"
	"github.com/Adedunmol/questino/api/identity"
	"github.com/Adedunmol/questino/api/jsonutil"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Handler struct {
	Store         Store
	Logger        *zap.Logger
	PublicBaseURL string
}

// ==================== Survey Management Handlers ====================

func (h *Handler) CreateSurveyHandler(responseWriter http.ResponseWriter, request *http.Request) {
	ctx := request.Context()

	caller, ok := identity.FromContext(ctx)
	if !ok {
		response := jsonutil.Response{Status: "error", Message: "unauthorized"}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusUnauthorized)
		return
	}

	data, err := jsonutil.UnmarshalJsonResponse[CreateSurveyBody](request)
	if err != nil {
		response := jsonutil.Response{Status: "error", Message: err.Error()}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusBadRequest)
		return
	}

	survey, questions, err := h.Store.CreateSurveyWithQuestions(ctx, CreateSurveyParams{
		OwnerID:        caller.UserID,
		Title:          data.Title,
		Description:    data.Description,
		AllowAnonymous: data.AllowAnonymous,
		IsPublic:       data.IsPublic,
		StatsPublic:    data.StatsPublic,
	}, data.Questions)
	if err != nil {
		writeError(responseWriter, err)
		return
	}

	response := jsonutil.Response{
		Status:  "success",
		Message: "survey created successfully",
		Data: map[string]interface{}{
			"survey":    h.withLinks(survey),
			"questions": questions,
		},
	}
	jsonutil.WriteJSONResponse(responseWriter, response, http.StatusCreated)
}

func (h *Handler) ListMySurveysHandler(responseWriter http.ResponseWriter, request *http.Request) {
	ctx := request.Context()

	caller, ok := identity.FromContext(ctx)
	if !ok {
		response := jsonutil.Response{Status: "error", Message: "unauthorized"}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusUnauthorized)
		return
	}

	surveys, err := h.Store.ListSurveysByOwner(ctx, caller.UserID)
	if err != nil {
		writeError(responseWriter, err)
		return
	}

	data := make([]SurveyWithLinks, 0, len(surveys))
	for _, survey := range surveys {
		data = append(data, h.withLinks(survey))
	}

	response := jsonutil.Response{
		Status:  "success",
		Message: "surveys retrieved successfully",
		Data:    data,
	}
	jsonutil.WriteJSONResponse(responseWriter, response, http.StatusOK)
}

func (h *Handler) GetSurveyHandler(responseWriter http.ResponseWriter, request *http.Request) {
	survey, ok := h.loadOwnedSurvey(responseWriter, request)
	if !ok {
		return
	}

	response := jsonutil.Response{
		Status:  "success",
		Message: "survey retrieved successfully",
		Data:    h.withLinks(survey),
	}
	jsonutil.WriteJSONResponse(responseWriter, response, http.StatusOK)
}

func (h *Handler) UpdateSurveyHandler(responseWriter http.ResponseWriter, request *http.Request) {
	ctx := request.Context()

	survey, ok := h.loadOwnedSurvey(responseWriter, request)
	if !ok {
		return
	}

	data, err := jsonutil.UnmarshalJsonResponse[UpdateSurveyBody](request)
	if err != nil {
		response := jsonutil.Response{Status: "error", Message: err.Error()}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusBadRequest)
		return
	}

	updated, err := h.Store.UpdateSurvey(ctx, UpdateSurveyParams{
		ID:             survey.ID,
		Title:          data.Title,
		Description:    data.Description,
		AllowAnonymous: data.AllowAnonymous,
		IsPublic:       data.IsPublic,
		StatsPublic:    data.StatsPublic,
	})
	if err != nil {
		writeError(responseWriter, err)
		return
	}

	response := jsonutil.Response{
		Status:  "success",
		Message: "survey updated successfully",
		Data:    h.withLinks(updated),
	}
	jsonutil.WriteJSONResponse(responseWriter, response, http.StatusOK)
}

func (h *Handler) DeleteSurveyHandler(responseWriter http.ResponseWriter, request *http.Request) {
	ctx := request.Context()

	survey, ok := h.loadOwnedSurvey(responseWriter, request)
	if !ok {
		return
	}

	if err := h.Store.DeleteSurvey(ctx, survey.ID); err != nil {
		writeError(responseWriter, err)
		return
	}

	response := jsonutil.Response{
		Status:  "success",
		Message: "survey deleted successfully",
	}
	jsonutil.WriteJSONResponse(responseWriter, response, http.StatusOK)
}

// BulkDeleteSurveysHandler deletes every listed survey the caller owns. Ids the
// caller does not own are reported as failures without being attempted.
func (h *Handler) BulkDeleteSurveysHandler(responseWriter http.ResponseWriter, request *http.Request) {
	ctx := request.Context()

	caller, ok := identity.FromContext(ctx)
	if !ok {
		response := jsonutil.Response{Status: "error", Message: "unauthorized"}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusUnauthorized)
		return
	}

	data, err := jsonutil.UnmarshalJsonResponse[BulkIDsBody](request)
	if err != nil {
		response := jsonutil.Response{Status: "error", Message: err.Error()}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusBadRequest)
		return
	}

	owned, results := h.partitionOwned(ctx, caller, data.IDs)
	results = append(results, h.Store.DeleteSurveys(ctx, owned)...)

	response := jsonutil.Response{
		Status:  "success",
		Message: "bulk delete completed",
		Data:    results,
	}
	jsonutil.WriteJSONResponse(responseWriter, response, http.StatusOK)
}

func (h *Handler) DuplicateSurveysHandler(responseWriter http.ResponseWriter, request *http.Request) {
	ctx := request.Context()

	caller, ok := identity.FromContext(ctx)
	if !ok {
		response := jsonutil.Response{Status: "error", Message: "unauthorized"}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusUnauthorized)
		return
	}

	data, err := jsonutil.UnmarshalJsonResponse[BulkIDsBody](request)
	if err != nil {
		response := jsonutil.Response{Status: "error", Message: err.Error()}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusBadRequest)
		return
	}

	owned, results := h.partitionOwned(ctx, caller, data.IDs)
	for _, id := range owned {
		result := BulkResult{ID: id, OK: true}

		duplicate, err := h.Store.DuplicateSurvey(ctx, id, caller.UserID)
		if err != nil {
			h.Logger.Warn("duplicate survey failed", zap.String("survey_id", id), zap.Error(err))
			result.OK = false
			result.Error = err.Error()
		} else {
			result.SurveyID = duplicate.ID
			result.Survey = &duplicate
		}

		results = append(results, result)
	}

	response := jsonutil.Response{
		Status:  "success",
		Message: "surveys duplicated",
		Data:    results,
	}
	jsonutil.WriteJSONResponse(responseWriter, response, http.StatusOK)
}

// ==================== Question Management Handlers ====================

func (h *Handler) CreateQuestionHandler(responseWriter http.ResponseWriter, request *http.Request) {
	ctx := request.Context()

	survey, ok := h.loadOwnedSurvey(responseWriter, request)
	if !ok {
		return
	}

	data, err := jsonutil.UnmarshalJsonResponse[QuestionInput](request)
	if err != nil {
		response := jsonutil.Response{Status: "error", Message: err.Error()}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusBadRequest)
		return
	}

	question, err := h.Store.AddQuestion(ctx, survey.ID, data)
	if err != nil {
		writeError(responseWriter, err)
		return
	}

	response := jsonutil.Response{
		Status:  "success",
		Message: "question created successfully",
		Data:    question,
	}
	jsonutil.WriteJSONResponse(responseWriter, response, http.StatusCreated)
}

func (h *Handler) ListQuestionsHandler(responseWriter http.ResponseWriter, request *http.Request) {
	ctx := request.Context()

	survey, ok := h.loadOwnedSurvey(responseWriter, request)
	if !ok {
		return
	}

	questions, err := h.Store.ListQuestions(ctx, survey.ID)
	if err != nil {
		writeError(responseWriter, err)
		return
	}

	response := jsonutil.Response{
		Status:  "success",
		Message: "questions retrieved successfully",
		Data:    questions,
	}
	jsonutil.WriteJSONResponse(responseWriter, response, http.StatusOK)
}

func (h *Handler) UpdateQuestionHandler(responseWriter http.ResponseWriter, request *http.Request) {
	ctx := request.Context()

	question, ok := h.loadOwnedQuestion(responseWriter, request)
	if !ok {
		return
	}

	data, err := jsonutil.UnmarshalJsonResponse[UpdateQuestionBody](request)
	if err != nil {
		response := jsonutil.Response{Status: "error", Message: err.Error()}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusBadRequest)
		return
	}

	if err := checkUpdatedScale(question, data); err != nil {
		writeError(responseWriter, err)
		return
	}

	updated, err := h.Store.UpdateQuestion(ctx, UpdateQuestionParams{
		ID:                 question.ID,
		Text:               data.Text,
		Type:               data.Type,
		Options:            data.Options,
		Required:           data.Required,
		Order:              data.Order,
		ScaleMin:           data.ScaleMin,
		ScaleMax:           data.ScaleMax,
		SectionTitle:       data.SectionTitle,
		SectionDescription: data.SectionDescription,
	})
	if err != nil {
		writeError(responseWriter, err)
		return
	}

	response := jsonutil.Response{
		Status:  "success",
		Message: "question updated successfully",
		Data:    updated,
	}
	jsonutil.WriteJSONResponse(responseWriter, response, http.StatusOK)
}

func (h *Handler) DeleteQuestionHandler(responseWriter http.ResponseWriter, request *http.Request) {
	ctx := request.Context()

	question, ok := h.loadOwnedQuestion(responseWriter, request)
	if !ok {
		return
	}

	if err := h.Store.DeleteQuestion(ctx, question.ID); err != nil {
		writeError(responseWriter, err)
		return
	}

	response := jsonutil.Response{
		Status:  "success",
		Message: "question deleted successfully",
	}
	jsonutil.WriteJSONResponse(responseWriter, response, http.StatusOK)
}

// ==================== Helpers ====================

// loadOwnedSurvey resolves {surveyID} and writes the error response itself
// when the survey is missing or the caller does not own it.
func (h *Handler) loadOwnedSurvey(responseWriter http.ResponseWriter, request *http.Request) (Survey, bool) {
	ctx := request.Context()

	caller, ok := identity.FromContext(ctx)
	if !ok {
		response := jsonutil.Response{Status: "error", Message: "unauthorized"}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusUnauthorized)
		return Survey{}, false
	}

	surveyID := chi.URLParam(request, "surveyID")
	if strings.TrimSpace(surveyID) == "" {
		response := jsonutil.Response{Status: "error", Message: "invalid survey ID"}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusBadRequest)
		return Survey{}, false
	}

	survey, err := h.Store.GetSurvey(ctx, surveyID)
	if err != nil {
		writeError(responseWriter, err)
		return Survey{}, false
	}

	if !caller.Owns(survey.OwnerID) {
		writeError(responseWriter, custom_errors.ErrForbidden)
		return Survey{}, false
	}

	return survey, true
}

func (h *Handler) loadOwnedQuestion(responseWriter http.ResponseWriter, request *http.Request) (Question, bool) {
	survey, ok := h.loadOwnedSurvey(responseWriter, request)
	if !ok {
		return Question{}, false
	}

	question, err := h.Store.GetQuestion(request.Context(), chi.URLParam(request, "questionID"))
	if err != nil {
		writeError(responseWriter, err)
		return Question{}, false
	}

	if question.SurveyID != survey.ID {
		writeError(responseWriter, custom_errors.ErrNotFound)
		return Question{}, false
	}

	return question, true
}

func (h *Handler) partitionOwned(ctx context.Context, caller identity.Identity, ids []string) ([]string, []BulkResult) {
	var owned []string
	var rejected []BulkResult

	for _, id := range ids {
		survey, err := h.Store.GetSurvey(ctx, id)
		switch {
		case err != nil:
			rejected = append(rejected, BulkResult{ID: id, Error: err.Error()})
		case !caller.Owns(survey.OwnerID):
			rejected = append(rejected, BulkResult{ID: id, Error: custom_errors.ErrForbidden.Error()})
		default:
			owned = append(owned, id)
		}
	}

	return owned, rejected
}

func (h *Handler) withLinks(survey Survey) SurveyWithLinks {
	base := strings.TrimRight(h.PublicBaseURL, "/")
	return SurveyWithLinks{
		Survey:         survey,
		PublicURL:      PublicURL(base, survey.Slug),
		PublicStatsURL: base + "/public-stats/" + survey.Slug,
	}
}

// PublicURL is the address respondents open to take the survey.
func PublicURL(baseURL, slug string) string {
	return strings.TrimRight(baseURL, "/") + "/s/" + slug
}

// checkUpdatedScale validates the bounds a question will have once body is
// applied on top of its stored values.
func checkUpdatedScale(question Question, body UpdateQuestionBody) error {
	questionType := question.Type
	if body.Type != nil {
		questionType = NormalizeType(*body.Type)
	}

	defaultLow, defaultHigh := defaultBounds(questionType)
	low, high := int(defaultLow), int(defaultHigh)
	if question.ScaleMin != nil {
		low = *question.ScaleMin
	}
	if question.ScaleMax != nil {
		high = *question.ScaleMax
	}
	if body.ScaleMin != nil {
		low = *body.ScaleMin
	}
	if body.ScaleMax != nil {
		high = *body.ScaleMax
	}

	return CheckScaleBounds(questionType, low, high)
}

func writeError(responseWriter http.ResponseWriter, err error) {
	response := jsonutil.Response{Status: "error", Message: err.Error()}
	jsonutil.WriteJSONResponse(responseWriter, response, custom_errors.HTTPStatus(err))
}
