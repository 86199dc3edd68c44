package stats_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Adedunmol/questino/api/analysis"
	"github.com/Adedunmol/questino/api/custom_errors"
	"github.com/Adedunmol/questino/api/identity"
	"github.com/Adedunmol/questino/api/responses"
	"github.com/Adedunmol/questino/api/stats"
	"github.com/Adedunmol/questino/api/surveys"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type StubSurveyReader struct {
	Surveys   []surveys.Survey
	Questions map[string][]surveys.Question
}

func (s *StubSurveyReader) GetSurvey(ctx context.Context, surveyID string) (surveys.Survey, error) {
	for _, survey := range s.Surveys {
		if survey.ID == surveyID {
			return survey, nil
		}
	}
	return surveys.Survey{}, custom_errors.ErrNotFound
}

func (s *StubSurveyReader) GetSurveyBySlug(ctx context.Context, slug string) (surveys.Survey, error) {
	for _, survey := range s.Surveys {
		if survey.Slug == slug {
			return survey, nil
		}
	}
	return surveys.Survey{}, custom_errors.ErrNotFound
}

func (s *StubSurveyReader) ListQuestions(ctx context.Context, surveyID string) ([]surveys.Question, error) {
	return s.Questions[surveyID], nil
}

type StubResponseLister struct {
	Responses []responses.Response
}

func (s *StubResponseLister) ListResponsesBySurvey(ctx context.Context, surveyID string) ([]responses.Response, error) {
	var out []responses.Response
	for _, r := range s.Responses {
		if r.SurveyID == surveyID {
			out = append(out, r)
		}
	}
	return out, nil
}

type StubAnalysisLister struct {
	Requested []string
}

func (s *StubAnalysisLister) ListAnalysisByResponseIDs(ctx context.Context, responseIDs []string) ([]analysis.Record, error) {
	s.Requested = responseIDs
	return nil, nil
}

type StubGenerator struct {
	Answer     string
	ShouldFail bool
	Prompt     string
}

func (s *StubGenerator) Generate(ctx context.Context, instruction, prompt string) (string, error) {
	s.Prompt = prompt
	if s.ShouldFail {
		return "", errors.New("quota exceeded")
	}
	return s.Answer, nil
}

func newHandler(generator stats.Generator) (*stats.Handler, *StubAnalysisLister) {
	reader := &StubSurveyReader{
		Surveys: []surveys.Survey{
			{ID: "s-private", OwnerID: "owner-1", Title: "Private stats", Slug: "private-abc123", IsPublic: true, StatsPublic: false},
			{ID: "s-public", OwnerID: "owner-1", Title: "Public stats", Slug: "public-abc123", IsPublic: true, StatsPublic: true},
		},
		Questions: map[string][]surveys.Question{
			"s-public": {
				{ID: "scale", Type: surveys.TypeScale, Text: "How was it?"},
				{ID: "text", Type: surveys.TypeText, Text: "Anything else?"},
			},
			"s-private": {
				{ID: "scale", Type: surveys.TypeScale, Text: "How was it?"},
			},
		},
	}
	lister := &StubResponseLister{Responses: []responses.Response{
		{ID: "r1", SurveyID: "s-public", Answers: map[string]interface{}{"scale": float64(2), "text": strings.Repeat("long ", 30)}},
		{ID: "r2", SurveyID: "s-public", Answers: map[string]interface{}{"scale": float64(4)}},
		{ID: "r3", SurveyID: "s-private", Answers: map[string]interface{}{"scale": float64(5)}},
	}}
	analysisLister := &StubAnalysisLister{}

	return &stats.Handler{
		Surveys:   reader,
		Responses: lister,
		Analysis:  analysisLister,
		Insights:  stats.NewInsightsService(generator, zap.NewNop()),
		Logger:    zap.NewNop(),
	}, analysisLister
}

func request(method, target string, body string, caller *identity.Identity, params map[string]string) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	if caller != nil {
		ctx = identity.WithIdentity(ctx, *caller)
	}
	return req.WithContext(ctx)
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got), rec.Body.String())
	return got
}

func TestGetSurveyStats(t *testing.T) {
	owner := identity.Account("owner-1", "owner@example.com")
	stranger := identity.Guest("guest-1", "device-1")

	tests := []struct {
		name        string
		surveyID    string
		caller      *identity.Identity
		wantCode    int
		wantMessage string
	}{
		{"owner sees private stats", "s-private", &owner, http.StatusOK, "stats retrieved successfully"},
		{"stranger blocked from private stats", "s-private", &stranger, http.StatusForbidden, "These stats are private."},
		{"anonymous blocked from private stats", "s-private", nil, http.StatusForbidden, "These stats are private."},
		{"stranger sees public stats", "s-public", &stranger, http.StatusOK, "stats retrieved successfully"},
		{"unknown survey", "missing", &owner, http.StatusNotFound, "resource not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, _ := newHandler(nil)
			req := request(http.MethodGet, "/surveys/"+tt.surveyID+"/stats", "", tt.caller, map[string]string{"surveyID": tt.surveyID})
			rec := httptest.NewRecorder()

			handler.GetSurveyStatsHandler(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantMessage, decodeBody(t, rec)["message"])
		})
	}
}

func TestGetPublicStats(t *testing.T) {
	t.Run("public survey", func(t *testing.T) {
		handler, analysisLister := newHandler(nil)
		req := request(http.MethodGet, "/public-stats/public-abc123", "", nil, map[string]string{"slug": "public-abc123"})
		rec := httptest.NewRecorder()

		handler.GetPublicStatsHandler(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.ElementsMatch(t, []string{"r1", "r2"}, analysisLister.Requested)

		var got struct {
			Data stats.StatsPayload `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, "public-abc123", got.Data.Survey.Slug)
		assert.Equal(t, 2, got.Data.Report.Totals.Responses)
		assert.True(t, got.Data.Report.Totals.AnalysisPending)
		require.NotEmpty(t, got.Data.Report.Questions)
		assert.Equal(t, 3.0, got.Data.Report.Questions[0].Numeric.Average)
	})

	t.Run("stats not public", func(t *testing.T) {
		handler, _ := newHandler(nil)
		req := request(http.MethodGet, "/public-stats/private-abc123", "", nil, map[string]string{"slug": "private-abc123"})
		rec := httptest.NewRecorder()

		handler.GetPublicStatsHandler(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, "Stats are not public for this survey", decodeBody(t, rec)["message"])
	})

	t.Run("unknown slug", func(t *testing.T) {
		handler, _ := newHandler(nil)
		req := request(http.MethodGet, "/public-stats/nope", "", nil, map[string]string{"slug": "nope"})
		rec := httptest.NewRecorder()

		handler.GetPublicStatsHandler(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Survey not found.", decodeBody(t, rec)["message"])
	})
}

func TestInsights(t *testing.T) {
	owner := identity.Account("owner-1", "owner@example.com")
	body := `{"question": "What stands out?"}`

	answer := func(t *testing.T, rec *httptest.ResponseRecorder) string {
		t.Helper()
		data, _ := decodeBody(t, rec)["data"].(map[string]interface{})
		text, _ := data["answer"].(string)
		return text
	}

	t.Run("without a model", func(t *testing.T) {
		handler, _ := newHandler(nil)
		rec := httptest.NewRecorder()
		handler.InsightsHandler(rec, request(http.MethodPost, "/surveys/s-public/insights", body, &owner, map[string]string{"surveyID": "s-public"}))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, stats.AIUnavailable, answer(t, rec))
	})

	t.Run("model answer", func(t *testing.T) {
		generator := &StubGenerator{Answer: "Overview: two responses"}
		handler, _ := newHandler(generator)
		rec := httptest.NewRecorder()
		handler.InsightsHandler(rec, request(http.MethodPost, "/surveys/s-public/insights", body, &owner, map[string]string{"surveyID": "s-public"}))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Overview: two responses", answer(t, rec))
		assert.Contains(t, generator.Prompt, "What stands out?")
		assert.Contains(t, generator.Prompt, `"total_responses":2`)
	})

	t.Run("model failure", func(t *testing.T) {
		handler, _ := newHandler(&StubGenerator{ShouldFail: true})
		rec := httptest.NewRecorder()
		handler.InsightsHandler(rec, request(http.MethodPost, "/surveys/s-public/insights", body, &owner, map[string]string{"surveyID": "s-public"}))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, stats.AIUnavailable, answer(t, rec))
	})

	t.Run("only the owner may ask", func(t *testing.T) {
		handler, _ := newHandler(&StubGenerator{Answer: "x"})
		stranger := identity.Account("someone", "s@example.com")
		rec := httptest.NewRecorder()
		handler.InsightsHandler(rec, request(http.MethodPost, "/surveys/s-public/insights", body, &stranger, map[string]string{"surveyID": "s-public"}))

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("question is required", func(t *testing.T) {
		handler, _ := newHandler(nil)
		rec := httptest.NewRecorder()
		handler.InsightsHandler(rec, request(http.MethodPost, "/surveys/s-public/insights", `{}`, &owner, map[string]string{"surveyID": "s-public"}))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestSummariesClipSampleText(t *testing.T) {
	report := stats.Report{Questions: []stats.QuestionStats{
		{QuestionID: "q", Type: surveys.TypeText, Count: 4, TextStats: &stats.TextStats{
			Recent: []string{strings.Repeat("x", 120), "short", "third", "fourth"},
		}},
		{QuestionID: "blank", Type: surveys.TypeScale},
	}}

	summaries := stats.Summaries(report)

	require.Len(t, summaries, 2)
	require.Len(t, summaries[0].SampleText, 3)
	assert.Equal(t, strings.Repeat("x", 100)+"...", summaries[0].SampleText[0])
	assert.Equal(t, "short", summaries[0].SampleText[1])
	assert.Equal(t, "Untitled Question", summaries[1].Title)
}
