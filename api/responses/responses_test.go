package responses_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Adedunmol/questino/api/analysis"
	"github.com/Adedunmol/questino/api/custom_errors"
	"github.com/Adedunmol/questino/api/identity"
	"github.com/Adedunmol/questino/api/responses"
	"github.com/Adedunmol/questino/api/surveys"
	"github.com/Adedunmol/questino/queue"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ============================================================================
// Test Helpers
// ============================================================================

func assertResponseCode(t *testing.T, got, want int) {
	t.Helper()
	if got != want {
		t.Errorf("response code = %d, want %d", got, want)
	}
}

func assertResponseStatus(t *testing.T, got map[string]interface{}, wantStatus string) {
	t.Helper()
	if got["status"] != wantStatus {
		t.Errorf("status = %v, want %v", got["status"], wantStatus)
	}
}

func assertResponseMessage(t *testing.T, got map[string]interface{}, wantMessage string) {
	t.Helper()
	if got["message"] != wantMessage {
		t.Errorf("message = %v, want %v", got["message"], wantMessage)
	}
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var got map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid json response %q: %v", rec.Body.String(), err)
	}
	return got
}

func withRoute(req *http.Request, caller *identity.Identity, params map[string]string) *http.Request {
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

// ============================================================================
// Stubs
// ============================================================================

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

type StubResponseStore struct {
	Responses        []responses.Response
	ShouldFailCreate bool
}

func (s *StubResponseStore) CreateResponse(ctx context.Context, params responses.CreateResponseParams) (responses.Response, error) {
	if s.ShouldFailCreate {
		return responses.Response{}, errors.New("insert failed")
	}
	response := responses.Response{
		ID:            "resp-" + string(rune('a'+len(s.Responses))),
		SurveyID:      params.SurveyID,
		ParticipantID: params.ParticipantID,
		Answers:       params.Answers,
		SubmittedAt:   params.SubmittedAt,
		CreatedAt:     params.SubmittedAt,
	}
	s.Responses = append(s.Responses, response)
	return response, nil
}

func (s *StubResponseStore) GetResponse(ctx context.Context, responseID string) (responses.Response, error) {
	for _, r := range s.Responses {
		if r.ID == responseID {
			return r, nil
		}
	}
	return responses.Response{}, custom_errors.ErrNotFound
}

func (s *StubResponseStore) ListResponsesBySurvey(ctx context.Context, surveyID string) ([]responses.Response, error) {
	var out []responses.Response
	for _, r := range s.Responses {
		if r.SurveyID == surveyID {
			out = append(out, r)
		}
	}
	return out, nil
}

type StubQueue struct {
	Enqueued []queue.EmotionAnalysisPayload
	FailFor  map[string]bool
}

func (s *StubQueue) Enqueue(ctx context.Context, processor queue.Processor) error {
	payload, ok := processor.(*queue.EmotionAnalysisPayload)
	if !ok {
		return errors.New("unexpected processor")
	}
	if s.FailFor[payload.QuestionID] {
		return errors.New("redis unavailable")
	}
	s.Enqueued = append(s.Enqueued, *payload)
	return nil
}

type StubAnalysisStore struct {
	Records []analysis.Record
}

func (s *StubAnalysisStore) GetLatestAnalysis(ctx context.Context, responseID string) (analysis.Record, error) {
	for i := len(s.Records) - 1; i >= 0; i-- {
		if s.Records[i].ResponseID == responseID {
			return s.Records[i], nil
		}
	}
	return analysis.Record{}, custom_errors.ErrNotFound
}

func (s *StubAnalysisStore) ListAnalysisByResponseIDs(ctx context.Context, responseIDs []string) ([]analysis.Record, error) {
	var out []analysis.Record
	for _, r := range s.Records {
		for _, id := range responseIDs {
			if r.ResponseID == id {
				out = append(out, r)
			}
		}
	}
	return out, nil
}

// ============================================================================
// Fixtures
// ============================================================================

const longAnswer = "The workshop was genuinely helpful"

func fixture() (*StubSurveyReader, *StubResponseStore, *StubQueue, *StubAnalysisStore, *responses.Handler) {
	reader := &StubSurveyReader{
		Surveys: []surveys.Survey{
			{ID: "s-open", OwnerID: "owner-1", Title: "Feedback", Slug: "feedback-abc123", AllowAnonymous: true, IsPublic: true},
			{ID: "s-private", OwnerID: "owner-1", Title: "Hidden", Slug: "hidden-abc123", AllowAnonymous: true, IsPublic: false},
			{ID: "s-accounts", OwnerID: "owner-1", Title: "Staff", Slug: "staff-abc123", AllowAnonymous: false, IsPublic: true},
		},
		Questions: map[string][]surveys.Question{
			"s-open": {
				{ID: "q-intro", Type: surveys.TypeSection, SectionTitle: "About you", Order: 1},
				{ID: "q-text-1", Type: surveys.TypeText, Required: true, Order: 2},
				{ID: "q-text-2", Type: surveys.TypeText, Order: 3},
				{ID: "q-text-3", Type: surveys.TypeText, Order: 4},
				{ID: "q-mcq", Type: surveys.TypeMCQ, Options: []string{"Yes", "No"}, Order: 5},
			},
			"s-private": {
				{ID: "q-p", Type: surveys.TypeText},
			},
			"s-accounts": {
				{ID: "q-a", Type: surveys.TypeScale},
			},
		},
	}
	store := &StubResponseStore{}
	stubQueue := &StubQueue{FailFor: map[string]bool{}}
	analysisStore := &StubAnalysisStore{}

	handler := &responses.Handler{
		Store:         store,
		Surveys:       reader,
		Analysis:      analysisStore,
		Poller:        analysis.NewPoller(analysisStore, 5*time.Millisecond, 20*time.Millisecond),
		Queue:         stubQueue,
		Logger:        zap.NewNop(),
		MinTextLength: 8,
	}
	return reader, store, stubQueue, analysisStore, handler
}

func submit(handler *responses.Handler, slug string, caller *identity.Identity, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/s/"+slug+"/responses", bytes.NewBufferString(body))
	req = withRoute(req, caller, map[string]string{"slug": slug})
	rec := httptest.NewRecorder()
	handler.SubmitResponseHandler(rec, req)
	return rec
}

// ============================================================================
// Tests
// ============================================================================

func TestSubmitResponse(t *testing.T) {
	t.Run("private survey is rejected and nothing is stored", func(t *testing.T) {
		_, store, stubQueue, _, handler := fixture()

		rec := submit(handler, "hidden-abc123", nil, `{"answers": {"q-p": "`+longAnswer+`"}}`)

		assertResponseCode(t, rec.Code, http.StatusForbidden)
		assertResponseMessage(t, decode(t, rec), "This survey is private and not accessible.")
		if len(store.Responses) != 0 {
			t.Errorf("stored %d responses for a private survey", len(store.Responses))
		}
		if len(stubQueue.Enqueued) != 0 {
			t.Errorf("enqueued %d tasks for a private survey", len(stubQueue.Enqueued))
		}
	})

	t.Run("unknown slug", func(t *testing.T) {
		_, _, _, _, handler := fixture()

		rec := submit(handler, "nope", nil, `{"answers": {}}`)

		assertResponseCode(t, rec.Code, http.StatusNotFound)
		assertResponseMessage(t, decode(t, rec), "Survey not found.")
	})

	t.Run("one task per eligible text answer", func(t *testing.T) {
		_, store, stubQueue, _, handler := fixture()

		body := `{"answers": {
			"q-text-1": "` + longAnswer + `",
			"q-text-2": "  short  ",
			"q-text-3": "Too many meetings this quarter",
			"q-mcq": "Yes"
		}}`
		rec := submit(handler, "feedback-abc123", nil, body)

		assertResponseCode(t, rec.Code, http.StatusCreated)
		got := decode(t, rec)
		assertResponseStatus(t, got, "success")

		data := got["data"].(map[string]interface{})
		if data["analysis_enqueued"] != float64(2) {
			t.Errorf("analysis_enqueued = %v, want 2", data["analysis_enqueued"])
		}

		if len(store.Responses) != 1 {
			t.Fatalf("stored %d responses, want 1", len(store.Responses))
		}
		if store.Responses[0].ParticipantID != nil {
			t.Errorf("participant id = %v, want nil for anonymous survey", *store.Responses[0].ParticipantID)
		}
		if store.Responses[0].SubmittedAt.Location() != time.UTC {
			t.Errorf("submitted at is not UTC")
		}

		if len(stubQueue.Enqueued) != 2 {
			t.Fatalf("enqueued %d tasks, want 2", len(stubQueue.Enqueued))
		}
		want := []queue.EmotionAnalysisPayload{
			{ResponseID: store.Responses[0].ID, QuestionID: "q-text-1", Text: longAnswer},
			{ResponseID: store.Responses[0].ID, QuestionID: "q-text-3", Text: "Too many meetings this quarter"},
		}
		for i := range want {
			if stubQueue.Enqueued[i] != want[i] {
				t.Errorf("enqueued[%d] = %+v, want %+v", i, stubQueue.Enqueued[i], want[i])
			}
		}
	})

	t.Run("enqueue failure does not fail the submission", func(t *testing.T) {
		_, store, stubQueue, _, handler := fixture()
		stubQueue.FailFor["q-text-1"] = true

		body := `{"answers": {"q-text-1": "` + longAnswer + `", "q-text-3": "Too many meetings this quarter"}}`
		rec := submit(handler, "feedback-abc123", nil, body)

		assertResponseCode(t, rec.Code, http.StatusCreated)
		data := decode(t, rec)["data"].(map[string]interface{})
		if data["analysis_enqueued"] != float64(1) {
			t.Errorf("analysis_enqueued = %v, want 1", data["analysis_enqueued"])
		}
		if len(store.Responses) != 1 {
			t.Errorf("stored %d responses, want 1", len(store.Responses))
		}
	})

	t.Run("missing required answer", func(t *testing.T) {
		_, store, _, _, handler := fixture()

		rec := submit(handler, "feedback-abc123", nil, `{"answers": {"q-text-1": "   ", "q-mcq": "No"}}`)

		assertResponseCode(t, rec.Code, http.StatusBadRequest)
		assertResponseMessage(t, decode(t, rec), "required questions are unanswered: q-text-1")
		if len(store.Responses) != 0 {
			t.Errorf("stored a response with missing answers")
		}
	})

	t.Run("account required when anonymous responses are off", func(t *testing.T) {
		_, store, _, _, handler := fixture()
		guest := identity.Guest("guest-1", "device-1")

		rec := submit(handler, "staff-abc123", nil, `{"answers": {"q-a": 3}}`)
		assertResponseCode(t, rec.Code, http.StatusUnauthorized)

		rec = submit(handler, "staff-abc123", &guest, `{"answers": {"q-a": 3}}`)
		assertResponseCode(t, rec.Code, http.StatusUnauthorized)

		account := identity.Account("user-7", "ada@example.com")
		rec = submit(handler, "staff-abc123", &account, `{"answers": {"q-a": 3}}`)
		assertResponseCode(t, rec.Code, http.StatusCreated)

		if len(store.Responses) != 1 {
			t.Fatalf("stored %d responses, want 1", len(store.Responses))
		}
		if p := store.Responses[0].ParticipantID; p == nil || *p != "user-7" {
			t.Errorf("participant id = %v, want user-7", p)
		}
	})

	t.Run("store failure", func(t *testing.T) {
		_, store, stubQueue, _, handler := fixture()
		store.ShouldFailCreate = true

		rec := submit(handler, "feedback-abc123", nil, `{"answers": {"q-text-1": "`+longAnswer+`"}}`)

		assertResponseCode(t, rec.Code, http.StatusInternalServerError)
		if len(stubQueue.Enqueued) != 0 {
			t.Errorf("enqueued analysis for a response that was not stored")
		}
	})
}

func TestGetRunner(t *testing.T) {
	t.Run("public survey returns sections", func(t *testing.T) {
		_, _, _, _, handler := fixture()

		req := withRoute(httptest.NewRequest(http.MethodGet, "/s/feedback-abc123", nil), nil, map[string]string{"slug": "feedback-abc123"})
		rec := httptest.NewRecorder()
		handler.GetRunnerHandler(rec, req)

		assertResponseCode(t, rec.Code, http.StatusOK)
		data := decode(t, rec)["data"].(map[string]interface{})
		sections := data["sections"].([]interface{})
		if len(sections) != 1 {
			t.Fatalf("got %d sections, want 1", len(sections))
		}
		if title := sections[0].(map[string]interface{})["title"]; title != "About you" {
			t.Errorf("section title = %v, want About you", title)
		}
		if data["question_count"] != float64(4) {
			t.Errorf("question_count = %v, want 4", data["question_count"])
		}
	})

	t.Run("private survey", func(t *testing.T) {
		_, _, _, _, handler := fixture()

		req := withRoute(httptest.NewRequest(http.MethodGet, "/s/hidden-abc123", nil), nil, map[string]string{"slug": "hidden-abc123"})
		rec := httptest.NewRecorder()
		handler.GetRunnerHandler(rec, req)

		assertResponseCode(t, rec.Code, http.StatusForbidden)
		assertResponseMessage(t, decode(t, rec), "This survey is private and not accessible.")
	})

	t.Run("owner can preview a private survey", func(t *testing.T) {
		_, _, _, _, handler := fixture()
		owner := identity.Account("owner-1", "owner@example.com")

		req := withRoute(httptest.NewRequest(http.MethodGet, "/s/hidden-abc123", nil), &owner, map[string]string{"slug": "hidden-abc123"})
		rec := httptest.NewRecorder()
		handler.GetRunnerHandler(rec, req)

		assertResponseCode(t, rec.Code, http.StatusOK)
	})
}

func TestGetAnalysis(t *testing.T) {
	tests := []struct {
		name        string
		query       string
		records     []analysis.Record
		wantCode    int
		wantStatus  string
		wantMessage string
	}{
		{
			name:        "pending without wait",
			wantCode:    http.StatusAccepted,
			wantStatus:  "pending",
			wantMessage: "Analysis in Progress",
		},
		{
			name:        "pending after waiting",
			query:       "?wait=true",
			wantCode:    http.StatusAccepted,
			wantStatus:  "pending",
			wantMessage: "Analysis in Progress",
		},
		{
			name:        "available",
			query:       "?wait=true",
			records:     []analysis.Record{{ID: "a-1", ResponseID: "resp-a", SentimentLabel: "positive"}},
			wantCode:    http.StatusOK,
			wantStatus:  "success",
			wantMessage: "analysis retrieved successfully",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, store, _, analysisStore, handler := fixture()
			store.Responses = []responses.Response{{ID: "resp-a", SurveyID: "s-open"}}
			analysisStore.Records = tt.records

			req := httptest.NewRequest(http.MethodGet, "/responses/resp-a/analysis"+tt.query, nil)
			req = withRoute(req, nil, map[string]string{"responseID": "resp-a"})
			rec := httptest.NewRecorder()
			handler.GetAnalysisHandler(rec, req)

			assertResponseCode(t, rec.Code, tt.wantCode)
			got := decode(t, rec)
			assertResponseStatus(t, got, tt.wantStatus)
			assertResponseMessage(t, got, tt.wantMessage)
		})
	}

	t.Run("unknown response", func(t *testing.T) {
		_, _, _, _, handler := fixture()

		req := withRoute(httptest.NewRequest(http.MethodGet, "/responses/missing/analysis", nil), nil, map[string]string{"responseID": "missing"})
		rec := httptest.NewRecorder()
		handler.GetAnalysisHandler(rec, req)

		assertResponseCode(t, rec.Code, http.StatusNotFound)
	})
}

func TestListSurveyResponses(t *testing.T) {
	_, store, _, analysisStore, handler := fixture()
	store.Responses = []responses.Response{
		{ID: "resp-a", SurveyID: "s-open"},
		{ID: "resp-b", SurveyID: "s-open"},
		{ID: "resp-c", SurveyID: "s-private"},
	}
	analysisStore.Records = []analysis.Record{
		{ID: "a-1", ResponseID: "resp-a"},
		{ID: "a-2", ResponseID: "resp-c"},
	}

	owner := identity.Account("owner-1", "owner@example.com")
	req := withRoute(httptest.NewRequest(http.MethodGet, "/surveys/s-open/responses", nil), &owner, map[string]string{"surveyID": "s-open"})
	rec := httptest.NewRecorder()
	handler.ListSurveyResponsesHandler(rec, req)

	assertResponseCode(t, rec.Code, http.StatusOK)
	data := decode(t, rec)["data"].(map[string]interface{})
	if n := len(data["responses"].([]interface{})); n != 2 {
		t.Errorf("got %d responses, want 2", n)
	}
	if n := len(data["analysis"].([]interface{})); n != 1 {
		t.Errorf("got %d analysis rows, want 1", n)
	}

	stranger := identity.Account("someone-else", "x@example.com")
	req = withRoute(httptest.NewRequest(http.MethodGet, "/surveys/s-open/responses", nil), &stranger, map[string]string{"surveyID": "s-open"})
	rec = httptest.NewRecorder()
	handler.ListSurveyResponsesHandler(rec, req)

	assertResponseCode(t, rec.Code, http.StatusForbidden)
}
