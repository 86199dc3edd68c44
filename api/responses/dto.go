package responses

import (
	"time"

	"github.com/Adedunmol/questino/api/analysis"
	"github.com/Adedunmol/questino/api/surveys"
)

// Response is one immutable set of answers, keyed by question id.
type Response struct {
	ID            string                 `json:"id"`
	SurveyID      string                 `json:"questionnaire_id"`
	ParticipantID *string                `json:"participant_id"`
	Answers       map[string]interface{} `json:"answers"`
	SubmittedAt   time.Time              `json:"submitted_at"`
	CreatedAt     time.Time              `json:"created_at"`
}

type CreateResponseParams struct {
	SurveyID      string
	ParticipantID *string
	Answers       map[string]interface{}
	SubmittedAt   time.Time
}

// Request bodies
type SubmitResponseBody struct {
	Answers map[string]interface{} `json:"answers" validate:"required"`
}

// RunnerSurvey is the part of a survey a respondent is allowed to see.
type RunnerSurvey struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	Slug           string `json:"slug"`
	AllowAnonymous bool   `json:"allow_anonymous"`
}

type RunnerPayload struct {
	Survey        RunnerSurvey      `json:"survey"`
	Sections      []surveys.Section `json:"sections"`
	QuestionCount int               `json:"question_count"`
}

type SubmitResult struct {
	Response         Response `json:"response"`
	AnalysisEnqueued int      `json:"analysis_enqueued"`
}

type SurveyResponses struct {
	Responses []Response        `json:"responses"`
	Analysis  []analysis.Record `json:"analysis"`
}
