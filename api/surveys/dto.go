package surveys

import "time"

type Survey struct {
	ID             string    `json:"id"`
	OwnerID        string    `json:"owner_id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Slug           string    `json:"slug"`
	AllowAnonymous bool      `json:"allow_anonymous"`
	IsPublic       bool      `json:"is_public"`
	StatsPublic    bool      `json:"stats_public"`
	CreatedAt      time.Time `json:"created_at"`
}

type Question struct {
	ID                 string   `json:"id"`
	SurveyID           string   `json:"questionnaire_id"`
	Text               string   `json:"text"`
	Type               string   `json:"type"`
	Options            []string `json:"options"`
	Required           bool     `json:"required"`
	Order              int      `json:"order"`
	ScaleMin           *int     `json:"scale_min"`
	ScaleMax           *int     `json:"scale_max"`
	SectionTitle       string   `json:"section_title,omitempty"`
	SectionDescription string   `json:"section_description,omitempty"`
}

// Parameter structs
type CreateSurveyParams struct {
	OwnerID        string
	Title          string
	Description    string
	AllowAnonymous *bool
	IsPublic       *bool
	StatsPublic    *bool
}

type UpdateSurveyParams struct {
	ID             string
	Title          *string
	Description    *string
	AllowAnonymous *bool
	IsPublic       *bool
	StatsPublic    *bool
}

type QuestionInput struct {
	Text               string   `json:"text"`
	Type               string   `json:"type"`
	Options            []string `json:"options"`
	Required           bool     `json:"required"`
	Order              *int     `json:"order" validate:"omitempty,min=0,max=10000"`
	ScaleMin           *int     `json:"scale_min" validate:"omitempty,min=-10000,max=10000"`
	ScaleMax           *int     `json:"scale_max" validate:"omitempty,min=-10000,max=10000"`
	SectionTitle       string   `json:"section_title"`
	SectionDescription string   `json:"section_description"`
}

type UpdateQuestionParams struct {
	ID                 string
	Text               *string
	Type               *string
	Options            []string
	Required           *bool
	Order              *int
	ScaleMin           *int
	ScaleMax           *int
	SectionTitle       *string
	SectionDescription *string
}

// BulkResult reports the outcome for one id of a bulk operation.
type BulkResult struct {
	ID       string  `json:"id"`
	OK       bool    `json:"ok"`
	Error    string  `json:"error,omitempty"`
	SurveyID string  `json:"survey_id,omitempty"`
	Survey   *Survey `json:"survey,omitempty"`
}

// Request bodies
type CreateSurveyBody struct {
	Title          string          `json:"title" validate:"max=200"`
	Description    string          `json:"description" validate:"max=2000"`
	AllowAnonymous *bool           `json:"allow_anonymous"`
	IsPublic       *bool           `json:"is_public"`
	StatsPublic    *bool           `json:"stats_public"`
	Questions      []QuestionInput `json:"questions" validate:"max=100,dive"`
}

type UpdateSurveyBody struct {
	Title          *string `json:"title" validate:"omitempty,max=200"`
	Description    *string `json:"description" validate:"omitempty,max=2000"`
	AllowAnonymous *bool   `json:"allow_anonymous"`
	IsPublic       *bool   `json:"is_public"`
	StatsPublic    *bool   `json:"stats_public"`
}

type UpdateQuestionBody struct {
	Text               *string  `json:"text"`
	Type               *string  `json:"type"`
	Options            []string `json:"options"`
	Required           *bool    `json:"required"`
	Order              *int     `json:"order" validate:"omitempty,min=0,max=10000"`
	ScaleMin           *int     `json:"scale_min" validate:"omitempty,min=-10000,max=10000"`
	ScaleMax           *int     `json:"scale_max" validate:"omitempty,min=-10000,max=10000"`
	SectionTitle       *string  `json:"section_title"`
	SectionDescription *string  `json:"section_description"`
}

type BulkIDsBody struct {
	IDs []string `json:"ids" validate:"required,min=1,max=100,dive,required"`
}

type SurveyWithLinks struct {
	Survey
	PublicURL      string `json:"public_url"`
	PublicStatsURL string `json:"public_stats_url"`
}
