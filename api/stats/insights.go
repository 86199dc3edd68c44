package stats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/Adedunmol/questino/api/surveys"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

const (
	AIUnavailable   = "AI unavailable right now."
	sampleTextLimit = 3
	sampleTextChars = 100
)

const insightsInstruction = `You are a survey analyst. Answer the owner's question using only the survey context provided.
Reply in short lines that start with one of: Overview, Patterns, Risks, Recommendations.`

// Generator produces a model answer for a prompt.
type Generator interface {
	Generate(ctx context.Context, instruction, prompt string) (string, error)
}

type GeminiGenerator struct {
	client *genai.Client
	model  string
}

func NewGeminiGenerator(ctx context.Context, apiKey, model string) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, errors.New("Gemini API key is required")
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &GeminiGenerator{client: client, model: model}, nil
}

func (g *GeminiGenerator) Generate(ctx context.Context, instruction, prompt string) (string, error) {
	result, err := g.client.Models.GenerateContent(ctx,
		g.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(instruction, genai.RoleUser),
			Temperature:       genai.Ptr[float32](0.3),
		},
	)
	if err != nil {
		return "", fmt.Errorf("GenAI generate failed: %w", err)
	}

	return result.Text(), nil
}

type ChatMessage struct {
	Role    string `json:"role" validate:"required,oneof=user assistant"`
	Content string `json:"content" validate:"required,max=4000"`
}

type InsightsBody struct {
	Question string        `json:"question" validate:"required,max=2000"`
	History  []ChatMessage `json:"history" validate:"max=20,dive"`
}

// QuestionSummary is the compact per-question context handed to the model.
type QuestionSummary struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Type        string         `json:"type"`
	Responses   int            `json:"responses"`
	Average     *float64       `json:"average,omitempty"`
	Min         *float64       `json:"min,omitempty"`
	Max         *float64       `json:"max,omitempty"`
	Counts      map[string]int `json:"counts,omitempty"`
	Percentages map[string]int `json:"percentages,omitempty"`
	SampleText  []string       `json:"sample_text,omitempty"`
}

// Summaries condenses a report. Text questions carry at most three sample
// answers, each clipped to 100 characters.
func Summaries(report Report) []QuestionSummary {
	summaries := make([]QuestionSummary, 0, len(report.Questions))
	for _, q := range report.Questions {
		title := q.Text
		if strings.TrimSpace(title) == "" {
			title = "Untitled Question"
		}
		summary := QuestionSummary{ID: q.QuestionID, Title: title, Type: q.Type, Responses: q.Count}

		if q.Numeric != nil {
			summary.Average = &q.Numeric.Average
			summary.Min = &q.Numeric.Min
			summary.Max = &q.Numeric.Max
		}

		if len(q.Choices) > 0 && q.Count > 0 {
			summary.Counts = make(map[string]int, len(q.Choices))
			summary.Percentages = make(map[string]int, len(q.Choices))
			for _, c := range q.Choices {
				summary.Counts[c.Label] = c.Count
				summary.Percentages[c.Label] = c.Percentage
			}
		}

		if q.TextStats != nil {
			for i := 0; i < len(q.TextStats.Recent) && i < sampleTextLimit; i++ {
				summary.SampleText = append(summary.SampleText, clip(q.TextStats.Recent[i], sampleTextChars))
			}
		}

		summaries = append(summaries, summary)
	}
	return summaries
}

func clip(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}

type insightsContext struct {
	Survey         string            `json:"survey"`
	TotalResponses int               `json:"total_responses"`
	Emotions       *EmotionAverages  `json:"emotions,omitempty"`
	Factors        []FactorScore     `json:"factors,omitempty"`
	Questions      []QuestionSummary `json:"questions"`
}

type InsightsService struct {
	generator Generator
	logger    *zap.Logger
}

// NewInsightsService accepts a nil generator, in which case every answer is
// AIUnavailable.
func NewInsightsService(generator Generator, logger *zap.Logger) *InsightsService {
	return &InsightsService{generator: generator, logger: logger.Named("insights")}
}

// Ask never fails: any problem with the model yields AIUnavailable.
func (s *InsightsService) Ask(ctx context.Context, survey surveys.Survey, report Report, body InsightsBody) string {
	if s.generator == nil {
		return AIUnavailable
	}

	surveyContext, err := json.Marshal(insightsContext{
		Survey:         survey.Title,
		TotalResponses: report.Totals.Responses,
		Emotions:       report.Totals.Emotions,
		Factors:        report.Factors,
		Questions:      Summaries(report),
	})
	if err != nil {
		s.logger.Error("error encoding insights context", zap.Error(err))
		return AIUnavailable
	}

	var prompt strings.Builder
	prompt.WriteString("Survey context:\n")
	prompt.Write(surveyContext)
	prompt.WriteString("\n\n")
	for _, message := range body.History {
		fmt.Fprintf(&prompt, "%s: %s\n", message.Role, message.Content)
	}
	fmt.Fprintf(&prompt, "user: %s\n", body.Question)

	answer, err := s.generator.Generate(ctx, insightsInstruction, prompt.String())
	if err != nil {
		s.logger.Warn("insights generation failed", zap.String("survey_id", survey.ID), zap.Error(err))
		return AIUnavailable
	}
	if strings.TrimSpace(answer) == "" {
		return AIUnavailable
	}
	return answer
}
