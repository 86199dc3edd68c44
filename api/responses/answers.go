package responses

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/Adedunmol/questino/api/surveys"
)

// AnswerText renders an answer value as the text a respondent entered.
func AnswerText(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case []interface{}:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			parts = append(parts, AnswerText(item))
		}
		return strings.Join(parts, ",")
	default:
		return fmt.Sprint(v)
	}
}

func isAnswered(question surveys.Question, value interface{}) bool {
	if value == nil {
		return false
	}

	switch question.Type {
	case surveys.TypeText:
		return strings.TrimSpace(AnswerText(value)) != ""
	case surveys.TypeMCQ:
		switch v := value.(type) {
		case string:
			return v != ""
		case []interface{}:
			return len(v) > 0
		default:
			return true
		}
	default:
		return true
	}
}

// MissingRequired lists the ids of required questions left unanswered, in
// question order. Section markers are never required.
func MissingRequired(questions []surveys.Question, answers map[string]interface{}) []string {
	var missing []string
	for _, question := range questions {
		if !question.Required || question.Type == surveys.TypeSection {
			continue
		}
		if !isAnswered(question, answers[question.ID]) {
			missing = append(missing, question.ID)
		}
	}
	return missing
}

// AnalysisCandidate is a text answer long enough to be sent for analysis.
type AnalysisCandidate struct {
	QuestionID string
	Text       string
}

// AnalysisCandidates picks the text answers whose trimmed length reaches
// minLength characters.
func AnalysisCandidates(questions []surveys.Question, answers map[string]interface{}, minLength int) []AnalysisCandidate {
	var candidates []AnalysisCandidate
	for _, question := range questions {
		if question.Type != surveys.TypeText {
			continue
		}
		text := strings.TrimSpace(AnswerText(answers[question.ID]))
		if text == "" || utf8.RuneCountInString(text) < minLength {
			continue
		}
		candidates = append(candidates, AnalysisCandidate{QuestionID: question.ID, Text: text})
	}
	return candidates
}
