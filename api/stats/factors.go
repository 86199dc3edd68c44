package stats

import (
	"sort"
	"strings"

	"github.com/Adedunmol/questino/api/responses"
	"github.com/Adedunmol/questino/api/surveys"
)

const OtherFactor = "Other"

type factor struct {
	name     string
	keywords []string
}

// Checked in order; the first factor with a keyword contained in the
// lowercased question text wins.
var factorKeywords = []factor{
	{"Economic Wellbeing", []string{"income", "financial", "money", "economic", "afford", "save", "expense"}},
	{"Social Connections", []string{"family", "friend", "social", "relationship", "support", "community", "belong"}},
	{"Health & Wellness", []string{"health", "energy", "sleep", "fitness", "mental", "emotional", "wellness"}},
	{"Personal Freedom", []string{"control", "freedom", "autonomy", "decision", "work-life", "balance", "independence"}},
	{"Purpose & Meaning", []string{"purpose", "meaning", "growth", "work", "contribute", "help", "generous"}},
	{"Trust & Safety", []string{"safe", "secure", "trust", "reliable", "government", "fair", "crime"}},
}

type FactorScore struct {
	Name      string  `json:"name"`
	Average   float64 `json:"average"`
	Count     int     `json:"count"`
	Questions int     `json:"questions"`
}

// ClassifyFactor places a slider question's text into a life area.
func ClassifyFactor(text string) string {
	lowered := strings.ToLower(text)
	for _, f := range factorKeywords {
		for _, keyword := range f.keywords {
			if strings.Contains(lowered, keyword) {
				return f.name
			}
		}
	}
	return OtherFactor
}

// ComputeFactors groups slider questions by factor. Each response contributes
// the mean of its numeric answers to the factor's questions, and a factor's
// score is the mean of those per-response values. Factors without any
// answers are omitted; the rest are sorted by score, highest first.
func ComputeFactors(questions []surveys.Question, resps []responses.Response) []FactorScore {
	grouped := make(map[string][]surveys.Question)
	for _, q := range questions {
		if q.Type != surveys.TypeSlider {
			continue
		}
		name := ClassifyFactor(q.Text)
		grouped[name] = append(grouped[name], q)
	}

	names := make([]string, 0, len(factorKeywords)+1)
	for _, f := range factorKeywords {
		names = append(names, f.name)
	}
	names = append(names, OtherFactor)

	scores := make([]FactorScore, 0, len(grouped))
	for _, name := range names {
		factorQuestions := grouped[name]
		if len(factorQuestions) == 0 {
			continue
		}

		var perResponse []float64
		for _, r := range resps {
			var answered []float64
			for _, q := range factorQuestions {
				if v, ok := ToNumber(r.Answers[q.ID]); ok {
					answered = append(answered, v)
				}
			}
			if len(answered) > 0 {
				perResponse = append(perResponse, mean(answered))
			}
		}

		if len(perResponse) == 0 {
			continue
		}

		scores = append(scores, FactorScore{
			Name:      name,
			Average:   round(mean(perResponse), 2),
			Count:     len(perResponse),
			Questions: len(factorQuestions),
		})
	}

	sort.SliceStable(scores, func(i, j int) bool { return scores[i].Average > scores[j].Average })
	return scores
}
