// Package stats aggregates a survey's responses and analysis rows into the
// per-question summaries shown on the owner and public stats pages.
package stats

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/Adedunmol/questino/api/analysis"
	"github.com/Adedunmol/questino/api/responses"
	"github.com/Adedunmol/questino/api/surveys"
	"github.com/shopspring/decimal"
)

const (
	recentTextLimit = 10
	sliderBins      = 10
)

type Report struct {
	Totals    Totals          `json:"totals"`
	Questions []QuestionStats `json:"questions"`
	Factors   []FactorScore   `json:"factors"`
}

type Totals struct {
	Responses       int              `json:"responses"`
	AnalysisRecords int              `json:"analysis_records"`
	Emotions        *EmotionAverages `json:"emotions"`
	AnalysisPending bool             `json:"analysis_pending"`
}

type EmotionAverages struct {
	Joy     float64 `json:"joy"`
	Sadness float64 `json:"sadness"`
	Anger   float64 `json:"anger"`
	Fear    float64 `json:"fear"`
	Disgust float64 `json:"disgust"`
}

type QuestionStats struct {
	QuestionID string        `json:"question_id"`
	Text       string        `json:"text"`
	Type       string        `json:"type"`
	Count      int           `json:"count"`
	Numeric    *NumericStats `json:"numeric,omitempty"`
	Choices    []ChoiceCount `json:"choices,omitempty"`
	TextStats  *TextStats    `json:"text_stats,omitempty"`
}

// NumericStats summarizes scale and slider answers. Median is only set for
// sliders.
type NumericStats struct {
	Average   float64  `json:"average"`
	Median    *float64 `json:"median,omitempty"`
	Min       float64  `json:"min"`
	Max       float64  `json:"max"`
	Histogram []Bin    `json:"histogram"`
}

type Bin struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

type ChoiceCount struct {
	Label      string `json:"label"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}

type TextStats struct {
	Recent        []string         `json:"recent"`
	AnalysisCount int              `json:"analysis_count"`
	Emotions      *EmotionAverages `json:"emotions"`
	Sentiment     *float64         `json:"sentiment"`
}

// Compute builds the full report over data that has already been fetched.
func Compute(questions []surveys.Question, resps []responses.Response, records []analysis.Record) Report {
	report := Report{
		Totals: Totals{
			Responses:       len(resps),
			AnalysisRecords: len(records),
			Emotions:        averageEmotions(records),
			AnalysisPending: len(resps) > 0 && len(records) == 0,
		},
		Questions: make([]QuestionStats, 0, len(questions)),
		Factors:   ComputeFactors(questions, resps),
	}

	for _, question := range questions {
		base := QuestionStats{QuestionID: question.ID, Text: question.Text, Type: question.Type}

		switch question.Type {
		case surveys.TypeSection:
			continue
		case surveys.TypeScale:
			report.Questions = append(report.Questions, scaleStats(base, question, resps))
		case surveys.TypeSlider:
			report.Questions = append(report.Questions, sliderStats(base, question, resps))
		case surveys.TypeMCQ:
			report.Questions = append(report.Questions, choiceStats(base, question, resps))
		default:
			report.Questions = append(report.Questions, textStats(base, question, resps, records))
		}
	}

	return report
}

func scaleStats(base QuestionStats, question surveys.Question, resps []responses.Response) QuestionStats {
	values := numericAnswers(question.ID, resps)
	base.Count = len(values)
	if len(values) == 0 {
		return base
	}

	low, high := bound(question.ScaleMin, 1), bound(question.ScaleMax, 5)
	if high < low {
		low, high = high, low
	}

	var histogram []Bin
	if high-low+1 > surveys.MaxScalePoints {
		histogram = fixedBins(float64(low), float64(high), values)
	} else {
		histogram = make([]Bin, 0, high-low+1)
		for point := low; point <= high; point++ {
			histogram = append(histogram, Bin{Label: strconv.Itoa(point)})
		}
		for _, v := range values {
			point := int(math.Round(v))
			if point >= low && point <= high {
				histogram[point-low].Count++
			}
		}
	}

	minimum, maximum := minMax(values)
	base.Numeric = &NumericStats{
		Average:   round(mean(values), 2),
		Min:       minimum,
		Max:       maximum,
		Histogram: histogram,
	}
	return base
}

func sliderStats(base QuestionStats, question surveys.Question, resps []responses.Response) QuestionStats {
	values := numericAnswers(question.ID, resps)
	base.Count = len(values)
	if len(values) == 0 {
		return base
	}

	low := float64(bound(question.ScaleMin, 0))
	high := float64(bound(question.ScaleMax, 10))
	histogram := fixedBins(low, high, values)

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	median := sorted[len(sorted)/2]

	base.Numeric = &NumericStats{
		Average:   round(mean(values), 2),
		Median:    &median,
		Min:       sorted[0],
		Max:       sorted[len(sorted)-1],
		Histogram: histogram,
	}
	return base
}

// fixedBins spreads values over sliderBins equal buckets across [low, high].
// Values outside the range land in the first or last bucket.
func fixedBins(low, high float64, values []float64) []Bin {
	if high <= low {
		high = low + 10
	}
	binSize := (high - low) / sliderBins

	histogram := make([]Bin, sliderBins)
	for i := range histogram {
		histogram[i].Label = fmt.Sprintf("%.1f-%.1f", low+float64(i)*binSize, low+float64(i+1)*binSize)
	}
	for _, v := range values {
		index := int(math.Floor((v - low) / binSize))
		if index < 0 {
			index = 0
		}
		if index > sliderBins-1 {
			index = sliderBins - 1
		}
		histogram[index].Count++
	}
	return histogram
}

// choiceStats counts each selected option. Declared options are always
// listed, followed by any other values respondents submitted. Percentages are
// relative to the number of respondents who answered.
func choiceStats(base QuestionStats, question surveys.Question, resps []responses.Response) QuestionStats {
	counts := make(map[string]int)
	order := make([]string, 0, len(question.Options))
	for _, option := range question.Options {
		if _, seen := counts[option]; !seen {
			counts[option] = 0
			order = append(order, option)
		}
	}

	tally := func(label string) {
		if _, seen := counts[label]; !seen {
			order = append(order, label)
		}
		counts[label]++
	}

	respondents := 0
	for _, r := range resps {
		answer, ok := r.Answers[question.ID]
		if !ok || answer == nil {
			continue
		}
		respondents++

		if items, isList := answer.([]interface{}); isList {
			for _, item := range items {
				tally(responses.AnswerText(item))
			}
			continue
		}
		tally(responses.AnswerText(answer))
	}

	base.Count = respondents
	base.Choices = make([]ChoiceCount, 0, len(order))
	for _, label := range order {
		choice := ChoiceCount{Label: label, Count: counts[label]}
		if respondents > 0 {
			choice.Percentage = int(decimal.NewFromInt(int64(counts[label])).
				Mul(decimal.NewFromInt(100)).
				Div(decimal.NewFromInt(int64(respondents))).
				Round(0).IntPart())
		}
		base.Choices = append(base.Choices, choice)
	}
	return base
}

func textStats(base QuestionStats, question surveys.Question, resps []responses.Response, records []analysis.Record) QuestionStats {
	type item struct {
		text string
		when time.Time
	}

	var items []item
	answered := make(map[string]bool)
	for _, r := range resps {
		text, ok := r.Answers[question.ID].(string)
		if !ok || strings.TrimSpace(text) == "" {
			continue
		}
		items = append(items, item{text: strings.TrimSpace(text), when: r.CreatedAt})
		answered[r.ID] = true
	}

	base.Count = len(items)

	sort.SliceStable(items, func(i, j int) bool { return items[i].when.After(items[j].when) })
	recent := make([]string, 0, recentTextLimit)
	for i := 0; i < len(items) && i < recentTextLimit; i++ {
		recent = append(recent, items[i].text)
	}

	var matched []analysis.Record
	for _, record := range records {
		if !answered[record.ResponseID] {
			continue
		}
		if record.QuestionID != nil && *record.QuestionID != question.ID {
			continue
		}
		matched = append(matched, record)
	}

	stats := &TextStats{
		Recent:        recent,
		AnalysisCount: len(matched),
		Emotions:      averageEmotions(matched),
	}

	var sentimentSum float64
	var sentimentCount int
	for _, record := range matched {
		if score, ok := SentimentScore(record); ok {
			sentimentSum += score
			sentimentCount++
		}
	}
	if sentimentCount > 0 {
		avg := round(sentimentSum/float64(sentimentCount), 3)
		stats.Sentiment = &avg
	}

	base.TextStats = stats
	return base
}

// SentimentScore returns the sentiment of a record. The stored score is used
// whenever it is a number, zero included. The label is only consulted for a
// non-finite score: positive is 1, neutral 0, negative -1.
func SentimentScore(record analysis.Record) (float64, bool) {
	if !math.IsNaN(record.Sentiment) && !math.IsInf(record.Sentiment, 0) {
		return record.Sentiment, true
	}
	switch strings.ToLower(record.SentimentLabel) {
	case "positive":
		return 1, true
	case "negative":
		return -1, true
	case "neutral":
		return 0, true
	default:
		return 0, false
	}
}

func averageEmotions(records []analysis.Record) *EmotionAverages {
	if len(records) == 0 {
		return nil
	}

	var sum EmotionAverages
	for _, r := range records {
		sum.Joy += r.Joy
		sum.Sadness += r.Sadness
		sum.Anger += r.Anger
		sum.Fear += r.Fear
		sum.Disgust += r.Disgust
	}

	n := float64(len(records))
	return &EmotionAverages{
		Joy:     round(sum.Joy/n, 3),
		Sadness: round(sum.Sadness/n, 3),
		Anger:   round(sum.Anger/n, 3),
		Fear:    round(sum.Fear/n, 3),
		Disgust: round(sum.Disgust/n, 3),
	}
}

func numericAnswers(questionID string, resps []responses.Response) []float64 {
	var values []float64
	for _, r := range resps {
		if v, ok := ToNumber(r.Answers[questionID]); ok {
			values = append(values, v)
		}
	}
	return values
}

// ToNumber coerces a stored answer to a number. Numeric strings are accepted;
// blanks and anything else are not.
func ToNumber(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, false
		}
		return v, true
	case int:
		return float64(v), true
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func minMax(values []float64) (float64, float64) {
	minimum, maximum := values[0], values[0]
	for _, v := range values[1:] {
		minimum = math.Min(minimum, v)
		maximum = math.Max(maximum, v)
	}
	return minimum, maximum
}

func round(value float64, places int32) float64 {
	return decimal.NewFromFloat(value).Round(places).InexactFloat64()
}

func bound(value *int, fallback int) int {
	if value == nil {
		return fallback
	}
	return *value
}
