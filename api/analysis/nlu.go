package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	watsonVersion = "2022-04-07"
	ModelName     = "watson-nlu-v1"
)

type Emotions struct {
	Joy     float64 `json:"joy"`
	Sadness float64 `json:"sadness"`
	Anger   float64 `json:"anger"`
	Fear    float64 `json:"fear"`
	Disgust float64 `json:"disgust"`
}

type Sentiment struct {
	Score float64 `json:"score"`
	Label string  `json:"label"`
}

type Result struct {
	Emotions  Emotions  `json:"emotions"`
	Sentiment Sentiment `json:"sentiment"`
}

// Analyzer scores the emotions and sentiment of a piece of text.
type Analyzer interface {
	Analyze(ctx context.Context, text string) (Result, error)
}

var ErrNLUNotConfigured = errors.New("NLU service is not configured")

// WatsonClient calls the Watson Natural Language Understanding v1 REST API.
type WatsonClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewWatsonClient(baseURL, apiKey string, timeout time.Duration) *WatsonClient {
	return &WatsonClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type watsonRequest struct {
	Text     string         `json:"text"`
	Features watsonFeatures `json:"features"`
}

type watsonFeatures struct {
	Emotion   watsonEmotionOptions `json:"emotion"`
	Sentiment struct{}             `json:"sentiment"`
}

type watsonEmotionOptions struct {
	Targets []string `json:"targets"`
}

// Scores are pointers so absent values can be told apart from zero.
type watsonResponse struct {
	Emotion *struct {
		Document *struct {
			Emotion map[string]float64 `json:"emotion"`
		} `json:"document"`
	} `json:"emotion"`
	Sentiment *struct {
		Document *struct {
			Score *float64 `json:"score"`
			Label string   `json:"label"`
		} `json:"document"`
	} `json:"sentiment"`
}

type watsonError struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}

func (c *WatsonClient) Analyze(ctx context.Context, text string) (Result, error) {
	if c.baseURL == "" || c.apiKey == "" {
		return Result{}, ErrNLUNotConfigured
	}

	body, err := json.Marshal(watsonRequest{
		Text: text,
		Features: watsonFeatures{
			Emotion: watsonEmotionOptions{Targets: []string{"joy", "sadness", "anger", "fear", "disgust"}},
		},
	})
	if err != nil {
		return Result{}, fmt.Errorf("marshal nlu request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1/analyze?version=%s", c.baseURL, watsonVersion)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return Result{}, fmt.Errorf("build nlu request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.SetBasicAuth("apikey", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("nlu request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Result{}, fmt.Errorf("read nlu response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr watsonError
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Error != "" {
			return Result{}, fmt.Errorf("nlu returned %d: %s", resp.StatusCode, apiErr.Error)
		}
		return Result{}, fmt.Errorf("nlu returned %d", resp.StatusCode)
	}

	var decoded watsonResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return Result{}, fmt.Errorf("decode nlu response: %w", err)
	}

	return decoded.result(), nil
}

func (w watsonResponse) result() Result {
	result := Result{Sentiment: Sentiment{Label: "neutral"}}

	if w.Emotion != nil && w.Emotion.Document != nil {
		scores := w.Emotion.Document.Emotion
		result.Emotions = Emotions{
			Joy:     scores["joy"],
			Sadness: scores["sadness"],
			Anger:   scores["anger"],
			Fear:    scores["fear"],
			Disgust: scores["disgust"],
		}
	}

	if w.Sentiment != nil && w.Sentiment.Document != nil {
		if w.Sentiment.Document.Score != nil {
			result.Sentiment.Score = *w.Sentiment.Document.Score
		}
		if w.Sentiment.Document.Label != "" {
			result.Sentiment.Label = w.Sentiment.Document.Label
		}
	}

	return result
}
