package analysis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrMissingInput = errors.New("Missing responseId or text")

// Request is the body accepted by the analysis function.
type Request struct {
	ResponseID string  `json:"responseId"`
	QuestionID *string `json:"questionId"`
	Text       string  `json:"text"`
}

// Service runs text through the Analyzer and persists the result.
type Service struct {
	analyzer Analyzer
	store    Store
	logger   *zap.Logger
	now      func() time.Time
}

func NewService(analyzer Analyzer, store Store, logger *zap.Logger) *Service {
	return &Service{
		analyzer: analyzer,
		store:    store,
		logger:   logger,
		now:      time.Now,
	}
}

// Analyze writes exactly one Record on success and nothing on failure.
func (s *Service) Analyze(ctx context.Context, req Request) (Record, error) {
	if req.ResponseID == "" || strings.TrimSpace(req.Text) == "" {
		return Record{}, ErrMissingInput
	}

	result, err := s.analyzer.Analyze(ctx, req.Text)
	if err != nil {
		s.logger.Error("nlu analysis failed", zap.String("response_id", req.ResponseID), zap.Error(err))
		return Record{}, err
	}

	label := result.Sentiment.Label
	if label == "" {
		label = "neutral"
	}

	var questionID *string
	if req.QuestionID != nil && *req.QuestionID != "" {
		questionID = req.QuestionID
	}

	record, err := s.store.CreateAnalysis(ctx, Record{
		ID:             uuid.NewString(),
		ResponseID:     req.ResponseID,
		QuestionID:     questionID,
		Joy:            result.Emotions.Joy,
		Sadness:        result.Emotions.Sadness,
		Anger:          result.Emotions.Anger,
		Fear:           result.Emotions.Fear,
		Disgust:        result.Emotions.Disgust,
		Sentiment:      result.Sentiment.Score,
		SentimentLabel: label,
		Model:          ModelName,
		ProcessedAt:    s.now().UTC(),
	})
	if err != nil {
		return Record{}, fmt.Errorf("error saving analysis: %w", err)
	}

	s.logger.Info("analysis stored",
		zap.String("analysis_id", record.ID),
		zap.String("response_id", record.ResponseID),
		zap.String("sentiment", record.SentimentLabel),
	)

	return record, nil
}
