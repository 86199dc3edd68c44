package queue

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

const TypeEmotionAnalysis = "analysis:emotion"

// EmotionAnalysisPayload asks the worker to analyze one text answer.
type EmotionAnalysisPayload struct {
	ResponseID string `json:"responseId"`
	QuestionID string `json:"questionId,omitempty"`
	Text       string `json:"text"`
}

// Process builds the task. Analysis is attempted once; a failure leaves the
// response without analysis rather than being retried.
func (e *EmotionAnalysisPayload) Process() (*asynq.Task, error) {
	payload, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("marshal emotion analysis payload: %w", err)
	}

	return asynq.NewTask(TypeEmotionAnalysis, payload, asynq.MaxRetry(0), asynq.Timeout(time.Minute)), nil
}

func (e *EmotionAnalysisPayload) ProcessorName() string {
	return "emotion analysis"
}

func DecodeEmotionAnalysis(t *asynq.Task) (EmotionAnalysisPayload, error) {
	var payload EmotionAnalysisPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return payload, fmt.Errorf("error decoding emotion analysis payload: %w", err)
	}
	return payload, nil
}
