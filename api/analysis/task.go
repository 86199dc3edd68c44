package analysis

import (
	"context"
	"fmt"

	"github.com/Adedunmol/questino/queue"
	"github.com/hibiken/asynq"
)

// TaskHandler runs queued emotion analysis tasks on the worker.
type TaskHandler struct {
	service *Service
}

func NewTaskHandler(service *Service) *TaskHandler {
	return &TaskHandler{service: service}
}

func (t *TaskHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	payload, err := queue.DecodeEmotionAnalysis(task)
	if err != nil {
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}

	req := Request{ResponseID: payload.ResponseID, Text: payload.Text}
	if payload.QuestionID != "" {
		questionID := payload.QuestionID
		req.QuestionID = &questionID
	}

	if _, err := t.service.Analyze(ctx, req); err != nil {
		return fmt.Errorf("emotion analysis for response %s: %w", payload.ResponseID, err)
	}
	return nil
}
