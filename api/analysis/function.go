package analysis

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/Adedunmol/questino/api/jsonutil"
)

// FunctionResponse mirrors the analysis function's execution result.
type FunctionResponse struct {
	Success    bool       `json:"success"`
	AnalysisID string     `json:"analysisId,omitempty"`
	Emotions   *Emotions  `json:"emotions,omitempty"`
	Sentiment  *Sentiment `json:"sentiment,omitempty"`
	Error      string     `json:"error,omitempty"`
}

type Handler struct {
	Service *Service
}

// AnalyzeEmotion executes the analysis function synchronously.
func (h *Handler) AnalyzeEmotion(responseWriter http.ResponseWriter, request *http.Request) {
	var body Request
	if request.Body != nil {
		err := json.NewDecoder(io.LimitReader(request.Body, 1<<20)).Decode(&body)
		if err != nil && !errors.Is(err, io.EOF) {
			jsonutil.WriteJSONResponse(responseWriter, FunctionResponse{Success: false, Error: "invalid request body"}, http.StatusBadRequest)
			return
		}
	}

	record, err := h.Service.Analyze(request.Context(), body)
	if err != nil {
		if errors.Is(err, ErrMissingInput) {
			jsonutil.WriteJSONResponse(responseWriter, FunctionResponse{Success: false, Error: err.Error()}, http.StatusBadRequest)
			return
		}
		jsonutil.WriteJSONResponse(responseWriter, FunctionResponse{Success: false, Error: err.Error()}, http.StatusInternalServerError)
		return
	}

	jsonutil.WriteJSONResponse(responseWriter, FunctionResponse{
		Success:    true,
		AnalysisID: record.ID,
		Emotions: &Emotions{
			Joy:     record.Joy,
			Sadness: record.Sadness,
			Anger:   record.Anger,
			Fear:    record.Fear,
			Disgust: record.Disgust,
		},
		Sentiment: &Sentiment{Score: record.Sentiment, Label: record.SentimentLabel},
	}, http.StatusOK)
}
