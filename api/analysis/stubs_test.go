package analysis_test

import (
	"context"
	"errors"
	"sync"

	"github.com/Adedunmol/questino/api/analysis"
	"github.com/Adedunmol/questino/api/custom_errors"
)

type StubAnalyzer struct {
	Result     analysis.Result
	ShouldFail bool
	Calls      int
}

func (s *StubAnalyzer) Analyze(ctx context.Context, text string) (analysis.Result, error) {
	s.Calls++
	if s.ShouldFail {
		return analysis.Result{}, errors.New("nlu unavailable")
	}
	return s.Result, nil
}

type StubAnalysisStore struct {
	mu      sync.Mutex
	Records []analysis.Record

	ShouldFailCreate bool
	ShouldFailLookup bool
	// AppearAfter makes GetLatestAnalysis report not found for this many calls.
	AppearAfter int
	lookups     int
}

func (s *StubAnalysisStore) CreateAnalysis(ctx context.Context, record analysis.Record) (analysis.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ShouldFailCreate {
		return analysis.Record{}, errors.New("insert failed")
	}
	s.Records = append(s.Records, record)
	return record, nil
}

func (s *StubAnalysisStore) GetLatestAnalysis(ctx context.Context, responseID string) (analysis.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lookups++
	if s.ShouldFailLookup {
		return analysis.Record{}, errors.New("connection refused")
	}
	if s.lookups <= s.AppearAfter {
		return analysis.Record{}, custom_errors.ErrNotFound
	}
	for i := len(s.Records) - 1; i >= 0; i-- {
		if s.Records[i].ResponseID == responseID {
			return s.Records[i], nil
		}
	}
	return analysis.Record{}, custom_errors.ErrNotFound
}

func (s *StubAnalysisStore) ListAnalysisByResponseIDs(ctx context.Context, responseIDs []string) ([]analysis.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	wanted := make(map[string]bool, len(responseIDs))
	for _, id := range responseIDs {
		wanted[id] = true
	}
	var out []analysis.Record
	for _, r := range s.Records {
		if wanted[r.ResponseID] {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *StubAnalysisStore) Lookups() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lookups
}
