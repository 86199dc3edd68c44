package analysis

import (
	"context"
	"errors"
	"time"

	"github.com/Adedunmol/questino/api/custom_errors"
)

const (
	DefaultPollInterval = time.Second
	DefaultPollTimeout  = 15 * time.Second
)

type LatestFinder interface {
	GetLatestAnalysis(ctx context.Context, responseID string) (Record, error)
}

// Poller waits for the analysis of a response to appear.
type Poller struct {
	finder   LatestFinder
	interval time.Duration
	timeout  time.Duration
}

func NewPoller(finder LatestFinder, interval, timeout time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if timeout <= 0 {
		timeout = DefaultPollTimeout
	}
	return &Poller{finder: finder, interval: interval, timeout: timeout}
}

// Latest does a single lookup. It returns custom_errors.ErrNotFound while the
// analysis is still pending.
func (p *Poller) Latest(ctx context.Context, responseID string) (Record, error) {
	return p.finder.GetLatestAnalysis(ctx, responseID)
}

// WaitForAnalysis queries on a fixed interval and returns the first record
// found. It gives up with custom_errors.ErrAnalysisTimeout once the timeout
// has elapsed, or with the context's error when ctx is done first.
func (p *Poller) WaitForAnalysis(ctx context.Context, responseID string) (Record, error) {
	start := time.Now()

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return Record{}, ctx.Err()
		case <-timer.C:
		}

		if time.Since(start) >= p.timeout {
			return Record{}, custom_errors.ErrAnalysisTimeout
		}

		record, err := p.finder.GetLatestAnalysis(ctx, responseID)
		if err == nil {
			return record, nil
		}
		if !errors.Is(err, custom_errors.ErrNotFound) {
			return Record{}, err
		}

		timer.Reset(p.interval)
	}
}
