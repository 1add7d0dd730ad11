// Package runner drives MapReduce jobs over passenger records: it stamps
// each run with an id, times it, and logs the outcome.
package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/CalsRain408/determine-numbers-of-flights/internal/jobs"
	"github.com/CalsRain408/determine-numbers-of-flights/internal/logger"
	"github.com/CalsRain408/determine-numbers-of-flights/internal/mapreduce"
	"github.com/CalsRain408/determine-numbers-of-flights/internal/types"
)

// Runner executes flight-data jobs on a fixed-size engine.
type Runner struct {
	engine *mapreduce.Engine[types.PassengerRecord, string, int, int]
	log    *logger.Logger
}

// New creates a runner with the given worker counts.
func New(mappers, reducers int, log *logger.Logger) *Runner {
	return &Runner{
		engine: mapreduce.NewEngine[types.PassengerRecord, string, int, int](mappers, reducers),
		log:    log,
	}
}

// Run executes job over records and returns the final key-to-count mapping.
// Failures are returned wrapped with the run id so logs and errors correlate.
func (r *Runner) Run(ctx context.Context, name string, records []types.PassengerRecord, job jobs.Job) (map[string]int, error) {
	runID := "run-" + uuid.New().String()[:8]

	r.log.Info("job started: run_id=%s job=%q records=%d", runID, name, len(records))
	start := time.Now()

	result, err := r.engine.Run(ctx, records, job)
	if err != nil {
		r.log.Error("job failed: run_id=%s job=%q err=%v", runID, name, err)
		return nil, fmt.Errorf("run %s (%s): %w", runID, name, err)
	}

	r.log.Info("job completed: run_id=%s job=%q keys=%d elapsed=%s",
		runID, name, len(result), time.Since(start).Round(time.Millisecond))
	return result, nil
}
