// Package mapreduce is a single-process, in-memory MapReduce engine. Input
// records are partitioned across a pool of mapper workers, emitted key-value
// pairs are grouped by key, and each key's group is reduced by exactly one
// reducer worker. Each phase runs to completion before the next begins.
package mapreduce

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"golang.org/x/sync/errgroup"
)

// KeyValue is the intermediate pair emitted by Map.
type KeyValue[K cmp.Ordered, V any] struct {
	Key   K
	Value V
}

// Job supplies the map and reduce functions for a run. Both must be pure:
// deterministic and free of side effects visible to the engine. Map is called
// concurrently from mapper workers and Reduce from reducer workers, so a Job
// must not carry mutable state.
type Job[I any, K cmp.Ordered, V, R any] interface {
	Map(record I) ([]KeyValue[K, V], error)
	Reduce(key K, values []V) (R, error)
}

// Engine executes MapReduce runs with a fixed number of mapper and reducer
// workers. It holds no per-run state; the same engine can run many jobs.
type Engine[I any, K cmp.Ordered, V, R any] struct {
	mappers  int
	reducers int
}

// NewEngine creates an engine with the given worker counts. Counts are
// validated on Run.
func NewEngine[I any, K cmp.Ordered, V, R any](mappers, reducers int) *Engine[I, K, V, R] {
	return &Engine[I, K, V, R]{
		mappers:  mappers,
		reducers: reducers,
	}
}

// Run executes one MapReduce job over records and returns the final mapping
// from key to reduced result. The outcome is all-or-nothing: the first map or
// reduce failure aborts the run and is returned as a *MapError or
// *ReduceError; a partial mapping is never returned.
func (e *Engine[I, K, V, R]) Run(ctx context.Context, records []I, job Job[I, K, V, R]) (map[K]R, error) {
	if job == nil {
		return nil, &ConfigError{Reason: "job is nil"}
	}
	if e.mappers < 1 {
		return nil, &ConfigError{Reason: fmt.Sprintf("mapper count %d, must be at least 1", e.mappers)}
	}
	if e.reducers < 1 {
		return nil, &ConfigError{Reason: fmt.Sprintf("reducer count %d, must be at least 1", e.reducers)}
	}

	outputs, err := e.mapPhase(ctx, records, job)
	if err != nil {
		return nil, err
	}

	grouped := e.shuffle(outputs)

	results, err := e.reducePhase(ctx, grouped, job)
	if err != nil {
		return nil, err
	}

	return e.collect(results)
}

// mapPhase runs Map over each worker's record span in parallel and returns
// one output buffer per worker. It does not return until every mapper has
// finished; no mapper output is visible to shuffle before then.
func (e *Engine[I, K, V, R]) mapPhase(ctx context.Context, records []I, job Job[I, K, V, R]) ([][]KeyValue[K, V], error) {
	spans := partition(len(records), e.mappers)
	outputs := make([][]KeyValue[K, V], e.mappers)

	g, ctx := errgroup.WithContext(ctx)
	for w, sp := range spans {
		w, sp := w, sp
		g.Go(func() error {
			// Worker-local buffer: nothing here is shared until the
			// barrier below clears.
			buf := make([]KeyValue[K, V], 0, sp.Len())
			for i := sp.Lo; i < sp.Hi; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				kvs, err := job.Map(records[i])
				if err != nil {
					return &MapError{Worker: w, Record: i, Err: err}
				}
				buf = append(buf, kvs...)
			}
			outputs[w] = buf
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outputs, nil
}

// shuffle concatenates the mapper buffers in worker order and groups values
// by key. Every emitted pair lands in exactly one group; repeated emissions
// are kept, not deduplicated.
func (e *Engine[I, K, V, R]) shuffle(outputs [][]KeyValue[K, V]) map[K][]V {
	grouped := make(map[K][]V)
	for _, out := range outputs {
		for _, kv := range out {
			grouped[kv.Key] = append(grouped[kv.Key], kv.Value)
		}
	}
	return grouped
}

// reducePhase assigns the distinct keys to reducer workers in sorted order
// and runs Reduce over each worker's slice in parallel. Sorting fixes the
// worker-to-key assignment independently of mapper completion order.
func (e *Engine[I, K, V, R]) reducePhase(ctx context.Context, grouped map[K][]V, job Job[I, K, V, R]) ([]map[K]R, error) {
	keys := make([]K, 0, len(grouped))
	for k := range grouped {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	spans := partition(len(keys), e.reducers)
	results := make([]map[K]R, e.reducers)

	g, ctx := errgroup.WithContext(ctx)
	for w, sp := range spans {
		w, sp := w, sp
		g.Go(func() error {
			out := make(map[K]R, sp.Len())
			for i := sp.Lo; i < sp.Hi; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				k := keys[i]
				res, err := job.Reduce(k, grouped[k])
				if err != nil {
					return &ReduceError{Worker: w, Key: k, Err: err}
				}
				out[k] = res
			}
			results[w] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// collect merges the reducer outputs into the final mapping. Key assignment
// is disjoint, so a collision here means the engine itself is broken.
func (e *Engine[I, K, V, R]) collect(results []map[K]R) (map[K]R, error) {
	final := make(map[K]R)
	for _, part := range results {
		for k, res := range part {
			if _, dup := final[k]; dup {
				return nil, &InvariantError{Reason: fmt.Sprintf("key %v reduced by more than one worker", k)}
			}
			final[k] = res
		}
	}
	return final, nil
}
