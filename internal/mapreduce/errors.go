package mapreduce

import "fmt"

// ConfigError reports an invalid engine configuration or job.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("mapreduce: invalid configuration: %s", e.Reason)
}

// MapError reports a map call that failed. The run is aborted; no partial
// results are returned. Worker is the mapper's slot and Record the index of
// the offending input record, enough to reproduce the failure.
type MapError struct {
	Worker int
	Record int
	Err    error
}

func (e *MapError) Error() string {
	return fmt.Sprintf("mapreduce: map failed on worker %d, record %d: %v", e.Worker, e.Record, e.Err)
}

func (e *MapError) Unwrap() error { return e.Err }

// ReduceError reports a reduce call that failed on a given key.
type ReduceError struct {
	Worker int
	Key    any
	Err    error
}

func (e *ReduceError) Error() string {
	return fmt.Sprintf("mapreduce: reduce failed on worker %d, key %v: %v", e.Worker, e.Key, e.Err)
}

func (e *ReduceError) Unwrap() error { return e.Err }

// InvariantError reports a broken engine invariant (partition overlap or a
// key reduced twice). It indicates a bug in the engine, never in the data.
type InvariantError struct {
	Reason string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("mapreduce: internal invariant violated: %s", e.Reason)
}
