package mapreduce

// span is a half-open index range [Lo, Hi) owned by exactly one worker for
// the duration of a phase.
type span struct {
	Lo, Hi int
}

func (s span) Len() int { return s.Hi - s.Lo }

// partition splits [0, n) into workers contiguous, non-overlapping spans.
// Span sizes differ by at most one; when n < workers the trailing spans are
// empty. The split depends only on (n, workers), so identical inputs always
// produce identical assignments.
func partition(n, workers int) []span {
	spans := make([]span, workers)
	base := n / workers
	extra := n % workers

	lo := 0
	for i := range spans {
		size := base
		if i < extra {
			size++
		}
		spans[i] = span{Lo: lo, Hi: lo + size}
		lo += size
	}
	return spans
}
