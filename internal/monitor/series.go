package monitor

import "time"

// Series is an append-only, time-ordered buffer of samples kept for the full
// run. Windowing is computed at read time from the complete history; nothing
// is evicted, so trend analysis always sees every sample. Run lengths are
// bounded by interactive use, which keeps the memory cost acceptable.
//
// Series is not internally synchronized: the monitor goroutine is its sole
// writer, and readers only touch it after that goroutine has stopped.
type Series struct {
	samples []Sample
}

// Append records one sample at the end of the series.
func (t *Series) Append(s Sample) {
	t.samples = append(t.samples, s)
}

// Len returns the number of recorded samples.
func (t *Series) Len() int {
	return len(t.samples)
}

// All returns every sample in append order. The slice is shared; callers
// must not modify it.
func (t *Series) All() []Sample {
	return t.samples
}

// Window returns the samples whose timestamp is within d of the latest
// sample, in append order. An empty series yields nil.
func (t *Series) Window(d time.Duration) []Sample {
	if len(t.samples) == 0 {
		return nil
	}
	cutoff := t.samples[len(t.samples)-1].Taken.Add(-d)
	for i := len(t.samples) - 1; i >= 0; i-- {
		if t.samples[i].Taken.Before(cutoff) {
			return t.samples[i+1:]
		}
	}
	return t.samples
}
