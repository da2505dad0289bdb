package batch

import "time"

// Stats tracks aggregate counters across a batch run.
type Stats struct {
	Total   int
	Stamped int
	Skipped int
	Failed  int
	Elapsed time.Duration
}

// OK reports whether every file was stamped or skipped.
func (s *Stats) OK() bool { return s.Failed == 0 && s.Stamped+s.Skipped == s.Total }
