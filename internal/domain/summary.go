package domain

// BatchSummary aggregates outcomes across a run
type BatchSummary struct {
	Total     int
	Succeeded int
	Failed    int
}

// Record counts one settled outcome
func (s *BatchSummary) Record(o Outcome) {
	if IsSuccess(o) {
		s.Succeeded++
	} else {
		s.Failed++
	}
}

// Settled returns how many jobs have produced an outcome so far
func (s BatchSummary) Settled() int {
	return s.Succeeded + s.Failed
}

// Complete reports whether every job yielded exactly one outcome
func (s BatchSummary) Complete() bool {
	return s.Settled() == s.Total
}
