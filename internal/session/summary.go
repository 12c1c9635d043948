package session

import "time"

// Summary is the end-of-session result that gets persisted.
type Summary struct {
	Mode     Mode
	Duration time.Duration
	Correct  int
	Total    int
	Records  int
}

// Accuracy returns correct/total, or 0 before any question was scored.
func (s Summary) Accuracy() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Total)
}

// Summary reports the session so far.
func (s *Session) Summary() Summary {
	var d time.Duration
	if !s.startedAt.IsZero() {
		d = s.now().Sub(s.startedAt)
	}
	return Summary{
		Mode:     s.mode,
		Duration: d,
		Correct:  s.correct,
		Total:    s.total,
		Records:  len(s.records),
	}
}
