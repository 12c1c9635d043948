package session

import (
	"github.com/abhisek/hanzidrill/internal/screen"
	"github.com/abhisek/hanzidrill/internal/screens/summary"
)

// newSummaryScreenAdapter creates a summary screen from the running session.
func (s *SessionScreen) newSummaryScreenAdapter() screen.Screen {
	return summary.New(summary.Result{
		Dataset:  s.cfg.Entry.Name,
		Summary:  s.state.Summary(),
		FirstTry: s.firstTry,
		Skipped:  s.skipped,
	})
}
