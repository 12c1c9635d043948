package store

import (
	"context"
	"time"
)

// QueryOpts filters and pages event queries.
type QueryOpts struct {
	Limit   int    // max results (0 = unlimited)
	AfterID int64  // id > AfterID
	Purpose string // exact match when set
}

// Submission is one answered writing question, or the summary of a
// finished quiz session when Prompt is empty.
type Submission struct {
	ID        int64
	Sequence  int64
	CreatedAt time.Time
	SessionID string
	Dataset   string
	Mode      string
	Prompt    string
	Answer    string
	Correct   bool
	Score     int
	Total     int
	Feedback  string
}

// IsSessionSummary reports whether s records a whole session.
func (s Submission) IsSessionSummary() bool {
	return s.Prompt == ""
}

// SubmissionRepo is the append-only submission log behind the dashboard.
type SubmissionRepo interface {
	// Append stores sub and fills its ID, Sequence and CreatedAt.
	Append(ctx context.Context, sub *Submission) error

	// Latest returns up to limit submissions, newest first. A limit of 0
	// means DefaultLatestLimit.
	Latest(ctx context.Context, limit int) ([]Submission, error)

	// Since returns submissions with ID > afterID, oldest first.
	Since(ctx context.Context, afterID int64) ([]Submission, error)

	Count(ctx context.Context) (int, error)

	// Watch polls for new submissions every interval and sends them in
	// insertion order. Both channels close when ctx is done or a query
	// fails; the error channel then carries the failure.
	Watch(ctx context.Context, afterID int64, interval time.Duration) (<-chan Submission, <-chan error)
}

// DefaultLatestLimit is the dashboard page size.
const DefaultLatestLimit = 50

// LLMRequestEventData is what gets recorded for one LLM call.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEvent is a stored LLM call.
type LLMEvent struct {
	ID        int64
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsage aggregates calls for one purpose.
type LLMUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// LLMModelUsage aggregates tokens for one model.
type LLMModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// LLMEventRepo records LLM calls.
type LLMEventRepo interface {
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error
}

// EventRepo reads and writes the LLM event log.
type EventRepo interface {
	LLMEventRepo

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error)

	// GetLLMEvent returns one event, or nil if id does not exist.
	GetLLMEvent(ctx context.Context, id int64) (*LLMEvent, error)

	LLMUsageByPurpose(ctx context.Context) ([]LLMUsage, error)
	LLMUsageByModel(ctx context.Context) ([]LLMModelUsage, error)
}
