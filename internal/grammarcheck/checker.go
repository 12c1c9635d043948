// Package grammarcheck judges sentences written by the learner, either with
// a language model or with a simple offline rule.
package grammarcheck

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/abhisek/hanzidrill/internal/llm"
)

// DefaultTimeout bounds one model call.
const DefaultTimeout = 10 * time.Second

// Purpose labels the model calls made by the checker in the LLM event log.
const Purpose = "grammar-check"

// Input is one sentence to judge.
type Input struct {
	// Term is the word the sentence must use.
	Term          string
	Pronunciation string
	Meaning       string

	Sentence string
}

// Source says who produced a verdict.
type Source string

const (
	SourceModel Source = "model"
	SourceLocal Source = "local"
)

// Verdict is the outcome of a check.
type Verdict struct {
	Correct     bool
	Explanation string
	// Corrected is a fixed sentence when the original was wrong.
	Corrected string
	Source    Source
}

// Checker judges sentences.
type Checker interface {
	Check(ctx context.Context, in Input) (*Verdict, error)
}

// Config tunes the model call.
type Config struct {
	Timeout     time.Duration
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns the settings used by the CLI.
func DefaultConfig() Config {
	return Config{Timeout: DefaultTimeout, MaxTokens: 512, Temperature: 0.2}
}

// Service checks with a model and falls back to LocalCheck when the model
// is missing or fails.
type Service struct {
	provider llm.Provider
	config   Config
	logger   *slog.Logger
}

// New creates a Service. provider may be nil for offline use.
func New(provider llm.Provider, cfg Config, logger *slog.Logger) *Service {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{provider: provider, config: cfg, logger: logger}
}

// Online reports whether a model is configured.
func (s *Service) Online() bool {
	return s.provider != nil
}

// verdictOutput is the raw model response.
type verdictOutput struct {
	Correct     bool   `json:"correct"`
	Explanation string `json:"explanation"`
	Corrected   string `json:"corrected"`
}

// Check judges in.Sentence. Empty sentences are rejected without a model
// call. Cancellation of ctx is returned as an error; every other model
// failure degrades to LocalCheck.
func (s *Service) Check(ctx context.Context, in Input) (*Verdict, error) {
	if v := precheck(in); v != nil {
		return v, nil
	}
	if s.provider == nil {
		return LocalCheck(in), nil
	}

	v, err := s.checkModel(ctx, in)
	if err == nil {
		return v, nil
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	s.logger.Warn("sentence check fell back to local rule", "term", in.Term, "err", err)
	return LocalCheck(in), nil
}

func (s *Service) checkModel(ctx context.Context, in Input) (*Verdict, error) {
	ctx, cancel := context.WithTimeout(llm.WithPurpose(ctx, Purpose), s.config.Timeout)
	defer cancel()

	req := llm.Request{
		System:      systemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: buildUserMessage(in)}},
		Schema:      VerdictSchema,
		MaxTokens:   s.config.MaxTokens,
		Temperature: s.config.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("sentence check timed out after %s: %w", s.config.Timeout, err)
		}
		return nil, fmt.Errorf("sentence check: %w", err)
	}

	var raw verdictOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("parse verdict: %w", err)
	}
	return &Verdict{
		Correct:     raw.Correct,
		Explanation: raw.Explanation,
		Corrected:   raw.Corrected,
		Source:      SourceModel,
	}, nil
}
