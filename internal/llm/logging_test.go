package llm

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/abhisek/hanzidrill/internal/store"
)

type recordingEvents struct {
	events []store.LLMRequestEventData
	err    error
}

func (r *recordingEvents) AppendLLMRequest(_ context.Context, ev store.LLMRequestEventData) error {
	r.events = append(r.events, ev)
	return r.err
}

func TestLogging_RecordsSuccess(t *testing.T) {
	events := &recordingEvents{}
	mock := NewMockProvider(MockResponse{
		Content: json.RawMessage(`{"correct":true,"explanation":"ok"}`),
		Usage:   Usage{InputTokens: 12, OutputTokens: 7},
	})
	p := WithLogging(mock, ProviderMock, events, nil)

	ctx := WithPurpose(context.Background(), "grammar-check")
	if _, err := p.Generate(ctx, Prompt("sys", "我是学生。", verdictSchema)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events.events) != 1 {
		t.Fatalf("events = %d", len(events.events))
	}
	ev := events.events[0]
	if !ev.Success || ev.Purpose != "grammar-check" || ev.Provider != ProviderMock {
		t.Fatalf("event = %+v", ev)
	}
	if ev.InputTokens != 12 || ev.OutputTokens != 7 {
		t.Fatalf("tokens = %d/%d", ev.InputTokens, ev.OutputTokens)
	}
	for _, want := range []string{"[system]", "我是学生。", "[schema test-verdict]"} {
		if !strings.Contains(ev.RequestBody, want) {
			t.Errorf("request body missing %q:\n%s", want, ev.RequestBody)
		}
	}
}

func TestLogging_RecordsFailure(t *testing.T) {
	events := &recordingEvents{}
	mock := NewMockProvider(MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}})
	p := WithLogging(mock, ProviderMock, events, nil)

	if _, err := p.Generate(context.Background(), Prompt("", "hi", nil)); err == nil {
		t.Fatal("expected error")
	}
	ev := events.events[0]
	if ev.Success || !strings.Contains(ev.ErrorMessage, "down") {
		t.Fatalf("event = %+v", ev)
	}
	if ev.Model != "mock" {
		t.Fatalf("model = %q", ev.Model)
	}
}

func TestLogging_StoreErrorDoesNotFailCall(t *testing.T) {
	events := &recordingEvents{err: errors.New("disk full")}
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)})
	p := WithLogging(mock, ProviderMock, events, nil)

	if _, err := p.Generate(context.Background(), Prompt("", "hi", nil)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLogging_NilEvents(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)})
	p := WithLogging(mock, ProviderMock, nil, nil)
	if _, err := p.Generate(context.Background(), Prompt("", "hi", nil)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
