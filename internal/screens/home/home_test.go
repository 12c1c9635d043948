package home

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/hanzidrill/internal/dataset"
	"github.com/abhisek/hanzidrill/internal/grammarcheck"
	"github.com/abhisek/hanzidrill/internal/router"
	"github.com/abhisek/hanzidrill/internal/screens/dashboard"
	"github.com/abhisek/hanzidrill/internal/screens/notes"
	"github.com/abhisek/hanzidrill/internal/screens/placeholder"
	sessionscreen "github.com/abhisek/hanzidrill/internal/screens/session"
	"github.com/abhisek/hanzidrill/internal/screens/speaking"
	"github.com/abhisek/hanzidrill/internal/store"
)

type countingRepo struct {
	n int
}

func (r *countingRepo) Append(context.Context, *store.Submission) error { return nil }
func (r *countingRepo) Latest(context.Context, int) ([]store.Submission, error) {
	return nil, nil
}
func (r *countingRepo) Since(context.Context, int64) ([]store.Submission, error) {
	return nil, nil
}
func (r *countingRepo) Count(context.Context) (int, error) { return r.n, nil }
func (r *countingRepo) Watch(context.Context, int64, time.Duration) (<-chan store.Submission, <-chan error) {
	return nil, nil
}

type noSource struct{}

func (noSource) Fetch(context.Context, string) ([]byte, error) {
	return nil, errors.New("offline")
}

func testDeps(repo store.SubmissionRepo) Deps {
	return Deps{
		Catalog:     dataset.DefaultCatalog(),
		Source:      noSource{},
		Checker:     grammarcheck.New(nil, grammarcheck.DefaultConfig(), nil),
		Submissions: repo,
	}
}

// pushed runs cmd and returns the screen it pushes.
func pushed(t *testing.T, cmd tea.Cmd) any {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg")
	}
	return msg.Screen
}

func TestDeps_OpenByKind(t *testing.T) {
	d := testDeps(nil)
	cases := []struct {
		entry dataset.Entry
		check func(any) bool
	}{
		{dataset.Entry{Path: "tu-moi.csv"}, func(s any) bool { _, ok := s.(*sessionscreen.SessionScreen); return ok }},
		{dataset.Entry{Path: "onhsk3.txt"}, func(s any) bool { _, ok := s.(*speaking.SpeakingScreen); return ok }},
		{dataset.Entry{Path: "dich.txt"}, func(s any) bool { _, ok := s.(*speaking.SpeakingScreen); return ok }},
		{dataset.Entry{Path: "x.txt", Kind: dataset.KindGrammar}, func(s any) bool { _, ok := s.(*notes.NotesScreen); return ok }},
	}
	for _, tc := range cases {
		if s := d.Open(tc.entry); !tc.check(s) {
			t.Errorf("Open(%q) returned %T", tc.entry.Path, s)
		}
	}
}

func TestDeps_Dashboard(t *testing.T) {
	if _, ok := testDeps(nil).Dashboard().(*placeholder.PlaceholderScreen); !ok {
		t.Error("expected notice without a store")
	}
	if _, ok := testDeps(&countingRepo{}).Dashboard().(*dashboard.DashboardScreen); !ok {
		t.Error("expected dashboard with a store")
	}
}

func TestHome_MenuOpensEntry(t *testing.T) {
	h := New(testDeps(nil))
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if _, ok := pushed(t, cmd).(*sessionscreen.SessionScreen); !ok {
		t.Error("first catalog entry is a vocabulary list")
	}

	h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	_, cmd = h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if _, ok := pushed(t, cmd).(*speaking.SpeakingScreen); !ok {
		t.Error("second catalog entry is a speaking list")
	}
}

func TestHome_QuizKey(t *testing.T) {
	h := New(testDeps(nil))
	h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	_, cmd := h.Update(tea.KeyPressMsg{Code: 'q', Text: "q"})
	if _, ok := pushed(t, cmd).(*sessionscreen.SessionScreen); !ok {
		t.Error("q should open a quiz over the speaking list")
	}

	for range 2 {
		h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	}
	if e, _ := h.selectedEntry(); e.Kind != dataset.KindGrammar {
		t.Fatalf("expected a grammar entry, got %q", e.Kind)
	}
	if _, cmd := h.Update(tea.KeyPressMsg{Code: 'q', Text: "q"}); cmd != nil {
		t.Error("grammar notes have no quiz")
	}
}

func TestHome_TrailingItems(t *testing.T) {
	h := New(testDeps(nil))
	n := len(h.menu.Items)
	if h.menu.Items[n-2].Label != "Bảng điều khiển" || h.menu.Items[n-1].Label != "Thoát" {
		t.Fatalf("unexpected trailing items: %q, %q", h.menu.Items[n-2].Label, h.menu.Items[n-1].Label)
	}
	if _, ok := h.selectedEntry(); !ok {
		t.Error("first item should be a catalog entry")
	}
	h.menu.Selected = n - 1
	if _, ok := h.selectedEntry(); ok {
		t.Error("exit is not a catalog entry")
	}
}

func TestHome_SubmissionCount(t *testing.T) {
	h := New(testDeps(&countingRepo{n: 7}))
	h.Update(h.Init()())
	if h.submissions != 7 {
		t.Fatalf("submissions = %d", h.submissions)
	}
	view := h.View(100, 30)
	if !strings.Contains(view, "7 bài nộp") {
		t.Error("count missing from stats bar")
	}
	if !strings.Contains(view, "Chưa cấu hình LLM") {
		t.Error("offline checker banner missing")
	}

	if New(testDeps(nil)).Init() != nil {
		t.Error("no count without a store")
	}
}

func TestHome_CompactTitle(t *testing.T) {
	h := New(testDeps(nil))
	if view := h.View(80, 30); !strings.Contains(view, "汉字 · DRILL") {
		t.Error("narrow terminal should use the one-line title")
	}
	view := h.View(120, 30)
	if strings.Contains(view, "汉字 · DRILL") || !strings.Contains(view, "H A N Z I") {
		t.Error("wide terminal should use the full title")
	}
}
