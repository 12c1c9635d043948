package session

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/hanzidrill/internal/dataset"
	"github.com/abhisek/hanzidrill/internal/router"
	"github.com/abhisek/hanzidrill/internal/screens/summary"
	sess "github.com/abhisek/hanzidrill/internal/session"
	"github.com/abhisek/hanzidrill/internal/store"
)

const vocabCSV = "Từ mới,Phiên âm,Giải thích\n" +
	"学习,xuéxí,học tập\n" +
	"朋友,péngyou,bạn bè\n" +
	"喜欢,xǐhuan,thích\n" +
	"工作,gōngzuò,công việc\n" +
	"时间,shíjiān,thời gian\n"

type mapSource map[string]string

func (m mapSource) Fetch(_ context.Context, path string) ([]byte, error) {
	data, ok := m[path]
	if !ok {
		return nil, errors.New("not found: " + path)
	}
	return []byte(data), nil
}

// mockSubmissions implements store.SubmissionRepo for testing.
type mockSubmissions struct {
	subs []store.Submission
}

func (m *mockSubmissions) Append(_ context.Context, sub *store.Submission) error {
	sub.ID = int64(len(m.subs) + 1)
	m.subs = append(m.subs, *sub)
	return nil
}
func (m *mockSubmissions) Latest(_ context.Context, _ int) ([]store.Submission, error) {
	return m.subs, nil
}
func (m *mockSubmissions) Since(_ context.Context, _ int64) ([]store.Submission, error) {
	return nil, nil
}
func (m *mockSubmissions) Count(_ context.Context) (int, error) { return len(m.subs), nil }
func (m *mockSubmissions) Watch(_ context.Context, _ int64, _ time.Duration) (<-chan store.Submission, <-chan error) {
	return nil, nil
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func ctrlKey(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Mod: tea.ModCtrl}
}

func testScreen(t *testing.T, mode sess.Mode, csv string) (*SessionScreen, *mockSubmissions) {
	t.Helper()
	subs := &mockSubmissions{}
	s := New(Config{
		Entry:       dataset.Entry{Name: "Từ mới", Path: "vocab.csv", Kind: dataset.KindTabular},
		Mode:        mode,
		Source:      mapSource{"vocab.csv": csv},
		Submissions: subs,
		Rand:        rand.New(rand.NewPCG(1, 2)),
	})
	s.Update(s.Init()())
	return s, subs
}

// choiceIndex returns the 1-based position of want, or of the first option
// that is not want when wrong is set.
func choiceIndex(t *testing.T, s *SessionScreen, wrong bool) rune {
	t.Helper()
	q := s.state.Current()
	for i, c := range s.mc.Options {
		if (c == q.Answer) != wrong {
			return rune('1' + i)
		}
	}
	t.Fatal("no matching option")
	return 0
}

func TestSessionScreen_LoadShowsQuestion(t *testing.T) {
	s, _ := testScreen(t, sess.ModeQuiz, vocabCSV)

	if s.loading || s.errMsg != "" || s.notice != "" {
		t.Fatalf("loading=%v err=%q notice=%q", s.loading, s.errMsg, s.notice)
	}
	if s.state.Phase() != sess.PhaseAwaitingAnswer {
		t.Fatalf("phase = %s", s.state.Phase())
	}
	if len(s.mc.Options) != 4 {
		t.Fatalf("options = %v", s.mc.Options)
	}
	if s.Title() != "Từ mới" {
		t.Errorf("Title = %q", s.Title())
	}
	if s.View(80, 24) == "" {
		t.Error("expected non-empty view")
	}
}

func TestSessionScreen_StaleLoadDropped(t *testing.T) {
	s, _ := testScreen(t, sess.ModeQuiz, vocabCSV)
	stale := s.tracker.Begin()
	s.load()

	s.Update(datasetLoadedMsg{Gen: stale, Err: errors.New("slow fetch")})
	if s.errMsg != "" {
		t.Fatalf("stale load result was applied: %q", s.errMsg)
	}
	if !s.loading {
		t.Fatal("newer load should still be pending")
	}
}

func TestSessionScreen_WrongThenRightChoice(t *testing.T) {
	s, _ := testScreen(t, sess.ModeQuiz, vocabCSV)

	s.Update(keyPress(choiceIndex(t, s, true)))
	if got := s.state.Current().Attempts; got != 1 {
		t.Fatalf("attempts = %d, want 1", got)
	}
	if s.state.Phase() != sess.PhaseAwaitingAnswer {
		t.Fatalf("phase after wrong choice = %s", s.state.Phase())
	}

	s.Update(keyPress(choiceIndex(t, s, false)))
	if s.state.Phase() != sess.PhaseAnswered {
		t.Fatalf("phase after right choice = %s", s.state.Phase())
	}
	if c, n := s.state.Score(); c != 1 || n != 1 {
		t.Fatalf("score = %d/%d", c, n)
	}
	if s.firstTry != 0 {
		t.Errorf("firstTry = %d, want 0", s.firstTry)
	}

	prev := s.state.Current().Index
	s.Update(specialKey(tea.KeyEnter))
	if s.state.Phase() != sess.PhaseAwaitingAnswer {
		t.Fatalf("phase after Enter = %s", s.state.Phase())
	}
	if s.state.Current().Index == prev {
		t.Fatal("next question repeated the previous record")
	}
	if s.state.Current().Attempts != 0 {
		t.Fatal("attempts not reset on the next question")
	}
}

func TestSessionScreen_Skip(t *testing.T) {
	s, _ := testScreen(t, sess.ModeQuiz, vocabCSV)
	prev := s.state.Current().Index

	s.Update(ctrlKey('n'))
	if s.skipped != 1 {
		t.Fatalf("skipped = %d", s.skipped)
	}
	if s.state.Current().Index == prev {
		t.Fatal("skip showed the same record")
	}
	if _, n := s.state.Score(); n != 0 {
		t.Fatalf("skip scored the question: total = %d", n)
	}
}

func TestSessionScreen_HardModeParts(t *testing.T) {
	s, subs := testScreen(t, sess.ModeHard, vocabCSV)
	q := s.state.Current()

	s.input.Model.SetValue("不对")
	s.Update(specialKey(tea.KeyEnter))
	if s.part != sess.PartTerm || q.Attempts != 1 {
		t.Fatalf("part = %s attempts = %d after wrong term", s.part, q.Attempts)
	}

	s.input.Model.SetValue(q.Record.Term)
	s.Update(specialKey(tea.KeyEnter))
	if s.part != sess.PartSentence {
		t.Fatalf("part = %s after right term", s.part)
	}

	s.input.Model.SetValue("我们都很好。")
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	if !s.checking || cmd == nil {
		t.Fatal("expected a sentence check to start")
	}
	s.Update(cmd())
	if s.state.Phase() != sess.PhaseAwaitingAnswer {
		t.Fatal("sentence without the term must not answer the question")
	}
	if !q.PartDone(sess.PartTerm) {
		t.Fatal("accepted term part was lost")
	}

	s.input.Model.SetValue("我们一起" + q.Record.Term + "。")
	_, cmd = s.Update(specialKey(tea.KeyEnter))
	s.Update(cmd())
	if s.state.Phase() != sess.PhaseAnswered {
		t.Fatalf("phase = %s, want answered", s.state.Phase())
	}

	if len(subs.subs) != 2 {
		t.Fatalf("submissions = %d, want 2", len(subs.subs))
	}
	last := subs.subs[1]
	if !last.Correct || last.Mode != "hard" || last.Dataset != "Từ mới" || last.Prompt != q.Prompt {
		t.Errorf("submission = %+v", last)
	}
	if subs.subs[0].SessionID != last.SessionID || last.SessionID == "" {
		t.Error("submissions of one session must share a session ID")
	}
}

func TestSessionScreen_StaleCheckDropped(t *testing.T) {
	s, _ := testScreen(t, sess.ModeHard, vocabCSV)
	s.checking = true
	s.Update(checkDoneMsg{Seq: s.qseq - 1, Err: errors.New("late")})
	if !s.checking || s.feedback.text != "" {
		t.Fatal("result for an earlier question was applied")
	}
}

func TestSessionScreen_InsufficientDistractors(t *testing.T) {
	csv := "Từ mới,Phiên âm,Giải thích\n你,nǐ,bạn\n好,hǎo,tốt\n"
	s, _ := testScreen(t, sess.ModeQuiz, csv)
	if s.notice == "" {
		t.Fatal("expected a notice for a two-record quiz")
	}

	s.Update(specialKey(tea.KeyTab)) // easy
	if s.notice == "" {
		t.Fatal("expected a notice in easy mode")
	}
	s.Update(specialKey(tea.KeyTab)) // hard
	if s.notice != "" || s.state.Current() == nil {
		t.Fatalf("hard mode should not need distractors: %q", s.notice)
	}
	if s.state.Mode() != sess.ModeHard {
		t.Fatalf("mode = %s", s.state.Mode())
	}
}

func TestSessionScreen_EmptyDataset(t *testing.T) {
	s, _ := testScreen(t, sess.ModeQuiz, "Từ mới,Phiên âm\n")
	if s.notice == "" {
		t.Fatal("expected a no-data notice")
	}
	if s.state.Phase() != sess.PhaseIdle {
		t.Fatalf("phase = %s", s.state.Phase())
	}
}

func TestSessionScreen_LoadErrorGoesBack(t *testing.T) {
	s := New(Config{
		Entry:  dataset.Entry{Name: "x", Path: "missing.csv", Kind: dataset.KindTabular},
		Source: mapSource{},
	})
	s.Update(s.Init()())
	if s.errMsg == "" {
		t.Fatal("expected an error")
	}
	_, cmd := s.Update(keyPress('x'))
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Fatal("expected PopScreenMsg")
	}
}

func TestSessionScreen_FinishReplacesWithSummary(t *testing.T) {
	s, subs := testScreen(t, sess.ModeQuiz, vocabCSV)
	s.Update(keyPress(choiceIndex(t, s, false)))

	_, cmd := s.Update(ctrlKey('e'))
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatal("expected ReplaceScreenMsg")
	}
	if _, ok := msg.Screen.(*summary.SummaryScreen); !ok {
		t.Fatalf("replaced with %T", msg.Screen)
	}

	if len(subs.subs) != 1 || !subs.subs[0].IsSessionSummary() {
		t.Fatalf("submissions = %+v", subs.subs)
	}
	if subs.subs[0].Score != 1 || subs.subs[0].Total != 1 {
		t.Errorf("summary = %+v", subs.subs[0])
	}

	s.Leave()
	if len(subs.subs) != 1 {
		t.Fatal("Leave after finish stored the summary twice")
	}
}

func TestSessionScreen_LeaveStoresSummary(t *testing.T) {
	s, subs := testScreen(t, sess.ModeQuiz, vocabCSV)
	s.Leave()
	if len(subs.subs) != 0 {
		t.Fatal("a session with no answers must not be stored")
	}

	s, subs = testScreen(t, sess.ModeQuiz, vocabCSV)
	s.Update(keyPress(choiceIndex(t, s, false)))
	s.Leave()
	if len(subs.subs) != 1 {
		t.Fatalf("submissions = %d, want 1", len(subs.subs))
	}
}

func TestSessionScreen_ModeSwitchFlushes(t *testing.T) {
	s, subs := testScreen(t, sess.ModeQuiz, vocabCSV)
	s.Update(keyPress(choiceIndex(t, s, false)))
	first := s.sessionID

	s.Update(specialKey(tea.KeyTab))
	if s.state.Mode() != sess.ModeEasy {
		t.Fatalf("mode = %s", s.state.Mode())
	}
	if c, n := s.state.Score(); c != 0 || n != 0 {
		t.Fatalf("score not reset: %d/%d", c, n)
	}
	if len(subs.subs) != 1 || subs.subs[0].SessionID != first {
		t.Fatalf("submissions = %+v", subs.subs)
	}
	if s.sessionID == first {
		t.Fatal("expected a new session ID after switching mode")
	}
}

func TestSessionScreen_StatusAndHints(t *testing.T) {
	s, _ := testScreen(t, sess.ModeQuiz, vocabCSV)
	if got := s.Status(); got == "" {
		t.Fatal("empty status")
	}
	if len(s.KeyHints()) != 5 {
		t.Fatalf("choice hints = %d, want 5", len(s.KeyHints()))
	}
	s.Update(keyPress(choiceIndex(t, s, false)))
	if len(s.KeyHints()) != 3 {
		t.Fatalf("answered hints = %d, want 3", len(s.KeyHints()))
	}
}
