package session

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/abhisek/hanzidrill/internal/dataset"
	"github.com/abhisek/hanzidrill/internal/quiz"
)

func testRecords() []dataset.Record {
	return []dataset.Record{
		{Term: "你好", Pronunciation: "nǐ hǎo", Meaning: "xin chào"},
		{Term: "谢谢", Pronunciation: "xièxie", Meaning: "cảm ơn"},
		{Term: "再见", Pronunciation: "zàijiàn", Meaning: "tạm biệt"},
		{Term: "水", Pronunciation: "shuǐ", Meaning: "nước"},
		{Term: "火", Pronunciation: "huǒ"},
		{Term: "山"},
	}
}

func newTestSession(t *testing.T, mode Mode) *Session {
	t.Helper()
	s := New(mode, rand.New(rand.NewPCG(1, 1)))
	if err := s.Load(testRecords()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return s
}

func wrongChoice(q *Question) string {
	for _, c := range q.Available() {
		if c != q.Answer {
			return c
		}
	}
	return ""
}

func TestLoad(t *testing.T) {
	s := newTestSession(t, ModeQuiz)
	if s.Phase() != PhaseReady {
		t.Errorf("phase = %s, want ready", s.Phase())
	}
	if s.Len() != 5 {
		t.Errorf("Len = %d, want 5 (record without pronunciation filtered)", s.Len())
	}
	if s.LastIndex() != -1 {
		t.Errorf("LastIndex = %d, want -1", s.LastIndex())
	}
}

func TestLoad_Empty(t *testing.T) {
	s := New(ModeQuiz, nil)
	err := s.Load([]dataset.Record{{Term: "山"}})
	if !errors.Is(err, ErrEmptyDataset) {
		t.Errorf("err = %v, want ErrEmptyDataset", err)
	}
	if s.Phase() != PhaseIdle {
		t.Errorf("phase = %s, want idle", s.Phase())
	}
	if _, err := s.RenderNext(); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("RenderNext err = %v, want ErrInvalidTransition", err)
	}
}

func TestSubmit_WrongThenRight(t *testing.T) {
	s := newTestSession(t, ModeQuiz)
	q, err := s.RenderNext()
	if err != nil {
		t.Fatal(err)
	}
	if s.Phase() != PhaseAwaitingAnswer {
		t.Fatalf("phase = %s", s.Phase())
	}
	if len(q.Choices) != quiz.ChoiceCount {
		t.Fatalf("choices = %q", q.Choices)
	}
	if q.Prompt != q.Record.Term || q.Answer != q.Record.Pronunciation {
		t.Errorf("quiz mode prompt/answer = %q/%q", q.Prompt, q.Answer)
	}

	wrong := wrongChoice(q)
	ok, err := s.Submit(wrong)
	if err != nil || ok {
		t.Fatalf("Submit(wrong) = %v, %v", ok, err)
	}
	if q.Attempts != 1 || !q.Disabled(wrong) {
		t.Errorf("attempts = %d, disabled = %v", q.Attempts, q.Disabled(wrong))
	}
	if s.Phase() != PhaseAwaitingAnswer {
		t.Errorf("phase after wrong = %s", s.Phase())
	}
	if _, err := s.Submit(wrong); !errors.Is(err, ErrChoiceDisabled) {
		t.Errorf("resubmit err = %v, want ErrChoiceDisabled", err)
	}
	if len(q.Available()) != quiz.ChoiceCount-1 {
		t.Errorf("available = %q", q.Available())
	}

	ok, err = s.Submit(q.Answer)
	if err != nil || !ok {
		t.Fatalf("Submit(correct) = %v, %v", ok, err)
	}
	if s.Phase() != PhaseAnswered {
		t.Errorf("phase = %s, want answered", s.Phase())
	}
	if c, n := s.Score(); c != 1 || n != 1 {
		t.Errorf("score = %d/%d, want 1/1", c, n)
	}
	if s.LastIndex() != q.Index {
		t.Errorf("LastIndex = %d, want %d", s.LastIndex(), q.Index)
	}
	if _, err := s.Submit(q.Answer); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("submit after answered err = %v", err)
	}
}

func TestAttempts(t *testing.T) {
	s := newTestSession(t, ModeQuiz)
	if n := s.Attempts(); n != 0 {
		t.Fatalf("attempts before render = %d", n)
	}
	q, err := s.RenderNext()
	if err != nil {
		t.Fatal(err)
	}
	if ok, err := s.Submit(wrongChoice(q)); err != nil || ok {
		t.Fatalf("Submit(wrong) = %v, %v", ok, err)
	}
	if n := s.Attempts(); n != 1 {
		t.Errorf("attempts after one miss = %d, want 1", n)
	}
	if _, err := s.Submit(q.Answer); err != nil {
		t.Fatal(err)
	}
	if _, err := s.RenderNext(); err != nil {
		t.Fatal(err)
	}
	if n := s.Attempts(); n != 0 {
		t.Errorf("attempts on the next question = %d, want 0", n)
	}
}

func TestSubmit_UnknownChoice(t *testing.T) {
	s := newTestSession(t, ModeQuiz)
	if _, err := s.RenderNext(); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Submit("not offered"); !errors.Is(err, ErrUnknownChoice) {
		t.Errorf("err = %v, want ErrUnknownChoice", err)
	}
}

func TestRenderNext_NeverRepeatsConsecutively(t *testing.T) {
	s := newTestSession(t, ModeQuiz)
	prev := -1
	for range 300 {
		q, err := s.RenderNext()
		if err != nil {
			t.Fatal(err)
		}
		if q.Index == prev {
			t.Fatalf("record %d asked twice in a row", q.Index)
		}
		prev = q.Index
		if _, err := s.Submit(q.Answer); err != nil {
			t.Fatal(err)
		}
	}
	if c, n := s.Score(); c != 300 || n != 300 {
		t.Errorf("score = %d/%d", c, n)
	}
}

func TestRenderNext_InvalidWhileAwaiting(t *testing.T) {
	s := newTestSession(t, ModeQuiz)
	if _, err := s.RenderNext(); err != nil {
		t.Fatal(err)
	}
	if _, err := s.RenderNext(); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("err = %v, want ErrInvalidTransition", err)
	}
}

func TestRenderNext_InsufficientDistractors(t *testing.T) {
	s := New(ModeQuiz, nil)
	err := s.Load([]dataset.Record{
		{Term: "a", Pronunciation: "x"},
		{Term: "b", Pronunciation: "y"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.RenderNext(); !errors.Is(err, quiz.ErrInsufficientDistractors) {
		t.Errorf("err = %v, want ErrInsufficientDistractors", err)
	}
	if s.Phase() != PhaseReady {
		t.Errorf("phase = %s, want ready", s.Phase())
	}
}

func TestSkip(t *testing.T) {
	s := newTestSession(t, ModeQuiz)
	q1, err := s.RenderNext()
	if err != nil {
		t.Fatal(err)
	}
	q2, err := s.Skip()
	if err != nil {
		t.Fatal(err)
	}
	if q2.Index == q1.Index {
		t.Error("skip returned the same record")
	}
	if c, n := s.Score(); c != 0 || n != 0 {
		t.Errorf("skip changed score to %d/%d", c, n)
	}
}

func TestEasyMode(t *testing.T) {
	s := newTestSession(t, ModeEasy)
	if s.Len() != 4 {
		t.Errorf("Len = %d, want 4 records with meaning", s.Len())
	}
	q, err := s.RenderNext()
	if err != nil {
		t.Fatal(err)
	}
	if q.Prompt != q.Record.Meaning || q.Answer != q.Record.Term {
		t.Errorf("easy prompt/answer = %q/%q", q.Prompt, q.Answer)
	}
	found := false
	for _, c := range q.Choices {
		if c == q.Record.Term {
			found = true
		}
	}
	if !found {
		t.Errorf("choices %q missing term %q", q.Choices, q.Record.Term)
	}
}

func TestHardMode_RequiresMeaning(t *testing.T) {
	s := newTestSession(t, ModeHard)
	if s.Len() != 4 {
		t.Errorf("Len = %d, want 4 records with meaning", s.Len())
	}
	for _, r := range s.records {
		if r.Meaning == "" {
			t.Errorf("record %q has no meaning to prompt with", r.Term)
		}
	}
	q, err := s.RenderNext()
	if err != nil {
		t.Fatal(err)
	}
	if q.Prompt != q.Record.Meaning || q.Secondary != q.Record.Pronunciation {
		t.Errorf("hard prompt = %q / %q", q.Prompt, q.Secondary)
	}
}

func TestHardMode_PartsRetained(t *testing.T) {
	s := newTestSession(t, ModeHard)
	q, err := s.RenderNext()
	if err != nil {
		t.Fatal(err)
	}
	if q.Choices != nil {
		t.Errorf("hard mode should not offer choices")
	}
	if _, err := s.Submit("x"); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Submit in hard mode err = %v", err)
	}

	ok, err := s.SubmitTerm(" " + q.Record.Term + "。")
	if err != nil || !ok {
		t.Fatalf("SubmitTerm = %v, %v", ok, err)
	}
	if s.Phase() != PhaseAwaitingAnswer {
		t.Fatalf("answered with only one part")
	}

	done, err := s.SubmitPart(PartSentence, false)
	if err != nil || done {
		t.Fatalf("SubmitPart(sentence, false) = %v, %v", done, err)
	}
	if q.Attempts != 1 {
		t.Errorf("attempts = %d, want 1", q.Attempts)
	}
	if !q.PartDone(PartTerm) {
		t.Error("term part lost after failed sentence")
	}

	// A later wrong term does not undo the accepted one.
	if ok, _ := s.SubmitTerm("wrong"); ok {
		t.Error("wrong term accepted")
	}
	if !q.PartDone(PartTerm) {
		t.Error("term part reset by wrong retry")
	}

	done, err = s.SubmitPart(PartSentence, true)
	if err != nil || !done {
		t.Fatalf("SubmitPart(sentence, true) = %v, %v", done, err)
	}
	if s.Phase() != PhaseAnswered {
		t.Errorf("phase = %s", s.Phase())
	}
}

func TestSetMode_Resets(t *testing.T) {
	s := newTestSession(t, ModeQuiz)
	q, _ := s.RenderNext()
	_, _ = s.Submit(q.Answer)

	if err := s.SetMode(ModeTranslation); err != nil {
		t.Fatal(err)
	}
	if c, n := s.Score(); c != 0 || n != 0 {
		t.Errorf("score = %d/%d after mode switch", c, n)
	}
	if s.Phase() != PhaseReady || s.Current() != nil || s.LastIndex() != -1 {
		t.Errorf("state not reset: phase=%s last=%d", s.Phase(), s.LastIndex())
	}
	if s.Mode() != ModeTranslation {
		t.Errorf("mode = %s", s.Mode())
	}
}

func TestParseMode(t *testing.T) {
	for m, name := range modeNames {
		got, err := ParseMode(name)
		if err != nil || got != m {
			t.Errorf("ParseMode(%q) = %v, %v", name, got, err)
		}
	}
	if _, err := ParseMode("expert"); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestSummary(t *testing.T) {
	s := newTestSession(t, ModeQuiz)
	q, _ := s.RenderNext()
	_, _ = s.Submit(q.Answer)

	sum := s.Summary()
	if sum.Correct != 1 || sum.Total != 1 || sum.Accuracy() != 1 {
		t.Errorf("summary = %+v", sum)
	}
	if (Summary{}).Accuracy() != 0 {
		t.Error("empty summary accuracy should be 0")
	}
}
