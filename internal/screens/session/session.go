package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/hanzidrill/internal/dataset"
	"github.com/abhisek/hanzidrill/internal/grammarcheck"
	"github.com/abhisek/hanzidrill/internal/quiz"
	"github.com/abhisek/hanzidrill/internal/router"
	"github.com/abhisek/hanzidrill/internal/screen"
	sess "github.com/abhisek/hanzidrill/internal/session"
	"github.com/abhisek/hanzidrill/internal/store"
	"github.com/abhisek/hanzidrill/internal/ui/components"
	"github.com/abhisek/hanzidrill/internal/ui/layout"

	"github.com/google/uuid"
)

// modeOrder is the Tab cycle.
var modeOrder = []sess.Mode{sess.ModeQuiz, sess.ModeEasy, sess.ModeHard, sess.ModeTranslation}

// Config wires a quiz screen to one catalog entry.
type Config struct {
	Entry   dataset.Entry
	Mode    sess.Mode
	Source  dataset.Source
	Checker grammarcheck.Checker

	// Submissions is optional; without it nothing is persisted.
	Submissions store.SubmissionRepo
	Logger      *slog.Logger
	Rand        quiz.Rand
}

type feedback struct {
	text   string
	ok     bool
	detail string
}

// SessionScreen runs a quiz over one dataset.
type SessionScreen struct {
	cfg       Config
	state     *sess.Session
	tracker   sess.LoadTracker
	loading   bool
	report    dataset.Report
	sessionID string

	errMsg string // load failure, any key goes back
	notice string // no question can be shown in this mode

	mc       components.MultiChoice
	input    components.TextInput
	part     sess.Part
	feedback feedback
	checking bool
	qseq     int

	firstTry int
	skipped  int
	closed   bool
}

var _ screen.Screen = (*SessionScreen)(nil)
var _ screen.KeyHintProvider = (*SessionScreen)(nil)
var _ screen.StatusProvider = (*SessionScreen)(nil)
var _ screen.Leaver = (*SessionScreen)(nil)

// New creates a SessionScreen. A nil Checker checks sentences locally.
func New(cfg Config) *SessionScreen {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Checker == nil {
		cfg.Checker = grammarcheck.New(nil, grammarcheck.DefaultConfig(), cfg.Logger)
	}
	return &SessionScreen{
		cfg:       cfg,
		state:     sess.New(cfg.Mode, cfg.Rand),
		sessionID: uuid.NewString(),
	}
}

func (s *SessionScreen) Init() tea.Cmd {
	return s.load()
}

func (s *SessionScreen) Title() string {
	return s.cfg.Entry.Name
}

// Status shows the mode and running score.
func (s *SessionScreen) Status() string {
	correct, total := s.state.Score()
	return fmt.Sprintf("%s  ✓ %d/%d  ", modeLabel(s.state.Mode()), correct, total)
}

func (s *SessionScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.errMsg != "":
		return []layout.KeyHint{{Key: "phím bất kỳ", Description: "Quay lại"}}
	case s.loading:
		return []layout.KeyHint{{Key: "Esc", Description: "Quay lại"}}
	case s.notice != "":
		return []layout.KeyHint{
			{Key: "Tab", Description: "Đổi chế độ"},
			{Key: "Ctrl+R", Description: "Tải lại"},
			{Key: "Esc", Description: "Quay lại"},
		}
	case s.state.Phase() == sess.PhaseAnswered:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Câu tiếp"},
			{Key: "Tab", Description: "Đổi chế độ"},
			{Key: "Ctrl+E", Description: "Kết thúc"},
		}
	case s.state.Mode().HasChoices():
		return []layout.KeyHint{
			{Key: "1-4", Description: "Chọn"},
			{Key: "↑↓", Description: "Di chuyển"},
			{Key: "Ctrl+N", Description: "Bỏ qua"},
			{Key: "Tab", Description: "Đổi chế độ"},
			{Key: "Ctrl+E", Description: "Kết thúc"},
		}
	default:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Gửi"},
			{Key: "Ctrl+N", Description: "Bỏ qua"},
			{Key: "Tab", Description: "Đổi chế độ"},
			{Key: "Ctrl+E", Description: "Kết thúc"},
		}
	}
}

func (s *SessionScreen) View(width, height int) string {
	switch {
	case s.errMsg != "":
		return renderError(width, s.errMsg)
	case s.loading:
		return renderLoading(width)
	case s.notice != "":
		return s.renderNotice(width)
	}
	return s.renderQuestionView(width)
}

func (s *SessionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case datasetLoadedMsg:
		return s.handleLoaded(msg)

	case checkDoneMsg:
		return s.handleCheckDone(msg)

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.writing() {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

// Leave persists the session summary when the screen is popped.
func (s *SessionScreen) Leave() tea.Cmd {
	if !s.closed {
		s.flush()
		s.closed = true
	}
	return nil
}

// load fetches the dataset in the background. Results of earlier loads
// that arrive later are dropped.
func (s *SessionScreen) load() tea.Cmd {
	gen := s.tracker.Begin()
	s.loading = true
	s.errMsg = ""
	entry, src := s.cfg.Entry, s.cfg.Source
	return func() tea.Msg {
		ds, err := dataset.Load(context.Background(), src, entry)
		return datasetLoadedMsg{Gen: gen, Dataset: ds, Err: err}
	}
}

func (s *SessionScreen) handleLoaded(msg datasetLoadedMsg) (screen.Screen, tea.Cmd) {
	if !s.tracker.IsCurrent(msg.Gen) {
		return s, nil
	}
	s.loading = false
	if msg.Err != nil {
		s.cfg.Logger.Error("load dataset", "dataset", s.cfg.Entry.Name, "err", msg.Err)
		s.errMsg = msg.Err.Error()
		return s, nil
	}

	s.report = msg.Dataset.Report
	s.cfg.Logger.Info("dataset loaded",
		"dataset", s.cfg.Entry.Name,
		"parsed", s.report.Parsed,
		"dropped", s.report.Dropped)

	s.notice = ""
	if err := s.state.Load(msg.Dataset.Records); err != nil {
		s.notice = noticeFor(err)
		return s, nil
	}
	return s, s.next()
}

func (s *SessionScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	if s.loading {
		return s, nil
	}

	switch key {
	case "tab":
		return s, s.cycleMode()
	case "ctrl+r":
		if s.checking {
			return s, nil
		}
		s.flush()
		return s, s.load()
	case "ctrl+e":
		return s, s.finish()
	case "ctrl+n":
		return s, s.skip()
	}

	switch s.state.Phase() {
	case sess.PhaseAnswered:
		if key == "enter" || key == "space" {
			return s, s.next()
		}
	case sess.PhaseAwaitingAnswer:
		if s.state.Mode().HasChoices() {
			return s.handleChoiceKey(msg)
		}
		return s.handleWrittenKey(msg)
	}
	return s, nil
}

func (s *SessionScreen) handleChoiceKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	var chosen bool
	s.mc, chosen = s.mc.Update(msg)
	if !chosen {
		return s, nil
	}
	choice, _ := s.mc.Current()
	q := s.state.Current()

	ok, err := s.state.Submit(choice)
	if err != nil {
		s.cfg.Logger.Warn("submit choice", "choice", choice, "err", err)
		return s, nil
	}
	if !ok {
		s.mc.Disable(s.mc.Selected)
		s.feedback = feedback{text: "Chưa đúng, thử lại nhé."}
		return s, nil
	}

	s.mc.Reveal(s.mc.Selected)
	s.scored(q)
	s.feedback = feedback{ok: true, text: "Chính xác!", detail: answerDetail(q)}
	return s, nil
}

func (s *SessionScreen) handleWrittenKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.checking {
		return s, nil
	}
	if msg.String() != "enter" {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}

	text := strings.TrimSpace(s.input.Value())
	if text == "" {
		return s, nil
	}

	if s.part == sess.PartSentence {
		s.checking = true
		s.feedback = feedback{text: "Đang kiểm tra câu..."}
		return s, s.check(text)
	}

	ok, err := s.state.SubmitTerm(text)
	if err != nil {
		s.cfg.Logger.Warn("submit term", "err", err)
		return s, nil
	}
	s.input.Submit(ok)
	if !ok {
		s.feedback = feedback{text: "Chưa đúng, viết lại nhé."}
		return s, nil
	}

	s.part = sess.PartSentence
	s.input = components.NewTextInput(placeholder(s.part, s.state.Mode()), 0)
	s.feedback = feedback{ok: true, text: "Đúng rồi! Giờ hãy đặt câu."}
	return s, s.input.Init()
}

// check sends the sentence to the checker in the background.
func (s *SessionScreen) check(sentence string) tea.Cmd {
	seq := s.qseq
	q := s.state.Current()
	in := grammarcheck.Input{
		Term:          q.Record.Term,
		Pronunciation: q.Record.Pronunciation,
		Meaning:       q.Record.Meaning,
		Sentence:      sentence,
	}
	if q.Mode == sess.ModeTranslation {
		// The learner's own rendering of the whole sentence.
		in.Term = ""
		in.Pronunciation = ""
	}
	checker := s.cfg.Checker
	return func() tea.Msg {
		v, err := checker.Check(context.Background(), in)
		return checkDoneMsg{Seq: seq, Sentence: sentence, Verdict: v, Err: err}
	}
}

func (s *SessionScreen) handleCheckDone(msg checkDoneMsg) (screen.Screen, tea.Cmd) {
	if msg.Seq != s.qseq || !s.checking {
		return s, nil
	}
	s.checking = false
	if msg.Err != nil {
		s.feedback = feedback{text: "Không kiểm tra được câu: " + msg.Err.Error()}
		return s, nil
	}

	q := s.state.Current()
	v := msg.Verdict
	answered, err := s.state.SubmitPart(sess.PartSentence, v.Correct)
	if err != nil {
		s.cfg.Logger.Warn("submit sentence", "err", err)
		return s, nil
	}
	s.input.Submit(v.Correct)
	s.append(&store.Submission{
		Prompt:   q.Prompt,
		Answer:   msg.Sentence,
		Correct:  v.Correct,
		Feedback: verdictText(v),
	})

	if !answered {
		s.feedback = feedback{text: "Câu chưa đúng.", detail: verdictText(v)}
		return s, nil
	}
	s.scored(q)
	s.feedback = feedback{ok: true, text: "Hoàn thành!", detail: verdictText(v)}
	return s, nil
}

// next renders a new question, or leaves a notice when none can be built.
func (s *SessionScreen) next() tea.Cmd {
	q, err := s.state.RenderNext()
	if err != nil {
		s.notice = noticeFor(err)
		return nil
	}
	return s.present(q)
}

func (s *SessionScreen) skip() tea.Cmd {
	if s.checking || s.state.Phase() != sess.PhaseAwaitingAnswer {
		return nil
	}
	q, err := s.state.Skip()
	if err != nil {
		s.notice = noticeFor(err)
		return nil
	}
	s.skipped++
	return s.present(q)
}

func (s *SessionScreen) present(q *sess.Question) tea.Cmd {
	s.notice = ""
	s.feedback = feedback{}
	s.checking = false
	s.qseq++

	if q.Mode.HasChoices() {
		s.mc = components.NewMultiChoice(q.Choices)
		return nil
	}
	s.part = sess.PartTerm
	s.input = components.NewTextInput(placeholder(s.part, q.Mode), 0)
	return s.input.Init()
}

func (s *SessionScreen) cycleMode() tea.Cmd {
	if s.checking {
		return nil
	}
	s.flush()

	cur := s.state.Mode()
	next := modeOrder[0]
	for i, m := range modeOrder {
		if m == cur {
			next = modeOrder[(i+1)%len(modeOrder)]
			break
		}
	}

	s.notice = ""
	s.feedback = feedback{}
	if err := s.state.SetMode(next); err != nil {
		s.notice = noticeFor(err)
		return nil
	}
	return s.next()
}

// finish stores the session and shows its summary in place of this screen.
func (s *SessionScreen) finish() tea.Cmd {
	if s.checking || s.closed {
		return nil
	}
	summaryScreen := s.newSummaryScreenAdapter()
	s.flush()
	s.closed = true
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: summaryScreen}
	}
}

func (s *SessionScreen) scored(q *sess.Question) {
	if q.Attempts == 0 {
		s.firstTry++
	}
}

// flush stores a summary row for the questions answered since the last
// flush and starts a new session ID.
func (s *SessionScreen) flush() {
	sum := s.state.Summary()
	if sum.Total > 0 {
		s.append(&store.Submission{
			Mode:     sum.Mode.String(),
			Score:    sum.Correct,
			Total:    sum.Total,
			Correct:  sum.Correct == sum.Total,
			Feedback: fmt.Sprintf("đúng ngay lần đầu %d/%d, bỏ qua %d", s.firstTry, sum.Total, s.skipped),
		})
	}
	s.sessionID = uuid.NewString()
	s.firstTry = 0
	s.skipped = 0
}

func (s *SessionScreen) append(sub *store.Submission) {
	if s.cfg.Submissions == nil {
		return
	}
	sub.SessionID = s.sessionID
	sub.Dataset = s.cfg.Entry.Name
	if sub.Mode == "" {
		sub.Mode = s.state.Mode().String()
	}
	if err := s.cfg.Submissions.Append(context.Background(), sub); err != nil {
		s.cfg.Logger.Error("save submission", "session", s.sessionID, "err", err)
	}
}

// writing reports whether keys go to the text input.
func (s *SessionScreen) writing() bool {
	return !s.loading && s.notice == "" && !s.checking &&
		s.state.Phase() == sess.PhaseAwaitingAnswer && !s.state.Mode().HasChoices()
}

func noticeFor(err error) string {
	switch {
	case errors.Is(err, sess.ErrEmptyDataset):
		return "Không có dữ liệu phù hợp cho chế độ này."
	case errors.Is(err, quiz.ErrInsufficientDistractors):
		return "Cần ít nhất 4 phương án khác nhau. Hãy thêm dữ liệu hoặc đổi chế độ."
	default:
		return err.Error()
	}
}

func modeLabel(m sess.Mode) string {
	switch m {
	case sess.ModeQuiz:
		return "Trắc nghiệm"
	case sess.ModeEasy:
		return "Dễ"
	case sess.ModeHard:
		return "Khó"
	case sess.ModeTranslation:
		return "Dịch"
	default:
		return m.String()
	}
}

func placeholder(p sess.Part, m sess.Mode) string {
	switch {
	case p == sess.PartSentence && m == sess.ModeTranslation:
		return "Dịch lại theo cách của bạn..."
	case p == sess.PartSentence:
		return "Đặt một câu với từ này..."
	case m == sess.ModeTranslation:
		return "Viết câu tiếng Trung..."
	default:
		return "Viết chữ Hán..."
	}
}

// answerDetail is shown after a correct choice.
func answerDetail(q *sess.Question) string {
	r := q.Record
	var parts []string
	switch q.Mode {
	case sess.ModeQuiz:
		if r.Meaning != "" {
			parts = append(parts, r.Meaning)
		}
	case sess.ModeEasy:
		parts = append(parts, r.Term+"  "+r.Pronunciation)
	}
	if r.ExampleTerm != "" {
		ex := "Ví dụ: " + r.ExampleTerm
		if r.ExamplePronunciation != "" {
			ex += "  " + r.ExamplePronunciation
		}
		if r.ExampleTranslation != "" {
			ex += "  (" + r.ExampleTranslation + ")"
		}
		parts = append(parts, ex)
	}
	return strings.Join(parts, "\n")
}

func verdictText(v *grammarcheck.Verdict) string {
	text := v.Explanation
	if v.Corrected != "" {
		text += "\nGợi ý: " + v.Corrected
	}
	return text
}
