package components

import (
	"fmt"
	"strconv"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/hanzidrill/internal/ui/theme"
)

// MultiChoice is a cursor over answer options. Options rejected earlier
// are skipped by the cursor and rendered struck through. It only tracks
// the cursor; scoring belongs to the caller.
type MultiChoice struct {
	Options  []string
	Selected int
	disabled map[int]bool
	// Answer, once set, highlights the correct option.
	Answer int
}

// NewMultiChoice creates a selector with the first option under the cursor.
func NewMultiChoice(options []string) MultiChoice {
	return MultiChoice{Options: options, disabled: make(map[int]bool), Answer: -1}
}

// Disable greys out option i and moves the cursor off it.
func (m *MultiChoice) Disable(i int) {
	m.disabled[i] = true
	if m.Selected == i {
		m.move(1)
		if m.disabled[m.Selected] {
			m.move(-1)
		}
	}
}

// Reveal marks option i as the correct answer.
func (m *MultiChoice) Reveal(i int) {
	m.Answer = i
}

// Current returns the option under the cursor.
func (m MultiChoice) Current() (string, bool) {
	if m.Selected < 0 || m.Selected >= len(m.Options) || m.disabled[m.Selected] {
		return "", false
	}
	return m.Options[m.Selected], true
}

// Update moves the cursor. A digit key selects that option and reports
// chosen; Enter reports the option under the cursor.
func (m MultiChoice) Update(msg tea.Msg) (mc MultiChoice, chosen bool) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || m.Answer >= 0 {
		return m, false
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		m.move(-1)
	case "down", "j":
		m.move(1)
	case "enter":
		_, ok := m.Current()
		return m, ok
	default:
		if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= len(m.Options) && !m.disabled[n-1] {
			m.Selected = n - 1
			return m, true
		}
	}
	return m, false
}

func (m *MultiChoice) move(step int) {
	for i := m.Selected + step; i >= 0 && i < len(m.Options); i += step {
		if !m.disabled[i] {
			m.Selected = i
			return
		}
	}
}

// View renders the options.
func (m MultiChoice) View() string {
	var s string
	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Selected && m.Answer < 0 {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%d)  %s", prefix, i+1, opt)

		switch {
		case i == m.Answer:
			s += theme.Correct.Render(line)
		case m.disabled[i]:
			s += theme.Disabled.Render(line)
		case m.Answer >= 0:
			s += lipgloss.NewStyle().Foreground(theme.TextDim).Render(line)
		case i == m.Selected:
			s += theme.Selected.Render(line)
		default:
			s += theme.Unselected.Render(line)
		}
		s += "\n"
	}
	return s
}
