package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func key(s string) tea.KeyPressMsg {
	switch s {
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	}
	r := []rune(s)[0]
	return tea.KeyPressMsg{Code: r, Text: s}
}

func TestMultiChoice_SkipsDisabled(t *testing.T) {
	mc := NewMultiChoice([]string{"a", "b", "c", "d"})
	mc.Disable(0)
	if mc.Selected != 1 {
		t.Fatalf("cursor on %d after disabling 0, want 1", mc.Selected)
	}
	mc.Disable(2)
	mc, _ = mc.Update(key("down"))
	if mc.Selected != 3 {
		t.Fatalf("down from 1 landed on %d, want 3", mc.Selected)
	}
	mc, _ = mc.Update(key("up"))
	if mc.Selected != 1 {
		t.Fatalf("up from 3 landed on %d, want 1", mc.Selected)
	}
}

func TestMultiChoice_DisableLastMovesBack(t *testing.T) {
	mc := NewMultiChoice([]string{"a", "b"})
	mc.Selected = 1
	mc.Disable(1)
	if mc.Selected != 0 {
		t.Fatalf("cursor = %d, want 0", mc.Selected)
	}
}

func TestMultiChoice_DigitChooses(t *testing.T) {
	mc := NewMultiChoice([]string{"a", "b", "c", "d"})
	mc, chosen := mc.Update(key("3"))
	if !chosen || mc.Selected != 2 {
		t.Fatalf("chosen = %v, selected = %d", chosen, mc.Selected)
	}
	got, ok := mc.Current()
	if !ok || got != "c" {
		t.Fatalf("current = %q, %v", got, ok)
	}

	mc.Disable(1)
	if _, chosen := mc.Update(key("2")); chosen {
		t.Fatal("disabled option must not be choosable")
	}
	if _, chosen := mc.Update(key("9")); chosen {
		t.Fatal("out of range digit must not choose")
	}
}

func TestMultiChoice_RevealFreezes(t *testing.T) {
	mc := NewMultiChoice([]string{"a", "b"})
	mc.Reveal(1)
	mc, chosen := mc.Update(key("enter"))
	if chosen {
		t.Fatal("revealed selector must not accept input")
	}
	if !strings.Contains(mc.View(), "2)  b") {
		t.Fatalf("view = %q", mc.View())
	}
}

func TestMenu_SkipsDisabled(t *testing.T) {
	var picked string
	m := NewMenu([]MenuItem{
		{Label: "off", Disabled: true},
		{Label: "one", Action: func() tea.Cmd { picked = "one"; return nil }},
		{Label: "off2", Disabled: true},
		{Label: "two", Action: func() tea.Cmd { picked = "two"; return nil }},
	})
	if m.Selected != 1 {
		t.Fatalf("initial selection = %d", m.Selected)
	}
	m, _ = m.Update(key("down"))
	m, _ = m.Update(key("enter"))
	if picked != "two" {
		t.Fatalf("picked %q", picked)
	}
}

func TestProgressBar_Clamps(t *testing.T) {
	if v := NewProgressBar("", 1.7, 20).View(); !strings.Contains(v, "100%") {
		t.Fatalf("view = %q", v)
	}
	if v := NewProgressBar("", -1, 20).View(); !strings.Contains(v, "0%") {
		t.Fatalf("view = %q", v)
	}
}
