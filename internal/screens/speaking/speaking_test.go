package speaking

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/hanzidrill/internal/dataset"
	"github.com/abhisek/hanzidrill/internal/router"
)

const speakingText = "1. 你好！ Nǐ hǎo!\n" +
	"2. 你叫什么名字？ Nǐ jiào shénme míngzi?\n" +
	"không khớp\n" +
	"3. 我是越南人。 Wǒ shì Yuènán rén.\n"

const triadText = "1. 你好\n(nǐ hǎo)\nXin chào\n\n2. 谢谢\nxièxie\nCảm ơn\n"

type mapSource map[string]string

func (m mapSource) Fetch(_ context.Context, path string) ([]byte, error) {
	if data, ok := m[path]; ok {
		return []byte(data), nil
	}
	return nil, errors.New("not found")
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func loaded(t *testing.T, entry dataset.Entry) *SpeakingScreen {
	t.Helper()
	s := New(entry, mapSource{"onhsk3.txt": speakingText, "dich.txt": triadText}, nil)
	s.Update(s.Init()())
	return s
}

func TestSpeaking_Sequential(t *testing.T) {
	s := loaded(t, dataset.Entry{Name: "Luyện nói", Path: "onhsk3.txt", Kind: dataset.KindSpeakingLine})
	if s.drill == nil {
		t.Fatalf("drill not loaded: %q", s.errMsg)
	}
	if i, n := s.drill.Position(); i != 1 || n != 3 {
		t.Fatalf("position = %d/%d", i, n)
	}
	if !strings.Contains(s.View(80, 24), "Nǐ hǎo") {
		t.Error("pronunciation should be visible by default")
	}
	if !strings.Contains(s.View(80, 24), "Bỏ qua 1 dòng") {
		t.Error("dropped line count not shown")
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if i, _ := s.drill.Position(); i != 1 {
		t.Fatalf("expected wrap to 1, at %d", i)
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyLeft})
	if i, _ := s.drill.Position(); i != 3 {
		t.Fatalf("expected wrap back to 3, at %d", i)
	}

	s.Update(keyPress('r'))
	if !s.drill.Random() || !strings.Contains(s.Status(), "ngẫu nhiên") {
		t.Error("random mode not toggled")
	}
}

func TestSpeaking_TranslationReveal(t *testing.T) {
	s := loaded(t, dataset.Entry{Name: "Dịch", Path: "dich.txt", Kind: dataset.KindTranslationTriad})
	view := s.View(80, 24)
	if !strings.Contains(view, "Xin chào") || strings.Contains(view, "你好") {
		t.Fatalf("translation prompt should hide the answer:\n%s", view)
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeySpace, Text: " "})
	if !strings.Contains(s.View(80, 24), "你好") {
		t.Fatal("answer not revealed")
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if strings.Contains(s.View(80, 24), "谢谢") {
		t.Fatal("next item should start hidden")
	}
}

func TestSpeaking_EmptyGoesBack(t *testing.T) {
	s := New(dataset.Entry{Name: "x", Path: "empty.txt", Kind: dataset.KindSpeakingLine},
		mapSource{"empty.txt": "không có gì\n"}, nil)
	s.Update(s.Init()())
	if s.errMsg == "" {
		t.Fatal("expected an error for an empty list")
	}
	_, cmd := s.Update(keyPress('x'))
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Fatal("expected PopScreenMsg")
	}
}

func TestSpeaking_StaleLoadDropped(t *testing.T) {
	s := New(dataset.Entry{Name: "x", Path: "onhsk3.txt"}, mapSource{"onhsk3.txt": speakingText}, nil)
	first := s.Init()
	second := s.Init()
	s.Update(second())
	s.Update(itemsLoadedMsg{Gen: 1, Err: errors.New("late")})
	_ = first
	if s.errMsg != "" || s.drill == nil {
		t.Fatal("stale load overwrote a newer one")
	}
}
