package repl

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/rulex/log"
)

func typeText(m tea.Model, s string) tea.Model {
	for _, r := range s {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}

	return m
}

func press(m tea.Model, k tea.KeyType) (tea.Model, tea.Cmd) {
	return m.Update(tea.KeyMsg{Type: k})
}

func TestModel_EvalRecordsHistory(t *testing.T) {
	h := NewHistory("")
	var m tea.Model = newModel(context.Background(), h, log.Logger{})

	m = typeText(m, "1+2")

	m, cmd := press(m, tea.KeyEnter)
	if cmd == nil {
		t.Fatal("expected output command")
	}

	if got := m.(model).input.Value(); got != "" {
		t.Errorf("expected input cleared, got %q", got)
	}

	if e, err := h.At(0); err != nil || e != (Entry{"1+2", modeEval}) {
		t.Errorf("expected history entry, got %v, %v", e, err)
	}

	m, _ = press(m, tea.KeyUp)
	if got := m.(model).input.Value(); got != "1+2" {
		t.Errorf("expected recalled line, got %q", got)
	}

	m, _ = press(m, tea.KeyDown)
	if got := m.(model).input.Value(); got != "" {
		t.Errorf("expected empty line past history, got %q", got)
	}
}

func TestModel_CommandMode(t *testing.T) {
	var m tea.Model = newModel(context.Background(), NewHistory(""), log.Logger{})

	m, _ = press(m, tea.KeyEsc)
	if m.(model).mode != modeCtrl {
		t.Fatal("expected command mode")
	}

	m = typeText(m, "tre")
	m, _ = press(m, tea.KeyEnter)

	mm := m.(model)
	if !mm.session.tree {
		t.Error("expected tree listing enabled")
	}

	if mm.mode != modeEval {
		t.Error("expected return to eval mode")
	}
}

func TestModel_Quit(t *testing.T) {
	var m tea.Model = newModel(context.Background(), NewHistory(""), log.Logger{})

	m, cmd := press(m, tea.KeyCtrlD)
	if cmd == nil || !m.(model).quitting {
		t.Fatal("expected quit")
	}

	if v := m.View(); v != "" {
		t.Errorf("expected empty view after quit, got %q", v)
	}
}
