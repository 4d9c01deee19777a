package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/popover/pkg/scene"
	"github.com/matzehuels/popover/pkg/visibility"
)

func newTestPlay(t *testing.T) *playModel {
	t.Helper()
	s, err := scene.Load(menuScene)
	if err != nil {
		t.Fatal(err)
	}
	m, err := newPlayModel(s)
	if err != nil {
		t.Fatalf("newPlayModel() error = %v", err)
	}
	t.Cleanup(m.pop.Destroy)
	return m
}

func press(m *playModel, key tea.KeyMsg) tea.Cmd {
	_, cmd := m.Update(key)
	return cmd
}

func TestPlayToggleOpensAfterSettle(t *testing.T) {
	m := newTestPlay(t)

	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.view.State != visibility.PendingMeasurement {
		t.Fatalf("state after enter = %v, want pendingMeasurement", m.view.State)
	}
	m.Update(playTickMsg{})
	m.Update(playTickMsg{})
	if !m.view.IsOpen {
		t.Fatalf("state after 100ms = %v, want open", m.view.State)
	}
	if !strings.Contains(m.View(), "open") {
		t.Error("View() does not show the open state")
	}
	if len(m.events) == 0 {
		t.Error("transitions not noted")
	}

	press(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.view.IsOpen {
		t.Error("esc did not close the popover")
	}
}

func TestPlayMovesTrigger(t *testing.T) {
	m := newTestPlay(t)
	before := m.built.Trigger.Rect

	press(m, tea.KeyMsg{Type: tea.KeyRight})
	press(m, tea.KeyMsg{Type: tea.KeyDown})

	c := m.canvas()
	if got := m.built.Trigger.Rect.Left - before.Left; got != c.CellWidth {
		t.Errorf("trigger moved %v right, want %v", got, c.CellWidth)
	}
	if got := m.built.Trigger.Rect.Top - before.Top; got != c.CellHeight {
		t.Errorf("trigger moved %v down, want %v", got, c.CellHeight)
	}
}

func TestPlayScrollAndResize(t *testing.T) {
	m := newTestPlay(t)
	before := m.built.Trigger.Rect.Top

	press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	if got := before - m.built.Trigger.Rect.Top; got != playScroll {
		t.Errorf("scroll moved trigger by %v, want %v", got, playScroll)
	}

	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	if m.cols != 100 || m.rows != 40-playChrome {
		t.Errorf("canvas = %dx%d, want 100x%d", m.cols, m.rows, 40-playChrome)
	}
	if lines := strings.Count(m.View(), "\n") + 1; lines != m.rows+3 {
		t.Errorf("View() has %d lines, want %d", lines, m.rows+3)
	}
}

func TestPlayQuit(t *testing.T) {
	m := newTestPlay(t)
	if press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}) == nil {
		t.Error("q did not return a quit command")
	}
}
