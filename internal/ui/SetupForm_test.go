package ui

import (
	"errors"
	"testing"

	"github.com/Mshel/loong/internal/game"
	tea "github.com/charmbracelet/bubbletea"
)

func TestParseSetup(t *testing.T) {
	cfg, err := parseSetup("40", " 20 ", "5", [3]bool{true, false, true})
	if err != nil {
		t.Fatalf("parseSetup: %v", err)
	}

	want := game.Config{Width: 40, Height: 20, InitialLength: 5, WrapAround: true, FailOnReversal: true}
	if cfg != want {
		t.Errorf("config=%+v want=%+v", cfg, want)
	}
}

func TestParseSetupAcceptsMaxGridSide(t *testing.T) {
	cfg, err := parseSetup("256", "256", "5", [3]bool{})
	if err != nil {
		t.Fatalf("parseSetup: %v", err)
	}
	if cfg.Width != MaxGridSide || cfg.Height != MaxGridSide {
		t.Errorf("grid=%dx%d want=%dx%d", cfg.Width, cfg.Height, MaxGridSide, MaxGridSide)
	}
}

func TestParseSetupErrors(t *testing.T) {
	cases := []struct {
		name                  string
		width, height, length string
		want                  error
	}{
		{"not a number", "forty", "20", "5", game.ErrInvalidConfig},
		{"too large", "70000", "20", "5", game.ErrInvalidConfig},
		{"empty grid", "0", "20", "5", game.ErrInvalidConfig},
		{"zero length", "10", "10", "0", game.ErrInvalidConfig},
		{"oversized", "6", "6", "5", game.ErrOversizedInitialCreature},
		{"wider than the cap", "257", "20", "5", game.ErrInvalidConfig},
		{"taller than the cap", "40", "60000", "5", game.ErrInvalidConfig},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := parseSetup(c.width, c.height, c.length, [3]bool{})
			if !errors.Is(err, c.want) {
				t.Errorf("err=%v want=%v", err, c.want)
			}
		})
	}
}

func pressKeys(m tea.Model, keys ...tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		m, cmd = m.Update(k)
	}
	return m, cmd
}

func TestSetupSubmitsConfig(t *testing.T) {
	m := NewInitialSetupModel(game.DefaultConfig(), 80, 24)

	tab := tea.KeyMsg{Type: tea.KeyTab}
	space := tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	enter := tea.KeyMsg{Type: tea.KeyEnter}

	// Move to the wrap toggle, flip it, then jump to the submit button.
	_, cmd := pressKeys(m, tab, tab, tab, space, tab, tab, tab, enter)
	if cmd == nil {
		t.Fatal("submit produced no command")
	}

	msg, ok := cmd().(SetupSubmitMsg)
	if !ok {
		t.Fatalf("msg=%T want SetupSubmitMsg", cmd())
	}

	want := game.DefaultConfig()
	want.WrapAround = true
	if msg.Config != want {
		t.Errorf("config=%+v want=%+v", msg.Config, want)
	}
}

func TestSetupShowsValidationError(t *testing.T) {
	cfg := game.DefaultConfig()
	cfg.InitialLength = 40
	m := NewInitialSetupModel(cfg, 80, 24)

	shiftTab := tea.KeyMsg{Type: tea.KeyShiftTab}
	enter := tea.KeyMsg{Type: tea.KeyEnter}

	model, cmd := pressKeys(m, shiftTab, enter)
	if cmd != nil {
		t.Errorf("invalid form was submitted")
	}
	if !errors.Is(model.(SetupModel).err, game.ErrOversizedInitialCreature) {
		t.Errorf("err=%v want ErrOversizedInitialCreature", model.(SetupModel).err)
	}
}
