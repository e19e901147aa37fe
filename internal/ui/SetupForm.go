package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Mshel/loong/internal/game"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	focusedColor = lipgloss.Color("205")
	blurredColor = lipgloss.Color("240")
	focusedStyle = lipgloss.NewStyle().Foreground(focusedColor)
	blurredStyle = lipgloss.NewStyle().Foreground(blurredColor)
	helpStyle    = blurredStyle
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))

	buttonStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder())

	submitButtonStyle = buttonStyle.
				BorderForeground(focusedColor).
				Padding(0, 1)

	blurredButtonStyle = buttonStyle.
				BorderForeground(blurredColor).
				Padding(0, 1)
)

// MaxGridSide bounds the width and height the front ends accept.
const MaxGridSide = 256

// Focus order of the form.
const (
	focusWidth = iota
	focusHeight
	focusLength
	focusWrap
	focusAutoFood
	focusStrict
	focusSubmit
	focusCount
)

type setupErrMsg struct {
	err error
}

// SetupModel is the form that configures a round.
type SetupModel struct {
	inputs     []textinput.Model
	toggles    [3]bool // wrap, auto food, strict reversal
	focusIndex int
	err        error
	width      int
	height     int
}

func NewInitialSetupModel(cfg game.Config, w, h int) SetupModel {
	values := []uint16{cfg.Width, cfg.Height, cfg.InitialLength}
	placeholders := []string{"width", "height", "initial length"}

	inputs := make([]textinput.Model, len(values))
	for i := range inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 5
		ti.Width = 8
		ti.Validate = digitsOnly
		ti.SetValue(strconv.Itoa(int(values[i])))
		inputs[i] = ti
	}

	m := SetupModel{
		inputs:  inputs,
		toggles: [3]bool{cfg.WrapAround, cfg.AutoFood, cfg.FailOnReversal},
		width:   w,
		height:  h,
	}
	m.setFocus(focusWidth)
	return m
}

func digitsOnly(s string) error {
	for _, r := range s {
		if r < '0' || r > '9' {
			return fmt.Errorf("%q is not a number", s)
		}
	}
	return nil
}

// Init sends a command to start the cursor blinking
func (m SetupModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *SetupModel) setFocus(index int) {
	m.focusIndex = (index + focusCount) % focusCount
	for i := range m.inputs {
		if i == m.focusIndex {
			m.inputs[i].Focus()
			m.inputs[i].PromptStyle = focusedStyle
			m.inputs[i].TextStyle = focusedStyle
		} else {
			m.inputs[i].Blur()
			m.inputs[i].PromptStyle = blurredStyle
			m.inputs[i].TextStyle = blurredStyle
		}
	}
}

// Config reads the form into a validated configuration.
func (m SetupModel) Config() (game.Config, error) {
	return parseSetup(m.inputs[0].Value(), m.inputs[1].Value(), m.inputs[2].Value(), m.toggles)
}

func parseSetup(width, height, length string, toggles [3]bool) (game.Config, error) {
	fields := []struct {
		name  string
		value string
	}{
		{"width", width},
		{"height", height},
		{"initial length", length},
	}

	var parsed [3]uint16
	for i, f := range fields {
		v, err := strconv.ParseUint(strings.TrimSpace(f.value), 10, 16)
		if err != nil {
			return game.Config{}, fmt.Errorf("%w: %s %q", game.ErrInvalidConfig, f.name, f.value)
		}
		parsed[i] = uint16(v)
	}
	if parsed[0] > MaxGridSide || parsed[1] > MaxGridSide {
		return game.Config{}, fmt.Errorf("%w: grid %dx%d is larger than %dx%d", game.ErrInvalidConfig, parsed[0], parsed[1], MaxGridSide, MaxGridSide)
	}

	cfg := game.Config{
		Width:          parsed[0],
		Height:         parsed[1],
		InitialLength:  parsed[2],
		WrapAround:     toggles[0],
		AutoFood:       toggles[1],
		FailOnReversal: toggles[2],
	}
	if err := cfg.Validate(); err != nil {
		return game.Config{}, err
	}
	return cfg, nil
}

func (m SetupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case setupErrMsg:
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "down":
			m.setFocus(m.focusIndex + 1)
			return m, nil
		case "shift+tab", "up":
			m.setFocus(m.focusIndex - 1)
			return m, nil
		case "enter":
			if m.focusIndex != focusSubmit {
				m.setFocus(m.focusIndex + 1)
				return m, nil
			}
			cfg, err := m.Config()
			if err != nil {
				m.err = err
				return m, nil
			}
			m.err = nil
			return m, func() tea.Msg { return SetupSubmitMsg{Config: cfg} }
		case " ", "left", "right":
			if m.focusIndex >= focusWrap && m.focusIndex <= focusStrict {
				i := m.focusIndex - focusWrap
				m.toggles[i] = !m.toggles[i]
				return m, nil
			}
		}

		if m.focusIndex < len(m.inputs) {
			var cmd tea.Cmd
			m.inputs[m.focusIndex], cmd = m.inputs[m.focusIndex].Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

func (m SetupModel) View() string {
	center := func(s string) string {
		return lipgloss.NewStyle().Width(m.width).Align(lipgloss.Center).Render(s)
	}
	label := func(index int, text string) string {
		if m.focusIndex == index {
			return focusedStyle.Render(text)
		}
		return blurredStyle.Render(text)
	}

	var b strings.Builder

	names := []string{"Width ", "Height", "Length"}
	for i, input := range m.inputs {
		b.WriteString(center(label(i, names[i]) + " " + input.View()))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	toggleNames := []string{"Wrap around edges", "Respawn food", "Reversal ends the round"}
	for i, name := range toggleNames {
		box := "[ ]"
		if m.toggles[i] {
			box = "[x]"
		}
		b.WriteString(center(label(focusWrap+i, box+" "+name)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	submitText := "Start"
	var submitButton string
	if m.focusIndex == focusSubmit {
		submitButton = submitButtonStyle.Render(submitText)
	} else {
		submitButton = blurredButtonStyle.Render(submitText)
	}
	b.WriteString(center(submitButton))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(center(errorStyle.Render(m.err.Error())))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(center(helpStyle.Render("(tab/shift+tab to navigate, space to toggle, enter to confirm, ctrl+c to quit)")))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, b.String())
}
