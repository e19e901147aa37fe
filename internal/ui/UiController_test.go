package ui

import (
	"testing"

	"github.com/Mshel/loong/internal/game"
	tea "github.com/charmbracelet/bubbletea"
)

func TestIntroSelectsScreens(t *testing.T) {
	m := NewControllerModel(Options{Config: game.DefaultConfig()}, 80, 24)

	model, _ := m.Update(IntroSubmitMsg(0))
	if got := model.(ControllerModel).CurrentScreen; got != SetupScreen {
		t.Errorf("screen=%v want=%v", got, SetupScreen)
	}

	_, cmd := m.Update(IntroSubmitMsg(1))
	if cmd == nil {
		t.Fatal("quit produced no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("quit did not send tea.QuitMsg")
	}
}

func TestSetupSubmitStartsRound(t *testing.T) {
	m := NewControllerModel(Options{Config: game.DefaultConfig()}, 80, 24)

	model, cmd := m.Update(SetupSubmitMsg{Config: game.DefaultConfig()})
	cm := model.(ControllerModel)
	defer cm.stopRound()

	if cm.CurrentScreen != GameScreen {
		t.Errorf("screen=%v want=%v", cm.CurrentScreen, GameScreen)
	}
	if cm.GameModel == nil || cmd == nil {
		t.Fatal("round started without a game model or session command")
	}
}

func TestSetupSubmitWithBadConfigStaysOnForm(t *testing.T) {
	m := NewControllerModel(Options{Config: game.DefaultConfig()}, 80, 24)
	m.CurrentScreen = SetupScreen

	model, _ := m.Update(SetupSubmitMsg{Config: game.Config{Width: 4, Height: 4, InitialLength: 4}})
	cm := model.(ControllerModel)

	if cm.CurrentScreen != SetupScreen {
		t.Errorf("screen=%v want=%v", cm.CurrentScreen, SetupScreen)
	}
	if cm.SetupModel.(SetupModel).err == nil {
		t.Error("form does not show the error")
	}
}
