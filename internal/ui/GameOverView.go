package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// GameOverState holds the data and local state for rendering the game over screen.
type GameOverState struct {
	FinalLength    int
	FinalTick      int
	Reason         error
	SelectedButton int // 0: Restart, 1: Menu
	ScreenWidth    int
	ScreenHeight   int
}

var (
	gameOverButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("7")).
				Padding(0, 3).
				Margin(1, 1).
				Bold(true)

	selectedButtonStyle = gameOverButtonStyle.
				Background(lipgloss.Color("4")).
				Foreground(lipgloss.Color("15"))
)

// RenderGameOverScreen draws the reason the round ended and the buttons.
func (g *GameOverState) RenderGameOverScreen() string {
	messageStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("9")).
		Padding(1, 5).
		Align(lipgloss.Center).
		Width(max(g.ScreenWidth-4, 0))

	title := messageStyle.Render("G A M E   O V E R")

	reason := "round ended"
	if g.Reason != nil {
		reason = g.Reason.Error()
	}
	stats := fmt.Sprintf("\n%s\n\nFinal length: %d\nTicks survived: %d\n", reason, g.FinalLength, g.FinalTick)

	restartButton := gameOverButtonStyle.Render("RESTART (r)")
	menuButton := gameOverButtonStyle.Render("MENU")

	if g.SelectedButton == 0 {
		restartButton = selectedButtonStyle.Render("RESTART (r)")
	} else {
		menuButton = selectedButtonStyle.Render("MENU")
	}

	buttons := lipgloss.JoinHorizontal(lipgloss.Center, restartButton, menuButton)

	content := lipgloss.JoinVertical(lipgloss.Center, title, stats, buttons)

	return lipgloss.Place(g.ScreenWidth, g.ScreenHeight,
		lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Border(lipgloss.ThickBorder()).Render(content),
	)
}
