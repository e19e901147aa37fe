package ui

import (
	"fmt"
	"strings"

	"github.com/Mshel/loong/internal/game"
	"github.com/Mshel/loong/internal/session"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type GameState int

const (
	StatePlaying GameState = iota
	StateGameOver
)

var (
	voidColor = lipgloss.Color("233")

	wallMapStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("172"))

	wrapMapStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240"))

	statusPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("8")).
				Padding(1, 2)

	headStyle  = lipgloss.NewStyle().Background(voidColor).Foreground(lipgloss.Color("84")).Bold(true)
	bodyStyle  = lipgloss.NewStyle().Background(voidColor).Foreground(lipgloss.Color("78"))
	foodStyle  = lipgloss.NewStyle().Background(voidColor).Foreground(lipgloss.Color("203"))
	emptyStyle = lipgloss.NewStyle().Background(voidColor).Foreground(lipgloss.Color("236"))
)

const (
	mapViewPercentage  = 0.70
	statusPanelPadding = 4
)

type GameViewModel struct {
	ScreenWidth  int
	ScreenHeight int

	session   *session.Session
	cfg       game.Config
	autopilot bool

	frame    session.FrameMsg
	hasFrame bool

	gameState     GameState
	gameOverState GameOverState

	keys keyMap
	help help.Model
}

func NewGameModel(sess *session.Session, cfg game.Config, autopilot bool, screenWidth int, screenHeight int) GameViewModel {
	return GameViewModel{
		ScreenWidth:  screenWidth,
		ScreenHeight: screenHeight,
		session:      sess,
		cfg:          cfg,
		autopilot:    autopilot,
		gameState:    StatePlaying,
		gameOverState: GameOverState{
			ScreenWidth:  screenWidth,
			ScreenHeight: screenHeight,
		},
		keys: defaultKeys,
		help: help.New(),
	}
}

func (m GameViewModel) Init() tea.Cmd {
	return m.listenForGameUpdates()
}

func (m GameViewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ScreenWidth = msg.Width
		m.ScreenHeight = msg.Height
		m.gameOverState.ScreenWidth = msg.Width
		m.gameOverState.ScreenHeight = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.gameState == StateGameOver {
			switch msg.String() {
			case "left", "h":
				m.gameOverState.SelectedButton = max(0, m.gameOverState.SelectedButton-1)
			case "right", "l":
				m.gameOverState.SelectedButton = min(1, m.gameOverState.SelectedButton+1)
			case "r":
				m.session.Restart()
			case "enter":
				if m.gameOverState.SelectedButton == 0 {
					m.session.Restart()
					return m, nil
				}
				return m, func() tea.Msg { return BackToIntroMsg{} }
			}
			return m, nil
		}

		switch {
		case key.Matches(msg, m.keys.Up):
			m.session.Steer(game.Up)
		case key.Matches(msg, m.keys.Down):
			m.session.Steer(game.Down)
		case key.Matches(msg, m.keys.Left):
			m.session.Steer(game.Left)
		case key.Matches(msg, m.keys.Right):
			m.session.Steer(game.Right)
		case key.Matches(msg, m.keys.Restart):
			m.session.Restart()
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
		return m, nil

	case session.FrameMsg:
		m.frame = msg
		m.hasFrame = true
		m.gameState = StatePlaying
		return m, m.listenForGameUpdates()

	case session.GameOverMsg:
		m.gameState = StateGameOver
		m.gameOverState.FinalLength = msg.Length
		m.gameOverState.FinalTick = msg.Tick
		m.gameOverState.Reason = msg.Err
		m.gameOverState.SelectedButton = 0
		return m, m.listenForGameUpdates()
	}

	return m, nil
}

func (m GameViewModel) View() string {
	if m.gameState == StateGameOver {
		return m.gameOverState.RenderGameOverScreen()
	}

	if !m.hasFrame {
		return lipgloss.Place(m.ScreenWidth, m.ScreenHeight, lipgloss.Center, lipgloss.Center, "Waiting for the first tick...")
	}

	mapWidth := int(float64(m.ScreenWidth) * mapViewPercentage)
	statusPanelWidth := m.ScreenWidth - mapWidth - statusPanelPadding

	mapStyle := wallMapStyle
	if m.cfg.WrapAround {
		mapStyle = wrapMapStyle
	}

	// Borders take two columns and two rows.
	mapContent := renderBoard(m.frame.State, m.cfg, mapWidth-2, m.ScreenHeight-2)
	statusContent := m.renderStatusPanel()

	return lipgloss.JoinHorizontal(lipgloss.Top,
		mapStyle.Render(mapContent),
		statusPanelStyle.Width(statusPanelWidth).Render(statusContent),
	)
}

// renderBoard draws a frame whose points are already flipped, so row 0 holds
// y' == 1. Boards larger than width x height are cropped around the head and
// only the visible cells are drawn.
func renderBoard(state game.ClassifiedSnapshot, cfg game.Config, width int, height int) string {
	cols, rows := int(cfg.Width), int(cfg.Height)

	centerCol, centerRow := cols/2, rows/2
	if len(state.Parts) > 0 {
		head := state.Parts[0].Point
		centerCol, centerRow = int(head.X), int(head.Y)-1
	}

	startCol, endCol := viewportSpan(centerCol, cols, width)
	startRow, endRow := viewportSpan(centerRow, rows, height)

	visible := func(p game.Point) bool {
		row, col := int(p.Y)-1, int(p.X)
		return row >= startRow && row < endRow && col >= startCol && col < endCol
	}

	sprites := make(map[game.Point]string)
	for _, f := range state.Food {
		if visible(f) {
			sprites[f] = foodStyle.Render(foodRune)
		}
	}
	for _, part := range state.Parts {
		if !visible(part.Point) {
			continue
		}
		style := bodyStyle
		if part.Kind == game.PartHead {
			style = headStyle
		}
		sprites[part.Point] = style.Render(partRune(part))
	}

	empty := emptyStyle.Render(emptyRune)

	var sb strings.Builder
	for row := startRow; row < endRow; row++ {
		if row > startRow {
			sb.WriteString("\n")
		}
		for col := startCol; col < endCol; col++ {
			if sprite, ok := sprites[game.Point{X: uint16(col), Y: uint16(row + 1)}]; ok {
				sb.WriteString(sprite)
				continue
			}
			sb.WriteString(empty)
		}
	}
	return sb.String()
}

// viewportSpan picks the visible [start, end) of total cells, centered on
// center and clamped to the board.
func viewportSpan(center, total, visible int) (int, int) {
	effective := min(total, max(visible, 1))

	start := max(0, center-effective/2)
	if start+effective > total {
		start = max(0, total-effective)
	}

	return start, min(total, start+effective)
}

func (m GameViewModel) renderStatusPanel() string {
	var statusContent strings.Builder

	statusContent.WriteString(lipgloss.NewStyle().Bold(true).Render("--- Loong ---") + "\n")
	statusContent.WriteString(fmt.Sprintf("Length: %d\n", m.frame.Length))
	statusContent.WriteString(fmt.Sprintf("Heading: %s %s\n", headRunes[m.frame.State.Direction], m.frame.State.Direction))
	statusContent.WriteString(fmt.Sprintf("Food on board: %d\n", len(m.frame.State.Food)))
	statusContent.WriteString(fmt.Sprintf("Tick: %d\n", m.frame.Tick))

	statusContent.WriteString("\n" + lipgloss.NewStyle().Bold(true).Render("--- Board ---") + "\n")
	statusContent.WriteString(fmt.Sprintf("Size: %dx%d\n", m.cfg.Width, m.cfg.Height))
	edges := "walls"
	if m.cfg.WrapAround {
		edges = "wrap around"
	}
	statusContent.WriteString(fmt.Sprintf("Edges: %s\n", edges))
	if m.autopilot {
		statusContent.WriteString("Autopilot: on\n")
	}

	statusContent.WriteString("\n" + m.help.View(m.keys))

	return statusContent.String()
}

// listenForGameUpdates waits for the next session message. A closed channel
// yields nil, which ends the listening chain.
func (m GameViewModel) listenForGameUpdates() tea.Cmd {
	updates := m.session.Updates()
	return func() tea.Msg {
		return <-updates
	}
}
