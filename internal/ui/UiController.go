package ui

import (
	"context"
	"time"

	"github.com/Mshel/loong/internal/game"
	"github.com/Mshel/loong/internal/session"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

type Screen int

const (
	IntroScreen Screen = iota
	SetupScreen
	GameScreen
)

// Messages for state transitions
type IntroSubmitMsg int // 0 for New Game, 1 for Quit
type SetupSubmitMsg struct {
	Config game.Config
}

// BackToIntroMsg returns from a finished round to the main menu.
type BackToIntroMsg struct{}

type sessionErrMsg struct {
	err error
}

// Options configure every round started from the UI.
type Options struct {
	Config    game.Config
	Autopilot game.Strategy
	TickEvery time.Duration
	Logger    *log.Logger
}

type ControllerModel struct {
	CurrentScreen Screen

	IntroModel tea.Model
	SetupModel tea.Model
	GameModel  tea.Model

	ScreenWidth  int
	ScreenHeight int

	options Options
	stop    context.CancelFunc
}

func NewControllerModel(options Options, screenWidth int, screenHeight int) ControllerModel {
	if options.Logger == nil {
		options.Logger = log.Default().WithPrefix("ui")
	}
	if options.TickEvery <= 0 {
		options.TickEvery = game.GameTickDuration
	}

	return ControllerModel{
		CurrentScreen: IntroScreen,

		IntroModel: NewIntroModel(screenWidth, screenHeight),
		SetupModel: NewInitialSetupModel(options.Config, screenWidth, screenHeight),

		ScreenWidth:  screenWidth,
		ScreenHeight: screenHeight,
		options:      options,
	}
}

func (m ControllerModel) Init() tea.Cmd {
	return m.IntroModel.Init()
}

func (m ControllerModel) View() string {
	switch m.CurrentScreen {
	case IntroScreen:
		return m.IntroModel.View()
	case SetupScreen:
		return m.SetupModel.View()
	case GameScreen:
		if m.GameModel != nil {
			return m.GameModel.View()
		}
		return "Game Loading..."
	default:
		return "Unknown Screen"
	}
}

func (m ControllerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "ctrl+c" || (msg.String() == "q" && m.CurrentScreen != SetupScreen) {
			m.stopRound()
			return m, tea.Quit
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ScreenWidth = msg.Width
		m.ScreenHeight = msg.Height
		m.IntroModel, _ = m.IntroModel.Update(msg)
		m.SetupModel, _ = m.SetupModel.Update(msg)
		if m.GameModel != nil {
			m.GameModel, _ = m.GameModel.Update(msg)
		}
		return m, nil

	case IntroSubmitMsg:
		if msg == 1 {
			return m, tea.Quit
		}
		m.CurrentScreen = SetupScreen
		return m, m.SetupModel.Init()

	case SetupSubmitMsg:
		return m.startRound(msg.Config)

	case BackToIntroMsg:
		m.stopRound()
		m.GameModel = nil
		m.CurrentScreen = IntroScreen
		return m, m.IntroModel.Init()

	case sessionErrMsg:
		m.options.Logger.Error("session stopped", "err", msg.err)
		return m, tea.Quit

	default:
		switch m.CurrentScreen {
		case IntroScreen:
			m.IntroModel, cmd = m.IntroModel.Update(msg)
			cmds = append(cmds, cmd)
		case SetupScreen:
			m.SetupModel, cmd = m.SetupModel.Update(msg)
			cmds = append(cmds, cmd)
		case GameScreen:
			if m.GameModel != nil {
				m.GameModel, cmd = m.GameModel.Update(msg)
				cmds = append(cmds, cmd)
			}
		}
	}

	return m, tea.Batch(cmds...)
}

// startRound builds a controller and a session for cfg and starts the
// session loop as a command.
func (m ControllerModel) startRound(cfg game.Config) (tea.Model, tea.Cmd) {
	controller, err := game.NewController(cfg, game.WithLogger(m.options.Logger.WithPrefix("game")))
	if err != nil {
		var cmd tea.Cmd
		m.SetupModel, cmd = m.SetupModel.Update(setupErrMsg{err: err})
		return m, cmd
	}

	opts := []session.Option{
		session.WithTickDuration(m.options.TickEvery),
		session.WithLogger(m.options.Logger.WithPrefix("session")),
	}
	if m.options.Autopilot != nil {
		opts = append(opts, session.WithAutopilot(m.options.Autopilot))
	}
	sess := session.New(controller, opts...)

	m.stopRound()
	ctx, cancel := context.WithCancel(context.Background())
	m.stop = cancel
	m.CurrentScreen = GameScreen
	m.GameModel = NewGameModel(sess, cfg, m.options.Autopilot != nil, m.ScreenWidth, m.ScreenHeight)

	m.options.Logger.Info("round started", "width", cfg.Width, "height", cfg.Height, "wrap", cfg.WrapAround)

	return m, tea.Batch(runSession(ctx, sess), m.GameModel.Init())
}

func (m ControllerModel) stopRound() {
	if m.stop != nil {
		m.stop()
	}
}

func runSession(ctx context.Context, sess *session.Session) tea.Cmd {
	return func() tea.Msg {
		if err := sess.Run(ctx); err != nil {
			return sessionErrMsg{err: err}
		}
		return nil
	}
}
