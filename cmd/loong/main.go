package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/Mshel/loong/internal/cli"
	"github.com/Mshel/loong/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

func main() {
	settings := cli.Register(flag.CommandLine)
	logPath := flag.String("log-file", "", "write logs to this file; the terminal belongs to the game")
	flag.Parse()

	var logOutput io.Writer = io.Discard
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Printf("error %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logOutput = f
	}

	logger := log.NewWithOptions(logOutput, log.Options{ReportTimestamp: true})
	level, err := settings.Level()
	if err != nil {
		fmt.Printf("error %v\n", err)
		os.Exit(2)
	}
	logger.SetLevel(level)

	options, err := settings.Options(logger)
	if err != nil {
		fmt.Printf("error %v\n", err)
		os.Exit(2)
	}

	p := tea.NewProgram(ui.NewControllerModel(options, 0, 0), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.Error("program stopped", "err", err)
		fmt.Printf("error %v\n", err)
		os.Exit(1)
	}
}
