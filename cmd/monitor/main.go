package main

import (
	"flag"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/dakotalabs/glstream/cmd/monitor/internal/view"
	"github.com/dakotalabs/glstream/internal/config"
)

type model struct {
	stream view.StreamModel
}

func (m model) Init() tea.Cmd {
	return m.stream.Init()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.stream, cmd = m.stream.Update(msg)

	return m, cmd
}

func (m model) View() string {
	return m.stream.View()
}

func main() {
	url := flag.String("url", "", "base URL of the GL stream API (defaults to INGEST_API_URL)")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	baseURL := cfg.Ingest.APIBaseURL
	if *url != "" {
		baseURL = *url
	}

	p := tea.NewProgram(model{stream: view.NewStreamModel(baseURL)}, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		slog.Error("monitor failed", "error", err)
		os.Exit(1)
	}
}
