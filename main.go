package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	config := loadConfig()
	if err := config.parseFlags(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "courtboard:", err)
		os.Exit(2)
	}

	f, err := tea.LogToFile(config.LogFile, "courtboard")
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	logger, err := InitLogger(config.LogLevel, f)
	if err != nil {
		log.Fatal(err)
	}

	p := tea.NewProgram(
		initialModel(config, logger),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)
	if _, err := p.Run(); err != nil {
		log.Fatal(err)
	}
}

func initialModel(config *Config, logger *slog.Logger) model {
	m := model{
		mode:   ModeNormal,
		editor: NewEditor(logger),
		client: NewPlayClient(config.ServerURL),
		config: config,
		log:    logger,
	}
	if err := m.editor.DrawCourt(config.CourtImage); err != nil {
		m.errorMessage = err.Error()
	}

	if config.OpenFile != "" {
		if err := m.openDocument(config.OpenFile); err != nil {
			m.errorMessage = err.Error()
		}
	}
	return m
}

func (m model) Init() tea.Cmd {
	if m.config.PlayID != "" {
		return m.loadPlayCmd(m.config.PlayID)
	}
	return nil
}

func (m *model) openDocument(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	if err := m.editor.Deserialize(data); err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	return nil
}

func (m *model) savePlayCmd(req SaveRequest) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		id, err := client.Save(context.Background(), req)
		return playSavedMsg{id: id, err: err}
	}
}

func (m *model) loadPlayCmd(id string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		play, err := client.Load(context.Background(), id)
		return playLoadedMsg{play: play, err: err}
	}
}
