// Package tui is the interactive terminal front end over the
// recommendation engine: a search form feeding a sortable results
// explorer.
package tui

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/nvaler/tripscout/internal/config"
	"github.com/nvaler/tripscout/internal/engine/places"
	"github.com/nvaler/tripscout/internal/engine/recommend"
	"github.com/nvaler/tripscout/internal/tui/views"
)

type viewID int

const (
	viewHome viewID = iota
	viewSearch
	viewResults
)

// App is the root bubbletea model.
type App struct {
	recommender *recommend.Recommender
	currentView viewID
	width       int
	height      int
	home        views.HomeModel
	search      views.SearchModel
	results     views.ResultsModel
}

func NewApp(recommender *recommend.Recommender) App {
	return App{
		recommender: recommender,
		currentView: viewHome,
		home:        views.NewHomeModel(),
		search:      views.NewSearchModel(),
	}
}

func (a App) Init() tea.Cmd {
	return a.home.Init()
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
	case views.NavigateToSearch:
		a.currentView = viewSearch
		a.search = views.NewSearchModel()
		return a, a.search.Init()
	case views.NavigateToHome:
		a.currentView = viewHome
		return a, nil
	case views.StartSearchMsg:
		a.currentView = viewResults
		a.results = views.NewResultsModel(a.recommender, msg.Params)
		return a, tea.Batch(a.results.Init(), a.sizeCmd())
	}

	var cmd tea.Cmd
	switch a.currentView {
	case viewHome:
		var m tea.Model
		m, cmd = a.home.Update(msg)
		a.home = m.(views.HomeModel)
	case viewSearch:
		var m tea.Model
		m, cmd = a.search.Update(msg)
		a.search = m.(views.SearchModel)
	case viewResults:
		var m tea.Model
		m, cmd = a.results.Update(msg)
		a.results = m.(views.ResultsModel)
	}

	return a, cmd
}

func (a App) View() string {
	var content string
	switch a.currentView {
	case viewHome:
		content = a.home.View()
	case viewSearch:
		content = a.search.View()
	case viewResults:
		content = a.results.View()
	}

	return lipgloss.Place(
		a.width, a.height,
		lipgloss.Center, lipgloss.Top,
		content,
	)
}

// sizeCmd sends a WindowSizeMsg so newly created views get the current terminal size.
func (a App) sizeCmd() tea.Cmd {
	w, h := a.width, a.height
	return func() tea.Msg {
		return tea.WindowSizeMsg{Width: w, Height: h}
	}
}

// Run loads the configuration, wires the engine and starts the TUI.
// Engine logs go to a session file so the alt screen stays clean.
func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := zerolog.Nop()
	if dir, err := os.UserCacheDir(); err == nil {
		logDir := filepath.Join(dir, "tripscout")
		os.MkdirAll(logDir, 0755)
		logFile, err := os.OpenFile(filepath.Join(logDir, "tripscout.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err == nil {
			logger = zerolog.New(logFile).With().Timestamp().Logger()
		}
	}

	client := places.NewClient(cfg.Provider, cfg.APIKey, logger)
	recommender := recommend.NewRecommender(client, cfg.Search, logger)

	p := tea.NewProgram(NewApp(recommender), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running tui: %w", err)
	}
	return nil
}
