package views

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nvaler/tripscout/internal/model"
	"github.com/nvaler/tripscout/internal/tui/styles"
)

// Field indices
const (
	fieldQuery = iota
	fieldTypes
	fieldRadius
	fieldMaxPerType
	fieldSort
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"Location",
	"Types",
	"Radius (m)",
	"Max per type",
	"Sort by",
}

// StartSearchMsg asks the app to run the pipeline with these parameters.
type StartSearchMsg struct {
	Params model.RecommendParams
}

type SearchModel struct {
	inputs  []textinput.Model
	focused int
	err     string
}

func NewSearchModel() SearchModel {
	inputs := make([]textinput.Model, fieldCount)
	inputs[fieldQuery] = newInput("Tokyo, Japan", 60)
	inputs[fieldTypes] = newInput("tourist_attraction, restaurant, museum", 60)
	inputs[fieldRadius] = newInput("5000", 10)
	inputs[fieldMaxPerType] = newInput("10", 10)
	inputs[fieldSort] = newInput("rating | distance | reviews", 30)

	inputs[fieldQuery].Focus()

	return SearchModel{inputs: inputs}
}

func newInput(placeholder string, limit int) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = limit
	return in
}

func (m SearchModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m SearchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, func() tea.Msg { return NavigateToHome{} }
		case "tab", "down":
			m.focusField((m.focused + 1) % fieldCount)
			return m, nil
		case "shift+tab", "up":
			m.focusField((m.focused + fieldCount - 1) % fieldCount)
			return m, nil
		case "enter":
			params, err := m.buildParams()
			if err != nil {
				m.err = err.Error()
				return m, nil
			}
			return m, func() tea.Msg { return StartSearchMsg{Params: params} }
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
	return m, cmd
}

func (m *SearchModel) focusField(i int) {
	m.inputs[m.focused].Blur()
	m.focused = i
	m.inputs[m.focused].Focus()
	m.err = ""
}

func (m SearchModel) buildParams() (model.RecommendParams, error) {
	var params model.RecommendParams

	params.Query = strings.TrimSpace(m.inputs[fieldQuery].Value())
	if params.Query == "" {
		return params, fmt.Errorf("location is required")
	}

	if typesStr := strings.TrimSpace(m.inputs[fieldTypes].Value()); typesStr != "" {
		for _, t := range strings.Split(typesStr, ",") {
			if t = strings.TrimSpace(t); t != "" {
				params.Types = append(params.Types, t)
			}
		}
	}

	if v := strings.TrimSpace(m.inputs[fieldRadius].Value()); v != "" {
		radius, err := strconv.Atoi(v)
		if err != nil || radius <= 0 {
			return params, fmt.Errorf("radius must be a positive number")
		}
		params.RadiusMeters = radius
	}

	if v := strings.TrimSpace(m.inputs[fieldMaxPerType].Value()); v != "" {
		perType, err := strconv.Atoi(v)
		if err != nil || perType <= 0 {
			return params, fmt.Errorf("max per type must be a positive number")
		}
		params.MaxPerType = perType
	}

	switch v := strings.TrimSpace(m.inputs[fieldSort].Value()); v {
	case "", model.SortByRating, model.SortByDistance, model.SortByReviews:
		params.SortBy = v
	default:
		return params, fmt.Errorf("sort must be rating, distance or reviews")
	}

	return params, nil
}

func (m SearchModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("New Search") + "\n\n")

	for i := range m.inputs {
		label := styles.Label.Render(fieldLabels[i])
		b.WriteString(label + m.inputs[i].View() + "\n")
	}

	if m.err != "" {
		b.WriteString("\n" + styles.ErrorText.Render("✗ "+m.err) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.StatusBar.Render("tab next field • enter search • esc back"))

	return styles.FocusedBorder.Render(b.String())
}
