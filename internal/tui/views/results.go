package views

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/goccy/go-json"

	"github.com/nvaler/tripscout/internal/engine/geo"
	"github.com/nvaler/tripscout/internal/engine/recommend"
	"github.com/nvaler/tripscout/internal/model"
	"github.com/nvaler/tripscout/internal/tui/styles"
)

// ResultsModel runs one recommendation and explores the outcome: a
// sortable table with route ordering, detail fetch and JSON export.
type ResultsModel struct {
	recommender *recommend.Recommender
	params      model.RecommendParams

	spinner spinner.Model
	table   table.Model

	rec       *model.TravelRecommendation
	display   []model.Activity
	sortBy    string
	routeMode bool

	loading        bool
	fetchingDetail bool
	detail         *model.Activity
	status         string
	width          int
	height         int
}

type searchDoneMsg struct {
	rec *model.TravelRecommendation
}

type detailDoneMsg struct {
	activity *model.Activity
	err      error
}

func NewResultsModel(recommender *recommend.Recommender, params model.RecommendParams) ResultsModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(styles.Primary)

	return ResultsModel{
		recommender: recommender,
		params:      params,
		spinner:     sp,
		loading:     true,
	}
}

func (m ResultsModel) Init() tea.Cmd {
	recommender, params := m.recommender, m.params
	search := func() tea.Msg {
		return searchDoneMsg{rec: recommender.Recommend(context.Background(), params)}
	}
	return tea.Batch(m.spinner.Tick, search)
}

func (m ResultsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.rec != nil {
			m.rebuildTable()
		}
		return m, nil

	case spinner.TickMsg:
		if !m.loading && !m.fetchingDetail {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case searchDoneMsg:
		m.loading = false
		m.rec = msg.rec
		m.sortBy = effectiveSort(m.params.SortBy)
		m.display = append([]model.Activity(nil), m.rec.Activities...)
		m.rebuildTable()
		return m, nil

	case detailDoneMsg:
		m.fetchingDetail = false
		if msg.err != nil {
			m.status = "details failed: " + msg.err.Error()
		} else if msg.activity == nil {
			m.status = "no details available"
		} else {
			m.detail = msg.activity
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if !m.loading && m.rec != nil {
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m ResultsModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		if m.detail != nil {
			m.detail = nil
			return m, nil
		}
		return m, func() tea.Msg { return NavigateToHome{} }

	case "s":
		if m.rec == nil || m.loading {
			return m, nil
		}
		m.sortBy = nextSort(m.sortBy)
		m.routeMode = false
		m.display = append([]model.Activity(nil), m.rec.Activities...)
		recommend.SortActivities(m.display, m.sortBy)
		m.rebuildTable()
		return m, nil

	case "o":
		if m.rec == nil || m.loading || m.rec.SearchLocation == nil {
			return m, nil
		}
		m.routeMode = !m.routeMode
		if m.routeMode {
			m.display = recommend.PlanRoute(m.display, *m.rec.SearchLocation)
		} else {
			m.display = append([]model.Activity(nil), m.rec.Activities...)
			recommend.SortActivities(m.display, m.sortBy)
		}
		m.rebuildTable()
		return m, nil

	case "enter":
		if m.rec == nil || m.loading || m.fetchingDetail {
			return m, nil
		}
		idx := m.table.Cursor()
		if idx < 0 || idx >= len(m.display) {
			return m, nil
		}
		m.fetchingDetail = true
		m.status = ""
		recommender := m.recommender
		placeID := m.display[idx].PlaceID
		fetch := func() tea.Msg {
			a, err := recommender.PlaceDetails(context.Background(), placeID)
			return detailDoneMsg{activity: a, err: err}
		}
		return m, tea.Batch(m.spinner.Tick, fetch)

	case "e":
		if m.rec == nil || m.loading {
			return m, nil
		}
		path := fmt.Sprintf("tripscout_%s.json", time.Now().Format("20060102_150405"))
		if err := m.exportJSON(path); err != nil {
			m.status = "export failed: " + err.Error()
		} else {
			m.status = "saved " + path
		}
		return m, nil
	}

	if !m.loading && m.rec != nil {
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *ResultsModel) exportJSON(path string) error {
	data, err := json.MarshalIndent(m.rec, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (m *ResultsModel) rebuildTable() {
	columns := []table.Column{
		{Title: "#", Width: 3},
		{Title: "Name", Width: 32},
		{Title: "Rating", Width: 7},
		{Title: "Reviews", Width: 8},
		{Title: "Distance", Width: 9},
		{Title: "Price", Width: 6},
		{Title: "Types", Width: 26},
	}

	rows := make([]table.Row, len(m.display))
	for i := range m.display {
		a := &m.display[i]

		rating := "-"
		if a.Rating != nil {
			rating = fmt.Sprintf("%.1f", *a.Rating)
		}
		reviews := "-"
		if a.UserRatingsTotal != nil {
			reviews = strconv.Itoa(*a.UserRatingsTotal)
		}
		distance := "-"
		if a.Distance != nil {
			distance = geo.FormatDistance(*a.Distance)
		}

		rows[i] = table.Row{
			strconv.Itoa(i + 1),
			a.Name,
			rating,
			reviews,
			distance,
			a.PriceSymbol(),
			strings.Join(a.Types, ","),
		}
	}

	height := m.height - 12
	if height < 5 {
		height = 5
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(height),
	)
	ts := table.DefaultStyles()
	ts.Header = ts.Header.Bold(true).Foreground(styles.Secondary)
	ts.Selected = ts.Selected.Foreground(styles.Primary).Bold(true)
	t.SetStyles(ts)

	m.table = t
}

func (m ResultsModel) View() string {
	if m.loading {
		return styles.Border.Render(fmt.Sprintf("%s Searching near %q...", m.spinner.View(), m.params.Query))
	}

	if m.rec.QueryInfo != nil && m.rec.QueryInfo.Error != "" {
		var b strings.Builder
		b.WriteString(styles.ErrorText.Render("✗ "+m.rec.QueryInfo.Error) + "\n\n")
		b.WriteString(styles.Value.Render(fmt.Sprintf("Nothing found for %q.", m.params.Query)) + "\n")
		b.WriteString(styles.StatusBar.Render("esc back"))
		return styles.Border.Render(b.String())
	}

	if m.detail != nil {
		return m.detailView()
	}

	var b strings.Builder
	header := fmt.Sprintf("%d results near %q", m.rec.TotalCount, m.params.Query)
	if m.routeMode {
		header += " — route order"
	} else {
		header += " — by " + m.sortBy
	}
	b.WriteString(styles.Title.Render(header) + "\n")
	b.WriteString(m.table.View() + "\n")

	if m.fetchingDetail {
		b.WriteString(m.spinner.View() + " fetching details...\n")
	}
	if m.status != "" {
		b.WriteString(styles.SuccessText.Render(m.status) + "\n")
	}
	b.WriteString(styles.StatusBar.Render("↑↓ move • enter details • s sort • o route • e export • esc back"))

	return b.String()
}

func (m ResultsModel) detailView() string {
	a := m.detail
	var b strings.Builder

	b.WriteString(styles.Title.Render(a.Name) + "\n")
	b.WriteString(styles.Label.Render("Address") + styles.Value.Render(a.Address) + "\n")
	if a.Rating != nil {
		count := 0
		if a.UserRatingsTotal != nil {
			count = *a.UserRatingsTotal
		}
		b.WriteString(styles.Label.Render("Rating") + styles.Value.Render(fmt.Sprintf("%.1f (%d reviews)", *a.Rating, count)) + "\n")
	}
	b.WriteString(styles.Label.Render("Price") + styles.Value.Render(a.PriceSymbol()) + "\n")
	if a.IsOpenNow() {
		b.WriteString(styles.Label.Render("Status") + styles.SuccessText.Render("Open now") + "\n")
	}
	if len(a.Types) > 0 {
		b.WriteString(styles.Label.Render("Types") + styles.Value.Render(strings.Join(a.Types, ", ")) + "\n")
	}
	if len(a.Photos) > 0 {
		b.WriteString(styles.Label.Render("Photos") + styles.Value.Render(strconv.Itoa(len(a.Photos))) + "\n")
	}

	if len(a.Reviews) > 0 {
		b.WriteString("\n" + styles.Subtitle.Render("Reviews") + "\n")
		for _, r := range a.Reviews {
			rating := "-"
			if r.Rating != nil {
				rating = fmt.Sprintf("%.0f★", *r.Rating)
			}
			b.WriteString(styles.ActiveItem.Render(r.Author) + "\n")
			b.WriteString(styles.Value.Render(fmt.Sprintf("  %s  %s", rating, truncate(r.Text, 120))) + "\n")
		}
	}

	b.WriteString("\n" + styles.StatusBar.Render("esc close"))
	return styles.FocusedBorder.Render(b.String())
}

// truncate shortens s to at most n runes. Review text is routinely
// non-ASCII, so cutting on a byte offset could split a rune.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "..."
}

func effectiveSort(sortBy string) string {
	if sortBy == "" {
		return model.SortByRating
	}
	return sortBy
}

func nextSort(sortBy string) string {
	switch sortBy {
	case model.SortByRating:
		return model.SortByDistance
	case model.SortByDistance:
		return model.SortByReviews
	default:
		return model.SortByRating
	}
}
