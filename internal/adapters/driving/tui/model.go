// Package tui provides a small interactive terminal UI for querying
// the knowledge base.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/alejandro-ao/rag-mcp/internal/core/domain"
	"github.com/alejandro-ao/rag-mcp/internal/core/ports/driving"
)

// queryLimit is how many results a TUI query fetches.
const queryLimit = 10

var (
	headerStyle    = lipgloss.NewStyle().Bold(true)
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	pathStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	resultBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// queryDoneMsg carries the outcome of an asynchronous query.
type queryDoneMsg struct {
	query   string
	results []domain.QueryResult
	err     error
}

// Model is the Bubble Tea model for the query UI.
type Model struct {
	ctx      context.Context
	query    driving.QueryService
	input    textinput.Model
	viewport viewport.Model

	results   []domain.QueryResult
	lastQuery string
	status    string
	cursor    int
	searching bool
	ready     bool
}

// New creates the TUI model.
func New(ctx context.Context, query driving.QueryService) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask the knowledge base and press Enter"
	ti.Focus()

	return Model{
		ctx:      ctx,
		query:    query,
		input:    ti,
		viewport: viewport.New(0, 0),
		status:   "Ready. Type a question to search.",
	}
}

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, rh := resultBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		reserved := 2 + qh // header, status and the input box
		vh := msg.Height - reserved - rh
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = msg.Width
		m.viewport.Height = vh
		m.viewport.SetContent(m.renderCurrentResult())
		return m, nil

	case queryDoneMsg:
		m.searching = false
		if msg.err != nil {
			m.status = errorStyle.Render("Error: " + msg.err.Error())
			m.results = nil
		} else if len(msg.results) == 0 {
			m.status = fmt.Sprintf("No matches for %q", msg.query)
			m.results = nil
		} else {
			m.status = fmt.Sprintf("%d results for %q (up/down to browse)", len(msg.results), msg.query)
			m.results = msg.results
			m.cursor = 0
			m.lastQuery = msg.query
		}
		m.viewport.SetContent(m.renderCurrentResult())
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyEsc {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			q := strings.TrimSpace(m.input.Value())
			if q != "" && !m.searching {
				m.searching = true
				m.status = "Searching..."
				return m, m.runQuery(q)
			}
		case "down":
			if len(m.results) > 0 {
				m.cursor = (m.cursor + 1) % len(m.results)
				m.viewport.SetContent(m.renderCurrentResult())
				return m, nil
			}
		case "up":
			if len(m.results) > 0 {
				m.cursor = (m.cursor - 1 + len(m.results)) % len(m.results)
				m.viewport.SetContent(m.renderCurrentResult())
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the layout.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := headerStyle.Render("rag-mcp query")
	results := resultBoxStyle.Render(m.viewport.View())
	input := queryBoxStyle.Render(m.input.View())
	status := statusStyle.Render(m.status)
	return header + "\n" + results + "\n" + input + "\n" + status
}

// runQuery issues the query off the update loop.
func (m Model) runQuery(q string) tea.Cmd {
	return func() tea.Msg {
		results, err := m.query.Query(m.ctx, q, domain.QueryOptions{Limit: queryLimit})
		return queryDoneMsg{query: q, results: results, err: err}
	}
}

// renderCurrentResult shows the chunk under the cursor.
func (m Model) renderCurrentResult() string {
	if len(m.results) == 0 {
		return "No results yet."
	}
	r := m.results[m.cursor]
	title := fmt.Sprintf("Result %d/%d  score=%.3f", m.cursor+1, len(m.results), r.Score)
	source := pathStyle.Render(fmt.Sprintf("%s (chunk %d)", r.Path, r.ChunkIndex))
	return title + "\n" + source + "\n\n" + r.Text
}
