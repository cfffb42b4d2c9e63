package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"crate/internal/match"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	ResultListView ViewState = iota
	CandidateView
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	statusStyle = lipgloss.NewStyle().Faint(true)
)

// Model represents the review TUI state.
type Model struct {
	view    ViewState
	results []match.Result

	resultList list.Model
	candList   list.Model
	reviewing  int // index into results while in CandidateView

	width  int
	height int
	help   help.Model
	keys   keyMap
}

// NewModel builds the review model over a full result slice. Only
// review-classified entries are listed, but accepted or rejected decisions
// are written back into the full slice.
func NewModel(results []match.Result) Model {
	keys := newKeyMap()

	items := reviewItems(results)
	resultList := list.New(items, list.NewDefaultDelegate(), 0, 0)
	resultList.Title = "Matches needing review"
	resultList.SetShowHelp(false)

	// The candidate list is rebuilt when a result is opened, but it has to
	// be a valid list from the start: the first WindowSizeMsg arrives
	// before any key input and resizes both lists.
	candList := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	candList.SetShowHelp(false)

	return Model{
		view:       ResultListView,
		results:    results,
		resultList: resultList,
		candList:   candList,
		reviewing:  -1,
		help:       help.New(),
		keys:       keys,
	}
}

// Results returns the (possibly modified) result slice.
func (m Model) Results() []match.Result { return m.results }

func reviewItems(results []match.Result) []list.Item {
	var items []list.Item
	for i, result := range results {
		if result.Classification == match.ClassReview {
			items = append(items, resultItem{index: i, result: result})
		}
	}
	return items
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resultList.SetSize(msg.Width, msg.Height-4)
		m.candList.SetSize(msg.Width, msg.Height-4)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.quit) {
			return m, tea.Quit
		}
		switch m.view {
		case ResultListView:
			return m.updateResultList(msg)
		case CandidateView:
			return m.updateCandidateList(msg)
		}
	}

	return m, nil
}

func (m Model) updateResultList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.enter):
		item, ok := m.resultList.SelectedItem().(resultItem)
		if !ok {
			return m, nil
		}
		m.reviewing = item.index
		m.candList = m.buildCandidateList(item.index)
		m.view = CandidateView
		return m, nil

	case key.Matches(msg, m.keys.accept):
		if item, ok := m.resultList.SelectedItem().(resultItem); ok {
			m.results[item.index].Classification = match.ClassAuto
			m.refreshResultList()
		}
		return m, nil

	case key.Matches(msg, m.keys.reject):
		if item, ok := m.resultList.SelectedItem().(resultItem); ok {
			m.results[item.index].Classification = match.ClassUnmatched
			m.results[item.index].Track = nil
			m.refreshResultList()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.resultList, cmd = m.resultList.Update(msg)
	return m, cmd
}

func (m Model) updateCandidateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.back):
		m.view = ResultListView
		m.reviewing = -1
		return m, nil

	case key.Matches(msg, m.keys.enter):
		item, ok := m.candList.SelectedItem().(candidateItem)
		if !ok || m.reviewing < 0 {
			return m, nil
		}
		m.results[m.reviewing].Track = item.candidate.Track
		m.results[m.reviewing].Score = item.candidate.Score
		m.results[m.reviewing].Classification = match.ClassAuto
		m.view = ResultListView
		m.reviewing = -1
		m.refreshResultList()
		return m, nil
	}

	var cmd tea.Cmd
	m.candList, cmd = m.candList.Update(msg)
	return m, cmd
}

// buildCandidateList lists the proposed track first, then the alternates
// in score order.
func (m Model) buildCandidateList(index int) list.Model {
	result := m.results[index]

	var items []list.Item
	if result.Track != nil {
		items = append(items, candidateItem{
			candidate: match.Candidate{Track: result.Track, Score: result.Score},
			proposed:  true,
		})
	}
	for _, alt := range result.Alternates {
		items = append(items, candidateItem{candidate: alt})
	}

	l := list.New(items, list.NewDefaultDelegate(), m.width, m.height-4)
	l.Title = fmt.Sprintf("Candidates for %q", result.Entry.Title)
	l.SetShowHelp(false)
	return l
}

func (m *Model) refreshResultList() {
	m.resultList.SetItems(reviewItems(m.results))
}

func (m Model) View() string {
	var body string
	switch m.view {
	case CandidateView:
		body = m.candList.View()
	default:
		if len(m.resultList.Items()) == 0 {
			body = titleStyle.Render("Nothing left to review") + "\n\n" +
				statusStyle.Render("press q to finish")
		} else {
			body = m.resultList.View()
		}
	}

	return body + "\n" + m.help.View(m.keys)
}

// Run drives the review TUI to completion and returns the updated results.
func Run(results []match.Result) ([]match.Result, error) {
	program := tea.NewProgram(NewModel(results), tea.WithAltScreen())
	final, err := program.Run()
	if err != nil {
		return results, fmt.Errorf("review UI failed: %w", err)
	}

	model, ok := final.(Model)
	if !ok {
		return results, nil
	}
	return model.Results(), nil
}
