// Package pager is an interactive reader for paginated documentation. It
// requests the next window from the docs service on demand instead of
// loading the whole page at once.
package pager

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/isaacphi/awsdocs/internal/config"
	"github.com/isaacphi/awsdocs/internal/docs"
	"github.com/isaacphi/awsdocs/internal/ui/tui/theme"
)

// FetchFunc loads the window that starts at startIndex.
type FetchFunc func(ctx context.Context, startIndex int) (docs.Page, error)

// RenderFunc turns page markdown into terminal output at the given width.
type RenderFunc func(markdown string, width int) (string, error)

type pageMsg struct {
	page docs.Page
	err  error
}

// Model is the bubbletea model of the pager.
type Model struct {
	ctx      context.Context
	fetch    FetchFunc
	render   RenderFunc
	keys     config.KeyMap
	theme    *theme.Theme
	viewport viewport.Model

	page     docs.Page
	previous []int // start indexes of the pages behind the current one
	loading  bool
	err      error
	showHelp bool
	width    int
}

type Option func(*Model)

// WithRenderer replaces the glamour markdown renderer.
func WithRenderer(r RenderFunc) Option {
	return func(m *Model) { m.render = r }
}

func New(ctx context.Context, fetch FetchFunc, keys config.KeyMap, opts ...Option) Model {
	m := Model{
		ctx:      ctx,
		fetch:    fetch,
		render:   renderMarkdown,
		keys:     keys,
		theme:    theme.DefaultTheme(),
		viewport: viewport.New(80, 20),
		width:    80,
		loading:  true,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Run opens the pager on the terminal and blocks until the user quits.
func Run(ctx context.Context, fetch FetchFunc, keys config.KeyMap) error {
	p := tea.NewProgram(New(ctx, fetch, keys), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

func renderMarkdown(markdown string, width int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	return r.Render(markdown)
}

func (m Model) Init() tea.Cmd {
	return m.load(0)
}

func (m Model) load(startIndex int) tea.Cmd {
	return func() tea.Msg {
		page, err := m.fetch(m.ctx, startIndex)
		return pageMsg{page: page, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-lipgloss.Height(m.headerView())-lipgloss.Height(m.footerView()), 1)
		m.setContent()
		return m, nil

	case pageMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.page = msg.page
			m.setContent()
			m.viewport.GotoTop()
		}
		return m, nil

	case tea.KeyMsg:
		switch m.keys.Action(msg.String()) {
		case config.KeyActionQuit:
			return m, tea.Quit
		case config.KeyActionToggleHelp:
			m.showHelp = !m.showHelp
			return m, nil
		case config.KeyActionNextPage:
			if m.loading || !m.page.HasMore {
				return m, nil
			}
			m.previous = append(m.previous, m.page.StartIndex)
			m.loading = true
			return m, m.load(m.page.NextIndex())
		case config.KeyActionPrevPage:
			if m.loading || len(m.previous) == 0 {
				return m, nil
			}
			start := m.previous[len(m.previous)-1]
			m.previous = m.previous[:len(m.previous)-1]
			m.loading = true
			return m, m.load(start)
		case config.KeyActionScrollDown:
			m.viewport.LineDown(1)
			return m, nil
		case config.KeyActionScrollUp:
			m.viewport.LineUp(1)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) setContent() {
	if m.page.Length == 0 {
		m.viewport.SetContent("No more content available.")
		return
	}
	rendered, err := m.render(m.page.Content, m.width)
	if err != nil {
		rendered = m.page.Content
	}
	m.viewport.SetContent(rendered)
}

func (m Model) View() string {
	return lipgloss.JoinVertical(lipgloss.Left, m.headerView(), m.viewport.View(), m.footerView())
}

func (m Model) headerView() string {
	title := m.theme.HeaderStyle.Render(m.page.URL)
	return lipgloss.JoinVertical(lipgloss.Left, title, m.theme.StatusStyle.Render(m.status()))
}

func (m Model) status() string {
	switch {
	case m.err != nil:
		return m.theme.ErrorStyle.Render(m.err.Error())
	case m.loading:
		return "loading..."
	case m.page.Length == 0:
		return fmt.Sprintf("end of document (%d characters)", m.page.OriginalLength)
	}
	return fmt.Sprintf("characters %d-%d of %d", m.page.StartIndex+1, m.page.NextIndex(), m.page.OriginalLength)
}

type hint struct {
	action string
	label  string
}

var (
	shortHints = []hint{
		{config.KeyActionNextPage, "next page"},
		{config.KeyActionPrevPage, "previous page"},
		{config.KeyActionQuit, "quit"},
		{config.KeyActionToggleHelp, "help"},
	}
	fullHints = []hint{
		{config.KeyActionNextPage, "next page"},
		{config.KeyActionPrevPage, "previous page"},
		{config.KeyActionScrollDown, "scroll down"},
		{config.KeyActionScrollUp, "scroll up"},
		{config.KeyActionQuit, "quit"},
		{config.KeyActionToggleHelp, "close help"},
	}
)

func (m Model) footerView() string {
	hints := shortHints
	if m.showHelp {
		hints = fullHints
	}

	var parts []string
	for _, h := range hints {
		keys := m.keys.GetKeys(h.action)
		if len(keys) == 0 {
			continue
		}
		parts = append(parts, m.theme.KeyHintStyle.Render(strings.Join(keys, "/"))+" "+h.label)
	}
	return m.theme.FooterStyle.Render(strings.Join(parts, " • "))
}
