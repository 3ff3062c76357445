package pager

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isaacphi/awsdocs/internal/config"
	"github.com/isaacphi/awsdocs/internal/docs"
)

const document = "abcdefghijklmnopqrstuvwxyz"

var testKeys = config.KeyMap{
	Quit:       []string{"q"},
	ToggleHelp: []string{"?"},
	NextPage:   []string{"n"},
	PrevPage:   []string{"p"},
	ScrollDown: []string{"j"},
	ScrollUp:   []string{"k"},
}

func plain(markdown string, width int) (string, error) { return markdown, nil }

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

type pagerHarness struct {
	t      *testing.T
	model  Model
	starts []int
}

func newHarness(t *testing.T, fail bool) *pagerHarness {
	h := &pagerHarness{t: t}
	fetch := func(ctx context.Context, start int) (docs.Page, error) {
		h.starts = append(h.starts, start)
		if fail {
			return docs.Page{}, errors.New("Failed to fetch https://docs.aws.amazon.com/x.html - status code 404")
		}
		return docs.Paginate("https://docs.aws.amazon.com/x.html", document, start, 10), nil
	}
	h.model = New(context.Background(), fetch, testKeys, WithRenderer(plain))
	h.run(h.model.Init())
	h.send(tea.WindowSizeMsg{Width: 80, Height: 12})
	return h
}

// run executes cmd and feeds its message back into the model.
func (h *pagerHarness) run(cmd tea.Cmd) {
	h.t.Helper()
	if cmd == nil {
		return
	}
	h.send(cmd())
}

func (h *pagerHarness) send(msg tea.Msg) tea.Cmd {
	h.t.Helper()
	next, cmd := h.model.Update(msg)
	h.model = next.(Model)
	return cmd
}

func (h *pagerHarness) press(s string) {
	h.t.Helper()
	h.run(h.send(key(s)))
}

func TestPagerLoadsFirstPage(t *testing.T) {
	h := newHarness(t, false)

	assert.Equal(t, []int{0}, h.starts)
	assert.Equal(t, "abcdefghij", h.model.page.Content)

	view := h.model.View()
	assert.Contains(t, view, "https://docs.aws.amazon.com/x.html")
	assert.Contains(t, view, "characters 1-10 of 26")
	assert.Contains(t, view, "abcdefghij")
}

func TestPagerNavigatesForwardAndBack(t *testing.T) {
	h := newHarness(t, false)

	h.press("n")
	h.press("n")
	assert.Equal(t, "uvwxyz", h.model.page.Content)
	assert.False(t, h.model.page.HasMore)

	h.press("n")
	assert.Equal(t, []int{0, 10, 20}, h.starts, "no request past the last page")

	h.press("p")
	assert.Equal(t, 10, h.model.page.StartIndex)
	h.press("p")
	assert.Equal(t, 0, h.model.page.StartIndex)

	h.press("p")
	assert.Equal(t, []int{0, 10, 20, 10, 0}, h.starts, "no request before the first page")
}

func TestPagerShowsFetchErrors(t *testing.T) {
	h := newHarness(t, true)

	assert.Contains(t, h.model.View(), "status code 404")
	h.press("n")
	assert.Equal(t, []int{0}, h.starts)
}

func TestPagerHelpAndQuit(t *testing.T) {
	h := newHarness(t, false)

	assert.NotContains(t, h.model.View(), "scroll down")
	h.press("?")
	assert.Contains(t, h.model.View(), "scroll down")

	cmd := h.send(key("q"))
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}
