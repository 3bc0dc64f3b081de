// Package tui drills flash cards in the terminal. The bubbletea event loop is
// the only goroutine that touches the navigator; the card load runs as a
// command and comes back as a message.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"flashcards/internal/domain"
	"flashcards/internal/navigator"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

type status int

const (
	statusLoading status = iota
	statusReady
	statusEmpty
	statusFailed
)

type cardsLoadedMsg struct {
	set domain.CardSet
	err error
}

// Model is the bubbletea model for a card drill
type Model struct {
	ctx    context.Context
	source navigator.Source
	logger *zap.Logger

	view   *view
	nav    *navigator.Navigator
	status status
}

// New creates a model that loads its cards from source
func New(ctx context.Context, source navigator.Source, logger *zap.Logger) *Model {
	v := &view{}
	return &Model{
		ctx:    ctx,
		source: source,
		logger: logger,
		view:   v,
		nav:    navigator.New(v),
	}
}

// Init starts the card load
func (m *Model) Init() tea.Cmd {
	return m.load
}

func (m *Model) load() tea.Msg {
	set, err := m.source.LoadCards(m.ctx)
	return cardsLoadedMsg{set: set, err: err}
}

// Update applies loads and key presses
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case cardsLoadedMsg:
		m.deliver(msg)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case " ", "enter":
			if err := m.nav.OnAction(); err != nil && !errors.Is(err, navigator.ErrClosed) {
				m.logger.Error("Card action failed", zap.Error(err))
			}
		case "q", "esc", "ctrl+c":
			m.nav.Close()
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m *Model) deliver(msg cardsLoadedMsg) {
	if m.nav.Closed() {
		m.logger.Debug("Drill closed before cards were delivered")
		return
	}

	if msg.err != nil {
		m.logger.Error("Failed to load cards", zap.Error(msg.err))
		m.status = statusFailed
		return
	}

	if !m.nav.Deliver(msg.set) {
		m.logger.Info("No cards to drill")
		m.status = statusEmpty
		return
	}

	m.logger.Info("Cards delivered", zap.Int("count", msg.set.Len()))
	m.status = statusReady
}

// View draws the current card
func (m *Model) View() string {
	// Nothing left to draw once the drill is torn down
	if m.nav.Closed() {
		return ""
	}

	switch m.status {
	case statusLoading:
		return "Loading cards...\n"
	case statusEmpty:
		return "No cards found. Press q to quit.\n"
	case statusFailed:
		return "Could not load cards. Press q to quit.\n"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n  %s\n\n", m.view.word)
	if m.view.visible {
		fmt.Fprintf(&b, "  %s\n\n", m.view.definition)
	} else {
		b.WriteString("  ...\n\n")
	}
	fmt.Fprintf(&b, "  [space] %s  [q] Quit   %d/%d\n", m.view.label, m.nav.Position()+1, m.nav.Len())
	return b.String()
}

// view records render calls for Model.View
type view struct {
	word       string
	definition string
	visible    bool
	label      string
}

func (v *view) RenderWord(text string) {
	v.word = text
}

func (v *view) RenderDefinition(text string, visible bool) {
	v.definition = text
	v.visible = visible
}

func (v *view) RenderActionLabel(text string) {
	v.label = text
}
