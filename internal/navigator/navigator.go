package navigator

import (
	"context"
	"errors"

	"flashcards/internal/domain"
)

// Action labels
const (
	LabelShowDefinition = "Show definition"
	LabelNextWord       = "Next word"
)

// ErrClosed is returned by navigation calls made after Close
var ErrClosed = errors.New("navigator: closed")

// Renderer receives everything the navigator draws. All calls are idempotent setters.
type Renderer interface {
	RenderWord(text string)
	RenderDefinition(text string, visible bool)
	RenderActionLabel(text string)
}

// Flusher is implemented by renderers that buffer render calls and push them
// out in one step, like a chat message edit.
type Flusher interface {
	Flush() error
}

// Source loads the cards for one session
type Source interface {
	LoadCards(ctx context.Context) (domain.CardSet, error)
}

// Navigator cycles through a card set, toggling between hidden and shown
// definition. It is not safe for concurrent use: every call must come from the
// same foreground context.
type Navigator struct {
	renderer Renderer
	cards    domain.CardSet
	position int
	state    domain.DisplayState
	loaded   bool
	closed   bool
}

// New creates an inert navigator drawing into r
func New(r Renderer) *Navigator {
	return &Navigator{renderer: r}
}

// Deliver applies a loaded card set and renders the first card.
// Returns false when nothing was applied: the set is empty, a set was
// already delivered, or the navigator is closed.
func (n *Navigator) Deliver(set domain.CardSet) bool {
	if n.closed || n.loaded || set.Empty() {
		return false
	}

	n.cards = set
	n.loaded = true
	n.position = 0
	n.hide()
	return true
}

// OnAction handles the single user action
func (n *Navigator) OnAction() error {
	if n.closed {
		return ErrClosed
	}
	if !n.loaded {
		return nil
	}

	switch n.state {
	case domain.StateHidden:
		return n.Reveal()
	default:
		return n.Advance()
	}
}

// Reveal shows the definition of the current card
func (n *Navigator) Reveal() error {
	if n.closed {
		return ErrClosed
	}
	if !n.loaded {
		return nil
	}

	n.state = domain.StateShown
	n.renderer.RenderDefinition(n.cards.At(n.position).Definition, true)
	n.renderer.RenderActionLabel(LabelNextWord)
	return nil
}

// Advance moves to the next card, wrapping after the last one, and hides its definition
func (n *Navigator) Advance() error {
	if n.closed {
		return ErrClosed
	}
	if !n.loaded {
		return nil
	}

	n.position = n.cards.Next(n.position)
	n.hide()
	return nil
}

// Close releases the card set. Calling it more than once is harmless.
func (n *Navigator) Close() {
	if n.closed {
		return
	}
	n.closed = true
	n.loaded = false
	n.cards = domain.CardSet{}
	n.position = 0
	n.state = domain.StateHidden
}

// Current returns the card at the current position
func (n *Navigator) Current() (domain.CardEntry, error) {
	if n.closed {
		return domain.CardEntry{}, ErrClosed
	}
	if !n.loaded {
		return domain.CardEntry{}, nil
	}
	return n.cards.At(n.position), nil
}

// Position returns the index of the current card
func (n *Navigator) Position() int {
	return n.position
}

// State returns the display state
func (n *Navigator) State() domain.DisplayState {
	return n.state
}

// Loaded reports whether a non-empty card set has been delivered
func (n *Navigator) Loaded() bool {
	return n.loaded
}

// Closed reports whether Close was called
func (n *Navigator) Closed() bool {
	return n.closed
}

// Len returns the size of the delivered card set
func (n *Navigator) Len() int {
	return n.cards.Len()
}

func (n *Navigator) hide() {
	card := n.cards.At(n.position)
	n.state = domain.StateHidden
	n.renderer.RenderWord(card.Word)
	n.renderer.RenderDefinition(card.Definition, false)
	n.renderer.RenderActionLabel(LabelShowDefinition)
}
