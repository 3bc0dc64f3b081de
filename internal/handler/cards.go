package handler

import (
	"context"
	"errors"
	"fmt"

	"flashcards/internal/navigator"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const (
	msgLoading = "⏳ Loading cards..."
	msgNoCards = "📭 No cards found."
)

// OpenSession starts a fresh card session for chat, replacing any previous one.
// The loading message becomes the card once the cards arrive.
func (h *Handler) OpenSession(chat *tele.Chat) (*navigator.Session, error) {
	msg, err := h.messenger.Send(chat, msgLoading)
	if err != nil {
		return nil, fmt.Errorf("failed to send loading message: %w", err)
	}

	view := newCardView(h.messenger, chat, msg)
	s := navigator.NewSession(view, h.logger.With(zap.Int64("chat_id", chat.ID)))
	view.sessionID = s.ID()

	// Whatever this replaces gets closed, even with concurrent /start updates
	h.sessionMux.Lock()
	old := h.sessions[chat.ID]
	h.sessions[chat.ID] = s
	h.sessionMux.Unlock()

	if old != nil {
		old.Close()
		h.logger.Debug("Replaced previous card session",
			zap.Int64("chat_id", chat.ID),
			zap.String("session_id", old.ID()),
		)
	}

	ctx, cancel := context.WithTimeout(h.ctx, loadTimeout)
	if err := s.LoadAsync(ctx, h.cards); err != nil {
		cancel()
		h.removeSession(chat.ID, s)
		return nil, fmt.Errorf("failed to start loading cards: %w", err)
	}

	go h.watchLoad(ctx, cancel, s, view)

	return s, nil
}

// watchLoad tells the user when the load produced nothing to drill
func (h *Handler) watchLoad(ctx context.Context, cancel context.CancelFunc, s *navigator.Session, view *cardView) {
	defer cancel()
	<-s.Done()

	snap, err := s.Snapshot(ctx)
	if err != nil || snap.Loaded {
		return
	}

	if err := view.Notice(msgNoCards); err != nil {
		h.logger.Warn("Failed to show empty notice", zap.Error(err))
	}
}

// sessionFor returns the session a button tap or command belongs to.
// Taps on the keyboard of a replaced card message match no session.
func (h *Handler) sessionFor(c tele.Context) *navigator.Session {
	s := h.Session(c.Chat().ID)
	if s == nil {
		return nil
	}
	if c.Callback() != nil && c.Data() != s.ID() {
		return nil
	}
	return s
}

// handleAction reveals the definition or moves to the next word
func (h *Handler) handleAction(c tele.Context) error {
	chatID := c.Chat().ID

	s := h.sessionFor(c)
	if s == nil {
		return c.Respond(&tele.CallbackResponse{Text: msgNoSession})
	}

	ctx, cancel := context.WithTimeout(h.ctx, actionTimeout)
	defer cancel()

	if err := s.Action(ctx); err != nil {
		if errors.Is(err, navigator.ErrClosed) {
			return c.Respond(&tele.CallbackResponse{Text: msgNoSession})
		}
		h.logger.Error("Failed to handle card action",
			zap.Error(err),
			zap.Int64("chat_id", chatID),
			zap.String("session_id", s.ID()),
		)
		return c.Respond(&tele.CallbackResponse{Text: msgError})
	}

	return c.Respond()
}

// handleStop ends the chat's card session
func (h *Handler) handleStop(c tele.Context) error {
	chatID := c.Chat().ID

	s := h.sessionFor(c)
	if s == nil || !h.removeSession(chatID, s) {
		if c.Callback() != nil {
			return c.Respond(&tele.CallbackResponse{Text: msgNoSession})
		}
		return c.Send(msgNoSession)
	}

	h.logger.Info("Card session stopped",
		zap.Int64("chat_id", chatID),
		zap.String("session_id", s.ID()),
	)

	if c.Callback() != nil {
		if err := c.Respond(); err != nil {
			h.logger.Warn("Failed to acknowledge callback", zap.Error(err))
		}
	}
	return c.Send(msgSessionEnded)
}
