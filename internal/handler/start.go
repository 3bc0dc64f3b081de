package handler

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const (
	msgError        = "Something went wrong. Please try again later."
	msgAskPassword  = "Hi! Send the password to unlock the flash cards."
	msgWrongPass    = "Wrong password."
	msgWelcome      = "✅ Access granted! Send /start to begin."
	msgSessionEnded = "👋 Done for now. Send /start to drill again."
	msgNoSession    = "No active cards. Send /start to begin."

	authTimeout = 5 * time.Second
)

// handleStart handles /start command
func (h *Handler) handleStart(c tele.Context) error {
	userID := c.Sender().ID

	h.logger.Info("User started bot",
		zap.Int64("user_id", userID),
		zap.String("username", c.Sender().Username),
	)

	ctx, cancel := context.WithTimeout(h.ctx, authTimeout)
	defer cancel()

	// Ensure user exists in database
	if err := h.authService.EnsureUserExists(ctx, userID); err != nil {
		h.logger.Error("Failed to ensure user exists", zap.Error(err))
		return c.Send(msgError)
	}

	// Check if authorized
	authorized, err := h.authService.IsAuthorized(ctx, userID)
	if err != nil {
		h.logger.Error("Failed to check authorization", zap.Error(err))
		return c.Send(msgError)
	}

	if !authorized {
		return c.Send(msgAskPassword)
	}

	if _, err := h.OpenSession(c.Chat()); err != nil {
		h.logger.Error("Failed to open card session",
			zap.Error(err),
			zap.Int64("user_id", userID),
		)
		return c.Send(msgError)
	}
	return nil
}

// handleText handles the password reply of unauthorized users
func (h *Handler) handleText(c tele.Context) error {
	userID := c.Sender().ID
	text := strings.TrimSpace(c.Text())

	// Ignore commands (starting with /)
	if strings.HasPrefix(text, "/") {
		return nil
	}

	ctx, cancel := context.WithTimeout(h.ctx, authTimeout)
	defer cancel()

	if err := h.authService.EnsureUserExists(ctx, userID); err != nil {
		h.logger.Error("Failed to ensure user exists", zap.Error(err))
		return nil
	}

	authorized, err := h.authService.IsAuthorized(ctx, userID)
	if err != nil {
		h.logger.Error("Failed to check authorization", zap.Error(err))
		return c.Send(msgError)
	}

	// The only text input is the password; card navigation uses the button
	if authorized {
		return nil
	}

	if !h.authService.CheckPassword(text) {
		return c.Send(msgWrongPass)
	}

	if err := h.authService.AuthorizeUser(ctx, userID); err != nil {
		h.logger.Error("Failed to authorize user", zap.Error(err))
		return c.Send(msgError)
	}

	h.logger.Info("User authorized", zap.Int64("user_id", userID))
	return c.Send(msgWelcome)
}
