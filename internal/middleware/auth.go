package middleware

import (
	"context"
	"time"

	"flashcards/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const (
	msgError         = "Something went wrong. Please try again later."
	msgAskPassword   = "Hi! Send the password to unlock the flash cards."
	authCheckTimeout = 5 * time.Second
)

// AuthMiddleware creates authentication middleware. Lookups are bounded by
// ctx, so they stop when the bot shuts down.
func AuthMiddleware(ctx context.Context, authService *service.AuthService, logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			userID := c.Sender().ID

			ctx, cancel := context.WithTimeout(ctx, authCheckTimeout)
			defer cancel()

			// Ensure user exists
			if err := authService.EnsureUserExists(ctx, userID); err != nil {
				logger.Error("Failed to ensure user exists in middleware", zap.Error(err))
				return respond(c, msgError)
			}

			// Check authorization
			authorized, err := authService.IsAuthorized(ctx, userID)
			if err != nil {
				logger.Error("Failed to check authorization in middleware", zap.Error(err))
				return respond(c, msgError)
			}

			if !authorized {
				logger.Info("Rejected unauthorized user", zap.Int64("user_id", userID))
				return respond(c, msgAskPassword)
			}

			return next(c)
		}
	}
}

// respond answers a button tap with an alert, anything else with a message
func respond(c tele.Context, text string) error {
	if c.Callback() != nil {
		return c.Respond(&tele.CallbackResponse{Text: text, ShowAlert: true})
	}
	return c.Send(text)
}
