package handler

import (
	"context"
	"sync"
	"time"

	"flashcards/internal/middleware"
	"flashcards/internal/navigator"
	"flashcards/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const (
	loadTimeout   = 30 * time.Second
	actionTimeout = 10 * time.Second
)

// Messenger sends and edits chat messages. *tele.Bot implements it.
type Messenger interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
	Edit(msg tele.Editable, what interface{}, opts ...interface{}) (*tele.Message, error)
}

// Handler manages all bot interactions
type Handler struct {
	bot         *tele.Bot
	messenger   Messenger
	authService *service.AuthService
	cards       navigator.Source
	logger      *zap.Logger

	// One card session per chat
	sessions   map[int64]*navigator.Session
	sessionMux sync.Mutex

	ctx context.Context
}

// NewHandler creates a new handler instance
func NewHandler(
	ctx context.Context,
	bot *tele.Bot,
	authService *service.AuthService,
	cards navigator.Source,
	logger *zap.Logger,
) *Handler {
	h := &Handler{
		bot:         bot,
		authService: authService,
		cards:       cards,
		logger:      logger,
		sessions:    make(map[int64]*navigator.Session),
		ctx:         ctx,
	}
	if bot != nil {
		h.messenger = bot
	}
	return h
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers() {
	// Commands
	h.bot.Handle("/start", h.handleStart)

	// Text messages (password input)
	h.bot.Handle(tele.OnText, h.handleText)

	// Card controls require an authorized user
	cards := h.bot.Group()
	cards.Use(middleware.AuthMiddleware(h.ctx, h.authService, h.logger))
	cards.Handle("/stop", h.handleStop)
	cards.Handle(&btnAction, h.handleAction)
	cards.Handle(&btnStop, h.handleStop)
}

// Session returns the chat's card session, or nil
func (h *Handler) Session(chatID int64) *navigator.Session {
	h.sessionMux.Lock()
	defer h.sessionMux.Unlock()
	return h.sessions[chatID]
}

// removeSession tears down s if it is still the chat's current session
func (h *Handler) removeSession(chatID int64, s *navigator.Session) bool {
	h.sessionMux.Lock()
	current := h.sessions[chatID] == s
	if current {
		delete(h.sessions, chatID)
	}
	h.sessionMux.Unlock()

	if !current {
		return false
	}
	s.Close()
	return true
}

// CloseAll tears down every session, used on shutdown
func (h *Handler) CloseAll() {
	h.sessionMux.Lock()
	sessions := h.sessions
	h.sessions = make(map[int64]*navigator.Session)
	h.sessionMux.Unlock()

	for _, s := range sessions {
		s.Close()
	}
	h.logger.Info("All card sessions closed", zap.Int("count", len(sessions)))
}

// Inline keyboard buttons. The action and stop buttons carry the session
// id as callback data.
var (
	btnAction = tele.Btn{
		Unique: "card_action",
		Text:   navigator.LabelShowDefinition,
	}
	btnStop = tele.Btn{
		Unique: "card_stop",
		Text:   "⏹ Stop",
	}
)
