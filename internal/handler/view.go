package handler

import (
	"fmt"
	"strings"

	tele "gopkg.in/telebot.v3"
)

// cardView renders a navigator into a single chat message.
// Render calls only update fields; Flush pushes them to Telegram.
type cardView struct {
	messenger Messenger
	chat      tele.Recipient
	msg       *tele.Message
	sessionID string

	word       string
	definition string
	visible    bool
	label      string
}

func newCardView(messenger Messenger, chat tele.Recipient, msg *tele.Message) *cardView {
	return &cardView{
		messenger: messenger,
		chat:      chat,
		msg:       msg,
	}
}

func (v *cardView) RenderWord(text string) {
	v.word = text
}

func (v *cardView) RenderDefinition(text string, visible bool) {
	v.definition = text
	v.visible = visible
}

func (v *cardView) RenderActionLabel(text string) {
	v.label = text
}

// Text returns the message body for the current card
func (v *cardView) Text() string {
	if !v.visible {
		return fmt.Sprintf("📝 %s\n\n❔", v.word)
	}
	return fmt.Sprintf("📝 %s\n\n💡 %s", v.word, v.definition)
}

// Markup returns the keyboard carrying the action label, bound to the session
func (v *cardView) Markup() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	action := markup.Data(v.label, btnAction.Unique, v.sessionID)
	stop := markup.Data(btnStop.Text, btnStop.Unique, v.sessionID)
	markup.Inline(markup.Row(action, stop))
	return markup
}

// Flush sends the card, or edits the message it was bound to
func (v *cardView) Flush() error {
	return v.show(v.Text(), v.Markup())
}

// Notice replaces the card message with plain text
func (v *cardView) Notice(text string) error {
	return v.show(text, &tele.ReplyMarkup{})
}

func (v *cardView) show(text string, markup *tele.ReplyMarkup) error {
	if v.msg == nil {
		msg, err := v.messenger.Send(v.chat, text, markup)
		if err != nil {
			return err
		}
		v.msg = msg
		return nil
	}

	msg, err := v.messenger.Edit(v.msg, text, markup)
	if err != nil {
		// Same content twice in a row is not a failure
		if strings.Contains(err.Error(), "message is not modified") {
			return nil
		}
		return err
	}
	if msg != nil {
		v.msg = msg
	}
	return nil
}
