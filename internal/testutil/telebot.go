package testutil

import (
	tele "gopkg.in/telebot.v3"
)

// FakeContext is a tele.Context that records replies instead of calling
// Telegram. Methods it does not override panic through the nil embedded
// Context.
type FakeContext struct {
	tele.Context

	ChatValue     *tele.Chat
	SenderValue   *tele.User
	CallbackValue *tele.Callback

	Sent      []interface{}
	Responses []tele.CallbackResponse
}

// NewCommandContext creates a context for a plain message in chatID from userID
func NewCommandContext(chatID, userID int64) *FakeContext {
	return &FakeContext{
		ChatValue:   &tele.Chat{ID: chatID},
		SenderValue: &tele.User{ID: userID},
	}
}

// NewCallbackContext creates a context for a button tap carrying data
func NewCallbackContext(chatID, userID int64, unique, data string) *FakeContext {
	c := NewCommandContext(chatID, userID)
	c.CallbackValue = &tele.Callback{ID: "1", Unique: unique, Data: data}
	return c
}

func (c *FakeContext) Chat() *tele.Chat {
	return c.ChatValue
}

func (c *FakeContext) Sender() *tele.User {
	return c.SenderValue
}

func (c *FakeContext) Callback() *tele.Callback {
	return c.CallbackValue
}

func (c *FakeContext) Data() string {
	if c.CallbackValue != nil {
		return c.CallbackValue.Data
	}
	return ""
}

func (c *FakeContext) Send(what interface{}, opts ...interface{}) error {
	c.Sent = append(c.Sent, what)
	return nil
}

// Respond records the callback answer; a bare acknowledgement is recorded
// as an empty response
func (c *FakeContext) Respond(resp ...*tele.CallbackResponse) error {
	if len(resp) == 0 || resp[0] == nil {
		c.Responses = append(c.Responses, tele.CallbackResponse{})
		return nil
	}
	c.Responses = append(c.Responses, *resp[0])
	return nil
}
