package handler

import (
	"errors"
	"testing"

	"flashcards/internal/navigator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	tele "gopkg.in/telebot.v3"
)

type mockMessenger struct {
	mock.Mock
}

func (m *mockMessenger) Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error) {
	args := m.Called(to, what)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tele.Message), args.Error(1)
}

func (m *mockMessenger) Edit(msg tele.Editable, what interface{}, opts ...interface{}) (*tele.Message, error) {
	args := m.Called(msg, what)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tele.Message), args.Error(1)
}

func TestCardView_Text(t *testing.T) {
	v := newCardView(nil, nil, nil)

	v.RenderWord("casa")
	v.RenderDefinition("house", false)
	assert.Equal(t, "📝 casa\n\n❔", v.Text())
	assert.NotContains(t, v.Text(), "house")

	v.RenderDefinition("house", true)
	assert.Equal(t, "📝 casa\n\n💡 house", v.Text())
}

func TestCardView_Markup(t *testing.T) {
	v := newCardView(nil, nil, nil)
	v.sessionID = "0b7c6f1e-2f4a-4b8e-9d3c-5a6e7f8091a2"
	v.RenderActionLabel(navigator.LabelNextWord)

	markup := v.Markup()

	assert.Len(t, markup.InlineKeyboard, 1)
	row := markup.InlineKeyboard[0]
	assert.Len(t, row, 2)
	assert.Equal(t, navigator.LabelNextWord, row[0].Text)
	assert.Equal(t, btnAction.Unique, row[0].Unique)
	assert.Equal(t, v.sessionID, row[0].Data)
	assert.Equal(t, btnStop.Unique, row[1].Unique)
	assert.Equal(t, v.sessionID, row[1].Data)
}

func TestCardView_Flush(t *testing.T) {
	chat := &tele.Chat{ID: 42}

	tests := []struct {
		name      string
		bound     *tele.Message
		setup     func(m *mockMessenger, bound *tele.Message)
		expectErr bool
	}{
		{
			name: "sends when no message is bound",
			setup: func(m *mockMessenger, _ *tele.Message) {
				m.On("Send", chat, "📝 casa\n\n❔").Return(&tele.Message{ID: 7}, nil)
			},
		},
		{
			name:  "edits the bound message",
			bound: &tele.Message{ID: 7},
			setup: func(m *mockMessenger, bound *tele.Message) {
				m.On("Edit", bound, "📝 casa\n\n❔").Return(&tele.Message{ID: 7}, nil)
			},
		},
		{
			name:  "not modified is ignored",
			bound: &tele.Message{ID: 7},
			setup: func(m *mockMessenger, bound *tele.Message) {
				m.On("Edit", bound, "📝 casa\n\n❔").
					Return(nil, errors.New("telegram: Bad Request: message is not modified (400)"))
			},
		},
		{
			name:  "edit failure surfaces",
			bound: &tele.Message{ID: 7},
			setup: func(m *mockMessenger, bound *tele.Message) {
				m.On("Edit", bound, "📝 casa\n\n❔").Return(nil, errors.New("message to edit not found"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := new(mockMessenger)
			tt.setup(m, tt.bound)

			v := newCardView(m, chat, tt.bound)
			v.RenderWord("casa")
			v.RenderDefinition("house", false)
			v.RenderActionLabel(navigator.LabelShowDefinition)

			err := v.Flush()

			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, v.msg)
			}
			m.AssertExpectations(t)
		})
	}
}
