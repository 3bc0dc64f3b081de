package navigator

import (
	"context"
	"errors"
	"testing"
	"time"

	"flashcards/internal/domain"
	"flashcards/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func waitDone(t *testing.T, s *Session) {
	t.Helper()
	select {
	case <-s.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("load was not delivered")
	}
}

func TestSession_LoadAndAction(t *testing.T) {
	r := &testutil.RecordingRenderer{}
	src := new(testutil.MockCardSource)
	src.On("LoadCards", mock.Anything).Return(testutil.NewTestCards("casa", "house", "perro", "dog"), nil)

	s := NewSession(r, testutil.NewTestLogger())
	defer s.Close()

	require.NoError(t, s.LoadAsync(context.Background(), src))
	waitDone(t, s)

	ctx := context.Background()
	snap, err := s.Snapshot(ctx)
	require.NoError(t, err)
	assert.True(t, snap.Loaded)
	assert.Equal(t, 2, snap.Len)
	assert.Equal(t, "casa", r.Word)
	assert.Equal(t, 1, r.Flushes)

	require.NoError(t, s.Action(ctx))
	assert.Equal(t, "house", r.Definition)
	assert.True(t, r.DefinitionVisible)

	require.NoError(t, s.Action(ctx))
	assert.Equal(t, "perro", r.Word)
	assert.False(t, r.DefinitionVisible)
	assert.Equal(t, 3, r.Flushes)

	snap, err = s.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, snap.Position)
	assert.Equal(t, domain.StateHidden, snap.State)

	src.AssertExpectations(t)
}

func TestSession_ActionBeforeDelivery(t *testing.T) {
	r := &testutil.RecordingRenderer{}
	gate := make(chan struct{})
	src := new(testutil.MockCardSource)
	src.On("LoadCards", mock.Anything).
		Run(func(mock.Arguments) { <-gate }).
		Return(testutil.NewTestCards("casa", "house"), nil)

	s := NewSession(r, testutil.NewTestLogger())
	defer s.Close()

	require.NoError(t, s.LoadAsync(context.Background(), src))

	require.NoError(t, s.Action(context.Background()))
	assert.Equal(t, 0, r.Calls)
	assert.Equal(t, 0, r.Flushes)

	close(gate)
	waitDone(t, s)

	require.NoError(t, s.Action(context.Background()))
	assert.True(t, r.DefinitionVisible)
	assert.Equal(t, "house", r.Definition)
}

func TestSession_CloseDiscardsDelivery(t *testing.T) {
	r := &testutil.RecordingRenderer{}
	gate := make(chan struct{})
	src := new(testutil.MockCardSource)
	src.On("LoadCards", mock.Anything).
		Run(func(mock.Arguments) { <-gate }).
		Return(testutil.NewTestCards("casa", "house"), nil)

	s := NewSession(r, testutil.NewTestLogger())
	require.NoError(t, s.LoadAsync(context.Background(), src))

	s.Close()
	close(gate)
	waitDone(t, s)

	assert.Equal(t, 0, r.Calls)
	assert.ErrorIs(t, s.Action(context.Background()), ErrClosed)

	_, err := s.Snapshot(context.Background())
	assert.ErrorIs(t, err, ErrClosed)
}

func TestSession_LoadOnce(t *testing.T) {
	src := new(testutil.MockCardSource)
	src.On("LoadCards", mock.Anything).Return(testutil.NewTestCards("casa", "house"), nil).Once()

	s := NewSession(&testutil.RecordingRenderer{}, testutil.NewTestLogger())
	defer s.Close()

	require.NoError(t, s.LoadAsync(context.Background(), src))
	assert.ErrorIs(t, s.LoadAsync(context.Background(), src), ErrLoadStarted)

	waitDone(t, s)
	src.AssertExpectations(t)
}

func TestSession_LoadAfterClose(t *testing.T) {
	s := NewSession(&testutil.RecordingRenderer{}, testutil.NewTestLogger())
	s.Close()

	err := s.LoadAsync(context.Background(), new(testutil.MockCardSource))
	assert.ErrorIs(t, err, ErrClosed)
}

func TestSession_LoadFailureStaysInert(t *testing.T) {
	tests := []struct {
		name string
		set  domain.CardSet
		err  error
	}{
		{name: "source error", set: domain.CardSet{}, err: errors.New("db down")},
		{name: "empty result", set: domain.CardSet{}, err: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &testutil.RecordingRenderer{}
			src := new(testutil.MockCardSource)
			src.On("LoadCards", mock.Anything).Return(tt.set, tt.err)

			s := NewSession(r, testutil.NewTestLogger())
			defer s.Close()

			require.NoError(t, s.LoadAsync(context.Background(), src))
			waitDone(t, s)

			assert.NoError(t, s.Action(context.Background()))
			assert.Equal(t, 0, r.Calls)
			assert.Equal(t, 0, r.Flushes)
		})
	}
}

func TestSession_FlushErrorDoesNotFailAction(t *testing.T) {
	r := &testutil.RecordingRenderer{FlushErr: errors.New("message gone")}
	src := new(testutil.MockCardSource)
	src.On("LoadCards", mock.Anything).Return(testutil.NewTestCards("casa", "house"), nil)

	s := NewSession(r, testutil.NewTestLogger())
	defer s.Close()

	require.NoError(t, s.LoadAsync(context.Background(), src))
	waitDone(t, s)

	assert.NoError(t, s.Action(context.Background()))
	assert.True(t, r.DefinitionVisible)
}

func TestSession_ActionCanceledContext(t *testing.T) {
	s := NewSession(&testutil.RecordingRenderer{}, testutil.NewTestLogger())
	defer s.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.Action(ctx)
	if err != nil {
		assert.ErrorIs(t, err, context.Canceled)
	}
}

func TestSession_CloseIdempotent(t *testing.T) {
	s := NewSession(&testutil.RecordingRenderer{}, testutil.NewTestLogger())

	s.Close()
	s.Close()

	assert.NotEmpty(t, s.ID())
	assert.ErrorIs(t, s.Action(context.Background()), ErrClosed)
}
