package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"brewline/internal/chat/gateway"
	"brewline/internal/domain"
	apperrors "brewline/internal/errors"
)

type fakeConverser struct {
	turns []domain.ChatMessage
	err   error
	calls []string
}

func (f *fakeConverser) Converse(_ context.Context, utterance string) ([]domain.ChatMessage, error) {
	f.calls = append(f.calls, utterance)
	if f.err != nil {
		return nil, f.err
	}
	return f.turns, nil
}

func TestOpen_GreetingProbe(t *testing.T) {
	converser := &fakeConverser{turns: []domain.ChatMessage{domain.AssistantMessage("Welcome!")}}
	m := NewManager(converser, zap.NewNop())

	s := m.Open(context.Background())

	require.NotEmpty(t, s.ID)
	assert.Equal(t, []string{""}, converser.calls, "one empty greeting probe on start")

	transcript, typing := s.Snapshot()
	require.Len(t, transcript, 1)
	assert.Equal(t, "Welcome!", transcript[0].Text)
	assert.False(t, typing)

	got, ok := m.Get(s.ID)
	assert.True(t, ok)
	assert.Same(t, s, got)
}

func TestOpen_GreetingFailureStillCreatesSession(t *testing.T) {
	converser := &fakeConverser{err: apperrors.NewUnavailableError("down", errors.New("timeout"))}
	m := NewManager(converser, zap.NewNop())

	s := m.Open(context.Background())

	transcript, typing := s.Snapshot()
	require.Len(t, transcript, 1)
	assert.Equal(t, gateway.UnavailableMessage, transcript[0].Text)
	assert.Equal(t, domain.ChatRoleAssistant, transcript[0].Role)
	assert.False(t, typing)
}

func TestSend_AppendsUserThenAssistantTurns(t *testing.T) {
	converser := &fakeConverser{turns: []domain.ChatMessage{
		domain.AssistantMessage("Sure."),
		domain.AssistantMessage("Here are some suggestions for you:\n1. Latte - popular"),
	}}
	m := NewManager(converser, zap.NewNop())
	s := m.Open(context.Background())

	require.NoError(t, s.Send(context.Background(), "recommend something"))

	transcript, typing := s.Snapshot()
	require.Len(t, transcript, 4) // greeting + user + 2 assistant turns
	assert.Equal(t, domain.ChatRoleUser, transcript[1].Role)
	assert.Equal(t, "recommend something", transcript[1].Text)
	assert.Equal(t, "Sure.", transcript[2].Text)
	assert.False(t, typing, "typing clears after the round-trip")
}

func TestSend_BlankInputIsNoOp(t *testing.T) {
	converser := &fakeConverser{turns: []domain.ChatMessage{domain.AssistantMessage("hi")}}
	m := NewManager(converser, zap.NewNop())
	s := m.Open(context.Background())

	require.NoError(t, s.Send(context.Background(), "   "))

	transcript, _ := s.Snapshot()
	assert.Len(t, transcript, 1, "blank input appends nothing")
	assert.Len(t, converser.calls, 1, "no round-trip for blank input")
}

func TestSend_FailureAppendsOneUnavailabilityTurnAndClearsTyping(t *testing.T) {
	converser := &fakeConverser{turns: []domain.ChatMessage{domain.AssistantMessage("hi")}}
	m := NewManager(converser, zap.NewNop())
	s := m.Open(context.Background())

	converser.err = apperrors.NewUnavailableError("primary provider unreachable", errors.New("timeout"))
	require.NoError(t, s.Send(context.Background(), "hello"), "provider failure never escapes the session")

	transcript, typing := s.Snapshot()
	require.Len(t, transcript, 3) // greeting + user echo + unavailability
	assert.Equal(t, "hello", transcript[1].Text)
	assert.Equal(t, gateway.UnavailableMessage, transcript[2].Text)
	assert.False(t, typing, "typing clears even on failure")
}

func TestSend_ClosedSession(t *testing.T) {
	converser := &fakeConverser{turns: []domain.ChatMessage{domain.AssistantMessage("hi")}}
	m := NewManager(converser, zap.NewNop())
	s := m.Open(context.Background())

	require.True(t, m.Close(s.ID))

	err := s.Send(context.Background(), "anyone there?")
	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)

	_, found := m.Get(s.ID)
	assert.False(t, found)
	assert.False(t, m.Close(s.ID), "second close reports missing session")
}

func TestSend_LateResultDroppedAfterClose(t *testing.T) {
	converser := &fakeConverser{turns: []domain.ChatMessage{domain.AssistantMessage("hi")}}
	m := NewManager(converser, zap.NewNop())
	s := m.Open(context.Background())

	blocked := make(chan struct{})
	release := make(chan struct{})
	slow := converserFunc(func(ctx context.Context, utterance string) ([]domain.ChatMessage, error) {
		close(blocked)
		<-release
		return []domain.ChatMessage{domain.AssistantMessage("late reply")}, nil
	})
	s.converser = slow

	done := make(chan error, 1)
	go func() { done <- s.Send(context.Background(), "slow question") }()

	<-blocked
	m.Close(s.ID)
	close(release)
	require.NoError(t, <-done)

	transcript, _ := s.Snapshot()
	for _, turn := range transcript {
		assert.NotEqual(t, "late reply", turn.Text, "a discarded session receives no late update")
	}
}

type converserFunc func(ctx context.Context, utterance string) ([]domain.ChatMessage, error)

func (f converserFunc) Converse(ctx context.Context, utterance string) ([]domain.ChatMessage, error) {
	return f(ctx, utterance)
}
