package session

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"brewline/internal/chat/gateway"
	"brewline/internal/domain"
	apperrors "brewline/internal/errors"
)

type Converser interface {
	Converse(ctx context.Context, utterance string) ([]domain.ChatMessage, error)
}

// Session is one open conversation: an append-only transcript plus a typing
// flag. Discarded when closed; a closed session drops late results instead
// of appending them.
type Session struct {
	ID string

	converser Converser
	logger    *zap.Logger

	// sendMu serializes whole round-trips so at most one send is in flight.
	sendMu sync.Mutex

	mu         sync.Mutex
	transcript []domain.ChatMessage
	typing     bool
	closed     bool
	cancel     context.CancelFunc
}

// Snapshot returns a copy of the transcript and the typing flag.
func (s *Session) Snapshot() ([]domain.ChatMessage, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.ChatMessage, len(s.transcript))
	copy(out, s.transcript)
	return out, s.typing
}

// Send runs one chat round-trip. Blank input is a no-op, not an error. The
// user turn is appended before the network call; the typing flag clears on
// every exit path.
func (s *Session) Send(ctx context.Context, text string) error {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	s.sendMu.Lock()
	defer s.sendMu.Unlock()

	roundCtx, err := s.begin(ctx, text)
	if err != nil {
		return err
	}
	defer s.finish()

	turns, convErr := s.converser.Converse(roundCtx, text)
	if convErr != nil {
		s.logger.Warn("converse failed", zap.String("sessionId", s.ID), zap.Error(convErr))
		s.append(domain.AssistantMessage(gateway.UnavailableMessage))
		return nil
	}

	s.append(turns...)
	return nil
}

func (s *Session) begin(ctx context.Context, text string) (context.Context, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, apperrors.NewNotFoundError("session " + s.ID + " not found")
	}

	s.transcript = append(s.transcript, domain.UserMessage(text))
	s.typing = true

	roundCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	return roundCtx, nil
}

func (s *Session) finish() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.typing = false
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// append drops turns arriving after close so a discarded session never
// receives a late update.
func (s *Session) append(turns ...domain.ChatMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.transcript = append(s.transcript, turns...)
}

func (s *Session) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}
