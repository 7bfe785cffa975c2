package session

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"brewline/internal/chat/gateway"
	"brewline/internal/domain"
)

// Manager tracks open chat sessions by id.
type Manager struct {
	converser Converser
	logger    *zap.Logger

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewManager(converser Converser, logger *zap.Logger) *Manager {
	return &Manager{
		converser: converser,
		logger:    logger,
		sessions:  make(map[string]*Session),
	}
}

// Open creates a session and runs the greeting probe (an empty utterance).
// A probe failure appends the unavailability turn instead of failing
// session creation.
func (m *Manager) Open(ctx context.Context) *Session {
	s := &Session{
		ID:        uuid.New().String(),
		converser: m.converser,
		logger:    m.logger,
	}

	turns, err := m.converser.Converse(ctx, "")
	if err != nil {
		m.logger.Warn("greeting probe failed", zap.String("sessionId", s.ID), zap.Error(err))
		s.transcript = []domain.ChatMessage{domain.AssistantMessage(gateway.UnavailableMessage)}
	} else {
		s.transcript = turns
	}

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	m.logger.Info("chat session opened", zap.String("sessionId", s.ID))
	return s
}

func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Close discards a session, canceling any in-flight round-trip.
func (m *Manager) Close(id string) bool {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if !ok {
		return false
	}

	s.close()
	m.logger.Info("chat session closed", zap.String("sessionId", id))
	return true
}
