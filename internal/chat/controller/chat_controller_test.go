package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"brewline/internal/chat/session"
	"brewline/internal/domain"
	"brewline/internal/dto"
)

type greeter struct{}

func (greeter) Converse(_ context.Context, utterance string) ([]domain.ChatMessage, error) {
	if utterance == "" {
		return []domain.ChatMessage{domain.AssistantMessage("Welcome!")}, nil
	}
	return []domain.ChatMessage{domain.AssistantMessage("Echo: " + utterance)}, nil
}

func newTestRouter(t *testing.T) (chi.Router, *session.Manager) {
	t.Helper()
	sessions := session.NewManager(greeter{}, zap.NewNop())
	ctrl := NewChatController(sessions, zap.NewNop())

	r := chi.NewRouter()
	r.Post("/chat/sessions", ctrl.HandleOpenSession)
	r.Get("/chat/sessions/{sessionId}", ctrl.HandleGetSession)
	r.Post("/chat/sessions/{sessionId}/messages", ctrl.HandleSendMessage)
	r.Delete("/chat/sessions/{sessionId}", ctrl.HandleCloseSession)
	return r, sessions
}

func openSession(t *testing.T, router chi.Router) dto.ChatSessionResponse {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/chat/sessions", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp dto.ChatSessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestHandleOpenSession(t *testing.T) {
	router, _ := newTestRouter(t)

	resp := openSession(t, router)

	assert.NotEmpty(t, resp.SessionID)
	assert.False(t, resp.Typing)
	require.Len(t, resp.Messages, 1)
	assert.Equal(t, "Welcome!", resp.Messages[0].Text)
}

func TestHandleSendMessage(t *testing.T) {
	router, _ := newTestRouter(t)
	opened := openSession(t, router)

	req := httptest.NewRequest(http.MethodPost, "/chat/sessions/"+opened.SessionID+"/messages", strings.NewReader(`{"text":"hi"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp dto.ChatSessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	require.Len(t, resp.Messages, 3)
	assert.Equal(t, domain.ChatRoleUser, resp.Messages[1].Role)
	assert.Equal(t, "hi", resp.Messages[1].Text)
	assert.Equal(t, "Echo: hi", resp.Messages[2].Text)
	assert.False(t, resp.Typing)
}

func TestHandleSendMessage_UnknownSession(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/chat/sessions/nope/messages", strings.NewReader(`{"text":"hi"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleCloseSession(t *testing.T) {
	router, sessions := newTestRouter(t)
	opened := openSession(t, router)

	req := httptest.NewRequest(http.MethodDelete, "/chat/sessions/"+opened.SessionID, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	_, ok := sessions.Get(opened.SessionID)
	assert.False(t, ok)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/chat/sessions/"+opened.SessionID, nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
