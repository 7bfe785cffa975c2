package controller

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"brewline/internal/chat/session"
	"brewline/internal/dto"
	apperrors "brewline/internal/errors"
)

type ChatController struct {
	sessions *session.Manager
	logger   *zap.Logger
}

func NewChatController(sessions *session.Manager, logger *zap.Logger) *ChatController {
	return &ChatController{
		sessions: sessions,
		logger:   logger,
	}
}

func (c *ChatController) HandleOpenSession(w http.ResponseWriter, r *http.Request) {
	s := c.sessions.Open(r.Context())
	c.writeSession(w, http.StatusCreated, s)
}

func (c *ChatController) HandleSendMessage(w http.ResponseWriter, r *http.Request) {
	s, ok := c.sessions.Get(chi.URLParam(r, "sessionId"))
	if !ok {
		c.writeNotFound(w)
		return
	}

	var req dto.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeJSON(w, http.StatusBadRequest, map[string]string{
			"error":   "VALIDATION_ERROR",
			"message": "request body must be valid JSON",
		})
		return
	}

	if err := s.Send(r.Context(), req.Text); err != nil {
		if _, notFound := apperrors.IsNotFoundError(err); notFound {
			c.writeNotFound(w)
			return
		}
		c.logger.Error("send failed", zap.String("sessionId", s.ID), zap.Error(err))
		c.writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error":   "INTERNAL_ERROR",
			"message": "an unexpected error occurred",
		})
		return
	}

	c.writeSession(w, http.StatusOK, s)
}

func (c *ChatController) HandleGetSession(w http.ResponseWriter, r *http.Request) {
	s, ok := c.sessions.Get(chi.URLParam(r, "sessionId"))
	if !ok {
		c.writeNotFound(w)
		return
	}
	c.writeSession(w, http.StatusOK, s)
}

func (c *ChatController) HandleCloseSession(w http.ResponseWriter, r *http.Request) {
	if !c.sessions.Close(chi.URLParam(r, "sessionId")) {
		c.writeNotFound(w)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (c *ChatController) writeSession(w http.ResponseWriter, status int, s *session.Session) {
	transcript, typing := s.Snapshot()
	c.writeJSON(w, status, dto.ChatSessionResponse{
		SessionID: s.ID,
		Typing:    typing,
		Messages:  transcript,
	})
}

func (c *ChatController) writeNotFound(w http.ResponseWriter) {
	c.writeJSON(w, http.StatusNotFound, map[string]string{
		"error":   "NOT_FOUND",
		"message": "session not found",
	})
}

func (c *ChatController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
