package dto

import "brewline/internal/domain"

type SendMessageRequest struct {
	Text string `json:"text"`
}

type ChatSessionResponse struct {
	SessionID string               `json:"sessionId"`
	Typing    bool                 `json:"typing"`
	Messages  []domain.ChatMessage `json:"messages"`
}

type NotificationsResponse struct {
	HasUnread     bool     `json:"hasUnread"`
	Notifications []string `json:"notifications"`
}
