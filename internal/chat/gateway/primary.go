package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"brewline/internal/domain"
)

// PrimaryClient talks to the recommendation backend.
type PrimaryClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewPrimaryClient(baseURL string, timeout time.Duration) *PrimaryClient {
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &PrimaryClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type primaryRequest struct {
	Text string `json:"text"`
}

// PrimaryReply is the backend's reply envelope.
type PrimaryReply struct {
	Emotion         string                  `json:"emotion"`
	Message         string                  `json:"message"`
	Recommendations []domain.Recommendation `json:"recommendations,omitempty"`
	FollowUps       string                  `json:"followUps,omitempty"`
	AIText          string                  `json:"aiText"`
}

func (c *PrimaryClient) Send(ctx context.Context, text string) (*PrimaryReply, error) {
	body, err := json.Marshal(primaryRequest{Text: text})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/recommended", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("primary request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("primary returned status %d", resp.StatusCode)
	}

	var reply PrimaryReply
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return nil, fmt.Errorf("decode primary reply: %w", err)
	}

	return &reply, nil
}
