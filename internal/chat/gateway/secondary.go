package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const secondaryModelPath = "/models/gemini-2.5-flash:generateContent"

// SecondaryClient talks to the generative-text provider consulted when the
// primary backend signals fallback.
type SecondaryClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewSecondaryClient(baseURL, apiKey string, timeout time.Duration) *SecondaryClient {
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &SecondaryClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type secondaryRequest struct {
	Inputs string `json:"inputs"`
}

type secondaryResult struct {
	GeneratedText string `json:"generated_text"`
}

// Generate returns the first generated text for the input, or "" when the
// provider yields no usable result.
func (c *SecondaryClient) Generate(ctx context.Context, input string) (string, error) {
	body, err := json.Marshal(secondaryRequest{Inputs: input})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+secondaryModelPath, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("secondary request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("secondary returned status %d", resp.StatusCode)
	}

	var results []secondaryResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return "", fmt.Errorf("decode secondary reply: %w", err)
	}

	if len(results) == 0 {
		return "", nil
	}
	return results[0].GeneratedText, nil
}
