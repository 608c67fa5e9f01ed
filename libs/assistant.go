package libs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// AssistantClient proxies chat messages to the AI shopping-assistant
// function endpoint.
type AssistantClient struct {
	baseURL string
	client  *http.Client
}

func NewAssistantClient(baseURL string) *AssistantClient {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	return &AssistantClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (a *AssistantClient) Enabled() bool {
	return a.baseURL != ""
}

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatPayload struct {
	Message string        `json:"message"`
	History []ChatMessage `json:"history,omitempty"`
}

type chatResult struct {
	Reply string `json:"reply"`
}

func (a *AssistantClient) Chat(ctx context.Context, message string, history []ChatMessage) (string, error) {
	if a.baseURL == "" {
		return "", fmt.Errorf("assistant is not configured")
	}

	b, err := json.Marshal(chatPayload{Message: message, History: history})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/shopping-assistant", bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("assistant request failed: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("assistant returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var result chatResult
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to decode assistant response: %w", err)
	}
	return result.Reply, nil
}
