// Package openai provides a minimal client for OpenAI-compatible
// chat completion APIs. This is part of the platform layer and
// contains no business logic.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Config for the completion client.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
}

// Client calls the /chat/completions endpoint of an OpenAI-compatible API.
type Client struct {
	config Config
	client *http.Client
}

// NewClient creates a completion client with sane defaults.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}
	return &Client{
		config: cfg,
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

// Name returns the configured model name.
func (c *Client) Name() string {
	return c.config.Model
}

// Message is a single chat message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionRequest describes a single-shot completion call.
type CompletionRequest struct {
	Messages    []Message
	Temperature float64
	JSONMode    bool
	MaxTokens   int
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error interface{} `json:"error"`
}

// Complete sends the messages and returns the assistant's reply content.
func (c *Client) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	payload := map[string]interface{}{
		"model":       c.config.Model,
		"messages":    req.Messages,
		"temperature": req.Temperature,
	}
	if req.JSONMode {
		payload["response_format"] = map[string]string{"type": "json_object"}
	}
	if req.MaxTokens > 0 {
		payload["max_tokens"] = req.MaxTokens
	}

	jsonBody, _ := json.Marshal(payload)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/chat/completions", bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var result chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode completion response: %v", err)
	}
	if result.Error != nil {
		return "", fmt.Errorf("completion api error: %v", result.Error)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("completion api error: status %d", resp.StatusCode)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("completion api error: empty choices")
	}

	return result.Choices[0].Message.Content, nil
}
