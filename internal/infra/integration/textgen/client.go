package textgen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client drafts the confirmation email body through an OpenAI-style
// chat-completions endpoint.
type Client struct {
	baseURL string
	apiKey  string
	model   string
	http    *http.Client
}

func NewClient(apiKey, baseURL, model string) *Client {
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		model:   model,
		http:    &http.Client{Timeout: 8 * time.Second},
	}
}

func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// DraftConfirmation asks the model for a short, plain-text confirmation email
// body addressed to the lead.
func (c *Client) DraftConfirmation(ctx context.Context, name, industry string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("text generation API key is not configured")
	}

	url := fmt.Sprintf("%s/chat/completions", c.baseURL)

	payload := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{
				Role: "system",
				Content: "You write short, warm confirmation emails for a lead capture form. " +
					"Plain text only, no subject line, at most 80 words.",
			},
			{
				Role: "user",
				Content: fmt.Sprintf(
					"Write a confirmation email body for %s, who works in %s and just signed up for updates.",
					name, industry,
				),
			},
		},
		Temperature: 0.7,
		MaxTokens:   200,
	}

	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat completion request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("chat completion rejected (status %d): %s", resp.StatusCode, string(body))
	}

	var response chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("failed to decode chat response: %w", err)
	}

	if len(response.Choices) == 0 || response.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("chat completion returned no content")
	}

	return response.Choices[0].Message.Content, nil
}
