package crm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/xavierca1/ligue-leads/internal/infra/queue"
)

// Client pushes captured leads into the CRM as contacts. Sync runs off the
// queue worker, so a CRM outage only delays the push, never the capture.
type Client struct {
	apiToken string
	baseURL  string
	http     *http.Client
}

func NewClient(apiToken, baseURL string) *Client {
	return &Client{
		apiToken: apiToken,
		baseURL:  baseURL,
		http:     &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *Client) PushLead(ctx context.Context, payload queue.LeadCapturedPayload) error {
	if c.apiToken == "" {
		log.Println("[CRM] API token not configured, skipping sync")
		return nil
	}

	body := createContactRequest{
		Name:     payload.Name,
		Email:    payload.Email,
		Industry: payload.Industry,
		Source:   "lead-capture-form",
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal contact: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/contacts", bytes.NewBuffer(jsonBody))
	if err != nil {
		return err
	}
	c.addAuthHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("failed to create contact: %d - %s", resp.StatusCode, string(respBody))
	}

	var result contactResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return err
	}

	log.Printf("[CRM] contact %s created for %s", result.ID, payload.Email)
	return nil
}

func (c *Client) addAuthHeaders(req *http.Request) {
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apiToken))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
}
