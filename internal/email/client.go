// Package email sends transactional mail through a Resend-compatible HTTP
// API.  Each call is a single attempt; callers decide what a failure means.
package email

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/drkishanbhalaniweb-create/militarydisabilitynexus-sub001/internal/config"
)

// Message is one outgoing email.
type Message struct {
	From    string
	To      []string
	Subject string
	HTML    string
	Text    string
}

// Sender is implemented by Client and by test fakes.
type Sender interface {
	Send(ctx context.Context, msg Message) (string, error)
}

// ProviderError carries a non-2xx response from the provider.
type ProviderError struct {
	StatusCode int
	Body       string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("email provider returned %d: %s", e.StatusCode, e.Body)
}

// Client posts messages to the provider's send endpoint.
type Client struct {
	apiURL string
	apiKey string
	from   string
	client *http.Client
}

// NewClient builds a client from cfg.  From is used when a message has none.
func NewClient(cfg config.EmailConfig) *Client {
	return &Client{
		apiURL: cfg.APIURL,
		apiKey: cfg.APIKey,
		from:   cfg.From,
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html,omitempty"`
	Text    string   `json:"text,omitempty"`
}

type sendResponse struct {
	ID string `json:"id"`
}

// Send posts msg and returns the provider's message id.
func (c *Client) Send(ctx context.Context, msg Message) (string, error) {
	if c.apiKey == "" {
		return "", errors.New("EMAIL_API_KEY not set")
	}
	if len(msg.To) == 0 {
		return "", errors.New("email has no recipients")
	}
	from := msg.From
	if from == "" {
		from = c.from
	}

	body, err := json.Marshal(sendRequest{From: from, To: msg.To, Subject: msg.Subject, HTML: msg.HTML, Text: msg.Text})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("email request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &ProviderError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	var out sendResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	return out.ID, nil
}
