// Package mailer delivers the registration confirmation email through
// Postmark. Delivery is best-effort: callers log failures and move on, and
// every attempt is recorded in the email log for manual follow-up.
package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hotend/giveaway-backend/config"
)

// sendTimeout bounds the outbound provider call so a slow Postmark never
// stalls a registration response.
const sendTimeout = 10 * time.Second

// Client is a minimal Postmark REST client.
type Client struct {
	httpClient *http.Client
	apiURL     string
	token      string
	from       string
}

// NewClient creates a Postmark client from configuration.
func NewClient(cfg config.PostmarkConfig) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: sendTimeout},
		apiURL:     cfg.APIURL,
		token:      cfg.Token,
		from:       cfg.FromEmail,
	}
}

type emailRequest struct {
	From     string `json:"From"`
	To       string `json:"To"`
	Subject  string `json:"Subject"`
	HTMLBody string `json:"HtmlBody"`
	TextBody string `json:"TextBody"`
}

// Send posts a single email to Postmark. A non-2xx response is returned as an
// error carrying the status and a snippet of the provider's answer.
func (c *Client) Send(ctx context.Context, to, subject, htmlBody, textBody string) error {
	payload, err := json.Marshal(emailRequest{
		From:     c.from,
		To:       to,
		Subject:  subject,
		HTMLBody: htmlBody,
		TextBody: textBody,
	})
	if err != nil {
		return fmt.Errorf("marshal email: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL+"/email", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Postmark-Server-Token", c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("post email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("postmark status %d: %s", resp.StatusCode, bytes.TrimSpace(body))
	}
	return nil
}
