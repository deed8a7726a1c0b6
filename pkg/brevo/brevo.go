package brevo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

const defaultEndpoint = "https://api.brevo.com/v3/smtp/email"

// Outbound notification calls get a fixed ceiling so a slow provider can
// never hold an approval transaction open.
const requestTimeout = 10 * time.Second

// Config contains credentials and sender identity for the Brevo API.
type Config struct {
	APIKey      string
	SenderEmail string
	SenderName  string
	Endpoint    string
}

// Client sends transactional email through the Brevo REST API.
type Client struct {
	cfg    Config
	http   *http.Client
	logger zerolog.Logger
}

// New constructs a Brevo client.
func New(cfg Config, logger zerolog.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("brevo api key is required")
	}
	if cfg.SenderEmail == "" {
		return nil, fmt.Errorf("brevo sender email is required")
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = defaultEndpoint
	}

	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: requestTimeout},
		logger: logger.With().Str("component", "brevo").Logger(),
	}, nil
}

type recipient struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type sendRequest struct {
	Sender      recipient   `json:"sender"`
	To          []recipient `json:"to"`
	Subject     string      `json:"subject"`
	HTMLContent string      `json:"htmlContent"`
}

// Send delivers one transactional email. The context carries the request
// ceiling in addition to the client timeout.
func (c *Client) Send(ctx context.Context, toEmail, toName, subject, htmlBody string) error {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	payload := sendRequest{
		Sender:      recipient{Email: c.cfg.SenderEmail, Name: c.cfg.SenderName},
		To:          []recipient{{Email: toEmail, Name: toName}},
		Subject:     subject,
		HTMLContent: htmlBody,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal brevo payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build brevo request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", c.cfg.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("send brevo email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("brevo responded with status %d", resp.StatusCode)
	}

	c.logger.Info().Str("to", toEmail).Str("subject", subject).Msg("transactional email sent")
	return nil
}
