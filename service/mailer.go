package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/Liamshmuel20/Rant.GO/config"
	"github.com/Liamshmuel20/Rant.GO/pkg/logger"
)

// Mailer sends transactional email through a mail-provider HTTP API.
// With no API key configured it logs and drops messages, so local runs
// and tests never hit the network.
type Mailer struct {
	httpClient *resty.Client
	from       string
	enabled    bool
}

type emailRequest struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

func NewMailer(cfg *config.EmailConfig) *Mailer {
	client := resty.New().
		SetBaseURL(cfg.APIURL).
		SetTimeout(15 * time.Second).
		SetRetryCount(3).
		SetRetryWaitTime(1 * time.Second).
		SetRetryMaxWaitTime(5 * time.Second).
		SetHeader("Content-Type", "application/json").
		SetAuthToken(cfg.APIKey)

	return &Mailer{
		httpClient: client,
		from:       cfg.FromEmail,
		enabled:    cfg.APIURL != "" && cfg.APIKey != "",
	}
}

// Send delivers one email. Failures are returned, not retried beyond
// the client's built-in retries; callers treat email as best effort.
func (m *Mailer) Send(ctx context.Context, to, subject, body string) error {
	if !m.enabled {
		logger.Debug(ctx, "mailer disabled, dropping email", "to", to, "subject", subject)
		return nil
	}

	resp, err := m.httpClient.R().
		SetContext(ctx).
		SetBody(emailRequest{From: m.from, To: to, Subject: subject, Body: body}).
		Post("/messages")
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("mail provider returned %d: %s", resp.StatusCode(), resp.String())
	}

	logger.Debug(ctx, "email sent", "to", to, "subject", subject)
	return nil
}
