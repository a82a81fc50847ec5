package email

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// Sender dispatches one HTML email to one recipient.
type Sender interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// SendGridClient sends mail through the SendGrid v3 API. Constructed once
// per process and reused.
type SendGridClient struct {
	client   *resty.Client
	apiKey   string
	from     string
	fromName string
	baseURL  string
}

type sendGridRequest struct {
	Personalizations []personalization `json:"personalizations"`
	From             emailAddress      `json:"from"`
	Content          []content         `json:"content"`
}

type personalization struct {
	To      []emailAddress `json:"to"`
	Subject string         `json:"subject"`
}

type emailAddress struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type content struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// NewSendGridClient creates a SendGrid mail client
func NewSendGridClient(apiKey, from, fromName string) *SendGridClient {
	return &SendGridClient{
		client:   resty.New().SetTimeout(30 * time.Second),
		apiKey:   apiKey,
		from:     from,
		fromName: fromName,
		baseURL:  "https://api.sendgrid.com/v3",
	}
}

// Send dispatches one email. Any non-2xx response is a failure.
func (s *SendGridClient) Send(ctx context.Context, to, subject, htmlBody string) error {
	req := sendGridRequest{
		Personalizations: []personalization{{
			To:      []emailAddress{{Email: to}},
			Subject: subject,
		}},
		From: emailAddress{
			Email: s.from,
			Name:  s.fromName,
		},
		Content: []content{{
			Type:  "text/html",
			Value: htmlBody,
		}},
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+s.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post(s.baseURL + "/mail/send")

	if err != nil {
		return fmt.Errorf("sendgrid request failed: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("sendgrid returned status %d: %s", resp.StatusCode(), resp.String())
	}
	return nil
}
