package email

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"mediagent_backend/platform/config"
)

// Attachment represents a file attachment for an email.
type Attachment struct {
	Content  []byte // raw file bytes (will be base64-encoded for Brevo)
	FileName string
	MIMEType string
}

type Sender interface {
	SendVerificationEmail(ctx context.Context, toEmail, verifyURL string) error
	SendPasswordResetEmail(ctx context.Context, toEmail, resetURL string) error
	SendOutreachEmail(ctx context.Context, toEmail, subject, body string) error
	SendCustomEmail(ctx context.Context, toEmail, subject, htmlContent string) error
}

type NoopSender struct{}

func (NoopSender) SendVerificationEmail(ctx context.Context, toEmail, verifyURL string) error {
	return nil
}

func (NoopSender) SendPasswordResetEmail(ctx context.Context, toEmail, resetURL string) error {
	return nil
}

func (NoopSender) SendOutreachEmail(ctx context.Context, toEmail, subject, body string) error {
	return nil
}

func (NoopSender) SendCustomEmail(ctx context.Context, toEmail, subject, htmlContent string) error {
	return nil
}

type BrevoSender struct {
	apiKey    string
	fromName  string
	fromEmail string
	client    *http.Client
}

type brevoAttachment struct {
	Content string `json:"content"` // base64-encoded file content
	Name    string `json:"name"`
}

type brevoEmailRequest struct {
	Sender struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"sender"`
	To []struct {
		Email string `json:"email"`
	} `json:"to"`
	Subject     string            `json:"subject"`
	HTMLContent string            `json:"htmlContent"`
	Attachment  []brevoAttachment `json:"attachment,omitempty"`
}

// NewSender selects a sender implementation from configuration.
// Disabled email yields a NoopSender so callers never need nil checks.
func NewSender(cfg config.EmailConfig) (Sender, error) {
	if !cfg.GetEmailEnabled() {
		return NoopSender{}, nil
	}

	switch cfg.GetEmailProvider() {
	case "smtp":
		return NewSMTPSender(
			cfg.GetSMTPHost(),
			cfg.GetSMTPPort(),
			cfg.GetSMTPUsername(),
			cfg.GetSMTPPassword(),
			cfg.GetEmailFromAddress(),
			cfg.GetEmailFromName(),
		), nil
	default:
		client := &http.Client{Timeout: 10 * time.Second}
		return &BrevoSender{
			apiKey:    cfg.GetBrevoAPIKey(),
			fromName:  cfg.GetEmailFromName(),
			fromEmail: cfg.GetEmailFromAddress(),
			client:    client,
		}, nil
	}
}

func (b *BrevoSender) SendVerificationEmail(ctx context.Context, toEmail, verifyURL string) error {
	content, err := renderEmailTemplate("verification.html", verificationEmailData{
		baseEmailData: baseEmailData{
			Title:    "Verify your email address",
			Heading:  "Verify your email address",
			CTALabel: "Verify email",
			CTAURL:   verifyURL,
		},
	})
	if err != nil {
		return err
	}
	return b.send(ctx, toEmail, subjectVerification, content)
}

func (b *BrevoSender) SendPasswordResetEmail(ctx context.Context, toEmail, resetURL string) error {
	content, err := renderEmailTemplate("password_reset.html", passwordResetEmailData{
		baseEmailData: baseEmailData{
			Title:    "Reset your password",
			Heading:  "Reset your password",
			CTALabel: "Reset password",
			CTAURL:   resetURL,
		},
	})
	if err != nil {
		return err
	}
	return b.send(ctx, toEmail, subjectPasswordReset, content)
}

func (b *BrevoSender) SendOutreachEmail(ctx context.Context, toEmail, subject, body string) error {
	content, err := renderEmailTemplate("outreach.html", outreachEmailData{
		baseEmailData: baseEmailData{
			Title:   subject,
			Heading: subject,
		},
		Body: body,
	})
	if err != nil {
		return err
	}
	return b.send(ctx, toEmail, subject, content)
}

func (b *BrevoSender) SendCustomEmail(ctx context.Context, toEmail, subject, htmlContent string) error {
	return b.send(ctx, toEmail, subject, htmlContent)
}

func (b *BrevoSender) send(ctx context.Context, toEmail, subject, htmlContent string) error {
	return b.sendWithAttachments(ctx, toEmail, subject, htmlContent)
}

func (b *BrevoSender) sendWithAttachments(ctx context.Context, toEmail, subject, htmlContent string, attachments ...Attachment) error {
	payload := brevoEmailRequest{
		Subject:     subject,
		HTMLContent: htmlContent,
	}
	payload.Sender.Name = b.fromName
	payload.Sender.Email = b.fromEmail
	payload.To = []struct {
		Email string `json:"email"`
	}{{Email: toEmail}}

	for _, att := range attachments {
		payload.Attachment = append(payload.Attachment, brevoAttachment{
			Content: base64.StdEncoding.EncodeToString(att.Content),
			Name:    att.FileName,
		})
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, "https://api.brevo.com/v3/smtp/email", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("api-key", b.apiKey)
	req.Header.Set("content-type", "application/json")
	req.Header.Set("accept", "application/json")

	resp, err := b.client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("brevo send failed: status %d: %s", resp.StatusCode, string(data))
	}

	return nil
}
