package email

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"time"

	gomail "github.com/wneessen/go-mail"
)

// SMTPSender implements the Sender interface using a direct SMTP connection via go-mail.
// It renders the same HTML templates as BrevoSender but delivers via a configured SMTP server.
type SMTPSender struct {
	host      string
	port      int
	username  string
	password  string
	fromName  string
	fromEmail string
}

// NewSMTPSender creates a new SMTPSender with the given SMTP credentials.
func NewSMTPSender(host string, port int, username, password, fromEmail, fromName string) *SMTPSender {
	return &SMTPSender{
		host:      host,
		port:      port,
		username:  username,
		password:  password,
		fromName:  fromName,
		fromEmail: fromEmail,
	}
}

func (s *SMTPSender) send(ctx context.Context, toEmail, subject, htmlContent string, attachments ...Attachment) error {
	msg := gomail.NewMsg()
	if err := msg.FromFormat(s.fromName, s.fromEmail); err != nil {
		return fmt.Errorf("smtp from: %w", err)
	}
	if err := msg.To(toEmail); err != nil {
		return fmt.Errorf("smtp to: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, htmlContent)

	for _, att := range attachments {
		msg.AttachReader(att.FileName, bytes.NewReader(att.Content))
	}

	client, err := gomail.NewClient(s.host,
		gomail.WithPort(s.port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.username),
		gomail.WithPassword(s.password),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
		gomail.WithTimeout(15*time.Second),
		gomail.WithDialContextFunc(func(dctx context.Context, _ string, addr string) (net.Conn, error) {
			return (&net.Dialer{}).DialContext(dctx, "tcp4", addr)
		}),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}

	return nil
}

func (s *SMTPSender) SendVerificationEmail(ctx context.Context, toEmail, verifyURL string) error {
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
	return s.send(ctx, toEmail, subjectVerification, content)
}

func (s *SMTPSender) SendPasswordResetEmail(ctx context.Context, toEmail, resetURL string) error {
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
	return s.send(ctx, toEmail, subjectPasswordReset, content)
}

func (s *SMTPSender) SendOutreachEmail(ctx context.Context, toEmail, subject, body string) error {
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
	return s.send(ctx, toEmail, subject, content)
}

func (s *SMTPSender) SendCustomEmail(ctx context.Context, toEmail, subject, htmlContent string) error {
	return s.send(ctx, toEmail, subject, htmlContent)
}
