// Package email provides outbound email delivery.
// The module subscribes to auth domain events and turns them into
// verification and password-reset messages.
package email

import (
	"context"
	"strings"

	"mediagent_backend/internal/events"
	"mediagent_backend/platform/config"
	"mediagent_backend/platform/logger"
)

// Module wires the sender to domain events. It is not HTTP-facing.
type Module struct {
	sender Sender
	cfg    config.EmailConfig
	log    *logger.Logger
}

// NewModule creates the email module around a configured sender.
func NewModule(sender Sender, cfg config.EmailConfig, log *logger.Logger) *Module {
	return &Module{sender: sender, cfg: cfg, log: log}
}

// Sender exposes the underlying sender for modules that deliver
// ad-hoc messages (e.g. outreach emails).
func (m *Module) Sender() Sender {
	return m.sender
}

// RegisterHandlers subscribes the module to auth events on the bus.
func (m *Module) RegisterHandlers(bus events.Bus) {
	bus.Subscribe(events.EmailVerificationRequested{}.EventName(), events.HandlerFunc(m.handleVerificationRequested))
	bus.Subscribe(events.PasswordResetRequested{}.EventName(), events.HandlerFunc(m.handlePasswordResetRequested))
}

func (m *Module) handleVerificationRequested(ctx context.Context, event events.Event) error {
	evt, ok := event.(events.EmailVerificationRequested)
	if !ok {
		return nil
	}

	verifyURL := m.buildURL("/verify-email", evt.VerifyToken)
	if err := m.sender.SendVerificationEmail(ctx, evt.Email, verifyURL); err != nil {
		m.log.UpstreamError("email", "send_verification", 0, err)
		return err
	}
	return nil
}

func (m *Module) handlePasswordResetRequested(ctx context.Context, event events.Event) error {
	evt, ok := event.(events.PasswordResetRequested)
	if !ok {
		return nil
	}

	resetURL := m.buildURL("/reset-password", evt.ResetToken)
	if err := m.sender.SendPasswordResetEmail(ctx, evt.Email, resetURL); err != nil {
		m.log.UpstreamError("email", "send_password_reset", 0, err)
		return err
	}
	return nil
}

func (m *Module) buildURL(path, tokenValue string) string {
	base := strings.TrimRight(m.cfg.GetAppBaseURL(), "/")
	return base + path + "?token=" + tokenValue
}
