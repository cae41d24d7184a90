// Package email entrega las notificaciones del worker a SendGrid, o solo las registra cuando no hay API key.
package email

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/jhoicas/storekeeper-api/internal/application/ports"
	"github.com/jhoicas/storekeeper-api/pkg/config"
	"github.com/jhoicas/storekeeper-api/pkg/logger"
)

var (
	_ ports.EmailSender = (*SendGridSender)(nil)
	_ ports.EmailSender = (*LogSender)(nil)
)

// SendGridSender envía correos con la API v3 de SendGrid.
type SendGridSender struct {
	client  *sendgrid.Client
	from    *mail.Email
	sandbox bool
	log     *logger.Logger
}

// NewSender elige la implementación según la configuración: sin API key solo se registra el correo.
func NewSender(cfg config.EmailConfig, log *logger.Logger) ports.EmailSender {
	if log == nil {
		log = logger.Nop()
	}
	if cfg.SendGridAPIKey == "" {
		return NewLogSender(log)
	}
	return &SendGridSender{
		client:  sendgrid.NewSendClient(cfg.SendGridAPIKey),
		from:    mail.NewEmail(cfg.FromName, cfg.FromEmail),
		sandbox: cfg.SandboxMode,
		log:     log.Component("sendgrid"),
	}
}

// Send construye el mensaje y lo entrega. Un status >= 400 se trata como error.
func (s *SendGridSender) Send(ctx context.Context, msg ports.EmailNotification) error {
	m := buildMessage(s.from, msg, s.sandbox)
	resp, err := s.client.SendWithContext(ctx, m)
	if err != nil {
		return fmt.Errorf("sendgrid: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid: status %d: %s", resp.StatusCode, resp.Body)
	}
	s.log.Debug().Int("status", resp.StatusCode).Str("to", msg.To).Msg("correo aceptado por SendGrid")
	return nil
}

func buildMessage(from *mail.Email, msg ports.EmailNotification, sandbox bool) *mail.SGMailV3 {
	m := mail.NewSingleEmailPlainText(from, msg.Subject, mail.NewEmail("", msg.To), msg.Text)
	if sandbox {
		settings := mail.NewMailSettings()
		settings.SetSandboxMode(mail.NewSetting(true))
		m.SetMailSettings(settings)
	}
	return m
}

// LogSender registra el correo en el log sin enviarlo (desarrollo y tests).
type LogSender struct {
	log *logger.Logger
}

// NewLogSender construye el sender de solo log.
func NewLogSender(log *logger.Logger) *LogSender {
	if log == nil {
		log = logger.Nop()
	}
	return &LogSender{log: log.Component("email-log")}
}

// Send registra destinatario y asunto.
func (s *LogSender) Send(_ context.Context, msg ports.EmailNotification) error {
	s.log.Info().Str("to", msg.To).Str("subject", msg.Subject).Msg("correo (solo log)")
	return nil
}
