package ports

import "context"

// EmailTopic tópico por defecto de las notificaciones por correo.
const EmailTopic = "email-notification"

// EmailNotification mensaje publicado en el tópico de correo y consumido por el worker.
type EmailNotification struct {
	To      string `json:"to" validate:"required,email"`
	Subject string `json:"subject" validate:"required"`
	Text    string `json:"text" validate:"required"`
}

// NotificationPublisher publica eventos de notificación (best-effort para el caller).
type NotificationPublisher interface {
	PublishEmail(ctx context.Context, msg EmailNotification) error
}

// EmailSender entrega un correo al proveedor externo (lo usa el worker).
type EmailSender interface {
	Send(ctx context.Context, msg EmailNotification) error
}
