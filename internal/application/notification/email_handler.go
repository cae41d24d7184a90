// Package notification procesa los mensajes del tópico de correo consumidos por el worker.
package notification

import (
	"context"
	"encoding/json"

	"github.com/jhoicas/storekeeper-api/internal/application/ports"
	"github.com/jhoicas/storekeeper-api/pkg/logger"
	"github.com/jhoicas/storekeeper-api/pkg/metrics"
	"github.com/jhoicas/storekeeper-api/pkg/validator"
)

// EmailHandler valida y envía cada notificación. Un mensaje inválido o un envío fallido se registra
// y se descarta; nunca detiene el consumo.
type EmailHandler struct {
	sender  ports.EmailSender
	log     *logger.Logger
	metrics *metrics.Metrics
}

// NewEmailHandler construye el manejador. m puede ser nil.
func NewEmailHandler(sender ports.EmailSender, log *logger.Logger, m *metrics.Metrics) *EmailHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &EmailHandler{sender: sender, log: log.Component("email-handler"), metrics: m}
}

// Handle procesa el valor crudo de un mensaje. Devuelve true si el correo se entregó al proveedor.
func (h *EmailHandler) Handle(ctx context.Context, value []byte) bool {
	var msg ports.EmailNotification
	if err := json.Unmarshal(value, &msg); err != nil {
		h.log.Warn().Err(err).Msg("mensaje de correo no es JSON válido; descartado")
		h.metrics.RecordNotification("consume", "invalid")
		return false
	}
	if errs := validator.ValidateStruct(msg); errs != nil {
		h.log.Warn().Str("errors", validator.Message(errs)).Msg("mensaje de correo incompleto; descartado")
		h.metrics.RecordNotification("consume", "invalid")
		return false
	}
	if err := h.sender.Send(ctx, msg); err != nil {
		h.log.Error().Err(err).Str("to", msg.To).Msg("no se pudo enviar el correo")
		h.metrics.RecordNotification("send", "error")
		return false
	}
	h.log.Info().Str("to", msg.To).Str("subject", msg.Subject).Msg("correo enviado")
	h.metrics.RecordNotification("send", "ok")
	return true
}
