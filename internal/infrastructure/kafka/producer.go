package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/jhoicas/storekeeper-api/internal/application/ports"
	"github.com/jhoicas/storekeeper-api/pkg/config"
	"github.com/jhoicas/storekeeper-api/pkg/logger"
	"github.com/jhoicas/storekeeper-api/pkg/metrics"
)

var _ ports.NotificationPublisher = (*Producer)(nil)

// WriterFactory crea un writer nuevo; se invoca al iniciar y en cada reintento.
type WriterFactory func() MessageWriter

// Producer publica notificaciones de correo. Tras un fallo cierra el writer y crea otro
// antes de reintentar, hasta maxRetries veces.
type Producer struct {
	mu         sync.Mutex
	newWriter  WriterFactory
	writer     MessageWriter
	maxRetries int
	log        *logger.Logger
	metrics    *metrics.Metrics
}

// NewWriterFactory construye writers de kafka-go para el tópico de correo.
func NewWriterFactory(cfg config.KafkaConfig) WriterFactory {
	return func() MessageWriter {
		return &kafka.Writer{
			Addr:                   kafka.TCP(cfg.Brokers...),
			Topic:                  cfg.EmailTopic,
			Balancer:               &kafka.LeastBytes{},
			BatchTimeout:           10 * time.Millisecond,
			BatchSize:              100,
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: true,
		}
	}
}

// NewProducer construye el productor. m puede ser nil.
func NewProducer(newWriter WriterFactory, maxRetries int, log *logger.Logger, m *metrics.Metrics) *Producer {
	if log == nil {
		log = logger.Nop()
	}
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &Producer{
		newWriter:  newWriter,
		writer:     newWriter(),
		maxRetries: maxRetries,
		log:        log.Component("kafka-producer"),
		metrics:    m,
	}
}

// PublishEmail serializa el mensaje y lo escribe con la clave del destinatario.
func (p *Producer) PublishEmail(ctx context.Context, msg ports.EmailNotification) error {
	value, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("serializar notificación: %w", err)
	}
	km := kafka.Message{Key: []byte(msg.To), Value: value, Time: time.Now()}

	p.mu.Lock()
	defer p.mu.Unlock()

	var lastErr error
	for attempt := 0; attempt <= p.maxRetries; attempt++ {
		if attempt > 0 {
			p.reconnect()
		}
		if lastErr = p.writer.WriteMessages(ctx, km); lastErr == nil {
			p.metrics.RecordNotification("publish", "ok")
			return nil
		}
		p.log.Warn().Err(lastErr).Int("attempt", attempt+1).Msg("fallo al publicar notificación")
		if ctx.Err() != nil {
			break
		}
	}
	p.metrics.RecordNotification("publish", "error")
	return fmt.Errorf("publicar notificación: %w", lastErr)
}

// Close cierra el writer actual.
func (p *Producer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.writer.Close()
}

func (p *Producer) reconnect() {
	if err := p.writer.Close(); err != nil {
		p.log.Debug().Err(err).Msg("cerrando writer anterior")
	}
	p.writer = p.newWriter()
}
