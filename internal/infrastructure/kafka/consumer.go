package kafka

import (
	"context"
	"errors"

	"github.com/segmentio/kafka-go"

	"github.com/jhoicas/storekeeper-api/pkg/config"
	"github.com/jhoicas/storekeeper-api/pkg/logger"
)

// HandlerFunc procesa el valor de un mensaje. Devuelve false si el mensaje no se pudo
// procesar; el consumidor lo registra y continúa con el siguiente.
type HandlerFunc func(ctx context.Context, value []byte) bool

// Consumer lazo de lectura del tópico de correo. Termina cuando el contexto se cancela.
type Consumer struct {
	reader MessageReader
	log    *logger.Logger
}

// NewReader construye un reader de kafka-go con grupo de consumo.
func NewReader(cfg config.KafkaConfig) MessageReader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Brokers,
		Topic:    cfg.EmailTopic,
		GroupID:  cfg.GroupID,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
}

// NewConsumer construye el consumidor.
func NewConsumer(reader MessageReader, log *logger.Logger) *Consumer {
	if log == nil {
		log = logger.Nop()
	}
	return &Consumer{reader: reader, log: log.Component("kafka-consumer")}
}

// Run lee mensajes hasta que ctx se cancele y delega cada uno en handle.
func (c *Consumer) Run(ctx context.Context, handle HandlerFunc) error {
	c.log.Info().Msg("consumidor iniciado; esperando mensajes")
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
				c.log.Info().Msg("contexto finalizado; saliendo del lazo de lectura")
				return nil
			}
			c.log.Error().Err(err).Msg("error leyendo de Kafka")
			continue
		}
		c.log.Debug().Str("topic", msg.Topic).Int("partition", msg.Partition).Int64("offset", msg.Offset).Msg("mensaje recibido")
		if !handle(ctx, msg.Value) {
			c.log.Warn().
				Str("topic", msg.Topic).
				Int("partition", msg.Partition).
				Int64("offset", msg.Offset).
				Msg("mensaje no procesado; se descarta")
		}
	}
}

// Close cierra el reader.
func (c *Consumer) Close() error {
	return c.reader.Close()
}
