// Package kafka adapta segmentio/kafka-go a los puertos de notificación: productor con reintentos
// y lazo de consumo para el worker de correo.
package kafka

import (
	"context"

	"github.com/segmentio/kafka-go"
)

// MessageWriter subconjunto de *kafka.Writer usado por el productor.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// MessageReader subconjunto de *kafka.Reader usado por el consumidor.
type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}
