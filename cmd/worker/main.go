// worker consume el tópico de notificaciones y envía los correos por SendGrid.
// Sin SENDGRID_API_KEY los correos solo se registran en el log.
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/storekeeper-api/internal/application/notification"
	"github.com/jhoicas/storekeeper-api/internal/infrastructure/email"
	infrakafka "github.com/jhoicas/storekeeper-api/internal/infrastructure/kafka"
	"github.com/jhoicas/storekeeper-api/pkg/config"
	"github.com/jhoicas/storekeeper-api/pkg/logger"
	"github.com/jhoicas/storekeeper-api/pkg/metrics"
)

// metricsAddr puerto de /metrics del worker (no expone API).
const metricsAddr = ":9091"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: "worker",
	})
	log.Info().
		Str("topic", cfg.Kafka.EmailTopic).
		Str("group", cfg.Kafka.GroupID).
		Strs("brokers", cfg.Kafka.Brokers).
		Msg("iniciando worker de correo")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New(cfg.Metrics.Prefix + "_worker")
		srv := &http.Server{
			Addr:              metricsAddr,
			Handler:           promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{}),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error().Err(err).Msg("servidor de métricas finalizado")
			}
		}()
		defer srv.Close()
	}

	handler := notification.NewEmailHandler(email.NewSender(cfg.Email, log), log, m)
	consumer := infrakafka.NewConsumer(infrakafka.NewReader(cfg.Kafka), log)
	defer func() {
		if err := consumer.Close(); err != nil {
			log.Error().Err(err).Msg("cerrar reader de Kafka")
		}
	}()

	if err := consumer.Run(ctx, handler.Handle); err != nil {
		log.Error().Err(err).Msg("consumidor finalizado con error")
	}
	log.Info().Msg("worker detenido")
}
