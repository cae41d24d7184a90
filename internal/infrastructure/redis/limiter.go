// Package redis implementa el limitador de peticiones de ventana deslizante sobre un sorted set de Redis.
package redis

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/storekeeper-api/internal/application/ports"
	"github.com/jhoicas/storekeeper-api/pkg/config"
	"github.com/jhoicas/storekeeper-api/pkg/logger"
)

const keyPrefix = "rate_limit:"

var _ ports.RateLimiter = (*SlidingWindowLimiter)(nil)

// SlidingWindowLimiter cuenta peticiones por clave en los últimos window. Ante errores de Redis permite la petición.
type SlidingWindowLimiter struct {
	client goredis.Cmdable
	limit  int
	window time.Duration
	log    *logger.Logger
	now    func() time.Time
}

// NewClient abre el cliente de Redis.
func NewClient(cfg config.RedisConfig) *goredis.Client {
	return goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// NewSlidingWindowLimiter construye el limitador.
func NewSlidingWindowLimiter(client goredis.Cmdable, limit int, window time.Duration, log *logger.Logger) *SlidingWindowLimiter {
	if log == nil {
		log = logger.Nop()
	}
	return &SlidingWindowLimiter{
		client: client,
		limit:  limit,
		window: window,
		log:    log.Component("rate-limiter"),
		now:    time.Now,
	}
}

// Allow registra la petición y decide si está dentro del límite.
// Secuencia: descartar entradas fuera de la ventana, agregar la actual, contar y renovar el TTL.
func (l *SlidingWindowLimiter) Allow(ctx context.Context, key string) ports.RateDecision {
	now := l.now()
	nowMs := now.UnixMilli()
	windowStart := nowMs - l.window.Milliseconds()
	redisKey := keyPrefix + key
	member := strconv.FormatInt(nowMs, 10) + "-" + uuid.NewString()[:8]

	var card *goredis.IntCmd
	_, err := l.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.ZRemRangeByScore(ctx, redisKey, "0", strconv.FormatInt(windowStart-1, 10))
		pipe.ZAdd(ctx, redisKey, goredis.Z{Score: float64(nowMs), Member: member})
		card = pipe.ZCard(ctx, redisKey)
		pipe.Expire(ctx, redisKey, l.window+time.Second)
		return nil
	})
	if err != nil {
		l.log.Warn().Err(err).Str("key", key).Msg("redis no disponible; se permite la petición")
		return ports.RateDecision{Allowed: true, Limit: l.limit, Remaining: l.limit, ResetAt: now.Add(l.window)}
	}

	count := int(card.Val())
	remaining := l.limit - count
	if remaining < 0 {
		remaining = 0
	}
	return ports.RateDecision{
		Allowed:   count <= l.limit,
		Limit:     l.limit,
		Remaining: remaining,
		ResetAt:   now.Add(l.window),
	}
}
