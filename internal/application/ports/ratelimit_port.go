package ports

import (
	"context"
	"time"
)

// RateDecision resultado de consultar el limitador.
type RateDecision struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// RateLimiter limita peticiones por clave. Las implementaciones no devuelven error: ante fallas permiten.
type RateLimiter interface {
	Allow(ctx context.Context, key string) RateDecision
}
