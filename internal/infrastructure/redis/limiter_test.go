package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/storekeeper-api/internal/infrastructure/redis"
)

func TestSlidingWindowLimiter_BloqueaAlSuperarElLimite(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	l := redis.NewSlidingWindowLimiter(client, 3, time.Minute, nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		d := l.Allow(ctx, "u1:GET /api/products")
		require.True(t, d.Allowed, "petición %d", i+1)
		assert.Equal(t, 3-(i+1), d.Remaining)
	}
	d := l.Allow(ctx, "u1:GET /api/products")
	assert.False(t, d.Allowed)
	assert.Equal(t, 0, d.Remaining)

	// Otra clave no comparte la ventana
	assert.True(t, l.Allow(ctx, "u2:GET /api/products").Allowed)

	ttl := mr.TTL("rate_limit:u1:GET /api/products")
	assert.True(t, ttl > 0 && ttl <= 61*time.Second)
}

func TestSlidingWindowLimiter_FallaAbierto(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr(), MaxRetries: -1})
	l := redis.NewSlidingWindowLimiter(client, 1, time.Minute, nil)
	mr.Close()

	for i := 0; i < 3; i++ {
		assert.True(t, l.Allow(context.Background(), "k").Allowed)
	}
}
