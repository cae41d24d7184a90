package realtime_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/storekeeper-api/internal/application/ports"
	"github.com/jhoicas/storekeeper-api/internal/infrastructure/realtime"
)

type fakeConn struct {
	mu     sync.Mutex
	msgs   [][]byte
	closed bool
	fail   bool
}

func (c *fakeConn) WriteMessage(_ int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail {
		return errors.New("broken pipe")
	}
	c.msgs = append(c.msgs, data)
	return nil
}

func (c *fakeConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *fakeConn) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.msgs)
}

func (c *fakeConn) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func TestHub_EntregaSoloAlDueno(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h := realtime.NewHub(nil)
	go h.Run(ctx)

	owner, other := &fakeConn{}, &fakeConn{}
	h.Register("u1", owner)
	h.Register("u2", other)

	h.PublishStockChanged("u1", ports.StockChangedEvent{Event: "stock.updated", ProductID: "p1", NewQuantity: 7})

	require.Eventually(t, func() bool { return owner.count() == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, 0, other.count())

	var evt ports.StockChangedEvent
	owner.mu.Lock()
	require.NoError(t, json.Unmarshal(owner.msgs[0], &evt))
	owner.mu.Unlock()
	assert.Equal(t, "p1", evt.ProductID)
	assert.Equal(t, 7, evt.NewQuantity)
}

func TestHub_QuitaConexionesCaidasYCierraAlTerminar(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	h := realtime.NewHub(nil)
	done := make(chan struct{})
	go func() { h.Run(ctx); close(done) }()

	broken, healthy := &fakeConn{fail: true}, &fakeConn{}
	h.Register("u1", broken)
	h.Register("u1", healthy)
	h.PublishStockChanged("u1", ports.StockChangedEvent{Event: "stock.updated"})

	require.Eventually(t, func() bool { return broken.isClosed() && healthy.count() == 1 }, time.Second, 5*time.Millisecond)

	cancel()
	<-done
	assert.True(t, healthy.isClosed())
}
