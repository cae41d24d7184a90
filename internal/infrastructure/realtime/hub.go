// Package realtime mantiene las conexiones websocket abiertas por usuario y les entrega los eventos de stock.
package realtime

import (
	"context"
	"encoding/json"

	"github.com/gofiber/contrib/websocket"

	"github.com/jhoicas/storekeeper-api/internal/application/ports"
	"github.com/jhoicas/storekeeper-api/pkg/logger"
)

var _ ports.StockEventPublisher = (*Hub)(nil)

// Conn subconjunto de *websocket.Conn que usa el hub.
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

type subscription struct {
	userID string
	conn   Conn
}

type envelope struct {
	userID  string
	payload []byte
}

// Hub registra conexiones por usuario. Todo el estado se modifica en la goroutine de Run.
type Hub struct {
	clients    map[string]map[Conn]struct{}
	register   chan subscription
	unregister chan subscription
	broadcast  chan envelope
	done       chan struct{}
	log        *logger.Logger
}

// NewHub construye el hub; hay que arrancar Run en una goroutine.
func NewHub(log *logger.Logger) *Hub {
	if log == nil {
		log = logger.Nop()
	}
	return &Hub{
		clients:    make(map[string]map[Conn]struct{}),
		register:   make(chan subscription),
		unregister: make(chan subscription),
		broadcast:  make(chan envelope, 256),
		done:       make(chan struct{}),
		log:        log.Component("realtime-hub"),
	}
}

// Run procesa altas, bajas y envíos hasta que ctx se cancele; entonces cierra todas las conexiones.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for _, conns := range h.clients {
				for conn := range conns {
					_ = conn.Close()
				}
			}
			h.clients = make(map[string]map[Conn]struct{})
			return

		case s := <-h.register:
			if h.clients[s.userID] == nil {
				h.clients[s.userID] = make(map[Conn]struct{})
			}
			h.clients[s.userID][s.conn] = struct{}{}
			h.log.Debug().Str("user_id", s.userID).Int("connections", len(h.clients[s.userID])).Msg("cliente WS conectado")

		case s := <-h.unregister:
			h.remove(s.userID, s.conn)

		case e := <-h.broadcast:
			for conn := range h.clients[e.userID] {
				if err := conn.WriteMessage(websocket.TextMessage, e.payload); err != nil {
					h.log.Debug().Err(err).Str("user_id", e.userID).Msg("conexión WS caída")
					h.remove(e.userID, conn)
				}
			}
		}
	}
}

// Register agrega una conexión del usuario.
// Tras el cierre del hub la conexión se cierra de inmediato.
func (h *Hub) Register(userID string, conn Conn) {
	select {
	case h.register <- subscription{userID: userID, conn: conn}:
	case <-h.done:
		_ = conn.Close()
	}
}

// Unregister quita y cierra la conexión.
func (h *Hub) Unregister(userID string, conn Conn) {
	select {
	case h.unregister <- subscription{userID: userID, conn: conn}:
	case <-h.done:
	}
}

// PublishStockChanged encola el evento para las conexiones del usuario. Si la cola está llena se descarta.
func (h *Hub) PublishStockChanged(userID string, evt ports.StockChangedEvent) {
	payload, err := json.Marshal(evt)
	if err != nil {
		h.log.Error().Err(err).Msg("serializar evento de stock")
		return
	}
	select {
	case h.broadcast <- envelope{userID: userID, payload: payload}:
	default:
		h.log.Warn().Str("user_id", userID).Msg("cola de eventos llena; evento descartado")
	}
}

func (h *Hub) remove(userID string, conn Conn) {
	conns, ok := h.clients[userID]
	if !ok {
		return
	}
	if _, ok := conns[conn]; ok {
		delete(conns, conn)
		_ = conn.Close()
	}
	if len(conns) == 0 {
		delete(h.clients, userID)
	}
}
