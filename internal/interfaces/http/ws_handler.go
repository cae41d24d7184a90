package http

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/storekeeper-api/internal/infrastructure/realtime"
)

// RequireUpgrade rechaza con 426 las peticiones que no son handshake websocket.
func RequireUpgrade() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	}
}

// StockFeed registra la conexión en el hub bajo el usuario autenticado y la mantiene hasta que el cliente cierre.
func StockFeed(hub *realtime.Hub) fiber.Handler {
	return websocket.New(func(c *websocket.Conn) {
		userID, _ := c.Locals(LocalUserID).(string)
		hub.Register(userID, c)
		defer hub.Unregister(userID, c)
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	})
}
