package ports

import "time"

// StockChangedEvent evento emitido tras cada movimiento de stock confirmado.
type StockChangedEvent struct {
	Event            string    `json:"event"` // "stock.updated"
	ProductID        string    `json:"productId"`
	StoreID          string    `json:"storeId"`
	Type             string    `json:"type"`
	PreviousQuantity int       `json:"previousQuantity"`
	NewQuantity      int       `json:"newQuantity"`
	ReferenceNumber  string    `json:"referenceNumber"`
	At               time.Time `json:"at"`
}

// StockEventPublisher entrega eventos de stock a las conexiones abiertas del dueño.
// No bloquea ni falla: si el usuario no tiene conexiones el evento se descarta.
type StockEventPublisher interface {
	PublishStockChanged(userID string, evt StockChangedEvent)
}
