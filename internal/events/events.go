package events

import "time"

// EventType identifies a stock movement event.
type EventType string

const (
	TypeStockReserved EventType = "stock.reserved"
	TypeStockReleased EventType = "stock.released"
	TypeStockSold     EventType = "stock.sold"
)

// StockEvent describes a single movement of a product's stock counter.
type StockEvent struct {
	Type          EventType `json:"type"`
	ProductID     string    `json:"product_id"`
	ReservationID string    `json:"reservation_id,omitempty"`
	SaleID        string    `json:"sale_id,omitempty"`
	Quantity      int       `json:"quantity"`
	OccurredAt    time.Time `json:"occurred_at"`
}
