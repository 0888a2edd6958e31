package domain

import (
	"time"

	"github.com/google/uuid"
)

// ReservationStatus is the lifecycle state of a reservation.
type ReservationStatus string

const (
	ReservationStatusReserved  ReservationStatus = "reserved"
	ReservationStatusCancelled ReservationStatus = "cancelled"
)

// Reservation is a reversible hold against a product's stock. It is created
// in the reserved state and may transition exactly once to cancelled.
type Reservation struct {
	ID         string            `json:"id" db:"id"`
	ProductID  string            `json:"product_id" db:"product_id"`
	Quantity   int               `json:"quantity" db:"quantity"`
	Status     ReservationStatus `json:"status" db:"status"`
	ReservedAt time.Time         `json:"reserved_at" db:"reserved_at"`
}

// NewReservation constructs a Reservation in the reserved state.
func NewReservation(productID string, quantity Quantity) *Reservation {
	return &Reservation{
		ID:         uuid.NewString(),
		ProductID:  productID,
		Quantity:   int(quantity),
		Status:     ReservationStatusReserved,
		ReservedAt: time.Now(),
	}
}

// Cancel transitions the reservation to cancelled. Cancelling a reservation
// that is not in the reserved state fails.
func (r *Reservation) Cancel() error {
	if r.Status != ReservationStatusReserved {
		return &CannotCancelReservationError{ReservationID: r.ID, Status: r.Status}
	}
	r.Status = ReservationStatusCancelled
	return nil
}
