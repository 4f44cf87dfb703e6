package booking

import (
	"context"
	"time"

	"github.com/BruksfildServices01/booking-widget/internal/models"
)

type Repository interface {
	// CreateBooking inserts b. Inserting a reference that already exists is
	// not an error.
	CreateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	// ListBookedSlotIDs returns the slot ids of scheduled bookings whose
	// date is in [from, to).
	ListBookedSlotIDs(
		ctx context.Context,
		from time.Time,
		to time.Time,
	) ([]string, error)
}
