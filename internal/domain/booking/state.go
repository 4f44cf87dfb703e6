package booking

import (
	"time"

	"github.com/BruksfildServices01/booking-widget/internal/domain/availability"
)

// Steps of the widget, in order.
const (
	StepSelectDateTime = 1
	StepDetails        = 2
	StepReview         = 3
)

// State is a point-in-time copy of a flow.
type State struct {
	AvailableDays      []availability.DayAvailability `json:"available_days"`
	SelectedDate       *time.Time                     `json:"selected_date"`
	SelectedTimeSlot   *string                        `json:"selected_time_slot"`
	FormData           FormData                       `json:"form_data"`
	Step               int                            `json:"step"`
	IsConfirmationOpen bool                           `json:"is_confirmation_open"`
	IsBookingComplete  bool                           `json:"is_booking_complete"`
	IsLoading          bool                           `json:"is_loading"`
	Receipt            *Receipt                       `json:"receipt,omitempty"`
	LastError          string                         `json:"last_error,omitempty"`
}
