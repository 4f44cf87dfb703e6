package dto

import (
	"time"

	"github.com/BruksfildServices01/booking-widget/internal/domain/availability"
	"github.com/BruksfildServices01/booking-widget/internal/domain/booking"
	"github.com/BruksfildServices01/booking-widget/internal/widget"
)

type DayDTO struct {
	Date      string                  `json:"date"`
	Weekday   string                  `json:"weekday"`
	Available bool                    `json:"available"`
	TimeSlots []availability.TimeSlot `json:"time_slots"`
}

type FormDTO struct {
	Name     string  `json:"name"`
	Phone    string  `json:"phone"`
	Email    string  `json:"email"`
	Notes    string  `json:"notes"`
	Date     *string `json:"date"`
	TimeSlot *string `json:"time_slot"`
}

type ReceiptDTO struct {
	Reference   string    `json:"reference"`
	SubmittedAt time.Time `json:"submitted_at"`
}

type StateDTO struct {
	AvailableDays      []DayDTO    `json:"available_days"`
	SelectedDate       *string     `json:"selected_date"`
	SelectedTimeSlot   *string     `json:"selected_time_slot"`
	FormData           FormDTO     `json:"form_data"`
	Step               int         `json:"step"`
	IsConfirmationOpen bool        `json:"is_confirmation_open"`
	IsBookingComplete  bool        `json:"is_booking_complete"`
	IsLoading          bool        `json:"is_loading"`
	Receipt            *ReceiptDTO `json:"receipt,omitempty"`
	LastError          string      `json:"last_error,omitempty"`
}

type SessionDTO struct {
	SessionID string   `json:"session_id"`
	Token     string   `json:"token,omitempty"`
	Theme     string   `json:"theme"`
	Lang      string   `json:"lang"`
	State     StateDTO `json:"state"`
}

func Days(days []availability.DayAvailability) []DayDTO {
	out := make([]DayDTO, 0, len(days))
	for _, d := range days {
		out = append(out, DayDTO{
			Date:      d.Date.Format(availability.DateLayout),
			Weekday:   d.Date.Weekday().String(),
			Available: d.Available,
			TimeSlots: d.TimeSlots,
		})
	}
	return out
}

func State(st booking.State) StateDTO {
	out := StateDTO{
		AvailableDays:      Days(st.AvailableDays),
		SelectedDate:       formatDate(st.SelectedDate),
		SelectedTimeSlot:   st.SelectedTimeSlot,
		Step:               st.Step,
		IsConfirmationOpen: st.IsConfirmationOpen,
		IsBookingComplete:  st.IsBookingComplete,
		IsLoading:          st.IsLoading,
		LastError:          st.LastError,
		FormData: FormDTO{
			Name:     st.FormData.Name,
			Phone:    st.FormData.Phone,
			Email:    st.FormData.Email,
			Notes:    st.FormData.Notes,
			Date:     formatDate(st.FormData.Date),
			TimeSlot: st.FormData.TimeSlot,
		},
	}
	if st.Receipt != nil {
		out.Receipt = &ReceiptDTO{
			Reference:   st.Receipt.Reference,
			SubmittedAt: st.Receipt.SubmittedAt,
		}
	}
	return out
}

func Session(id, token string, params widget.Params, st booking.State) SessionDTO {
	return SessionDTO{
		SessionID: id,
		Token:     token,
		Theme:     params.Theme,
		Lang:      params.Lang,
		State:     State(st),
	}
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(availability.DateLayout)
	return &s
}
