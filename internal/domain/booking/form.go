package booking

import "time"

// FormData is the input accumulated across steps. Date and TimeSlot mirror
// the flow's selection and are only ever written together with it.
type FormData struct {
	Name     string     `json:"name"`
	Phone    string     `json:"phone"`
	Email    string     `json:"email"`
	Notes    string     `json:"notes"`
	Date     *time.Time `json:"date"`
	TimeSlot *string    `json:"time_slot"`
}

// FormPatch carries a partial update. Nil fields keep their current value.
type FormPatch struct {
	Name     *string
	Phone    *string
	Email    *string
	Notes    *string
	Date     *time.Time
	TimeSlot *string
}

func (p FormPatch) apply(f *FormData) {
	if p.Name != nil {
		f.Name = *p.Name
	}
	if p.Phone != nil {
		f.Phone = *p.Phone
	}
	if p.Email != nil {
		f.Email = *p.Email
	}
	if p.Notes != nil {
		f.Notes = *p.Notes
	}
}

func (f FormData) clone() FormData {
	out := f
	if f.Date != nil {
		d := *f.Date
		out.Date = &d
	}
	if f.TimeSlot != nil {
		s := *f.TimeSlot
		out.TimeSlot = &s
	}
	return out
}
