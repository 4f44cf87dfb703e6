// Package availability computes the rolling calendar of bookable days and
// the fixed-duration time slots inside each of them.
package availability

import "time"

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"

	DefaultWindowDays = 30
)

// TimeSlot is one bookable start time. ID is "<YYYY-MM-DD>-<HH:MM>".
type TimeSlot struct {
	ID        string `json:"id"`
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

// DayAvailability is one calendar day of the window. Available is a
// day-level flag; a weekday stays available even when every slot is taken.
type DayAvailability struct {
	Date      time.Time  `json:"date"`
	Available bool       `json:"available"`
	TimeSlots []TimeSlot `json:"time_slots"`
}

// SlotID is the identifier of the slot starting at hhmm on day.
func SlotID(day time.Time, hhmm string) string {
	return day.Format(DateLayout) + "-" + hhmm
}

// StartOfDay is midnight of t's day in t's location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// IsWeekend reports Saturday or Sunday in t's location.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// SameDay compares calendar dates, each read in its own location. It does
// not convert b into a's zone.
func SameDay(a, b time.Time) bool {
	return a.Format(DateLayout) == b.Format(DateLayout)
}

// FindDay returns the entry of days that falls on date.
func FindDay(days []DayAvailability, date time.Time) (*DayAvailability, bool) {
	for i := range days {
		if SameDay(days[i].Date, date) {
			return &days[i], true
		}
	}
	return nil, false
}

// FindSlot returns the slot of day with the given id. A nil day has no
// slots.
func FindSlot(day *DayAvailability, id string) (*TimeSlot, bool) {
	if day == nil {
		return nil, false
	}
	for i := range day.TimeSlots {
		if day.TimeSlots[i].ID == id {
			return &day.TimeSlots[i], true
		}
	}
	return nil, false
}

// CloneDays copies days including their slot slices.
func CloneDays(days []DayAvailability) []DayAvailability {
	if days == nil {
		return nil
	}
	out := make([]DayAvailability, len(days))
	for i, d := range days {
		out[i] = d
		if d.TimeSlots != nil {
			out[i].TimeSlots = append(make([]TimeSlot, 0, len(d.TimeSlots)), d.TimeSlots...)
		}
	}
	return out
}
