package availability

import (
	"fmt"
	"time"
)

// Schedule is the daily opening window and the slot length used on weekdays.
type Schedule struct {
	Open         string
	Close        string
	SlotDuration time.Duration
}

func DefaultSchedule() Schedule {
	return Schedule{
		Open:         "09:00",
		Close:        "19:00",
		SlotDuration: 45 * time.Minute,
	}
}

func (s Schedule) Validate() error {
	open, err := minuteOfDay(s.Open)
	if err != nil {
		return fmt.Errorf("availability: open time: %w", err)
	}
	closing, err := minuteOfDay(s.Close)
	if err != nil {
		return fmt.Errorf("availability: close time: %w", err)
	}
	if closing <= open {
		return fmt.Errorf("availability: close time %s is not after open time %s", s.Close, s.Open)
	}
	if s.SlotDuration < time.Minute || s.SlotDuration%time.Minute != 0 {
		return fmt.Errorf("availability: slot duration %s must be a whole number of minutes", s.SlotDuration)
	}
	return nil
}

// startTimes lists the slot labels of a working day. A slot is kept only
// when it ends at or before closing time.
func (s Schedule) startTimes() []string {
	open, _ := minuteOfDay(s.Open)
	closing, _ := minuteOfDay(s.Close)
	step := int(s.SlotDuration / time.Minute)

	var out []string
	for m := open; m+step <= closing; m += step {
		out = append(out, fmt.Sprintf("%02d:%02d", m/60, m%60))
	}
	return out
}

func minuteOfDay(hm string) (int, error) {
	t, err := time.Parse(TimeLayout, hm)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}
