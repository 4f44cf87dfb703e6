package availability

import "time"

// GenerateTimeSlots enumerates the slots of day. Weekends have no slots at
// all, not merely unavailable ones.
func GenerateTimeSlots(day time.Time, schedule Schedule, policy Policy) ([]TimeSlot, error) {
	if policy == nil {
		return nil, ErrNilPolicy
	}
	if err := schedule.Validate(); err != nil {
		return nil, err
	}

	day = StartOfDay(day)
	if IsWeekend(day) {
		return []TimeSlot{}, nil
	}

	starts := schedule.startTimes()
	slots := make([]TimeSlot, 0, len(starts))
	for _, hhmm := range starts {
		ok, err := policy(day, hhmm)
		if err != nil {
			return nil, &PolicyError{Day: day, Time: hhmm, Err: err}
		}
		slots = append(slots, TimeSlot{
			ID:        SlotID(day, hhmm),
			Time:      hhmm,
			Available: ok,
		})
	}

	return slots, nil
}

// GenerateAvailability builds windowDays consecutive days starting at today
// truncated to midnight. A non-positive window falls back to
// DefaultWindowDays.
func GenerateAvailability(today time.Time, windowDays int, schedule Schedule, policy Policy) ([]DayAvailability, error) {
	if windowDays <= 0 {
		windowDays = DefaultWindowDays
	}

	start := StartOfDay(today)
	days := make([]DayAvailability, 0, windowDays)

	for i := 0; i < windowDays; i++ {
		date := start.AddDate(0, 0, i)

		slots, err := GenerateTimeSlots(date, schedule, policy)
		if err != nil {
			return nil, err
		}

		days = append(days, DayAvailability{
			Date:      date,
			Available: !IsWeekend(date),
			TimeSlots: slots,
		})
	}

	return days, nil
}
