package timezone

import "time"

// Location resolves tz, falling back to the process local zone for "",
// "Local" or unknown names.
func Location(tz string) *time.Location {
	if tz == "" || tz == "Local" {
		return time.Local
	}
	if loc, err := time.LoadLocation(tz); err == nil {
		return loc
	}
	return time.Local
}

func IsValid(tz string) bool {
	if tz == "" || tz == "Local" {
		return true
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

// Today is the calendar day of now in loc, at midnight.
func Today(now time.Time, loc *time.Location) time.Time {
	n := now.In(loc)
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, loc)
}

// ParseDate reads a YYYY-MM-DD day in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", s, loc)
}
