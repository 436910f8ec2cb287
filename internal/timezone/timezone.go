package timezone

import "time"

// DefaultTimezone is the shop's local zone. Every "which calendar day is
// this" decision goes through it; day boundaries are never built from UTC
// literals.
const DefaultTimezone = "Europe/Belgrade"

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, _ := time.LoadLocation(DefaultTimezone)
	return loc
}
