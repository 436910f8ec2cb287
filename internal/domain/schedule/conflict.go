package schedule

import (
	"time"

	"github.com/petarpopovic013-oss/barbershop/internal/httperr"
)

// Business rejection codes shared by the write path and its handlers.
const (
	CodeDayUnavailable      = "day_unavailable"
	CodeSlotTaken           = "slot_taken"
	CodeTooSoon             = "too_soon"
	CodeOutsideWorkingHours = "outside_working_hours"
	CodeInvalidTimeRange    = "invalid_time_range"
)

// CheckBooking is the authoritative write-time gate. The client-side slot
// filtering is advisory and can be stale between page load and submission,
// so every candidate [start, end) is re-validated here against the current
// override and reservation set before anything is written.
func (p Policy) CheckBooking(start, end time.Time, ov *Override, existing []Interval, now time.Time) error {
	if !start.Before(end) {
		return httperr.ErrBusiness(CodeInvalidTimeRange)
	}

	if ov != nil && !ov.IsAvailable {
		return httperr.ErrBusiness(CodeDayUnavailable)
	}

	window, ok := p.DayWindow(start, ov)
	if !ok {
		return httperr.ErrBusiness(CodeDayUnavailable)
	}
	if start.Before(window.Start) || end.After(window.End) {
		return httperr.ErrBusiness(CodeOutsideWorkingHours)
	}

	if start.Before(now.Add(p.LeadTime)) {
		return httperr.ErrBusiness(CodeTooSoon)
	}

	candidate := Interval{Start: start, End: end}
	for _, iv := range existing {
		if candidate.Overlaps(iv) {
			return httperr.ErrBusiness(CodeSlotTaken)
		}
	}

	return nil
}
