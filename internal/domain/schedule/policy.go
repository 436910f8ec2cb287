package schedule

import "time"

// Policy carries the booking rules that used to live as scattered constants:
// slot granularity, minimum booking notice, default working hours and the
// shop timezone. It is plain configuration so tests can vary every knob.
type Policy struct {
	SlotDuration time.Duration
	LeadTime     time.Duration

	// Default working hours, "HH:MM", used when a day has no override.
	DayStart string
	DayEnd   string

	Location *time.Location
}

// Override mirrors a barber_availability row for one calendar date. A nil
// *Override means "available, default hours".
type Override struct {
	IsAvailable bool
	HoursStart  string
	HoursEnd    string
}

// Interval is a half-open [Start, End) time range on absolute instants.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps uses the half-open test: touching intervals do not overlap, so a
// booking may end exactly where the next one starts.
func (iv Interval) Overlaps(o Interval) bool {
	return o.Start.Before(iv.End) && o.End.After(iv.Start)
}

// DayWindow resolves the bookable window for a calendar day: the override's
// hours when one exists and marks the day available, the policy defaults
// otherwise. ok is false when the day is marked unavailable.
func (p Policy) DayWindow(date time.Time, ov *Override) (Interval, bool) {
	startHM, endHM := p.DayStart, p.DayEnd
	if ov != nil {
		if !ov.IsAvailable {
			return Interval{}, false
		}
		if ov.HoursStart != "" && ov.HoursEnd != "" {
			startHM, endHM = ov.HoursStart, ov.HoursEnd
		}
	}

	start, okStart := p.timeOfDay(date, startHM)
	end, okEnd := p.timeOfDay(date, endHM)
	if !okStart || !okEnd || !start.Before(end) {
		return Interval{}, false
	}
	return Interval{Start: start, End: end}, true
}

// DayBounds returns the [00:00, 24:00) interval of a YYYY-MM-DD day in the
// shop timezone, for bucketing reservations onto calendar days.
func (p Policy) DayBounds(date string) (Interval, error) {
	day, err := time.ParseInLocation("2006-01-02", date, p.loc())
	if err != nil {
		return Interval{}, err
	}
	return Interval{Start: day, End: day.AddDate(0, 0, 1)}, nil
}

// SameDay reports whether two instants fall on the same calendar date in the
// shop timezone.
func (p Policy) SameDay(a, b time.Time) bool {
	ay, am, ad := a.In(p.loc()).Date()
	by, bm, bd := b.In(p.loc()).Date()
	return ay == by && am == bm && ad == bd
}

func (p Policy) loc() *time.Location {
	if p.Location != nil {
		return p.Location
	}
	return time.UTC
}

// timeOfDay anchors an "HH:MM" or "HH:MM:SS" clock value onto a calendar day.
func (p Policy) timeOfDay(date time.Time, hm string) (time.Time, bool) {
	t, err := time.Parse("15:04:05", hm)
	if err != nil {
		t, err = time.Parse("15:04", hm)
		if err != nil {
			return time.Time{}, false
		}
	}

	d := date.In(p.loc())
	return time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), 0, 0, p.loc()), true
}
