package schedule

import "time"

// SlotsForDay computes the bookable slot start times for one calendar day,
// in chronological order.
//
// Slots are generated from the day window at SlotDuration steps; a slot is
// emitted only when its full duration fits before closing. A slot is dropped
// when its [start, start+duration) interval overlaps an existing reservation,
// and, on the current day, when it starts inside the minimum notice window
// now+LeadTime. Days in the past and days marked unavailable yield nothing.
func (p Policy) SlotsForDay(date time.Time, ov *Override, taken []Interval, now time.Time) []time.Time {
	if p.dateInPast(date, now) {
		return nil
	}

	window, ok := p.DayWindow(date, ov)
	if !ok {
		return nil
	}

	today := p.SameDay(date, now)
	earliest := now.Add(p.LeadTime)

	var slots []time.Time
	for cur := window.Start; !cur.Add(p.SlotDuration).After(window.End); cur = cur.Add(p.SlotDuration) {
		if today && cur.Before(earliest) {
			continue
		}

		slot := Interval{Start: cur, End: cur.Add(p.SlotDuration)}
		conflict := false
		for _, iv := range taken {
			if slot.Overlaps(iv) {
				conflict = true
				break
			}
		}
		if conflict {
			continue
		}

		slots = append(slots, cur)
	}

	return slots
}

// DayOfferable reports whether the day should be shown as selectable: it is
// offerable only when at least one slot survives filtering.
func (p Policy) DayOfferable(date time.Time, ov *Override, taken []Interval, now time.Time) bool {
	return len(p.SlotsForDay(date, ov, taken, now)) > 0
}

func (p Policy) dateInPast(date, now time.Time) bool {
	d := date.In(p.loc())
	n := now.In(p.loc())
	dayD := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, p.loc())
	dayN := time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, p.loc())
	return dayD.Before(dayN)
}
