package availability

import (
	"context"
	"time"

	"github.com/petarpopovic013-oss/barbershop/internal/domain/schedule"
	"github.com/petarpopovic013-oss/barbershop/internal/httperr"
	"github.com/petarpopovic013-oss/barbershop/internal/models"
)

// MaxRangeDays caps a single overview request; the booking widget asks for
// at most a week, the admin calendar for a month.
const MaxRangeDays = 92

type DaySlots struct {
	Date      string   `json:"date"`
	Offerable bool     `json:"offerable"`
	Slots     []string `json:"slots"`
}

type Overview struct {
	Overrides    []models.BarberAvailability
	Reservations []models.Reservation
	Days         []DaySlots
}

// RangeOverview serves the booking widget: raw override rows and reservation
// intervals for client display, plus the computed per-day slot lists so the
// UI never re-implements the engine.
type RangeOverview struct {
	repo   schedule.Repository
	policy schedule.Policy

	now func() time.Time
}

func NewRangeOverview(repo schedule.Repository, policy schedule.Policy) *RangeOverview {
	return &RangeOverview{repo: repo, policy: policy, now: time.Now}
}

// WithClock replaces the time source. Tests only.
func (uc *RangeOverview) WithClock(now func() time.Time) *RangeOverview {
	uc.now = now
	return uc
}

func (uc *RangeOverview) Execute(
	ctx context.Context,
	barberID int64,
	startDate string,
	endDate string,
) (*Overview, error) {

	first, err := uc.policy.DayBounds(startDate)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}
	last, err := uc.policy.DayBounds(endDate)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}
	if last.Start.Before(first.Start) || last.Start.Sub(first.Start) > MaxRangeDays*24*time.Hour {
		return nil, httperr.ErrBusiness("invalid_date_range")
	}

	overrides, err := uc.repo.ListOverrides(
		ctx,
		barberID,
		models.DateOnly(startDate),
		models.DateOnly(endDate),
	)
	if err != nil {
		return nil, err
	}

	reservations, err := uc.repo.ListReservationsBetween(ctx, barberID, first.Start, last.End)
	if err != nil {
		return nil, err
	}

	ovByDate := make(map[string]*schedule.Override, len(overrides))
	for i := range overrides {
		row := overrides[i]
		ovByDate[row.Date.String()] = &schedule.Override{
			IsAvailable: row.IsAvailable,
			HoursStart:  row.WorkingHoursStart,
			HoursEnd:    row.WorkingHoursEnd,
		}
	}

	now := uc.now()
	var days []DaySlots

	for cur := first.Start; cur.Before(last.End); cur = cur.AddDate(0, 0, 1) {
		date := cur.Format(models.DateLayout)

		var taken []schedule.Interval
		dayEnd := cur.AddDate(0, 0, 1)
		for _, r := range reservations {
			if r.StartTime.Before(dayEnd) && r.EndTime.After(cur) {
				taken = append(taken, schedule.Interval{Start: r.StartTime, End: r.EndTime})
			}
		}

		slots := uc.policy.SlotsForDay(cur, ovByDate[date], taken, now)
		formatted := make([]string, 0, len(slots))
		for _, s := range slots {
			formatted = append(formatted, s.In(uc.policy.Location).Format("15:04"))
		}

		days = append(days, DaySlots{
			Date:      date,
			Offerable: len(formatted) > 0,
			Slots:     formatted,
		})
	}

	return &Overview{
		Overrides:    overrides,
		Reservations: reservations,
		Days:         days,
	}, nil
}
