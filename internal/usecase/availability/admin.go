package availability

import (
	"context"
	"time"

	"github.com/petarpopovic013-oss/barbershop/internal/domain/schedule"
	"github.com/petarpopovic013-oss/barbershop/internal/httperr"
	"github.com/petarpopovic013-oss/barbershop/internal/models"
)

// DefaultHoursMetadata is written onto unavailable rows; the values are
// metadata only, an unavailable day has no bookable hours.
const (
	DefaultHoursStart = "09:00:00"
	DefaultHoursEnd   = "17:00:00"
)

// ======================================================
// MARK UNAVAILABLE
// ======================================================

type MarkUnavailable struct {
	repo schedule.Repository
}

func NewMarkUnavailable(repo schedule.Repository) *MarkUnavailable {
	return &MarkUnavailable{repo: repo}
}

// Execute upserts one unavailable row per date. Idempotent: the
// (barber_id, date) pair is the uniqueness key, re-marking a date updates
// the existing row instead of inserting a second one.
func (uc *MarkUnavailable) Execute(
	ctx context.Context,
	barberID int64,
	dates []string,
	hoursStart string,
	hoursEnd string,
) error {

	if err := validateDates(dates); err != nil {
		return err
	}

	if hoursStart == "" {
		hoursStart = DefaultHoursStart
	}
	if hoursEnd == "" {
		hoursEnd = DefaultHoursEnd
	}

	for _, date := range dates {
		row := &models.BarberAvailability{
			BarberID:          barberID,
			Date:              models.DateOnly(date),
			IsAvailable:       false,
			WorkingHoursStart: hoursStart,
			WorkingHoursEnd:   hoursEnd,
		}
		if err := uc.repo.UpsertUnavailable(ctx, row); err != nil {
			return err
		}
	}
	return nil
}

// ======================================================
// MARK AVAILABLE
// ======================================================

type MarkAvailable struct {
	repo schedule.Repository
}

func NewMarkAvailable(repo schedule.Repository) *MarkAvailable {
	return &MarkAvailable{repo: repo}
}

// Execute deletes the override rows for the dates: default-available is
// represented by row absence, never by an explicit available row.
func (uc *MarkAvailable) Execute(
	ctx context.Context,
	barberID int64,
	dates []string,
) error {

	if err := validateDates(dates); err != nil {
		return err
	}

	out := make([]models.DateOnly, 0, len(dates))
	for _, d := range dates {
		out = append(out, models.DateOnly(d))
	}
	return uc.repo.DeleteOverrides(ctx, barberID, out)
}

func validateDates(dates []string) error {
	if len(dates) == 0 {
		return httperr.ErrBusiness("no_dates")
	}
	for _, d := range dates {
		if _, err := time.Parse(models.DateLayout, d); err != nil {
			return httperr.ErrBusiness("invalid_date")
		}
	}
	return nil
}
