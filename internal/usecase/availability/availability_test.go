package availability

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/petarpopovic013-oss/barbershop/internal/domain/schedule"
	"github.com/petarpopovic013-oss/barbershop/internal/httperr"
	"github.com/petarpopovic013-oss/barbershop/internal/models"
)

// ======================================================
// Fake repository (availability slice of the contract)
// ======================================================

type fakeRepo struct {
	overrides    map[string]models.BarberAvailability
	reservations []models.Reservation
	nextID       int64
	upserts      int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{overrides: map[string]models.BarberAvailability{}}
}

func key(barberID int64, date models.DateOnly) string {
	return fmt.Sprintf("%d|%s", barberID, date)
}

func (f *fakeRepo) GetBarber(context.Context, int64) (*models.Barber, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) ListActiveServices(context.Context) ([]models.Service, error) { return nil, nil }

func (f *fakeRepo) GetServices(context.Context, []int64) ([]models.Service, error) { return nil, nil }

func (f *fakeRepo) GetOverride(_ context.Context, barberID int64, date models.DateOnly) (*models.BarberAvailability, error) {
	if row, ok := f.overrides[key(barberID, date)]; ok {
		return &row, nil
	}
	return nil, nil
}

func (f *fakeRepo) ListOverrides(_ context.Context, barberID int64, start, end models.DateOnly) ([]models.BarberAvailability, error) {
	var out []models.BarberAvailability
	for _, row := range f.overrides {
		if row.BarberID == barberID && row.Date >= start && row.Date <= end {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakeRepo) UpsertUnavailable(_ context.Context, row *models.BarberAvailability) error {
	f.upserts++
	k := key(row.BarberID, row.Date)
	if existing, ok := f.overrides[k]; ok {
		row.ID = existing.ID
	} else {
		f.nextID++
		row.ID = f.nextID
	}
	f.overrides[k] = *row
	return nil
}

func (f *fakeRepo) DeleteOverrides(_ context.Context, barberID int64, dates []models.DateOnly) error {
	for _, d := range dates {
		delete(f.overrides, key(barberID, d))
	}
	return nil
}

func (f *fakeRepo) ListReservationsBetween(_ context.Context, barberID int64, from, to time.Time) ([]models.Reservation, error) {
	var out []models.Reservation
	for _, r := range f.reservations {
		if r.BarberID == barberID && !r.StartTime.Before(from) && r.StartTime.Before(to) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRepo) CreateReservation(_ context.Context, r *models.Reservation) error {
	f.nextID++
	r.ID = f.nextID
	f.reservations = append(f.reservations, *r)
	return nil
}

func (f *fakeRepo) FindCustomerByPhone(context.Context, int64) (*models.Customer, error) {
	return nil, nil
}

func (f *fakeRepo) CreateCustomer(context.Context, *models.Customer) error { return nil }

func testPolicy(t *testing.T) schedule.Policy {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Belgrade")
	require.NoError(t, err)
	return schedule.Policy{
		SlotDuration: 30 * time.Minute,
		LeadTime:     2 * time.Hour,
		DayStart:     "09:00",
		DayEnd:       "17:00",
		Location:     loc,
	}
}

// ======================================================
// Admin path
// ======================================================

func TestMarkUnavailableIdempotent(t *testing.T) {
	repo := newFakeRepo()
	uc := NewMarkUnavailable(repo)
	ctx := context.Background()

	require.NoError(t, uc.Execute(ctx, 1, []string{"2025-06-10"}, "", ""))
	require.NoError(t, uc.Execute(ctx, 1, []string{"2025-06-10"}, "", ""))

	require.Len(t, repo.overrides, 1, "re-marking the same date must not add a row")
	row := repo.overrides[key(1, "2025-06-10")]
	assert.False(t, row.IsAvailable)
	assert.Equal(t, DefaultHoursStart, row.WorkingHoursStart)
	assert.Equal(t, DefaultHoursEnd, row.WorkingHoursEnd)
	assert.Equal(t, 2, repo.upserts)
}

func TestMarkUnavailableMultipleDates(t *testing.T) {
	repo := newFakeRepo()
	uc := NewMarkUnavailable(repo)

	dates := []string{"2025-06-10", "2025-06-11", "2025-06-12"}
	require.NoError(t, uc.Execute(context.Background(), 1, dates, "10:00:00", "16:00:00"))

	require.Len(t, repo.overrides, 3)
	assert.Equal(t, "10:00:00", repo.overrides[key(1, "2025-06-11")].WorkingHoursStart)
}

func TestMarkAvailableDeletesRows(t *testing.T) {
	repo := newFakeRepo()
	ctx := context.Background()

	require.NoError(t, NewMarkUnavailable(repo).Execute(ctx, 1, []string{"2025-06-10"}, "", ""))
	require.NoError(t, NewMarkAvailable(repo).Execute(ctx, 1, []string{"2025-06-10"}))

	assert.Empty(t, repo.overrides, "revert removes the row entirely, no residual available row")
}

func TestMarkValidation(t *testing.T) {
	repo := newFakeRepo()
	ctx := context.Background()

	err := NewMarkUnavailable(repo).Execute(ctx, 1, nil, "", "")
	assert.True(t, httperr.IsBusiness(err, "no_dates"))

	err = NewMarkUnavailable(repo).Execute(ctx, 1, []string{"10.06.2025"}, "", "")
	assert.True(t, httperr.IsBusiness(err, "invalid_date"))

	err = NewMarkAvailable(repo).Execute(ctx, 1, []string{"junk"})
	assert.True(t, httperr.IsBusiness(err, "invalid_date"))
}

// ======================================================
// Range overview
// ======================================================

func TestRangeOverviewComputesDays(t *testing.T) {
	p := testPolicy(t)
	repo := newFakeRepo()

	repo.overrides[key(1, "2025-06-11")] = models.BarberAvailability{
		BarberID: 1, Date: "2025-06-11", IsAvailable: false,
		WorkingHoursStart: "09:00:00", WorkingHoursEnd: "17:00:00",
	}

	booked, err := time.ParseInLocation("2006-01-02 15:04", "2025-06-10 09:00", p.Location)
	require.NoError(t, err)
	repo.reservations = append(repo.reservations, models.Reservation{
		ID: 1, BarberID: 1, StartTime: booked, EndTime: booked.Add(30 * time.Minute),
	})

	uc := NewRangeOverview(repo, p).WithClock(func() time.Time {
		now, _ := time.ParseInLocation("2006-01-02", "2025-06-01", p.Location)
		return now
	})

	out, err := uc.Execute(context.Background(), 1, "2025-06-10", "2025-06-12")
	require.NoError(t, err)

	require.Len(t, out.Days, 3)

	assert.Equal(t, "2025-06-10", out.Days[0].Date)
	assert.True(t, out.Days[0].Offerable)
	assert.Len(t, out.Days[0].Slots, 15, "booked 09:00 slot is gone")
	assert.NotContains(t, out.Days[0].Slots, "09:00")
	assert.Contains(t, out.Days[0].Slots, "09:30")

	assert.Equal(t, "2025-06-11", out.Days[1].Date)
	assert.False(t, out.Days[1].Offerable, "unavailable override yields zero slots")
	assert.Empty(t, out.Days[1].Slots)

	assert.True(t, out.Days[2].Offerable)
	assert.Len(t, out.Days[2].Slots, 16)

	require.Len(t, out.Overrides, 1)
	require.Len(t, out.Reservations, 1)
}

func TestRangeOverviewValidation(t *testing.T) {
	p := testPolicy(t)
	uc := NewRangeOverview(newFakeRepo(), p)

	_, err := uc.Execute(context.Background(), 1, "junk", "2025-06-12")
	assert.True(t, httperr.IsBusiness(err, "invalid_date"))

	_, err = uc.Execute(context.Background(), 1, "2025-06-12", "2025-06-10")
	assert.True(t, httperr.IsBusiness(err, "invalid_date_range"))

	_, err = uc.Execute(context.Background(), 1, "2025-01-01", "2026-01-01")
	assert.True(t, httperr.IsBusiness(err, "invalid_date_range"))
}
