package reservation

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/petarpopovic013-oss/barbershop/internal/domain/schedule"
	"github.com/petarpopovic013-oss/barbershop/internal/httperr"
	"github.com/petarpopovic013-oss/barbershop/internal/infra/repository"
	"github.com/petarpopovic013-oss/barbershop/internal/models"
	"github.com/petarpopovic013-oss/barbershop/internal/notify"
)

// ======================================================
// Fake repository
// ======================================================

type fakeRepo struct {
	barbers   map[int64]models.Barber
	services  map[int64]models.Service
	overrides map[string]models.BarberAvailability // "barberID|date"

	reservations []models.Reservation
	customers    []models.Customer

	nextID int64

	customerCreateErr    error
	reservationCreateErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		barbers: map[int64]models.Barber{
			1: {ID: 1, Name: "Marko", Active: true},
			2: {ID: 2, Name: "Stefan", Active: true},
			9: {ID: 9, Name: "Retired", Active: false},
		},
		services: map[int64]models.Service{
			10: {ID: 10, ServiceName: "Haircut", PriceRSD: 1500, DurationMinutes: 30, Active: true},
			11: {ID: 11, ServiceName: "Beard trim", PriceRSD: 1000, DurationMinutes: 30, Active: true},
		},
		overrides: map[string]models.BarberAvailability{},
		nextID:    100,
	}
}

func ovKey(barberID int64, date models.DateOnly) string {
	return fmt.Sprintf("%d|%s", barberID, date)
}

func (f *fakeRepo) GetBarber(_ context.Context, id int64) (*models.Barber, error) {
	b, ok := f.barbers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &b, nil
}

func (f *fakeRepo) ListActiveServices(_ context.Context) ([]models.Service, error) {
	var out []models.Service
	for _, s := range f.services {
		if s.Active {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeRepo) GetServices(_ context.Context, ids []int64) ([]models.Service, error) {
	var out []models.Service
	seen := map[int64]bool{}
	for _, id := range ids {
		if s, ok := f.services[id]; ok && !seen[id] {
			out = append(out, s)
			seen[id] = true
		}
	}
	return out, nil
}

func (f *fakeRepo) GetOverride(_ context.Context, barberID int64, date models.DateOnly) (*models.BarberAvailability, error) {
	if row, ok := f.overrides[ovKey(barberID, date)]; ok {
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
	key := ovKey(row.BarberID, row.Date)
	if existing, ok := f.overrides[key]; ok {
		row.ID = existing.ID
	} else {
		f.nextID++
		row.ID = f.nextID
	}
	f.overrides[key] = *row
	return nil
}

func (f *fakeRepo) DeleteOverrides(_ context.Context, barberID int64, dates []models.DateOnly) error {
	for _, d := range dates {
		delete(f.overrides, ovKey(barberID, d))
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
	if f.reservationCreateErr != nil {
		return f.reservationCreateErr
	}
	f.nextID++
	r.ID = f.nextID
	f.reservations = append(f.reservations, *r)
	return nil
}

func (f *fakeRepo) FindCustomerByPhone(_ context.Context, phone int64) (*models.Customer, error) {
	for _, c := range f.customers {
		if c.Phone == phone {
			found := c
			return &found, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) CreateCustomer(_ context.Context, c *models.Customer) error {
	if f.customerCreateErr != nil {
		return f.customerCreateErr
	}
	f.nextID++
	c.ID = f.nextID
	f.customers = append(f.customers, *c)
	return nil
}

// ======================================================
// Helpers
// ======================================================

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

func localTime(t *testing.T, p schedule.Policy, value string) time.Time {
	t.Helper()
	ts, err := time.ParseInLocation("2006-01-02 15:04", value, p.Location)
	require.NoError(t, err)
	return ts
}

func newCreateUC(t *testing.T, repo *fakeRepo, p schedule.Policy) *CreateReservation {
	t.Helper()
	uc := NewCreateReservation(repo, p, notify.NewDispatcher("", zerolog.Nop()), zerolog.Nop())
	return uc.WithClock(func() time.Time {
		return localTime(t, p, "2025-06-01 12:00")
	})
}

func validInput(t *testing.T, p schedule.Policy) CreateInput {
	t.Helper()
	return CreateInput{
		BarberID:      1,
		ServiceIDs:    []int64{10},
		CustomerName:  "Petar Petrovic",
		CustomerPhone: "064 123-4567",
		CustomerEmail: "petar@example.com",
		StartTime:     localTime(t, p, "2025-06-10 09:00"),
		EndTime:       localTime(t, p, "2025-06-10 09:30"),
	}
}

// ======================================================
// Tests
// ======================================================

func TestCreateReservationSuccess(t *testing.T) {
	p := testPolicy(t)
	repo := newFakeRepo()
	uc := newCreateUC(t, repo, p)

	out, err := uc.Execute(context.Background(), validInput(t, p))
	require.NoError(t, err)

	assert.NotZero(t, out.ReservationID)
	require.NotNil(t, out.CustomerID)
	assert.Empty(t, out.Warning)

	require.Len(t, repo.reservations, 1)
	res := repo.reservations[0]
	require.NotNil(t, res.ServiceID)
	assert.Equal(t, int64(10), *res.ServiceID)
	assert.Equal(t, []int64{10}, []int64(res.ServiceIDs))
	assert.Equal(t, "Petar Petrovic", res.CustomerName)

	require.Len(t, repo.customers, 1)
	assert.Equal(t, int64(641234567), repo.customers[0].Phone)
}

func TestCreateReservationMultipleServices(t *testing.T) {
	p := testPolicy(t)
	repo := newFakeRepo()
	uc := newCreateUC(t, repo, p)

	in := validInput(t, p)
	in.ServiceIDs = []int64{10, 11}
	in.EndTime = localTime(t, p, "2025-06-10 10:00")

	_, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)

	res := repo.reservations[0]
	assert.Equal(t, int64(10), *res.ServiceID, "legacy scalar holds the first service")
	assert.Equal(t, []int64{10, 11}, []int64(res.ServiceIDs))
}

func TestCreateReservationUnavailableDay(t *testing.T) {
	p := testPolicy(t)
	repo := newFakeRepo()
	repo.overrides[ovKey(1, "2025-06-10")] = models.BarberAvailability{
		BarberID: 1, Date: "2025-06-10", IsAvailable: false,
	}
	uc := newCreateUC(t, repo, p)

	_, err := uc.Execute(context.Background(), validInput(t, p))
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, schedule.CodeDayUnavailable))
	assert.Empty(t, repo.reservations, "no side effects on rejection")
	assert.Empty(t, repo.customers)
}

func TestCreateReservationOverlapRejected(t *testing.T) {
	p := testPolicy(t)
	repo := newFakeRepo()
	uc := newCreateUC(t, repo, p)

	_, err := uc.Execute(context.Background(), validInput(t, p))
	require.NoError(t, err)

	// Same slot again.
	_, err = uc.Execute(context.Background(), validInput(t, p))
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, schedule.CodeSlotTaken))
	assert.Len(t, repo.reservations, 1)
}

func TestCreateReservationAdjacentAccepted(t *testing.T) {
	p := testPolicy(t)
	repo := newFakeRepo()
	uc := newCreateUC(t, repo, p)

	_, err := uc.Execute(context.Background(), validInput(t, p))
	require.NoError(t, err)

	in := validInput(t, p)
	in.StartTime = localTime(t, p, "2025-06-10 09:30")
	in.EndTime = localTime(t, p, "2025-06-10 10:00")

	_, err = uc.Execute(context.Background(), in)
	require.NoError(t, err, "back-to-back booking with no gap is allowed")
	assert.Len(t, repo.reservations, 2)
}

func TestCreateReservationLeadTime(t *testing.T) {
	p := testPolicy(t)
	repo := newFakeRepo()
	uc := NewCreateReservation(repo, p, notify.NewDispatcher("", zerolog.Nop()), zerolog.Nop()).
		WithClock(func() time.Time {
			return localTime(t, p, "2025-06-10 14:30")
		})

	in := validInput(t, p)
	in.StartTime = localTime(t, p, "2025-06-10 15:30")
	in.EndTime = localTime(t, p, "2025-06-10 16:00")

	_, err := uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, schedule.CodeTooSoon))

	in.StartTime = localTime(t, p, "2025-06-10 16:30")
	in.EndTime = localTime(t, p, "2025-06-10 17:00")

	_, err = uc.Execute(context.Background(), in)
	assert.NoError(t, err, "16:30 is exactly at now+lead and is accepted")
}

func TestCreateReservationCustomerDedup(t *testing.T) {
	p := testPolicy(t)
	repo := newFakeRepo()
	uc := newCreateUC(t, repo, p)

	first := validInput(t, p)
	out1, err := uc.Execute(context.Background(), first)
	require.NoError(t, err)

	second := validInput(t, p)
	second.CustomerName = "Pera Peric" // same phone, different name
	second.StartTime = localTime(t, p, "2025-06-10 10:00")
	second.EndTime = localTime(t, p, "2025-06-10 10:30")

	out2, err := uc.Execute(context.Background(), second)
	require.NoError(t, err)

	require.Len(t, repo.customers, 1, "same phone reuses the customer row")
	assert.Equal(t, *out1.CustomerID, *out2.CustomerID)

	require.Len(t, repo.reservations, 2)
	assert.Equal(t, "Petar Petrovic", repo.reservations[0].CustomerName)
	assert.Equal(t, "Pera Peric", repo.reservations[1].CustomerName,
		"each reservation keeps its own denormalized name")
}

func TestCreateReservationCustomerCreateFailureIsNonFatal(t *testing.T) {
	p := testPolicy(t)
	repo := newFakeRepo()
	repo.customerCreateErr = repository.ErrPermissionDenied
	uc := newCreateUC(t, repo, p)

	out, err := uc.Execute(context.Background(), validInput(t, p))
	require.NoError(t, err, "losing the customer link must not lose the booking")

	assert.Nil(t, out.CustomerID)
	assert.NotEmpty(t, out.Warning)

	require.Len(t, repo.reservations, 1)
	assert.Nil(t, repo.reservations[0].CustomerID)
	assert.Equal(t, "Petar Petrovic", repo.reservations[0].CustomerName)
}

func TestCreateReservationStoreRefusesOverlap(t *testing.T) {
	p := testPolicy(t)
	repo := newFakeRepo()
	repo.reservationCreateErr = repository.ErrOverlap
	uc := newCreateUC(t, repo, p)

	_, err := uc.Execute(context.Background(), validInput(t, p))
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, schedule.CodeSlotTaken),
		"exclusion-constraint violation maps to the slot conflict error")
}

func TestCreateReservationStoreFailure(t *testing.T) {
	p := testPolicy(t)
	repo := newFakeRepo()
	repo.reservationCreateErr = repository.ErrPermissionDenied
	uc := newCreateUC(t, repo, p)

	_, err := uc.Execute(context.Background(), validInput(t, p))
	require.ErrorIs(t, err, repository.ErrPermissionDenied)
}

func TestCreateReservationValidationFailures(t *testing.T) {
	p := testPolicy(t)

	tests := []struct {
		name   string
		mutate func(*CreateInput)
		code   string
	}{
		{
			name:   "unknown barber",
			mutate: func(in *CreateInput) { in.BarberID = 77 },
			code:   "barber_not_found",
		},
		{
			name:   "inactive barber",
			mutate: func(in *CreateInput) { in.BarberID = 9 },
			code:   "barber_not_found",
		},
		{
			name:   "unknown service",
			mutate: func(in *CreateInput) { in.ServiceIDs = []int64{10, 99} },
			code:   "service_not_found",
		},
		{
			name:   "no services",
			mutate: func(in *CreateInput) { in.ServiceIDs = nil },
			code:   "service_not_found",
		},
		{
			name:   "phone without digits",
			mutate: func(in *CreateInput) { in.CustomerPhone = "call me" },
			code:   "invalid_phone",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo := newFakeRepo()
			uc := newCreateUC(t, repo, p)

			in := validInput(t, p)
			tc.mutate(&in)

			_, err := uc.Execute(context.Background(), in)
			require.Error(t, err)
			assert.True(t, httperr.IsBusiness(err, tc.code), "want %s, got %v", tc.code, err)
			assert.Empty(t, repo.reservations)
		})
	}
}

func TestCreateReservationSlotFreedAfterAvailabilityRoundTrip(t *testing.T) {
	p := testPolicy(t)
	repo := newFakeRepo()
	uc := newCreateUC(t, repo, p)

	// Barber 2, 2025-06-11 marked unavailable: every attempt is rejected.
	repo.overrides[ovKey(2, "2025-06-11")] = models.BarberAvailability{
		BarberID: 2, Date: "2025-06-11", IsAvailable: false,
	}

	in := validInput(t, p)
	in.BarberID = 2
	in.StartTime = localTime(t, p, "2025-06-11 11:00")
	in.EndTime = localTime(t, p, "2025-06-11 11:30")

	_, err := uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, schedule.CodeDayUnavailable))

	// Admin reverts the date; the same booking now succeeds.
	require.NoError(t, repo.DeleteOverrides(context.Background(), 2, []models.DateOnly{"2025-06-11"}))

	_, err = uc.Execute(context.Background(), in)
	assert.NoError(t, err)
}
