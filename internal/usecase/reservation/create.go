package reservation

import (
	"context"
	"errors"
	"time"

	"github.com/lib/pq"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/petarpopovic013-oss/barbershop/internal/domain/schedule"
	"github.com/petarpopovic013-oss/barbershop/internal/httperr"
	"github.com/petarpopovic013-oss/barbershop/internal/infra/repository"
	"github.com/petarpopovic013-oss/barbershop/internal/metrics"
	"github.com/petarpopovic013-oss/barbershop/internal/models"
	"github.com/petarpopovic013-oss/barbershop/internal/notify"
	"github.com/petarpopovic013-oss/barbershop/internal/validators"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type CreateInput struct {
	BarberID   int64
	ServiceIDs []int64

	CustomerName  string
	CustomerPhone string
	CustomerEmail string

	StartTime time.Time
	EndTime   time.Time

	Notes string

	// Optional client-supplied local strings, used only to format the
	// outbound notification; the shop-local derivation is the fallback.
	LocalDate string
	LocalTime string
}

type CreateOutput struct {
	ReservationID int64
	CustomerID    *int64

	// Warning is set when the customer record could not be created; the
	// booking itself still succeeded.
	Warning string
}

// ======================================================
// USE CASE
// ======================================================

type CreateReservation struct {
	repo     schedule.Repository
	policy   schedule.Policy
	notifier *notify.Dispatcher
	log      zerolog.Logger

	now func() time.Time
}

func NewCreateReservation(
	repo schedule.Repository,
	policy schedule.Policy,
	notifier *notify.Dispatcher,
	log zerolog.Logger,
) *CreateReservation {
	return &CreateReservation{
		repo:     repo,
		policy:   policy,
		notifier: notifier,
		log:      log,
		now:      time.Now,
	}
}

// WithClock replaces the time source. Tests only.
func (uc *CreateReservation) WithClock(now func() time.Time) *CreateReservation {
	uc.now = now
	return uc
}

func (uc *CreateReservation) Execute(
	ctx context.Context,
	in CreateInput,
) (*CreateOutput, error) {

	// --------------------------------------------------
	// 1. Barber
	// --------------------------------------------------
	barber, err := uc.repo.GetBarber(ctx, in.BarberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("barber_not_found")
		}
		return nil, err
	}
	if !barber.Active {
		return nil, httperr.ErrBusiness("barber_not_found")
	}

	// --------------------------------------------------
	// 2. Services and total price
	// --------------------------------------------------
	if len(in.ServiceIDs) == 0 {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	services, err := uc.repo.GetServices(ctx, in.ServiceIDs)
	if err != nil {
		return nil, err
	}
	if len(services) != len(uniqueIDs(in.ServiceIDs)) {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	var (
		serviceNames []string
		totalPrice   int64
	)
	for _, s := range services {
		serviceNames = append(serviceNames, s.ServiceName)
		totalPrice += s.PriceRSD
	}

	// --------------------------------------------------
	// 3. Availability re-check, authoritative
	// --------------------------------------------------
	now := uc.now()
	localDate := in.StartTime.In(uc.policy.Location).Format(models.DateLayout)

	ovRow, err := uc.repo.GetOverride(ctx, in.BarberID, models.DateOnly(localDate))
	if err != nil {
		return nil, err
	}
	var ov *schedule.Override
	if ovRow != nil {
		ov = &schedule.Override{
			IsAvailable: ovRow.IsAvailable,
			HoursStart:  ovRow.WorkingHoursStart,
			HoursEnd:    ovRow.WorkingHoursEnd,
		}
	}

	bounds, err := uc.policy.DayBounds(localDate)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	existingRows, err := uc.repo.ListReservationsBetween(ctx, in.BarberID, bounds.Start, bounds.End)
	if err != nil {
		return nil, err
	}
	existing := make([]schedule.Interval, 0, len(existingRows))
	for _, row := range existingRows {
		existing = append(existing, schedule.Interval{Start: row.StartTime, End: row.EndTime})
	}

	if err := uc.policy.CheckBooking(in.StartTime, in.EndTime, ov, existing, now); err != nil {
		if code, ok := httperr.BusinessCode(err); ok {
			metrics.IncBookingRejection(code)
		}
		return nil, err
	}

	// --------------------------------------------------
	// 4. Customer: dedup by phone, degrade on failure
	// --------------------------------------------------
	phone, err := validators.NormalizePhone(in.CustomerPhone)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_phone")
	}

	customerID, warning := uc.resolveCustomer(ctx, phone, in)

	// --------------------------------------------------
	// 5. Insert the reservation
	// --------------------------------------------------
	res := &models.Reservation{
		BarberID:      in.BarberID,
		ServiceID:     &in.ServiceIDs[0],
		ServiceIDs:    pq.Int64Array(in.ServiceIDs),
		CustomerID:    customerID,
		CustomerName:  in.CustomerName,
		CustomerPhone: in.CustomerPhone,
		CustomerEmail: optional(in.CustomerEmail),
		StartTime:     in.StartTime,
		EndTime:       in.EndTime,
		Notes:         in.Notes,
	}

	if err := uc.repo.CreateReservation(ctx, res); err != nil {
		if errors.Is(err, repository.ErrOverlap) {
			// Lost the race: another booking landed between the check
			// and the insert, and the store refused ours.
			metrics.IncBookingRejection(schedule.CodeSlotTaken)
			return nil, httperr.ErrBusiness(schedule.CodeSlotTaken)
		}
		return nil, err
	}

	metrics.IncReservationCreated()

	// --------------------------------------------------
	// 6. Best-effort notification
	// --------------------------------------------------
	date, timeOfDay := in.LocalDate, in.LocalTime
	if date == "" {
		date = localDate
	}
	if timeOfDay == "" {
		timeOfDay = in.StartTime.In(uc.policy.Location).Format("15:04")
	}

	uc.notifier.Dispatch(notify.Event{
		ReservationID: res.ID,
		BarberName:    barber.Name,
		ServiceNames:  serviceNames,
		TotalPriceRSD: totalPrice,
		CustomerName:  in.CustomerName,
		CustomerPhone: in.CustomerPhone,
		CustomerEmail: in.CustomerEmail,
		Date:          date,
		Time:          timeOfDay,
		Notes:         in.Notes,
	})

	return &CreateOutput{
		ReservationID: res.ID,
		CustomerID:    customerID,
		Warning:       warning,
	}, nil
}

// resolveCustomer reuses the customer row matching the phone number or
// creates one. Failure here never fails the booking: the denormalized
// contact fields on the reservation are the source of truth either way.
func (uc *CreateReservation) resolveCustomer(
	ctx context.Context,
	phone int64,
	in CreateInput,
) (*int64, string) {

	const warning = "reservation saved without a customer record link"

	existing, err := uc.repo.FindCustomerByPhone(ctx, phone)
	if err != nil {
		uc.log.Warn().Err(err).Int64("phone", phone).Msg("customer lookup failed")
		return nil, warning
	}
	if existing != nil {
		return &existing.ID, ""
	}

	customer := &models.Customer{
		Name:  in.CustomerName,
		Phone: phone,
		Email: optional(in.CustomerEmail),
	}
	if err := uc.repo.CreateCustomer(ctx, customer); err != nil {
		uc.log.Warn().Err(err).Int64("phone", phone).Msg("customer creation failed")
		return nil, warning
	}
	return &customer.ID, ""
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
