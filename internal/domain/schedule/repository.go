package schedule

import (
	"context"
	"time"

	"github.com/petarpopovic013-oss/barbershop/internal/models"
)

// Repository is the storage contract the scheduling use cases run against.
type Repository interface {
	// -------- Barbers / Services --------
	GetBarber(
		ctx context.Context,
		id int64,
	) (*models.Barber, error)

	ListActiveServices(
		ctx context.Context,
	) ([]models.Service, error)

	GetServices(
		ctx context.Context,
		ids []int64,
	) ([]models.Service, error)

	// -------- Availability overrides --------
	// GetOverride returns (nil, nil) when no row exists for the date:
	// absence means available with default hours.
	GetOverride(
		ctx context.Context,
		barberID int64,
		date models.DateOnly,
	) (*models.BarberAvailability, error)

	ListOverrides(
		ctx context.Context,
		barberID int64,
		startDate models.DateOnly,
		endDate models.DateOnly,
	) ([]models.BarberAvailability, error)

	UpsertUnavailable(
		ctx context.Context,
		row *models.BarberAvailability,
	) error

	DeleteOverrides(
		ctx context.Context,
		barberID int64,
		dates []models.DateOnly,
	) error

	// -------- Reservations --------
	ListReservationsBetween(
		ctx context.Context,
		barberID int64,
		from time.Time,
		to time.Time,
	) ([]models.Reservation, error)

	CreateReservation(
		ctx context.Context,
		r *models.Reservation,
	) error

	// -------- Customers --------
	FindCustomerByPhone(
		ctx context.Context,
		phone int64,
	) (*models.Customer, error)

	CreateCustomer(
		ctx context.Context,
		customer *models.Customer,
	) error
}
