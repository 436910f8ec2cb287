package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/petarpopovic013-oss/barbershop/internal/models"
)

// Sentinel errors mapped from Postgres error codes so use cases never see
// driver details.
var (
	// ErrOverlap surfaces the reservations_no_overlap exclusion constraint:
	// the store itself refused a double booking.
	ErrOverlap = errors.New("reservation overlaps an existing one")

	// ErrPermissionDenied surfaces a row-level-security rejection from the
	// restricted credential.
	ErrPermissionDenied = errors.New("permission denied by row level security")

	ErrDuplicate = errors.New("duplicate row")
)

type ScheduleGormRepository struct {
	db *gorm.DB
}

func NewScheduleGormRepository(db *gorm.DB) *ScheduleGormRepository {
	return &ScheduleGormRepository{db: db}
}

// --------------------------------------------------
// Barbers / Services
// --------------------------------------------------

func (r *ScheduleGormRepository) GetBarber(
	ctx context.Context,
	id int64,
) (*models.Barber, error) {

	var barber models.Barber
	if err := r.db.WithContext(ctx).First(&barber, id).Error; err != nil {
		return nil, err
	}
	return &barber, nil
}

func (r *ScheduleGormRepository) ListActiveServices(
	ctx context.Context,
) ([]models.Service, error) {

	var services []models.Service
	if err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("service_name ASC").
		Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

func (r *ScheduleGormRepository) GetServices(
	ctx context.Context,
	ids []int64,
) ([]models.Service, error) {

	var services []models.Service
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

// --------------------------------------------------
// Availability overrides
// --------------------------------------------------

func (r *ScheduleGormRepository) GetOverride(
	ctx context.Context,
	barberID int64,
	date models.DateOnly,
) (*models.BarberAvailability, error) {

	var row models.BarberAvailability
	err := r.db.WithContext(ctx).
		Where("barber_id = ? AND date = ?", barberID, date).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *ScheduleGormRepository) ListOverrides(
	ctx context.Context,
	barberID int64,
	startDate models.DateOnly,
	endDate models.DateOnly,
) ([]models.BarberAvailability, error) {

	var rows []models.BarberAvailability
	if err := r.db.WithContext(ctx).
		Where("barber_id = ? AND date >= ? AND date <= ?", barberID, startDate, endDate).
		Order("date ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// UpsertUnavailable writes one override row keyed on (barber_id, date);
// marking the same date twice updates the existing row in place.
func (r *ScheduleGormRepository) UpsertUnavailable(
	ctx context.Context,
	row *models.BarberAvailability,
) error {

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "barber_id"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"is_available",
				"working_hours_start",
				"working_hours_end",
				"updated_at",
			}),
		}).
		Create(row).Error

	return mapPgError(err)
}

func (r *ScheduleGormRepository) DeleteOverrides(
	ctx context.Context,
	barberID int64,
	dates []models.DateOnly,
) error {

	err := r.db.WithContext(ctx).
		Where("barber_id = ? AND date IN ?", barberID, dates).
		Delete(&models.BarberAvailability{}).Error

	return mapPgError(err)
}

// --------------------------------------------------
// Reservations
// --------------------------------------------------

func (r *ScheduleGormRepository) ListReservationsBetween(
	ctx context.Context,
	barberID int64,
	from time.Time,
	to time.Time,
) ([]models.Reservation, error) {

	var rows []models.Reservation
	if err := r.db.WithContext(ctx).
		Where("barber_id = ? AND start_time >= ? AND start_time < ?", barberID, from, to).
		Order("start_time ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ScheduleGormRepository) CreateReservation(
	ctx context.Context,
	res *models.Reservation,
) error {
	return mapPgError(r.db.WithContext(ctx).Create(res).Error)
}

// --------------------------------------------------
// Customers
// --------------------------------------------------

func (r *ScheduleGormRepository) FindCustomerByPhone(
	ctx context.Context,
	phone int64,
) (*models.Customer, error) {

	var customer models.Customer
	err := r.db.WithContext(ctx).
		Where("phone = ?", phone).
		First(&customer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *ScheduleGormRepository) CreateCustomer(
	ctx context.Context,
	customer *models.Customer,
) error {
	return mapPgError(r.db.WithContext(ctx).Create(customer).Error)
}

// --------------------------------------------------
// Error mapping
// --------------------------------------------------

func mapPgError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23P01": // exclusion_violation
			return ErrOverlap
		case "42501": // insufficient_privilege (RLS)
			return ErrPermissionDenied
		case "23505": // unique_violation
			return ErrDuplicate
		}
	}
	return err
}
