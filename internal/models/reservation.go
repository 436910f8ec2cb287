package models

import (
	"time"

	"github.com/lib/pq"
)

// Reservation is insert-only: there is no reschedule or cancel flow, rows are
// removed out-of-band when staff clean up the schedule.
//
// ServiceID holds the first selected service for readers that predate
// multi-service bookings; ServiceIDs holds the full selection. Customer
// contact fields are denormalized at booking time so the reservation stays
// actionable even when CustomerID is nil.
type Reservation struct {
	ID int64 `gorm:"primaryKey" json:"id"`

	BarberID int64 `gorm:"column:barber_id;index" json:"barber_id"`

	ServiceID  *int64        `gorm:"column:service_id" json:"service_id"`
	ServiceIDs pq.Int64Array `gorm:"column:service_ids;type:bigint[]" json:"service_ids"`

	CustomerID    *int64  `gorm:"column:customer_id" json:"customer_id"`
	CustomerName  string  `gorm:"column:customer_name;size:100;not null" json:"customer_name"`
	CustomerPhone string  `gorm:"column:customer_phone;size:32;not null" json:"customer_phone"`
	CustomerEmail *string `gorm:"column:customer_email;size:100" json:"customer_email"`

	StartTime time.Time `gorm:"column:start_time;not null" json:"start_time"`
	EndTime   time.Time `gorm:"column:end_time;not null" json:"end_time"`

	Notes string `gorm:"size:255" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
}

func (Reservation) TableName() string { return "Reservations" }
