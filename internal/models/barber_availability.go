package models

import "time"

// BarberAvailability is a per-date exception to the default schedule. Absence
// of a row for a (barber, date) pair means "available, default hours"; the
// admin flow never writes an explicit available row.
type BarberAvailability struct {
	ID int64 `gorm:"primaryKey" json:"id"`

	BarberID int64    `gorm:"column:barber_id;uniqueIndex:idx_barber_date" json:"barber_id"`
	Date     DateOnly `gorm:"column:date;type:date;uniqueIndex:idx_barber_date" json:"date"`

	IsAvailable bool `gorm:"column:is_available" json:"is_available"`

	WorkingHoursStart string `gorm:"column:working_hours_start;size:8" json:"working_hours_start"`
	WorkingHoursEnd   string `gorm:"column:working_hours_end;size:8" json:"working_hours_end"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (BarberAvailability) TableName() string { return "barber_availability" }
