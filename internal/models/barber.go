package models

import "time"

// Barber rows are seeded in the hosted database; this service only reads them.
type Barber struct {
	ID     int64  `gorm:"primaryKey" json:"id"`
	Name   string `gorm:"size:100;not null" json:"name"`
	Active bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
}

func (Barber) TableName() string { return "Barbers" }
