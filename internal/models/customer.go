package models

import "time"

// Customer is deduplicated by phone: a repeat booking with the same number
// reuses the existing row instead of creating another one.
type Customer struct {
	ID    int64   `gorm:"primaryKey" json:"id"`
	Name  string  `gorm:"size:100;not null" json:"name"`
	Phone int64   `gorm:"uniqueIndex" json:"phone"`
	Email *string `gorm:"size:100" json:"email"`

	CreatedAt time.Time `json:"created_at"`
}

func (Customer) TableName() string { return "Customer" }
