package models

import "time"

type Service struct {
	ID              int64  `gorm:"primaryKey" json:"id"`
	ServiceName     string `gorm:"column:service_name;size:100;not null" json:"service_name"`
	PriceRSD        int64  `gorm:"column:price_rsd" json:"price_rsd"`
	DurationMinutes int    `gorm:"column:duration_minutes;default:30" json:"duration_minutes"`
	Active          bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
}

func (Service) TableName() string { return "Services" }
