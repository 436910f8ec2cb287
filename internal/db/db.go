package db

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/petarpopovic013-oss/barbershop/internal/config"
	"github.com/petarpopovic013-oss/barbershop/internal/models"
)

// NewDB opens the single handle to the hosted Postgres store. No retry
// logic: a missing or unusable credential is a startup concern.
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	url, err := cfg.DatabaseURL()
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(postgres.Open(url), &gorm.Config{
		PrepareStmt: true,
		Logger:      logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.Barber{},
		&models.Service{},
		&models.Customer{},
		&models.Reservation{},
		&models.BarberAvailability{},
	); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	// The overlap check in the write path is only the fast path; this
	// constraint is what actually prevents two concurrent bookings from
	// both landing on the same barber and time.
	db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`)
	db.Exec(`
        DO $$ BEGIN
            IF NOT EXISTS (
                SELECT 1 FROM pg_constraint WHERE conname = 'reservations_no_overlap'
            ) THEN
                ALTER TABLE "Reservations"
                    ADD CONSTRAINT reservations_no_overlap
                    EXCLUDE USING gist (
                        barber_id WITH =,
                        tstzrange(start_time, end_time) WITH &&
                    );
            END IF;
        END $$
    `)

	return db, nil
}
