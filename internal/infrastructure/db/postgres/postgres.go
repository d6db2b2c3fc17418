package postgres

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/shipsy/shipsy-api/internal/core/domain"
)

// Connect opens a GORM connection against Postgres and configures the
// underlying connection pool. TranslateError is enabled so unique-constraint
// violations surface as gorm.ErrDuplicatedKey regardless of driver.
func Connect(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("postgres open: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("postgres pool: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	return db, nil
}

// Migrate creates the enum types and the three tables with their indexes.
// The enum creation is guarded so re-running migration is harmless.
func Migrate(db *gorm.DB) error {
	enums := []string{
		`DO $$ BEGIN
			CREATE TYPE shipment_type AS ENUM ('LOCAL', 'NATIONAL', 'INTERNATIONAL');
		EXCEPTION WHEN duplicate_object THEN NULL; END $$;`,
		`DO $$ BEGIN
			CREATE TYPE shipment_mode AS ENUM ('LAND', 'AIR', 'WATER');
		EXCEPTION WHEN duplicate_object THEN NULL; END $$;`,
	}
	for _, stmt := range enums {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("create enum: %w", err)
		}
	}

	if err := db.AutoMigrate(&domain.User{}, &domain.Customer{}, &domain.Shipment{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
