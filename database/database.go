package database

import (
	"fmt"

	"thakirni-app/internal/domain/billing"
	"thakirni-app/internal/domain/plans"
	"thakirni-app/internal/domain/users"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect opens the Postgres connection and migrates the domain models.
// The handle is returned to the caller and injected into every handler;
// there is no package-level DB singleton.
func Connect(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("database: empty DSN")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("database: connect: %w", err)
	}

	// Required for gen_random_uuid defaults on the plan records
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto;`).Error; err != nil {
		return nil, fmt.Errorf("database: enable pgcrypto: %w", err)
	}

	if err := db.AutoMigrate(
		&users.User{},
		&plans.Plan{},
		&billing.Payment{},
	); err != nil {
		return nil, fmt.Errorf("database: automigrate: %w", err)
	}

	return db, nil
}
