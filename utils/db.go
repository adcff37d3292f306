package utils

import (
	"fmt"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/nwk-labs/network-backend/model"
)

// GetDBConnection connects to the postgres instance configured by DB_SOURCE,
// or by the discrete DB_* variables when DB_SOURCE is unset.
func GetDBConnection() (*gorm.DB, error) {
	dsn := os.Getenv("DB_SOURCE")
	if dsn == "" {
		dsn = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			getenvDefault("DB_HOST", "localhost"),
			getenvDefault("DB_USER", "postgres"),
			os.Getenv("DB_PASS"),
			getenvDefault("DB_NAME", "network"),
			getenvDefault("DB_PORT", "5432"),
		)
	}
	return gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
}

// DatabaseSetupAndMigration migrates all tables the service owns. Join
// relations migrate after their endpoints so foreign keys resolve.
func DatabaseSetupAndMigration(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Post{},
		&model.Follow{},
		&model.Like{},
	)
}

func getenvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
