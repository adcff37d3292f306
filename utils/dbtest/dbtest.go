// Package dbtest opens throwaway databases for tests. It lives apart from
// utils so the sqlite driver is linked into test binaries only, never into
// the server binary.
package dbtest

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/nwk-labs/network-backend/utils"
)

// NewDB opens an in-memory sqlite database, fully migrated. Each call gets
// its own uniquely named shared-cache database so gorm's connection pool sees
// one store while parallel tests stay isolated.
func NewDB() (*gorm.DB, error) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}
	if err := utils.DatabaseSetupAndMigration(db); err != nil {
		return nil, err
	}
	return db, nil
}
