package database

import (
	"fmt"
	"strings"

	sqlite "github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"cropmaster/entities"
)

const MemoryPath = ":memory:"

// trimNIC strips the same whitespace strings.TrimSpace does for ASCII input.
const trimNIC = "TRIM(nic, ' ' || char(9) || char(10) || char(11) || char(12) || char(13))"

// readers don't block the writer, and writers wait for the lock instead of failing with SQLITE_BUSY
const filePragmas = "_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"

// Open connects to the sqlite file at path and brings the schema up to date.
func Open(path string, log *zap.Logger) (*gorm.DB, error) {
	dsn := path
	if path != MemoryPath && !strings.Contains(path, "?") {
		dsn = path + "?" + filePragmas
	}
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: newGormLogger(log),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if path == MemoryPath {
		// every pooled connection would otherwise see its own empty database
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("sql db: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	// blank NICs must be cleared before the index is rebuilt by AutoMigrate
	if err := normalizeBlankNICs(db, log); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	if err := db.AutoMigrate(&entities.Farmland{}); err != nil {
		return nil, fmt.Errorf("automigrate: %w", err)
	}
	return db, nil
}

// normalizeBlankNICs rewrites legacy rows that stored an empty NIC instead of
// NULL, and strips surrounding whitespace from the rest.
func normalizeBlankNICs(db *gorm.DB, log *zap.Logger) error {
	var tbl string
	if err := db.Raw(`SELECT name FROM sqlite_master WHERE type='table' AND name='farmlands'`).Scan(&tbl).Error; err != nil {
		return fmt.Errorf("check table exist: %w", err)
	}
	if tbl == "" {
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		res := tx.Exec(`UPDATE farmlands SET nic = NULL WHERE nic IS NOT NULL AND ` + trimNIC + ` = ''`)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 && log != nil {
			log.Info("cleared blank nic values", zap.Int64("rows", res.RowsAffected))
		}

		// queries compare against a trimmed nic, so padded values would never match
		res = tx.Exec(`UPDATE farmlands SET nic = ` + trimNIC + ` WHERE nic IS NOT NULL AND nic <> ` + trimNIC)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 && log != nil {
			log.Info("trimmed padded nic values", zap.Int64("rows", res.RowsAffected))
		}
		return nil
	})
}
