package migration

import (
	"fmt"

	"github.com/pharmalitics/backend/internal/domain/ledger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Migrator applies the database schema derived from the domain models.
type Migrator struct {
	db     *gorm.DB
	logger *zap.Logger
}

// New creates a new Migrator instance
func New(db *gorm.DB, logger *zap.Logger) *Migrator {
	return &Migrator{db: db, logger: logger}
}

// models lists every persisted aggregate, in dependency order
func models() []any {
	return []any{
		&ledger.Product{},
		&ledger.Pharmacy{},
		&ledger.Sale{},
	}
}

// Up creates or alters tables to match the current domain models.
// Columns are never dropped.
func (m *Migrator) Up() error {
	m.logger.Info("Running schema migration")
	if err := m.db.AutoMigrate(models()...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	m.logger.Info("Schema migration complete")
	return nil
}

// Drop removes all managed tables. Intended for tests and local resets.
func (m *Migrator) Drop() error {
	m.logger.Warn("Dropping all managed tables")
	migrator := m.db.Migrator()
	all := models()
	for i := len(all) - 1; i >= 0; i-- {
		if err := migrator.DropTable(all[i]); err != nil {
			return fmt.Errorf("failed to drop table: %w", err)
		}
	}
	return nil
}
