package migrations

import (
	"errors"
	"fmt"
	"time"

	"github.com/Sonder9999/Daily-Web/internal/domain/event"
	"github.com/Sonder9999/Daily-Web/internal/domain/template"
	"github.com/Sonder9999/Daily-Web/internal/domain/transfer"
	"github.com/Sonder9999/Daily-Web/internal/infrastructure/persistence/postgres/connection"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MigrationRecord tracks the migration history
type MigrationRecord struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"not null;unique"`
	Version   int       `gorm:"not null"`
	AppliedAt time.Time `gorm:"not null"`
}

func (MigrationRecord) TableName() string {
	return "schema_migrations"
}

// Models lists every persisted model in migration order.
func Models() []interface{} {
	return []interface{}{
		&event.Event{},
		&template.EventTemplate{},
		&transfer.ImportRecord{},
	}
}

// AutoMigrate runs database migrations for all models inside one
// transaction and records each model the first time it is migrated.
func AutoMigrate(db *connection.Database, logger *zap.Logger) error {
	logger.Info("Starting automatic database migration...")

	if err := db.AutoMigrate(&MigrationRecord{}); err != nil {
		logger.Error("Failed to create migrations table", zap.Error(err))
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var lastVersion int
		if err := tx.Model(&MigrationRecord{}).Select("COALESCE(MAX(version), 0)").Scan(&lastVersion).Error; err != nil {
			return fmt.Errorf("failed to get last version: %w", err)
		}

		next := lastVersion
		for _, model := range Models() {
			modelName := fmt.Sprintf("%T", model)

			var record MigrationRecord
			err := tx.Where("name = ?", modelName).First(&record).Error
			isNewMigration := errors.Is(err, gorm.ErrRecordNotFound)
			if err != nil && !isNewMigration {
				return fmt.Errorf("failed to read migration record for %s: %w", modelName, err)
			}

			if err := tx.AutoMigrate(model); err != nil {
				logger.Error("Failed to migrate model",
					zap.String("model", modelName),
					zap.Error(err),
				)
				return fmt.Errorf("failed to migrate %s: %w", modelName, err)
			}

			if !isNewMigration {
				continue
			}

			next++
			record = MigrationRecord{
				Name:      modelName,
				Version:   next,
				AppliedAt: time.Now(),
			}
			if err := tx.Create(&record).Error; err != nil {
				logger.Error("Failed to record migration",
					zap.String("model", modelName),
					zap.Error(err),
				)
				return fmt.Errorf("failed to record migration for %s: %w", modelName, err)
			}
			logger.Info("Applied new migration",
				zap.String("model", modelName),
				zap.Int("version", record.Version),
			)
		}

		logger.Info("Database migration completed successfully")
		return nil
	})
}

// GetMigrationHistory returns the history of applied migrations
func GetMigrationHistory(db *connection.Database) ([]MigrationRecord, error) {
	var records []MigrationRecord
	err := db.Order("version ASC").Find(&records).Error
	return records, err
}
