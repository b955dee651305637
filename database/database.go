package database

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/vdtri/toeicmate/config"
	"github.com/vdtri/toeicmate/internal/model"
)

// NewDatabase opens the local SQLite file that backs both the entity
// collections and the settings blob store.
func NewDatabase(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s?_busy_timeout=5000&_journal_mode=WAL", cfg.Database.Path)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", cfg.Database.Path, err)
	}
	log.Info().Str("path", cfg.Database.Path).Msg("SQLite database opened")
	return db, nil
}

// schemaMigration records an applied migration so each one runs exactly once.
type schemaMigration struct {
	ID string `gorm:"primarykey"`
}

func (schemaMigration) TableName() string { return "schema_migrations" }

type migration struct {
	id  string
	run func(db *gorm.DB) error
}

// migrations is the ordered schema history. Each step must be idempotent:
// Migrate replays any step whose record is missing.
var migrations = []migration{
	{
		id: "001_base_collections",
		run: func(db *gorm.DB) error {
			return db.AutoMigrate(
				&model.User{},
				&model.Attempt{},
				&model.Question{},
				&model.Vocabulary{},
				&model.Setting{},
			)
		},
	},
	{
		id: "002_question_level_index",
		run: func(db *gorm.DB) error {
			m := db.Migrator()
			if m.HasIndex(&model.Question{}, "Level") {
				return nil
			}
			return m.CreateIndex(&model.Question{}, "Level")
		},
	},
}

// Migrate applies the ordered migration list, skipping steps already recorded.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&schemaMigration{}); err != nil {
		return fmt.Errorf("failed to prepare migration table: %w", err)
	}
	for _, mig := range migrations {
		var count int64
		if err := db.Model(&schemaMigration{}).Where("id = ?", mig.id).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check migration %s: %w", mig.id, err)
		}
		if count > 0 {
			continue
		}
		log.Info().Str("migration", mig.id).Msg("Applying schema migration")
		if err := mig.run(db); err != nil {
			return fmt.Errorf("migration %s failed: %w", mig.id, err)
		}
		if err := db.Create(&schemaMigration{ID: mig.id}).Error; err != nil {
			return fmt.Errorf("failed to record migration %s: %w", mig.id, err)
		}
	}
	return nil
}
