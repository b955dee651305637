package repository

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vdtri/toeicmate/internal/apperr"
	"github.com/vdtri/toeicmate/internal/model"
)

// SettingRepository is the key-value blob store behind the session/settings
// state. It is a separate logical store from the entity collections and has
// no live-query subscribers; the session store's in-memory state is
// authoritative for the running process.
type SettingRepository interface {
	Get(key string) (string, error)
	Put(key, value string) error
}

type settingRepository struct {
	db *gorm.DB
}

func NewSettingRepository(db *gorm.DB) SettingRepository {
	return &settingRepository{db: db}
}

func (r *settingRepository) Get(key string) (string, error) {
	var setting model.Setting
	err := r.db.First(&setting, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", apperr.ErrNotFound
	}
	if err != nil {
		return "", apperr.Storage("read setting", err)
	}
	return setting.Value, nil
}

func (r *settingRepository) Put(key, value string) error {
	setting := model.Setting{Key: key, Value: value}
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&setting).Error
	if err != nil {
		return apperr.Storage("write setting", err)
	}
	return nil
}
