package db

import (
	"errors"
	"sort"
	"time"

	"github.com/terraincognita07/fitnutri/internal/models"
	"github.com/terraincognita07/fitnutri/internal/persistence"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StorageRepository struct {
	database *gorm.DB
	now      func() time.Time
}

var _ persistence.Backend = (*StorageRepository)(nil)

func NewStorageRepository(database *gorm.DB) *StorageRepository {
	return &StorageRepository{database: database, now: time.Now}
}

func (repo *StorageRepository) Get(key string) (string, bool, error) {
	var item models.StorageItem
	err := repo.database.Where("key = ?", key).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return string(item.Value), true, nil
}

func (repo *StorageRepository) Set(key string, value string) error {
	return upsertStorageItem(repo.database, key, value, repo.now().UTC())
}

func (repo *StorageRepository) Delete(key string) error {
	return repo.database.Where("key = ?", key).Delete(&models.StorageItem{}).Error
}

func (repo *StorageRepository) SetMany(values map[string]string) error {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	updatedAt := repo.now().UTC()
	return repo.database.Transaction(func(tx *gorm.DB) error {
		for _, key := range keys {
			if err := upsertStorageItem(tx, key, values[key], updatedAt); err != nil {
				return err
			}
		}
		return nil
	})
}

func (repo *StorageRepository) ListKeys() ([]string, error) {
	keys := make([]string, 0)
	if err := repo.database.Model(&models.StorageItem{}).Order("key ASC").Pluck("key", &keys).Error; err != nil {
		return nil, err
	}
	return keys, nil
}

func upsertStorageItem(database *gorm.DB, key string, value string, updatedAt time.Time) error {
	item := models.StorageItem{
		Key:       key,
		Value:     datatypes.JSON(value),
		UpdatedAt: updatedAt,
	}
	return database.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&item).Error
}
