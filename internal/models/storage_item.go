package models

import (
	"time"

	"gorm.io/datatypes"
)

type StorageItem struct {
	Key       string         `gorm:"primaryKey;column:key"`
	Value     datatypes.JSON `gorm:"not null"`
	UpdatedAt time.Time      `gorm:"not null"`
}

func (StorageItem) TableName() string {
	return "storage_items"
}
