package db

import "gorm.io/gorm"

type Repositories struct {
	Storage *StorageRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Storage: NewStorageRepository(database),
	}
}
