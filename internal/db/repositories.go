package db

import "gorm.io/gorm"

type Repositories struct {
	Users     *UserRepository
	SoilTests *SoilTestRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:     NewUserRepository(database),
		SoilTests: NewSoilTestRepository(database),
	}
}
