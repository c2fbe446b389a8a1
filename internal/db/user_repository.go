package db

import (
	"github.com/ZenithX9271/SPL-AgriSense/internal/models"
	"gorm.io/gorm"
)

type UserRepository struct {
	database *gorm.DB
}

func NewUserRepository(database *gorm.DB) *UserRepository {
	return &UserRepository{database: database}
}

func (repo *UserRepository) FindByID(userID string) (models.User, error) {
	var user models.User
	if err := repo.database.First(&user, "id = ?", userID).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (repo *UserRepository) FindByCredential(credential string) (models.User, error) {
	var user models.User
	if err := repo.database.Where("credential = ?", credential).First(&user).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (repo *UserRepository) ExistsByCredential(credential string) (bool, error) {
	var matched int64
	if err := repo.database.Model(&models.User{}).
		Where("credential = ?", credential).
		Count(&matched).Error; err != nil {
		return false, err
	}
	return matched > 0, nil
}

func (repo *UserRepository) Create(user *models.User) error {
	return repo.database.Create(user).Error
}

func (repo *UserRepository) UpdateNotificationsEnabled(userID string, enabled bool) error {
	return repo.database.Model(&models.User{}).Where("id = ?", userID).
		Update("notifications_enabled", enabled).Error
}
