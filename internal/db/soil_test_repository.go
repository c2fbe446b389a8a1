package db

import (
	"errors"

	"github.com/ZenithX9271/SPL-AgriSense/internal/models"
	"gorm.io/gorm"
)

var ErrOwnerNotFound = errors.New("owner credential does not reference an account")

type SoilTestRepository struct {
	database *gorm.DB
}

func NewSoilTestRepository(database *gorm.DB) *SoilTestRepository {
	return &SoilTestRepository{database: database}
}

// ListByOwner returns the owner's records newest first. Timestamp is the
// display sort key; ID breaks ties between records created within the same
// clock tick.
func (repo *SoilTestRepository) ListByOwner(credential string) ([]models.SoilTest, error) {
	tests := make([]models.SoilTest, 0)
	if err := repo.database.
		Where("owner_credential = ?", credential).
		Order("timestamp DESC, id DESC").
		Find(&tests).Error; err != nil {
		return nil, err
	}
	return tests, nil
}

func (repo *SoilTestRepository) CountByOwner(credential string) (int64, error) {
	var count int64
	if err := repo.database.Model(&models.SoilTest{}).
		Where("owner_credential = ?", credential).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (repo *SoilTestRepository) FindByIDForOwner(testID string, credential string) (models.SoilTest, bool, error) {
	var test models.SoilTest
	result := repo.database.
		Where("id = ? AND owner_credential = ?", testID, credential).
		Limit(1).
		Find(&test)
	if result.Error != nil {
		return models.SoilTest{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.SoilTest{}, false, nil
	}
	return test, true, nil
}

// Create inserts a record after verifying the owner credential references an
// existing account. Records never exist without an owner by construction.
func (repo *SoilTestRepository) Create(test *models.SoilTest) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		var owners int64
		if err := tx.Model(&models.User{}).
			Where("credential = ?", test.OwnerCredential).
			Count(&owners).Error; err != nil {
			return err
		}
		if owners == 0 {
			return ErrOwnerNotFound
		}
		return tx.Create(test).Error
	})
}

// DeleteByIDForOwner removes exactly one record; the owning account and all
// other records are untouched. Returns false when no matching record exists.
func (repo *SoilTestRepository) DeleteByIDForOwner(testID string, credential string) (bool, error) {
	result := repo.database.
		Where("id = ? AND owner_credential = ?", testID, credential).
		Delete(&models.SoilTest{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
