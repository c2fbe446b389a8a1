package services

import (
	"github.com/ZenithX9271/SPL-AgriSense/internal/db"
	"github.com/ZenithX9271/SPL-AgriSense/internal/models"
)

// MinimumDemoTests is how many soil tests every account is topped up to on
// login, so the dashboard is never empty.
const MinimumDemoTests = 2

// EnsureDemoData synthesizes soil tests for the user until the account holds
// at least MinimumDemoTests records. Existing records are never touched.
func EnsureDemoData(repo *db.SoilTestRepository, sim *Simulator, user *models.User) (created int, err error) {
	count, err := repo.CountByOwner(user.Credential)
	if err != nil {
		return 0, err
	}
	for count+int64(created) < MinimumDemoTests {
		record := sim.Simulate(user.Credential, user.Name, BootstrapLocation())
		if err := repo.Create(&record); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}
