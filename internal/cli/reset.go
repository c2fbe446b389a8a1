package cli

import (
	"errors"
	"fmt"

	"github.com/ZenithX9271/SPL-AgriSense/internal/db"
	"github.com/ZenithX9271/SPL-AgriSense/internal/models"
	"github.com/ZenithX9271/SPL-AgriSense/internal/security"
	"github.com/ZenithX9271/SPL-AgriSense/internal/services"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// RunResetPasswordCommand sets a fresh temporary password for the account
// identified by credential (email or phone). Meant for the operator of a
// self-hosted instance; there is no self-service reset flow.
func RunResetPasswordCommand(dbPath string, credential string) error {
	normalized, err := services.NormalizeCredential(credential)
	if err != nil {
		return fmt.Errorf("invalid credential: %w", err)
	}

	database, err := db.OpenSQLite(dbPath)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}

	var user models.User
	if err := database.Where("credential = ?", normalized).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("account %s not found", normalized)
		}
		return fmt.Errorf("load account: %w", err)
	}

	temporaryPassword, err := generateTemporaryPassword(12)
	if err != nil {
		return fmt.Errorf("generate temporary password: %w", err)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(temporaryPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash temporary password: %w", err)
	}

	user.PasswordHash = string(passwordHash)
	if err := database.Save(&user).Error; err != nil {
		return fmt.Errorf("update account password: %w", err)
	}

	fmt.Println("Password reset successful")
	fmt.Printf("Temporary password: %s\n", temporaryPassword)
	fmt.Println("Share it with the account owner over a trusted channel.")

	return nil
}

func generateTemporaryPassword(length int) (string, error) {
	if length < 8 {
		length = 8
	}

	const alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789"
	return security.RandomString(length, alphabet)
}
