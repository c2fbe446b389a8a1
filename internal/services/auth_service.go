package services

import (
	"errors"

	"github.com/ZenithX9271/SPL-AgriSense/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is deliberately generic: login never distinguishes an
// unknown credential from a wrong password, so accounts cannot be enumerated.
var ErrInvalidCredentials = errors.New("invalid credentials")

type AuthUserRepository interface {
	FindByID(userID string) (models.User, error)
	FindByCredential(credential string) (models.User, error)
	UpdateNotificationsEnabled(userID string, enabled bool) error
}

type AuthService struct {
	users AuthUserRepository
}

func NewAuthService(users AuthUserRepository) *AuthService {
	return &AuthService{users: users}
}

// Authenticate checks a credential/password pair. Any failure yields
// ErrInvalidCredentials.
func (service *AuthService) Authenticate(credentialRaw string, password string) (models.User, error) {
	credential, err := NormalizeCredential(credentialRaw)
	if err != nil || password == "" {
		return models.User{}, ErrInvalidCredentials
	}

	user, err := service.users.FindByCredential(credential)
	if err != nil {
		return models.User{}, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return models.User{}, ErrInvalidCredentials
	}
	return user, nil
}

func (service *AuthService) FindByID(userID string) (models.User, error) {
	return service.users.FindByID(userID)
}

// SetNotificationsEnabled flips the fertilizer partner opt-in for the account
// owner.
func (service *AuthService) SetNotificationsEnabled(userID string, enabled bool) error {
	return service.users.UpdateNotificationsEnabled(userID, enabled)
}
