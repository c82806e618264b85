package services

import (
	"context"
	"errors"
	"strings"

	"github.com/terraincognita07/kalender/internal/models"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrOwnerAlreadyExists       = errors.New("owner already exists")
	ErrOwnerNotFound            = errors.New("owner not found")
	ErrInvalidCredentials       = errors.New("invalid credentials")
	ErrPasswordMismatch         = errors.New("password mismatch")
	ErrNewPasswordMustDiffer    = errors.New("new password must differ")
	ErrPasswordChangeIncomplete = errors.New("password change input incomplete")
)

type OwnerRepository interface {
	Count(ctx context.Context) (int64, error)
	Find(ctx context.Context) (models.Owner, bool, error)
	Create(ctx context.Context, owner *models.Owner) error
	UpdatePassword(ctx context.Context, ownerID uint, passwordHash string, mustChangePassword bool) error
}

// AuthService guards the single owner account that protects the API.
type AuthService struct {
	owners OwnerRepository
	cost   int
}

func NewAuthService(owners OwnerRepository) *AuthService {
	return &AuthService{owners: owners, cost: bcrypt.DefaultCost}
}

func (service *AuthService) RequiresInitialSetup(ctx context.Context) (bool, error) {
	count, err := service.owners.Count(ctx)
	if err != nil {
		return false, err
	}
	return count == 0, nil
}

func (service *AuthService) SetupOwner(ctx context.Context, password string, confirmPassword string) (models.Owner, error) {
	required, err := service.RequiresInitialSetup(ctx)
	if err != nil {
		return models.Owner{}, err
	}
	if !required {
		return models.Owner{}, ErrOwnerAlreadyExists
	}
	if strings.TrimSpace(password) != strings.TrimSpace(confirmPassword) {
		return models.Owner{}, ErrPasswordMismatch
	}

	passwordHash, err := service.hashPassword(password)
	if err != nil {
		return models.Owner{}, err
	}
	owner := models.Owner{PasswordHash: passwordHash}
	if err := service.owners.Create(ctx, &owner); err != nil {
		return models.Owner{}, err
	}
	return owner, nil
}

// Owner returns the single owner or ErrOwnerNotFound.
func (service *AuthService) Owner(ctx context.Context) (models.Owner, error) {
	owner, found, err := service.owners.Find(ctx)
	if err != nil {
		return models.Owner{}, err
	}
	if !found {
		return models.Owner{}, ErrOwnerNotFound
	}
	return owner, nil
}

func (service *AuthService) Authenticate(ctx context.Context, password string) (models.Owner, error) {
	owner, err := service.Owner(ctx)
	if err != nil {
		return models.Owner{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(owner.PasswordHash), []byte(strings.TrimSpace(password))) != nil {
		return models.Owner{}, ErrInvalidCredentials
	}
	return owner, nil
}

func (service *AuthService) ChangePassword(ctx context.Context, currentPassword string, newPassword string, confirmPassword string) error {
	currentPassword = strings.TrimSpace(currentPassword)
	newPassword = strings.TrimSpace(newPassword)
	confirmPassword = strings.TrimSpace(confirmPassword)

	if currentPassword == "" || newPassword == "" || confirmPassword == "" {
		return ErrPasswordChangeIncomplete
	}
	if newPassword != confirmPassword {
		return ErrPasswordMismatch
	}
	owner, err := service.Authenticate(ctx, currentPassword)
	if err != nil {
		return err
	}
	if currentPassword == newPassword {
		return ErrNewPasswordMustDiffer
	}

	passwordHash, err := service.hashPassword(newPassword)
	if err != nil {
		return err
	}
	return service.owners.UpdatePassword(ctx, owner.ID, passwordHash, false)
}

// SetPassword overwrites the owner password, creating the owner when none
// exists yet. Used by the command line tools, which skip the strength check
// for generated temporary passwords when mustChangePassword is set.
func (service *AuthService) SetPassword(ctx context.Context, password string, mustChangePassword bool) error {
	password = strings.TrimSpace(password)
	if !mustChangePassword {
		if err := ValidatePasswordStrength(password); err != nil {
			return err
		}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), service.cost)
	if err != nil {
		return err
	}

	owner, found, err := service.owners.Find(ctx)
	if err != nil {
		return err
	}
	if !found {
		return service.owners.Create(ctx, &models.Owner{
			PasswordHash:       string(hash),
			MustChangePassword: mustChangePassword,
		})
	}
	return service.owners.UpdatePassword(ctx, owner.ID, string(hash), mustChangePassword)
}

func (service *AuthService) hashPassword(password string) (string, error) {
	password = strings.TrimSpace(password)
	if err := ValidatePasswordStrength(password); err != nil {
		return "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), service.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
