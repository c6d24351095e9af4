package database

import (
	"errors"
	"fmt"

	"github.com/rahulchiluka-megaviztech/telugu-association-backend/internal/models"
	"github.com/rahulchiluka-megaviztech/telugu-association-backend/pkg/bcrypt"
	"gorm.io/gorm"
)

func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// SeedAdmin creates the administrator account unless one with that email exists.
// It reports whether a row was inserted.
func SeedAdmin(db *gorm.DB, email, password string) (bool, error) {
	if email == "" || password == "" {
		return false, nil
	}

	var existing models.Account
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	hash, err := bcrypt.HashPassword(password)
	if err != nil {
		return false, err
	}
	admin := models.Account{
		Type:         models.AccountAdmin,
		Firstname:    "Admin",
		Lastname:     "User",
		Email:        email,
		Password:     hash,
		AuthProvider: models.ProviderLocal,
		IsAdmin:      true,
		Confirm:      true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return false, fmt.Errorf("seed admin: %w", err)
	}
	return true, nil
}
