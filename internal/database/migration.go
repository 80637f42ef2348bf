package database

import (
	"errors"
	"fmt"

	"github.com/leoroquedesan-droid/leo/internal/config"
	"github.com/leoroquedesan-droid/leo/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AutoMigrate runs database schema migrations for all models.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Operator{},
		&models.Member{},
		&models.Booking{},
		&models.Payment{},
		&models.Ticket{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// SeedOperators creates the configured staff accounts if they do not exist
// yet. Existing accounts are left alone, so password changes in the config
// file do not silently overwrite rotated credentials.
func SeedOperators(db *gorm.DB, cfg config.AuthConfig) error {
	cost := cfg.BcryptCost
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}

	for _, seed := range cfg.SeedOperators {
		if seed.Name == "" || seed.Password == "" {
			continue
		}

		var existing models.Operator
		err := db.Where("name = ?", seed.Name).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("lookup operator %q: %w", seed.Name, err)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(seed.Password), cost)
		if err != nil {
			return fmt.Errorf("hash password for %q: %w", seed.Name, err)
		}
		op := models.Operator{Name: seed.Name, PasswordHash: string(hash)}
		if err := db.Create(&op).Error; err != nil {
			return fmt.Errorf("create operator %q: %w", seed.Name, err)
		}
	}
	return nil
}
