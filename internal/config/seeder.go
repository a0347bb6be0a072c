package config

import (
	"errors"
	"log"

	"tanzanex-lend/internal/adapters/persistence/models"
	"tanzanex-lend/internal/pkg/password"

	"gorm.io/gorm"
)

// SeedSuperAdmin creates the platform-operator account from the
// environment on first boot. Without both SUPER_ADMIN_EMAIL and
// SUPER_ADMIN_PASSWORD the seeder does nothing.
func SeedSuperAdmin(db *gorm.DB, cfg *Config) error {
	email := cfg.SuperAdmin.SeedEmail
	pass := cfg.SuperAdmin.SeedPass
	if email == "" || pass == "" {
		return nil
	}

	var existing models.User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashed, err := password.Hash(pass)
	if err != nil {
		return err
	}

	admin := &models.User{
		Name:     "Super Admin",
		Email:    email,
		Password: hashed,
		Role:     "super-admin",
		Active:   true,
	}
	if err := db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("Seeded super-admin account: %s", email)
	return nil
}
