package database

import (
	"errors"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/EXE-Fall25-Snapdi/Snapdi-App-BE/internal/config"
	"github.com/EXE-Fall25-Snapdi/Snapdi-App-BE/internal/logger"
	"github.com/EXE-Fall25-Snapdi/Snapdi-App-BE/internal/models"
)

var gormDB *gorm.DB

// ConnectGorm opens (or reuses) the GORM connection using the
// configured DSN.
func ConnectGorm() (*gorm.DB, error) {
	if gormDB != nil {
		return gormDB, nil
	}

	cfg := config.GetConfig()
	dsn := cfg.Database.DSN

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to GORM: %w", err)
	}

	gormDB = db
	return db, nil
}

// AutoMigrate migrates the schema and seeds the role catalog.
func AutoMigrate() error {
	db, err := ConnectGorm()
	if err != nil {
		return err
	}

	err = db.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.Blog{},
		&models.Keyword{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate failed: %w", err)
	}

	if err := SeedRoles(db); err != nil {
		return err
	}

	logger.Info("AutoMigrate completed")
	return nil
}

// SeedRoles inserts the role catalog rows that are missing.
func SeedRoles(db *gorm.DB) error {
	for _, name := range []models.RoleName{
		models.RoleAdmin,
		models.RolePhotographer,
		models.RoleCustomer,
	} {
		var role models.Role
		err := db.First(&role, "name = ?", string(name)).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check role %s: %w", name, err)
		}
		if err := db.Create(&models.Role{Name: name}).Error; err != nil {
			return fmt.Errorf("failed to seed role %s: %w", name, err)
		}
		logger.Info("role seeded", "role", string(name))
	}
	return nil
}
