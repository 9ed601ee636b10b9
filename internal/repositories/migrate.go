package repositories

import (
	"github.com/anonto42/vinahome/backend/internal/models"
	"gorm.io/gorm"
)

// Migrate creates or updates the community tables. Order matters: referenced
// tables first.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.City{},
		&models.Apartment{},
		&models.Post{},
		&models.Comment{},
		&models.Like{},
	)
}
