package repositories

import (
	"context"

	"github.com/anonto42/vinahome/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	UpsertUser(ctx context.Context, user *models.User) error
}

// PostgresUserRepository implements UserRepository for PostgreSQL
type PostgresUserRepository struct {
	db *gorm.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository
func NewPostgresUserRepository(db *gorm.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// UpsertUser inserts the user or refreshes it. An empty email never
// overwrites a stored one.
func (r *PostgresUserRepository) UpsertUser(ctx context.Context, user *models.User) error {
	columns := []string{"updated_at"}
	if user.Email != "" {
		columns = append(columns, "email")
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns(columns),
	}).Create(user).Error
	return wrap("upsert user", err, "")
}
