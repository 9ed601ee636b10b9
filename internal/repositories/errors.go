package repositories

import (
	"errors"

	"github.com/anonto42/vinahome/backend/internal/apperrors"
	"github.com/jackc/pgx/v5/pgconn"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

const pgForeignKeyViolation = "23503"

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, mongo.ErrNoDocuments)
}

func isForeignKeyViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation
}

// wrap maps storage errors onto the application taxonomy. Missing rows become
// NotFound with notFoundMsg; anything else is a persistence failure for op.
func wrap(op string, err error, notFoundMsg string) error {
	if err == nil {
		return nil
	}
	if notFoundMsg != "" && isNotFound(err) {
		return apperrors.NotFoundf("%s", notFoundMsg)
	}
	return apperrors.Persistence(op, err)
}
