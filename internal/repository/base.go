package repository

import (
	"context"
	"errors"
	"log/slog"

	"inkwell/internal/models"
	"inkwell/internal/observability"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const pgUniqueViolation = "23505"

// findOne runs q into a single T. A miss is (nil, false, nil), not an error.
func findOne[T any](q *gorm.DB) (*T, bool, error) {
	var out T
	res := q.Limit(1).Find(&out)
	if res.Error != nil {
		return nil, false, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, false, nil
	}
	return &out, true, nil
}

// isUniqueViolation reports whether err is a unique-constraint failure, either
// translated by GORM or raw from pgx.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// getOrCreate returns the row found by find, or inserts one with create.
// If the insert loses a race on the unique key, the lookup runs once more
// and a CONFLICT error is returned only when that also misses.
func getOrCreate[T any](
	ctx context.Context,
	table, key string,
	find func() (*T, bool, error),
	create func() (*T, error),
) (*T, error) {
	existing, found, err := find()
	if err != nil {
		return nil, err
	}
	if found {
		return existing, nil
	}

	created, err := create()
	if err == nil {
		return created, nil
	}
	if !isUniqueViolation(err) {
		return nil, err
	}

	observability.RegistryConflictRetries.WithLabelValues(table).Inc()
	observability.Logger.InfoContext(ctx, "get-or-create lost insert race, re-reading",
		slog.String("table", table),
		slog.String("key", key),
	)

	existing, found, retryErr := find()
	if retryErr != nil {
		return nil, retryErr
	}
	if !found {
		return nil, models.NewConflictError(table, key, err)
	}
	return existing, nil
}
