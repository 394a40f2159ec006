package repository

import (
	"errors"
	"fmt"

	"travel-agency/pkg/apperror"
	"travel-agency/pkg/utils"

	"github.com/jackc/pgx/v5/pgconn"
)

// postgres SQLSTATE codes surfaced as constraint violations
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// wrapPgError maps integrity errors to apperror.ErrConstraintViolation and
// wraps everything else with the operation name.
func wrapPgError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation, pgForeignKeyViolation, pgCheckViolation:
			return fmt.Errorf("%s: %w (%s)", op, apperror.ErrConstraintViolation, pgErr.ConstraintName)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

func isConstraintViolation(err error) bool {
	return errors.Is(err, apperror.ErrConstraintViolation)
}

// Page is one slice of a paginated listing
type Page[T any] struct {
	Data       []T
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

func newPage[T any](data []T, total int64, page, limit int) *Page[T] {
	if data == nil {
		data = []T{}
	}
	return &Page[T]{
		Data:       data,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: utils.CalculateTotalPages(total, limit),
	}
}
