package repository

import (
	"errors"

	"stayhub/internal/infra"

	"github.com/jackc/pgx/v5/pgconn"
)

// classifyWriteErr maps PostgreSQL constraint violations to repository
// error kinds. Anything unrecognized is a plain DB failure.
func classifyWriteErr(err error) infra.RepositoryErrorKind {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return infra.KindDuplicateKey
		case "23503":
			return infra.KindForeignKeyViolated
		}
	}
	return infra.KindDBFailure
}
