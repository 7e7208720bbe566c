package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dealexpress/dealexpress-api/internal/domain/repository"
)

const (
	uniqueViolation     = "23505"
	invalidTextRepr     = "22P02"
	foreignKeyViolation = "23503"
)

// translate maps driver errors onto repository sentinels.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return repository.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolation:
			return repository.ErrDuplicate
		// malformed uuids and dangling references both mean the target does not exist
		case invalidTextRepr, foreignKeyViolation:
			return repository.ErrNotFound
		}
	}
	return err
}

// escapeLike escapes LIKE metacharacters so the query matches literally.
func escapeLike(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch r {
		case '\\', '%', '_':
			out = append(out, '\\')
		}
		out = append(out, r)
	}
	return string(out)
}

// limitArg binds a page limit; NULL makes LIMIT a no-op.
func limitArg(p repository.Page) any {
	if p.Limit < 1 {
		return nil
	}
	return p.Limit
}
