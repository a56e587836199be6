package repositories

import (
	"context"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/yigit/campusnet/internal/pkg/apperrors"
)

// DBTX is satisfied by *pgxpool.Pool and pgx.Tx
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func statementBuilder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func errNotFound(entity string) error {
	return apperrors.NewResourceNotFoundError(entity + " not found")
}

func errOwnerNotFound() error {
	return apperrors.NewResourceNotFoundError("user not found")
}

func ownerFilter(q squirrel.SelectBuilder, userID *int64) squirrel.SelectBuilder {
	if userID != nil {
		q = q.Where(squirrel.Eq{"user_id": *userID})
	}
	return q.OrderBy("id ASC")
}

// likeEscaper quotes LIKE wildcards in user input
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

func newestFirst(q squirrel.SelectBuilder, column string, limit uint64) squirrel.SelectBuilder {
	q = q.OrderBy(column + " DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	return q
}
