package sqliterepos

import (
	"context"
	"database/sql"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/frankspastic/psia-gradebook/core/gradebook"
)

type gradebookRepository struct {
	db *sqlx.DB
}

var _ gradebook.Repository = (*gradebookRepository)(nil) // interface compliance check

func NewGradebookRepository(db *sqlx.DB) gradebook.Repository {
	return &gradebookRepository{db: db}
}

// exec runs an UPDATE/DELETE that must touch exactly one row, translating
// "no rows" into the caller's not-found sentinel.
func (repo *gradebookRepository) exec(ctx context.Context, notFound error, query string, args ...interface{}) error {
	res, err := repo.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}

// partialUpdate runs "UPDATE <table> SET <fields> WHERE id = ?" for the
// supplied field fragments; no-ops when nothing was supplied.
func (repo *gradebookRepository) partialUpdate(ctx context.Context, table string, id int, notFound error, fields []string, args []interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	args = append(args, id)
	query := "UPDATE " + table + " SET " + strings.Join(fields, ", ") + " WHERE id = ?"
	return repo.exec(ctx, notFound, query, args...)
}

func translateNoRows(err, notFound error) error {
	if err == sql.ErrNoRows {
		return notFound
	}
	return err
}
