package storage

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/iipratte/stuber/internal/models"
)

// Postgres error codes we translate into the typed set. Anything else is
// passed through untouched for the caller's generic handling.
const (
	pgInvalidCatalogName = "3D000"
	pgInvalidPassword    = "28P01"
	pgUndefinedTable     = "42P01"
	pgUniqueViolation    = "23505"
)

type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Open dials Postgres with the given lib/pq DSN and verifies connectivity.
// A non-nil *sql.DB is returned even when the ping fails, so the process can
// come up and serve storage errors per-request until the database recovers.
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return db, translatePGError(err)
	}
	return db, nil
}

func (p *PostgresStore) ListUsers(ctx context.Context) ([]models.User, error) {
	rows, err := p.db.QueryContext(ctx, `SELECT id, username, email FROM users ORDER BY id`)
	if err != nil {
		return nil, translatePGError(err)
	}
	defer rows.Close()

	var out []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email); err != nil {
			return nil, translatePGError(err)
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, translatePGError(err)
	}
	return out, nil
}

func (p *PostgresStore) GetUser(ctx context.Context, id int64) (models.User, error) {
	var u models.User
	err := p.db.QueryRowContext(ctx,
		`SELECT id, username, email FROM users WHERE id = $1`, id,
	).Scan(&u.ID, &u.Username, &u.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, translatePGError(err)
	}
	return u, nil
}

func (p *PostgresStore) UpdateUsername(ctx context.Context, id int64, username string) (models.User, error) {
	var u models.User
	err := p.db.QueryRowContext(ctx,
		`UPDATE users SET username = $1 WHERE id = $2 RETURNING id, username, email`,
		username, id,
	).Scan(&u.ID, &u.Username, &u.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, translatePGError(err)
	}
	return u, nil
}

func translatePGError(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}
	switch string(pqErr.Code) {
	case pgInvalidCatalogName:
		return ErrDatabaseMissing
	case pgInvalidPassword:
		return ErrAuthFailed
	case pgUndefinedTable:
		return ErrRelationMissing
	case pgUniqueViolation:
		return ErrUniqueViolation
	}
	return err
}
