package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

const schema = `
	CREATE TABLE IF NOT EXISTS console_sessions (
		id         UUID PRIMARY KEY,
		token      TEXT NOT NULL,
		profile    JSONB NOT NULL,
		expires_at TIMESTAMPTZ NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)
`

type postgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates a new PostgreSQL session repository.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepository{db: db}
}

// EnsureSchema creates the sessions table when it does not exist yet.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schema)
	return err
}

func (r *postgresRepository) Create(ctx context.Context, s *Session) error {
	profile, err := json.Marshal(s.Profile)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO console_sessions (id, token, profile, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err = r.db.ExecContext(ctx, query, s.ID, s.Token, profile, s.ExpiresAt, s.CreatedAt)
	return err
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*Session, error) {
	s := &Session{}
	var profile []byte
	query := `
		SELECT id, token, profile, expires_at, created_at
		FROM console_sessions
		WHERE id = $1
	`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&s.ID,
		&s.Token,
		&profile,
		&s.ExpiresAt,
		&s.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(profile, &s.Profile); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM console_sessions WHERE id = $1`, id)
	return err
}

func (r *postgresRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM console_sessions WHERE expires_at <= $1`, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
