package accounts

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/dmitrijs2005/employera/internal/dbx"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pressly/goose/v3"

	_ "github.com/jackc/pgx/v5/stdlib"
)

//go:embed sql/*.sql
var migrations embed.FS

const uniqueViolation = "23505"

// Open connects to PostgreSQL through the pgx driver and applies the
// embedded migrations.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}
	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}
	return db, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	sub, err := fs.Sub(migrations, "sql")
	if err != nil {
		return err
	}
	provider, err := goose.NewProvider(goose.DialectPostgres, db, sub)
	if err != nil {
		return err
	}
	_, err = provider.Up(ctx)
	return err
}

// PostgresRepository keeps accounts in the users table. The profile is
// stored as JSONB next to the columns that are queried.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, rec *Record) error {
	profile, err := json.Marshal(rec.User)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}

	query := `
		INSERT INTO users (email, password_hash, generation, profile)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	if err := r.db.QueryRowContext(ctx, query, rec.User.Email, rec.Hash, rec.Generation, profile).Scan(&rec.User.ID); err != nil {
		if isUniqueViolation(err) {
			return ErrEmailTaken
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ByID(ctx context.Context, id int64) (*Record, error) {
	query := `
		SELECT id, email, password_hash, generation, profile
		FROM users
		WHERE id = $1
	`
	return r.scan(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) ByEmail(ctx context.Context, email string) (*Record, error) {
	query := `
		SELECT id, email, password_hash, generation, profile
		FROM users
		WHERE lower(email) = lower($1)
	`
	return r.scan(r.db.QueryRowContext(ctx, query, email))
}

func (r *PostgresRepository) Save(ctx context.Context, rec *Record) error {
	profile, err := json.Marshal(rec.User)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}

	query := `
		UPDATE users
		SET email = $2, password_hash = $3, generation = $4, profile = $5
		WHERE id = $1
	`

	res, err := r.db.ExecContext(ctx, query, rec.User.ID, rec.User.Email, rec.Hash, rec.Generation, profile)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrEmailTaken
		}
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) scan(row *sql.Row) (*Record, error) {
	var (
		rec     Record
		id      int64
		email   string
		profile []byte
	)
	if err := row.Scan(&id, &email, &rec.Hash, &rec.Generation, &profile); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	if err := json.Unmarshal(profile, &rec.User); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	rec.User.ID = id
	rec.User.Email = email
	return &rec, nil
}

// PostgresBlacklist keeps logged-out refresh tokens in revoked_tokens.
type PostgresBlacklist struct {
	db dbx.DBTX
}

func NewPostgresBlacklist(db dbx.DBTX) *PostgresBlacklist {
	return &PostgresBlacklist{db: db}
}

// Add records jti and removes entries that expired, since an expired token
// is rejected on its own.
func (b *PostgresBlacklist) Add(ctx context.Context, jti string, userID int64, expires time.Time) error {
	if _, err := b.db.ExecContext(ctx, `DELETE FROM revoked_tokens WHERE expires_at < now()`); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	query := `
		INSERT INTO revoked_tokens (jti, user_id, expires_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (jti) DO NOTHING
	`
	if _, err := b.db.ExecContext(ctx, query, jti, userID, expires); err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}
	return nil
}

func (b *PostgresBlacklist) Contains(ctx context.Context, jti string) (bool, error) {
	var found bool
	query := `SELECT EXISTS (SELECT 1 FROM revoked_tokens WHERE jti = $1)`
	if err := b.db.QueryRowContext(ctx, query, jti).Scan(&found); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return found, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

var (
	_ Repository = (*PostgresRepository)(nil)
	_ Blacklist  = (*PostgresBlacklist)(nil)
)
