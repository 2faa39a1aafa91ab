package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/juanlvs21/sanble-functions/pkg/identity/local"
)

const uniqueViolation = "23505"

// UserRepository implements local.UserRepository backed by PostgreSQL (pgx).
// The schema is owned by the storage migrations.
type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `id::text, email, display_name, password_hash, email_verified, disabled, created_at, last_sign_in_at, updated_at`

func (r *UserRepository) Create(ctx context.Context, user local.User) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO users (id, email, display_name, password_hash, email_verified, disabled, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, user.ID, strings.ToLower(user.Email), user.DisplayName, user.PasswordHash,
		user.EmailVerified, user.Disabled, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return local.ErrUserAlreadyExists
		}
		return err
	}
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (local.User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, strings.ToLower(email))
	return scanUser(row)
}

func (r *UserRepository) MarkEmailVerified(ctx context.Context, email string) (local.User, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE users SET email_verified = TRUE, updated_at = now()
		WHERE email = $1
		RETURNING `+userColumns, strings.ToLower(email))
	return scanUser(row)
}

func scanUser(row pgx.Row) (local.User, error) {
	var (
		user       local.User
		lastSignIn *time.Time
	)
	err := row.Scan(&user.ID, &user.Email, &user.DisplayName, &user.PasswordHash,
		&user.EmailVerified, &user.Disabled, &user.CreatedAt, &lastSignIn, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return local.User{}, local.ErrNotFound
		}
		return local.User{}, err
	}
	user.CreatedAt = user.CreatedAt.UTC()
	user.UpdatedAt = user.UpdatedAt.UTC()
	if lastSignIn != nil {
		user.LastSignInAt = lastSignIn.UTC()
	}
	return user, nil
}
