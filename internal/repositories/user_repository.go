package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JANVI-SEMWAL/Automatic-ER-generator/internal/models"
)

// ErrDuplicateUser is returned when the email or username is taken.
var ErrDuplicateUser = errors.New("user already exists")

const uniqueViolation = "23505"

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	user.Prepare()

	query := `
		INSERT INTO users (id, username, email, password_hash, phone_country_code, phone_number, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
	`

	now := time.Now().UTC()
	_, err := r.pool.Exec(ctx, query,
		user.ID,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.PhoneCountryCode,
		user.PhoneNumber,
		now,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrDuplicateUser
		}
		return fmt.Errorf("insert user: %w", err)
	}

	user.CreatedAt = now
	user.UpdatedAt = now
	return nil
}

const selectUser = `SELECT id, username, email, password_hash, phone_country_code, phone_number, created_at, updated_at
	FROM users`

// FindUserByID returns nil, nil when no user matches.
func (r *UserRepository) FindUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return r.findOne(ctx, selectUser+" WHERE id = $1", id)
}

// FindUserByEmail returns nil, nil when no user matches.
func (r *UserRepository) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, selectUser+" WHERE email = $1", email)
}

func (r *UserRepository) findOne(ctx context.Context, query string, arg any) (*models.User, error) {
	var user models.User
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.PhoneCountryCode,
		&user.PhoneNumber,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}
