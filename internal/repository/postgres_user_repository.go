package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/ridwanfathin/invoice-dashboard/internal/domain"
)

// PostgresUserRepository implements UserRepository using PostgreSQL
type PostgresUserRepository struct {
	db Querier
}

// NewPostgresUserRepository creates a new PostgreSQL user repository
func NewPostgresUserRepository(db Querier) UserRepository {
	return &PostgresUserRepository{db: db}
}

// CreateUserWithPassword creates a new user with password hash in the database.
// An existing user with the same email keeps its row; the hash is refreshed.
func (r *PostgresUserRepository) CreateUserWithPassword(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (name, email, password)
		VALUES ($1, $2, $3)
		ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name, password = EXCLUDED.password
		RETURNING id::text
	`

	err := r.db.QueryRow(ctx, query, user.Name, user.Email, user.PasswordHash).Scan(&user.ID)
	if err != nil {
		return fmt.Errorf("failed to create user with password: %w", err)
	}

	return nil
}

// GetUserByID retrieves a user by their ID
func (r *PostgresUserRepository) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, ErrUserNotFound
	}

	query := `
		SELECT id::text, name, email
		FROM users
		WHERE id = $1
	`

	user := &domain.User{}
	err := r.db.QueryRow(ctx, query, userID).Scan(&user.ID, &user.Name, &user.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}

	return user, nil
}

// GetUserByEmailWithPassword retrieves a user by their email including password hash
func (r *PostgresUserRepository) GetUserByEmailWithPassword(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT id::text, name, email, password
		FROM users
		WHERE email = $1
	`

	user := &domain.User{}
	err := r.db.QueryRow(ctx, query, email).Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by email with password: %w", err)
	}

	return user, nil
}
