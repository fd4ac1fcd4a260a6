package repository

import (
	"context"

	"github.com/ridwanfathin/invoice-dashboard/internal/domain"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	CreateUserWithPassword(ctx context.Context, user *domain.User) error
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	GetUserByEmailWithPassword(ctx context.Context, email string) (*domain.User, error)
}
