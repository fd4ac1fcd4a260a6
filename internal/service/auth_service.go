package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/ridwanfathin/invoice-dashboard/internal/domain"
	"github.com/ridwanfathin/invoice-dashboard/internal/repository"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Common errors
var (
	ErrUserAlreadyExists  = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidSession     = errors.New("invalid session")
)

// MinPasswordLength is the shortest password credentials may carry
const MinPasswordLength = 6

// AuthService handles credential sign-in and session tokens
type AuthService interface {
	// Authorize returns the user whose email and password match, or nil
	// when the credentials are malformed or do not match.
	Authorize(ctx context.Context, email, password string) (*domain.User, error)

	// Login authorizes the credentials and issues a session token
	Login(ctx context.Context, email, password string) (*Session, error)

	// Register creates a user with a bcrypt password hash
	Register(ctx context.Context, email, password, name string) (*domain.User, error)

	// ValidateSessionToken parses a session token issued by Login
	ValidateSessionToken(tokenString string) (*Claims, error)

	// GetUserByID retrieves a user by ID
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
}

// Session is a signed-in user and their session token
type Session struct {
	User      *domain.User `json:"user"`
	Token     string       `json:"-"`
	ExpiresIn int64        `json:"expiresIn"` // seconds
}

// Claims represents JWT claims
type Claims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// credentials is validated before any lookup
type credentials struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

// authService implements AuthService
type authService struct {
	userRepo   repository.UserRepository
	validate   *validator.Validate
	log        *zap.Logger
	jwtSecret  []byte
	sessionTTL time.Duration
	now        func() time.Time
}

// AuthServiceConfig holds configuration for auth service
type AuthServiceConfig struct {
	UserRepo   repository.UserRepository
	Logger     *zap.Logger
	JWTSecret  string
	SessionTTL time.Duration
	Now        func() time.Time
}

// NewAuthService creates a new auth service
func NewAuthService(config AuthServiceConfig) AuthService {
	s := &authService{
		userRepo:   config.UserRepo,
		validate:   validator.New(),
		log:        config.Logger,
		jwtSecret:  []byte(config.JWTSecret),
		sessionTTL: config.SessionTTL,
		now:        config.Now,
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	if s.sessionTTL <= 0 {
		s.sessionTTL = 24 * time.Hour
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Authorize authenticates a user with email and password
func (s *authService) Authorize(ctx context.Context, email, password string) (*domain.User, error) {
	creds := credentials{Email: strings.TrimSpace(email), Password: password}
	if err := s.validate.Struct(creds); err != nil {
		return nil, nil
	}

	// Get user by email with password hash
	user, err := s.userRepo.GetUserByEmailWithPassword(ctx, creds.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, nil
		}
		s.log.Error("Failed to fetch user", zap.Error(err))
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}

	// Check if user has a password
	if user.PasswordHash == "" {
		return nil, nil
	}

	// Verify password
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)); err != nil {
		return nil, nil
	}

	return user, nil
}

// Login authenticates a user and generates a session token
func (s *authService) Login(ctx context.Context, email, password string) (*Session, error) {
	user, err := s.Authorize(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if user == nil {
		s.log.Info("Invalid credentials")
		return nil, ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &Session{
		User:      user,
		Token:     token,
		ExpiresIn: int64(s.sessionTTL.Seconds()),
	}, nil
}

// Register creates a new user with email and password
func (s *authService) Register(ctx context.Context, email, password, name string) (*domain.User, error) {
	creds := credentials{Email: strings.TrimSpace(email), Password: password}
	if err := s.validate.Struct(creds); err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", err)
	}

	// Check if user already exists
	existingUser, err := s.userRepo.GetUserByEmailWithPassword(ctx, creds.Email)
	switch {
	case err == nil && existingUser != nil:
		return nil, ErrUserAlreadyExists
	case err != nil && !errors.Is(err, repository.ErrUserNotFound):
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	// Hash the password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Email:        creds.Email,
		Name:         name,
		PasswordHash: string(hashedPassword),
	}

	if err := s.userRepo.CreateUserWithPassword(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// generateToken signs a session token for user
func (s *authService) generateToken(user *domain.User) (string, error) {
	if len(s.jwtSecret) == 0 {
		return "", errors.New("jwt secret is not configured")
	}

	now := s.now()
	claims := &Claims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.sessionTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   user.ID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// ValidateSessionToken validates and parses a session token
func (s *authService) ValidateSessionToken(tokenString string) (*Claims, error) {
	if len(s.jwtSecret) == 0 || tokenString == "" {
		return nil, ErrInvalidSession
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	}, jwt.WithTimeFunc(s.now))

	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSession, err)
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidSession
}

// GetUserByID retrieves a user by ID
func (s *authService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.GetUserByID(ctx, userID)
}
