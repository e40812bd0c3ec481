package service

import (
	"context"
	"fmt"

	"github.com/alexedwards/argon2id"

	"github.com/voyagehub/travel-bookings/internal/domain"
	"github.com/voyagehub/travel-bookings/internal/platform/auth"
	"github.com/voyagehub/travel-bookings/internal/repo/postgres"
	"github.com/voyagehub/travel-bookings/pkg/logger"
)

type AuthService interface {
	Signup(ctx context.Context, req *domain.SignupRequest) (*domain.AuthResponse, error)
	Login(ctx context.Context, req *domain.LoginRequest) (*domain.AuthResponse, error)
	Profile(ctx context.Context, userID int64) (*domain.User, error)
}

type authService struct {
	users  postgres.UserRepository
	tokens *auth.Tokens
}

func NewAuthService(users postgres.UserRepository, tokens *auth.Tokens) AuthService {
	return &authService{users: users, tokens: tokens}
}

func (s *authService) Signup(ctx context.Context, req *domain.SignupRequest) (*domain.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	role := domain.RoleUser
	if req.Role != "" {
		role, _ = domain.ParseRole(req.Role)
	}

	existing, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrEmailTaken
	}

	passwordHash, err := argon2id.CreateHash(req.Password, argon2id.DefaultParams)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	// The unique index on users.email backstops the check above if two
	// signups race.
	user, err := s.users.Create(ctx, req.Email, passwordHash, role)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	logger.InfoContext(ctx, "user registered", "user_id", user.ID, "role", user.Role)

	return &domain.AuthResponse{
		Message: "User created successfully",
		Token:   token,
		User:    user.ToIdentity(),
	}, nil
}

func (s *authService) Login(ctx context.Context, req *domain.LoginRequest) (*domain.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}

	match, err := argon2id.ComparePasswordAndHash(req.Password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if !match {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &domain.AuthResponse{
		Message: "Login successful",
		Token:   token,
		User:    user.ToIdentity(),
	}, nil
}

func (s *authService) Profile(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user: %w", domain.ErrNotFound)
	}
	return user, nil
}
