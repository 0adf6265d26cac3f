// Package server provides the HTTP REST API for the job tracker.
package server

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jonathan/jobtrack/internal/config"
	"github.com/jonathan/jobtrack/internal/db"
)

// UserService provides business logic for account operations.
type UserService struct {
	store          UserStore
	passwordConfig *config.PasswordConfig
}

// NewUserService creates a new UserService with the given dependencies.
func NewUserService(store UserStore, passwordConfig *config.PasswordConfig) *UserService {
	return &UserService{
		store:          store,
		passwordConfig: passwordConfig,
	}
}

// Register creates a new user with a bcrypt-hashed password.
func (s *UserService) Register(ctx context.Context, req *RegisterRequest) (*db.User, error) {
	exists, err := s.store.CheckEmailExists(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if exists {
		return nil, &ErrEmailAlreadyExists{Email: req.Email}
	}

	passwordHash, err := s.passwordConfig.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	input := db.UserInput{
		Name:     req.Name,
		LastName: req.LastName,
		Email:    req.Email,
		Location: req.Location,
	}
	userID, err := s.store.CreateUser(ctx, input, passwordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve created user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("created user not found: %s", userID)
	}

	return user, nil
}

// Login authenticates a user by email and password.
func (s *UserService) Login(ctx context.Context, req *LoginRequest) (*db.User, error) {
	user, err := s.store.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	// Same generic error whether the user is unknown or the password is
	// wrong.
	if user == nil {
		return nil, &ErrInvalidCredentials{}
	}
	if !s.passwordConfig.VerifyPassword(req.Password, user.PasswordHash) {
		return nil, &ErrInvalidCredentials{}
	}

	return user, nil
}

// UpdateProfile updates a user's profile fields.
func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *UpdateUserRequest) (*db.User, error) {
	input := db.UserInput{
		Name:     req.Name,
		LastName: req.LastName,
		Email:    req.Email,
		Location: req.Location,
	}

	user, err := s.store.UpdateUser(ctx, userID, input)
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	if user == nil {
		return nil, &ErrUserNotFound{UserID: userID}
	}

	return user, nil
}
