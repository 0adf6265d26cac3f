package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const userColumns = "id, name, last_name, email, location, password_hash, created_at, updated_at"

// CreateUser inserts a new user with a hashed password and returns its ID.
func (db *DB) CreateUser(ctx context.Context, input UserInput, passwordHash string) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO users (name, last_name, email, location, password_hash)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		input.Name, input.LastName, input.Email, input.Location, passwordHash,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create user: %w", err)
	}
	return id, nil
}

// GetUser retrieves a user by ID. Returns nil when not found.
func (db *DB) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	var u User
	err := scanUser(db.pool.QueryRow(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = $1", id,
	), &u)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &u, nil
}

// GetUserByEmail retrieves a user by email. Returns nil when not found.
func (db *DB) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := scanUser(db.pool.QueryRow(ctx,
		"SELECT "+userColumns+" FROM users WHERE email = $1", email,
	), &u)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return &u, nil
}

// CheckEmailExists reports whether a user with the given email is registered.
func (db *DB) CheckEmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := db.pool.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)", email,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check email existence: %w", err)
	}
	return exists, nil
}

// UpdateUser updates a user's profile fields. Returns nil when not found.
func (db *DB) UpdateUser(ctx context.Context, id uuid.UUID, input UserInput) (*User, error) {
	var u User
	err := scanUser(db.pool.QueryRow(ctx,
		`UPDATE users
		 SET name = $2, last_name = $3, email = $4, location = $5, updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+userColumns,
		id, input.Name, input.LastName, input.Email, input.Location,
	), &u)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return &u, nil
}

func scanUser(row pgx.Row, u *User) error {
	return row.Scan(&u.ID, &u.Name, &u.LastName, &u.Email, &u.Location, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
}
