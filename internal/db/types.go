package db

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered account
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	LastName     string    `json:"lastName"`
	Email        string    `json:"email"`
	Location     string    `json:"location"`
	PasswordHash string    `json:"-" db:"password_hash"` // Never serialize to JSON
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Job represents one tracked job application. CreatedBy is immutable after
// creation; every read and write of a Job is scoped by it.
type Job struct {
	ID        uuid.UUID `json:"_id"`
	CreatedBy uuid.UUID `json:"createdBy"`
	Company   string    `json:"company"`
	Position  string    `json:"position"`
	Status    string    `json:"status"`  // pending, interview, declined
	JobType   string    `json:"jobType"` // full-time, part-time, internship, contract
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// JobInput holds the writable fields of a job record.
type JobInput struct {
	Company  string
	Position string
	Status   string
	JobType  string
}

// UserInput holds the writable profile fields of a user.
type UserInput struct {
	Name     string
	LastName string
	Email    string
	Location string
}
