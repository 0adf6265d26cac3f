// Package server provides the HTTP REST API for the job tracker.
package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/jobtrack/internal/db"
	"github.com/jonathan/jobtrack/internal/server/middleware"
)

// RegisterRequest is the request body for user registration.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=3,max=50"`
	LastName string `json:"lastName" validate:"omitempty,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Location string `json:"location" validate:"omitempty,max=100"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest is the request body for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateUserRequest is the request body for profile updates. All fields are
// required, matching the frontend's update form.
type UpdateUserRequest struct {
	Name     string `json:"name" validate:"required,min=3,max=50"`
	LastName string `json:"lastName" validate:"required,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Location string `json:"location" validate:"required,max=100"`
}

// UserPayload is the public view of a user returned by the auth endpoints.
type UserPayload struct {
	Name     string `json:"name"`
	LastName string `json:"lastName"`
	Email    string `json:"email"`
	Location string `json:"location"`
}

// AuthResponse pairs the public user view with a fresh token.
type AuthResponse struct {
	User  UserPayload `json:"user"`
	Token string      `json:"token"`
}

func userPayload(u *db.User) UserPayload {
	return UserPayload{
		Name:     u.Name,
		LastName: u.LastName,
		Email:    u.Email,
		Location: u.Location,
	}
}

// handleRegister handles user registration requests.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	ctx, cancel := s.requestContext(r)
	defer cancel()

	user, err := s.userService.Register(ctx, &req)
	if err != nil {
		s.serviceError(w, err)
		return
	}

	token, err := s.jwtService.GenerateToken(user.ID)
	if err != nil {
		s.serviceError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusCreated, AuthResponse{User: userPayload(user), Token: token})
}

// handleLogin handles user login requests.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	ctx, cancel := s.requestContext(r)
	defer cancel()

	user, err := s.userService.Login(ctx, &req)
	if err != nil {
		s.serviceError(w, err)
		return
	}

	token, err := s.jwtService.GenerateToken(user.ID)
	if err != nil {
		s.serviceError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, AuthResponse{User: userPayload(user), Token: token})
}

// handleUpdateUser handles profile update requests. A fresh token is issued
// so the client can keep using the updated identity without re-login.
func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.GetPrincipal(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "authentication invalid")
		return
	}

	var req UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	ctx, cancel := s.requestContext(r)
	defer cancel()

	user, err := s.userService.UpdateProfile(ctx, principal.UserID, &req)
	if err != nil {
		s.serviceError(w, err)
		return
	}

	token, err := s.jwtService.GenerateToken(user.ID)
	if err != nil {
		s.serviceError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, AuthResponse{User: userPayload(user), Token: token})
}

// extractValidationErrors extracts a human message from validator errors.
func extractValidationErrors(err error) string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		if len(validationErrors) > 0 {
			// Return first validation error for simplicity
			ve := validationErrors[0]
			return fmt.Sprintf("validation error: %s - %s", ve.Field(), ve.Tag())
		}
	}
	return "validation error: invalid request"
}
