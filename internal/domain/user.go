package domain

import (
	"fmt"
	"strings"
	"time"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleUser, RoleAdmin:
		return Role(s), true
	default:
		return "", false
	}
}

type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Identity is the projection of a user the authentication middleware puts
// into the request context. It never carries the password hash.
type Identity struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

func (u *User) ToIdentity() Identity {
	return Identity{ID: u.ID, Email: u.Email, Role: u.Role}
}

type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Message string   `json:"message"`
	Token   string   `json:"token"`
	User    Identity `json:"user"`
}

func (r *SignupRequest) Validate() error {
	if r.Email == "" || r.Password == "" {
		return fmt.Errorf("%w: email and password are required", ErrValidation)
	}
	if !strings.Contains(r.Email, "@") {
		return fmt.Errorf("%w: invalid email format", ErrValidation)
	}
	if r.Role != "" {
		if _, ok := ParseRole(r.Role); !ok {
			return fmt.Errorf("%w: invalid role %q", ErrValidation, r.Role)
		}
	}
	return nil
}

func (r *LoginRequest) Validate() error {
	if r.Email == "" || r.Password == "" {
		return fmt.Errorf("%w: email and password are required", ErrValidation)
	}
	return nil
}
