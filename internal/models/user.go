package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// RoleAdmin gates every mutation endpoint on customers and locations.
const RoleAdmin = "ADMIN"

// RoleUser is the default grant for newly registered back-office accounts.
const RoleUser = "USER"

// User is a back-office account. Users exist only for the auth boundary and
// are not part of the travel domain model.
type User struct {
	ID           int64     `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Roles        []string  `json:"roles"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// JwtCustomClaims is the claims payload carried by issued tokens. Only the
// subject matters; role grants are loaded from the database per request.
type JwtCustomClaims struct {
	jwt.RegisteredClaims
}

// LoginRequest is the body for /api/auth/login. The identifier may be either
// a username or an email address.
type LoginRequest struct {
	UsernameOrEmail string `json:"usernameOrEmail" validate:"required"`
	Password        string `json:"password" validate:"required"`
}

// AuthResponse is the successful login body.
type AuthResponse struct {
	Token string `json:"token"`
	Type  string `json:"type"`
}

// RegisterUserRequest is the admin-only body for creating a back-office
// account. The temporary password is generated server-side and mailed.
type RegisterUserRequest struct {
	Username string   `json:"username" validate:"required,min=3,max=50"`
	Email    string   `json:"email" validate:"required,email"`
	Roles    []string `json:"roles" validate:"omitempty,dive,oneof=ADMIN USER"`
}
