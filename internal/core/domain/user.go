package domain

import (
	"errors"
	"time"
)

const (
	RoleUser  = "user"
	RoleAgent = "agent"
	RoleAdmin = "admin"
)

var ErrInvalidInput = errors.New("invalid input")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUnauthorized = errors.New("unauthorized")
var ErrForbidden = errors.New("access forbidden")
var ErrUserExists = errors.New("user already exists")
var ErrUserNotFound = errors.New("user not found")

// ValidRole reports whether role is one of the three enumerated roles.
func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAgent || role == RoleAdmin
}

// User models a registered principal. PasswordHash is never serialized
// and must never appear in logs or responses.
type User struct {
	ID    int64  `json:"id" bson:"_id"`
	Email string `json:"email" bson:"email"`
	// PasswordHash holds the bcrypt digest, never the plaintext.
	PasswordHash string    `json:"-" bson:"password_hash"`
	Role         string    `json:"role" bson:"role"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}
