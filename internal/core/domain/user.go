package domain

import (
	"errors"
	"time"
)

var ErrEmailTaken = errors.New("user already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUserNotFound = errors.New("user not found")

// User models an account in the system. Email is the sole identity key;
// there is no surrogate id. PasswordHash is excluded from every JSON
// rendering so no response shape can leak it.
type User struct {
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"full_name"`
	CreatedAt    time.Time `json:"created_at"`
}
