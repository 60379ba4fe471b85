package auth

import "time"

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// UserContext is the request-scoped identity attached by the auth middleware.
type UserContext struct {
	UserID string
	Email  string
	Name   string
	Role   string
}
