package dto

import "time"

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest is the body of POST /auth/register and POST /usuarios.
type RegisterRequest struct {
	Nombre   string `json:"nombre" binding:"required" validate:"max=150"`
	Username string `json:"username" binding:"required" validate:"username"`
	Password string `json:"password" binding:"required" validate:"max=72"`
}

// LoginResponse carries the bearer token the client sends back.
type LoginResponse struct {
	Token string      `json:"token"`
	User  UserSummary `json:"user"`
}

// UserSummary is the identity shown in the client's header bar.
type UserSummary struct {
	ID     uint   `json:"id"`
	Nombre string `json:"nombre"`
}

// UserInfo is a user without its password hash.
type UserInfo struct {
	ID        uint      `json:"id"`
	Nombre    string    `json:"nombre"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}
