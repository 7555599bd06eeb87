package dto

import "github.com/fernandoludvig/finance-api/internal/models"

type RegisterRequest struct {
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Email         string `json:"email"`
	Password      string `json:"password"`
	FavoriteColor string `json:"favoriteColor"`
	Birthday      string `json:"birthday"`
	PhoneNumber   string `json:"phoneNumber,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TestTokenRequest struct {
	UserID string `json:"userId"`
}

type AuthResponse struct {
	Token  string       `json:"token"`
	UserID string       `json:"userId"`
	User   *models.User `json:"user,omitempty"`
}

// Response is the envelope every endpoint returns.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Count   *int   `json:"count,omitempty"`
	Error   string `json:"error,omitempty"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
}
