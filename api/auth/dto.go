package auth

import "time"

type User struct {
	ID           string    `json:"id"`
	Kind         string    `json:"kind"`
	Email        string    `json:"email,omitempty"`
	DeviceKey    string    `json:"device_key,omitempty"`
	PasswordHash string    `json:"-"`
	GoogleID     string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

type CreateAccountParams struct {
	Email        string
	PasswordHash string
	GoogleID     string
}

// Request bodies
type CreateUserBody struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"password_confirmation" validate:"required,eqfield=Password"`
}

type LoginUserBody struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type GuestSessionBody struct {
	DeviceKey string `json:"device_key" validate:"omitempty,max=128"`
}

type GoogleAuthRequestBody struct {
	IDToken string `json:"id_token" validate:"required"`
}

type SessionResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}
