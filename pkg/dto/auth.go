package dto

import "github.com/google/uuid"

type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SigninRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type TokenSigninRequest struct {
	Token string `json:"token"`
}

type AuthResponse struct {
	Message string    `json:"message"`
	UserUID uuid.UUID `json:"userUID"`
	Token   string    `json:"token"`
}
