package dto

import "github.com/DjordjeVuckovic/nouvel-ayiti/internal/domain"

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type UserResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"isAdmin"`
}

func NewUserResponse(u *domain.User) UserResponse {
	return UserResponse{ID: u.ID, Username: u.Username, IsAdmin: u.IsAdmin}
}

type LoginResponse struct {
	UserResponse
	Token string `json:"token"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
