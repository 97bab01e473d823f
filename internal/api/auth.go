// File: internal/api/auth.go
package api

import (
	"time"

	"mamacare/internal/model"
)

// swagger:model api.RegisterRequest
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=50,personname" example:"Alice Wang"`
	Email    string `json:"email" validate:"required,email" example:"alice@example.com"`
	Password string `json:"password" validate:"required,strongpassword" example:"Secret123"`
}

// swagger:model api.LoginRequest
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email" example:"alice@example.com"`
	Password string `json:"password" validate:"required" example:"Secret123"`
}

// swagger:model api.RefreshRequest
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// swagger:model api.UpdateProfileRequest
type UpdateProfileRequest struct {
	Name  string `json:"name" validate:"omitempty,min=2,max=50,personname" example:"Alice Wang"`
	Email string `json:"email" validate:"omitempty,email" example:"alice@example.com"`
}

// swagger:model api.ChangePasswordRequest
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,strongpassword"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=NewPassword"`
}

// TokenPair 登入/註冊回傳的令牌組
// swagger:model api.TokenPair
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken,omitempty"`
	// ExpiresIn 存取令牌效期（秒）
	ExpiresIn int64 `json:"expiresIn"`
}

// UserResponse 去敏後的使用者資料，永不包含密碼哈希
// swagger:model api.UserResponse
type UserResponse struct {
	ID        int        `json:"id" example:"1"`
	Name      string     `json:"name" example:"Alice Wang"`
	Email     string     `json:"email" example:"alice@example.com"`
	Role      string     `json:"role" example:"user"`
	IsActive  bool       `json:"is_active" example:"true"`
	LastLogin *time.Time `json:"last_login,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// NewUserResponse 由 model.User 組裝 UserResponse
func NewUserResponse(u *model.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		IsActive:  u.IsActive,
		LastLogin: u.LastLogin,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// AuthData 註冊與登入的回應資料
// swagger:model api.AuthData
type AuthData struct {
	User   UserResponse `json:"user"`
	Tokens TokenPair    `json:"tokens"`
}
