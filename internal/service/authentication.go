// File: internal/service/authentication.go
package service

import (
	"context"
	"errors"

	"mamacare/internal/model"
)

// ErrInvalidCredentials 帳密不符；登入與改密碼流程共用，避免洩漏原因
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthenticateUser 比對使用者密碼，成功回傳 nil
func AuthenticateUser(ctx context.Context, user model.User, password string) error {
	if err := ComparePassword(user.PasswordHash, password); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}
