// File: internal/handler/auth/auth.go
package auth

import (
	"mamacare/internal/model"
	"mamacare/internal/service"
	"mamacare/internal/store"
)

// 測試以替換這些變數的方式隔離 service 與 store
var (
	hashPassword       = service.HashPassword
	authenticateUser   = service.AuthenticateUser
	getUserByEmail     = store.GetUserByEmail
	getUserByID        = store.GetUserByID
	countUsers         = store.CountUsers
	createUser         = store.CreateUser
	updateUserProfile  = store.UpdateUserProfile
	updateUserPassword = store.UpdateUserPassword
	setUserActive      = store.SetUserActive
	touchLastLogin     = store.TouchLastLogin
)

// issueTokenPair 簽發存取與更新令牌
func issueTokenPair(tokens *service.Tokens, user *model.User) (access, refresh string, err error) {
	access, err = tokens.IssueAccessToken(*user)
	if err != nil {
		return "", "", err
	}
	refresh, err = tokens.IssueRefreshToken(user.ID)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}
