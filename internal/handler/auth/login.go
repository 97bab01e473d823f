// File: internal/handler/auth/login.go
package auth

import (
	"errors"
	"net/http"

	"mamacare/internal/api"
	"mamacare/internal/database"
	"mamacare/internal/service"
	"mamacare/internal/store"

	"github.com/labstack/echo/v4"
)

// LoginHandler 使用 Email/Password 驗證並回傳令牌組
// @Summary     登入使用者
// @Description 以 Email 與密碼驗證，回傳去敏使用者與存取/更新令牌
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body api.LoginRequest true "登入資料"
// @Success     200 {object} api.Response
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /auth/login [post]
func LoginHandler(db database.DB, tokens *service.Tokens) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.LoginRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.Error("invalid request payload"))
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{
				Success: false,
				Error:   "Validation failed",
				Details: api.ValidationDetails(err),
			})
		}

		ctx := c.Request().Context()

		// 查無帳號與密碼錯誤共用同一訊息
		user, err := getUserByEmail(ctx, db, req.Email)
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusUnauthorized, api.Error("Invalid credentials"))
		}
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.Error("Internal server error"))
		}

		if !user.IsActive {
			return c.JSON(http.StatusUnauthorized, api.Error("Account is deactivated. Please contact support."))
		}

		if err := authenticateUser(ctx, *user, req.Password); err != nil {
			return c.JSON(http.StatusUnauthorized, api.Error("Invalid credentials"))
		}

		access, refresh, err := issueTokenPair(tokens, user)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.Error("failed to issue token"))
		}

		if err := touchLastLogin(ctx, db, user.ID); err != nil {
			c.Logger().Errorf("touch last login: %v", err)
		}

		return c.JSON(http.StatusOK, api.OK("Login successful", api.AuthData{
			User: api.NewUserResponse(user),
			Tokens: api.TokenPair{
				AccessToken:  access,
				RefreshToken: refresh,
				ExpiresIn:    int64(tokens.AccessTTL().Seconds()),
			},
		}))
	}
}
