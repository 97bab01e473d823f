// File: internal/handler/auth/account.go
package auth

import (
	"errors"
	"net/http"

	"mamacare/internal/api"
	"mamacare/internal/database"
	"mamacare/internal/middleware"
	"mamacare/internal/store"

	"github.com/labstack/echo/v4"
)

// LogoutHandler 無狀態登出，僅回覆確認
// @Summary     Logout
// @Description 令牌為無狀態 JWT，登出僅回覆確認，由客戶端丟棄令牌
// @Tags        auth
// @Produce     json
// @Success     200 {object} api.Response
// @Security    ApiKeyAuth
// @Router      /auth/logout [post]
func LogoutHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, api.OK("Logged out successfully", nil))
	}
}

// DeactivateHandler 停用自己的帳號
// @Summary     Deactivate own account
// @Description 設定 is_active=false；已簽發未過期的令牌由認證中介層的 is_active 檢查擋下
// @Tags        auth
// @Produce     json
// @Success     200 {object} api.Response
// @Failure     401 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /auth/deactivate [delete]
func DeactivateHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, api.Error("Authentication required"))
		}

		if err := setUserActive(c.Request().Context(), db, userID, false); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return c.JSON(http.StatusNotFound, api.Error("User not found"))
			}
			return c.JSON(http.StatusInternalServerError, api.Error("Internal server error"))
		}

		return c.JSON(http.StatusOK, api.OK("Account deactivated successfully", nil))
	}
}
