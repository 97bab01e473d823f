// File: internal/handler/auth/password.go
package auth

import (
	"net/http"

	"mamacare/internal/api"
	"mamacare/internal/database"
	"mamacare/internal/middleware"

	"github.com/labstack/echo/v4"
)

// ChangePasswordHandler 變更當前使用者密碼
// @Summary     Change own password
// @Description 驗證現行密碼後更新為新密碼；變更後既有存取令牌全部失效
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body api.ChangePasswordRequest true "密碼變更資料"
// @Success     200 {object} api.Response
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /auth/password [put]
func ChangePasswordHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, api.Error("Authentication required"))
		}

		var req api.ChangePasswordRequest
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

		if err := authenticateUser(ctx, *user, req.CurrentPassword); err != nil {
			return c.JSON(http.StatusBadRequest, api.Error("Current password is incorrect"))
		}

		// 新密碼不得與現行密碼相同
		if err := authenticateUser(ctx, *user, req.NewPassword); err == nil {
			return c.JSON(http.StatusBadRequest, api.Error("New password must be different from the old password"))
		}

		hash, err := hashPassword(req.NewPassword)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.Error("failed to hash password"))
		}

		// UpdateUserPassword 會蓋上 password_changed_at，
		// 之前簽發的存取令牌自此被中介層拒絕
		if err := updateUserPassword(ctx, db, user.ID, hash); err != nil {
			return c.JSON(http.StatusInternalServerError, api.Error("Internal server error"))
		}

		return c.JSON(http.StatusOK, api.OK("Password changed successfully", nil))
	}
}
