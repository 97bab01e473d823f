// File: internal/handler/auth/profile.go
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

// GetProfileHandler 取得當前使用者資料
// @Summary     Get current user profile
// @Description 回傳當前使用者的去敏資料
// @Tags        auth
// @Produce     json
// @Success     200 {object} api.Response
// @Failure     401 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /auth/profile [get]
func GetProfileHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, api.Error("Authentication required"))
		}
		return c.JSON(http.StatusOK, api.OK("", api.NewUserResponse(user)))
	}
}

// UpdateProfileHandler 更新姓名與 Email
// @Summary     Update current user profile
// @Description 更新姓名或 Email（Email 轉小寫，撞到他人時回 409）
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body api.UpdateProfileRequest true "更新資料"
// @Success     200 {object} api.Response
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     409 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /auth/profile [put]
func UpdateProfileHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, api.Error("Authentication required"))
		}

		var req api.UpdateProfileRequest
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

		name := user.Name
		if req.Name != "" {
			name = req.Name
		}
		email := user.Email
		if req.Email != "" {
			email = req.Email
		}

		ctx := c.Request().Context()

		// Email 若變更需確認未被其他帳號使用
		if email != user.Email {
			if existing, err := getUserByEmail(ctx, db, email); err == nil && existing.ID != user.ID {
				return c.JSON(http.StatusConflict, api.Error("Email already in use"))
			} else if err != nil && !errors.Is(err, store.ErrNotFound) {
				return c.JSON(http.StatusInternalServerError, api.Error("Internal server error"))
			}
		}

		if err := updateUserProfile(ctx, db, user.ID, name, email); err != nil {
			if errors.Is(err, store.ErrDuplicateEmail) {
				return c.JSON(http.StatusConflict, api.Error("Email already in use"))
			}
			if errors.Is(err, store.ErrNotFound) {
				return c.JSON(http.StatusNotFound, api.Error("User not found"))
			}
			return c.JSON(http.StatusInternalServerError, api.Error("Internal server error"))
		}

		updated, err := getUserByID(ctx, db, user.ID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.Error("Internal server error"))
		}

		return c.JSON(http.StatusOK, api.OK("Profile updated successfully", api.NewUserResponse(updated)))
	}
}
