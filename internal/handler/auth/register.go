// File: internal/handler/auth/register.go
package auth

import (
	"errors"
	"net/http"

	"mamacare/internal/api"
	"mamacare/internal/database"
	"mamacare/internal/model"
	"mamacare/internal/service"
	"mamacare/internal/store"

	"github.com/labstack/echo/v4"
)

// RegisterHandler 註冊新帳號
// @Summary     Register a new user
// @Description 建立新帳號並回傳使用者與令牌組。系統第一個帳號自動成為 admin（bootstrap 策略）。
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body api.RegisterRequest true "註冊資料"
// @Success     201 {object} api.Response
// @Failure     400 {object} api.ErrorResponse
// @Failure     409 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /auth/register [post]
func RegisterHandler(db database.DB, tokens *service.Tokens) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.RegisterRequest
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

		if _, err := getUserByEmail(ctx, db, req.Email); err == nil {
			return c.JSON(http.StatusConflict, api.Error("User with this email already exists"))
		} else if !errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusInternalServerError, api.Error("Internal server error"))
		}

		// 第一個使用者成為 admin，之後預設為 user
		total, err := countUsers(ctx, db)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.Error("Internal server error"))
		}
		role := model.RoleUser
		if total == 0 {
			role = model.RoleAdmin
		}

		hash, err := hashPassword(req.Password)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.Error("failed to hash password"))
		}

		user, err := createUser(ctx, db, &model.User{
			Name:         req.Name,
			Email:        req.Email,
			PasswordHash: hash,
			Role:         role,
		})
		if err != nil {
			if errors.Is(err, store.ErrDuplicateEmail) {
				return c.JSON(http.StatusConflict, api.Error("User with this email already exists"))
			}
			return c.JSON(http.StatusInternalServerError, api.Error("Internal server error"))
		}

		access, refresh, err := issueTokenPair(tokens, user)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.Error("failed to issue token"))
		}

		if err := touchLastLogin(ctx, db, user.ID); err != nil {
			c.Logger().Errorf("touch last login: %v", err)
		}

		return c.JSON(http.StatusCreated, api.OK("User registered successfully", api.AuthData{
			User: api.NewUserResponse(user),
			Tokens: api.TokenPair{
				AccessToken:  access,
				RefreshToken: refresh,
				ExpiresIn:    int64(tokens.AccessTTL().Seconds()),
			},
		}))
	}
}
