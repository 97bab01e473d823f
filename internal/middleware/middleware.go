// File: internal/middleware/middleware.go
package middleware

import (
	"errors"
	"net/http"
	"strconv"

	"mamacare/internal/api"
	"mamacare/internal/database"
	"mamacare/internal/model"
	"mamacare/internal/service"
	"mamacare/internal/store"

	"github.com/labstack/echo/v4"
)

const (
	// ContextUserKey 認證成功後掛在 context 的 *model.User
	ContextUserKey = "user"
	// ContextUserIDKey 認證成功後掛在 context 的使用者 ID
	ContextUserIDKey = "userId"
)

var getUserByID = store.GetUserByID

// CurrentUser 取出中介層掛上的使用者，未認證時 ok 為 false
func CurrentUser(c echo.Context) (*model.User, bool) {
	u, ok := c.Get(ContextUserKey).(*model.User)
	return u, ok && u != nil
}

// CurrentUserID 取出中介層掛上的使用者 ID
func CurrentUserID(c echo.Context) (int, bool) {
	id, ok := c.Get(ContextUserIDKey).(int)
	return id, ok
}

// resolveUser 走完整條認證鏈：token → claims → user → is_active → 密碼時間戳。
// 任一步失敗回傳對應的 HTTP 狀態與訊息。
func resolveUser(c echo.Context, db database.DB, tokens *service.Tokens) (*model.User, int, string) {
	raw := service.ExtractToken(c.Request().Header.Get("Authorization"))
	if raw == "" {
		return nil, http.StatusUnauthorized, "Access token required"
	}

	claims, err := tokens.Verify(raw)
	if err != nil {
		// 對外僅區分過期與格式錯誤，其餘一律通用訊息
		switch {
		case errors.Is(err, service.ErrTokenExpired):
			return nil, http.StatusForbidden, "Token has expired"
		case errors.Is(err, service.ErrTokenMalformed):
			return nil, http.StatusForbidden, "Invalid token format"
		default:
			return nil, http.StatusForbidden, "Invalid or expired token"
		}
	}

	// refresh token 不得用於存取 API
	if claims.Type == service.TokenTypeRefresh {
		return nil, http.StatusForbidden, "Invalid or expired token"
	}

	user, err := getUserByID(c.Request().Context(), db, claims.UserID)
	if err != nil {
		return nil, http.StatusUnauthorized, "User no longer exists"
	}

	if !user.IsActive {
		return nil, http.StatusUnauthorized, "User account is deactivated"
	}

	var issuedAt int64
	if claims.IssuedAt != nil {
		issuedAt = claims.IssuedAt.Unix()
	}
	if user.ChangedPasswordAfter(issuedAt) {
		return nil, http.StatusUnauthorized, "Password was changed recently. Please log in again."
	}

	return user, 0, ""
}

// RequireAuth 驗證 bearer token 並將使用者掛上 context
func RequireAuth(db database.DB, tokens *service.Tokens) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, status, msg := resolveUser(c, db, tokens)
			if user == nil {
				return c.JSON(status, api.Error(msg))
			}
			c.Set(ContextUserKey, user)
			c.Set(ContextUserIDKey, user.ID)
			return next(c)
		}
	}
}

// OptionalAuth 有合法 token 時掛上使用者，否則不帶身分繼續。
// 供公開但可個人化的端點使用；目前的路由表沒有這類端點。
func OptionalAuth(db database.DB, tokens *service.Tokens) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if user, _, _ := resolveUser(c, db, tokens); user != nil {
				c.Set(ContextUserKey, user)
				c.Set(ContextUserIDKey, user.ID)
			}
			return next(c)
		}
	}
}

// RequireRoles 依角色允許清單授權，未認證回 401、角色不符回 403
func RequireRoles(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := CurrentUser(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, api.Error("Authentication required"))
			}
			for _, role := range roles {
				if user.Role == role {
					return next(c)
				}
			}
			return c.JSON(http.StatusForbidden, api.Error("Insufficient permissions"))
		}
	}
}

// RequireOwnership 路徑參數必須等於認證使用者的 ID。
// 疫苗與諮詢的擁有權檢查需先載入資源，因此在 handler 內完成；
// 此中介層供以 :userId 入路徑的自助端點使用。
func RequireOwnership(param string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := CurrentUser(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, api.Error("Authentication required"))
			}
			resourceID := c.Param(param)
			if resourceID == "" {
				resourceID = c.Param("userId")
			}
			if resourceID != strconv.Itoa(user.ID) {
				return c.JSON(http.StatusForbidden, api.Error("Access denied. You can only access your own resources."))
			}
			return next(c)
		}
	}
}
