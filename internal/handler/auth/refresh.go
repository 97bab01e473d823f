// File: internal/handler/auth/refresh.go
package auth

import (
	"net/http"

	"mamacare/internal/api"
	"mamacare/internal/database"
	"mamacare/internal/service"

	"github.com/labstack/echo/v4"
)

// RefreshHandler 以更新令牌換發新的存取令牌
// @Summary     Refresh access token
// @Description 驗證 refresh token 後換發新的存取令牌；更新令牌本身不輪替
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body api.RefreshRequest true "更新令牌"
// @Success     200 {object} api.Response
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Router      /auth/refresh [post]
func RefreshHandler(db database.DB, tokens *service.Tokens) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.RefreshRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.Error("invalid request payload"))
		}
		if req.RefreshToken == "" {
			return c.JSON(http.StatusBadRequest, api.Error("Refresh token is required"))
		}

		claims, err := tokens.Verify(req.RefreshToken)
		if err != nil {
			return c.JSON(http.StatusForbidden, api.Error("Invalid or expired refresh token"))
		}

		// 必須是 refresh 類型，存取令牌不得換發
		if claims.Type != service.TokenTypeRefresh {
			return c.JSON(http.StatusBadRequest, api.Error("Invalid refresh token"))
		}

		user, err := getUserByID(c.Request().Context(), db, claims.UserID)
		if err != nil || !user.IsActive {
			return c.JSON(http.StatusUnauthorized, api.Error("User not found or inactive"))
		}

		access, err := tokens.IssueAccessToken(*user)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.Error("failed to issue token"))
		}

		return c.JSON(http.StatusOK, api.OK("Token refreshed successfully", api.TokenPair{
			AccessToken: access,
			ExpiresIn:   int64(tokens.AccessTTL().Seconds()),
		}))
	}
}
