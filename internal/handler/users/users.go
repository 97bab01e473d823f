// File: internal/handler/users/users.go
package users

import (
	"errors"
	"net/http"
	"strconv"

	"mamacare/internal/api"
	"mamacare/internal/database"
	"mamacare/internal/middleware"
	"mamacare/internal/model"
	"mamacare/internal/store"

	"github.com/labstack/echo/v4"
)

var (
	listUsers      = store.ListUsers
	getUserByID    = store.GetUserByID
	updateUserRole = store.UpdateUserRole
	deleteUser     = store.DeleteUser
)

// ListUsersHandler 分頁列出全部使用者
// @Summary     List users
// @Description 依建立時間新到舊分頁列出使用者（僅 admin）
// @Tags        users
// @Produce     json
// @Param       page  query int false "頁碼（預設 1）"
// @Param       limit query int false "每頁筆數（預設 10）"
// @Success     200 {object} api.Response
// @Failure     401 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /auth/users [get]
func ListUsersHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		page, err := strconv.Atoi(c.QueryParam("page"))
		if err != nil || page < 1 {
			page = 1
		}
		limit, err := strconv.Atoi(c.QueryParam("limit"))
		if err != nil || limit < 1 {
			limit = 10
		}

		list, total, err := listUsers(c.Request().Context(), db, page, limit)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.Error("Internal server error"))
		}

		totalPages := (total + limit - 1) / limit
		out := make([]api.UserResponse, 0, len(list))
		for i := range list {
			out = append(out, api.NewUserResponse(&list[i]))
		}

		return c.JSON(http.StatusOK, api.OK("", api.UserListData{
			Users: out,
			Pagination: api.Pagination{
				CurrentPage: page,
				TotalPages:  totalPages,
				TotalUsers:  total,
				HasNextPage: page < totalPages,
				HasPrevPage: page > 1,
			},
		}))
	}
}

// GetUserHandler 取得單一使用者
// @Summary     Get a user by ID
// @Description 透過 ID 查詢使用者（僅 admin）
// @Tags        users
// @Produce     json
// @Param       userId path int true "使用者 ID"
// @Success     200 {object} api.Response
// @Failure     400 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /auth/users/{userId} [get]
func GetUserHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("userId"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.Error("invalid user ID"))
		}

		user, err := getUserByID(c.Request().Context(), db, id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return c.JSON(http.StatusNotFound, api.Error("User not found"))
			}
			return c.JSON(http.StatusInternalServerError, api.Error("Internal server error"))
		}

		return c.JSON(http.StatusOK, api.OK("", api.NewUserResponse(user)))
	}
}

// UpdateUserRoleHandler 變更使用者角色
// @Summary     Update a user's role
// @Description 將角色設為 user 或 admin（僅 admin）
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       userId  path int                   true "使用者 ID"
// @Param       request body api.UpdateRoleRequest true "角色"
// @Success     200 {object} api.Response
// @Failure     400 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /auth/users/{userId}/role [put]
func UpdateUserRoleHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("userId"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.Error("invalid user ID"))
		}

		var req api.UpdateRoleRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.Error("invalid request payload"))
		}
		if !model.ValidRole(req.Role) {
			return c.JSON(http.StatusBadRequest, api.Error(`Invalid role. Must be either "user" or "admin"`))
		}

		ctx := c.Request().Context()
		if err := updateUserRole(ctx, db, id, req.Role); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return c.JSON(http.StatusNotFound, api.Error("User not found"))
			}
			return c.JSON(http.StatusInternalServerError, api.Error("Internal server error"))
		}

		user, err := getUserByID(ctx, db, id)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.Error("Internal server error"))
		}

		return c.JSON(http.StatusOK, api.OK("User role updated successfully", api.NewUserResponse(user)))
	}
}

// DeleteUserHandler 刪除使用者
// @Summary     Delete a user
// @Description 刪除指定使用者；不得刪除自己的帳號（僅 admin）
// @Tags        users
// @Produce     json
// @Param       userId path int true "使用者 ID"
// @Success     200 {object} api.Response
// @Failure     400 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /auth/users/{userId} [delete]
func DeleteUserHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("userId"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.Error("invalid user ID"))
		}

		if me, ok := middleware.CurrentUserID(c); ok && me == id {
			return c.JSON(http.StatusBadRequest, api.Error("Cannot delete your own account"))
		}

		if err := deleteUser(c.Request().Context(), db, id); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return c.JSON(http.StatusNotFound, api.Error("User not found"))
			}
			return c.JSON(http.StatusInternalServerError, api.Error("Internal server error"))
		}

		return c.JSON(http.StatusOK, api.OK("User deleted successfully", nil))
	}
}
