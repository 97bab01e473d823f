// File: internal/handler/auth/auth_test.go
package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"mamacare/internal/database"
	"mamacare/internal/middleware"
	"mamacare/internal/model"
	"mamacare/internal/service"
	"mamacare/internal/store"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func restore() {
	hashPassword = service.HashPassword
	authenticateUser = service.AuthenticateUser
	getUserByEmail = store.GetUserByEmail
	getUserByID = store.GetUserByID
	countUsers = store.CountUsers
	createUser = store.CreateUser
	updateUserProfile = store.UpdateUserProfile
	updateUserPassword = store.UpdateUserPassword
	setUserActive = store.SetUserActive
	touchLastLogin = store.TouchLastLogin
}

type okValidator struct{}

func (okValidator) Validate(any) error { return nil }

type errValidator struct{}

func (errValidator) Validate(any) error { return errors.New("v") }

func newJSONCtx(e *echo.Echo, method, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func testTokens() *service.Tokens {
	return service.NewTokens(service.TokenConfig{
		Secret:     "test-secret",
		Issuer:     "mamacare-api",
		Audience:   "mamacare-client",
		AccessTTL:  time.Hour,
		RefreshTTL: 24 * time.Hour,
	})
}

func noLastLogin() {
	touchLastLogin = func(context.Context, database.DB, int) error { return nil }
}

func TestRegisterHandler(t *testing.T) {
	tokens := testTokens()
	body := `{"name":"Alice Wang","email":"alice@example.com","password":"Secret123"}`

	t.Run("validation failure", func(t *testing.T) {
		t.Cleanup(restore)
		e := echo.New()
		e.Validator = errValidator{}
		ctx, rec := newJSONCtx(e, http.MethodPost, `{}`)
		require.NoError(t, RegisterHandler(&database.FakeDB{}, tokens)(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), "Validation failed")
	})

	t.Run("duplicate email", func(t *testing.T) {
		t.Cleanup(restore)
		getUserByEmail = func(context.Context, database.DB, string) (*model.User, error) {
			return &model.User{ID: 1}, nil
		}
		e := echo.New()
		e.Validator = okValidator{}
		ctx, rec := newJSONCtx(e, http.MethodPost, body)
		require.NoError(t, RegisterHandler(&database.FakeDB{}, tokens)(ctx))
		require.Equal(t, http.StatusConflict, rec.Code)
		require.Contains(t, rec.Body.String(), "already exists")
	})

	t.Run("first user becomes admin", func(t *testing.T) {
		t.Cleanup(restore)
		getUserByEmail = func(context.Context, database.DB, string) (*model.User, error) {
			return nil, store.ErrNotFound
		}
		countUsers = func(context.Context, database.DB) (int, error) { return 0, nil }
		var createdRole string
		createUser = func(_ context.Context, _ database.DB, u *model.User) (*model.User, error) {
			createdRole = u.Role
			u.ID = 1
			u.IsActive = true
			return u, nil
		}
		noLastLogin()

		e := echo.New()
		e.Validator = okValidator{}
		ctx, rec := newJSONCtx(e, http.MethodPost, body)
		require.NoError(t, RegisterHandler(&database.FakeDB{}, tokens)(ctx))
		require.Equal(t, http.StatusCreated, rec.Code)
		require.Equal(t, model.RoleAdmin, createdRole)
		require.Contains(t, rec.Body.String(), "accessToken")
		require.Contains(t, rec.Body.String(), "refreshToken")
		require.NotContains(t, rec.Body.String(), "password")
	})

	t.Run("later users get the user role", func(t *testing.T) {
		t.Cleanup(restore)
		getUserByEmail = func(context.Context, database.DB, string) (*model.User, error) {
			return nil, store.ErrNotFound
		}
		countUsers = func(context.Context, database.DB) (int, error) { return 5, nil }
		var createdRole string
		createUser = func(_ context.Context, _ database.DB, u *model.User) (*model.User, error) {
			createdRole = u.Role
			u.ID = 6
			u.IsActive = true
			return u, nil
		}
		noLastLogin()

		e := echo.New()
		e.Validator = okValidator{}
		ctx, rec := newJSONCtx(e, http.MethodPost, body)
		require.NoError(t, RegisterHandler(&database.FakeDB{}, tokens)(ctx))
		require.Equal(t, http.StatusCreated, rec.Code)
		require.Equal(t, model.RoleUser, createdRole)
	})

	t.Run("lost insert race still conflicts", func(t *testing.T) {
		t.Cleanup(restore)
		getUserByEmail = func(context.Context, database.DB, string) (*model.User, error) {
			return nil, store.ErrNotFound
		}
		countUsers = func(context.Context, database.DB) (int, error) { return 1, nil }
		createUser = func(context.Context, database.DB, *model.User) (*model.User, error) {
			return nil, store.ErrDuplicateEmail
		}

		e := echo.New()
		e.Validator = okValidator{}
		ctx, rec := newJSONCtx(e, http.MethodPost, body)
		require.NoError(t, RegisterHandler(&database.FakeDB{}, tokens)(ctx))
		require.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestLoginHandler(t *testing.T) {
	tokens := testTokens()
	body := `{"email":"alice@example.com","password":"Secret123"}`
	hash, _ := service.HashPassword("Secret123")

	t.Run("unknown email", func(t *testing.T) {
		t.Cleanup(restore)
		getUserByEmail = func(context.Context, database.DB, string) (*model.User, error) {
			return nil, store.ErrNotFound
		}
		e := echo.New()
		e.Validator = okValidator{}
		ctx, rec := newJSONCtx(e, http.MethodPost, body)
		require.NoError(t, LoginHandler(&database.FakeDB{}, tokens)(ctx))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Contains(t, rec.Body.String(), "Invalid credentials")
	})

	t.Run("store failure", func(t *testing.T) {
		t.Cleanup(restore)
		getUserByEmail = func(context.Context, database.DB, string) (*model.User, error) {
			return nil, errors.New("connection refused")
		}
		e := echo.New()
		e.Validator = okValidator{}
		ctx, rec := newJSONCtx(e, http.MethodPost, body)
		require.NoError(t, LoginHandler(&database.FakeDB{}, tokens)(ctx))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.Contains(t, rec.Body.String(), "Internal server error")
		require.NotContains(t, rec.Body.String(), "Invalid credentials")
	})

	t.Run("deactivated account", func(t *testing.T) {
		t.Cleanup(restore)
		getUserByEmail = func(context.Context, database.DB, string) (*model.User, error) {
			return &model.User{ID: 1, PasswordHash: hash, IsActive: false}, nil
		}
		e := echo.New()
		e.Validator = okValidator{}
		ctx, rec := newJSONCtx(e, http.MethodPost, body)
		require.NoError(t, LoginHandler(&database.FakeDB{}, tokens)(ctx))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Contains(t, rec.Body.String(), "Account is deactivated")
	})

	t.Run("wrong password", func(t *testing.T) {
		t.Cleanup(restore)
		getUserByEmail = func(context.Context, database.DB, string) (*model.User, error) {
			return &model.User{ID: 1, PasswordHash: hash, IsActive: true}, nil
		}
		e := echo.New()
		e.Validator = okValidator{}
		ctx, rec := newJSONCtx(e, http.MethodPost, `{"email":"alice@example.com","password":"Wrong123"}`)
		require.NoError(t, LoginHandler(&database.FakeDB{}, tokens)(ctx))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Contains(t, rec.Body.String(), "Invalid credentials")
	})

	t.Run("success", func(t *testing.T) {
		t.Cleanup(restore)
		getUserByEmail = func(context.Context, database.DB, string) (*model.User, error) {
			return &model.User{ID: 1, PasswordHash: hash, IsActive: true, Role: model.RoleUser}, nil
		}
		noLastLogin()
		e := echo.New()
		e.Validator = okValidator{}
		ctx, rec := newJSONCtx(e, http.MethodPost, body)
		require.NoError(t, LoginHandler(&database.FakeDB{}, tokens)(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), "Login successful")
		require.Contains(t, rec.Body.String(), "accessToken")
	})
}

func TestRefreshHandler(t *testing.T) {
	tokens := testTokens()

	t.Run("missing token", func(t *testing.T) {
		t.Cleanup(restore)
		e := echo.New()
		ctx, rec := newJSONCtx(e, http.MethodPost, `{}`)
		require.NoError(t, RefreshHandler(&database.FakeDB{}, tokens)(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), "Refresh token is required")
	})

	t.Run("garbage token", func(t *testing.T) {
		t.Cleanup(restore)
		e := echo.New()
		ctx, rec := newJSONCtx(e, http.MethodPost, `{"refreshToken":"garbage"}`)
		require.NoError(t, RefreshHandler(&database.FakeDB{}, tokens)(ctx))
		require.Equal(t, http.StatusForbidden, rec.Code)
		require.Contains(t, rec.Body.String(), "Invalid or expired refresh token")
	})

	t.Run("access token is not accepted", func(t *testing.T) {
		t.Cleanup(restore)
		access, err := tokens.IssueAccessToken(model.User{ID: 1})
		require.NoError(t, err)
		e := echo.New()
		ctx, rec := newJSONCtx(e, http.MethodPost, `{"refreshToken":"`+access+`"}`)
		require.NoError(t, RefreshHandler(&database.FakeDB{}, tokens)(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), "Invalid refresh token")
	})

	t.Run("inactive user", func(t *testing.T) {
		t.Cleanup(restore)
		refresh, err := tokens.IssueRefreshToken(1)
		require.NoError(t, err)
		getUserByID = func(context.Context, database.DB, int) (*model.User, error) {
			return &model.User{ID: 1, IsActive: false}, nil
		}
		e := echo.New()
		ctx, rec := newJSONCtx(e, http.MethodPost, `{"refreshToken":"`+refresh+`"}`)
		require.NoError(t, RefreshHandler(&database.FakeDB{}, tokens)(ctx))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Contains(t, rec.Body.String(), "User not found or inactive")
	})

	t.Run("success issues a new access token only", func(t *testing.T) {
		t.Cleanup(restore)
		refresh, err := tokens.IssueRefreshToken(1)
		require.NoError(t, err)
		getUserByID = func(context.Context, database.DB, int) (*model.User, error) {
			return &model.User{ID: 1, IsActive: true, Role: model.RoleUser}, nil
		}
		e := echo.New()
		ctx, rec := newJSONCtx(e, http.MethodPost, `{"refreshToken":"`+refresh+`"}`)
		require.NoError(t, RefreshHandler(&database.FakeDB{}, tokens)(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), "Token refreshed successfully")
		require.Contains(t, rec.Body.String(), "accessToken")
		require.NotContains(t, rec.Body.String(), `"refreshToken"`)
	})
}

func TestProfileHandlers(t *testing.T) {
	me := &model.User{ID: 7, Name: "Alice Wang", Email: "alice@example.com", Role: model.RoleUser, IsActive: true}

	withUser := func(c echo.Context) {
		c.Set(middleware.ContextUserKey, me)
		c.Set(middleware.ContextUserIDKey, me.ID)
	}

	t.Run("get profile", func(t *testing.T) {
		t.Cleanup(restore)
		e := echo.New()
		ctx, rec := newJSONCtx(e, http.MethodGet, "")
		withUser(ctx)
		require.NoError(t, GetProfileHandler(&database.FakeDB{})(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), "alice@example.com")
		require.NotContains(t, rec.Body.String(), "password")
	})

	t.Run("get profile unauthenticated", func(t *testing.T) {
		t.Cleanup(restore)
		e := echo.New()
		ctx, rec := newJSONCtx(e, http.MethodGet, "")
		require.NoError(t, GetProfileHandler(&database.FakeDB{})(ctx))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("update profile email conflict", func(t *testing.T) {
		t.Cleanup(restore)
		getUserByEmail = func(_ context.Context, _ database.DB, email string) (*model.User, error) {
			return &model.User{ID: 99, Email: email}, nil
		}
		e := echo.New()
		e.Validator = okValidator{}
		ctx, rec := newJSONCtx(e, http.MethodPut, `{"email":"taken@example.com"}`)
		withUser(ctx)
		require.NoError(t, UpdateProfileHandler(&database.FakeDB{})(ctx))
		require.Equal(t, http.StatusConflict, rec.Code)
		require.Contains(t, rec.Body.String(), "Email already in use")
	})

	t.Run("update profile success", func(t *testing.T) {
		t.Cleanup(restore)
		var gotName, gotEmail string
		updateUserProfile = func(_ context.Context, _ database.DB, id int, name, email string) error {
			require.Equal(t, 7, id)
			gotName, gotEmail = name, email
			return nil
		}
		getUserByID = func(context.Context, database.DB, int) (*model.User, error) {
			return &model.User{ID: 7, Name: "New Name", Email: "alice@example.com"}, nil
		}
		e := echo.New()
		e.Validator = okValidator{}
		ctx, rec := newJSONCtx(e, http.MethodPut, `{"name":"New Name"}`)
		withUser(ctx)
		require.NoError(t, UpdateProfileHandler(&database.FakeDB{})(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "New Name", gotName)
		// 未更動的欄位沿用現值
		require.Equal(t, "alice@example.com", gotEmail)
	})
}

func TestChangePasswordHandler(t *testing.T) {
	hash, _ := service.HashPassword("Old123")
	me := &model.User{ID: 7, PasswordHash: hash, IsActive: true}

	newCtx := func(body string) (echo.Context, *httptest.ResponseRecorder) {
		e := echo.New()
		e.Validator = okValidator{}
		ctx, rec := newJSONCtx(e, http.MethodPut, body)
		ctx.Set(middleware.ContextUserKey, me)
		ctx.Set(middleware.ContextUserIDKey, me.ID)
		return ctx, rec
	}

	t.Run("wrong current password", func(t *testing.T) {
		t.Cleanup(restore)
		ctx, rec := newCtx(`{"currentPassword":"Nope123","newPassword":"Fresh123","confirmPassword":"Fresh123"}`)
		require.NoError(t, ChangePasswordHandler(&database.FakeDB{})(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), "Current password is incorrect")
	})

	t.Run("new password equals old", func(t *testing.T) {
		t.Cleanup(restore)
		ctx, rec := newCtx(`{"currentPassword":"Old123","newPassword":"Old123","confirmPassword":"Old123"}`)
		require.NoError(t, ChangePasswordHandler(&database.FakeDB{})(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), "must be different")
	})

	t.Run("success stamps password change", func(t *testing.T) {
		t.Cleanup(restore)
		updated := false
		updateUserPassword = func(_ context.Context, _ database.DB, id int, _ string) error {
			require.Equal(t, 7, id)
			updated = true
			return nil
		}
		ctx, rec := newCtx(`{"currentPassword":"Old123","newPassword":"Fresh123","confirmPassword":"Fresh123"}`)
		require.NoError(t, ChangePasswordHandler(&database.FakeDB{})(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
		require.True(t, updated)
		require.Contains(t, rec.Body.String(), "Password changed successfully")
	})
}

func TestAccountHandlers(t *testing.T) {
	t.Run("logout", func(t *testing.T) {
		e := echo.New()
		ctx, rec := newJSONCtx(e, http.MethodPost, "")
		require.NoError(t, LogoutHandler()(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), "Logged out successfully")
	})

	t.Run("deactivate", func(t *testing.T) {
		t.Cleanup(restore)
		var gotActive = true
		setUserActive = func(_ context.Context, _ database.DB, id int, active bool) error {
			require.Equal(t, 7, id)
			gotActive = active
			return nil
		}
		e := echo.New()
		ctx, rec := newJSONCtx(e, http.MethodPut, "")
		ctx.Set(middleware.ContextUserIDKey, 7)
		require.NoError(t, DeactivateHandler(&database.FakeDB{})(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
		require.False(t, gotActive)
		require.Contains(t, rec.Body.String(), "Account deactivated successfully")
	})

	t.Run("deactivate unknown user", func(t *testing.T) {
		t.Cleanup(restore)
		setUserActive = func(context.Context, database.DB, int, bool) error {
			return store.ErrNotFound
		}
		e := echo.New()
		ctx, rec := newJSONCtx(e, http.MethodPut, "")
		ctx.Set(middleware.ContextUserIDKey, 7)
		require.NoError(t, DeactivateHandler(&database.FakeDB{})(ctx))
		require.Equal(t, http.StatusNotFound, rec.Code)
	})
}
