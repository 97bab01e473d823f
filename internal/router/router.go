// File: internal/router/router.go
package router

import (
	"mamacare/internal/cache"
	"mamacare/internal/config"
	"mamacare/internal/database"
	"mamacare/internal/handler"
	"mamacare/internal/handler/auth"
	"mamacare/internal/handler/consultations"
	"mamacare/internal/handler/users"
	"mamacare/internal/handler/vaccinations"
	"mamacare/internal/middleware"
	"mamacare/internal/model"
	"mamacare/internal/service"
	"mamacare/internal/worker"

	"github.com/labstack/echo/v4"
)

// Setup 註冊所有路由與中介層
func Setup(e *echo.Echo, db database.DB, rdb cache.Cache, tokens *service.Tokens, video *service.Video, pool worker.Pool, cfg *config.Config) {
	// 全站通用限流；/api 底下另疊較嚴格的 api 限流
	e.Use(middleware.RateLimit(rdb, "general", cfg.RateLimitMax, cfg.RateLimitWindow))

	// 公開健康檢查僅受通用限流
	e.GET("/api/health", handler.HealthHandler(cfg.Env))

	api := e.Group("/api", middleware.RateLimit(rdb, "api", cfg.APIRateLimitMax, cfg.RateLimitWindow))
	authLimit := middleware.RateLimit(rdb, "auth", cfg.AuthRateLimitMax, cfg.RateLimitWindow)
	requireAuth := middleware.RequireAuth(db, tokens)

	// 健康檢查（需登入）
	api.GET("/ping", handler.PingHandler(db), requireAuth)

	// 註冊、登入與 token 更新（較嚴格的限流）
	apiAuth := api.Group("/auth")
	apiAuth.POST("/register", auth.RegisterHandler(db, tokens), authLimit)
	apiAuth.POST("/login", auth.LoginHandler(db, tokens), authLimit)
	apiAuth.POST("/refresh", auth.RefreshHandler(db, tokens), authLimit)
	apiAuth.POST("/logout", auth.LogoutHandler(), requireAuth)

	// 個人資料與密碼
	apiAuth.GET("/profile", auth.GetProfileHandler(db), requireAuth)
	apiAuth.PUT("/profile", auth.UpdateProfileHandler(db), requireAuth)
	apiAuth.PUT("/password", auth.ChangePasswordHandler(db), requireAuth)
	apiAuth.DELETE("/deactivate", auth.DeactivateHandler(db), requireAuth)

	// 管理員專屬使用者管理
	apiUsers := apiAuth.Group("/users", requireAuth, middleware.RequireRoles(model.RoleAdmin))
	apiUsers.GET("", users.ListUsersHandler(db))
	apiUsers.GET("/:userId", users.GetUserHandler(db))
	apiUsers.PUT("/:userId/role", users.UpdateUserRoleHandler(db))
	apiUsers.DELETE("/:userId", users.DeleteUserHandler(db))

	// 疫苗提醒（限本人）
	apiVaccinations := api.Group("/vaccinations", requireAuth)
	apiVaccinations.GET("", vaccinations.ListHandler(db, pool))
	apiVaccinations.POST("", vaccinations.CreateHandler(db))
	apiVaccinations.GET("/:id", vaccinations.GetHandler(db))
	apiVaccinations.PUT("/:id", vaccinations.UpdateHandler(db))
	apiVaccinations.DELETE("/:id", vaccinations.DeleteHandler(db))

	// 視訊諮詢
	apiConsultations := api.Group("/consultations", requireAuth)
	apiConsultations.POST("", consultations.CreateHandler(db))
	apiConsultations.GET("", consultations.ListHandler(db))
	apiConsultations.POST("/:id/accept", consultations.AcceptHandler(db, video))
	apiConsultations.POST("/:id/reject", consultations.RejectHandler(db))
	apiConsultations.POST("/:id/complete", consultations.CompleteHandler(db))
}
