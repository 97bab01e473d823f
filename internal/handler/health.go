// File: internal/handler/health.go
package handler

import (
	"net/http"
	"time"

	"mamacare/internal/api"
	"mamacare/internal/database"

	"github.com/labstack/echo/v4"
)

var startedAt = time.Now()

// HealthData 健康檢查回應模型
// swagger:model HealthData
type HealthData struct {
	Status string `json:"status" example:"ok"`
	// Uptime 服務啟動至今的秒數
	Uptime float64 `json:"uptime"`
	// Environment 執行環境
	Environment string `json:"environment" example:"development"`
	Timestamp   string `json:"timestamp"`
}

// HealthHandler 公開健康檢查
// @Summary     Health check
// @Description 回報服務狀態與啟動時間，不需認證
// @Tags        health
// @Produce     json
// @Success     200 {object} api.Response
// @Router      /health [get]
func HealthHandler(env string) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, api.OK("", HealthData{
			Status:      "ok",
			Uptime:      time.Since(startedAt).Seconds(),
			Environment: env,
			Timestamp:   time.Now().UTC().Format(time.RFC3339),
		}))
	}
}

// PingHandler 認證後的資料庫健康檢查
// @Summary     Ping
// @Description 回傳 pong，並檢查資料庫連線是否正常
// @Tags        health
// @Produce     json
// @Success     200 {object} api.Response
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /ping [get]
func PingHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := db.Ping(c.Request().Context()); err != nil {
			return c.JSON(http.StatusInternalServerError, api.Error("database unhealthy"))
		}
		return c.JSON(http.StatusOK, api.OK("pong", nil))
	}
}
