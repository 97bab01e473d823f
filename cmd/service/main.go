// File: cmd/service/main.go
// @title        MamaCare API
// @version      1.0
// @description  MamaCare 母嬰健康平台的後端 API 文件
// @host         localhost:8001
// @BasePath     /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"mamacare/internal/api"
	"mamacare/internal/cache"
	"mamacare/internal/config"
	"mamacare/internal/database"
	"mamacare/internal/router"
	"mamacare/internal/service"
	"mamacare/internal/worker"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	_ "mamacare/docs" // 引入 swag 產出的 docs

	echoSwagger "github.com/swaggo/echo-swagger"
)

// CustomValidator wraps go-playground/validator for Echo
// swagger:ignore
type CustomValidator struct {
	validator *validator.Validate
}

// Validate calls the underlying validator
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

var (
	loadConfig      = config.Load
	newPgxPool      = database.NewPgxPool
	newRedisClient  = cache.NewRedisClient
	runMigrationsFn = database.RunMigrations
	newWorkerPool   = worker.NewPool
	startServer     = func(e *echo.Echo, addr string) error { return e.Start(addr) }
	exitFunc        = os.Exit
)

const workerQueueSize = 64

func run() error {
	// .env 僅供本機開發，不存在時忽略
	_ = godotenv.Load()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := newPgxPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("DB 連線失敗: %v", err)
	}
	defer db.Close()

	rdb, err := newRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return fmt.Errorf("Redis 連線失敗: %v", err)
	}
	defer rdb.Close()

	if err := runMigrationsFn(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("Migration 執行失敗: %v", err)
	}

	wp := newWorkerPool(cfg.WorkerCount, workerQueueSize)
	defer wp.Stop()

	tokens := service.NewTokens(service.TokenConfig{
		Secret:     cfg.JWTSecret,
		Issuer:     cfg.Issuer,
		Audience:   cfg.Audience,
		AccessTTL:  cfg.AccessTTL,
		RefreshTTL: cfg.RefreshTTL,
	})
	video := service.NewVideo(service.VideoConfig{
		AccessKey: cfg.HMSAccessKey,
		Secret:    cfg.HMSSecret,
	})

	v := validator.New()
	if err := api.RegisterValidations(v); err != nil {
		return fmt.Errorf("註冊驗證規則失敗: %v", err)
	}

	e := echo.New()
	e.Validator = &CustomValidator{validator: v}
	e.Debug = cfg.IsDevelopment()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	router.Setup(e, db, rdb, tokens, video, wp, cfg)

	e.GET("/swagger/*", echoSwagger.WrapHandler)
	return startServer(e, ":"+cfg.Port)
}

func main() {
	if err := run(); err != nil {
		log.Print(err)
		exitFunc(1)
	}
}
