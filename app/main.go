package main

import (
	"context"
	"net/http"

	"rating-system/internal/routes"
	"rating-system/pkg/config"
	"rating-system/pkg/customvalidator"
	"rating-system/pkg/database/postgresql"
	apperrors "rating-system/pkg/errors"
	applogger "rating-system/pkg/logger"
	"rating-system/pkg/service"
	"rating-system/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	e := echo.New()
	logger := applogger.NewLogger()
	cfg := config.New()

	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		DisableStackAll: true,
		StackSize:       1 << 10,
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			logger.Error("обнаружена паника",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Error(err),
				zap.String("stack", string(stack)),
			)
			if !c.Response().Committed {
				httpErr := apperrors.NewHttpError(http.StatusInternalServerError, "Внутренняя ошибка сервера", err, nil)
				utils.ErrorResponse(c, httpErr, logger)
			}
			return err
		},
	}))

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		ExposeHeaders: []string{"Content-Disposition"},
	}))

	v := validator.New()
	if err := customvalidator.RegisterCustomValidations(v); err != nil {
		logger.Fatal("ошибка регистрации кастомных правил валидации", zap.Error(err))
	}
	e.Validator = utils.NewValidator(v)

	if err := postgresql.RunMigrations(cfg.Postgres.DSN); err != nil {
		logger.Fatal("не удалось применить миграции", zap.Error(err))
	}

	dbConn := postgresql.ConnectDB(cfg.Postgres.DSN)
	defer dbConn.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       0,
	})
	if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
		logger.Fatal("не удалось подключиться к Redis", zap.Error(err), zap.String("address", cfg.Redis.Address))
	}

	jwtSvc := service.NewJWTService(cfg.JWT.SecretKey, cfg.JWT.AccessTokenTTL, cfg.JWT.RefreshTokenTTL)

	routes.InitRouter(e, dbConn, redisClient, jwtSvc, logger, cfg)

	logger.Info("сервер запущен", zap.String("port", cfg.Server.Port))
	if err := e.Start(":" + cfg.Server.Port); err != nil {
		logger.Fatal("ошибка запуска сервера", zap.Error(err))
	}
}
