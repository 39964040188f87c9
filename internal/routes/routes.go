package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"rating-system/internal/controllers"
	"rating-system/internal/repositories"
	"rating-system/internal/services"
	"rating-system/pkg/config"
	"rating-system/pkg/middleware"
	"rating-system/pkg/service"
)

func InitRouter(e *echo.Echo, dbConn *pgxpool.Pool, redisClient *redis.Client, jwtSvc service.JWTService, logger *zap.Logger, cfg *config.Config) {
	logger.Info("InitRouter: начало создания маршрутов")

	api := e.Group("/api")
	authMW := middleware.NewAuthMiddleware(jwtSvc, logger)
	txManager := repositories.NewTxManager(dbConn)

	// --- репозитории ---
	userRepo := repositories.NewUserRepository(dbConn, logger)
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)
	categoryRepo := repositories.NewCategoryRepository(dbConn, logger)
	genreRepo := repositories.NewGenreRepository(dbConn, logger)
	titleRepo := repositories.NewTitleRepository(dbConn, logger)
	reviewRepo := repositories.NewReviewRepository(dbConn, logger)
	commentRepo := repositories.NewCommentRepository(dbConn, logger)

	// --- сервисы ---
	emailSvc := services.NewEmailService(&cfg.SMTP, logger)
	authService := services.NewAuthService(userRepo, cacheRepo, emailSvc, jwtSvc, &cfg.Auth, logger)
	userService := services.NewUserService(userRepo, logger)
	categoryService := services.NewCategoryService(categoryRepo, logger)
	genreService := services.NewGenreService(genreRepo, logger)
	titleService := services.NewTitleService(titleRepo, categoryRepo, genreRepo, txManager, logger)
	reviewService := services.NewReviewService(reviewRepo, titleRepo, logger)
	commentService := services.NewCommentService(commentRepo, reviewRepo, titleRepo, logger)
	reportService := services.NewReportService(titleRepo, logger)

	// --- контроллеры ---
	authController := controllers.NewAuthController(authService, logger)
	userController := controllers.NewUserController(userService, logger)
	categoryController := controllers.NewCategoryController(categoryService, logger)
	genreController := controllers.NewGenreController(genreService, logger)
	titleController := controllers.NewTitleController(titleService, logger)
	reviewController := controllers.NewReviewController(reviewService, logger)
	commentController := controllers.NewCommentController(commentService, logger)
	reportController := controllers.NewReportController(reportService, logger)

	// --- роутеры ---
	runAuthRouter(api, authController)
	runUserRouter(api, userController, authMW)
	runCategoryRouter(api, categoryController, authMW)
	runGenreRouter(api, genreController, authMW)
	runTitleRouter(api, titleController, authMW)
	runReviewRouter(api, reviewController, authMW)
	runCommentRouter(api, commentController, authMW)
	runReportRouter(api, reportController, authMW)

	logger.Info("InitRouter: создание маршрутов завершено")
}
