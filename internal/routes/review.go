package routes

import (
	"rating-system/internal/controllers"
	"rating-system/pkg/middleware"

	"github.com/labstack/echo/v4"
)

func runReviewRouter(api *echo.Group, ctrl *controllers.ReviewController, authMW *middleware.AuthMiddleware) {
	reviews := api.Group("/titles/:title_id/reviews")

	reviews.GET("/", ctrl.GetReviews, authMW.OptionalAuth)
	reviews.GET("/:review_id", ctrl.FindReview, authMW.OptionalAuth)
	reviews.POST("/", ctrl.CreateReview, authMW.Auth)
	reviews.PATCH("/:review_id", ctrl.UpdateReview, authMW.Auth)
	reviews.DELETE("/:review_id", ctrl.DeleteReview, authMW.Auth)
}
