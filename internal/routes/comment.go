package routes

import (
	"rating-system/internal/controllers"
	"rating-system/pkg/middleware"

	"github.com/labstack/echo/v4"
)

func runCommentRouter(api *echo.Group, ctrl *controllers.CommentController, authMW *middleware.AuthMiddleware) {
	comments := api.Group("/titles/:title_id/reviews/:review_id/comments")

	comments.GET("/", ctrl.GetComments, authMW.OptionalAuth)
	comments.GET("/:comment_id", ctrl.FindComment, authMW.OptionalAuth)
	comments.POST("/", ctrl.CreateComment, authMW.Auth)
	comments.PATCH("/:comment_id", ctrl.UpdateComment, authMW.Auth)
	comments.DELETE("/:comment_id", ctrl.DeleteComment, authMW.Auth)
}
